// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/stoke/internal/adapters/classpath"
	_ "go.trai.ch/stoke/internal/adapters/config"
	_ "go.trai.ch/stoke/internal/adapters/deps"
	_ "go.trai.ch/stoke/internal/adapters/fetch"
	_ "go.trai.ch/stoke/internal/adapters/jre"
	_ "go.trai.ch/stoke/internal/adapters/launcher"
	_ "go.trai.ch/stoke/internal/adapters/logger"
	_ "go.trai.ch/stoke/internal/adapters/telemetry"
	_ "go.trai.ch/stoke/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/stoke/internal/app"
	_ "go.trai.ch/stoke/internal/engine/dispatch"
	_ "go.trai.ch/stoke/internal/engine/supervisor"
)
