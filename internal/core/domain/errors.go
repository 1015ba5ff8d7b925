package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when a task needs a configuration and no stoke.yaml exists.
	ErrConfigNotFound = zerr.New("could not find stoke.yaml")

	// ErrNoBuildsConfigured is returned when a task needs a build and the configuration declares none.
	ErrNoBuildsConfigured = zerr.New("no builds configured")

	// ErrBuildAmbiguous is returned when several builds are configured and no build id was given.
	ErrBuildAmbiguous = zerr.New("multiple builds configured, specify a build id")

	// ErrBuildNotFound is returned when the requested build id is not in the configuration.
	ErrBuildNotFound = zerr.New("build not found")

	// ErrUnknownTask is returned when the first argument is neither a known task nor a script file.
	ErrUnknownTask = zerr.New("unknown task")

	// ErrScriptUnsupported is returned when a script file has an unrecognized extension.
	ErrScriptUnsupported = zerr.New("unrecognized script extension")

	// ErrPlatformUnsupported is returned when no runtime artifact is published for the host.
	ErrPlatformUnsupported = zerr.New("no runtime artifact published for this platform")

	// ErrRuntimeInstallDirFailed is returned when the runtime install directory cannot be created.
	ErrRuntimeInstallDirFailed = zerr.New("failed to create runtime install directory")

	// ErrRuntimeDownloadFailed is returned when downloading the runtime archive fails.
	ErrRuntimeDownloadFailed = zerr.New("failed to download runtime archive")

	// ErrRuntimeExtractFailed is returned when extracting the runtime archive fails.
	ErrRuntimeExtractFailed = zerr.New("failed to extract runtime archive")

	// ErrRuntimeLayoutInvalid is returned when the extracted archive has no single top-level directory.
	ErrRuntimeLayoutInvalid = zerr.New("runtime archive does not contain a single top-level directory")

	// ErrRuntimeVerifyFailed is returned when the runtime binary is missing after extraction.
	ErrRuntimeVerifyFailed = zerr.New("runtime binary missing after extraction")

	// ErrDepsToolMissing is returned when the dependency resolver executable cannot be found.
	ErrDepsToolMissing = zerr.New("dependency resolver not found on PATH")

	// ErrDepsResolveFailed is returned when the dependency resolver exits with an error.
	ErrDepsResolveFailed = zerr.New("failed to resolve dependencies")

	// ErrDepsCacheReadFailed is returned when reading the dependency cache fails.
	ErrDepsCacheReadFailed = zerr.New("failed to read dependency cache")

	// ErrDepsCacheWriteFailed is returned when writing the dependency cache fails.
	ErrDepsCacheWriteFailed = zerr.New("failed to write dependency cache")

	// ErrDepsCacheMarshalFailed is returned when marshaling a dependency cache record fails.
	ErrDepsCacheMarshalFailed = zerr.New("failed to marshal dependency cache record")

	// ErrDepsCacheUnmarshalFailed is returned when unmarshaling a dependency cache record fails.
	ErrDepsCacheUnmarshalFailed = zerr.New("failed to unmarshal dependency cache record")

	// ErrCacheMiss is returned when a requested item is not found in the cache.
	ErrCacheMiss = zerr.New("cache miss")

	// ErrPayloadEncodeFailed is returned when the init payload cannot be serialized.
	ErrPayloadEncodeFailed = zerr.New("failed to encode init payload")

	// ErrTaskSpawnFailed is returned when a task process cannot be started.
	ErrTaskSpawnFailed = zerr.New("failed to start task process")

	// ErrTaskExecutionFailed is returned when a task process exits with an error.
	ErrTaskExecutionFailed = zerr.New("task execution failed")

	// ErrWatchSetupFailed is returned when the config file watch cannot be established.
	ErrWatchSetupFailed = zerr.New("failed to watch config file")
)

// ExitError carries a child process exit code to the CLI boundary.
// The CLI exits with the same code so callers observe the child's status unchanged.
type ExitError struct {
	Code int
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("task exited with status %d", e.Code)
}
