package domain

import (
	"fmt"
	"path/filepath"
)

const (
	// StokeDirName is the name of the internal workspace directory.
	StokeDirName = ".stoke"

	// CacheDirName is the name of the cache directory.
	CacheDirName = "cache"

	// ToolchainDirName is the name of the toolchain jar directory.
	ToolchainDirName = "toolchain"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "stoke.yaml"

	// DepsCacheFileName is the name of the dependency resolution record.
	DepsCacheFileName = "deps.json"

	// DebugLogFile is the name of the debug log file.
	DebugLogFile = "debug.log"

	// RuntimeDirName is the name of the managed runtime directory under the user cache.
	RuntimeDirName = "jre"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultStokePath returns the default root directory for stoke metadata.
func DefaultStokePath() string {
	return StokeDirName
}

// DefaultDepsCachePath returns the default path of the dependency resolution record.
// It joins .stoke, cache, and deps.json.
func DefaultDepsCachePath() string {
	return filepath.Join(StokeDirName, CacheDirName, DepsCacheFileName)
}

// DefaultToolchainPath returns the default directory holding the toolchain jars.
// It joins .stoke and toolchain.
func DefaultToolchainPath() string {
	return filepath.Join(StokeDirName, ToolchainDirName)
}

// DefaultDebugLogPath returns the default path for the debug log.
// It joins .stoke and debug.log.
func DefaultDebugLogPath() string {
	return filepath.Join(StokeDirName, DebugLogFile)
}

// CompilerJarPath returns the path of the compiler jar for the given version.
func CompilerJarPath(version string) string {
	return filepath.Join(DefaultToolchainPath(), fmt.Sprintf("stoke-compiler-%s.jar", version))
}

// RunnerJarPath returns the path of the runner jar for the given version.
func RunnerJarPath(version string) string {
	return filepath.Join(DefaultToolchainPath(), fmt.Sprintf("stoke-runner-%s.jar", version))
}
