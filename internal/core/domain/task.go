package domain

import "path/filepath"

// Task identifies one of the built-in toolchain entry points.
type Task string

const (
	// TaskBuild compiles the selected build once.
	TaskBuild Task = "build"

	// TaskWatch compiles the selected build and recompiles on source changes.
	TaskWatch Task = "watch"

	// TaskREPL starts a toolchain read-eval-print loop.
	TaskREPL Task = "repl"

	// TaskFigwheel starts the hot-reloading development runner.
	TaskFigwheel Task = "figwheel"

	// TaskInstall provisions the runtime and resolves dependencies eagerly.
	TaskInstall Task = "install"
)

// knownTasks lists the recognized tasks in display order.
var knownTasks = []Task{TaskBuild, TaskWatch, TaskREPL, TaskFigwheel, TaskInstall}

// ParseTask maps a command line argument to a known task.
func ParseTask(name string) (Task, bool) {
	for _, task := range knownTasks {
		if string(task) == name {
			return task, true
		}
	}
	return "", false
}

// KnownTaskNames returns the recognized task names in display order.
func KnownTaskNames() []string {
	names := make([]string, len(knownTasks))
	for i, task := range knownTasks {
		names[i] = string(task)
	}
	return names
}

// Managed reports whether the task runs on the managed JVM runtime.
func (t Task) Managed() bool {
	switch t {
	case TaskBuild, TaskWatch, TaskREPL, TaskFigwheel:
		return true
	default:
		return false
	}
}

// Script returns the classpath resource the managed runner loads for the task.
// Install has no script, it never spawns a runner.
func (t Task) Script() string {
	if !t.Managed() {
		return ""
	}
	return "stoke/task/" + string(t) + ManagedScriptExt
}

// ScriptKind classifies a user script path by extension.
type ScriptKind uint8

const (
	// ScriptUnknown marks an extension the tool does not recognize.
	ScriptUnknown ScriptKind = iota

	// ScriptManaged marks a script that runs on the managed JVM runtime.
	ScriptManaged

	// ScriptLightweight marks a script that runs on the lightweight interpreter.
	ScriptLightweight
)

const (
	// ManagedScriptExt is the extension of scripts executed on the managed runtime.
	ManagedScriptExt = ".clj"

	// LightweightScriptExt is the extension of scripts executed on the lightweight interpreter.
	LightweightScriptExt = ".cljs"
)

// ClassifyScript maps a script path to its execution kind by extension.
func ClassifyScript(path string) ScriptKind {
	switch filepath.Ext(path) {
	case ManagedScriptExt:
		return ScriptManaged
	case LightweightScriptExt:
		return ScriptLightweight
	default:
		return ScriptUnknown
	}
}

const (
	// DepsToolName is the dependency resolver executable looked up on PATH.
	DepsToolName = "stoke-deps"

	// DepsToolEnv overrides the resolver executable path, used by tests.
	DepsToolEnv = "STOKE_DEPS_BIN"

	// LiteToolName is the lightweight interpreter executable looked up on PATH.
	LiteToolName = "stoke-lite"

	// LiteToolEnv overrides the interpreter executable path, used by tests.
	LiteToolEnv = "STOKE_LITE_BIN"

	// RunnerMainClass is the JVM entry point of the managed runner.
	RunnerMainClass = "stoke.runner.main"

	// InitFlag precedes the serialized payload on the runner command line.
	InitFlag = "--init"
)
