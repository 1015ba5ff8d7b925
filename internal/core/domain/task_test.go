package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/stoke/internal/core/domain"
)

func TestParseTask(t *testing.T) {
	tests := []struct {
		name     string
		arg      string
		wantTask domain.Task
		wantOK   bool
	}{
		{name: "build", arg: "build", wantTask: domain.TaskBuild, wantOK: true},
		{name: "watch", arg: "watch", wantTask: domain.TaskWatch, wantOK: true},
		{name: "repl", arg: "repl", wantTask: domain.TaskREPL, wantOK: true},
		{name: "figwheel", arg: "figwheel", wantTask: domain.TaskFigwheel, wantOK: true},
		{name: "install", arg: "install", wantTask: domain.TaskInstall, wantOK: true},
		{name: "unknown", arg: "deploy", wantTask: "", wantOK: false},
		{name: "case sensitive", arg: "Build", wantTask: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, ok := domain.ParseTask(tt.arg)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantTask, task)
		})
	}
}

func TestTask_Script(t *testing.T) {
	assert.Equal(t, "stoke/task/build.clj", domain.TaskBuild.Script())
	assert.Equal(t, "stoke/task/watch.clj", domain.TaskWatch.Script())
	assert.Equal(t, "stoke/task/repl.clj", domain.TaskREPL.Script())
	assert.Equal(t, "stoke/task/figwheel.clj", domain.TaskFigwheel.Script())
	assert.Empty(t, domain.TaskInstall.Script(), "install never spawns a runner")
}

func TestTask_Managed(t *testing.T) {
	assert.True(t, domain.TaskBuild.Managed())
	assert.True(t, domain.TaskWatch.Managed())
	assert.False(t, domain.TaskInstall.Managed())
}

func TestClassifyScript(t *testing.T) {
	tests := []struct {
		name string
		path string
		want domain.ScriptKind
	}{
		{name: "managed script", path: "scripts/release.clj", want: domain.ScriptManaged},
		{name: "lightweight script", path: "scripts/hello.cljs", want: domain.ScriptLightweight},
		{name: "no extension", path: "scripts/run", want: domain.ScriptUnknown},
		{name: "unrelated extension", path: "scripts/run.sh", want: domain.ScriptUnknown},
		{name: "extension only suffix match", path: "foo.xclj", want: domain.ScriptUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ClassifyScript(tt.path))
		})
	}
}
