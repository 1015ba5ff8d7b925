package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stoke/internal/adapters/config"
	"gopkg.in/yaml.v3"
)

func TestStringList_UnmarshalYAML(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		want        []string
		errContains string
	}{
		{
			name: "scalar",
			yaml: `src: src/app`,
			want: []string{"src/app"},
		},
		{
			name: "sequence",
			yaml: `src: ["src/app", "src/shared"]`,
			want: []string{"src/app", "src/shared"},
		},
		{
			name: "empty sequence",
			yaml: `src: []`,
			want: []string{},
		},
		{
			name:        "mapping",
			yaml:        "src:\n  bad: form",
			errContains: "src must be a string or a list of strings",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dto config.BuildDTO
			err := yaml.Unmarshal([]byte(tt.yaml), &dto)

			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, config.StringList(tt.want), dto.Src)
		})
	}
}
