package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Stokefile represents the structure of the stoke.yaml configuration file.
type Stokefile struct {
	Builds          map[string]*BuildDTO `yaml:"builds"`
	Dependencies    []string             `yaml:"dependencies"`
	DevDependencies []string             `yaml:"devDependencies"`
	Compiler        string               `yaml:"compiler"`
	Toolchain       string               `yaml:"toolchain"`
}

// BuildDTO represents a single build definition in the configuration.
type BuildDTO struct {
	Src     StringList     `yaml:"src"`
	Options map[string]any `yaml:"options"`
}

// StringList unmarshals either a single YAML scalar or a sequence of strings.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var single string
		if err := value.Decode(&single); err != nil {
			return err
		}
		*s = StringList{single}
		return nil
	case yaml.SequenceNode:
		var many []string
		if err := value.Decode(&many); err != nil {
			return err
		}
		*s = StringList(many)
		return nil
	default:
		return fmt.Errorf("line %d: src must be a string or a list of strings", value.Line)
	}
}
