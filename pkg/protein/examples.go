package protein

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed examples.yaml
var examplesYAML []byte

// Example is a well-known protein from the bundled library, offered on
// the dashboard as a one-click input.
type Example struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Sequence    string `json:"sequence" yaml:"sequence"`
}

// Examples parses the bundled example library.
func Examples() ([]Example, error) {
	var library struct {
		Examples []Example `yaml:"examples"`
	}

	if err := yaml.Unmarshal(examplesYAML, &library); err != nil {
		return nil, fmt.Errorf("unable to unmarshal example library: %w", err)
	}

	return library.Examples, nil
}
