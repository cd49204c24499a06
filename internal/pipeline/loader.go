package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/theirongolddev/mbudget/internal/model"
)

// DefaultInputs returns the blank form: zero numbers, empty text, the
// given planning year and a TV factor of 1 unless configured otherwise.
func DefaultInputs(year int, tvFactor float64) model.Inputs {
	if tvFactor == 0 {
		tvFactor = 1
	}
	return model.Inputs{
		CurrentYear: year,
		TVFactor:    tvFactor,
	}
}

// LoadInputs reads a YAML scenario file on top of base. Keys missing from
// the file keep their base values.
func LoadInputs(path string, base model.Inputs) (model.Inputs, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is a user-supplied scenario
	if err != nil {
		return base, fmt.Errorf("reading scenario: %w", err)
	}

	in := base
	if err := yaml.Unmarshal(data, &in); err != nil {
		return base, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	return in, nil
}

// SaveInputs writes in as a YAML scenario file.
func SaveInputs(path string, in model.Inputs) error {
	data, err := yaml.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding scenario: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // scenario files are not secret
		return fmt.Errorf("writing scenario: %w", err)
	}
	return nil
}
