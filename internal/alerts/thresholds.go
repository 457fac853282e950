package alerts

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Thresholds holds the red-line KPI cutoffs used by the alert evaluator.
type Thresholds struct {
	CPIRed float64 `yaml:"cpi_red"`
	SPIRed float64 `yaml:"spi_red"`
}

// DefaultThresholds returns the standard red-line cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{CPIRed: 0.90, SPIRed: 0.85}
}

// LoadThresholds reads alert thresholds from a YAML file. Missing keys
// fall back to the defaults.
func LoadThresholds(path string) (Thresholds, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Thresholds{}, eris.Wrapf(err, "alerts: read thresholds %s", path)
	}

	// The YAML has a top-level "thresholds" key.
	var wrapper struct {
		Thresholds Thresholds `yaml:"thresholds"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return Thresholds{}, eris.Wrap(err, "alerts: parse thresholds")
	}

	th := wrapper.Thresholds
	def := DefaultThresholds()
	if th.CPIRed == 0 {
		th.CPIRed = def.CPIRed
	}
	if th.SPIRed == 0 {
		th.SPIRed = def.SPIRed
	}
	return th, nil
}
