package config

import "github.com/cockroachdb/errors"

// Preset identifies a known toolchain whose check commands we can generate.
type Preset string

const (
	PresetGo     Preset = "go"
	PresetRust   Preset = "rust"
	PresetCustom Preset = "custom"
)

func AllPresets() []Preset {
	return []Preset{PresetGo, PresetRust, PresetCustom}
}

func ValidatePreset(s string) error {
	for _, p := range AllPresets() {
		if s == string(p) {
			return nil
		}
	}
	return errors.Newf("unknown preset %q: use go, rust or custom", s)
}

// ForPreset returns the initial config for a toolchain preset.
func ForPreset(p Preset) (Config, error) {
	switch p {
	case PresetGo:
		return Config{
			Version: "1",
			Steps: Steps{
				Fmt:   Step{Command: []string{"golangci-lint", "fmt", "--diff", "./..."}},
				Lint:  LintStep{Command: []string{"golangci-lint", "run", "./..."}},
				Tests: Step{Command: []string{"go", "test", "./..."}},
			},
		}, nil
	case PresetRust:
		return Config{
			Version: "1",
			Steps: Steps{
				Fmt: Step{Command: []string{"cargo", "fmt", "--check"}},
				Lint: LintStep{
					Command: []string{"cargo", "clippy", "--"},
					Deny:    []string{"warnings"},
				},
				Tests: Step{Command: []string{"cargo", "test"}},
			},
		}, nil
	case PresetCustom:
		return Config{
			Version: "1",
			Steps: Steps{
				Fmt:   Step{Command: []string{"true"}},
				Lint:  LintStep{Command: []string{"true"}},
				Tests: Step{Command: []string{"true"}},
			},
		}, nil
	default:
		return Config{}, errors.Newf("unknown preset %q", p)
	}
}
