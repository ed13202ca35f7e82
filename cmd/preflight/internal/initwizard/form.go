package initwizard

import (
	"github.com/advdv/preflight/cmd/preflight/internal/config"
	"github.com/charmbracelet/huh"
)

type FormBuilder interface {
	Build(result *Result) *huh.Form
}

type formBuilder struct{}

func NewFormBuilder() FormBuilder {
	return &formBuilder{}
}

func (b *formBuilder) Build(result *Result) *huh.Form {
	*result = DefaultResult()
	return huh.NewForm(
		huh.NewGroup(
			b.presetSelect(&result.Preset),
			b.denyUnwrapConfirm(&result.DenyUnwrap),
		),
	)
}

func (b *formBuilder) presetSelect(value *string) *huh.Select[string] {
	var options []huh.Option[string]
	for _, p := range config.AllPresets() {
		options = append(options, huh.NewOption(string(p), string(p)))
	}

	return huh.NewSelect[string]().
		Title("Toolchain preset").
		Description("Generates the fmt, lint and test commands for your toolchain").
		Options(options...).
		Value(value).
		Validate(config.ValidatePreset)
}

func (b *formBuilder) denyUnwrapConfirm(value *bool) *huh.Confirm {
	return huh.NewConfirm().
		Title("Deny unwrap in lint?").
		Description("Rust preset only: also fail the lint step on clippy::unwrap_used").
		Value(value)
}
