package initwizard

// Result holds the answers collected by the wizard.
type Result struct {
	Preset     string
	DenyUnwrap bool
}

func DefaultResult() Result {
	return Result{
		Preset: "go",
	}
}
