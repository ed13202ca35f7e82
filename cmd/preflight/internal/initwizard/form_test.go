package initwizard_test

import (
	"testing"

	"github.com/advdv/preflight/cmd/preflight/internal/initwizard"
)

func TestFormBuilder_Build(t *testing.T) {
	t.Parallel()

	t.Run("seeds the result with defaults", func(t *testing.T) {
		t.Parallel()
		var result initwizard.Result
		form := initwizard.NewFormBuilder().Build(&result)

		if form == nil {
			t.Fatal("expected a form")
		}
		if result.Preset != "go" {
			t.Errorf("expected default preset 'go', got %q", result.Preset)
		}
	})
}
