package metrics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		warnings int
		canceled bool
		want     OutcomeLabel
	}{
		{"clean", nil, 0, false, OutcomeSuccess},
		{"warnings", nil, 3, false, OutcomeWarning},
		{"failed", errors.New("boom"), 0, false, OutcomeFailed},
		{"canceled wins", errors.New("ctx"), 1, true, OutcomeCanceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Outcome(tt.err, tt.warnings, tt.canceled))
		})
	}
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	assert.NotPanics(t, func() {
		r.ObserveBuildDuration(0)
		r.ObserveStageDuration(StageWalk, 0)
		r.IncBuildOutcome(OutcomeSuccess)
		r.SetPages(1)
		r.SetSections(2)
		r.SetAssets(3)
		r.AddWarnings(4)
	})
}
