package metrics

import "time"

// OutcomeLabel enumerates final build outcomes.
type OutcomeLabel string

const (
	OutcomeSuccess  OutcomeLabel = "success"
	OutcomeWarning  OutcomeLabel = "warning"
	OutcomeFailed   OutcomeLabel = "failed"
	OutcomeCanceled OutcomeLabel = "canceled"
)

// Stage names used by the build service.
const (
	StageMounts  = "mounts"
	StageWalk    = "walk"
	StageExport  = "export"
	StagePublish = "publish"
)

// Recorder defines observability hooks for builds. Implementations must be
// safe for concurrent use.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome OutcomeLabel)
	SetPages(n int)
	SetSections(n int)
	SetAssets(n int)
	AddWarnings(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncBuildOutcome(OutcomeLabel)               {}
func (NoopRecorder) SetPages(int)                               {}
func (NoopRecorder) SetSections(int)                            {}
func (NoopRecorder) SetAssets(int)                              {}
func (NoopRecorder) AddWarnings(int)                            {}

// Outcome derives the outcome label from a build error and its warning count.
func Outcome(err error, warnings int, canceled bool) OutcomeLabel {
	switch {
	case canceled:
		return OutcomeCanceled
	case err != nil:
		return OutcomeFailed
	case warnings > 0:
		return OutcomeWarning
	default:
		return OutcomeSuccess
	}
}
