package build

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/sitecontent/internal/config"
	"git.home.luguber.info/inful/sitecontent/internal/content"
	ferrors "git.home.luguber.info/inful/sitecontent/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecontent/internal/git"
	"git.home.luguber.info/inful/sitecontent/internal/logfields"
	"git.home.luguber.info/inful/sitecontent/internal/manifest"
	"git.home.luguber.info/inful/sitecontent/internal/markdown"
	"git.home.luguber.info/inful/sitecontent/internal/metrics"
	"git.home.luguber.info/inful/sitecontent/internal/mounts"
	"git.home.luguber.info/inful/sitecontent/internal/observability"
	"git.home.luguber.info/inful/sitecontent/internal/pagetree"
)

// Sink receives the finished document. A sink failure fails the build.
type Sink interface {
	Write(ctx context.Context, sc *content.SiteContent) error
}

// Publisher announces a finished build. Publish failures are logged only.
type Publisher interface {
	Publish(ctx context.Context, sc *content.SiteContent) error
}

// Status represents the outcome of a build execution.
type Status string

const (
	StatusSuccess   Status = "success"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Request contains the inputs of one build.
type Request struct {
	Config *config.SiteConfig
	// FS overrides the filesystem the tree walk reads from.
	FS billy.Filesystem
	// Trigger names what started the build (cli, watch, schedule).
	Trigger string
}

// Result contains the outcome of a build execution.
type Result struct {
	Status   Status
	Content  *content.SiteContent
	Duration time.Duration
}

// Service is the canonical build pipeline.
type Service struct {
	recorder  metrics.Recorder
	converter content.Converter
	sinks     []Sink
	publisher Publisher
	lookPath  LookPathFunc
	now       func() time.Time
	newID     func() string
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder injects a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithSinks appends sinks run after a successful build, in order.
func WithSinks(sinks ...Sink) Option {
	return func(s *Service) { s.sinks = append(s.sinks, sinks...) }
}

// WithPublisher sets the build-completed publisher.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithConverter replaces the markdown converter.
func WithConverter(c content.Converter) Option {
	return func(s *Service) { s.converter = c }
}

// WithLookPath replaces binary detection (for tests).
func WithLookPath(f LookPathFunc) Option {
	return func(s *Service) { s.lookPath = f }
}

// NewService creates a Service with a markdown converter and no metrics.
func NewService(opts ...Option) *Service {
	s := &Service{
		recorder:  metrics.NoopRecorder{},
		converter: markdown.NewConverter(markdown.Options{Strikethrough: true}),
		lookPath:  lookPath,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes the complete build pipeline.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	start := s.now()
	res := &Result{Status: StatusFailed}
	warnings := 0

	finish := func(err error) (*Result, error) {
		res.Duration = s.now().Sub(start)
		canceled := errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		if canceled {
			res.Status = StatusCancelled
		}
		s.recorder.ObserveBuildDuration(res.Duration)
		s.recorder.IncBuildOutcome(metrics.Outcome(err, warnings, canceled))
		return res, err
	}

	cfg := req.Config
	if cfg == nil {
		return finish(ferrors.ConfigError("site configuration required").Build())
	}

	id := s.newID()
	ctx = observability.WithBuildID(ctx, id)
	if req.Trigger != "" {
		ctx = observability.WithTrigger(ctx, req.Trigger)
	}
	observability.InfoContext(ctx, "Starting content build", logfields.Path(cfg.PagesPath()))

	stage := s.now()
	ms, err := mounts.Resolve(cfg.Root(), cfg.PagesPath(), cfg.Mounts)
	s.recorder.ObserveStageDuration(metrics.StageMounts, s.now().Sub(stage))
	if err != nil {
		observability.ErrorContext(observability.WithStage(ctx, metrics.StageMounts), "Mount resolution failed", logfields.Error(err))
		return finish(err)
	}

	caps := ProbeCapabilities(cfg.Build.Optimizer, s.lookPath)
	observability.DebugContext(ctx, "Capabilities probed", slog.Bool("image_optimizer", caps.ImageOptimizer))

	stage = s.now()
	walkCtx := observability.WithStage(ctx, metrics.StageWalk)
	tree, err := pagetree.Build(walkCtx, pagetree.Options{
		FS:           req.FS,
		PagesDir:     cfg.PagesPath(),
		AssetRoot:    cfg.AssetPath(),
		Mounts:       ms,
		Index:        cfg.Index,
		Pages:        cfg.Pages,
		Layout:       cfg.Layout,
		Versions:     cfg.Versions,
		Ignore:       cfg.Ignore,
		Converter:    s.converter,
		Capabilities: caps,
		Concurrency:  cfg.Build.Concurrency,
	})
	s.recorder.ObserveStageDuration(metrics.StageWalk, s.now().Sub(stage))
	if err != nil {
		observability.ErrorContext(walkCtx, "Page tree walk failed", logfields.Error(err))
		return finish(err)
	}
	warnings = tree.Warnings

	head, err := git.ReadHead(cfg.Root())
	if err != nil {
		observability.WarnContext(ctx, "Could not read site commit", logfields.Error(err))
		warnings++
	}

	sc := &content.SiteContent{
		Pages:         tree.Pages,
		Assets:        tree.Assets,
		Icons:         manifest.SortedIcons(tree.Icons),
		VersionScopes: tree.VersionScopes,
		Build: content.BuildInfo{
			ID:        id,
			StartedAt: start.UTC().Format(time.RFC3339),
			Commit:    head.Commit,
			Warnings:  warnings,
		},
	}
	sections := 0
	for i := range sc.Pages {
		sections += sc.Pages[i].SectionCount()
	}
	s.recorder.SetPages(len(sc.Pages))
	s.recorder.SetSections(sections)
	s.recorder.SetAssets(len(sc.Assets))
	s.recorder.AddWarnings(warnings)
	sc.Build.DurationMS = float64(s.now().Sub(start).Microseconds()) / 1000
	res.Content = sc

	stage = s.now()
	exportCtx := observability.WithStage(ctx, metrics.StageExport)
	for _, sink := range s.sinks {
		if err := sink.Write(exportCtx, sc); err != nil {
			s.recorder.ObserveStageDuration(metrics.StageExport, s.now().Sub(stage))
			observability.ErrorContext(exportCtx, "Export failed", logfields.Error(err))
			if ferrors.IsClassified(err) {
				return finish(err)
			}
			return finish(ferrors.WrapError(err, ferrors.CategoryExport, "export site content").Build())
		}
	}
	s.recorder.ObserveStageDuration(metrics.StageExport, s.now().Sub(stage))

	if s.publisher != nil {
		stage = s.now()
		pubCtx := observability.WithStage(ctx, metrics.StagePublish)
		if err := s.publisher.Publish(pubCtx, sc); err != nil {
			observability.WarnContext(pubCtx, "Failed to publish build event", logfields.Error(err))
		}
		s.recorder.ObserveStageDuration(metrics.StagePublish, s.now().Sub(stage))
	}

	res.Status = StatusSuccess
	observability.InfoContext(ctx, "Content build complete",
		logfields.Pages(len(sc.Pages)),
		logfields.Sections(sections),
		logfields.Warnings(warnings),
		logfields.DurationMS(sc.Build.DurationMS))
	return finish(nil)
}
