package submission

import (
	"context"
	"errors"
	"strings"
	"time"

	"imagefy/internal/auth"
	"imagefy/internal/generation"
	"imagefy/internal/telemetry"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Outcome is the resolution of one submit.
type Outcome struct {
	ImageURL string
	Err      error
}

// OK reports whether the submit produced an image.
func (o Outcome) OK() bool {
	return o.Err == nil && o.ImageURL != ""
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithLogger sets the logger (default: no-op).
func WithLogger(l *zap.Logger) Option {
	return func(w *Workflow) { w.logger = l }
}

// WithMetrics records outcomes and latencies.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(w *Workflow) { w.metrics = m }
}

// WithTracer wraps each request in a span.
func WithTracer(t oteltrace.Tracer) Option {
	return func(w *Workflow) { w.tracer = t }
}

// WithTimeout bounds each request. Zero means no deadline.
func WithTimeout(d time.Duration) Option {
	return func(w *Workflow) { w.timeout = d }
}

// Workflow owns the submission state of one mounted Results page. All
// methods except the request itself run on the caller's goroutine (the UI
// event loop); the request runs in a Task whose result is applied by Finish.
type Workflow struct {
	gen      generation.Generator
	auth     auth.Context
	notifier Notifier
	logger   *zap.Logger
	metrics  *telemetry.Metrics
	tracer   oteltrace.Tracer
	timeout  time.Duration

	state     State
	inflight  *Task
	unmounted bool
}

// New creates a workflow with empty state.
func New(gen generation.Generator, authCtx auth.Context, notifier Notifier, opts ...Option) *Workflow {
	w := &Workflow{
		gen:      gen,
		auth:     authCtx,
		notifier: notifier,
		logger:   zap.NewNop(),
		tracer:   telemetry.NoopTracer(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// State returns a copy of the current state.
func (w *Workflow) State() State {
	return w.state
}

// Status returns the page variant for the current auth state.
func (w *Workflow) Status() Status {
	return StatusOf(w.auth.State())
}

// SetPrompt updates the prompt text. Ignored while a request is in flight,
// matching the disabled input.
func (w *Workflow) SetPrompt(prompt string) {
	if w.state.Loading {
		return
	}
	w.state.Prompt = prompt
}

// Start checks the preconditions and, when they pass, launches the request.
// Failed preconditions notify the user and return the error without any
// network call. A second Start while a request is in flight returns ErrBusy.
func (w *Workflow) Start(ctx context.Context) (*Task, error) {
	if w.unmounted {
		return nil, ErrCanceled
	}
	if w.inflight != nil {
		return nil, ErrBusy
	}
	prompt, err := w.precheck()
	if err != nil {
		w.metrics.ObserveOutcome(outcomeLabel(err))
		w.logger.Debug("submission rejected", zap.Error(err))
		w.surface(err)
		return nil, err
	}

	w.state.Loading = true
	id := uuid.NewString()
	w.logger.Info("generation started",
		zap.String("request_id", id),
		zap.Int("prompt_length", len(prompt)),
	)
	w.inflight = startTask(ctx, id, w.timeout, func(ctx context.Context) Result {
		return w.request(ctx, id, prompt)
	})
	return w.inflight, nil
}

// Finish applies a task's result and clears Loading; Unmount is the only
// other way a request resolves. Results of stale tasks, or arriving after
// Unmount, are dropped.
func (w *Workflow) Finish(t *Task, res Result) Outcome {
	if t == nil || t != w.inflight || w.unmounted {
		return Outcome{Err: ErrCanceled}
	}
	w.inflight = nil
	w.state.Loading = false

	w.metrics.ObserveOutcome(outcomeLabel(res.Err))
	if res.Err != nil {
		w.logger.Warn("generation failed",
			zap.String("request_id", t.ID),
			zap.Duration("latency", res.Duration),
			zap.Error(res.Err),
		)
		w.surface(res.Err)
		return Outcome{Err: res.Err}
	}
	w.state.ImageURL = res.ImageURL
	w.logger.Info("generation finished",
		zap.String("request_id", t.ID),
		zap.Duration("latency", res.Duration),
	)
	return Outcome{ImageURL: res.ImageURL}
}

// Submit runs the whole workflow synchronously: set prompt, start, wait,
// finish.
func (w *Workflow) Submit(ctx context.Context, prompt string) Outcome {
	w.SetPrompt(prompt)
	t, err := w.Start(ctx)
	if err != nil {
		return Outcome{Err: err}
	}
	return w.Finish(t, t.Wait())
}

// GenerateAnother clears the image and the prompt. No network effect.
func (w *Workflow) GenerateAnother() {
	w.state.ImageURL = ""
	w.state.Prompt = ""
}

// RequestLogin asks the auth context for the login surface.
func (w *Workflow) RequestLogin() {
	w.auth.SetShowLogin(true)
}

// Unmount cancels the in-flight request and resolves Loading; no state
// changes afterwards.
func (w *Workflow) Unmount() {
	w.unmounted = true
	if w.inflight != nil {
		w.logger.Debug("generation canceled on unmount", zap.String("request_id", w.inflight.ID))
		w.inflight.Cancel()
		w.inflight = nil
	}
	w.state.Loading = false
}

func (w *Workflow) precheck() (string, error) {
	if !w.auth.State().SignedIn() {
		w.auth.SetShowLogin(true)
		return "", ErrAuthRequired
	}
	prompt := strings.TrimSpace(w.state.Prompt)
	if prompt == "" {
		return "", ErrEmptyPrompt
	}
	return prompt, nil
}

// request runs on the task goroutine; it must not touch w.state.
func (w *Workflow) request(ctx context.Context, id, prompt string) Result {
	ctx, span := w.tracer.Start(ctx, "imagefy.generate", oteltrace.WithAttributes(
		attribute.String("imagefy.request.id", id),
		attribute.Int("imagefy.prompt.length", len(prompt)),
	))
	defer span.End()

	start := time.Now()
	resp, err := w.gen.Generate(ctx, generation.Request{Prompt: prompt, RequestID: id})
	elapsed := time.Since(start)
	w.metrics.ObserveRequest(elapsed)

	err = classify(ctx, err)
	span.SetAttributes(attribute.String("imagefy.outcome", outcomeLabel(err)))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{Err: err, Duration: elapsed}
	}
	return Result{ImageURL: resp.ImageURL, Duration: elapsed}
}

// classify maps generator errors onto the workflow taxonomy.
func classify(ctx context.Context, err error) error {
	var apiErr *generation.APIError
	switch {
	case err == nil:
		return nil
	case errors.Is(ctx.Err(), context.Canceled):
		return ErrCanceled
	case errors.As(err, &apiErr):
		return &DomainError{StatusCode: apiErr.StatusCode, Message: apiErr.Message}
	case errors.Is(err, generation.ErrNoImage):
		return ErrGenerationFailed
	default:
		return &TransportError{Err: err}
	}
}

func (w *Workflow) surface(err error) {
	text := UserMessage(err)
	if text == "" || w.notifier == nil {
		return
	}
	w.notifier.Notify(Notification{Level: LevelError, Text: text})
}
