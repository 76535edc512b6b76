// Package service orchestrates the notification pipeline: receive a raw
// provider event, classify it, build the matching payload, and hand it to the
// publisher exactly once.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/google/uuid"

	"idrelay/internal/datacenter"
	"idrelay/internal/event"
	"idrelay/internal/journal"
	"idrelay/internal/notification"
	"idrelay/internal/notification/metrics"
	"idrelay/internal/notification/models"
	"idrelay/internal/notification/ports"
	dErrors "idrelay/pkg/domain-errors"
	"idrelay/pkg/requestcontext"
)

// Config is the pipeline's static configuration, initialized once at process
// start and immutable thereafter.
type Config struct {
	// MarketingExcludedCountries lists countries where the marketing-consent
	// flag must always project false, regardless of the record.
	MarketingExcludedCountries []string
}

// InboundEvent is one raw provider event. DataCenter is parsed by the
// transport layer before the pipeline runs.
type InboundEvent struct {
	EventName  string
	Account    models.AccountRecord
	DataCenter datacenter.DataCenter
	Context    event.Context
}

// Status tracks the pipeline's terminal states.
type Status string

const (
	StatusDispatched Status = "dispatched"
	StatusDropped    Status = "dropped"
)

// Result reports how an event left the pipeline. Payload is nil for dropped
// events; the relay holds no reference to it after handoff.
type Result struct {
	Status  Status
	Kind    event.Kind
	Payload models.Payload
}

// DispatchReason qualifies a DispatchError.
type DispatchReason string

const (
	ReasonPublishFailed DispatchReason = "publish_failed"
	ReasonCancelled     DispatchReason = "cancelled"
)

// DispatchError is surfaced when the publisher handoff fails or is cancelled.
// The pipeline performs no retry; re-submission of the same raw event by the
// caller is safe since building is pure.
type DispatchError struct {
	Reason DispatchReason
	Err    error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch failed (%s): %v", e.Reason, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// Service is the notification pipeline. All its dependencies are safe for
// concurrent use; the pipeline itself does not serialize per-account, so
// callers must not overlap two dispatches for the same uid if the downstream
// consumer is not idempotent.
type Service struct {
	publisher         ports.Publisher
	journal           ports.Journal
	logger            *slog.Logger
	metrics           *metrics.Metrics
	tracer            trace.Tracer
	excludedCountries map[string]struct{}
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithJournal(j ports.Journal) Option {
	return func(s *Service) {
		s.journal = j
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

func New(publisher ports.Publisher, cfg Config, opts ...Option) (*Service, error) {
	if publisher == nil {
		return nil, fmt.Errorf("publisher is required")
	}

	svc := &Service{
		publisher:         publisher,
		logger:            slog.Default(),
		tracer:            otel.Tracer("idrelay/notification"),
		excludedCountries: make(map[string]struct{}, len(cfg.MarketingExcludedCountries)),
	}
	for _, country := range cfg.MarketingExcludedCountries {
		svc.excludedCountries[country] = struct{}{}
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Process runs one event through the pipeline. Unrecognized events terminate
// in the dropped state without error and without touching the publisher.
func (s *Service) Process(ctx context.Context, in InboundEvent) (*Result, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "notification.process", trace.WithAttributes(
		attribute.String("event.name", in.EventName),
		attribute.String("data_center", in.DataCenter.String()),
	))
	defer span.End()

	s.incrementReceived(in.DataCenter.String())

	class, err := event.Classify(in.EventName, in.Context)
	if err != nil {
		span.SetStatus(codes.Error, "classification rejected")
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "event rejected by classifier")
	}
	span.SetAttributes(attribute.String("event.kind", string(class.Kind)))

	if class.Kind == event.KindUnrecognized {
		s.incrementDropped()
		s.journalOutcome(ctx, in, class.Kind, journal.StatusDropped, "unrecognized event name")
		s.logger.InfoContext(ctx, "event dropped as unrecognized",
			"request_id", requestcontext.RequestID(ctx),
			"event_name", in.EventName,
			"data_center", in.DataCenter.String(),
		)
		return &Result{Status: StatusDropped, Kind: class.Kind}, nil
	}

	payload, err := notification.Build(class, s.applyConsentExclusion(in.Account))
	if err != nil {
		span.SetStatus(codes.Error, "payload build rejected")
		if errors.Is(err, notification.ErrMissingCredential) {
			return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "record lacks required credential")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build payload")
	}

	if err := s.dispatch(ctx, payload); err != nil {
		s.incrementDispatchFailure(string(err.Reason))
		s.journalOutcome(ctx, in, class.Kind, journal.StatusFailed, string(err.Reason))
		span.SetStatus(codes.Error, "dispatch failed")
		s.logger.ErrorContext(ctx, "dispatch failed",
			"request_id", requestcontext.RequestID(ctx),
			"event_name", in.EventName,
			"uid", in.Account.UID,
			"reason", err.Reason,
			"error", err.Err,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "notification dispatch failed")
	}

	s.incrementDispatched(string(class.Kind))
	s.observeDispatch(start)
	s.journalOutcome(ctx, in, class.Kind, journal.StatusDispatched, "")
	s.logger.InfoContext(ctx, "notification dispatched",
		"request_id", requestcontext.RequestID(ctx),
		"event_name", in.EventName,
		"kind", class.Kind,
		"uid", in.Account.UID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &Result{Status: StatusDispatched, Kind: class.Kind, Payload: payload}, nil
}

// dispatch hands the payload to the publisher exactly once. The handoff is
// bounded by the caller's context: cancellation surfaces as ReasonCancelled
// rather than hanging.
func (s *Service) dispatch(ctx context.Context, payload models.Payload) *DispatchError {
	if err := ctx.Err(); err != nil {
		return &DispatchError{Reason: ReasonCancelled, Err: err}
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return &DispatchError{Reason: ReasonCancelled, Err: err}
		}
		return &DispatchError{Reason: ReasonPublishFailed, Err: err}
	}
	return nil
}

// applyConsentExclusion clears the marketing-consent flag for accounts in
// excluded countries before projection. The record is passed by value, so the
// caller's copy is untouched.
func (s *Service) applyConsentExclusion(record models.AccountRecord) models.AccountRecord {
	if _, excluded := s.excludedCountries[record.Country]; excluded {
		record.MarketingConsent = nil
	}
	return record
}

func (s *Service) journalOutcome(ctx context.Context, in InboundEvent, kind event.Kind, status journal.Status, reason string) {
	if s.journal == nil {
		return
	}
	entry := journal.Entry{
		ID:         uuid.New(),
		UID:        in.Account.UID,
		EventName:  in.EventName,
		Kind:       string(kind),
		DataCenter: in.DataCenter.String(),
		Status:     status,
		Reason:     reason,
		Timestamp:  requestcontext.Now(ctx),
	}
	if err := s.journal.Append(ctx, entry); err != nil {
		s.logger.WarnContext(ctx, "failed to journal pipeline outcome",
			"uid", in.Account.UID,
			"status", status,
			"error", err,
		)
	}
}

func (s *Service) incrementReceived(dataCenter string) {
	if s.metrics != nil {
		s.metrics.IncrementReceived(dataCenter)
	}
}

func (s *Service) incrementDispatched(kind string) {
	if s.metrics != nil {
		s.metrics.IncrementDispatched(kind)
	}
}

func (s *Service) incrementDropped() {
	if s.metrics != nil {
		s.metrics.IncrementDropped()
	}
}

func (s *Service) incrementDispatchFailure(reason string) {
	if s.metrics != nil {
		s.metrics.IncrementDispatchFailure(reason)
	}
}

func (s *Service) observeDispatch(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveDispatch(start)
	}
}
