package core

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"pharmtrace/internal/infra/persistence/memory"
	"pharmtrace/pkg/domain"
)

// Reward schedule. These values are part of the observable contract of the
// ledger, not configuration.
const (
	// PointsSupplyChainEvent is credited for every recorded supply-chain event.
	PointsSupplyChainEvent = 10
	// PointsPassedQualityCheck is credited to the inspector of a passed check.
	PointsPassedQualityCheck = 15
	// PointsRecallInitiation is credited to the initiator of a recall.
	PointsRecallInitiation = 25
)

// Service exposes the transactional ledger operations: identity, catalog,
// event ledger, quality engine, thermal monitor, recall coordination, and the
// reward ledger. Every mutating operation runs as a single store transaction
// with no intermediate observable state.
type Service struct {
	store   domain.PersistentStore
	logger  Logger
	metrics MetricsRecorder
	tracer  Tracer
	audit   AuditRecorder
}

// Option configures optional service collaborators.
type Option func(*Service)

// WithLogger installs a structured logger.
func WithLogger(logger Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetricsRecorder installs a metrics recorder.
func WithMetricsRecorder(recorder MetricsRecorder) Option {
	return func(s *Service) {
		if recorder != nil {
			s.metrics = recorder
		}
	}
}

// WithTracer installs a tracer.
func WithTracer(tracer Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithAuditRecorder installs an audit recorder.
func WithAuditRecorder(recorder AuditRecorder) Option {
	return func(s *Service) {
		if recorder != nil {
			s.audit = recorder
		}
	}
}

// NewService constructs a service backed by the supplied store.
func NewService(store domain.PersistentStore, opts ...Option) *Service {
	s := &Service{
		store:   store,
		logger:  noopLogger{},
		metrics: noopMetricsRecorder{},
		tracer:  noopTracer{},
		audit:   noopAuditRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewInMemoryService creates a service over a fresh in-memory store with the
// given rules engine. A nil engine gets the default policy set.
func NewInMemoryService(engine *RulesEngine, opts ...Option) *Service {
	if engine == nil {
		engine = NewDefaultRulesEngine()
	}
	return NewService(memory.NewStore(engine), opts...)
}

// Store returns the underlying storage implementation.
func (s *Service) Store() domain.PersistentStore {
	return s.store
}

func newID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])
}

// begin starts instrumentation for one operation. The returned func must be
// called exactly once with the primary entity ID (may be empty) and outcome.
func (s *Service) begin(ctx context.Context, operation string) (context.Context, func(entityID string, err error)) {
	started := time.Now()
	ctx, span := s.tracer.Start(ctx, operation)
	return ctx, func(entityID string, err error) {
		span.End(err)
		s.metrics.Observe(ctx, operation, err == nil, time.Since(started))
		status := AuditStatusSuccess
		detail := ""
		if err != nil {
			status = AuditStatusError
			detail = err.Error()
			s.logger.Warn("operation failed", "operation", operation, "error", err)
		} else {
			s.logger.Debug("operation completed", "operation", operation, "entity_id", entityID)
		}
		s.audit.Record(ctx, AuditEntry{
			ID:         newID(),
			Operation:  operation,
			Status:     status,
			EntityID:   entityID,
			Detail:     detail,
			OccurredAt: time.Now().UTC(),
		})
	}
}
