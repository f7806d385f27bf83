package core_test

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"pharmtrace/internal/core"
	"pharmtrace/pkg/domain"
)

type captureLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (l *captureLogger) log(level, msg string) {
	l.mu.Lock()
	l.msgs = append(l.msgs, level+": "+msg)
	l.mu.Unlock()
}

func (l *captureLogger) Debug(msg string, _ ...any) { l.log("debug", msg) }
func (l *captureLogger) Info(msg string, _ ...any)  { l.log("info", msg) }
func (l *captureLogger) Warn(msg string, _ ...any)  { l.log("warn", msg) }
func (l *captureLogger) Error(msg string, _ ...any) { l.log("error", msg) }

type captureMetrics struct {
	mu           sync.Mutex
	observations []string
}

func (m *captureMetrics) Observe(_ context.Context, operation string, success bool, _ time.Duration) {
	m.mu.Lock()
	status := "success"
	if !success {
		status = "error"
	}
	m.observations = append(m.observations, operation+"/"+status)
	m.mu.Unlock()
}

type captureAudit struct {
	mu      sync.Mutex
	entries []core.AuditEntry
}

func (a *captureAudit) Record(_ context.Context, entry core.AuditEntry) {
	a.mu.Lock()
	a.entries = append(a.entries, entry)
	a.mu.Unlock()
}

func TestServiceEmitsObservabilitySignals(t *testing.T) {
	logger := &captureLogger{}
	metrics := &captureMetrics{}
	audit := &captureAudit{}
	tracer := core.NewJSONTracer(&bytes.Buffer{})

	svc := core.NewInMemoryService(core.NewDefaultRulesEngine(),
		core.WithLogger(logger),
		core.WithMetricsRecorder(metrics),
		core.WithTracer(tracer),
		core.WithAuditRecorder(audit),
	)
	ctx := context.Background()

	if _, _, err := svc.CreateUser(ctx, "alice", domain.RoleAdmin); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := svc.GetUser(ctx, "missing"); err == nil {
		t.Fatalf("expected not found")
	}

	metrics.mu.Lock()
	observed := append([]string(nil), metrics.observations...)
	metrics.mu.Unlock()
	if len(observed) != 2 || observed[0] != "create_user/success" || observed[1] != "get_user/error" {
		t.Fatalf("unexpected observations %v", observed)
	}

	audit.mu.Lock()
	entries := append([]core.AuditEntry(nil), audit.entries...)
	audit.mu.Unlock()
	if len(entries) != 2 {
		t.Fatalf("expected two audit entries, got %d", len(entries))
	}
	if entries[0].Operation != "create_user" || entries[0].Status != core.AuditStatusSuccess || entries[0].EntityID == "" {
		t.Fatalf("unexpected first entry %+v", entries[0])
	}
	if entries[1].Status != core.AuditStatusError || entries[1].Detail == "" {
		t.Fatalf("unexpected second entry %+v", entries[1])
	}

	spans := tracer.Entries()
	if len(spans) != 2 || spans[0].Operation != "create_user" || spans[1].Status != "error" {
		t.Fatalf("unexpected spans %+v", spans)
	}
	if spans[0].Seq != 1 || spans[1].Seq != 2 {
		t.Fatalf("expected sequential span numbering, got %d then %d", spans[0].Seq, spans[1].Seq)
	}

	logger.mu.Lock()
	joined := strings.Join(logger.msgs, "\n")
	logger.mu.Unlock()
	if !strings.Contains(joined, "warn: operation failed") {
		t.Fatalf("expected failure log, got %q", joined)
	}
}

func TestExpvarMetricsRecorderAggregates(t *testing.T) {
	rec := core.NewExpvarMetricsRecorder("")
	ctx := context.Background()

	rec.Observe(ctx, "record_event", true, 20*time.Millisecond)
	rec.Observe(ctx, "record_event", false, 5*time.Millisecond)
	rec.Observe(ctx, "", true, time.Millisecond) // ignored

	snap := rec.Snapshot()
	stats := snap.Operations["record_event"]
	if stats.Success != 1 || stats.Error != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if stats.DurationMSTotal < 25 {
		t.Fatalf("unexpected total duration %+v", stats)
	}
	if _, ok := snap.Operations[""]; ok {
		t.Fatalf("empty operation must be ignored, got %+v", snap.Operations)
	}
	if rec.Name() == "" {
		t.Fatalf("expected generated name")
	}
}

func TestPrometheusMetricsRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := core.NewPrometheusMetricsRecorder(reg)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}
	ctx := context.Background()

	rec.Observe(ctx, "record_event", true, 10*time.Millisecond)
	rec.Observe(ctx, "record_event", false, 5*time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	if !names["pharmtrace_operations_total"] || !names["pharmtrace_operation_duration_seconds"] {
		t.Fatalf("expected registered metric families, got %v", names)
	}

	// Double registration must surface the registry error.
	if _, err := core.NewPrometheusMetricsRecorder(reg); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}
