// Package reports renders compliance report artifacts from ledger state and
// persists them through the artifact store.
package reports

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"pharmtrace/internal/blob"
	"pharmtrace/internal/core"
)

// Kind identifies a report type.
type Kind string

const (
	// KindRecallSummary lists every recall alert with its current status.
	KindRecallSummary Kind = "recall_summary"
	// KindQualityMetrics aggregates the inspection history of one batch.
	KindQualityMetrics Kind = "quality_metrics"
)

// Format identifies an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ExportStatus describes the lifecycle stage of an export request.
type ExportStatus string

const (
	ExportStatusQueued    ExportStatus = "queued"
	ExportStatusRunning   ExportStatus = "running"
	ExportStatusSucceeded ExportStatus = "succeeded"
	ExportStatusFailed    ExportStatus = "failed"
)

// Artifact captures one stored report artifact.
type Artifact struct {
	Key         string    `json:"key"`
	Format      Format    `json:"format"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	ETag        string    `json:"etag,omitempty"`
	URL         string    `json:"url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExportRecord tracks an export request and its resulting artifacts.
type ExportRecord struct {
	ID               string       `json:"id"`
	Kind             Kind         `json:"kind"`
	PharmaceuticalID string       `json:"pharmaceutical_id,omitempty"`
	Formats          []Format     `json:"formats"`
	Status           ExportStatus `json:"status"`
	Error            string       `json:"error,omitempty"`
	Artifacts        []Artifact   `json:"artifacts,omitempty"`
	RequestedBy      string       `json:"requested_by"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
	CompletedAt      *time.Time   `json:"completed_at,omitempty"`
}

// ExportInput represents an enqueue request for the worker.
type ExportInput struct {
	Kind             Kind
	PharmaceuticalID string // required for quality_metrics
	Formats          []Format
	RequestedBy      string
}

// table is the intermediate tabular form every report renders from.
type table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Worker renders reports asynchronously. Jobs are processed one at a time
// from a bounded queue; enqueueing fails when the queue is full.
type Worker struct {
	service *core.Service
	store   blob.Store
	audit   core.AuditRecorder

	queue chan task
	mu    sync.RWMutex
	jobs  map[string]*ExportRecord

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type task struct {
	id    string
	input ExportInput
}

// NewWorker constructs a report worker. The audit recorder may be nil.
func NewWorker(service *core.Service, store blob.Store, audit core.AuditRecorder) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		service: service,
		store:   store,
		audit:   audit,
		queue:   make(chan task, 32),
		jobs:    make(map[string]*ExportRecord),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start begins processing export requests.
func (w *Worker) Start() {
	w.wg.Add(1)
	go w.loop()
}

// Stop signals the worker to halt and waits for completion.
func (w *Worker) Stop(ctx context.Context) error {
	w.cancel()
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Worker) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case t := <-w.queue:
			w.process(t)
		}
	}
}

// Enqueue schedules a report export and returns the queued record.
func (w *Worker) Enqueue(ctx context.Context, input ExportInput) (ExportRecord, error) {
	switch input.Kind {
	case KindRecallSummary:
	case KindQualityMetrics:
		if input.PharmaceuticalID == "" {
			return ExportRecord{}, fmt.Errorf("pharmaceutical id required for %s report", input.Kind)
		}
	default:
		return ExportRecord{}, fmt.Errorf("unknown report kind %s", input.Kind)
	}

	formats := input.Formats
	if len(formats) == 0 {
		formats = []Format{FormatJSON, FormatCSV}
	}
	uniq := make([]Format, 0, len(formats))
	seen := make(map[Format]struct{})
	for _, f := range formats {
		if f != FormatJSON && f != FormatCSV {
			return ExportRecord{}, fmt.Errorf("unsupported report format %s", f)
		}
		if _, dup := seen[f]; dup {
			continue
		}
		uniq = append(uniq, f)
		seen[f] = struct{}{}
	}

	id := newID()
	now := time.Now().UTC()
	record := ExportRecord{
		ID:               id,
		Kind:             input.Kind,
		PharmaceuticalID: input.PharmaceuticalID,
		Formats:          uniq,
		Status:           ExportStatusQueued,
		RequestedBy:      input.RequestedBy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	w.mu.Lock()
	w.jobs[id] = &record
	queued := record.copy()
	w.mu.Unlock()

	w.recordAudit(ctx, id, ExportStatusQueued, "")

	select {
	case w.queue <- task{id: id, input: input}:
	default:
		w.fail(id, "export queue full")
		return ExportRecord{}, fmt.Errorf("export queue full")
	}
	return queued, nil
}

// Get returns a snapshot of the export record.
func (w *Worker) Get(id string) (ExportRecord, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	record, ok := w.jobs[id]
	if !ok {
		return ExportRecord{}, false
	}
	return record.copy(), true
}

func (w *Worker) process(t task) {
	w.updateStatus(t.id, ExportStatusRunning, "")

	tbl, err := w.build(t.input)
	if err != nil {
		w.fail(t.id, err.Error())
		return
	}

	record, ok := w.Get(t.id)
	if !ok {
		return
	}
	artifacts := make([]Artifact, 0, len(record.Formats))
	for _, format := range record.Formats {
		payload, contentType, err := render(tbl, format)
		if err != nil {
			w.fail(t.id, err.Error())
			return
		}
		key := fmt.Sprintf("reports/%s/%s.%s", t.id, record.Kind, format)
		info, err := w.store.Put(w.ctx, key, bytes.NewReader(payload), blob.PutOptions{
			ContentType: contentType,
			Metadata:    map[string]string{"kind": string(record.Kind), "rows": strconv.Itoa(len(tbl.Rows))},
		})
		if err != nil {
			w.fail(t.id, fmt.Sprintf("store artifact: %v", err))
			return
		}
		artifacts = append(artifacts, Artifact{
			Key:         info.Key,
			Format:      format,
			ContentType: contentType,
			SizeBytes:   info.Size,
			ETag:        info.ETag,
			URL:         info.URL,
			CreatedAt:   info.LastModified,
		})
	}
	w.complete(t.id, artifacts)
}

func (w *Worker) build(input ExportInput) (table, error) {
	switch input.Kind {
	case KindRecallSummary:
		return w.buildRecallSummary()
	case KindQualityMetrics:
		return w.buildQualityMetrics(input.PharmaceuticalID)
	default:
		return table{}, fmt.Errorf("unknown report kind %s", input.Kind)
	}
}

func (w *Worker) buildRecallSummary() (table, error) {
	recalls, err := w.service.ListRecalls(w.ctx)
	if err != nil {
		return table{}, err
	}
	tbl := table{Columns: []string{
		"id", "pharmaceutical_id", "severity", "status", "reason",
		"initiated_by", "initiated_at", "affected_batches",
	}}
	for _, r := range recalls {
		tbl.Rows = append(tbl.Rows, []string{
			r.ID,
			r.PharmaceuticalID,
			string(r.Severity),
			string(r.Status),
			r.Reason,
			r.InitiatedBy,
			r.InitiatedAt.UTC().Format(time.RFC3339),
			strings.Join(r.AffectedBatches, ";"),
		})
	}
	return tbl, nil
}

func (w *Worker) buildQualityMetrics(pharmaceuticalID string) (table, error) {
	metrics, err := w.service.QualityMetrics(w.ctx, pharmaceuticalID)
	if err != nil {
		return table{}, err
	}
	return table{
		Columns: []string{
			"pharmaceutical_id", "total_checks", "pass_rate",
			"average_temperature", "average_humidity",
		},
		Rows: [][]string{{
			metrics.PharmaceuticalID,
			strconv.Itoa(metrics.TotalChecks),
			strconv.Itoa(metrics.PassRate),
			strconv.Itoa(metrics.AverageTemperature),
			strconv.Itoa(metrics.AverageHumidity),
		}},
	}, nil
}

func render(tbl table, format Format) ([]byte, string, error) {
	switch format {
	case FormatJSON:
		payload, err := json.Marshal(tbl)
		if err != nil {
			return nil, "", fmt.Errorf("marshal json: %w", err)
		}
		return payload, "application/json", nil
	case FormatCSV:
		buf := &bytes.Buffer{}
		writer := csv.NewWriter(buf)
		if err := writer.Write(tbl.Columns); err != nil {
			return nil, "", err
		}
		for _, row := range tbl.Rows {
			if err := writer.Write(row); err != nil {
				return nil, "", err
			}
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "text/csv", nil
	default:
		return nil, "", fmt.Errorf("unsupported report format %s", format)
	}
}

func (w *Worker) updateStatus(id string, status ExportStatus, message string) {
	now := time.Now().UTC()
	w.mu.Lock()
	if record, ok := w.jobs[id]; ok {
		record.Status = status
		record.Error = message
		record.UpdatedAt = now
	}
	w.mu.Unlock()
	w.recordAudit(w.ctx, id, status, message)
}

func (w *Worker) complete(id string, artifacts []Artifact) {
	now := time.Now().UTC()
	w.mu.Lock()
	if record, ok := w.jobs[id]; ok {
		record.Status = ExportStatusSucceeded
		record.Error = ""
		record.Artifacts = artifacts
		record.UpdatedAt = now
		record.CompletedAt = &now
	}
	w.mu.Unlock()
	w.recordAudit(w.ctx, id, ExportStatusSucceeded, "")
}

func (w *Worker) fail(id, reason string) {
	now := time.Now().UTC()
	w.mu.Lock()
	if record, ok := w.jobs[id]; ok {
		record.Status = ExportStatusFailed
		record.Error = reason
		record.UpdatedAt = now
		record.CompletedAt = &now
	}
	w.mu.Unlock()
	w.recordAudit(w.ctx, id, ExportStatusFailed, reason)
}

func (w *Worker) recordAudit(ctx context.Context, id string, status ExportStatus, detail string) {
	if w.audit == nil {
		return
	}
	auditStatus := core.AuditStatusSuccess
	if status == ExportStatusFailed {
		auditStatus = core.AuditStatusError
	}
	if detail == "" {
		detail = string(status)
	}
	w.audit.Record(ctx, core.AuditEntry{
		ID:         newID(),
		Operation:  "report_export",
		Status:     auditStatus,
		EntityID:   id,
		Detail:     detail,
		OccurredAt: time.Now().UTC(),
	})
}

func (r ExportRecord) copy() ExportRecord {
	dup := r
	dup.Formats = append([]Format(nil), r.Formats...)
	if len(r.Artifacts) > 0 {
		dup.Artifacts = append([]Artifact(nil), r.Artifacts...)
	}
	return dup
}

func newID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return fmt.Sprintf("%x", b[:])
}
