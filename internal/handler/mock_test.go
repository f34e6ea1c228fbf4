package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/handler"
	"github.com/pkordes/triplog/internal/timeline"
)

// ---- mock RecordingServicer ------------------------------------------------

type mockRecordingServicer struct {
	status           func() timeline.Snapshot
	start            func(loc string) (timeline.Snapshot, error)
	addEvent         func(label string) (domain.Event, error)
	attachPhoto      func(seq int, ref string) (domain.Event, error)
	setStartLocation func(label string) (timeline.Snapshot, error)
	reset            func()
	save             func(ctx context.Context, notes string) (domain.Trip, error)
}

func (m *mockRecordingServicer) Status() timeline.Snapshot { return m.status() }
func (m *mockRecordingServicer) Start(loc string) (timeline.Snapshot, error) {
	return m.start(loc)
}
func (m *mockRecordingServicer) AddEvent(label string) (domain.Event, error) {
	return m.addEvent(label)
}
func (m *mockRecordingServicer) AttachPhoto(seq int, ref string) (domain.Event, error) {
	return m.attachPhoto(seq, ref)
}
func (m *mockRecordingServicer) SetStartLocation(label string) (timeline.Snapshot, error) {
	return m.setStartLocation(label)
}
func (m *mockRecordingServicer) Reset() { m.reset() }
func (m *mockRecordingServicer) Save(ctx context.Context, notes string) (domain.Trip, error) {
	return m.save(ctx, notes)
}

var _ handler.RecordingServicer = (*mockRecordingServicer)(nil)

// ---- mock TripServicer -----------------------------------------------------

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	getByID       func(ctx context.Context, id string) (domain.Trip, error)
	list          func(ctx context.Context, q domain.ListQuery) ([]domain.Trip, error)
	delete        func(ctx context.Context, id string) error
	updateNotes   func(ctx context.Context, id, notes string) (domain.Trip, error)
	renameEvent   func(ctx context.Context, id string, seq int, label string) (domain.Trip, error)
	deleteEvent   func(ctx context.Context, id string, seq int) (domain.Trip, error)
	setEventPhoto func(ctx context.Context, id string, seq int, ref string) (domain.Trip, error)
}

func (m *mockTripServicer) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) List(ctx context.Context, q domain.ListQuery) ([]domain.Trip, error) {
	return m.list(ctx, q)
}
func (m *mockTripServicer) Delete(ctx context.Context, id string) error {
	return m.delete(ctx, id)
}
func (m *mockTripServicer) UpdateNotes(ctx context.Context, id, notes string) (domain.Trip, error) {
	return m.updateNotes(ctx, id, notes)
}
func (m *mockTripServicer) RenameEvent(ctx context.Context, id string, seq int, label string) (domain.Trip, error) {
	return m.renameEvent(ctx, id, seq, label)
}
func (m *mockTripServicer) DeleteEvent(ctx context.Context, id string, seq int) (domain.Trip, error) {
	return m.deleteEvent(ctx, id, seq)
}
func (m *mockTripServicer) SetEventPhoto(ctx context.Context, id string, seq int, ref string) (domain.Trip, error) {
	return m.setEventPhoto(ctx, id, seq, ref)
}

// compile-time check: mockTripServicer must satisfy handler.TripServicer.
var _ handler.TripServicer = (*mockTripServicer)(nil)

// ---- mock export / stats / backup ------------------------------------------

type mockExportServicer struct {
	export func(ctx context.Context, format domain.ExportFormat) (domain.ExportFile, error)
}

func (m *mockExportServicer) Export(ctx context.Context, format domain.ExportFormat) (domain.ExportFile, error) {
	return m.export(ctx, format)
}

var _ handler.ExportServicer = (*mockExportServicer)(nil)

type mockStatsServicer struct {
	compute func(ctx context.Context) (domain.Statistics, error)
}

func (m *mockStatsServicer) Compute(ctx context.Context) (domain.Statistics, error) {
	return m.compute(ctx)
}

var _ handler.StatsServicer = (*mockStatsServicer)(nil)

type mockBackupServicer struct {
	create  func(ctx context.Context) (domain.Backup, error)
	restore func(ctx context.Context, r io.Reader) (int, error)
}

func (m *mockBackupServicer) Create(ctx context.Context) (domain.Backup, error) {
	return m.create(ctx)
}
func (m *mockBackupServicer) Restore(ctx context.Context, r io.Reader) (int, error) {
	return m.restore(ctx, r)
}

var _ handler.BackupServicer = (*mockBackupServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// serve routes req through the same router main.go mounts.
func serve(svc handler.Services, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.NewServer(svc).Routes().ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// errorResponse mirrors the JSON error envelope.
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

var t0 = time.Date(2025, 6, 1, 8, 15, 30, 0, time.UTC)

// tripFixture returns a reconciled two-event trip.
func tripFixture() domain.Trip {
	trip, err := timeline.ReconcileTrip(domain.Trip{
		ID:            "0197a0b2-7c00-7000-8000-000000000001",
		StartLocation: "Home",
		Notes:         "test notes",
		CreatedAt:     t0,
		Events: []domain.Event{
			{Seq: 1, Label: domain.StartLabel, Time: t0},
			{Seq: 2, Label: "arrived", Time: t0.Add(95 * time.Second)},
		},
	})
	if err != nil {
		panic(err)
	}
	return trip
}
