package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/repo"
	"github.com/pkordes/triplog/internal/timeline"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"date", "start_time", "end_time", "duration_seconds",
	"event_count", "start_location", "summary",
}

// noLocation fills the location column of trips recorded without one.
const noLocation = "-"

// ExportService encodes every saved trip as JSON, CSV or a plain-text report.
type ExportService struct {
	trips repo.TripRepo
	clock timeline.Clock
}

// NewExportService constructs an ExportService backed by the provided repo.
// A nil clock selects the system clock.
func NewExportService(r repo.TripRepo, clock timeline.Clock) *ExportService {
	if clock == nil {
		clock = timeline.SystemClock{}
	}
	return &ExportService{trips: r, clock: clock}
}

// Export encodes all trips in the requested format.
func (s *ExportService) Export(ctx context.Context, format domain.ExportFormat) (domain.ExportFile, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return domain.ExportFile{}, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}

	now := s.clock.Now()
	base := "trips_export_" + strconv.FormatInt(now.UnixMilli(), 10)

	switch format {
	case domain.ExportJSON:
		body, err := json.MarshalIndent(trips, "", "  ")
		if err != nil {
			return domain.ExportFile{}, fmt.Errorf("service.ExportService.Export: %w", err)
		}
		return domain.ExportFile{Name: base + ".json", ContentType: "application/json", Body: body}, nil
	case domain.ExportCSV:
		body, err := encodeCSV(Rows(trips))
		if err != nil {
			return domain.ExportFile{}, fmt.Errorf("service.ExportService.Export: %w", err)
		}
		return domain.ExportFile{Name: base + ".csv", ContentType: "text/csv", Body: body}, nil
	case domain.ExportText:
		return domain.ExportFile{Name: base + ".txt", ContentType: "text/plain; charset=utf-8", Body: textReport(trips, now.Format("2006-01-02 15:04:05"))}, nil
	}
	return domain.ExportFile{}, fmt.Errorf("service.ExportService.Export: %w: unknown format %q", domain.ErrValidation, format)
}

// Rows flattens trips into one ExportRow per trip.
func Rows(trips []domain.Trip) []domain.ExportRow {
	rows := make([]domain.ExportRow, 0, len(trips))
	for _, t := range trips {
		loc := t.StartLocation
		if loc == "" {
			loc = noLocation
		}
		rows = append(rows, domain.ExportRow{
			Date:            t.StartTime.Format("2006-01-02"),
			StartTime:       timeline.FormatClock(t.StartTime),
			EndTime:         timeline.FormatClock(t.EndTime),
			DurationSeconds: t.DurationSeconds(),
			EventCount:      len(t.Events),
			StartLocation:   loc,
			Summary:         strings.ReplaceAll(t.Summary, "\n", " "),
		})
	}
	return rows
}

func encodeCSV(rows []domain.ExportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeaders); err != nil {
		return nil, err
	}
	for _, r := range rows {
		record := []string{
			r.Date,
			r.StartTime,
			r.EndTime,
			strconv.FormatInt(r.DurationSeconds, 10),
			strconv.Itoa(r.EventCount),
			r.StartLocation,
			r.Summary,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func textReport(trips []domain.Trip, exportedAt string) []byte {
	var b strings.Builder
	b.WriteString("=== Trips report ===\n\n")
	fmt.Fprintf(&b, "Total trips: %d\n", len(trips))
	fmt.Fprintf(&b, "Exported at: %s\n\n", exportedAt)
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	for i, t := range trips {
		fmt.Fprintf(&b, "Trip #%d\n", i+1)
		fmt.Fprintf(&b, "Date: %s\n", t.StartTime.Format("2006-01-02"))
		if t.Notes != "" {
			fmt.Fprintf(&b, "Notes: %s\n", t.Notes)
		}
		b.WriteString(t.Summary + "\n")
		b.WriteString("\n" + strings.Repeat("-", 50) + "\n\n")
	}
	return []byte(b.String())
}
