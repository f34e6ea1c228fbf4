package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/handler"
)

func exportSvc(m *mockExportServicer) handler.Services {
	return handler.Services{Export: m}
}

func TestGetExport_DefaultJSON(t *testing.T) {
	var got domain.ExportFormat
	m := &mockExportServicer{
		export: func(_ context.Context, f domain.ExportFormat) (domain.ExportFile, error) {
			got = f
			return domain.ExportFile{Name: "trips_export_1.json", ContentType: "application/json", Body: []byte("[]")}, nil
		},
	}

	rec := serve(exportSvc(m), httptest.NewRequest(http.MethodGet, "/export", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.ExportJSON, got)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `filename="trips_export_1.json"`)
	assert.Equal(t, "[]", rec.Body.String())
}

func TestGetExport_CSV(t *testing.T) {
	m := &mockExportServicer{
		export: func(_ context.Context, f domain.ExportFormat) (domain.ExportFile, error) {
			require.Equal(t, domain.ExportCSV, f)
			return domain.ExportFile{Name: "x.csv", ContentType: "text/csv", Body: []byte("date,start_time\n")}, nil
		},
	}

	rec := serve(exportSvc(m), httptest.NewRequest(http.MethodGet, "/export?format=csv", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "date,start_time"))
}

func TestGetExport_422_UnknownFormat(t *testing.T) {
	m := &mockExportServicer{}

	rec := serve(exportSvc(m), httptest.NewRequest(http.MethodGet, "/export?format=xml", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGetExport_500(t *testing.T) {
	m := &mockExportServicer{
		export: func(context.Context, domain.ExportFormat) (domain.ExportFile, error) {
			return domain.ExportFile{}, errors.New("boom")
		},
	}

	rec := serve(exportSvc(m), httptest.NewRequest(http.MethodGet, "/export?format=text", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, domain.KindInternal, decodeError(t, rec).Error.Code)
}

// ---- GET /stats ------------------------------------------------------------

func TestGetStats(t *testing.T) {
	m := &mockStatsServicer{
		compute: func(context.Context) (domain.Statistics, error) {
			return domain.Statistics{TotalTrips: 3, TotalDuration: 450, MostCommonEvents: []domain.EventCount{{Label: "bus", Count: 2}}}, nil
		},
	}

	rec := serve(handler.Services{Stats: m}, httptest.NewRequest(http.MethodGet, "/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalTrips":3`)
	assert.Contains(t, rec.Body.String(), `"label":"bus"`)
}

func TestGetStats_500(t *testing.T) {
	m := &mockStatsServicer{
		compute: func(context.Context) (domain.Statistics, error) {
			return domain.Statistics{}, fmt.Errorf("list: %w", domain.ErrStorage)
		},
	}

	rec := serve(handler.Services{Stats: m}, httptest.NewRequest(http.MethodGet, "/stats", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
