package domain

// ExportFormat selects the encoding of a trip export.
type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportCSV  ExportFormat = "csv"
	ExportText ExportFormat = "text"
)

// ParseExportFormat maps a user-supplied format name onto an ExportFormat.
// An empty string selects JSON.
func ParseExportFormat(s string) (ExportFormat, bool) {
	switch ExportFormat(s) {
	case "", ExportJSON:
		return ExportJSON, true
	case ExportCSV:
		return ExportCSV, true
	case ExportText, "txt":
		return ExportText, true
	}
	return "", false
}

// ExportRow is a single row in the flat CSV export: one row per trip.
// Times are pre-formatted so the encoder does no date handling.
type ExportRow struct {
	Date            string // "2006-01-02" of the first event
	StartTime       string // "15:04:05"
	EndTime         string // "15:04:05"
	DurationSeconds int64
	EventCount      int
	StartLocation   string // "-" when the trip has none
	Summary         string // newlines flattened to spaces
}

// ExportFile is an encoded export ready to be written or served.
type ExportFile struct {
	Name        string
	ContentType string
	Body        []byte
}
