package domain

import "time"

// BackupVersion is written into every backup and required on restore.
const BackupVersion = "1.0"

// Backup is the envelope of a full logbook backup file.
type Backup struct {
	Version    string    `json:"version"`
	ExportDate time.Time `json:"exportDate"`
	Trips      []Trip    `json:"trips"`
}
