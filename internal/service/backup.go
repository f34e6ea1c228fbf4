package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/repo"
	"github.com/pkordes/triplog/internal/timeline"
)

// BackupService writes and restores full logbook backups.
type BackupService struct {
	trips repo.TripRepo
	clock timeline.Clock
	log   *slog.Logger
}

// NewBackupService constructs a BackupService. Nil clock and logger select
// the system clock and slog.Default().
func NewBackupService(r repo.TripRepo, clock timeline.Clock, log *slog.Logger) *BackupService {
	if clock == nil {
		clock = timeline.SystemClock{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &BackupService{trips: r, clock: clock, log: log}
}

// Create snapshots every trip into a versioned backup envelope.
func (s *BackupService) Create(ctx context.Context) (domain.Backup, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return domain.Backup{}, fmt.Errorf("service.BackupService.Create: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return domain.Backup{
		Version:    domain.BackupVersion,
		ExportDate: s.clock.Now().UTC(),
		Trips:      trips,
	}, nil
}

// Write encodes a fresh backup as indented JSON to w.
func (s *BackupService) Write(ctx context.Context, w io.Writer) (int, error) {
	b, err := s.Create(ctx)
	if err != nil {
		return 0, err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return 0, fmt.Errorf("service.BackupService.Write: %w", err)
	}
	return len(b.Trips), nil
}

// Restore replaces every stored trip with the trips in the backup read from r.
// Each trip is reconciled first so derived fields are consistent whatever
// produced the file. Nothing is written unless the whole backup is valid.
func (s *BackupService) Restore(ctx context.Context, r io.Reader) (int, error) {
	var b struct {
		Version string         `json:"version"`
		Trips   *[]domain.Trip `json:"trips"`
	}
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return 0, fmt.Errorf("service.BackupService.Restore: %w: malformed backup: %w", domain.ErrValidation, err)
	}
	if b.Version == "" || b.Trips == nil {
		return 0, fmt.Errorf("service.BackupService.Restore: %w: backup is missing version or trips", domain.ErrValidation)
	}

	restored := make([]domain.Trip, 0, len(*b.Trips))
	seen := make(map[string]struct{}, len(*b.Trips))
	for i, t := range *b.Trips {
		if t.ID != "" {
			if _, dup := seen[t.ID]; dup {
				return 0, fmt.Errorf("service.BackupService.Restore: %w: trip %d: duplicate id %q", domain.ErrValidation, i+1, t.ID)
			}
			seen[t.ID] = struct{}{}
		}
		rt, err := timeline.ReconcileTrip(t)
		if err != nil {
			return 0, fmt.Errorf("service.BackupService.Restore: %w: trip %d (%s): %w", domain.ErrValidation, i+1, t.ID, err)
		}
		restored = append(restored, rt)
	}

	if err := s.trips.ReplaceAll(ctx, restored); err != nil {
		return 0, fmt.Errorf("service.BackupService.Restore: %w", err)
	}
	s.log.InfoContext(ctx, "backup restored", "version", b.Version, "trips", len(restored))
	return len(restored), nil
}

// Clear removes every stored trip.
func (s *BackupService) Clear(ctx context.Context) error {
	if err := s.trips.DeleteAll(ctx); err != nil {
		return fmt.Errorf("service.BackupService.Clear: %w", err)
	}
	return nil
}
