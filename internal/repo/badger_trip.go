package repo

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/pkordes/triplog/internal/domain"
)

// tripPrefix namespaces trip records in the key space.
var tripPrefix = []byte("trip/")

func tripKey(id string) []byte {
	return append(append([]byte{}, tripPrefix...), id...)
}

// badgerTripRepo is the embedded key-value implementation of TripRepo.
// Each trip is one JSON value under "trip/<id>"; every operation runs in a
// single badger transaction.
type badgerTripRepo struct {
	db  *badger.DB
	now func() time.Time
}

// NewBadgerTripRepo constructs a TripRepo backed by an open badger database.
func NewBadgerTripRepo(db *badger.DB) TripRepo {
	return &badgerTripRepo{db: db, now: time.Now}
}

func (r *badgerTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip, err := stamp(trip, r.now())
	if err != nil {
		return domain.Trip{}, storageErr("repo.TripRepo.Create", err)
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		return putTrip(txn, trip)
	})
	if err != nil {
		return domain.Trip{}, storageErr("repo.TripRepo.Create", err)
	}
	return trip, nil
}

func (r *badgerTripRepo) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	var trip domain.Trip
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		trip, err = getTrip(txn, id)
		return err
	})
	if err != nil {
		return domain.Trip{}, storageErr("repo.TripRepo.GetByID", err)
	}
	return trip, nil
}

// List returns every trip sorted by CreatedAt descending, ties broken by ID.
func (r *badgerTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	var trips []domain.Trip
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{PrefetchValues: true, PrefetchSize: 100, Prefix: tripPrefix})
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var t domain.Trip
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &t)
			}); err != nil {
				return err
			}
			trips = append(trips, t)
		}
		return nil
	})
	if err != nil {
		return nil, storageErr("repo.TripRepo.List", err)
	}

	sort.SliceStable(trips, func(i, j int) bool {
		if !trips[i].CreatedAt.Equal(trips[j].CreatedAt) {
			return trips[i].CreatedAt.After(trips[j].CreatedAt)
		}
		return trips[i].ID > trips[j].ID
	})
	return trips, nil
}

// Replace overwrites the record, keeping the stored CreatedAt when the
// caller did not supply one.
func (r *badgerTripRepo) Replace(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	err := r.db.Update(func(txn *badger.Txn) error {
		existing, err := getTrip(txn, trip.ID)
		if err != nil {
			return err
		}
		if trip.CreatedAt.IsZero() {
			trip.CreatedAt = existing.CreatedAt
		}
		return putTrip(txn, trip)
	})
	if err != nil {
		return domain.Trip{}, storageErr("repo.TripRepo.Replace", err)
	}
	return trip, nil
}

func (r *badgerTripRepo) Delete(ctx context.Context, id string) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(tripKey(id)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		return txn.Delete(tripKey(id))
	})
	return storageErr("repo.TripRepo.Delete", err)
}

func (r *badgerTripRepo) ReplaceAll(ctx context.Context, trips []domain.Trip) error {
	now := r.now()
	err := r.db.Update(func(txn *badger.Txn) error {
		if err := deletePrefix(txn, tripPrefix); err != nil {
			return err
		}
		for _, t := range trips {
			t, err := stamp(t, now)
			if err != nil {
				return err
			}
			if err := putTrip(txn, t); err != nil {
				return err
			}
		}
		return nil
	})
	return storageErr("repo.TripRepo.ReplaceAll", err)
}

func (r *badgerTripRepo) DeleteAll(ctx context.Context) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		return deletePrefix(txn, tripPrefix)
	})
	return storageErr("repo.TripRepo.DeleteAll", err)
}

func getTrip(txn *badger.Txn, id string) (domain.Trip, error) {
	item, err := txn.Get(tripKey(id))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}
	var t domain.Trip
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &t)
	})
	return t, err
}

func putTrip(txn *badger.Txn, trip domain.Trip) error {
	val, err := json.Marshal(trip)
	if err != nil {
		return err
	}
	return txn.Set(tripKey(trip.ID), val)
}

// deletePrefix removes every key under prefix within txn. Keys are copied
// before deletion because iterator keys are only valid until Next.
func deletePrefix(txn *badger.Txn, prefix []byte) error {
	it := txn.NewIterator(badger.IteratorOptions{Prefix: prefix})
	var keys [][]byte
	for it.Rewind(); it.Valid(); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	it.Close()

	for _, k := range keys {
		if err := txn.Delete(k); err != nil {
			return err
		}
	}
	return nil
}
