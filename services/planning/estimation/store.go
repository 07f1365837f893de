// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package estimation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"
)

// recordKeyPrefix namespaces estimation records in the shared database.
const recordKeyPrefix = "estimation/record/"

// Store persistence errors.
var (
	// ErrNilContext is returned when a nil context is passed to a store
	// operation.
	ErrNilContext = errors.New("context must not be nil")

	// ErrStoreClosed is returned when the underlying database is closed.
	ErrStoreClosed = errors.New("estimation store is closed")
)

// Store persists estimation history in an embedded BadgerDB.
//
// # Description
//
// The calibrator itself never touches disk; callers bridge it to a Store
// with Calibrator.Export and Calibrator.Import. Records are stored one per
// key under "estimation/record/<record_id>" as JSON values, so the same
// database can host other planning state without collisions.
//
// # Thread Safety
//
// Safe for concurrent use; BadgerDB transactions provide isolation.
type Store struct {
	db      *badger.DB
	ownedDB bool
}

// StoreConfig holds configuration for opening a Store.
type StoreConfig struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string

	// InMemory opens a throwaway in-memory database, for tests.
	InMemory bool
}

// OpenStore opens (or creates) a record store.
func OpenStore(cfg StoreConfig) (*Store, error) {
	opts := badger.DefaultOptions(cfg.Path).WithLogger(nil)
	if cfg.InMemory {
		opts = opts.WithInMemory(true).WithDir("").WithValueDir("")
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open estimation store: %w", err)
	}
	return &Store{db: db, ownedDB: true}, nil
}

// NewStore wraps an already-open database the caller owns.
func NewStore(db *badger.DB) *Store {
	return &Store{db: db}
}

// Close closes the store. Databases passed in via NewStore are left open.
func (s *Store) Close() error {
	if !s.ownedDB {
		return nil
	}
	return s.db.Close()
}

// Save writes the given records, replacing any prior history.
//
// The full history is small (one entry per estimated task), so replacement
// writes the complete set in one transaction rather than diffing.
func (s *Store) Save(ctx context.Context, records []Record) error {
	if ctx == nil {
		return ErrNilContext
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.db.IsClosed() {
		return ErrStoreClosed
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		if err := deletePrefix(txn, []byte(recordKeyPrefix)); err != nil {
			return err
		}
		for _, rec := range records {
			payload, err := json.Marshal(rec)
			if err != nil {
				return fmt.Errorf("marshal record %s: %w", rec.RecordID, err)
			}
			if err := txn.Set([]byte(recordKeyPrefix+rec.RecordID), payload); err != nil {
				return fmt.Errorf("set record %s: %w", rec.RecordID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save estimation records: %w", err)
	}
	return nil
}

// Load reads every stored record, ordered by estimation time.
func (s *Store) Load(ctx context.Context) ([]Record, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.db.IsClosed() {
		return nil, ErrStoreClosed
	}

	var records []Record
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(recordKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var rec Record
				if err := json.Unmarshal(val, &rec); err != nil {
					return fmt.Errorf("unmarshal record %s: %w", it.Item().Key(), err)
				}
				records = append(records, rec)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load estimation records: %w", err)
	}

	// Keys iterate in record-ID order; restore chronological order so the
	// calibrator's "most recent open record" semantics survive a reload.
	sortRecordsByTime(records)
	return records, nil
}

// deletePrefix removes every key under the prefix within the transaction.
func deletePrefix(txn *badger.Txn, prefix []byte) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)

	var keys [][]byte
	for it.Rewind(); it.Valid(); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	it.Close()

	for _, key := range keys {
		if err := txn.Delete(key); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}
	return nil
}

// sortRecordsByTime orders records by EstimatedAt ascending, stable.
func sortRecordsByTime(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].EstimatedAt.Before(records[j].EstimatedAt)
	})
}
