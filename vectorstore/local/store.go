// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package local

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/poiesic/evidex/vectorstore"
)

const (
	pointKeyPrefix   = "pt:"
	dimensionMetaKey = "meta:dimension"
)

// Store is an embedded BadgerDB-backed vector store. Search is a
// brute-force cosine scan over all points, which is fine for development
// and corpora up to a few tens of thousands of papers.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// storedPoint is the on-disk record format.
type storedPoint struct {
	ID      string         `json:"id"`
	Vector  []float32      `json:"vector"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Open opens a BadgerDB database at the given path, creating the
// directory if needed. Pass inMemory true for an ephemeral store.
func Open(filePath string, inMemory bool) (*Store, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		info, err := os.Stat(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(filePath, 0755); err != nil {
					return nil, err
				}
				info, err = os.Stat(filePath)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", filePath)
		}
		opts = badger.DefaultOptions(filePath)
	}

	logger := slog.Default().With("component", "local-store")
	opts.Logger = &badgerLoggerAdapter{logger: logger}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:     db,
		logger: logger,
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// withTx executes fn within a transaction, discarding on error.
func (s *Store) withTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	tx := s.db.NewTransaction(isWrite)
	defer tx.Discard()
	if err := fn(tx); err != nil {
		return err
	}
	if isWrite {
		return tx.Commit()
	}
	return nil
}

// EnsureCollection records the vector dimension. Subsequent upserts and
// searches are checked against it.
func (s *Store) EnsureCollection(_ context.Context, dimension int) error {
	if dimension <= 0 {
		return vectorstore.ErrInvalidDimension
	}
	return s.withTx(func(tx *badger.Txn) error {
		existing, err := readDimension(tx)
		if err != nil {
			return err
		}
		if existing > 0 {
			if existing != dimension {
				return fmt.Errorf("%w: collection has dimension %d, requested %d",
					vectorstore.ErrDimensionMismatch, existing, dimension)
			}
			return nil
		}
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, uint64(dimension))
		return tx.Set([]byte(dimensionMetaKey), buf)
	}, true)
}

func readDimension(tx *badger.Txn) (int, error) {
	item, err := tx.Get([]byte(dimensionMetaKey))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return 0, nil
		}
		return 0, err
	}
	var dim int
	err = item.Value(func(val []byte) error {
		dim = int(binary.BigEndian.Uint64(val))
		return nil
	})
	return dim, err
}

// Upsert stores points keyed by ID. Existing IDs are overwritten.
func (s *Store) Upsert(_ context.Context, points []vectorstore.Point) error {
	return s.withTx(func(tx *badger.Txn) error {
		dim, err := readDimension(tx)
		if err != nil {
			return err
		}
		for _, p := range points {
			if dim > 0 && len(p.Vector) != dim {
				return fmt.Errorf("%w: point %s has dimension %d, collection has %d",
					vectorstore.ErrDimensionMismatch, p.ID, len(p.Vector), dim)
			}
			record := storedPoint{ID: p.ID, Vector: p.Vector, Payload: p.Payload}
			data, err := json.Marshal(record)
			if err != nil {
				return err
			}
			if err := tx.Set(makePointKey(p.ID), data); err != nil {
				return err
			}
		}
		return nil
	}, true)
}

// Search scans all points, scores them by cosine similarity, applies the
// filter, and returns the top results by score descending.
func (s *Store) Search(_ context.Context, vector []float32, filter *vectorstore.Filter, limit int) ([]vectorstore.Point, error) {
	var results []vectorstore.Point

	err := s.withTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(pointKeyPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var record storedPoint
			err := iter.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &record)
			})
			if err != nil {
				return err
			}
			if len(record.Vector) == 0 {
				continue
			}
			if !matchesFilter(record.Payload, filter) {
				continue
			}
			results = append(results, vectorstore.Point{
				ID:      record.ID,
				Score:   cosineSimilarity(vector, record.Vector),
				Payload: record.Payload,
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(results, func(a, b vectorstore.Point) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Count returns the number of stored points.
func (s *Store) Count(_ context.Context) (int, error) {
	count := 0
	err := s.withTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(pointKeyPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func makePointKey(id string) []byte {
	return []byte(pointKeyPrefix + id)
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Returns 0 when either vector has zero magnitude.
func cosineSimilarity(a, b []float32) float64 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < minLen; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
