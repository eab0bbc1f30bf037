// Package export persists a snapshot of one discovery run to object
// storage, so downstream consumers can diff runs without re-querying the
// engine.
package export

import (
	"context"
	"time"

	"github.com/koustreak/dremcat/internal/introspect"
)

// Snapshot is the serialized result of one discovery run.
type Snapshot struct {
	RunID       string     `json:"runId"`
	Service     string     `json:"service"`
	GeneratedAt time.Time  `json:"generatedAt"`
	Databases   []Database `json:"databases"`
}

// Database is one discovered database with its catalog-clean schemas.
type Database struct {
	Name    string   `json:"name"`
	Schemas []Schema `json:"schemas"`
}

// Schema holds the relations discovered under one schema.
type Schema struct {
	Name   string                `json:"name"`
	Tables []introspect.Relation `json:"tables,omitempty"`
	Views  []introspect.Relation `json:"views,omitempty"`
}

// Sink receives finished snapshots.
type Sink interface {
	// Put persists the snapshot and returns its storage key.
	Put(ctx context.Context, snap *Snapshot) (string, error)
}
