package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"entgo.io/ent"
	entsql "entgo.io/ent/dialect/sql"
	sqlschema "entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	"github.com/abhisek/wellcheck/ent/schema"
)

// reportsSchema describes the reports table from the ent schema: mixin
// fields first, then the entity's own, plus every declared index.
func reportsSchema() *sqlschema.Table {
	t := sqlschema.NewTable(reportsTable)
	t.AddPrimary(&sqlschema.Column{Name: "id", Type: field.TypeInt, Increment: true})

	var (
		fields  []ent.Field
		indexes []ent.Index
	)
	for _, m := range (schema.Report{}).Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, (schema.Report{}).Fields()...)
	indexes = append(indexes, (schema.Report{}).Indexes()...)

	for _, f := range fields {
		d := f.Descriptor()
		col := &sqlschema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Unique:   d.Unique,
			Nullable: d.Optional,
			Comment:  d.Comment,
		}
		// Function defaults such as time.Now are applied by the repo.
		switch v := d.Default.(type) {
		case bool, int, int64, string:
			col.Default = v
		}
		t.AddColumn(col)
	}

	for _, idx := range indexes {
		d := idx.Descriptor()
		name := d.StorageKey
		if name == "" {
			name = "report_" + strings.Join(d.Fields, "_")
		}
		t.AddIndex(name, d.Unique, d.Fields)
	}
	return t
}

// migrate creates or updates the report tables through ent's migration.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	m, err := sqlschema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	return m.Create(ctx, reportsSchema())
}

// sequenceCounter hands out a monotonic sequence number per saved report.
// Completion timestamps can tie or go backwards when the clock is adjusted,
// so history is ordered by sequence instead.
//
// Uses raw SQL because the counter needs a database-level atomic update.
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}
