package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/forestguard/internal/data"
)

// ArchetypeRepository stores archetypes. The full definition is kept as a
// YAML document (same format as the embedded catalog); id, name, kind,
// faction and level are duplicated into columns for querying.
type ArchetypeRepository struct {
	pool *pgxpool.Pool
}

// NewArchetypeRepository creates a new archetype repository
func NewArchetypeRepository(pool *pgxpool.Pool) *ArchetypeRepository {
	return &ArchetypeRepository{pool: pool}
}

// LoadAll loads all archetypes ordered by insertion (implements data.Source).
func (r *ArchetypeRepository) LoadAll(ctx context.Context) ([]data.Archetype, error) {
	query := `
		SELECT id, definition
		FROM archetypes
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("loading archetypes: %w", err)
	}
	defer rows.Close()

	var archetypes []data.Archetype
	for rows.Next() {
		var id, definition string
		if err := rows.Scan(&id, &definition); err != nil {
			return nil, fmt.Errorf("scanning archetype row: %w", err)
		}

		var a data.Archetype
		if err := yaml.Unmarshal([]byte(definition), &a); err != nil {
			return nil, fmt.Errorf("decoding archetype %s: %w", id, err)
		}
		archetypes = append(archetypes, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating archetypes: %w", err)
	}

	return archetypes, nil
}

// Load loads one archetype by id.
func (r *ArchetypeRepository) Load(ctx context.Context, id string) (*data.Archetype, error) {
	var definition string
	err := r.pool.QueryRow(ctx, `SELECT definition FROM archetypes WHERE id = $1`, id).Scan(&definition)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("loading archetype %s: %w", id, data.ErrNotFound)
		}
		return nil, fmt.Errorf("loading archetype %s: %w", id, err)
	}

	var a data.Archetype
	if err := yaml.Unmarshal([]byte(definition), &a); err != nil {
		return nil, fmt.Errorf("decoding archetype %s: %w", id, err)
	}
	return &a, nil
}

// Save inserts or updates an archetype.
func (r *ArchetypeRepository) Save(ctx context.Context, a *data.Archetype) error {
	definition, err := yaml.Marshal(a)
	if err != nil {
		return fmt.Errorf("encoding archetype %s: %w", a.ID, err)
	}

	query := `
		INSERT INTO archetypes (id, name, kind, faction, level, definition)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			kind = EXCLUDED.kind,
			faction = EXCLUDED.faction,
			level = EXCLUDED.level,
			definition = EXCLUDED.definition,
			updated_at = now()
	`

	_, err = r.pool.Exec(ctx, query,
		a.ID, a.Name, a.Kind.String(), a.Faction.String(), a.Level, string(definition))
	if err != nil {
		return fmt.Errorf("saving archetype %s: %w", a.ID, err)
	}
	return nil
}

// SaveAll stores archetypes in one transaction.
func (r *ArchetypeRepository) SaveAll(ctx context.Context, archetypes []data.Archetype) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	txRepo := &archetypeTx{tx: tx}
	for i := range archetypes {
		if err := txRepo.save(ctx, &archetypes[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing archetypes: %w", err)
	}
	return nil
}

// Count returns the number of stored archetypes.
func (r *ArchetypeRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM archetypes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting archetypes: %w", err)
	}
	return n, nil
}

// Delete removes an archetype by id.
func (r *ArchetypeRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM archetypes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting archetype %s: %w", id, err)
	}
	return nil
}

type archetypeTx struct {
	tx pgx.Tx
}

func (t *archetypeTx) save(ctx context.Context, a *data.Archetype) error {
	definition, err := yaml.Marshal(a)
	if err != nil {
		return fmt.Errorf("encoding archetype %s: %w", a.ID, err)
	}

	_, err = t.tx.Exec(ctx, `
		INSERT INTO archetypes (id, name, kind, faction, level, definition)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			kind = EXCLUDED.kind,
			faction = EXCLUDED.faction,
			level = EXCLUDED.level,
			definition = EXCLUDED.definition,
			updated_at = now()
	`, a.ID, a.Name, a.Kind.String(), a.Faction.String(), a.Level, string(definition))
	if err != nil {
		return fmt.Errorf("saving archetype %s: %w", a.ID, err)
	}
	return nil
}
