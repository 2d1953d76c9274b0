package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier operaciones comunes de *pgxpool.Pool y pgx.Tx. Los repositorios reciben
// uno u otro: con el pool para lecturas sueltas, con la tx dentro de TxRunner.Run.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// nextSequence incrementa y devuelve el contador con nombre key (empieza en 1).
func nextSequence(ctx context.Context, q Querier, key string) (int64, error) {
	var n int64
	err := q.QueryRow(ctx, `
		INSERT INTO name_sequences (key, value) VALUES ($1, 1)
		ON CONFLICT (key) DO UPDATE SET value = name_sequences.value + 1
		RETURNING value`, key).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", key, err)
	}
	return n, nil
}

// collect recorre rows aplicando scan a cada fila.
func collect[T any](rows pgx.Rows, scan func(pgx.Row) (*T, error)) ([]*T, error) {
	defer rows.Close()
	var out []*T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// one ejecuta scan sobre una fila; pgx.ErrNoRows se traduce a nil, nil.
func one[T any](row pgx.Row, scan func(pgx.Row) (*T, error)) (*T, error) {
	v, err := scan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}

// orderByIDs reordena items según ids (sin repetir), como lo esperan los llamadores de ListByIDs.
func orderByIDs[T any](items []*T, ids []string, id func(*T) string) []*T {
	byID := make(map[string]*T, len(items))
	for _, it := range items {
		byID[id(it)] = it
	}
	seen := map[string]bool{}
	out := make([]*T, 0, len(items))
	for _, k := range ids {
		if seen[k] {
			continue
		}
		seen[k] = true
		if it, ok := byID[k]; ok {
			out = append(out, it)
		}
	}
	return out
}

// nonNil evita enviar NULL a columnas TEXT[] NOT NULL.
func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
