package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/chartrie/internal/ir"
)

// Record is one stored automaton.
type Record struct {
	ID         string
	Name       string
	Pattern    string
	IgnoreCase bool
	Hash       string
	Seq        int64
	Automaton  *ir.Automaton
}

// Save inserts rec under rec.Name. ID, Hash and Seq are assigned by the
// store. A record that already exists under the same name is left
// untouched; Save then returns the stored record and inserted=false.
func (s *Store) Save(ctx context.Context, rec Record) (Record, bool, error) {
	if rec.Name == "" {
		return Record{}, false, fmt.Errorf("save automaton: empty name")
	}
	if rec.Automaton == nil {
		return Record{}, false, fmt.Errorf("save automaton %q: nil automaton", rec.Name)
	}

	hash, err := ir.AutomatonHash(rec.Automaton)
	if err != nil {
		return Record{}, false, fmt.Errorf("save automaton %q: %w", rec.Name, err)
	}
	snapshot, err := ir.MarshalCanonical(rec.Automaton)
	if err != nil {
		return Record{}, false, fmt.Errorf("save automaton %q: marshal snapshot: %w", rec.Name, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Record{}, false, fmt.Errorf("save automaton %q: begin: %w", rec.Name, err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM automata`).Scan(&seq); err != nil {
		return Record{}, false, fmt.Errorf("save automaton %q: next seq: %w", rec.Name, err)
	}

	id := s.ids.Generate()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO automata
		(id, name, pattern, ignore_case, snapshot, content_hash, node_count, edge_count, seq, tool_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO NOTHING
	`,
		id,
		rec.Name,
		rec.Pattern,
		rec.IgnoreCase,
		string(snapshot),
		hash,
		len(rec.Automaton.Nodes),
		rec.Automaton.EdgeCount(),
		seq,
		ir.ToolVersion,
	)
	if err != nil {
		return Record{}, false, fmt.Errorf("save automaton %q: %w", rec.Name, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return Record{}, false, fmt.Errorf("save automaton %q: %w", rec.Name, err)
	}
	if n == 0 {
		if err := tx.Rollback(); err != nil {
			return Record{}, false, fmt.Errorf("save automaton %q: rollback: %w", rec.Name, err)
		}
		existing, err := s.Get(ctx, rec.Name)
		if err != nil {
			return Record{}, false, err
		}
		s.logger.Debug("automaton already stored", "name", rec.Name, "id", existing.ID)
		return existing, false, nil
	}

	for _, node := range rec.Automaton.Terminals() {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO automaton_terminals (automaton_id, node) VALUES (?, ?)
			ON CONFLICT DO NOTHING
		`, id, node); err != nil {
			return Record{}, false, fmt.Errorf("save automaton %q: terminals: %w", rec.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Record{}, false, fmt.Errorf("save automaton %q: commit: %w", rec.Name, err)
	}

	rec.ID = id
	rec.Hash = hash
	rec.Seq = seq
	s.logger.Debug("automaton saved", "name", rec.Name, "id", id, "seq", seq, "hash", hash)
	return rec, true, nil
}

const selectRecord = `
	SELECT id, name, pattern, ignore_case, snapshot, content_hash, seq
	FROM automata
`

// Get returns the automaton stored under name. It returns an error wrapping
// ErrNotFound if there is none.
func (s *Store) Get(ctx context.Context, name string) (Record, error) {
	row := s.db.QueryRowContext(ctx, selectRecord+`WHERE name = ?`, name)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("get automaton %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("get automaton %q: %w", name, err)
	}
	return rec, nil
}

// List returns every stored automaton in insertion order.
// Returns an empty slice (not nil) if the store is empty.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, selectRecord+`ORDER BY seq ASC, id COLLATE BINARY ASC`)
	if err != nil {
		return nil, fmt.Errorf("list automata: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("list automata: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list automata: %w", err)
	}
	return records, nil
}

// FindByHash returns every automaton whose content hash equals hash, in
// insertion order.
func (s *Store) FindByHash(ctx context.Context, hash string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, selectRecord+`WHERE content_hash = ? ORDER BY seq ASC, id COLLATE BINARY ASC`, hash)
	if err != nil {
		return nil, fmt.Errorf("find automata by hash: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("find automata by hash: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// TerminalNodes returns the terminal node ids recorded for the automaton
// stored under name, in ascending order.
func (s *Store) TerminalNodes(ctx context.Context, name string) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.node
		FROM automaton_terminals t
		JOIN automata a ON a.id = t.automaton_id
		WHERE a.name = ?
		ORDER BY t.node ASC
	`, name)
	if err != nil {
		return nil, fmt.Errorf("terminal nodes %q: %w", name, err)
	}
	defer rows.Close()

	nodes := []int{}
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("terminal nodes %q: %w", name, err)
		}
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}

// Delete removes the automaton stored under name. It returns an error
// wrapping ErrNotFound if there is none.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM automata WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete automaton %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete automaton %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("delete automaton %q: %w", name, ErrNotFound)
	}
	s.logger.Debug("automaton deleted", "name", name)
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var (
		rec      Record
		snapshot string
	)
	if err := row.Scan(&rec.ID, &rec.Name, &rec.Pattern, &rec.IgnoreCase, &snapshot, &rec.Hash, &rec.Seq); err != nil {
		return Record{}, err
	}

	var a ir.Automaton
	if err := json.Unmarshal([]byte(snapshot), &a); err != nil {
		return Record{}, fmt.Errorf("unmarshal snapshot for %q: %w", rec.Name, err)
	}
	rec.Automaton = &a
	return rec, nil
}
