package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// SQLiteStore implements Store on the documents table.
//
// Rows are kept disjoint: a path never has a row of its own and rows below
// it at the same time. Writing below an existing row rewrites that row's
// JSON object; writing above existing rows deletes them first.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a store on an open, migrated SQLite connection.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// row is a stored document with its path split into segments.
type row struct {
	segments []string
	value    string
}

// Get returns the JSON value at path.
func (s *SQLiteStore) Get(ctx context.Context, path string) (json.RawMessage, error) {
	segs, err := SplitPath(path)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Nothing to commit

	node, err := readNode(ctx, tx, segs)
	if err != nil {
		return nil, err
	}
	out, err := json.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", path, err)
	}
	return out, nil
}

// Set replaces the value at path.
func (s *SQLiteStore) Set(ctx context.Context, path string, value any) error {
	segs, err := SplitPath(path)
	if err != nil {
		return err
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return setNode(ctx, tx, segs, value)
	})
}

// Push stores value under a new UUIDv7 key below path.
func (s *SQLiteStore) Push(ctx context.Context, path string, value any) (string, error) {
	segs, err := SplitPath(path)
	if err != nil {
		return "", err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating key: %w", err)
	}
	key := id.String()

	err = s.inTx(ctx, func(tx *sql.Tx) error {
		return setNode(ctx, tx, append(segs, key), value)
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

// Update merges fields into the object at path.
func (s *SQLiteStore) Update(ctx context.Context, path string, fields map[string]any) error {
	segs, err := SplitPath(path)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		if err := validateSegment(k); err != nil {
			return fmt.Errorf("%w: field %q", err, k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, k := range keys {
			child := append(segs[:len(segs):len(segs)], k)
			if err := setNode(ctx, tx, child, fields[k]); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes path and everything below it.
func (s *SQLiteStore) Delete(ctx context.Context, path string) error {
	segs, err := SplitPath(path)
	if err != nil {
		return err
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		anc, found, err := ancestorRow(ctx, tx, segs)
		if err != nil {
			return err
		}
		if found {
			obj, err := decodeObject(anc.value)
			if err != nil {
				return err
			}
			if obj == nil || !deleteNested(obj, segs[len(anc.segments):]) {
				return nil
			}
			return upsertRow(ctx, tx, anc.segments, obj)
		}
		return deleteSubtree(ctx, tx, segs)
	})
}

// Children returns the direct children of path in insertion order.
func (s *SQLiteStore) Children(ctx context.Context, path string) ([]Child, error) {
	segs, err := SplitPath(path)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Nothing to commit

	rows, err := descendantRows(ctx, tx, segs)
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		return groupChildren(len(segs), rows)
	}

	// A single row at or above path holds the whole object.
	node, err := readNode(ctx, tx, segs)
	if errors.Is(err, ErrNotFound) {
		return []Child{}, nil
	}
	if err != nil {
		return nil, err
	}
	obj, ok := node.(map[string]any)
	if !ok {
		return []Child{}, nil
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	children := make([]Child, 0, len(keys))
	for _, k := range keys {
		raw, err := json.Marshal(obj[k])
		if err != nil {
			return nil, fmt.Errorf("encoding child %s: %w", k, err)
		}
		children = append(children, Child{Key: k, Value: raw})
	}
	return children, nil
}

func (s *SQLiteStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback is no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// readNode resolves segs to a decoded value from an exact row, an ancestor
// row, or the rows below it, in that order.
func readNode(ctx context.Context, tx *sql.Tx, segs []string) (any, error) {
	var value string
	err := tx.QueryRowContext(ctx, "SELECT value FROM documents WHERE path = ?", Join(segs...)).Scan(&value)
	switch {
	case err == nil:
		return decodeValue(value)
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("querying %s: %w", Join(segs...), err)
	}

	anc, found, err := ancestorRow(ctx, tx, segs)
	if err != nil {
		return nil, err
	}
	if found {
		root, err := decodeValue(anc.value)
		if err != nil {
			return nil, err
		}
		node, ok := lookupNested(root, segs[len(anc.segments):])
		if !ok {
			return nil, ErrNotFound
		}
		return node, nil
	}

	rows, err := descendantRows(ctx, tx, segs)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return assemble(len(segs), rows)
}

func setNode(ctx context.Context, tx *sql.Tx, segs []string, value any) error {
	anc, found, err := ancestorRow(ctx, tx, segs)
	if err != nil {
		return err
	}
	if found {
		obj, err := decodeObject(anc.value)
		if err != nil {
			return err
		}
		if obj == nil {
			obj = map[string]any{}
		}
		setNested(obj, segs[len(anc.segments):], value)
		return upsertRow(ctx, tx, anc.segments, obj)
	}

	if err := deleteDescendants(ctx, tx, segs); err != nil {
		return err
	}
	return upsertRow(ctx, tx, segs, value)
}

// ancestorRow finds the row stored at a strict prefix of segs, if any.
func ancestorRow(ctx context.Context, tx *sql.Tx, segs []string) (row, bool, error) {
	if len(segs) < 2 {
		return row{}, false, nil
	}

	paths := make([]any, 0, len(segs)-1)
	marks := make([]string, 0, len(segs)-1)
	for i := 1; i < len(segs); i++ {
		paths = append(paths, Join(segs[:i]...))
		marks = append(marks, "?")
	}

	query := "SELECT path, value FROM documents WHERE path IN (" + strings.Join(marks, ", ") + ") ORDER BY length(path) LIMIT 1"

	var path, value string
	err := tx.QueryRowContext(ctx, query, paths...).Scan(&path, &value)
	if errors.Is(err, sql.ErrNoRows) {
		return row{}, false, nil
	}
	if err != nil {
		return row{}, false, fmt.Errorf("querying ancestors of %s: %w", Join(segs...), err)
	}
	return row{segments: strings.Split(path, "/"), value: value}, true, nil
}

// descendantRows returns rows strictly below segs in insertion order.
// The range bounds avoid LIKE, whose wildcards collide with "_" in room names.
func descendantRows(ctx context.Context, tx *sql.Tx, segs []string) ([]row, error) {
	prefix := Join(segs...)
	rows, err := tx.QueryContext(ctx,
		"SELECT path, value FROM documents WHERE path > ? AND path < ? ORDER BY seq",
		prefix+"/", prefix+"0",
	)
	if err != nil {
		return nil, fmt.Errorf("querying below %s: %w", prefix, err)
	}
	defer rows.Close()

	var out []row
	for rows.Next() {
		var path, value string
		if err := rows.Scan(&path, &value); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		out = append(out, row{segments: strings.Split(path, "/"), value: value})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return out, nil
}

func upsertRow(ctx context.Context, tx *sql.Tx, segs []string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding value for %s: %w", Join(segs...), err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (path, value) VALUES (?, ?)
		ON CONFLICT(path) DO UPDATE SET
			value = excluded.value,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`,
		Join(segs...), string(data),
	)
	if err != nil {
		return fmt.Errorf("writing %s: %w", Join(segs...), err)
	}
	return nil
}

func deleteDescendants(ctx context.Context, tx *sql.Tx, segs []string) error {
	prefix := Join(segs...)
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM documents WHERE path > ? AND path < ?", prefix+"/", prefix+"0",
	); err != nil {
		return fmt.Errorf("deleting below %s: %w", prefix, err)
	}
	return nil
}

func deleteSubtree(ctx context.Context, tx *sql.Tx, segs []string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE path = ?", Join(segs...)); err != nil {
		return fmt.Errorf("deleting %s: %w", Join(segs...), err)
	}
	return deleteDescendants(ctx, tx, segs)
}

// groupChildren folds rows below a path of depth into one Child per first
// relative segment, ordered by the first row written for each.
func groupChildren(depth int, rows []row) ([]Child, error) {
	var order []string
	groups := make(map[string][]row)
	for _, r := range rows {
		key := r.segments[depth]
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], r)
	}

	children := make([]Child, 0, len(order))
	for _, key := range order {
		group := groups[key]
		if len(group) == 1 && len(group[0].segments) == depth+1 {
			children = append(children, Child{Key: key, Value: json.RawMessage(group[0].value)})
			continue
		}
		node, err := assemble(depth+1, group)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(node)
		if err != nil {
			return nil, fmt.Errorf("encoding child %s: %w", key, err)
		}
		children = append(children, Child{Key: key, Value: raw})
	}
	return children, nil
}

// assemble builds an object from rows stored below a path of depth.
func assemble(depth int, rows []row) (map[string]any, error) {
	root := map[string]any{}
	for _, r := range rows {
		v, err := decodeValue(r.value)
		if err != nil {
			return nil, err
		}
		setNested(root, r.segments[depth:], v)
	}
	return root, nil
}

func decodeValue(s string) (any, error) {
	var v any
	if err := Decode(json.RawMessage(s), &v); err != nil {
		return nil, err
	}
	return v, nil
}

// decodeObject returns the stored object, or nil if the value is not an object.
func decodeObject(s string) (map[string]any, error) {
	v, err := decodeValue(s)
	if err != nil {
		return nil, err
	}
	obj, _ := v.(map[string]any)
	return obj, nil
}

func setNested(obj map[string]any, rel []string, value any) {
	for _, seg := range rel[:len(rel)-1] {
		next, ok := obj[seg].(map[string]any)
		if !ok {
			next = map[string]any{}
			obj[seg] = next
		}
		obj = next
	}
	obj[rel[len(rel)-1]] = value
}

func lookupNested(node any, rel []string) (any, bool) {
	for _, seg := range rel {
		obj, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		if node, ok = obj[seg]; !ok {
			return nil, false
		}
	}
	return node, true
}

// deleteNested removes rel from obj and reports whether anything changed.
func deleteNested(obj map[string]any, rel []string) bool {
	for _, seg := range rel[:len(rel)-1] {
		next, ok := obj[seg].(map[string]any)
		if !ok {
			return false
		}
		obj = next
	}
	last := rel[len(rel)-1]
	if _, ok := obj[last]; !ok {
		return false
	}
	delete(obj, last)
	return true
}
