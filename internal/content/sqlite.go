package content

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/vacmar/portfolio/internal/roadmap"
)

// schema for roadmap nodes. List columns hold JSON arrays.
const schema = `
CREATE TABLE IF NOT EXISTS roadmap_nodes (
	id          INTEGER PRIMARY KEY,
	position    INTEGER NOT NULL,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL,
	type        TEXT NOT NULL,
	category    TEXT NOT NULL DEFAULT '',
	skills      TEXT NOT NULL DEFAULT '[]',
	features    TEXT NOT NULL DEFAULT '[]',
	tech_stack  TEXT NOT NULL DEFAULT '[]',
	duration    TEXT NOT NULL DEFAULT '',
	date        TEXT NOT NULL DEFAULT '',
	progress    INTEGER,
	github      TEXT NOT NULL DEFAULT '',
	demo        TEXT NOT NULL DEFAULT '',
	x           REAL NOT NULL,
	y           REAL NOT NULL,
	connections TEXT NOT NULL DEFAULT '[]'
)`

func openSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("content: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("content: create schema: %w", err)
	}
	return db, nil
}

// LoadSQLite reads roadmap nodes from the roadmap_nodes table, in the order
// of their position column.
func LoadSQLite(ctx context.Context, path string) ([]roadmap.Node, error) {
	db, err := openSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT id, title, description, status, type, category, skills, features,
		       tech_stack, duration, date, progress, github, demo, x, y, connections
		FROM roadmap_nodes
		ORDER BY position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("content: query roadmap nodes: %w", err)
	}
	defer rows.Close()

	var nodes []roadmap.Node
	for rows.Next() {
		var (
			n                                   roadmap.Node
			status, kind                        string
			skills, features, stack, connection string
			progress                            sql.NullInt64
		)
		err := rows.Scan(&n.ID, &n.Title, &n.Description, &status, &kind, &n.Category,
			&skills, &features, &stack, &n.Duration, &n.Date, &progress,
			&n.GitHub, &n.Demo, &n.Position.X, &n.Position.Y, &connection)
		if err != nil {
			return nil, fmt.Errorf("content: scan roadmap node: %w", err)
		}
		n.Status = roadmap.Status(status)
		n.Kind = roadmap.Kind(kind)
		if progress.Valid {
			p := int(progress.Int64)
			n.Progress = &p
		}
		if err := decodeLists(&n, skills, features, stack, connection); err != nil {
			return nil, err
		}
		sanitizeNode(&n)
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("content: read roadmap nodes: %w", err)
	}
	return nodes, nil
}

// WriteSQLite replaces the roadmap_nodes table with nodes.
func WriteSQLite(ctx context.Context, path string, nodes []roadmap.Node) error {
	db, err := openSQLite(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("content: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM roadmap_nodes`); err != nil {
		return fmt.Errorf("content: clear roadmap nodes: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO roadmap_nodes (id, position, title, description, status, type,
			category, skills, features, tech_stack, duration, date, progress,
			github, demo, x, y, connections)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("content: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, n := range nodes {
		var progress sql.NullInt64
		if n.Progress != nil {
			progress = sql.NullInt64{Int64: int64(*n.Progress), Valid: true}
		}
		_, err := stmt.ExecContext(ctx, n.ID, i, n.Title, n.Description, string(n.Status),
			string(n.Kind), n.Category, jsonList(n.Skills), jsonList(n.Features),
			jsonList(n.TechStack), n.Duration, n.Date, progress, n.GitHub, n.Demo,
			n.Position.X, n.Position.Y, jsonList(n.Connections))
		if err != nil {
			return fmt.Errorf("content: insert node %d: %w", n.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("content: commit: %w", err)
	}
	return nil
}

func decodeLists(n *roadmap.Node, skills, features, stack, connections string) error {
	for _, col := range []struct {
		name string
		raw  string
		dst  any
	}{
		{"skills", skills, &n.Skills},
		{"features", features, &n.Features},
		{"tech_stack", stack, &n.TechStack},
		{"connections", connections, &n.Connections},
	} {
		if col.raw == "" || col.raw == "[]" {
			continue
		}
		if err := json.Unmarshal([]byte(col.raw), col.dst); err != nil {
			return fmt.Errorf("content: node %d: decode %s: %w", n.ID, col.name, err)
		}
	}
	return nil
}

func jsonList[T any](list []T) string {
	if len(list) == 0 {
		return "[]"
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "[]"
	}
	return string(b)
}
