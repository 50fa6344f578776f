// Package sqlite implements the storage ports on an embedded SQLite
// database. It is the zero-infrastructure alternative to the MongoDB
// adapters, selected with STORAGE_DRIVER=sqlite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

// Store wraps the SQLite handle and hands out the repositories built on it.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open initializes the database at dbPath and runs the migrations. ":memory:"
// opens a private in-memory database.
func Open(dbPath string, log zerolog.Logger) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("empty database path")
	}
	if err := ensureDir(dbPath); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=ON", dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// A single connection serializes writers and keeps :memory: databases
	// alive for the lifetime of the pool.
	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(0)

	s := &Store{db: conn, log: log}
	if err := s.migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	log.Info().Str("path", dbPath).Msg("sqlite store ready")
	return s, nil
}

// Close releases the database resources.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Users() *UserRepository             { return &UserRepository{db: s.db} }
func (s *Store) Projects() *ProjectRepository       { return &ProjectRepository{db: s.db} }
func (s *Store) Memberships() *MembershipRepository { return &MembershipRepository{db: s.db} }
func (s *Store) Tasks() *TaskRepository             { return &TaskRepository{db: s.db} }
func (s *Store) Comments() *CommentRepository       { return &CommentRepository{db: s.db} }

func ensureDir(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id TEXT PRIMARY KEY,
            username TEXT NOT NULL UNIQUE,
            email TEXT NOT NULL DEFAULT '',
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'USER',
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS projects (
            id TEXT PRIMARY KEY,
            title TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            created_at DATETIME NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS project_members (
            user_id TEXT NOT NULL,
            project_id TEXT NOT NULL,
            username TEXT NOT NULL DEFAULT '',
            role TEXT NOT NULL,
            joined_at DATETIME NOT NULL,
            PRIMARY KEY (user_id, project_id),
            FOREIGN KEY(project_id) REFERENCES projects(id) ON DELETE CASCADE
        );`,
		`CREATE TABLE IF NOT EXISTS tasks (
            id TEXT PRIMARY KEY,
            project_id TEXT NOT NULL,
            title TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            tags TEXT NOT NULL DEFAULT '',
            deadline DATETIME,
            status TEXT NOT NULL,
            assignee_id TEXT NOT NULL DEFAULT '',
            assignee_display_name TEXT NOT NULL DEFAULT '',
            position INTEGER NOT NULL DEFAULT 0,
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL,
            FOREIGN KEY(project_id) REFERENCES projects(id) ON DELETE CASCADE
        );`,
		`CREATE INDEX IF NOT EXISTS idx_project_members_project ON project_members(project_id);`,
		`CREATE TABLE IF NOT EXISTS project_comments (
            id TEXT PRIMARY KEY,
            project_id TEXT NOT NULL,
            author_id TEXT NOT NULL,
            author_username TEXT NOT NULL DEFAULT '',
            content TEXT NOT NULL,
            pinned INTEGER NOT NULL DEFAULT 0,
            created_at DATETIME NOT NULL,
            FOREIGN KEY(project_id) REFERENCES projects(id) ON DELETE CASCADE
        );`,
		`CREATE INDEX IF NOT EXISTS idx_project_comments_project ON project_comments(project_id, created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_bucket ON tasks(project_id, status, position);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_assignee ON tasks(assignee_id);`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// isUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY
// constraint failure.
func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.ExtendedCode == sqlite3.ErrConstraintUnique || se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

type rowScanner interface {
	Scan(dest ...any) error
}
