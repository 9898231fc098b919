package backend

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"lia/internal/models"
)

// LocalService serves the Service interface from a SQLite database so the
// client works without a hosted backend. The single local user owns the
// database, so caller-scoped operations always refer to them.
type LocalService struct {
	db *sql.DB
}

// OpenLocalService opens (and bootstraps) the database at dataDir/lia.db.
func OpenLocalService(dataDir string) (*LocalService, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, "lia.db"))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			text TEXT NOT NULL,
			sender TEXT NOT NULL,
			timestamp INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tools (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			url_template TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS profile (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			name TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_messages_id ON messages(id);`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return &LocalService{db: db}, nil
}

func (s *LocalService) Close() error {
	return s.db.Close()
}

func (s *LocalService) AddTool(ctx context.Context, tool models.Tool) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO tools(name, description, url_template) VALUES(?, ?, ?)",
		tool.Name, tool.Description, tool.URLTemplate,
	)
	return err
}

func (s *LocalService) GetTools(ctx context.Context) ([]models.Tool, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, description, url_template FROM tools ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tools := []models.Tool{}
	for rows.Next() {
		var t models.Tool
		if err := rows.Scan(&t.Name, &t.Description, &t.URLTemplate); err != nil {
			return nil, err
		}
		tools = append(tools, t)
	}
	return tools, rows.Err()
}

func (s *LocalService) GetConciergeTools(ctx context.Context) ([]models.Tool, error) {
	return []models.Tool{}, nil
}

func (s *LocalService) GetConversationHistory(ctx context.Context) ([]models.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT text, sender, timestamp FROM messages ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	msgs := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.Text, &m.Sender, &m.Timestamp); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (s *LocalService) SaveMessage(ctx context.Context, msg models.Message) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO messages(text, sender, timestamp) VALUES(?, ?, ?)",
		msg.Text, msg.Sender, msg.Timestamp,
	)
	return err
}

func (s *LocalService) GetCallerUserProfile(ctx context.Context) (*models.UserProfile, error) {
	var name string
	err := s.db.QueryRowContext(ctx, "SELECT name FROM profile WHERE id = 1").Scan(&name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &models.UserProfile{Name: name}, nil
}

func (s *LocalService) SaveCallerUserProfile(ctx context.Context, profile models.UserProfile) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profile(id, name) VALUES(1, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
		profile.Name,
	)
	return err
}

func (s *LocalService) GetCallerUserRole(ctx context.Context) (models.UserRole, error) {
	return models.RoleAdmin, nil
}

func (s *LocalService) IsCallerAdmin(ctx context.Context) (bool, error) {
	return true, nil
}

func (s *LocalService) AssignCallerUserRole(ctx context.Context, principal string, role models.UserRole) error {
	// Single-user database: roles are fixed.
	return &RejectError{Op: "assignCallerUserRole", Reason: "not supported in local mode"}
}

func (s *LocalService) GetUserProfile(ctx context.Context, principal string) (*models.UserProfile, error) {
	return s.GetCallerUserProfile(ctx)
}
