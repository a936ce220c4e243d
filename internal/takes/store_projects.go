package takes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ProjectDefaults seeds the lazily created project row.
type ProjectDefaults struct {
	Name        string
	Description string
	Settings    map[string]any
}

// EnsureProject returns the first project, creating it from the provided
// defaults when none exists yet.
func (s *Store) EnsureProject(ctx context.Context, defaults ProjectDefaults) (*Project, error) {
	project, err := s.firstProject(ctx)
	if err != nil {
		return nil, err
	}
	if project != nil {
		return project, nil
	}

	settings := defaults.Settings
	if settings == nil {
		settings = map[string]any{}
	}
	settingsJSON, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("marshal project settings: %w", err)
	}

	now := time.Now().UTC()
	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO projects (name, description, settings_json, created_at) VALUES (?, ?, ?, ?)`,
		defaults.Name,
		defaults.Description,
		string(settingsJSON),
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.getProject(ctx, id)
}

func (s *Store) firstProject(ctx context.Context) (*Project, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, settings_json, created_at FROM projects ORDER BY id LIMIT 1`)
	project, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("first project: %w", err)
	}
	return project, nil
}

func (s *Store) getProject(ctx context.Context, id int64) (*Project, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, settings_json, created_at FROM projects WHERE id = ?`, id)
	project, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return project, nil
}

func scanProject(row rowScanner) (*Project, error) {
	var (
		project      Project
		settingsJSON string
		createdAt    string
	)
	if err := row.Scan(&project.ID, &project.Name, &project.Description, &settingsJSON, &createdAt); err != nil {
		return nil, err
	}
	project.Settings = decodeJSONMap(settingsJSON)
	if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		project.CreatedAt = ts
	}
	return &project, nil
}
