package takes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const takeColumns = `id, project_id, file_name, file_path, duration_seconds, confidence_score,
    accept_status, ai_metadata, ai_reasoning, created_at, updated_at`

// NewTake registers a recorded clip for review.
func (s *Store) NewTake(ctx context.Context, projectID int64, fileName, filePath string) (*Take, error) {
	if fileName == "" {
		return nil, errors.New("file name is required")
	}
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO takes (
            project_id, file_name, file_path, accept_status,
            ai_metadata, ai_reasoning, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		projectID,
		fileName,
		filePath,
		string(AcceptUnset),
		"{}",
		"{}",
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert take: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

// GetByID fetches a take by identifier. Returns (nil, nil) when absent.
func (s *Store) GetByID(ctx context.Context, id int64) (*Take, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+takeColumns+` FROM takes WHERE id = ?`, id)
	take, err := scanTake(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get take: %w", err)
	}
	return take, nil
}

// List returns all takes ordered by identifier.
func (s *Store) List(ctx context.Context) ([]*Take, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+takeColumns+` FROM takes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list takes: %w", err)
	}
	defer rows.Close()

	var out []*Take
	for rows.Next() {
		take, err := scanTake(rows)
		if err != nil {
			return nil, fmt.Errorf("scan take: %w", err)
		}
		out = append(out, take)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate takes: %w", err)
	}
	return out, nil
}

// Update persists changes to an existing take, including the full metadata
// and reasoning maps. This is the durable commit the pipeline issues after
// every stage boundary.
func (s *Store) Update(ctx context.Context, take *Take) error {
	if take == nil {
		return errors.New("take is nil")
	}
	take.ensureMaps()
	take.UpdatedAt = time.Now().UTC()

	metadataJSON, err := json.Marshal(take.AIMetadata)
	if err != nil {
		return fmt.Errorf("marshal ai_metadata: %w", err)
	}
	reasoningJSON, err := json.Marshal(take.AIReasoning)
	if err != nil {
		return fmt.Errorf("marshal ai_reasoning: %w", err)
	}

	res, err := s.execWithRetry(
		ctx,
		`UPDATE takes SET
            project_id = ?, file_name = ?, file_path = ?, duration_seconds = ?,
            confidence_score = ?, accept_status = ?, ai_metadata = ?, ai_reasoning = ?,
            updated_at = ?
        WHERE id = ?`,
		take.ProjectID,
		take.FileName,
		take.FilePath,
		take.DurationSeconds,
		take.ConfidenceScore,
		string(take.AcceptStatus),
		string(metadataJSON),
		string(reasoningJSON),
		take.UpdatedAt.Format(time.RFC3339Nano),
		take.ID,
	)
	if err != nil {
		return fmt.Errorf("update take: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("take %d not found", take.ID)
	}
	return nil
}

// SetAcceptStatus records a reviewer decision outside the pipeline.
func (s *Store) SetAcceptStatus(ctx context.Context, id int64, status AcceptStatus) error {
	res, err := s.execWithRetry(
		ctx,
		`UPDATE takes SET accept_status = ?, updated_at = ? WHERE id = ?`,
		string(status),
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return fmt.Errorf("set accept status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("take %d not found", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTake(row rowScanner) (*Take, error) {
	var (
		take          Take
		duration      sql.NullFloat64
		confidence    sql.NullFloat64
		acceptStatus  string
		metadataJSON  string
		reasoningJSON string
		createdAt     string
		updatedAt     string
	)
	if err := row.Scan(
		&take.ID,
		&take.ProjectID,
		&take.FileName,
		&take.FilePath,
		&duration,
		&confidence,
		&acceptStatus,
		&metadataJSON,
		&reasoningJSON,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	if duration.Valid {
		v := duration.Float64
		take.DurationSeconds = &v
	}
	if confidence.Valid {
		v := confidence.Float64
		take.ConfidenceScore = &v
	}
	if parsed, ok := ParseAcceptStatus(acceptStatus); ok {
		take.AcceptStatus = parsed
	}

	take.AIMetadata = decodeJSONMap(metadataJSON)
	take.AIReasoning = decodeJSONMap(reasoningJSON)

	if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		take.CreatedAt = ts
	}
	if ts, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		take.UpdatedAt = ts
	}
	return &take, nil
}

// decodeJSONMap always yields a usable map; malformed or empty column data
// degrades to an empty mapping rather than failing the read.
func decodeJSONMap(data string) map[string]any {
	out := map[string]any{}
	if data == "" {
		return out
	}
	_ = json.Unmarshal([]byte(data), &out)
	return out
}
