// Package repository persists generation history metadata in SQLite.
package repository

import (
	"database/sql"
	"fmt"

	"novavision/internal/models"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// GenerationRepository stores completed generation metadata. Image bytes are
// never persisted.
type GenerationRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewGenerationRepository opens (and migrates) the history database.
func NewGenerationRepository(dbPath string, logger *zap.Logger) (*GenerationRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	repo := &GenerationRepository{
		db:     db,
		logger: logger,
	}

	if err := repo.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Generation repository initialized", zap.String("db_path", dbPath))

	return repo, nil
}

func (r *GenerationRepository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS generations (
		id TEXT PRIMARY KEY,
		text TEXT NOT NULL,
		emotion TEXT NOT NULL,
		style TEXT NOT NULL,
		input_type TEXT NOT NULL,
		prompt TEXT NOT NULL,
		seed INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		model TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_generations_emotion ON generations(emotion);
	CREATE INDEX IF NOT EXISTS idx_generations_created_at ON generations(created_at);
	`

	_, err := r.db.Exec(schema)
	return err
}

// SaveGeneration inserts one history row.
func (r *GenerationRepository) SaveGeneration(rec *models.GenerationRecord) error {
	query := `
		INSERT INTO generations (
			id, text, emotion, style, input_type, prompt,
			seed, width, height, model, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		rec.ID,
		rec.Text,
		rec.Emotion,
		rec.Style,
		rec.InputType,
		rec.Prompt,
		rec.Seed,
		rec.Width,
		rec.Height,
		rec.Model,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save generation: %w", err)
	}

	return nil
}

// ListGenerations returns the most recent history rows, newest first.
func (r *GenerationRepository) ListGenerations(limit int) ([]*models.GenerationRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, text, emotion, style, input_type, prompt,
		       seed, width, height, model, created_at
		FROM generations
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	defer rows.Close()

	var records []*models.GenerationRecord
	for rows.Next() {
		rec := &models.GenerationRecord{}
		if err := rows.Scan(
			&rec.ID,
			&rec.Text,
			&rec.Emotion,
			&rec.Style,
			&rec.InputType,
			&rec.Prompt,
			&rec.Seed,
			&rec.Width,
			&rec.Height,
			&rec.Model,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan generation: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Stats returns per-emotion and per-style generation counts.
func (r *GenerationRepository) Stats() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM generations`).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count generations: %w", err)
	}
	stats["total"] = total

	byEmotion, err := r.countBy("emotion")
	if err != nil {
		return nil, err
	}
	stats["by_emotion"] = byEmotion

	byStyle, err := r.countBy("style")
	if err != nil {
		return nil, err
	}
	stats["by_style"] = byStyle

	return stats, nil
}

func (r *GenerationRepository) countBy(column string) (map[string]int, error) {
	// column is one of the fixed names above, never user input.
	query := fmt.Sprintf(`SELECT %s, COUNT(*) FROM generations GROUP BY %s`, column, column)

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to count by %s: %w", column, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[key] = count
	}

	return counts, rows.Err()
}

// Close closes the underlying database.
func (r *GenerationRepository) Close() error {
	return r.db.Close()
}
