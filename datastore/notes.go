package datastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/lakonic/noted/models"
)

// NoteStore is the persistence surface the note handlers depend on.
// Every method is scoped to the owning user: a note belonging to someone
// else behaves exactly like a note that does not exist.
type NoteStore interface {
	ListNotes(ctx context.Context, userID string, tagFilter []string) ([]models.Note, error)
	CreateNote(ctx context.Context, note *models.Note) error
	UpdateNote(ctx context.Context, userID, noteID string, update models.NoteUpdate) (*models.Note, error)
	DeleteNote(ctx context.Context, userID, noteID string) error
}

type NoteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// ListNotes returns the user's notes, newest update first. When tagFilter
// is non-empty only notes sharing at least one tag with the filter are
// returned (array overlap, OR semantics).
func (r *NoteRepository) ListNotes(ctx context.Context, userID string, tagFilter []string) ([]models.Note, error) {
	query := `
		SELECT id, user_id, title, content, tags, favorite, created_at, updated_at
		FROM notes
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`
	args := []any{userID}
	if len(tagFilter) > 0 {
		query = `
		SELECT id, user_id, title, content, tags, favorite, created_at, updated_at
		FROM notes
		WHERE user_id = $1 AND tags && $2
		ORDER BY updated_at DESC
	`
		args = append(args, pq.Array(tagFilter))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var note models.Note
		if err := rows.Scan(&note.ID, &note.UserID, &note.Title, &note.Content,
			pq.Array(&note.Tags), &note.Favorite, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note row: %w", err)
		}
		notes = append(notes, note)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating note rows: %w", err)
	}

	return notes, nil
}

func (r *NoteRepository) CreateNote(ctx context.Context, note *models.Note) error {
	query := `
		INSERT INTO notes (id, user_id, title, content, tags, favorite, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query, note.ID, note.UserID, note.Title, note.Content,
		pq.Array(note.Tags), note.Favorite, note.CreatedAt, note.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

// UpdateNote applies the non-nil fields of update to the note identified by
// noteID, provided it belongs to userID. Returns ErrNotFound when no such
// note is visible to the user.
func (r *NoteRepository) UpdateNote(ctx context.Context, userID, noteID string, update models.NoteUpdate) (*models.Note, error) {
	query := `
		UPDATE notes
		SET title      = COALESCE($3, title),
		    content    = COALESCE($4, content),
		    tags       = COALESCE($5, tags),
		    favorite   = COALESCE($6, favorite),
		    updated_at = $7
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, title, content, tags, favorite, created_at, updated_at
	`
	var tags any
	if update.Tags != nil {
		tags = pq.Array(*update.Tags)
	}

	var note models.Note
	row := r.db.QueryRowContext(ctx, query, noteID, userID,
		update.Title, update.Content, tags, update.Favorite, time.Now().UTC())
	err := row.Scan(&note.ID, &note.UserID, &note.Title, &note.Content,
		pq.Array(&note.Tags), &note.Favorite, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	return &note, nil
}

// DeleteNote removes the note if it belongs to userID. Returns ErrNotFound
// when nothing was deleted.
func (r *NoteRepository) DeleteNote(ctx context.Context, userID, noteID string) error {
	query := `
		DELETE FROM notes
		WHERE id = $1 AND user_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, noteID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
