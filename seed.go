package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lakonic/noted/auth"
	"github.com/lakonic/noted/datastore"
	"github.com/lakonic/noted/models"
)

const (
	seedEmail    = "dummy@user.com"
	seedPassword = "password123"
)

var seedNotes = []models.Note{
	{Title: "Project ideas", Content: "Build a note-taking app with AI suggestions", Tags: []string{"ideas", "projects"}},
	{Title: "Shopping list", Content: "Milk, Bread, Eggs, Coffee", Tags: []string{"personal", "shopping"}},
	{Title: "Workout routine", Content: "Mon: Chest, Tue: Back, Wed: Legs", Tags: []string{"fitness", "health"}},
	{Title: "Career goals", Content: "Learn system design, build portfolio", Tags: []string{"career", "goals"}},
	{Title: "Books to read", Content: "Deep Work, Atomic Habits, Pragmatic Programmer", Tags: []string{"books", "reading"}},
	{Title: "Daily journal", Content: "Reflect on today's achievements and tasks", Tags: []string{"journal", "personal"}},
}

// runSeed creates the demo user if missing and replaces that user's notes
// with the sample set. Safe to run repeatedly.
func runSeed(ctx context.Context, db *sql.DB, users datastore.UserStore, notes datastore.NoteStore) error {
	user, err := users.GetUserByEmail(ctx, seedEmail)
	if errors.Is(err, datastore.ErrNotFound) {
		hash, hashErr := auth.HashPassword(seedPassword)
		if hashErr != nil {
			return fmt.Errorf("failed to hash demo password: %w", hashErr)
		}
		user = &models.User{
			ID:           uuid.NewString(),
			Email:        seedEmail,
			PasswordHash: hash,
			CreatedAt:    time.Now().UTC(),
		}
		if err := users.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("failed to create demo user: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to look up demo user: %w", err)
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM notes WHERE user_id = $1`, user.ID); err != nil {
		return fmt.Errorf("failed to clear demo notes: %w", err)
	}

	for _, sample := range seedNotes {
		now := time.Now().UTC()
		note := sample
		note.ID = uuid.NewString()
		note.UserID = user.ID
		note.CreatedAt = now
		note.UpdatedAt = now
		if err := notes.CreateNote(ctx, &note); err != nil {
			return fmt.Errorf("failed to insert demo note %q: %w", note.Title, err)
		}
	}

	return nil
}
