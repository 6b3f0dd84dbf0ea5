package models

import "time"

// Note is a text note belonging to exactly one user. Tags keep their
// insertion order; Favorite defaults to false.
type Note struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"user"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	Favorite  bool      `json:"favorite"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteUpdate carries a partial set of note fields for an update. Nil
// pointers mean "leave unchanged".
type NoteUpdate struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Tags     *[]string `json:"tags"`
	Favorite *bool     `json:"favorite"`
}
