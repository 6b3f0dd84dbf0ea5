package routehandlers

import (
	"context"
	"time"

	"github.com/lakonic/noted/datastore"
	"github.com/lakonic/noted/models"
)

// In-memory stands-ins for the datastore interfaces. They reproduce the
// owner-scoping behavior of the real repositories.

type fakeUserStore struct {
	users     map[string]*models.User // keyed by email
	createErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (s *fakeUserStore) CreateUser(ctx context.Context, user *models.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	if _, exists := s.users[user.Email]; exists {
		return datastore.ErrDuplicateEmail
	}
	copied := *user
	s.users[user.Email] = &copied
	return nil
}

func (s *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, datastore.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

type fakeNoteStore struct {
	notes         []models.Note
	lastTagFilter []string
	listCalls     int
	listErr       error
}

func (s *fakeNoteStore) ListNotes(ctx context.Context, userID string, tagFilter []string) ([]models.Note, error) {
	s.listCalls++
	s.lastTagFilter = tagFilter
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []models.Note
	for _, note := range s.notes {
		if note.UserID != userID {
			continue
		}
		if len(tagFilter) > 0 && !tagsOverlap(note.Tags, tagFilter) {
			continue
		}
		out = append(out, note)
	}
	return out, nil
}

func (s *fakeNoteStore) CreateNote(ctx context.Context, note *models.Note) error {
	s.notes = append([]models.Note{*note}, s.notes...)
	return nil
}

func (s *fakeNoteStore) UpdateNote(ctx context.Context, userID, noteID string, update models.NoteUpdate) (*models.Note, error) {
	for i := range s.notes {
		if s.notes[i].ID != noteID || s.notes[i].UserID != userID {
			continue
		}
		if update.Title != nil {
			s.notes[i].Title = *update.Title
		}
		if update.Content != nil {
			s.notes[i].Content = *update.Content
		}
		if update.Tags != nil {
			s.notes[i].Tags = *update.Tags
		}
		if update.Favorite != nil {
			s.notes[i].Favorite = *update.Favorite
		}
		s.notes[i].UpdatedAt = time.Now().UTC()
		copied := s.notes[i]
		return &copied, nil
	}
	return nil, datastore.ErrNotFound
}

func (s *fakeNoteStore) DeleteNote(ctx context.Context, userID, noteID string) error {
	for i := range s.notes {
		if s.notes[i].ID == noteID && s.notes[i].UserID == userID {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			return nil
		}
	}
	return datastore.ErrNotFound
}

func tagsOverlap(tags, filter []string) bool {
	for _, tag := range tags {
		for _, wanted := range filter {
			if tag == wanted {
				return true
			}
		}
	}
	return false
}

type fakeSuggester struct {
	text       string
	err        error
	gotTitle   string
	gotContent string
	gotTags    []string
}

func (s *fakeSuggester) Suggest(ctx context.Context, title, content string, tags []string) (string, error) {
	s.gotTitle = title
	s.gotContent = content
	s.gotTags = tags
	return s.text, s.err
}
