package notes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"example.com/notes-web/internal/storage"
	"example.com/notes-web/internal/stringsx"
)

const documentIndent = "    "

// NoteStore owns the note collection. Every operation reads the whole
// document from the backend and mutating operations write it back in full;
// mu serializes those cycles so concurrent requests cannot lose updates.
type NoteStore struct {
	backend storage.Backend
	log     logrus.FieldLogger
	now     func() time.Time

	mu sync.Mutex
	// lastID is the highest id this store has assigned or loaded.
	lastID int64
}

type Option func(*NoteStore)

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *NoteStore) { s.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *NoteStore) { s.now = now }
}

func NewNoteStore(backend storage.Backend, opts ...Option) *NoteStore {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	s := &NoteStore{
		backend: backend,
		log:     discard,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the persisted collection. A missing or malformed document
// yields an empty collection. Any other read failure is logged and also
// yields an empty collection; mutating operations return it instead.
func (s *NoteStore) Load(ctx context.Context) []Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.load(ctx)
	if err != nil {
		s.log.WithError(err).Error("cannot read notes document, listing nothing")
		return []Note{}
	}
	return notes
}

func (s *NoteStore) List(ctx context.Context) []Note {
	return s.Load(ctx)
}

// Save overwrites the persisted collection with notes.
func (s *NoteStore) Save(ctx context.Context, notes []Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, notes)
}

func (s *NoteStore) Get(ctx context.Context, id int64) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.load(ctx)
	if err != nil {
		return Note{}, err
	}
	i := indexOf(notes, id)
	if i < 0 {
		return Note{}, ErrNotFound
	}
	return notes[i], nil
}

func (s *NoteStore) Create(ctx context.Context, title, content string) (Note, error) {
	title, content, err := validate(title, content)
	if err != nil {
		return Note{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.load(ctx)
	if err != nil {
		return Note{}, err
	}
	s.lastID = max(s.lastID, maxID(notes)) + 1
	n := Note{
		ID:        s.lastID,
		Title:     title,
		Content:   content,
		CreatedAt: NewTimestamp(s.now().UTC()),
	}
	if err := s.save(ctx, append(notes, n)); err != nil {
		return Note{}, err
	}

	s.log.WithField("id", n.ID).Debug("note created")
	return n, nil
}

// Update replaces title and content of the note with the given id. With a
// blank field the stored note is left as is and returned together with a
// *ValidationError.
func (s *NoteStore) Update(ctx context.Context, id int64, title, content string) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.load(ctx)
	if err != nil {
		return Note{}, err
	}
	i := indexOf(notes, id)
	if i < 0 {
		return Note{}, ErrNotFound
	}

	title, content, err = validate(title, content)
	if err != nil {
		return notes[i], err
	}

	updated := NewTimestamp(s.now().UTC())
	notes[i].Title = title
	notes[i].Content = content
	notes[i].UpdatedAt = &updated
	if err := s.save(ctx, notes); err != nil {
		return Note{}, err
	}

	s.log.WithField("id", id).Debug("note updated")
	return notes[i], nil
}

// Delete removes every note with the given id and persists the result even
// when nothing matched. It reports whether a note was removed.
func (s *NoteStore) Delete(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	kept := make([]Note, 0, len(notes))
	for _, n := range notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	if err := s.save(ctx, kept); err != nil {
		return false, err
	}

	removed := len(kept) != len(notes)
	s.log.WithFields(logrus.Fields{"id": id, "removed": removed}).Debug("note delete")
	return removed, nil
}

// load treats a missing or malformed document as an empty collection.
// Other backend failures are returned wrapped in ErrStorageRead so that no
// mutation is written over a document that could not be read.
func (s *NoteStore) load(ctx context.Context) ([]Note, error) {
	log := s.log.WithField("backend", s.backend.Describe())

	data, err := s.backend.Read(ctx)
	if errors.Is(err, storage.ErrNotExist) {
		log.Debug("no notes document yet, starting empty")
		return []Note{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageRead, err)
	}

	var notes []Note
	if err := json.Unmarshal(data, &notes); err != nil {
		log.WithError(err).Warn("malformed notes document, treating store as empty")
		return []Note{}, nil
	}
	if notes == nil {
		notes = []Note{}
	}
	s.lastID = max(s.lastID, maxID(notes))
	return notes, nil
}

func (s *NoteStore) save(ctx context.Context, notes []Note) error {
	if notes == nil {
		notes = []Note{}
	}
	data, err := json.MarshalIndent(notes, "", documentIndent)
	if err != nil {
		return fmt.Errorf("%w: encode notes: %w", ErrStorageWrite, err)
	}
	if err := s.backend.Write(ctx, data); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	s.lastID = max(s.lastID, maxID(notes))
	return nil
}

func validate(title, content string) (string, string, error) {
	var blank []string
	if stringsx.IsBlank(title) {
		blank = append(blank, "title")
	}
	if stringsx.IsBlank(content) {
		blank = append(blank, "content")
	}
	if len(blank) > 0 {
		return "", "", &ValidationError{Fields: blank}
	}
	return strings.TrimSpace(title), strings.TrimSpace(content), nil
}

func indexOf(notes []Note, id int64) int {
	for i, n := range notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func maxID(notes []Note) int64 {
	var m int64
	for _, n := range notes {
		m = max(m, n.ID)
	}
	return m
}
