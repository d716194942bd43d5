// Package session keeps the per-session question collections in memory.
package session

import (
	"sync"

	"github.com/abhisek/quizgen/internal/quiz"
)

// DefaultID is used when a client does not supply a session id.
const DefaultID = "default"

// Session is a point-in-time copy of one session.
type Session struct {
	ID        string
	Title     string
	Questions []quiz.Question // ordered by id
}

type entry struct {
	title     string
	questions map[string]quiz.Question
}

// Store maps session ids to titled question collections. Sessions are
// never deleted and live as long as the process. All methods are safe for
// concurrent use and apply atomically per call.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*entry)}
}

// Replace discards whatever the session held and installs questions under
// title. Later duplicates of an id win.
func (s *Store) Replace(sessionID, title string, questions []quiz.Question) Session {
	e := &entry{title: title, questions: make(map[string]quiz.Question, len(questions))}
	for _, q := range questions {
		e.questions[q.ID] = q.Clone()
	}

	s.mu.Lock()
	s.sessions[sessionID] = e
	s.mu.Unlock()

	return snapshot(sessionID, e)
}

// Get returns one question from a session.
func (s *Store) Get(sessionID, questionID string) (quiz.Question, bool) {
	q, err := s.Lookup(sessionID, questionID)
	return q, err == nil
}

// Lookup is Get with the reason for a miss.
func (s *Store) Lookup(sessionID, questionID string) (quiz.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.sessions[sessionID]
	if !ok {
		return quiz.Question{}, quiz.Errorf(quiz.KindSessionNotFound, "Session not found")
	}
	q, ok := e.questions[questionID]
	if !ok {
		return quiz.Question{}, quiz.Errorf(quiz.KindQuestionNotFound, "Question not found")
	}
	return q.Clone(), nil
}

// Update replaces one existing question. A missing session or question is
// reported before the record is checked. The record is checked strictly
// and never repaired; on any failure the stored record is unchanged.
// The stored id is always questionID.
func (s *Store) Update(sessionID, questionID string, q quiz.Question) (quiz.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[sessionID]
	if !ok {
		return quiz.Question{}, quiz.Errorf(quiz.KindSessionNotFound, "Session not found")
	}
	if _, ok := e.questions[questionID]; !ok {
		return quiz.Question{}, quiz.Errorf(quiz.KindQuestionNotFound, "Question not found")
	}

	q = q.Clone()
	q.ID = questionID
	if err := q.Validate(); err != nil {
		return quiz.Question{}, err
	}
	e.questions[questionID] = q
	return q.Clone(), nil
}

// Snapshot returns a copy of the session with questions ordered by id.
func (s *Store) Snapshot(sessionID string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.sessions[sessionID]
	if !ok {
		return Session{}, false
	}
	return snapshot(sessionID, e), true
}

// snapshot must be called with the entry not concurrently mutated.
func snapshot(id string, e *entry) Session {
	qs := make([]quiz.Question, 0, len(e.questions))
	for _, q := range e.questions {
		qs = append(qs, q.Clone())
	}
	quiz.SortByID(qs)
	return Session{ID: id, Title: e.title, Questions: qs}
}
