package app

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"sync"

	"coursebank-service/internal/domain"
)

// Durable slot names. Each slot holds one JSON blob mirrored in full on every
// mutation, last write wins.
const (
	SlotNotes       = "bank:notes"
	SlotLeaderboard = "bank:leaderboard"
)

// KVStore abstracts the durable key-value storage behind the notes and
// leaderboard services (Redis, in-memory, etc). Load returns nil bytes for an
// absent slot.
type KVStore interface {
	Load(ctx context.Context, slot string) ([]byte, error)
	Save(ctx context.Context, slot string, data []byte) error
}

// NotesService is a write-through cache of per-question study notes. A note is
// keyed by question id and deliberately outlives its question: deleting a bank
// entry does not cascade here.
type NotesService struct {
	store KVStore

	mu    sync.RWMutex
	notes map[int64]string
}

// NewNotesService loads the prior durable value; absence or a corrupt blob
// degrades to an empty mapping, never an error.
func NewNotesService(ctx context.Context, store KVStore) *NotesService {
	s := &NotesService{store: store, notes: make(map[int64]string)}
	data, err := store.Load(ctx, SlotNotes)
	if err != nil {
		log.Printf("notes: load failed, starting empty: %v", err)
		return s
	}
	if len(data) == 0 {
		return s
	}
	if err := json.Unmarshal(data, &s.notes); err != nil {
		log.Printf("notes: corrupt persisted blob, starting empty: %v", err)
		s.notes = make(map[int64]string)
	}
	return s
}

// Set stores or clears the note for a question and mirrors the full mapping.
func (s *NotesService) Set(ctx context.Context, questionID int64, text string) {
	s.mu.Lock()
	if text == "" {
		delete(s.notes, questionID)
	} else {
		s.notes[questionID] = text
	}
	data, err := json.Marshal(s.notes)
	s.mu.Unlock()

	if err != nil {
		log.Printf("notes: marshal failed: %v", err)
		return
	}
	if err := s.store.Save(ctx, SlotNotes, data); err != nil {
		log.Printf("notes: mirror write failed: %v", err)
	}
}

// Get returns the note for a question, if any.
func (s *NotesService) Get(questionID int64) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.notes[questionID]
	return text, ok
}

// All returns a copy of the full mapping.
func (s *NotesService) All() map[int64]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	notes := make(map[int64]string, len(s.notes))
	for id, text := range s.notes {
		notes[id] = text
	}
	return notes
}

// LeaderboardCapacity caps the ranked history to the top entries.
const LeaderboardCapacity = 10

// LeaderboardService keeps the ranked challenge history, sorted descending by
// score and truncated to capacity, mirrored on every append.
type LeaderboardService struct {
	store KVStore

	mu      sync.RWMutex
	entries []domain.LeaderboardEntry
}

// NewLeaderboardService loads the prior durable value with the same tolerant
// fallback as the notes service.
func NewLeaderboardService(ctx context.Context, store KVStore) *LeaderboardService {
	s := &LeaderboardService{store: store}
	data, err := store.Load(ctx, SlotLeaderboard)
	if err != nil {
		log.Printf("leaderboard: load failed, starting empty: %v", err)
		return s
	}
	if len(data) == 0 {
		return s
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		log.Printf("leaderboard: corrupt persisted blob, starting empty: %v", err)
		s.entries = nil
	}
	return s
}

// Append inserts a finished challenge result, re-sorts, truncates to capacity
// and mirrors the list. It returns the resulting snapshot.
func (s *LeaderboardService) Append(ctx context.Context, entry domain.LeaderboardEntry) []domain.LeaderboardEntry {
	s.mu.Lock()
	s.entries = append(s.entries, entry)
	sort.SliceStable(s.entries, func(i, j int) bool {
		if s.entries[i].Score != s.entries[j].Score {
			return s.entries[i].Score > s.entries[j].Score
		}
		// Equal scores rank the earlier completion first.
		return s.entries[i].Date.Before(s.entries[j].Date)
	})
	if len(s.entries) > LeaderboardCapacity {
		s.entries = s.entries[:LeaderboardCapacity]
	}
	data, err := json.Marshal(s.entries)
	snapshot := append([]domain.LeaderboardEntry(nil), s.entries...)
	s.mu.Unlock()

	if err != nil {
		log.Printf("leaderboard: marshal failed: %v", err)
		return snapshot
	}
	if err := s.store.Save(ctx, SlotLeaderboard, data); err != nil {
		log.Printf("leaderboard: mirror write failed: %v", err)
	}
	return snapshot
}

// Top returns the ranked snapshot.
func (s *LeaderboardService) Top() []domain.LeaderboardEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.LeaderboardEntry(nil), s.entries...)
}
