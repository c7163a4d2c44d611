package app

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"coursebank-service/internal/domain"
)

// BankService holds the working set of questions and derives the filtered views
// the bank browser renders. Questions are kept most-recently-added first.
type BankService struct {
	notifier *Notifier
	clock    func() time.Time

	mu            sync.RWMutex
	questions     []domain.Question
	lastID        int64
	pendingDelete int64
}

func NewBankService(seed []domain.Question, notifier *Notifier) *BankService {
	return NewBankServiceWithClock(seed, notifier, time.Now)
}

// NewBankServiceWithClock allows deterministic ids and export filenames in tests.
func NewBankServiceWithClock(seed []domain.Question, notifier *Notifier, now func() time.Time) *BankService {
	b := &BankService{
		notifier:  notifier,
		clock:     now,
		questions: append([]domain.Question(nil), seed...),
	}
	for _, q := range seed {
		if q.ID > b.lastID {
			b.lastID = q.ID
		}
	}
	return b
}

// Add validates a candidate question, assigns it a fresh id and inserts it at
// the front of the collection. No partial insert happens on failure.
func (b *BankService) Add(candidate domain.Question) (domain.Question, error) {
	if err := validateQuestion(candidate); err != nil {
		b.notifier.Push(domain.ToastError, "Please complete all question fields before saving.")
		return domain.Question{}, err
	}

	b.mu.Lock()
	candidate.ID = b.nextIDLocked()
	b.questions = append([]domain.Question{candidate}, b.questions...)
	b.mu.Unlock()

	b.notifier.Push(domain.ToastSuccess, "Question added to the bank.")
	return candidate, nil
}

// nextIDLocked derives ids from the wall clock; insertion order breaks ties so
// two adds in the same millisecond still get distinct, increasing ids.
func (b *BankService) nextIDLocked() int64 {
	id := b.clock().UnixMilli()
	if id <= b.lastID {
		id = b.lastID + 1
	}
	b.lastID = id
	return id
}

// StageDelete records the id awaiting confirmation. The actual removal happens
// only in ConfirmDelete.
func (b *BankService) StageDelete(id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.findLocked(id); !ok {
		return domain.ErrQuestionNotFound
	}
	b.pendingDelete = id
	return nil
}

// CancelDelete clears the staged id with no side effects.
func (b *BankService) CancelDelete() {
	b.mu.Lock()
	b.pendingDelete = 0
	b.mu.Unlock()
}

// PendingDelete reports the staged id, zero when nothing is staged.
func (b *BankService) PendingDelete() int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pendingDelete
}

// ConfirmDelete removes the staged question. Removing an id that vanished in
// the meantime is a no-op.
func (b *BankService) ConfirmDelete() (int64, error) {
	b.mu.Lock()
	id := b.pendingDelete
	b.pendingDelete = 0
	if id == 0 {
		b.mu.Unlock()
		return 0, domain.ErrQuestionNotFound
	}
	if i, ok := b.findLocked(id); ok {
		b.questions = append(b.questions[:i], b.questions[i+1:]...)
	}
	b.mu.Unlock()

	b.notifier.Push(domain.ToastDelete, "Question removed from the bank.")
	return id, nil
}

// List returns the full ordered collection, most-recently-added first.
func (b *BankService) List() []domain.Question {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]domain.Question(nil), b.questions...)
}

// Get looks a question up by id, for deep links of the form q-<id>.
func (b *BankService) Get(id int64) (domain.Question, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if i, ok := b.findLocked(id); ok {
		return b.questions[i], nil
	}
	return domain.Question{}, domain.ErrQuestionNotFound
}

// Filter derives the visible subset: exact unit match (or the UnitAll sentinel)
// AND a case-insensitive substring match against scenario or question text.
func (b *BankService) Filter(unit domain.Unit, query string) []domain.Question {
	needle := strings.ToLower(strings.TrimSpace(query))

	b.mu.RLock()
	defer b.mu.RUnlock()
	matched := make([]domain.Question, 0, len(b.questions))
	for _, q := range b.questions {
		if unit != domain.UnitAll && q.Unit != unit {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(q.Scenario), needle) &&
			!strings.Contains(strings.ToLower(q.Text), needle) {
			continue
		}
		matched = append(matched, q)
	}
	return matched
}

// CountByUnit returns the sidebar badge count for a unit.
func (b *BankService) CountByUnit(unit domain.Unit) int {
	return len(b.Filter(unit, ""))
}

// ExportJSON serializes the current filtered list to a downloadable JSON
// document named with the current date.
func (b *BankService) ExportJSON(unit domain.Unit, query string) ([]byte, string, error) {
	data, err := json.MarshalIndent(b.Filter(unit, query), "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("export questions: %w", err)
	}
	filename := fmt.Sprintf("question-bank-%s.json", b.clock().Format("2006-01-02"))
	return data, filename, nil
}

func (b *BankService) findLocked(id int64) (int, bool) {
	for i := range b.questions {
		if b.questions[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

func validateQuestion(q domain.Question) error {
	if !validUnit(q.Unit) {
		return fmt.Errorf("%w: unknown unit %q", domain.ErrValidation, q.Unit)
	}
	if strings.TrimSpace(q.Scenario) == "" {
		return fmt.Errorf("%w: scenario is required", domain.ErrValidation)
	}
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: question text is required", domain.ErrValidation)
	}
	for _, key := range domain.OptionKeys() {
		if strings.TrimSpace(q.Options[key]) == "" {
			return fmt.Errorf("%w: option %s is required", domain.ErrValidation, key)
		}
	}
	if _, ok := q.Options[q.CorrectAnswer]; !ok {
		return fmt.Errorf("%w: correct answer must reference an option", domain.ErrValidation)
	}
	return nil
}

func validUnit(unit domain.Unit) bool {
	for _, u := range domain.Units() {
		if u == unit {
			return true
		}
	}
	return false
}
