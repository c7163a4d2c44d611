package app

import (
	"math"
	"math/rand"
	"sync"

	"coursebank-service/internal/domain"
)

// Bounds for the requested quiz size; the slider in the client offers the same range.
const (
	QuizMinCount = 3
	QuizMaxCount = 20
)

// QuizEngine runs the self-graded quiz: sample a randomized subset, collect
// answers, grade on submit. States: idle -> active -> submitted -> idle.
type QuizEngine struct {
	bank     *BankService
	notifier *Notifier
	gate     *ModeGate
	rnd      *rand.Rand

	mu      sync.Mutex
	session *quizSession
}

type quizSession struct {
	questions []domain.Question
	answers   map[int64]domain.OptionKey
	submitted bool
}

// QuizState is the transport-facing snapshot of the session.
type QuizState struct {
	Active    bool                       `json:"active"`
	Submitted bool                       `json:"submitted"`
	Questions []domain.Question          `json:"questions"`
	Answers   map[int64]domain.OptionKey `json:"answers"`
}

// CategoryScore is the per-category slice of a graded quiz.
type CategoryScore struct {
	Title   string `json:"title"`
	Color   string `json:"color"`
	Correct int    `json:"correct"`
	Total   int    `json:"total"`
	Percent int    `json:"percent"`
}

// QuizResult is the outcome of a submitted quiz.
type QuizResult struct {
	Score      int                      `json:"score"`
	Total      int                      `json:"total"`
	Percent    int                      `json:"percent"`
	ByCategory map[string]CategoryScore `json:"byCategory"`
}

func NewQuizEngine(bank *BankService, notifier *Notifier, gate *ModeGate, rnd *rand.Rand) *QuizEngine {
	return &QuizEngine{bank: bank, notifier: notifier, gate: gate, rnd: rnd}
}

// Start samples min(count, pool size) questions from the units' pool and
// transitions to active. An empty pool aborts without a state change.
func (e *QuizEngine) Start(units []domain.Unit, count int) (QuizState, error) {
	if count < QuizMinCount {
		count = QuizMinCount
	}
	if count > QuizMaxCount {
		count = QuizMaxCount
	}

	pool := e.buildPool(units)
	if len(pool) == 0 {
		e.notifier.Push(domain.ToastError, "No questions available in the selected units.")
		return QuizState{}, domain.ErrEmptyPool
	}

	if err := e.gate.Acquire(ModeQuiz); err != nil {
		e.notifier.Push(domain.ToastError, "Finish the current session before starting a new one.")
		return QuizState{}, err
	}

	e.mu.Lock()
	e.rnd.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if count > len(pool) {
		count = len(pool)
	}
	e.session = &quizSession{
		questions: pool[:count],
		answers:   make(map[int64]domain.OptionKey),
	}
	state := e.stateLocked()
	e.mu.Unlock()

	e.notifier.Push(domain.ToastInfo, "Quiz session started. Good luck!")
	return state, nil
}

// buildPool gathers questions whose unit is in the selected set; an empty set
// means all units.
func (e *QuizEngine) buildPool(units []domain.Unit) []domain.Question {
	all := e.bank.List()
	if len(units) == 0 {
		return all
	}
	selected := make(map[domain.Unit]struct{}, len(units))
	for _, u := range units {
		selected[u] = struct{}{}
	}
	pool := make([]domain.Question, 0, len(all))
	for _, q := range all {
		if _, ok := selected[q.Unit]; ok {
			pool = append(pool, q)
		}
	}
	return pool
}

// Answer records or overwrites the chosen option while the session is active.
// Answers are frozen after submission; a late answer is simply ignored.
func (e *QuizEngine) Answer(questionID int64, choice domain.OptionKey) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return domain.ErrNoSession
	}
	if e.session.submitted {
		return nil
	}
	for _, q := range e.session.questions {
		if q.ID == questionID {
			e.session.answers[questionID] = choice
			return nil
		}
	}
	return domain.ErrQuestionNotFound
}

// Submit freezes the answers and grades the session. Submitting twice returns
// the same result.
func (e *QuizEngine) Submit() (QuizResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return QuizResult{}, domain.ErrNoSession
	}
	e.session.submitted = true
	return e.gradeLocked(), nil
}

// Reset discards the session entirely and releases the mode gate.
func (e *QuizEngine) Reset() {
	e.mu.Lock()
	e.session = nil
	e.mu.Unlock()
	e.gate.Release(ModeQuiz)
}

// State returns the current snapshot for the client.
func (e *QuizEngine) State() QuizState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

// Progress reports answered/total for the progress bar.
func (e *QuizEngine) Progress() (answered, total int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return 0, 0
	}
	return len(e.session.answers), len(e.session.questions)
}

func (e *QuizEngine) stateLocked() QuizState {
	if e.session == nil {
		return QuizState{}
	}
	answers := make(map[int64]domain.OptionKey, len(e.session.answers))
	for id, choice := range e.session.answers {
		answers[id] = choice
	}
	return QuizState{
		Active:    true,
		Submitted: e.session.submitted,
		Questions: append([]domain.Question(nil), e.session.questions...),
		Answers:   answers,
	}
}

func (e *QuizEngine) gradeLocked() QuizResult {
	s := e.session
	result := QuizResult{
		Total:      len(s.questions),
		ByCategory: make(map[string]CategoryScore),
	}
	for _, q := range s.questions {
		category := domain.CategoryOf(q.Unit)
		score := result.ByCategory[category.ID]
		score.Title = category.Title
		score.Color = category.Color
		score.Total++
		if s.answers[q.ID] == q.CorrectAnswer {
			score.Correct++
			result.Score++
		}
		result.ByCategory[category.ID] = score
	}
	for id, score := range result.ByCategory {
		score.Percent = roundPercent(score.Correct, score.Total)
		result.ByCategory[id] = score
	}
	result.Percent = roundPercent(result.Score, result.Total)
	return result
}

func roundPercent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
