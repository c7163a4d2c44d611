package app

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"coursebank-service/internal/domain"
)

// Fixed challenge defaults, overridable through config.
const (
	DefaultChallengePoolSize = 10
	DefaultQuestionSeconds   = 15
	DefaultTickInterval      = time.Second
	correctBasePoints        = 100
	correctPerSecondBonus    = 10
)

// ChallengeEngine runs the timed competition: one question at a time against a
// countdown, time-bonus scoring, and a persisted top-10 leaderboard.
// States: setup -> active -> finished -> setup.
type ChallengeEngine struct {
	bank        *BankService
	leaderboard *LeaderboardService
	notifier    *Notifier
	gate        *ModeGate
	rnd         *rand.Rand
	clock       func() time.Time

	poolSize        int
	questionSeconds int
	tickInterval    time.Duration

	mu         sync.Mutex
	generation uint64
	session    *challengeSession
}

type challengeSession struct {
	username   string
	questions  []domain.Question
	index      int
	score      int
	correct    int
	remaining  int
	finished   bool
	generation uint64
	stop       chan struct{}
}

// ChallengeState is the transport-facing snapshot of the run.
type ChallengeState struct {
	Active    bool             `json:"active"`
	Finished  bool             `json:"finished"`
	Username  string           `json:"username"`
	Index     int              `json:"index"`
	Total     int              `json:"total"`
	Score     int              `json:"score"`
	Correct   int              `json:"correct"`
	Remaining int              `json:"remaining"`
	Question  *domain.Question `json:"question,omitempty"`
}

func NewChallengeEngine(bank *BankService, leaderboard *LeaderboardService, notifier *Notifier, gate *ModeGate, rnd *rand.Rand) *ChallengeEngine {
	return &ChallengeEngine{
		bank:            bank,
		leaderboard:     leaderboard,
		notifier:        notifier,
		gate:            gate,
		rnd:             rnd,
		clock:           time.Now,
		poolSize:        DefaultChallengePoolSize,
		questionSeconds: DefaultQuestionSeconds,
		tickInterval:    DefaultTickInterval,
	}
}

// Configure overrides the fixed defaults; zero values keep them.
func (e *ChallengeEngine) Configure(poolSize, questionSeconds int, tickInterval time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if poolSize > 0 {
		e.poolSize = poolSize
	}
	if questionSeconds > 0 {
		e.questionSeconds = questionSeconds
	}
	if tickInterval > 0 {
		e.tickInterval = tickInterval
	}
}

// SetClock is test-only for deterministic leaderboard dates.
func (e *ChallengeEngine) SetClock(now func() time.Time) {
	e.mu.Lock()
	e.clock = now
	e.mu.Unlock()
}

// Start samples the challenge subset from the whole bank and begins ticking.
// The username must be non-empty.
func (e *ChallengeEngine) Start(username string) (ChallengeState, error) {
	if isBlank(username) {
		e.notifier.Push(domain.ToastError, "Enter your name before starting the challenge.")
		return ChallengeState{}, domain.ErrEmptyUsername
	}

	pool := e.bank.List()
	if len(pool) == 0 {
		e.notifier.Push(domain.ToastError, "The question bank is empty.")
		return ChallengeState{}, domain.ErrEmptyPool
	}

	if err := e.gate.Acquire(ModeChallenge); err != nil {
		e.notifier.Push(domain.ToastError, "Finish the current session before starting a new one.")
		return ChallengeState{}, err
	}

	e.mu.Lock()
	e.rnd.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	size := e.poolSize
	if size > len(pool) {
		size = len(pool)
	}
	e.generation++
	session := &challengeSession{
		username:   username,
		questions:  pool[:size],
		remaining:  e.questionSeconds,
		generation: e.generation,
		stop:       make(chan struct{}),
	}
	e.session = session
	perQuestion := e.questionSeconds
	state := e.stateLocked()
	e.mu.Unlock()

	go e.run(session)
	e.notifier.Push(domain.ToastInfo, fmt.Sprintf("Challenge started. %d questions, %d seconds each.", size, perQuestion))
	return state, nil
}

// run drives the countdown until the session it was started for goes away.
func (e *ChallengeEngine) run(session *challengeSession) {
	ticker := time.NewTicker(e.tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-session.stop:
			return
		case <-ticker.C:
			if !e.tickAs(session.generation) {
				return
			}
		}
	}
}

// Tick advances the countdown of the active session by one time unit. The
// ticker goroutine calls the generation-checked variant; tests may drive the
// countdown directly through this method.
func (e *ChallengeEngine) Tick() {
	e.mu.Lock()
	if e.session != nil {
		e.tickAsLocked(e.session.generation)
	}
	e.mu.Unlock()
}

func (e *ChallengeEngine) tickAs(generation uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tickAsLocked(generation)
}

// tickAsLocked is the liveness-checked countdown step: a tick from a
// superseded session is a no-op and tells its ticker to stop.
func (e *ChallengeEngine) tickAsLocked(generation uint64) bool {
	s := e.session
	if s == nil || s.generation != generation || s.finished {
		return false
	}
	if s.remaining == 0 {
		// Timeout counts as an unanswered question, no score awarded.
		e.notifier.Push(domain.ToastError, "Time's up! Moving to the next question.")
		e.advanceLocked(s)
		return !s.finished
	}
	s.remaining--
	return true
}

// Answer compares the choice against the current question. A correct answer is
// worth 100 points plus 10 per second remaining; either way the run advances
// immediately and the countdown refills.
func (e *ChallengeEngine) Answer(choice domain.OptionKey) (ChallengeState, error) {
	e.mu.Lock()
	s := e.session
	if s == nil || s.finished {
		e.mu.Unlock()
		return ChallengeState{}, domain.ErrNoSession
	}

	question := s.questions[s.index]
	correct := question.CorrectAnswer == choice
	var awarded int
	if correct {
		awarded = correctBasePoints + correctPerSecondBonus*s.remaining
		s.score += awarded
		s.correct++
	}
	e.advanceLocked(s)
	state := e.stateLocked()
	e.mu.Unlock()

	if correct {
		e.notifier.Push(domain.ToastSuccess, fmt.Sprintf("Correct! +%d points.", awarded))
	} else {
		e.notifier.Push(domain.ToastError, fmt.Sprintf("Wrong. The answer was (%s).", question.CorrectAnswer))
	}
	return state, nil
}

// advanceLocked moves to the next question, or finishes the run and persists
// the leaderboard entry when the last question has been consumed.
func (e *ChallengeEngine) advanceLocked(s *challengeSession) {
	if s.index < len(s.questions)-1 {
		s.index++
		s.remaining = e.questionSeconds
		return
	}

	s.finished = true
	close(s.stop)
	entry := domain.LeaderboardEntry{
		Username:       s.username,
		Score:          s.score,
		Date:           e.clock(),
		CorrectAnswers: s.correct,
		TotalQuestions: len(s.questions),
	}
	// Persisting is best-effort; the store itself logs failed mirror writes.
	e.leaderboard.Append(context.Background(), entry)
	e.notifier.Push(domain.ToastSuccess,
		fmt.Sprintf("Challenge complete! %d points, %d/%d correct.", s.score, s.correct, len(s.questions)))
}

// Exit returns to setup from any state, cancelling the countdown and discarding
// the run. An already-persisted leaderboard entry is retained.
func (e *ChallengeEngine) Exit() {
	e.mu.Lock()
	if s := e.session; s != nil {
		if !s.finished {
			close(s.stop)
		}
		e.session = nil
	}
	e.mu.Unlock()
	e.gate.Release(ModeChallenge)
}

// State returns the current snapshot; the pending question is stripped of its
// answer and explanation.
func (e *ChallengeEngine) State() ChallengeState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

func (e *ChallengeEngine) stateLocked() ChallengeState {
	s := e.session
	if s == nil {
		return ChallengeState{}
	}
	state := ChallengeState{
		Active:    !s.finished,
		Finished:  s.finished,
		Username:  s.username,
		Index:     s.index,
		Total:     len(s.questions),
		Score:     s.score,
		Correct:   s.correct,
		Remaining: s.remaining,
	}
	if !s.finished {
		question := s.questions[s.index].Public()
		state.Question = &question
	}
	return state
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
