package app_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"coursebank-service/internal/app"
	"coursebank-service/internal/domain"
	"coursebank-service/internal/infra/memory"
)

// newChallengeFixture wires a challenge engine whose background ticker never
// fires within a test run; the countdown is driven explicitly through Tick.
func newChallengeFixture(t *testing.T, bankSize, questionSeconds int) (*app.ChallengeEngine, *app.LeaderboardService, *app.ModeGate) {
	t.Helper()
	notifier := app.NewNotifier(time.Minute)
	bank := app.NewBankService(testQuestions(bankSize, domain.UnitFreud), notifier)
	gate := app.NewModeGate()
	leaderboard := app.NewLeaderboardService(context.Background(), memory.NewKVStore())
	engine := app.NewChallengeEngine(bank, leaderboard, notifier, gate, rand.New(rand.NewSource(1)))
	engine.Configure(0, questionSeconds, time.Hour)
	return engine, leaderboard, gate
}

func TestChallengeRequiresUsername(t *testing.T) {
	engine, _, gate := newChallengeFixture(t, 10, 15)

	if _, err := engine.Start("   "); !errors.Is(err, domain.ErrEmptyUsername) {
		t.Fatalf("expected username error, got %v", err)
	}
	if gate.Current() != app.ModeIdle {
		t.Fatalf("failed start must not claim the gate")
	}
}

func TestChallengeStartSamplesFixedSubset(t *testing.T) {
	engine, _, _ := newChallengeFixture(t, 25, 15)
	defer engine.Exit()

	state, err := engine.Start("Alice")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if state.Total != app.DefaultChallengePoolSize {
		t.Fatalf("expected %d questions, got %d", app.DefaultChallengePoolSize, state.Total)
	}
	if state.Remaining != 15 || state.Index != 0 || state.Score != 0 {
		t.Fatalf("unexpected initial state: %+v", state)
	}
	if state.Question == nil {
		t.Fatalf("expected a current question")
	}
	if state.Question.CorrectAnswer != "" || state.Question.Explanation != "" {
		t.Fatalf("current question must not leak the answer")
	}
}

func TestChallengeTimeBonusScoring(t *testing.T) {
	engine, _, _ := newChallengeFixture(t, 10, 15)
	defer engine.Exit()

	if _, err := engine.Start("Bob"); err != nil {
		t.Fatalf("start: %v", err)
	}

	// 3 seconds elapse, 12 remain; a correct answer earns 100 + 12*10.
	for i := 0; i < 3; i++ {
		engine.Tick()
	}
	state, err := engine.Answer(domain.OptionB)
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if state.Score != 220 {
		t.Fatalf("expected 220 points, got %d", state.Score)
	}
	if state.Index != 1 || state.Remaining != 15 {
		t.Fatalf("expected advance with refilled countdown, got %+v", state)
	}

	// An incorrect answer is worth nothing but still advances.
	state, err = engine.Answer(domain.OptionA)
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if state.Score != 220 || state.Correct != 1 || state.Index != 2 {
		t.Fatalf("incorrect answer must not change the score: %+v", state)
	}
}

func TestChallengeTimeoutAdvancesWithoutScore(t *testing.T) {
	engine, _, _ := newChallengeFixture(t, 10, 2)
	defer engine.Exit()

	if _, err := engine.Start("Cara"); err != nil {
		t.Fatalf("start: %v", err)
	}

	// Countdown 2 -> 1 -> 0, then the next tick is the timeout.
	engine.Tick()
	engine.Tick()
	engine.Tick()

	state := engine.State()
	if state.Index != 1 {
		t.Fatalf("expected auto-advance on timeout, index=%d", state.Index)
	}
	if state.Score != 0 || state.Correct != 0 {
		t.Fatalf("timeout must award nothing: %+v", state)
	}
	if state.Remaining != 2 {
		t.Fatalf("countdown must refill after timeout, got %d", state.Remaining)
	}
}

func TestChallengeLastSecondCorrectAnswers(t *testing.T) {
	engine, leaderboard, _ := newChallengeFixture(t, 12, 2)
	defer engine.Exit()

	if _, err := engine.Start("Dina"); err != nil {
		t.Fatalf("start: %v", err)
	}

	// Answer all 10 questions with 0 seconds remaining, correct on 6.
	var state app.ChallengeState
	for i := 0; i < 10; i++ {
		engine.Tick()
		engine.Tick() // remaining now 0, still answerable
		choice := domain.OptionB
		if i >= 6 {
			choice = domain.OptionA
		}
		var err error
		state, err = engine.Answer(choice)
		if err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
	}

	if !state.Finished {
		t.Fatalf("expected finished run, got %+v", state)
	}
	if state.Score != 600 {
		t.Fatalf("expected 6 x 100 = 600, got %d", state.Score)
	}

	top := leaderboard.Top()
	if len(top) != 1 {
		t.Fatalf("expected one leaderboard entry, got %d", len(top))
	}
	entry := top[0]
	if entry.Username != "Dina" || entry.Score != 600 || entry.CorrectAnswers != 6 || entry.TotalQuestions != 10 {
		t.Fatalf("unexpected leaderboard entry: %+v", entry)
	}
}

func TestChallengeExitNeutralizesStaleTicks(t *testing.T) {
	engine, _, gate := newChallengeFixture(t, 10, 15)

	if _, err := engine.Start("Emre"); err != nil {
		t.Fatalf("start: %v", err)
	}
	engine.Exit()

	if gate.Current() != app.ModeIdle {
		t.Fatalf("exit must release the gate")
	}
	// A tick after exit must be a harmless no-op.
	engine.Tick()
	if engine.State().Active {
		t.Fatalf("no session may be resurrected by a late tick")
	}
	if _, err := engine.Answer(domain.OptionA); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected no-session error, got %v", err)
	}

	// Exit is idempotent, including after a finished run.
	engine.Exit()
}

func TestChallengeExclusiveWithQuiz(t *testing.T) {
	notifier := app.NewNotifier(time.Minute)
	bank := app.NewBankService(testQuestions(10, domain.UnitFreud), notifier)
	gate := app.NewModeGate()
	leaderboard := app.NewLeaderboardService(context.Background(), memory.NewKVStore())
	rnd := rand.New(rand.NewSource(1))

	quiz := app.NewQuizEngine(bank, notifier, gate, rnd)
	challenge := app.NewChallengeEngine(bank, leaderboard, notifier, gate, rnd)
	challenge.Configure(0, 15, time.Hour)

	if _, err := quiz.Start(nil, 5); err != nil {
		t.Fatalf("quiz start: %v", err)
	}
	if _, err := challenge.Start("Fay"); !errors.Is(err, domain.ErrQuizActive) {
		t.Fatalf("expected quiz-active error, got %v", err)
	}

	quiz.Reset()
	if _, err := challenge.Start("Fay"); err != nil {
		t.Fatalf("challenge start after quiz reset: %v", err)
	}
	defer challenge.Exit()

	if _, err := quiz.Start(nil, 5); !errors.Is(err, domain.ErrChallengeActive) {
		t.Fatalf("expected challenge-active error, got %v", err)
	}
}
