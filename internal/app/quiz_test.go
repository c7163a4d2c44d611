package app_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"coursebank-service/internal/app"
	"coursebank-service/internal/domain"
)

func newQuizFixture(seed []domain.Question) (*app.QuizEngine, *app.ModeGate) {
	notifier := app.NewNotifier(time.Minute)
	bank := app.NewBankService(seed, notifier)
	gate := app.NewModeGate()
	engine := app.NewQuizEngine(bank, notifier, gate, rand.New(rand.NewSource(1)))
	return engine, gate
}

func TestQuizStartBoundedByPoolSize(t *testing.T) {
	engine, _ := newQuizFixture(testQuestions(8, domain.UnitFreud))

	state, err := engine.Start(nil, 10)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if len(state.Questions) != 8 {
		t.Fatalf("expected session bounded by pool size 8, got %d", len(state.Questions))
	}
}

func TestQuizStartSamplesWithoutReplacement(t *testing.T) {
	engine, _ := newQuizFixture(testQuestions(20, domain.UnitFreud))

	state, err := engine.Start([]domain.Unit{domain.UnitFreud}, 12)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if len(state.Questions) != 12 {
		t.Fatalf("expected 12 questions, got %d", len(state.Questions))
	}
	seen := make(map[int64]bool)
	for _, q := range state.Questions {
		if seen[q.ID] {
			t.Fatalf("question %d sampled twice", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestQuizStartEmptyPool(t *testing.T) {
	engine, gate := newQuizFixture(testQuestions(5, domain.UnitFreud))

	_, err := engine.Start([]domain.Unit{domain.UnitTraits}, 5)
	if !errors.Is(err, domain.ErrEmptyPool) {
		t.Fatalf("expected empty pool error, got %v", err)
	}
	if gate.Current() != app.ModeIdle {
		t.Fatalf("failed start must not claim the mode gate")
	}
}

func TestQuizAnswerOverwriteAndFreeze(t *testing.T) {
	engine, _ := newQuizFixture(testQuestions(5, domain.UnitFreud))
	state, err := engine.Start(nil, 5)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	target := state.Questions[0].ID

	if err := engine.Answer(target, domain.OptionA); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if err := engine.Answer(target, domain.OptionB); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if got := engine.State().Answers[target]; got != domain.OptionB {
		t.Fatalf("expected overwrite to win, got %q", got)
	}

	if err := engine.Answer(999999, domain.OptionA); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("expected unknown question error, got %v", err)
	}

	if _, err := engine.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}
	// Answers are frozen after submission; a late answer is ignored.
	if err := engine.Answer(target, domain.OptionC); err != nil {
		t.Fatalf("post-submit answer should be a silent no-op, got %v", err)
	}
	if got := engine.State().Answers[target]; got != domain.OptionB {
		t.Fatalf("submitted answer mutated to %q", got)
	}
}

func TestQuizScoreMatchesExactAnswers(t *testing.T) {
	engine, _ := newQuizFixture(testQuestions(6, domain.UnitFreud))
	state, err := engine.Start(nil, 6)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	// Correct answer is OptionB for every sample question; answer 4 right, 1
	// wrong, leave 1 blank.
	for i, q := range state.Questions {
		switch {
		case i < 4:
			engine.Answer(q.ID, domain.OptionB)
		case i == 4:
			engine.Answer(q.ID, domain.OptionA)
		}
	}

	result, err := engine.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 4 || result.Total != 6 {
		t.Fatalf("expected 4/6, got %d/%d", result.Score, result.Total)
	}
	if result.Score < 0 || result.Score > result.Total {
		t.Fatalf("score out of range")
	}
}

func TestQuizCategoryBreakdownWeightsToOverall(t *testing.T) {
	// Two categories: Freud (psychodynamic) and Behaviorism (learning-cognition).
	seed := testQuestions(4, domain.UnitFreud)
	for i := 5; i <= 8; i++ {
		seed = append(seed, sampleQuestion(int64(i), domain.UnitBehaviorism, "Scenario", "Question?"))
	}
	engine, _ := newQuizFixture(seed)

	state, err := engine.Start(nil, 8)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	// Answer every Freud question right, every Behaviorism question wrong.
	for _, q := range state.Questions {
		if q.Unit == domain.UnitFreud {
			engine.Answer(q.ID, domain.OptionB)
		} else {
			engine.Answer(q.ID, domain.OptionC)
		}
	}

	result, err := engine.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	psycho := result.ByCategory["psychodynamic"]
	learning := result.ByCategory["learning-cognition"]
	if psycho.Correct != 4 || psycho.Total != 4 || psycho.Percent != 100 {
		t.Fatalf("psychodynamic breakdown wrong: %+v", psycho)
	}
	if learning.Correct != 0 || learning.Total != 4 || learning.Percent != 0 {
		t.Fatalf("learning breakdown wrong: %+v", learning)
	}

	// Weighted by category size, the per-category percentages reproduce the
	// overall percentage within rounding.
	weighted := 0.0
	for _, score := range result.ByCategory {
		weighted += float64(score.Percent) * float64(score.Total)
	}
	weighted /= float64(result.Total)
	if math.Abs(weighted-float64(result.Percent)) > 1 {
		t.Fatalf("weighted category percent %f diverges from overall %d", weighted, result.Percent)
	}
}

func TestQuizResetReturnsToIdle(t *testing.T) {
	engine, gate := newQuizFixture(testQuestions(5, domain.UnitFreud))
	if _, err := engine.Start(nil, 5); err != nil {
		t.Fatalf("start: %v", err)
	}
	if gate.Current() != app.ModeQuiz {
		t.Fatalf("expected quiz mode while active")
	}

	// A second start while active must fail.
	if _, err := engine.Start(nil, 5); !errors.Is(err, domain.ErrQuizActive) {
		t.Fatalf("expected quiz-active error, got %v", err)
	}

	engine.Reset()
	if gate.Current() != app.ModeIdle {
		t.Fatalf("reset must release the gate")
	}
	if engine.State().Active {
		t.Fatalf("reset must discard the session")
	}
	if _, err := engine.Submit(); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("submit after reset must fail, got %v", err)
	}
}
