package app_test

import (
	"context"
	"testing"
	"time"

	"coursebank-service/internal/app"
	"coursebank-service/internal/domain"
	"coursebank-service/internal/infra/memory"
)

func TestNotesSurviveRestart(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()

	notes := app.NewNotesService(ctx, store)
	notes.Set(ctx, 42, "displacement vs projection, re-read lecture 4")

	// Restart: a fresh service over the same durable store.
	restarted := app.NewNotesService(ctx, store)
	text, ok := restarted.Get(42)
	if !ok || text != "displacement vs projection, re-read lecture 4" {
		t.Fatalf("expected note to survive restart, got %q ok=%v", text, ok)
	}
}

func TestNotesOutliveDeletedQuestions(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	notifier := app.NewNotifier(time.Minute)
	bank := app.NewBankService(testQuestions(1, domain.UnitFreud), notifier)
	notes := app.NewNotesService(ctx, store)

	id := bank.List()[0].ID
	notes.Set(ctx, id, "keep me")

	if err := bank.StageDelete(id); err != nil {
		t.Fatalf("stage: %v", err)
	}
	if _, err := bank.ConfirmDelete(); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	// Deleting the question does not cascade into the notes store.
	if text, ok := notes.Get(id); !ok || text != "keep me" {
		t.Fatalf("note must outlive its question, got %q ok=%v", text, ok)
	}
}

func TestNotesTolerateCorruptBlob(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	if err := store.Save(ctx, app.SlotNotes, []byte("{not json")); err != nil {
		t.Fatalf("save: %v", err)
	}

	notes := app.NewNotesService(ctx, store)
	if len(notes.All()) != 0 {
		t.Fatalf("corrupt blob must degrade to empty")
	}

	// The service keeps working after the fallback.
	notes.Set(ctx, 7, "fresh start")
	if text, ok := notes.Get(7); !ok || text != "fresh start" {
		t.Fatalf("expected writable store after fallback")
	}
}

func TestClearingNoteRemovesIt(t *testing.T) {
	ctx := context.Background()
	notes := app.NewNotesService(ctx, memory.NewKVStore())
	notes.Set(ctx, 3, "temp")
	notes.Set(ctx, 3, "")
	if _, ok := notes.Get(3); ok {
		t.Fatalf("empty text must clear the note")
	}
}

func TestLeaderboardSortedAndCapped(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	leaderboard := app.NewLeaderboardService(ctx, store)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 14; i++ {
		leaderboard.Append(ctx, domain.LeaderboardEntry{
			Username:       "player",
			Score:          (i * 37) % 1000,
			Date:           base.Add(time.Duration(i) * time.Minute),
			CorrectAnswers: i % 10,
			TotalQuestions: 10,
		})
	}

	top := leaderboard.Top()
	if len(top) != app.LeaderboardCapacity {
		t.Fatalf("expected capacity %d, got %d", app.LeaderboardCapacity, len(top))
	}
	for i := 1; i < len(top); i++ {
		if top[i].Score > top[i-1].Score {
			t.Fatalf("leaderboard not sorted descending at %d", i)
		}
	}

	// Restart: ranked history is durable.
	restarted := app.NewLeaderboardService(ctx, store)
	if len(restarted.Top()) != app.LeaderboardCapacity {
		t.Fatalf("leaderboard must survive restart")
	}
	if restarted.Top()[0].Score != top[0].Score {
		t.Fatalf("restart changed the ranking")
	}
}

func TestLeaderboardDropsLowestExcess(t *testing.T) {
	ctx := context.Background()
	leaderboard := app.NewLeaderboardService(ctx, memory.NewKVStore())

	for score := 100; score <= 1100; score += 100 {
		leaderboard.Append(ctx, domain.LeaderboardEntry{
			Username: "p", Score: score, Date: time.Now(), TotalQuestions: 10,
		})
	}

	top := leaderboard.Top()
	if len(top) != app.LeaderboardCapacity {
		t.Fatalf("expected %d entries, got %d", app.LeaderboardCapacity, len(top))
	}
	if top[len(top)-1].Score != 200 {
		t.Fatalf("expected the lowest entry (100) dropped, tail=%d", top[len(top)-1].Score)
	}
}
