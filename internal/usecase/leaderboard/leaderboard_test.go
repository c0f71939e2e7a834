package leaderboard

import (
	"context"
	"fmt"
	"testing"

	domain "mathdefenders/internal/domain/leaderboard"
	"mathdefenders/internal/domain/user"
)

type fakeScoreStorage struct {
	players map[domain.Mode][]domain.PlayerScore
}

func (f *fakeScoreStorage) PlayersWithBestScore(_ context.Context, mode domain.Mode) ([]domain.PlayerScore, error) {
	return f.players[mode], nil
}

func player(id string, score float64) domain.PlayerScore {
	return domain.PlayerScore{
		PlayerID:  id,
		Username:  "user-" + id,
		BestScore: user.BestScore{Score: score},
	}
}

func TestGetTopSortsDescendingWithPositionalRanks(t *testing.T) {
	storage := &fakeScoreStorage{players: map[domain.Mode][]domain.PlayerScore{
		domain.ModeEasy: {
			player("a", 100),
			player("b", 300),
			player("c", 200),
		},
	}}
	uc := NewUsecase(storage)

	entries, err := uc.GetTop(context.Background(), domain.ModeEasy)
	if err != nil {
		t.Fatalf("GetTop() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}

	wantOrder := []string{"b", "c", "a"}
	for i, want := range wantOrder {
		if entries[i].PlayerID != want {
			t.Errorf("position %d: got %s, want %s", i, entries[i].PlayerID, want)
		}
		if entries[i].Rank != i+1 {
			t.Errorf("position %d: rank = %d, want %d", i, entries[i].Rank, i+1)
		}
	}
}

func TestGetTopTruncatesToTopN(t *testing.T) {
	var players []domain.PlayerScore
	for i := 0; i < TopN+50; i++ {
		players = append(players, player(fmt.Sprintf("p%d", i), float64(i)))
	}
	storage := &fakeScoreStorage{players: map[domain.Mode][]domain.PlayerScore{
		domain.ModeStandard: players,
	}}
	uc := NewUsecase(storage)

	entries, err := uc.GetTop(context.Background(), domain.ModeStandard)
	if err != nil {
		t.Fatalf("GetTop() error = %v", err)
	}
	if len(entries) != TopN {
		t.Fatalf("entries = %d, want %d", len(entries), TopN)
	}
	// dense 1..N, best score first
	if entries[0].Statistics.Score != float64(TopN+49) {
		t.Errorf("top score = %v, want %v", entries[0].Statistics.Score, float64(TopN+49))
	}
	if entries[len(entries)-1].Rank != TopN {
		t.Errorf("last rank = %d, want %d", entries[len(entries)-1].Rank, TopN)
	}
}

func TestGetTopKeepsDiscoveryOrderOnTies(t *testing.T) {
	storage := &fakeScoreStorage{players: map[domain.Mode][]domain.PlayerScore{
		domain.ModeEasy: {
			player("first", 500),
			player("second", 500),
		},
	}}
	uc := NewUsecase(storage)

	entries, err := uc.GetTop(context.Background(), domain.ModeEasy)
	if err != nil {
		t.Fatalf("GetTop() error = %v", err)
	}
	if entries[0].PlayerID != "first" || entries[1].PlayerID != "second" {
		t.Errorf("tie broke discovery order: %s then %s", entries[0].PlayerID, entries[1].PlayerID)
	}
}

func TestRankForUser(t *testing.T) {
	storage := &fakeScoreStorage{players: map[domain.Mode][]domain.PlayerScore{
		domain.ModeEasy: {
			player("a", 100),
			player("b", 300),
		},
	}}
	uc := NewUsecase(storage)
	ctx := context.Background()

	r, err := uc.RankForUser(ctx, domain.ModeEasy, "a")
	if err != nil {
		t.Fatalf("RankForUser() error = %v", err)
	}
	if r != 2 {
		t.Errorf("rank = %d, want 2", r)
	}

	r, err = uc.RankForUser(ctx, domain.ModeEasy, "unknown")
	if err != nil {
		t.Fatalf("RankForUser() error = %v", err)
	}
	if r != 0 {
		t.Errorf("rank for unlisted player = %d, want 0", r)
	}
}
