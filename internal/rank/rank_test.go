package rank

import (
	"math"
	"testing"

	"mathdefenders/internal/domain/user"
)

func TestCalculateRank(t *testing.T) {
	cases := []struct {
		name string
		m    user.Membership
		want string
	}{
		{"none", user.Membership{}, ""},
		{"developer", user.Membership{IsDeveloper: true}, "Developer"},
		{"donator", user.Membership{IsDonator: true}, "Donator"},
		{"moderator beats tester", user.Membership{IsModerator: true, IsTester: true}, "Moderator"},
		{"developer beats everything", user.Membership{
			IsDeveloper: true, IsAdministrator: true, IsModerator: true,
			IsContributor: true, IsTester: true, IsDonator: true,
		}, "Developer"},
		{"administrator beats moderator", user.Membership{IsAdministrator: true, IsModerator: true}, "Administrator"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := CalculateRank(c.m); got != c.want {
				t.Errorf("CalculateRank() = %q, want %q", got, c.want)
			}
			// pure: calling again must not change the answer
			if got := CalculateRank(c.m); got != c.want {
				t.Errorf("CalculateRank() second call = %q, want %q", got, c.want)
			}
		})
	}
}

func TestRankColor(t *testing.T) {
	if RankColor("Developer") != "#ff0000" {
		t.Error("RankColor(Developer) mismatch")
	}
	if RankColor("") != "#000000" {
		t.Error("RankColor(empty) should be neutral black")
	}
	if RankColor("No Such Rank") != "#000000" {
		t.Error("RankColor(unknown) should be neutral black")
	}
}

func TestLevelZeroXP(t *testing.T) {
	if Level(0) != 0 {
		t.Errorf("Level(0) = %d, want 0", Level(0))
	}
	if Level(499) != 0 {
		t.Errorf("Level(499) = %d, want 0 (first threshold is 500)", Level(499))
	}
	if Level(500) != 1 {
		t.Errorf("Level(500) = %d, want 1", Level(500))
	}
}

// Summing the consumed thresholds plus the fractional remainder must
// reconstruct the original XP value.
func TestLevelProgressRoundTrip(t *testing.T) {
	for _, xp := range []float64{0, 123, 500, 4999, 12345.6, 250000} {
		level := Level(xp)
		progress := ProgressToNextLevel(xp)

		sum := 0.0
		for l := 0; l < level; l++ {
			sum += threshold(l)
		}
		sum += progress * threshold(level)

		if math.Abs(sum-xp) > 1e-6 {
			t.Errorf("round trip for xp=%v: got %v (level=%d progress=%v)", xp, sum, level, progress)
		}
		if progress < 0 || progress >= 1 {
			t.Errorf("progress for xp=%v out of range: %v", xp, progress)
		}
	}
}
