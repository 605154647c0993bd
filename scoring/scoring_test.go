package scoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_ZeroBid(t *testing.T) {
	for round := 1; round <= 10; round++ {
		assert.Equal(t, 10*round, Score(0, 0, round, 0, 0), "round %d made", round)
		for tricks := 1; tricks <= round; tricks++ {
			assert.Equal(t, -10*round, Score(0, tricks, round, 0, 0), "round %d tricks %d", round, tricks)
		}
	}
}

func TestScore_ExactBid(t *testing.T) {
	for bid := 1; bid <= 10; bid++ {
		assert.Equal(t, 20*bid, Score(bid, bid, 10, 0, 0))
	}
}

func TestScore_MissedBid(t *testing.T) {
	for bid := 1; bid <= 10; bid++ {
		for tricks := 0; tricks <= 10; tricks++ {
			if tricks == bid {
				continue
			}
			diff := bid - tricks
			if diff < 0 {
				diff = -diff
			}
			assert.Equal(t, -10*diff, Score(bid, tricks, 10, 0, 0), "bid %d tricks %d", bid, tricks)
		}
	}
}

func TestScore_BonusAndPenalty(t *testing.T) {
	tests := []struct {
		name    string
		bid     int
		tricks  int
		round   int
		bonus   int
		penalty int
		want    int
	}{
		{name: "positive bid made keeps bonus", bid: 3, tricks: 3, round: 5, bonus: 15, want: 75},
		{name: "positive bid missed drops bonus", bid: 3, tricks: 2, round: 5, bonus: 15, want: -10},
		{name: "positive bid made pays penalty", bid: 3, tricks: 3, round: 5, penalty: 5, want: 55},
		{name: "positive bid missed pays penalty", bid: 3, tricks: 2, round: 5, penalty: 5, want: -15},
		{name: "positive bid made with bonus and penalty", bid: 2, tricks: 2, round: 4, bonus: 30, penalty: 10, want: 60},
		{name: "positive bid missed with bonus and penalty", bid: 2, tricks: 4, round: 4, bonus: 30, penalty: 10, want: -30},
		{name: "zero bid made ignores bonus", bid: 0, tricks: 0, round: 7, bonus: 20, want: 70},
		{name: "zero bid made pays penalty", bid: 0, tricks: 0, round: 7, bonus: 20, penalty: 5, want: 65},
		{name: "zero bid missed ignores bonus", bid: 0, tricks: 2, round: 7, bonus: 20, want: -70},
		{name: "zero bid missed pays penalty", bid: 0, tricks: 2, round: 7, bonus: 20, penalty: 5, want: -75},
		{name: "negative bonus applied as given", bid: 1, tricks: 1, round: 1, bonus: -5, want: 15},
		{name: "negative penalty applied as given", bid: 1, tricks: 0, round: 1, penalty: -5, want: -5},
		{name: "original round 5 bonus case", bid: 1, tricks: 1, round: 5, bonus: 20, want: 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.bid, tt.tricks, tt.round, tt.bonus, tt.penalty))
		})
	}
}

func TestBase(t *testing.T) {
	assert.Equal(t, 50, Base(0, 0, 5))
	assert.Equal(t, -50, Base(0, 1, 5))
	assert.Equal(t, 40, Base(2, 2, 5))
	assert.Equal(t, -20, Base(2, 4, 5))
}

func ExampleScore() {
	fmt.Println(Score(3, 3, 5, 15, 0))
	fmt.Println(Score(3, 2, 5, 15, 5))
	// Output:
	// 75
	// -15
}
