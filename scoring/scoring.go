// Package scoring implements the Skull King round scoring table.
package scoring

const (
	zeroBidRate  = 10
	exactBidRate = 20
	missRate     = 10
)

// BidMade reports whether a player took exactly the number of tricks they bid.
func BidMade(bid, tricksWon int) bool {
	return bid == tricksWon
}

// Base returns the score of a round before bonus and penalty points.
//
// A zero bid is worth 10 points per card dealt when no trick is taken and
// loses the same amount otherwise. A positive bid is worth 20 points per
// trick when made exactly and loses 10 points per trick it is off by.
func Base(bid, tricksWon, roundNum int) int {
	if bid == 0 {
		if tricksWon == 0 {
			return zeroBidRate * roundNum
		}
		return -zeroBidRate * roundNum
	}
	if tricksWon == bid {
		return exactBidRate * bid
	}
	return -missRate * abs(bid-tricksWon)
}

// Score returns the round score for a player. Bonus points only count when a
// positive bid is made; penalty points are always subtracted. The result is
// not clamped.
func Score(bid, tricksWon, roundNum, bonus, penalty int) int {
	score := Base(bid, tricksWon, roundNum)
	if BidMade(bid, tricksWon) && bid > 0 {
		score += bonus
	}
	return score - penalty
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
