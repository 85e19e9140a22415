package app

import (
	"fmt"
	"math/rand/v2"
	"time"
)

const (
	bookCodePrefix = "9785"
	bookCodeLen    = 13

	minPublicationYear = 1950
	maxPublicationYear = 2023
	minPages           = 100
	maxPages           = 800
	maxGenresPerBook   = 3
	maxCopiesPerBook   = 3
	maxLoanDays        = 30
	// dueBackChance is the probability a new copy gets a due-back date.
	dueBackChance = 0.3
)

// between returns a uniform integer in [lo, hi].
func between(r *rand.Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}

// bookCode builds a 13-character ISBN-shaped code. It carries no valid
// checksum; collisions are left to the unique index.
func bookCode(r *rand.Rand) string {
	code := fmt.Sprintf("%s%d%d%d",
		bookCodePrefix,
		between(r, 10000, 99999),
		between(r, 100, 999),
		between(r, 0, 9),
	)
	if len(code) > bookCodeLen {
		code = code[:bookCodeLen]
	}
	return code
}

// inventoryNumber derives a copy's number from its book, the clock's
// millisecond reading and the copy's position. Copies added in one pass
// never share a number; copies left by an earlier run still can.
func inventoryNumber(bookID int64, now time.Time, copyNo int) string {
	return fmt.Sprintf("BK-%04d-%04d", bookID, (now.UnixMilli()+int64(copyNo))%10000)
}

func cardNumber(r *rand.Rand) string {
	return fmt.Sprintf("RD-%d", between(r, 1000, 9999))
}
