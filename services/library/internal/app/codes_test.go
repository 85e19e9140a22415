package app

import (
	"math/rand/v2"
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestBookCodeShape(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	digits := regexp.MustCompile(`^[0-9]{13}$`)
	for i := 0; i < 1000; i++ {
		code := bookCode(r)
		if len(code) != 13 || !digits.MatchString(code) {
			t.Fatalf("unexpected code %q", code)
		}
		if !strings.HasPrefix(code, "9785") {
			t.Fatalf("missing prefix: %q", code)
		}
	}
}

func TestInventoryNumber(t *testing.T) {
	now := time.UnixMilli(1700000001234)
	if got := inventoryNumber(7, now, 0); got != "BK-0007-1234" {
		t.Fatalf("inventory number = %q", got)
	}
	if got := inventoryNumber(12345, time.UnixMilli(1700000000005), 0); got != "BK-12345-0005" {
		t.Fatalf("inventory number = %q", got)
	}
	if got := inventoryNumber(7, time.UnixMilli(1700000009999), 1); got != "BK-0007-0000" {
		t.Fatalf("wrapped inventory number = %q", got)
	}
}

func TestInventoryNumberDistinctWithinMillisecond(t *testing.T) {
	now := time.UnixMilli(1700000001234)
	seen := map[string]bool{}
	for i := 0; i < maxCopiesPerBook; i++ {
		n := inventoryNumber(3, now, i)
		if seen[n] {
			t.Fatalf("copy %d reused %q", i, n)
		}
		seen[n] = true
	}
}

func TestCardNumberRange(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	card := regexp.MustCompile(`^RD-[1-9][0-9]{3}$`)
	for i := 0; i < 500; i++ {
		if got := cardNumber(r); !card.MatchString(got) {
			t.Fatalf("unexpected card number %q", got)
		}
	}
}

func TestBetweenIsInclusive(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		v := between(r, 1, 3)
		if v < 1 || v > 3 {
			t.Fatalf("value %d out of range", v)
		}
		seen[v] = true
	}
	if len(seen) != 3 {
		t.Fatalf("expected every value in [1,3], saw %v", seen)
	}
}
