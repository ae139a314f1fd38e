package store

import (
	"errors"
	"strconv"
	"strings"
)

// Ranks are lowercase base36 strings ordered lexicographically. A new rank
// can always be found between two ranks unless one is the other plus a run
// of '0' digits; rebalance fixes that case.

const rankDigits = "0123456789abcdefghijklmnopqrstuvwxyz"

var errNoRankSpace = errors.New("no space between ranks")

func rankValue(c byte) (int, bool) {
	i := strings.IndexByte(rankDigits, c)
	return i, i >= 0
}

// rankBetween returns a rank strictly between lo and hi. Either may be empty
// for an open end.
func rankBetween(lo, hi string) (string, error) {
	if lo != "" && hi != "" && lo >= hi {
		return "", errors.New("rank bounds out of order")
	}
	out := make([]byte, 0, len(lo)+1)
	for i := 0; ; i++ {
		a, b := 0, len(rankDigits)-1
		if i < len(lo) {
			v, ok := rankValue(lo[i])
			if !ok {
				return "", errors.New("invalid rank " + strconv.Quote(lo))
			}
			a = v
		}
		if i < len(hi) {
			v, ok := rankValue(hi[i])
			if !ok {
				return "", errors.New("invalid rank " + strconv.Quote(hi))
			}
			b = v
		} else if hi != "" && i >= len(hi) {
			// hi ran out while equal to lo's prefix: nothing sorts between.
			return "", errNoRankSpace
		}
		switch {
		case a == b:
			out = append(out, rankDigits[a])
		case b-a > 1:
			out = append(out, rankDigits[a+(b-a)/2])
			return string(out), nil
		default:
			// Adjacent digits: anything extending lo still sorts below hi.
			r := lo + "0"
			if lo == "" || (hi != "" && r >= hi) {
				r = string(append(out, rankDigits[a], rankDigits[len(rankDigits)/2]))
			}
			if (lo != "" && r <= lo) || (hi != "" && r >= hi) {
				return "", errNoRankSpace
			}
			return r, nil
		}
		if i > 256 {
			return "", errNoRankSpace
		}
	}
}

// spreadRanks returns n evenly spaced ranks of equal width.
func spreadRanks(n int) []string {
	const width = 6
	space := int64(1)
	for range width {
		space *= int64(len(rankDigits))
	}
	step := space / int64(n+1)
	out := make([]string, n)
	for i := range out {
		s := strconv.FormatInt(step*int64(i+1), 36)
		out[i] = strings.Repeat("0", width-len(s)) + s
	}
	return out
}
