package ledger

import (
	"math"
	"strconv"
	"strings"
)

// Currency is held as int64 cents everywhere; these helpers convert between
// cents and the two-decimal display form typed on or shown by the keypad.

// FormatAmount renders cents as a dollar string, e.g. 150000 -> "1500.00" and
// -3000 -> "-30.00".
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return sign + strconv.FormatInt(cents/100, 10) + "." + pad2(cents%100)
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

// ParseAmount converts keypad input like "20", "20.5", or "20.50" into cents.
// It returns ErrInvalidAmount for anything non-numeric, non-positive, or finer
// than a cent; nothing is ever rounded.
func ParseAmount(input string) (int64, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	whole, frac, hasDot := strings.Cut(s, ".")
	if hasDot && len(frac) > 2 {
		return 0, ErrInvalidAmount
	}
	if whole == "" {
		whole = "0"
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || w < 0 {
		return 0, ErrInvalidAmount
	}
	var f int64
	if frac != "" {
		f, err = strconv.ParseInt(frac, 10, 64)
		if err != nil || f < 0 {
			return 0, ErrInvalidAmount
		}
		// a single fractional digit is tenths, not cents
		if len(frac) == 1 {
			f *= 10
		}
	}
	// Guard the multiply: without it an 18-digit entry wraps int64 and comes
	// back as a small positive amount.
	if w > (math.MaxInt64-99)/100 {
		return 0, ErrInvalidAmount
	}
	cents := w*100 + f
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}
