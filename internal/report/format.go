package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Formatter applies the shared display rules for one portfolio: every
// section formats amounts, percentages and dates through the same
// instance so rendering cannot drift between documents. Rounding happens
// in the metrics engine, never here.
type Formatter struct {
	// Currency is the ISO-style code prefixed to every amount, e.g. "QAR".
	Currency string
}

// Money formats a minor-unit integer amount as "<code> <grouped digits>".
func (f Formatter) Money(amount int64) string {
	return f.Currency + " " + groupThousands(amount)
}

// Percent formats a basis-points-of-percent integer as a percentage with
// exactly two decimal places, e.g. 3100 -> "31.00%".
func (f Formatter) Percent(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d%%", sign, v/100, v%100)
}

// Hours formats an hour count with two decimal places.
func (f Formatter) Hours(h decimal.Decimal) string {
	return h.StringFixed(2)
}

// Rate formats an hourly rate as "<code> <amount>/hr".
func (f Formatter) Rate(r decimal.Decimal) string {
	return fmt.Sprintf("%s %s/hr", f.Currency, r.StringFixed(2))
}

// Date formats an optional date, or "TBC" when absent.
func (f Formatter) Date(t *time.Time) string {
	if t == nil {
		return "TBC"
	}
	return t.Format("Jan 2, 2006")
}

// groupThousands renders an integer with comma separators every three
// digits, keeping the sign in front.
func groupThousands(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	digits := fmt.Sprintf("%d", v)
	if len(digits) <= 3 {
		return sign + digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return sign + b.String()
}
