package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one card or UPI debit event extracted from a
// bank-notification email. Time is the transaction time carried in the mail
// body, not the time the mail was received, and has no timezone (it is local
// to the issuing bank).
type Transaction struct {
	Cost   decimal.Decimal
	Vendor string
	CardNo string // masked suffix of the card/account; opaque display identifier
	Time   time.Time
}

// Valid reports whether all four fields were extracted. A transaction with an
// unset card number never enters aggregation.
func (t Transaction) Valid() bool {
	return t.CardNo != "" && t.Vendor != "" && !t.Time.IsZero() && t.Cost.IsPositive()
}

// PeriodName returns the note title for the reporting period starting at t,
// e.g. "May-2023".
func PeriodName(t time.Time) string {
	return t.Format("January-2006")
}

// PeriodStart returns the default reporting cutoff: midnight on the first day
// of now's month.
func PeriodStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
