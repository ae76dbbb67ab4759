package extract

import "github.com/satinder147/expense-tracker/internal/domain"

// Registry tries each known mail format against a message body in a fixed
// priority order. Order is the tie-break when two templates could both
// partially match; in practice the all-or-nothing field check keeps them
// disjoint.
type Registry struct {
	formats []MailFormat
}

// NewRegistry returns the registry of supported bank formats.
func NewRegistry() *Registry {
	return &Registry{formats: []MailFormat{
		HdfcCreditCard{},
		HdfcUpiDebit{},
		AxisCreditCard{},
	}}
}

// Match returns the transaction extracted by the first format whose four
// fields all succeed. A body no format matches is an expected outcome, not an
// error: Match reports it with ok == false.
func (r *Registry) Match(body string) (domain.Transaction, bool) {
	for _, f := range r.formats {
		tx, err := Extract(f, body)
		if err == nil {
			return tx, true
		}
	}
	return domain.Transaction{}, false
}
