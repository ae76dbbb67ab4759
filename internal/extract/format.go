package extract

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/satinder147/expense-tracker/internal/domain"
)

// ExtractionError reports that a template's expected marker was absent from a
// mail body. It is the expected non-match signal: the registry abandons the
// template and moves on to the next one.
type ExtractionError struct {
	Template string
	Field    string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s: no %s marker in mail body", e.Template, e.Field)
}

func errMissing(template, field string) error {
	return &ExtractionError{Template: template, Field: field}
}

// MailFormat extracts the four transaction fields from one bank's
// notification format. Each extractor is pure and independent; a missing
// marker fails with *ExtractionError.
type MailFormat interface {
	Name() string
	Vendor(body string) (string, error)
	Cost(body string) (decimal.Decimal, error)
	CardNo(body string) (string, error)
	Time(body string) (time.Time, error)
}

// Extract runs all four field extractors against body. The record is
// all-or-nothing: any single field failure abandons the whole template.
func Extract(f MailFormat, body string) (domain.Transaction, error) {
	cost, err := f.Cost(body)
	if err != nil {
		return domain.Transaction{}, err
	}
	vendor, err := f.Vendor(body)
	if err != nil {
		return domain.Transaction{}, err
	}
	card, err := f.CardNo(body)
	if err != nil {
		return domain.Transaction{}, err
	}
	ts, err := f.Time(body)
	if err != nil {
		return domain.Transaction{}, err
	}
	return domain.Transaction{Cost: cost, Vendor: vendor, CardNo: card, Time: ts}, nil
}

// group returns the first capture group of re in body.
func group(re *regexp.Regexp, body string) (string, bool) {
	m := re.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func parseCost(template, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s: parse cost %q: %w", template, raw, err)
	}
	return d, nil
}

func parseTime(template, layout, raw string) (time.Time, error) {
	t, err := time.Parse(layout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: parse time %q: %w", template, raw, err)
	}
	return t, nil
}
