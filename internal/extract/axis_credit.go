package extract

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// AxisCreditCard matches Axis Bank credit card alerts:
//
//	Thank you for using your Axis Bank Credit Card no. XX9244 for
//	INR 120.50 at AMAZON PAY on 05-05-23 18:30:45 IST.
//
// The card marker is masked ("XX9244"); only the trailing digits are kept.
type AxisCreditCard struct{}

var (
	axisVendorRe = regexp.MustCompile(`at\s+(.*?)\s+on`)
	axisCostRe   = regexp.MustCompile(`INR\s+(\d+(?:\.\d+)?)`)
	axisCardRe   = regexp.MustCompile(`Card no\. (\w{2}\d{4})`)
	axisTimeRe   = regexp.MustCompile(`on (\d{2}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})`)
)

const axisTimeLayout = "02-01-06 15:04:05"

func (AxisCreditCard) Name() string { return "axis-credit-card" }

func (f AxisCreditCard) Vendor(body string) (string, error) {
	v, ok := group(axisVendorRe, body)
	if !ok {
		return "", errMissing(f.Name(), "vendor")
	}
	return v, nil
}

func (f AxisCreditCard) Cost(body string) (decimal.Decimal, error) {
	raw, ok := group(axisCostRe, body)
	if !ok {
		return decimal.Decimal{}, errMissing(f.Name(), "cost")
	}
	return parseCost(f.Name(), raw)
}

func (f AxisCreditCard) CardNo(body string) (string, error) {
	c, ok := group(axisCardRe, body)
	if !ok {
		return "", errMissing(f.Name(), "card number")
	}
	return trailingDigits(c), nil
}

func (f AxisCreditCard) Time(body string) (time.Time, error) {
	raw, ok := group(axisTimeRe, body)
	if !ok {
		return time.Time{}, errMissing(f.Name(), "time")
	}
	return parseTime(f.Name(), axisTimeLayout, raw)
}

// trailingDigits strips the masked prefix from a card marker, keeping the
// final run of digits ("XX9244" -> "9244").
func trailingDigits(s string) string {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	return s[i:]
}
