package extract

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// HdfcUpiDebit matches HDFC Bank UPI debit alerts:
//
//	Rs.210.00 has been debited from account **1811 to
//	VPA q674757157@ybl on 05-05-23.
//
// The alert carries a date but no time of day, so the transaction time is
// midnight.
type HdfcUpiDebit struct{}

var (
	upiVendorRe = regexp.MustCompile(`VPA\s+(\S+)`)
	upiCostRe   = regexp.MustCompile(`Rs\.([\d.]+)\shas been debited`)
	upiCardRe   = regexp.MustCompile(`\*\*(\d+)`)
	upiTimeRe   = regexp.MustCompile(`(\d{2}-\d{2}-\d{2})`)
)

const upiTimeLayout = "02-01-06"

func (HdfcUpiDebit) Name() string { return "hdfc-upi-debit" }

func (f HdfcUpiDebit) Vendor(body string) (string, error) {
	v, ok := group(upiVendorRe, body)
	if !ok {
		return "", errMissing(f.Name(), "vendor")
	}
	return v, nil
}

func (f HdfcUpiDebit) Cost(body string) (decimal.Decimal, error) {
	raw, ok := group(upiCostRe, body)
	if !ok {
		return decimal.Decimal{}, errMissing(f.Name(), "cost")
	}
	return parseCost(f.Name(), raw)
}

func (f HdfcUpiDebit) CardNo(body string) (string, error) {
	c, ok := group(upiCardRe, body)
	if !ok {
		return "", errMissing(f.Name(), "card number")
	}
	return c, nil
}

func (f HdfcUpiDebit) Time(body string) (time.Time, error) {
	raw, ok := group(upiTimeRe, body)
	if !ok {
		return time.Time{}, errMissing(f.Name(), "time")
	}
	return parseTime(f.Name(), upiTimeLayout, raw)
}
