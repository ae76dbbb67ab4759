package extract

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// HdfcCreditCard matches HDFC Bank credit card swipe alerts:
//
//	Thank you for using your HDFC Bank Credit Card ending 0578 for
//	Rs 649.00 at PAYTM MALL on 04-05-2023 20:41:07.
type HdfcCreditCard struct{}

var (
	hdfcVendorRe = regexp.MustCompile(`at (\w+\s?\w+) on`)
	hdfcCostRe   = regexp.MustCompile(`Rs ([\d.]+) at`)
	hdfcCardRe   = regexp.MustCompile(`ending\s+(\d{4})`)
	hdfcTimeRe   = regexp.MustCompile(`on (\d{2}-\d{2}-\d{4} \d{2}:\d{2}:\d{2})`)
)

const hdfcTimeLayout = "02-01-2006 15:04:05"

func (HdfcCreditCard) Name() string { return "hdfc-credit-card" }

func (f HdfcCreditCard) Vendor(body string) (string, error) {
	v, ok := group(hdfcVendorRe, body)
	if !ok {
		return "", errMissing(f.Name(), "vendor")
	}
	return v, nil
}

func (f HdfcCreditCard) Cost(body string) (decimal.Decimal, error) {
	raw, ok := group(hdfcCostRe, body)
	if !ok {
		return decimal.Decimal{}, errMissing(f.Name(), "cost")
	}
	return parseCost(f.Name(), raw)
}

func (f HdfcCreditCard) CardNo(body string) (string, error) {
	c, ok := group(hdfcCardRe, body)
	if !ok {
		return "", errMissing(f.Name(), "card number")
	}
	return c, nil
}

func (f HdfcCreditCard) Time(body string) (time.Time, error) {
	raw, ok := group(hdfcTimeRe, body)
	if !ok {
		return time.Time{}, errMissing(f.Name(), "time")
	}
	return parseTime(f.Name(), hdfcTimeLayout, raw)
}
