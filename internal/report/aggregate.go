package report

import (
	"strings"
	"time"

	"github.com/satinder147/expense-tracker/internal/domain"
)

// vendorDisplayLen keeps long VPA and merchant strings from wrapping report
// lines; the last characters carry the distinguishing part of a VPA.
const vendorDisplayLen = 20

// Aggregate applies the run's exclusion policy to raw extraction results and
// returns the transactions that count as spend for the period, in arrival
// order:
//   - entries with an unset card number are dropped,
//   - entries before the cutoff are dropped (the mail for a late-period
//     transaction can arrive after the fetch window; the transaction's own
//     time decides membership),
//   - entries whose vendor contains the self-transfer identifier are
//     internal transfers, not spend,
//   - vendors are truncated to their last vendorDisplayLen characters.
func Aggregate(txs []domain.Transaction, cutoff time.Time, selfTransferID string) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.CardNo == "" {
			continue
		}
		if tx.Time.Before(cutoff) {
			continue
		}
		if selfTransferID != "" && strings.Contains(tx.Vendor, selfTransferID) {
			continue
		}
		tx.Vendor = lastN(tx.Vendor, vendorDisplayLen)
		out = append(out, tx)
	}
	return out
}

// lastN returns the final n characters of s.
func lastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
