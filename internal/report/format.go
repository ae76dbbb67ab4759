package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/satinder147/expense-tracker/internal/domain"
)

// Format renders the aggregated transactions into the note body. The layout
// is a contract with the notes-service consumer:
//
//	- 2023-05-04
//	    * RS   649,  paytm mall(0578)
//
//	card - 0578,  total - 649
//	total 649
//
// Date groups come out ascending; within a group transactions keep arrival
// order. Amounts on transaction lines are whole rupees (paise dropped); card
// totals and the grand total stay decimal. Card totals appear in the order
// the cards are first seen while walking the groups.
func Format(txs []domain.Transaction) string {
	byDate := make(map[string][]domain.Transaction)
	var dates []string
	for _, tx := range txs {
		d := tx.Time.Format("2006-01-02")
		if _, ok := byDate[d]; !ok {
			dates = append(dates, d)
		}
		byDate[d] = append(byDate[d], tx)
	}
	sort.Strings(dates)

	var b strings.Builder
	var cards []string
	cardTotals := make(map[string]decimal.Decimal)
	total := decimal.Zero

	for _, d := range dates {
		b.WriteString("- " + d + "\n")
		for _, tx := range byDate[d] {
			rupees := strconv.FormatInt(tx.Cost.IntPart(), 10)
			fmt.Fprintf(&b, "    * RS %5s,  %5s(%s)\n", rupees, strings.ToLower(tx.Vendor), tx.CardNo)

			if _, ok := cardTotals[tx.CardNo]; !ok {
				cards = append(cards, tx.CardNo)
			}
			cardTotals[tx.CardNo] = cardTotals[tx.CardNo].Add(tx.Cost)
			total = total.Add(tx.Cost)
		}
		b.WriteString("\n")
	}

	for _, card := range cards {
		fmt.Fprintf(&b, "card - %s,  total - %s\n", card, cardTotals[card].String())
	}
	fmt.Fprintf(&b, "total %s \n", total.String())
	return b.String()
}
