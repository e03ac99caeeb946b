/*
round.go - Ceiling and remanent enrichment

PURPOSE:
  Converts raw expenses into pipeline transactions. For each amount:

    ceiling  = smallest multiple of 100 >= amount
    remanent = ceiling - amount

  The same rule applies to negative amounts with no special case
  (amount -10 yields ceiling 0, remanent 10) and to exact multiples of 100
  (remanent 0). No validation happens here; negatives pass through and are
  triaged later by validate.go.

SEE ALSO:
  - validate.go: Where negative amounts are rejected
*/
package savings

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// RoundUp returns the smallest multiple of 100 greater than or equal to amount.
func RoundUp(amount decimal.Decimal) decimal.Decimal {
	return amount.Div(hundred).Ceil().Mul(hundred)
}

// Enrich converts expenses into transactions with ceiling and remanent set.
// Input order and dates are preserved. O(n), single allocation per element.
func Enrich(expenses []Expense) []*Transaction {
	txns := make([]*Transaction, len(expenses))
	for i, e := range expenses {
		ceiling := RoundUp(e.Amount)
		txns[i] = &Transaction{
			Date:     e.Date,
			Amount:   e.Amount,
			Ceiling:  ceiling,
			Remanent: ceiling.Sub(e.Amount),
		}
	}
	return txns
}
