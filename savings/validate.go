/*
validate.go - Single-pass transaction triage

PURPOSE:
  Splits a transaction list into valid and invalid, applying rules in a
  fixed order with first-match-wins semantics:

    1. amount < 0                      -> NEGATIVE_AMOUNT
    2. date already seen in this call  -> DUPLICATE_TRANSACTION
    3. amount > wage (opt-in)          -> WAGE_EXCEEDED

  Rule 2's key is the date instant alone, not date+amount: the domain rule
  is that genuine timestamps are globally unique, so two amounts on the same
  instant are indistinguishable for validation purposes. A transaction
  rejected at rule 1 is NOT added to the seen set, so a later negative
  sharing its date is rejected as negative again, not as a duplicate.

  The wage rule only runs when checkWage is true and a wage is provided
  (the filter pipeline passes a wage but disables the check).

  No state survives between calls; the seen set is local to one pass.

SEE ALSO:
  - pipeline.go: Where Validate sits in the two call graphs
*/
package savings

import "github.com/shopspring/decimal"

// Validate triages transactions in one pass. O(n) with a hash set keyed on
// the date instant (UnixMicro). Valid transactions keep their input order.
func Validate(txns []*Transaction, wage *decimal.Decimal, checkWage bool) ([]*Transaction, []InvalidTransaction) {
	valid := make([]*Transaction, 0, len(txns))
	var invalid []InvalidTransaction
	seen := make(map[int64]struct{}, len(txns))

	for _, txn := range txns {
		if txn.Amount.IsNegative() {
			invalid = append(invalid, InvalidTransaction{Transaction: txn, Reason: ReasonNegativeAmount})
			continue
		}

		key := txn.Date.UnixMicro()
		if _, dup := seen[key]; dup {
			invalid = append(invalid, InvalidTransaction{Transaction: txn, Reason: ReasonDuplicate})
			continue
		}
		seen[key] = struct{}{}

		if checkWage && wage != nil && txn.Amount.GreaterThan(*wage) {
			invalid = append(invalid, InvalidTransaction{Transaction: txn, Reason: ReasonWageExceeded})
			continue
		}

		valid = append(valid, txn)
	}

	return valid, invalid
}
