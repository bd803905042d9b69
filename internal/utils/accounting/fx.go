package accounting

import "github.com/shopspring/decimal"

// ComputeFX realizes the exchange gain or loss of one cash line at posting
// time, from the rate actually used against the reference rate. At most one
// of gain/loss is non-zero. Callers must use the rates captured on the
// line, not rates re-derived later.
func ComputeFX(amount, fxRate, fxBaseRate decimal.Decimal, isPayment bool) (gain, loss decimal.Decimal) {
	givenValue := amount.Mul(fxRate)
	marketValue := amount.Mul(fxBaseRate)
	diff := marketValue.Sub(givenValue)

	gain = decimal.Zero
	loss = decimal.Zero
	switch {
	case diff.IsZero():
	case isPayment:
		// Paying above market is a loss, below market a gain.
		if diff.IsPositive() {
			loss = diff
		} else {
			gain = diff.Abs()
		}
	default:
		// Receiving above market is a gain, below market a loss.
		if diff.IsPositive() {
			gain = diff
		} else {
			loss = diff.Abs()
		}
	}
	return gain, loss
}

// PureWeight derives the fine-metal weight of a stock line.
func PureWeight(grossWeight, purity decimal.Decimal) decimal.Decimal {
	return grossWeight.Mul(purity)
}
