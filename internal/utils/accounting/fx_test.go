package accounting_test

import (
	"testing"

	"github.com/aurumworks/bullion_ledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeFX(t *testing.T) {
	tests := []struct {
		name       string
		amount     string
		fxRate     string
		fxBaseRate string
		isPayment  bool
		wantGain   string
		wantLoss   string
	}{
		{
			name:   "receipt below market rate is a gain",
			amount: "100", fxRate: "3.67", fxBaseRate: "3.70",
			isPayment: false,
			wantGain:  "3", wantLoss: "0",
		},
		{
			name:   "receipt above market rate is a loss",
			amount: "100", fxRate: "3.75", fxBaseRate: "3.70",
			isPayment: false,
			wantGain:  "0", wantLoss: "5",
		},
		{
			name:   "payment below market rate is a gain",
			amount: "200", fxRate: "3.60", fxBaseRate: "3.55",
			isPayment: true,
			wantGain:  "10", wantLoss: "0",
		},
		{
			name:   "payment above market rate is a loss",
			amount: "200", fxRate: "3.50", fxBaseRate: "3.55",
			isPayment: true,
			wantGain:  "0", wantLoss: "10",
		},
		{
			name:   "equal rates produce neither",
			amount: "500", fxRate: "3.6725", fxBaseRate: "3.6725",
			isPayment: false,
			wantGain:  "0", wantLoss: "0",
		},
		{
			name:   "zero amount produces neither",
			amount: "0", fxRate: "3.67", fxBaseRate: "3.70",
			isPayment: true,
			wantGain:  "0", wantLoss: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gain, loss := accounting.ComputeFX(dec(tt.amount), dec(tt.fxRate), dec(tt.fxBaseRate), tt.isPayment)
			assert.True(t, dec(tt.wantGain).Equal(gain), "gain: want %s got %s", tt.wantGain, gain)
			assert.True(t, dec(tt.wantLoss).Equal(loss), "loss: want %s got %s", tt.wantLoss, loss)
			// Never both non-zero.
			assert.True(t, gain.IsZero() || loss.IsZero())
		})
	}
}

func TestPureWeight(t *testing.T) {
	got := accounting.PureWeight(dec("100"), dec("0.916"))
	assert.True(t, dec("91.6").Equal(got), "got %s", got)
}
