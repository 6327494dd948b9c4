package session

import (
	"testing"

	"github.com/sandevgo/pitchcoach/internal/core"
	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestClassifyClosure(t *testing.T) {
	tests := []struct {
		name        string
		price       *float64
		counterpart *float64
		want        core.ClosingReason
	}{
		{name: "below threshold", price: ptr(55000), counterpart: nil, want: core.ClosingBelowThreshold},
		{name: "below counterpart wins over threshold", price: ptr(45000), counterpart: ptr(50000), want: core.ClosingBelowCounterpartOffer},
		{name: "no price is normal", price: nil, counterpart: ptr(50000), want: core.ClosingNormal},
		{name: "above threshold and counterpart", price: ptr(80000), counterpart: ptr(70000), want: core.ClosingNormal},
		{name: "equal to counterpart is not below", price: ptr(70000), counterpart: ptr(70000), want: core.ClosingNormal},
		{name: "equal to threshold is not below", price: ptr(60000), counterpart: nil, want: core.ClosingNormal},
		{name: "counterpart without number", price: ptr(59000), counterpart: nil, want: core.ClosingBelowThreshold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyClosure(tt.price, tt.counterpart, DefaultDealThreshold))
		})
	}
}
