package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{"payment confirms pending order", OrderPendingPayment, OrderPaidPendingShipment, true},
		{"pending order can be cancelled", OrderPendingPayment, OrderCancelled, true},
		{"paid order ships", OrderPaidPendingShipment, OrderShipped, true},
		{"shipped order is delivered", OrderShipped, OrderDelivered, true},
		{"shipped order completes without delivery confirmation", OrderShipped, OrderCompleted, true},
		{"delivered order completes", OrderDelivered, OrderCompleted, true},
		{"paid order can be disputed", OrderPaidPendingShipment, OrderDisputed, true},
		{"shipped order can be disputed", OrderShipped, OrderDisputed, true},
		{"delivered order can be disputed", OrderDelivered, OrderDisputed, true},
		{"disputed order resolves to completed", OrderDisputed, OrderCompleted, true},
		{"disputed order resolves to cancelled", OrderDisputed, OrderCancelled, true},

		{"pending order cannot ship", OrderPendingPayment, OrderShipped, false},
		{"pending order cannot complete", OrderPendingPayment, OrderCompleted, false},
		{"paid order cannot be cancelled directly", OrderPaidPendingShipment, OrderCancelled, false},
		{"shipped order cannot go back to paid", OrderShipped, OrderPaidPendingShipment, false},
		{"disputed order cannot be disputed again", OrderDisputed, OrderDisputed, false},
		{"completed is terminal", OrderCompleted, OrderDisputed, false},
		{"cancelled is terminal", OrderCancelled, OrderPaidPendingShipment, false},
		{"cancelled cannot be disputed", OrderCancelled, OrderDisputed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestTerminal(t *testing.T) {
	assert.True(t, OrderCompleted.Terminal())
	assert.True(t, OrderCancelled.Terminal())
	assert.False(t, OrderPendingPayment.Terminal())
	assert.False(t, OrderDisputed.Terminal())
}
