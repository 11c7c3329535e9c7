package domain_test

import (
	"testing"
	"time"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestDistributionStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from domain.DistributionStatus
		to   domain.DistributionStatus
		want bool
	}{
		{"pending to completed", domain.DistributionPending, domain.DistributionCompleted, true},
		{"pending to cancelled", domain.DistributionPending, domain.DistributionCancelled, true},
		{"pending to pending", domain.DistributionPending, domain.DistributionPending, false},
		{"completed is terminal", domain.DistributionCompleted, domain.DistributionCancelled, false},
		{"cancelled is terminal", domain.DistributionCancelled, domain.DistributionCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, domain.OrderPending.CanTransitionTo(domain.OrderConfirmed))
	assert.True(t, domain.OrderConfirmed.CanTransitionTo(domain.OrderShipped))
	assert.True(t, domain.OrderShipped.CanTransitionTo(domain.OrderDelivered))
	assert.False(t, domain.OrderDelivered.CanTransitionTo(domain.OrderCancelled))
	assert.False(t, domain.OrderShipped.CanTransitionTo(domain.OrderCancelled))
	assert.False(t, domain.OrderCancelled.CanTransitionTo(domain.OrderPending))
}

func TestPeriod_Validate(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, domain.Period{Start: start, End: end}.Validate())
	assert.NoError(t, domain.Period{Start: start, End: start}.Validate())
	assert.Error(t, domain.Period{Start: end, End: start}.Validate())
	assert.Error(t, domain.Period{End: end}.Validate())
}

func TestPartnerEnumValidators(t *testing.T) {
	assert.True(t, domain.IsValidGender("Female"))
	assert.False(t, domain.IsValidGender("unknown"))

	assert.True(t, domain.IsValidBloodGroup("ab-"))
	assert.False(t, domain.IsValidBloodGroup("C+"))

	assert.True(t, domain.IsValidDayOfWeek("Saturday"))
	assert.False(t, domain.IsValidDayOfWeek("someday"))
}

func TestPriceScope_IsEmpty(t *testing.T) {
	assert.True(t, domain.PriceScope{}.IsEmpty())
	assert.False(t, domain.PriceScope{UpdateAllProducts: true}.IsEmpty())
	assert.False(t, domain.PriceScope{ProductIDs: []string{"p1"}}.IsEmpty())
	assert.Equal(t, "dealer_price", domain.DealerPrice.Column())
	assert.False(t, domain.PriceType("listPrice").IsValid())
}
