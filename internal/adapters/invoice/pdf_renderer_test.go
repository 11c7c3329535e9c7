package invoice

import (
	"bytes"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder(items int) domain.Order {
	o := domain.Order{
		OrderID:         "ord-1",
		OrderNumber:     "ORD-20260105-A1B2C3",
		CustomerName:    "Green Pastures Farm",
		CustomerEmail:   "farm@example.com",
		CustomerPhone:   "+1 555 0101",
		ShippingAddress: "12 Meadow Lane\nSpringfield",
		Status:          domain.OrderConfirmed,
		PaymentStatus:   domain.PaymentUnpaid,
		ShippingCost:    decimal.NewFromInt(100),
		OrderDate:       time.Date(2026, 1, 5, 10, 30, 0, 0, time.UTC),
	}
	for i := 0; i < items; i++ {
		o.Items = append(o.Items, domain.OrderItem{
			ProductName:   fmt.Sprintf("Product %02d with a fairly long descriptive name for truncation", i),
			PackingVolume: "250ml",
			Quantity:      i%3 + 1,
			UnitPrice:     decimal.NewFromInt(int64(100 + i)),
		})
	}
	return o
}

func TestRenderProducesPDF(t *testing.T) {
	r := NewRenderer("Animal Wellness", "")

	out, err := r.Render(sampleOrder(2), false)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRenderIsDeterministic(t *testing.T) {
	r := NewRenderer("Animal Wellness", "")
	order := sampleOrder(5)

	first, err := r.Render(order, true)
	require.NoError(t, err)
	second, err := r.Render(order, true)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderPaginatesLongOrders(t *testing.T) {
	r := NewRenderer("Animal Wellness", "")

	short, err := r.Render(sampleOrder(3), true)
	require.NoError(t, err)
	long, err := r.Render(sampleOrder(120), true)
	require.NoError(t, err)

	assert.Greater(t, len(long), len(short))
}

func TestRenderIgnoresUnreadableLogo(t *testing.T) {
	r := NewRenderer("Animal Wellness", "/nonexistent/logo.png")

	out, err := r.Render(sampleOrder(1), true)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRenderIgnoresInvalidLogo(t *testing.T) {
	path := t.TempDir() + "/logo.png"
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o600))
	r := NewRenderer("Animal Wellness", path)

	out, err := r.Render(sampleOrder(1), false)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

