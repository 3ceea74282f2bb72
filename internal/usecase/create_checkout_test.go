package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/entity"
)

func TestCreateCheckout(t *testing.T) {
	orders := newMockOrderRepo()
	uc := NewCreateCheckout(orders)

	out, err := uc.Execute(context.Background(), CreateCheckoutInput{
		Items: []domain.LineItem{
			{ProductID: "p1", Name: "Earbuds Pro", UnitPrice: 400000, Quantity: 2, Color: "white"},
		},
		Customer:    domain.Customer{Name: "Sari", Phone: "+62811", Courier: "jne"},
		ShippingFee: 25000,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, out.Status)
	assert.Equal(t, int64(825000), out.Total)

	o, err := orders.GetByID(context.Background(), out.OrderID)
	require.NoError(t, err)
	assert.Equal(t, int64(800000), o.Subtotal)
	assert.Equal(t, int64(25000), o.ShippingFee)
	assert.Equal(t, domain.StatusPending, o.Status)
	assert.Equal(t, "jne", o.Customer.Courier)
}

func TestCreateCheckoutEmptyCart(t *testing.T) {
	uc := NewCreateCheckout(newMockOrderRepo())

	_, err := uc.Execute(context.Background(), CreateCheckoutInput{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateCheckoutNegativeShipping(t *testing.T) {
	uc := NewCreateCheckout(newMockOrderRepo())

	_, err := uc.Execute(context.Background(), CreateCheckoutInput{
		Items:       []domain.LineItem{{ProductID: "p1", Name: "Cable", UnitPrice: 1000}},
		ShippingFee: -1,
	})
	assert.ErrorIs(t, err, ErrValidation)
}
