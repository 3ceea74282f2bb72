package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/entity"
)

func TestUpdateStatusApprovesManualOrder(t *testing.T) {
	o := pendingOrder("ORD-1", 5000)
	o.Status = domain.StatusWaitingApproval
	orders := newMockOrderRepo(o)
	events := &mockEvents{}
	uc := NewUpdateStatus(orders).WithEvents(events)

	updated, err := uc.Execute(context.Background(), UpdateStatusInput{
		OrderID: "ORD-1",
		Status:  domain.StatusPaid,
		Actor:   "ops@antaraya.id",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, updated.Status)

	require.Len(t, events.events, 1)
	assert.Equal(t, "admin", events.events[0].Source)
	assert.Equal(t, "ops@antaraya.id", events.events[0].Actor)
}

func TestUpdateStatusIsPermissive(t *testing.T) {
	// deliberately no transition table: PAID back to PENDING is allowed
	o := pendingOrder("ORD-1", 5000)
	o.Status = domain.StatusPaid
	orders := newMockOrderRepo(o)
	uc := NewUpdateStatus(orders)

	updated, err := uc.Execute(context.Background(), UpdateStatusInput{
		OrderID: "ORD-1",
		Status:  domain.StatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, updated.Status)
}

func TestUpdateStatusValidation(t *testing.T) {
	uc := NewUpdateStatus(newMockOrderRepo())

	_, err := uc.Execute(context.Background(), UpdateStatusInput{OrderID: "", Status: domain.StatusPaid})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = uc.Execute(context.Background(), UpdateStatusInput{OrderID: "ORD-1", Status: "SHIPPED"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateStatusNotFound(t *testing.T) {
	uc := NewUpdateStatus(newMockOrderRepo())

	_, err := uc.Execute(context.Background(), UpdateStatusInput{
		OrderID: "ORD-missing",
		Status:  domain.StatusPaid,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
