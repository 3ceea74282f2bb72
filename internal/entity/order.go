package domain

import (
	"errors"
	"time"
)

type Status string

const (
	StatusPending         Status = "PENDING"
	StatusWaitingApproval Status = "WAITING_APPROVAL"
	StatusPaid            Status = "PAID"
	StatusExpired         Status = "EXPIRED"
	StatusCancelled       Status = "CANCELLED"
)

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusWaitingApproval, StatusPaid, StatusExpired, StatusCancelled:
		return true
	}
	return false
}

var (
	ErrEmptyCart     = errors.New("empty cart")
	ErrInvalidAmount = errors.New("invalid amount")
)

// LineItem is a snapshot taken at order-creation time. Name and unit price
// are never re-derived from the live catalog.
type LineItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"price"` // whole Rupiah
	Quantity  int64  `json:"qty"`
	Color     string `json:"color,omitempty"`
}

func (li LineItem) Subtotal() int64 {
	qty := li.Quantity
	if qty <= 0 {
		qty = 1
	}
	return li.UnitPrice * qty
}

type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Courier string `json:"courier"`
	Address string `json:"address"`
	Note    string `json:"note,omitempty"`
}

type Order struct {
	ID          string // external identifier, app-generated
	Items       []LineItem
	Customer    Customer
	Subtotal    int64
	ShippingFee int64
	Total       int64
	Status      Status
	ProofURL    string // manual payment path only
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return ErrEmptyCart
	}
	if o.Subtotal < 0 || o.ShippingFee < 0 || o.Total < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// ItemsTotal is the sum of line-item snapshots, independent of Total.
func (o *Order) ItemsTotal() int64 {
	var sum int64
	for _, li := range o.Items {
		sum += li.Subtotal()
	}
	return sum
}
