package usecase

import (
	"context"
	"sync"

	domain "github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/entity"
)

type mockOrderRepo struct {
	mu      sync.Mutex
	orders  map[string]*domain.Order
	created []*domain.Order
	updates []statusUpdate

	createErr error
	getErr    error
	updateErr error
}

type statusUpdate struct {
	id     string
	status domain.Status
}

func newMockOrderRepo(seed ...*domain.Order) *mockOrderRepo {
	m := &mockOrderRepo{orders: map[string]*domain.Order{}}
	for _, o := range seed {
		m.orders[o.ID] = o
	}
	return m
}

func (m *mockOrderRepo) Create(_ context.Context, o *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	cp := *o
	m.orders[o.ID] = &cp
	m.created = append(m.created, &cp)
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, id string, status domain.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	o, ok := m.orders[id]
	if !ok {
		return ErrNotFound
	}
	o.Status = status
	m.updates = append(m.updates, statusUpdate{id: id, status: status})
	return nil
}

func (m *mockOrderRepo) ListRecent(_ context.Context, limit int) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Order
	for _, o := range m.orders {
		out = append(out, *o)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type mockPaymentRepo struct {
	mu        sync.Mutex
	inserted  []*domain.PaymentNotification
	insertErr error
}

func (m *mockPaymentRepo) Insert(_ context.Context, n *domain.PaymentNotification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	cp := *n
	m.inserted = append(m.inserted, &cp)
	return nil
}

type mockGateway struct {
	createFn func(ctx context.Context, req GatewayTransactionRequest) (GatewayTransactionResponse, error)
	requests []GatewayTransactionRequest
}

func (m *mockGateway) CreateTransaction(ctx context.Context, req GatewayTransactionRequest) (GatewayTransactionResponse, error) {
	m.requests = append(m.requests, req)
	return m.createFn(ctx, req)
}

type mockNotifier struct {
	mu         sync.Mutex
	published  []NotificationMsg
	publishErr error
}

func (m *mockNotifier) Publish(_ context.Context, msg NotificationMsg) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.publishErr != nil {
		return m.publishErr
	}
	m.published = append(m.published, msg)
	return nil
}

type mockEvents struct {
	mu     sync.Mutex
	events []OrderStatusChangedMsg
	err    error
}

func (m *mockEvents) StatusChanged(_ context.Context, msg OrderStatusChangedMsg) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, msg)
	return nil
}

type mockStatusCache struct {
	mu       sync.Mutex
	statuses map[string]string
}

func newMockStatusCache() *mockStatusCache {
	return &mockStatusCache{statuses: map[string]string{}}
}

func (m *mockStatusCache) SetStatus(_ context.Context, orderID, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses[orderID] = status
	return nil
}

func (m *mockStatusCache) GetStatus(_ context.Context, orderID string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.statuses[orderID]
	return s, ok, nil
}
