package service

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Kraftvoll1/lojinha/pkg/domain/model"
)

var _ model.OrderLedger = (*MemoryLedger)(nil)

// MemoryLedger keeps orders in submission order for the life of the process.
type MemoryLedger struct {
	mu     sync.RWMutex
	orders []*model.Order
	ids    map[uuid.UUID]struct{}
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		ids: make(map[uuid.UUID]struct{}),
	}
}

func (l *MemoryLedger) NextID() (uuid.UUID, error) {
	return uuid.NewV7()
}

func (l *MemoryLedger) Append(order *model.Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.ids[order.ID]; exists {
		return errors.Wrapf(model.ErrDuplicateOrder, "order %s", order.ID)
	}

	l.ids[order.ID] = struct{}{}
	l.orders = append(l.orders, order.Clone())

	return nil
}

func (l *MemoryLedger) List() []model.Order {
	l.mu.RLock()
	defer l.mu.RUnlock()

	orders := make([]model.Order, 0, len(l.orders))
	for _, order := range l.orders {
		orders = append(orders, *order.Clone())
	}
	return orders
}

func (l *MemoryLedger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.orders)
}
