package service

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/Kraftvoll1/lojinha/pkg/domain/model"
)

var (
	ErrValidation = errors.New("invalid order")
	ErrInternal   = errors.New("internal error")
)

type Event interface {
	Type() string
}

type EventDispatcher interface {
	Dispatch(event Event) error
}

type CatalogReader interface {
	Products() ([]model.Product, error)
}

type OrderService struct {
	catalog    CatalogReader
	ledger     model.OrderLedger
	dispatcher EventDispatcher
}

func NewOrderService(catalog CatalogReader, ledger model.OrderLedger, dispatcher EventDispatcher) *OrderService {
	return &OrderService{
		catalog:    catalog,
		ledger:     ledger,
		dispatcher: dispatcher,
	}
}

// PlaceOrder prices items against a fresh catalog read and records the order.
// Nothing is appended unless every step before the append succeeds.
func (s *OrderService) PlaceOrder(customer model.Customer, items []model.LineItem) (model.Receipt, error) {
	if len(customer) == 0 || len(items) == 0 {
		return model.Receipt{}, errors.Wrap(ErrValidation, "customer and items are required")
	}

	products, err := s.catalog.Products()
	if err != nil {
		log.WithError(err).Error("cannot load catalog for order")
		return model.Receipt{}, errors.Wrapf(ErrInternal, "load catalog: %v", err)
	}

	totals, unpriced := Price(items, model.IndexProducts(products))

	orderID, err := s.ledger.NextID()
	if err != nil {
		log.WithError(err).Error("cannot generate order id")
		return model.Receipt{}, errors.Wrapf(ErrInternal, "next order id: %v", err)
	}

	order := &model.Order{
		ID:       orderID,
		Customer: customer,
		Items:    items,
		Subtotal: totals.Subtotal,
		Shipping: totals.Shipping,
		Total:    totals.Total,
		Date:     time.Now(),
		Status:   model.Processing,
	}
	if err := s.ledger.Append(order); err != nil {
		log.WithError(err).WithField("orderId", orderID).Error("cannot record order")
		return model.Receipt{}, errors.Wrapf(ErrInternal, "append order: %v", err)
	}

	for _, item := range unpriced {
		s.dispatch(model.ItemUnpriced{OrderID: orderID, ProductID: item.ID, Qty: item.Qty})
	}
	s.dispatch(model.OrderPlaced{
		OrderID:      orderID,
		CustomerName: customer.Name(),
		ItemCount:    len(items),
		Total:        totals.Total,
	})

	return model.Receipt{OrderID: orderID, Totals: totals}, nil
}

// The order is already recorded when events go out, so a failed dispatch is only logged.
func (s *OrderService) dispatch(event Event) {
	if err := s.dispatcher.Dispatch(event); err != nil {
		log.WithError(err).WithField("event", event.Type()).Error("failed to dispatch event")
	}
}
