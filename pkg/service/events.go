package service

import (
	log "github.com/sirupsen/logrus"

	"github.com/Kraftvoll1/lojinha/pkg/domain/model"
	domain "github.com/Kraftvoll1/lojinha/pkg/domain/service"
)

var _ domain.EventDispatcher = (*LogDispatcher)(nil)

// LogDispatcher writes domain events to the structured log.
type LogDispatcher struct {
	logger *log.Logger
}

func NewLogDispatcher(logger *log.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) Dispatch(event domain.Event) error {
	entry := d.logger.WithField("event", event.Type())

	switch e := event.(type) {
	case model.ItemUnpriced:
		entry.WithFields(log.Fields{
			"orderId":   e.OrderID,
			"productId": e.ProductID,
			"qty":       e.Qty,
		}).Warn("Product not in catalog, priced as zero")
	case model.OrderPlaced:
		entry.WithFields(log.Fields{
			"orderId":  e.OrderID,
			"customer": e.CustomerName,
			"items":    e.ItemCount,
			"total":    e.Total,
		}).Info("Order registered")
	default:
		entry.Info("Domain event")
	}

	return nil
}
