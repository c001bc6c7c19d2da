package model

import (
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrDuplicateOrder  = errors.New("order already recorded")
	ErrInvalidLineItem = errors.New("invalid line item")
)

type OrderStatus string

// Processing is the only status an order ever takes.
const Processing OrderStatus = "processing"

// Customer is kept exactly as the client sent it. Numbers decoded with
// json.Decoder.UseNumber stay json.Number, so no digit is lost.
type Customer map[string]any

func (c Customer) Name() string {
	name, _ := c["name"].(string)
	return name
}

type LineItem struct {
	ID  string `json:"id"`
	Qty int    `json:"qty"`
}

// UnmarshalJSON requires both keys. A whole-valued float quantity such as 2.0 is accepted.
func (i *LineItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID  *string          `json:"id"`
		Qty *json.RawMessage `json:"qty"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrapf(ErrInvalidLineItem, "%v", err)
	}
	if raw.ID == nil || raw.Qty == nil {
		return errors.Wrap(ErrInvalidLineItem, "id and qty are required")
	}

	qty, err := parseQty(*raw.Qty)
	if err != nil {
		return err
	}

	i.ID = *raw.ID
	i.Qty = qty
	return nil
}

func parseQty(raw json.RawMessage) (int, error) {
	n := string(raw)
	if qty, err := strconv.Atoi(n); err == nil {
		return qty, nil
	}
	f, err := strconv.ParseFloat(n, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, errors.Wrapf(ErrInvalidLineItem, "qty %s is not a whole number", n)
	}
	return int(f), nil
}

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

type Order struct {
	ID       uuid.UUID   `json:"order_id"`
	Customer Customer    `json:"customer"`
	Items    []LineItem  `json:"items"`
	Subtotal float64     `json:"subtotal"`
	Shipping float64     `json:"shipping"`
	Total    float64     `json:"total"`
	Date     time.Time   `json:"date"`
	Status   OrderStatus `json:"status"`
}

func (o *Order) Totals() Totals {
	return Totals{Subtotal: o.Subtotal, Shipping: o.Shipping, Total: o.Total}
}

// Clone copies the order so the copy shares no slice or map with o,
// nested customer values included.
func (o *Order) Clone() *Order {
	c := *o
	c.Items = make([]LineItem, len(o.Items))
	copy(c.Items, o.Items)
	if o.Customer != nil {
		c.Customer = Customer(cloneValue(map[string]any(o.Customer)).(map[string]any))
	}
	return &c
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(v))
		for k, val := range v {
			m[k] = cloneValue(val)
		}
		return m
	case []any:
		s := make([]any, len(v))
		for i, val := range v {
			s[i] = cloneValue(val)
		}
		return s
	default:
		return v
	}
}

// Receipt is what a caller gets back after an order has been recorded.
type Receipt struct {
	OrderID uuid.UUID
	Totals  Totals
}

// OrderLedger is the append-only record of placed orders.
type OrderLedger interface {
	NextID() (uuid.UUID, error)
	Append(order *Order) error
	List() []Order
	Len() int
}
