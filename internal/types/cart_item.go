package types

import (
	"fmt"
	"math"
)

// LineItem is one distinct product/options combination in a cart. Its RowID is
// fixed at creation; quantity is the only field mutated in place.
type LineItem struct {
	RowID    string  `json:"row_id"`
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
	Options  Options `json:"options"`
}

// NewLineItem creates a line item with quantity 1 and a row id derived from
// the product id and options.
func NewLineItem(productID, name string, price float64, options Options) *LineItem {
	opts := options.Clone()
	return &LineItem{
		RowID:    RowID(productID, opts),
		ID:       productID,
		Name:     name,
		Quantity: 1,
		Price:    price,
		Options:  opts,
	}
}

// FromBuyable creates a line item by reading identifier, description, and
// price from the catalog entry. The options map is passed through to every
// accessor so option-dependent pricing is resolved here, at snapshot time.
func FromBuyable(b Buyable, options Options) *LineItem {
	return NewLineItem(
		b.Identifier(options),
		b.Description(options),
		b.Price(options),
		options,
	)
}

// FromRecord deserializes a line item from a persisted record. The record must
// contain id, name, price, options, and quantity; a missing key fails with
// ErrMalformedRecord. An unusable quantity value fails with ErrInvalidQuantity.
func FromRecord(record map[string]any) (*LineItem, error) {
	for _, key := range []string{"id", "name", "price", "options", "quantity"} {
		if _, ok := record[key]; !ok {
			return nil, fmt.Errorf("%w: missing key %q", ErrMalformedRecord, key)
		}
	}

	id, ok := recordString(record["id"])
	if !ok {
		return nil, fmt.Errorf("%w: id is not a string or number", ErrMalformedRecord)
	}
	name, ok := record["name"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: name is not a string", ErrMalformedRecord)
	}
	price, ok := recordNumber(record["price"])
	if !ok {
		return nil, fmt.Errorf("%w: price is not numeric", ErrMalformedRecord)
	}
	options, ok := recordOptions(record["options"])
	if !ok {
		return nil, fmt.Errorf("%w: options is not a string map", ErrMalformedRecord)
	}

	item := NewLineItem(id, name, price, options)

	quantity, ok := recordNumber(record["quantity"])
	if !ok {
		return nil, fmt.Errorf("%w: quantity is not numeric", ErrInvalidQuantity)
	}
	if err := item.SetQuantity(quantity); err != nil {
		return nil, err
	}
	return item, nil
}

// SetQuantity replaces the quantity. Zero, negative, and non-finite values are
// rejected with ErrInvalidQuantity; positive fractional quantities are valid.
func (li *LineItem) SetQuantity(quantity float64) error {
	if quantity <= 0 || math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidQuantity, quantity)
	}
	li.Quantity = quantity
	return nil
}

// UpdateFromBuyable re-reads identifier, name, price, and options from the
// catalog entry, replacing every field except RowID. The row keeps its cart
// identity even when the underlying product data changes.
func (li *LineItem) UpdateFromBuyable(b Buyable, options Options) {
	opts := options.Clone()
	li.ID = b.Identifier(opts)
	li.Name = b.Description(opts)
	li.Price = b.Price(opts)
	li.Options = opts
}

// Total is quantity times unit price with no rounding.
func (li *LineItem) Total() float64 {
	return li.Quantity * li.Price
}

// ToRecord serializes the item to the persisted record shape.
func (li *LineItem) ToRecord() map[string]any {
	return map[string]any{
		"row_id":   li.RowID,
		"id":       li.ID,
		"name":     li.Name,
		"quantity": li.Quantity,
		"price":    li.Price,
		"options":  li.Options.Clone(),
		"total":    li.Total(),
	}
}

func recordString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case float64:
		// JSON numbers decode as float64; integral ids render without a
		// fractional part.
		if s == math.Trunc(s) {
			return fmt.Sprintf("%d", int64(s)), true
		}
		return fmt.Sprintf("%v", s), true
	case int:
		return fmt.Sprintf("%d", s), true
	case int64:
		return fmt.Sprintf("%d", s), true
	}
	return "", false
}

func recordNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func recordOptions(v any) (Options, bool) {
	switch m := v.(type) {
	case Options:
		return m.Clone(), true
	case map[string]string:
		return Options(m).Clone(), true
	case map[string]any:
		opts := make(Options, len(m))
		for k, val := range m {
			s, ok := val.(string)
			if !ok {
				return nil, false
			}
			opts[k] = s
		}
		return opts, true
	}
	return nil, false
}
