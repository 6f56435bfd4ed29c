// Package cart implements the cart aggregate: it owns the line item
// collection and the pricing pipeline, and orchestrates persistence across
// the session-scoped and identity-scoped stores.
//
// A Cart is request-scoped and single-threaded: one instance per calling
// context, loaded eagerly at construction and saved after every mutation.
// Concurrent writers for the same identity are last-write-wins; this package
// provides no locking.
package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/witify/go-cart/internal/pricing"
	"github.com/witify/go-cart/internal/session"
	"github.com/witify/go-cart/internal/storage"
	"github.com/witify/go-cart/internal/types"
)

// DefaultSessionKey is the session store key carts are stored under.
const DefaultSessionKey = "cart"

// Clock supplies the wall-clock time stamped on saves. Injectable so
// timestamp-sensitive reconciliation can be tested.
type Clock func() time.Time

// Config wires a Cart to its collaborators. Session and Identity are
// required; Durable is required once an identity attaches.
type Config struct {
	Session    session.Store
	SessionKey string
	Durable    storage.DurableStore
	Identity   IdentityContext

	// Pipeline seeds the pricing lines. Nil gets the stock pipeline: one
	// "taxes" line at 15% of the running total.
	Pipeline *pricing.Pipeline

	Clock Clock
}

// Cart is the aggregate root for one shopper's cart.
type Cart struct {
	items []*types.LineItem
	index map[string]*types.LineItem
	meta  map[string]any

	pipeline  *pricing.Pipeline
	updatedAt time.Time

	session    session.Store
	sessionKey string
	durable    storage.DurableStore
	identity   IdentityContext
	clock      Clock
}

// New constructs a cart and immediately loads existing state: the session
// record first, then — when an identity is attached — the durable record,
// which wins unconditionally if present.
func New(ctx context.Context, cfg *Config) (*Cart, error) {
	if cfg == nil || cfg.Session == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if cfg.Identity == nil {
		return nil, fmt.Errorf("identity context is required")
	}

	pipeline := cfg.Pipeline
	if pipeline == nil {
		pipeline = pricing.New()
		pipeline.AddLine("taxes", pricing.Taxes(0.15))
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	sessionKey := cfg.SessionKey
	if sessionKey == "" {
		sessionKey = DefaultSessionKey
	}

	c := &Cart{
		index:      make(map[string]*types.LineItem),
		meta:       make(map[string]any),
		pipeline:   pipeline,
		session:    cfg.Session,
		sessionKey: sessionKey,
		durable:    cfg.Durable,
		identity:   cfg.Identity,
		clock:      clock,
	}

	if err := c.load(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Cart) load(ctx context.Context) error {
	rec, ok := c.session.Get(c.sessionKey)

	if id, attached := c.identity.CurrentIdentityID(); attached {
		if c.durable == nil {
			return fmt.Errorf("identity %s attached but no durable store configured", id)
		}
		durableRec, err := c.durable.FindByIdentity(ctx, id)
		if err != nil {
			return err
		}
		if durableRec != nil {
			rec, ok = durableRec, true
		}
	}

	if !ok {
		c.updatedAt = c.clock()
		return nil
	}
	return c.setUp(rec)
}

// setUp replaces the cart's state from a persisted record.
func (c *Cart) setUp(rec *types.CartRecord) error {
	items := make([]*types.LineItem, 0, len(rec.Items))
	index := make(map[string]*types.LineItem, len(rec.Items))
	for _, raw := range rec.Items {
		item, err := types.FromRecord(raw)
		if err != nil {
			return err
		}
		items = append(items, item)
		index[item.RowID] = item
	}

	t, err := rec.Time()
	if err != nil {
		return err
	}

	meta := make(map[string]any, len(rec.Meta))
	for k, v := range rec.Meta {
		meta[k] = v
	}

	c.items = items
	c.index = index
	c.meta = meta
	c.updatedAt = t
	return nil
}

// Add puts a catalog item in the cart. If a row with the same product and
// options already exists, its quantity is incremented instead of creating a
// duplicate row. The cart is persisted before returning.
func (c *Cart) Add(ctx context.Context, b types.Buyable, quantity float64, options types.Options) (*types.LineItem, error) {
	item := types.FromBuyable(b, options)
	if err := item.SetQuantity(quantity); err != nil {
		return nil, err
	}

	if existing, ok := c.index[item.RowID]; ok {
		if err := existing.SetQuantity(existing.Quantity + quantity); err != nil {
			return nil, err
		}
		item = existing
	} else {
		c.items = append(c.items, item)
		c.index[item.RowID] = item
	}

	if err := c.Save(ctx); err != nil {
		return nil, err
	}
	return item, nil
}

// Remove deletes a row by id. Removing an absent row is not an error. The
// cart is persisted either way.
func (c *Cart) Remove(ctx context.Context, rowID string) error {
	if _, ok := c.index[rowID]; ok {
		delete(c.index, rowID)
		for i, item := range c.items {
			if item.RowID == rowID {
				c.items = append(c.items[:i], c.items[i+1:]...)
				break
			}
		}
	}
	return c.Save(ctx)
}

// Update replaces a row with a fresh add: remove then add. New options mean a
// new row identity, and if that identity collides with another existing row
// the quantities merge per the Add rule.
func (c *Cart) Update(ctx context.Context, rowID string, b types.Buyable, quantity float64, options types.Options) (*types.LineItem, error) {
	if err := c.Remove(ctx, rowID); err != nil {
		return nil, err
	}
	return c.Add(ctx, b, quantity, options)
}

// Empty clears all items. Pricing line registrations survive. The cart is
// persisted.
func (c *Cart) Empty(ctx context.Context) error {
	c.items = nil
	c.index = make(map[string]*types.LineItem)
	return c.Save(ctx)
}

// Has reports whether a row exists.
func (c *Cart) Has(rowID string) bool {
	_, ok := c.index[rowID]
	return ok
}

// Get returns a row by id.
func (c *Cart) Get(rowID string) (*types.LineItem, bool) {
	item, ok := c.index[rowID]
	return item, ok
}

// Items returns the line items in insertion order.
func (c *Cart) Items() []*types.LineItem {
	items := make([]*types.LineItem, len(c.items))
	copy(items, c.items)
	return items
}

// First returns the earliest-added line item.
func (c *Cart) First() (*types.LineItem, bool) {
	if len(c.items) == 0 {
		return nil, false
	}
	return c.items[0], true
}

// Count is the sum of all quantities, not the number of rows.
func (c *Cart) Count() float64 {
	total := 0.0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// Any reports whether the cart holds anything.
func (c *Cart) Any() bool {
	return c.Count() > 0
}

// IsEmpty reports whether the cart holds nothing.
func (c *Cart) IsEmpty() bool {
	return c.Count() == 0
}

// Subtotal is the sum of line item totals, before pricing lines.
func (c *Cart) Subtotal() float64 {
	return c.pipeline.Evaluate(c.items).Subtotal
}

// Lines evaluates the pricing pipeline over the current items.
func (c *Cart) Lines() pricing.Breakdown {
	return c.pipeline.Evaluate(c.items)
}

// LineNames lists the pricing line names in registration order, so callers
// can render a breakdown the way the pipeline computes it.
func (c *Cart) LineNames() []string {
	return c.pipeline.Names()
}

// Total is the final cart total, rounded to 2 decimals at this reporting
// edge only.
func (c *Cart) Total() float64 {
	return pricing.Round2(c.pipeline.Evaluate(c.items).Total)
}

// AddCartLine registers or replaces a named pricing line at runtime.
func (c *Cart) AddCartLine(name string, fn pricing.LineFunc) {
	c.pipeline.AddLine(name, fn)
}

// SetMetaData stores an auxiliary value (shipping carrier, promo code, ...)
// persisted with the cart.
func (c *Cart) SetMetaData(ctx context.Context, key string, value any) error {
	c.meta[key] = value
	return c.Save(ctx)
}

// GetMetaData returns an auxiliary value.
func (c *Cart) GetMetaData(key string) (any, bool) {
	v, ok := c.meta[key]
	return v, ok
}

// UpdatedAt is the timestamp of the last save.
func (c *Cart) UpdatedAt() time.Time {
	return c.updatedAt
}

// ToRecord serializes the cart to the persisted record shape. Line amounts
// are stored with the unrounded total under "total".
func (c *Cart) ToRecord() *types.CartRecord {
	items := make([]map[string]any, len(c.items))
	for i, item := range c.items {
		items[i] = item.ToRecord()
	}

	breakdown := c.pipeline.Evaluate(c.items)
	lines := make(map[string]float64, len(breakdown.Lines)+1)
	for name, amount := range breakdown.Lines {
		lines[name] = amount
	}
	lines["total"] = breakdown.Total

	var meta map[string]any
	if len(c.meta) > 0 {
		meta = make(map[string]any, len(c.meta))
		for k, v := range c.meta {
			meta[k] = v
		}
	}

	return &types.CartRecord{
		Items:     items,
		Lines:     lines,
		Meta:      meta,
		UpdatedAt: types.FormatTime(c.updatedAt),
	}
}

// Save stamps the cart with the current time and writes it to the durable
// store when an identity is attached, or to the session store otherwise. A
// failed save leaves the in-memory state as mutated; the caller decides
// whether to retry.
func (c *Cart) Save(ctx context.Context) error {
	c.updatedAt = c.clock()
	rec := c.ToRecord()

	if id, attached := c.identity.CurrentIdentityID(); attached {
		if c.durable == nil {
			return fmt.Errorf("identity %s attached but no durable store configured", id)
		}
		return c.upsertDurable(ctx, id, rec)
	}
	return c.session.Put(c.sessionKey, rec)
}

func (c *Cart) upsertDurable(ctx context.Context, identityID string, rec *types.CartRecord) error {
	existing, err := c.durable.FindByIdentity(ctx, identityID)
	if err != nil {
		return err
	}
	if existing == nil {
		return c.durable.Insert(ctx, identityID, rec)
	}
	return c.durable.UpdateByIdentity(ctx, identityID, rec)
}
