package types

// Buyable is the capability the product catalog exposes to the cart. All three
// accessors receive the options chosen for the line item, so a catalog entry
// may vary its identifier, description, or price by option (e.g. a size
// surcharge). The cart reads through this interface at add/update time only;
// values are snapshotted into the line item, never live-linked.
type Buyable interface {
	Identifier(options Options) string
	Description(options Options) string
	Price(options Options) float64
}
