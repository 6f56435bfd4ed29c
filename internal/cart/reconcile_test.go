package cart

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/witify/go-cart/internal/session"
	"github.com/witify/go-cart/internal/storage"
	"github.com/witify/go-cart/internal/storage/sqlite"
	"github.com/witify/go-cart/internal/types"
)

func TestReconcileRequiresIdentity(t *testing.T) {
	ctx := context.Background()
	c, err := New(ctx, &Config{
		Session:  session.NewMemory(),
		Durable:  storage.NewMemory(),
		Identity: Anonymous(),
	})
	require.NoError(t, err)

	assert.Error(t, c.ReconcileOnLogin(ctx))
}

func TestReconcileAdoptsGuestCartWhenNoDurableRecord(t *testing.T) {
	ctx := context.Background()
	sess := session.NewMemory()
	durable := storage.NewMemory()
	clock := newClock(t, "2018-01-01 10:00:00")

	guest, err := New(ctx, &Config{Session: sess, Durable: durable, Identity: Anonymous(), Clock: clock.Now})
	require.NoError(t, err)
	_, err = guest.Add(ctx, stockProduct, 1, nil)
	require.NoError(t, err)
	_, err = guest.Add(ctx, buyableProduct{id: "3", name: "Item 3", price: 55.79}, 2, nil)
	require.NoError(t, err)

	sessionRec, ok := sess.Get(DefaultSessionKey)
	require.True(t, ok)

	// Identity attaches; the login event reconciles once.
	c, err := New(ctx, &Config{Session: sess, Durable: durable, Identity: Identity("20"), Clock: clock.Now})
	require.NoError(t, err)
	require.NoError(t, c.ReconcileOnLogin(ctx))

	count, err := durable.CountRows(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	stored, err := durable.FindByIdentity(ctx, "20")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, sessionRec.Items, stored.Items, "durable record adopts the guest cart wholesale")
	assert.Equal(t, sessionRec.UpdatedAt, stored.UpdatedAt, "the guest timestamp is preserved")

	assert.Equal(t, 3.0, c.Count())
}

func TestReconcileNewerGuestCartOverwritesDurable(t *testing.T) {
	ctx := context.Background()
	durable := storage.NewMemory()
	clock := newClock(t, "2018-01-01 10:00:00")

	// Durable cart written at T1 from another session.
	other, err := New(ctx, &Config{Session: session.NewMemory(), Durable: durable, Identity: Identity("20"), Clock: clock.Now})
	require.NoError(t, err)
	_, err = other.Add(ctx, buyableProduct{id: "9", name: "Old item", price: 1.00}, 1, nil)
	require.NoError(t, err)

	// Guest cart written at T2 > T1.
	sess := session.NewMemory()
	clock.set(t, "2018-01-01 12:00:00")
	guest, err := New(ctx, &Config{Session: sess, Identity: Anonymous(), Clock: clock.Now})
	require.NoError(t, err)
	_, err = guest.Add(ctx, stockProduct, 2, nil)
	require.NoError(t, err)

	c, err := New(ctx, &Config{Session: sess, Durable: durable, Identity: Identity("20"), Clock: clock.Now})
	require.NoError(t, err)
	require.NoError(t, c.ReconcileOnLogin(ctx))

	stored, err := durable.FindByIdentity(ctx, "20")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "2018-01-01 12:00:00", stored.UpdatedAt)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Item name", items[0].Name)

	count, err := durable.CountRows(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "overwrite must not create a second row")
}

func TestReconcileOlderGuestCartIsDiscarded(t *testing.T) {
	ctx := context.Background()
	durable := storage.NewMemory()
	sess := session.NewMemory()
	clock := newClock(t, "2018-01-01 08:00:00")

	// Guest cart written at T0.
	guest, err := New(ctx, &Config{Session: sess, Identity: Anonymous(), Clock: clock.Now})
	require.NoError(t, err)
	_, err = guest.Add(ctx, stockProduct, 5, nil)
	require.NoError(t, err)

	// Durable cart written later, at T1 > T0.
	clock.set(t, "2018-01-01 11:00:00")
	other, err := New(ctx, &Config{Session: session.NewMemory(), Durable: durable, Identity: Identity("20"), Clock: clock.Now})
	require.NoError(t, err)
	_, err = other.Add(ctx, buyableProduct{id: "9", name: "Durable item", price: 1.00}, 1, nil)
	require.NoError(t, err)
	durableRec, err := durable.FindByIdentity(ctx, "20")
	require.NoError(t, err)

	c, err := New(ctx, &Config{Session: sess, Durable: durable, Identity: Identity("20"), Clock: clock.Now})
	require.NoError(t, err)
	require.NoError(t, c.ReconcileOnLogin(ctx))

	stored, err := durable.FindByIdentity(ctx, "20")
	require.NoError(t, err)
	assert.Equal(t, durableRec, stored, "durable record must be untouched")

	// The guest contents are discarded in favor of the durable cart.
	first, ok := c.First()
	require.True(t, ok)
	assert.Equal(t, "Durable item", first.Name)
	assert.Equal(t, 1.0, c.Count())
}

// Equal timestamps at second resolution break toward the durable cart.
func TestReconcileTieGoesToDurable(t *testing.T) {
	ctx := context.Background()
	durable := storage.NewMemory()
	sess := session.NewMemory()
	clock := newClock(t, "2018-01-01 10:00:00")

	guest, err := New(ctx, &Config{Session: sess, Identity: Anonymous(), Clock: clock.Now})
	require.NoError(t, err)
	_, err = guest.Add(ctx, stockProduct, 5, nil)
	require.NoError(t, err)

	other, err := New(ctx, &Config{Session: session.NewMemory(), Durable: durable, Identity: Identity("20"), Clock: clock.Now})
	require.NoError(t, err)
	_, err = other.Add(ctx, buyableProduct{id: "9", name: "Durable item", price: 1.00}, 1, nil)
	require.NoError(t, err)
	durableRec, err := durable.FindByIdentity(ctx, "20")
	require.NoError(t, err)

	c, err := New(ctx, &Config{Session: sess, Durable: durable, Identity: Identity("20"), Clock: clock.Now})
	require.NoError(t, err)
	require.NoError(t, c.ReconcileOnLogin(ctx))

	stored, err := durable.FindByIdentity(ctx, "20")
	require.NoError(t, err)
	assert.Equal(t, durableRec, stored)
	first, ok := c.First()
	require.True(t, ok)
	assert.Equal(t, "Durable item", first.Name)
}

// Full guest/login/logout cycle against the sqlite backend.
func TestLoginCycleSQLite(t *testing.T) {
	ctx := context.Background()
	durable, err := sqlite.New(filepath.Join(t.TempDir(), "carts.db"))
	require.NoError(t, err)
	defer durable.Close()

	sess := session.NewMemory()
	clock := newClock(t, "2018-01-01 10:00:00")

	// Guest adds one product. Nothing reaches the database.
	guest, err := New(ctx, &Config{Session: sess, Durable: durable, Identity: Anonymous(), Clock: clock.Now})
	require.NoError(t, err)
	_, err = guest.Add(ctx, stockProduct, 1, nil)
	require.NoError(t, err)

	count, err := durable.CountRows(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, count)
	require.True(t, sess.Has(DefaultSessionKey))

	// Login: the guest cart becomes the durable cart.
	clock.set(t, "2018-01-01 11:00:00")
	c, err := New(ctx, &Config{Session: sess, Durable: durable, Identity: Identity("20"), Clock: clock.Now})
	require.NoError(t, err)
	require.NoError(t, c.ReconcileOnLogin(ctx))

	count, err = durable.CountRows(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	// Authenticated: a second product lands in the database.
	_, err = c.Add(ctx, buyableProduct{id: "3", name: "Item 3", price: 55.79}, 1, nil)
	require.NoError(t, err)

	stored, err := durable.FindByIdentity(ctx, "20")
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Len(t, stored.Items, 2)

	// Logout: the stale session cart is still there with one item.
	clock.set(t, "2018-01-01 13:00:00")
	guest, err = New(ctx, &Config{Session: sess, Durable: durable, Identity: Anonymous(), Clock: clock.Now})
	require.NoError(t, err)
	require.Equal(t, 1.0, guest.Count())

	// Guest keeps shopping; the session cart grows to 4 items.
	for _, id := range []string{"4", "5", "6"} {
		_, err = guest.Add(ctx, buyableProduct{id: id, name: "Item " + id, price: 8.00}, 1, nil)
		require.NoError(t, err)
	}

	// Login again: the newer session cart replaces the durable one.
	c, err = New(ctx, &Config{Session: sess, Durable: durable, Identity: Identity("20"), Clock: clock.Now})
	require.NoError(t, err)
	require.NoError(t, c.ReconcileOnLogin(ctx))

	stored, err = durable.FindByIdentity(ctx, "20")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Len(t, stored.Items, 4)
	assert.Equal(t, "2018-01-01 13:00:00", stored.UpdatedAt)

	count, err = durable.CountRows(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

// Reconciliation survives a record round trip through JSON, options included.
func TestReconcilePreservesItemIdentity(t *testing.T) {
	ctx := context.Background()
	sess := session.NewMemory()
	durable := storage.NewMemory()
	clock := newClock(t, "2018-01-01 10:00:00")

	guest, err := New(ctx, &Config{Session: sess, Identity: Anonymous(), Clock: clock.Now})
	require.NoError(t, err)
	added, err := guest.Add(ctx, stockProduct, 2, types.Options{"size": "XL", "color": "red"})
	require.NoError(t, err)

	c, err := New(ctx, &Config{Session: sess, Durable: durable, Identity: Identity("20"), Clock: clock.Now})
	require.NoError(t, err)
	require.NoError(t, c.ReconcileOnLogin(ctx))

	reloaded, err := New(ctx, &Config{Session: session.NewMemory(), Durable: durable, Identity: Identity("20"), Clock: clock.Now})
	require.NoError(t, err)

	item, ok := reloaded.Get(added.RowID)
	require.True(t, ok, "row identity must survive persistence")
	assert.Equal(t, added.Quantity, item.Quantity)
	assert.Equal(t, added.Price, item.Price)
	assert.Equal(t, added.Options, item.Options)
}
