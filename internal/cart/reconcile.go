package cart

import (
	"context"
	"fmt"
)

// ReconcileOnLogin merges the session-scoped and identity-scoped carts at the
// moment a guest authenticates. Invoke exactly once per login event.
//
// Decision rule, last-write-wins by wall-clock timestamp:
//   - no durable record: adopt the session cart wholesale and write it to the
//     durable store;
//   - session strictly newer than durable: adopt the session cart and
//     overwrite the durable record, keeping the session's timestamp;
//   - otherwise (durable newer, or tied at second resolution): the durable
//     cart wins and the session contents are discarded.
//
// Individual line items are never merged across the two carts.
func (c *Cart) ReconcileOnLogin(ctx context.Context) error {
	id, attached := c.identity.CurrentIdentityID()
	if !attached {
		return fmt.Errorf("reconcile requires an attached identity")
	}
	if c.durable == nil {
		return fmt.Errorf("identity %s attached but no durable store configured", id)
	}

	sessionRec, ok := c.session.Get(c.sessionKey)
	if !ok {
		sessionRec = c.ToRecord()
	}

	durableRec, err := c.durable.FindByIdentity(ctx, id)
	if err != nil {
		return err
	}

	if durableRec == nil {
		if err := c.setUp(sessionRec); err != nil {
			return err
		}
		return c.durable.Insert(ctx, id, c.ToRecord())
	}

	durableTime, err := durableRec.Time()
	if err != nil {
		return err
	}
	sessionTime, err := sessionRec.Time()
	if err != nil {
		return err
	}

	if durableTime.Before(sessionTime) {
		if err := c.setUp(sessionRec); err != nil {
			return err
		}
		return c.durable.UpdateByIdentity(ctx, id, c.ToRecord())
	}

	// Durable cart wins; load it so the in-memory cart reflects the outcome.
	return c.setUp(durableRec)
}
