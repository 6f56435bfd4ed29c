package cart

// IdentityContext reports the authenticated identity attached to the current
// calling context, if any. The cart consults it on every save to choose
// between the session and durable tiers.
type IdentityContext interface {
	CurrentIdentityID() (string, bool)
}

// IdentityFunc adapts a function to IdentityContext.
type IdentityFunc func() (string, bool)

// CurrentIdentityID implements IdentityContext.
func (f IdentityFunc) CurrentIdentityID() (string, bool) {
	return f()
}

// Anonymous returns an IdentityContext with no identity attached.
func Anonymous() IdentityContext {
	return IdentityFunc(func() (string, bool) { return "", false })
}

// Identity returns an IdentityContext fixed to the given identity id.
func Identity(id string) IdentityContext {
	return IdentityFunc(func() (string, bool) { return id, true })
}
