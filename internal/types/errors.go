package types

import "errors"

// ErrInvalidQuantity is returned when a cart item quantity is zero, negative,
// or not a finite number. Callers must reject the input; quantities are never
// silently clamped.
var ErrInvalidQuantity = errors.New("invalid quantity")

// ErrMalformedRecord is returned when a persisted cart item record is missing
// required keys. It signals corrupt or incompatible persisted state and is not
// retried.
var ErrMalformedRecord = errors.New("malformed cart item record")
