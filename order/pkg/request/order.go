package request

// Checkout optionally carries a client supplied idempotency key. The key is recorded in
// logs and traces but not enforced.
type Checkout struct {
	IdempotencyKey *string `validate:"omitempty,max=255" json:"idempotency_key,omitempty"`
}
