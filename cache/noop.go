package cache

import "context"

// NoopInvalidator satisfies Invalidator without a backing cache. Used when
// no Redis address is configured.
type NoopInvalidator struct{}

var _ Invalidator = NoopInvalidator{}

// NewNoopInvalidator creates an invalidator that does nothing.
func NewNoopInvalidator() NoopInvalidator {
	return NoopInvalidator{}
}

// Invalidate reports zero evictions.
func (NoopInvalidator) Invalidate(ctx context.Context, patterns ...string) (int, error) {
	return 0, nil
}

// Close is a no-op.
func (NoopInvalidator) Close() error {
	return nil
}
