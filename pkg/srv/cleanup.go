package srv

import "context"

// cleanup runs a release function at shutdown, e.g. closing a database.
type cleanup struct {
	name string
	fn   func() error
}

func NewCleanup(name string, fn func() error) Service {
	return &cleanup{name: name, fn: fn}
}

func (c *cleanup) Name() string                  { return c.name }
func (c *cleanup) Start(ctx context.Context) error { return nil }

func (c *cleanup) Shutdown(ctx context.Context) error {
	if c.fn == nil {
		return nil
	}
	return c.fn()
}
