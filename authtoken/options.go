package authtoken

import (
	"time"

	"github.com/rs/zerolog"
)

const DefaultTimeout = 10 * time.Second

type Option func(*Client)

// WithDoer sends token requests through an existing transport.
func WithDoer(doer Doer) Option {
	return func(c *Client) {
		if doer != nil {
			c.doer = doer
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}
