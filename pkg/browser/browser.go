// Package browser obtains the URL and title of the active browser tab, the
// page a clip is attributed to. Providers are best-effort: a failed query is
// recoverable and the caller degrades the context to "unknown".
package browser

import (
	"context"
	"errors"

	"github.com/clipkit/webclip/internal/logger"
)

// Context is the page context a clip is attributed to.
type Context struct {
	URL   string
	Title string
}

// ErrNoContext indicates no supported browser is active or reachable.
var ErrNoContext = errors.New("no browser context available")

// Provider resolves the active tab's context. Implementations enforce their
// own bounded timeout and return ErrNoContext (possibly wrapped) on failure.
type Provider interface {
	Context(ctx context.Context) (Context, error)
}

// Chain tries providers in order and returns the first success.
type Chain struct {
	providers []Provider
}

// NewChain creates a provider chain.
func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

// Context queries each provider until one succeeds. All failing yields
// ErrNoContext.
func (c *Chain) Context(ctx context.Context) (Context, error) {
	for _, p := range c.providers {
		bc, err := p.Context(ctx)
		if err == nil {
			return bc, nil
		}
		logger.Debug("browser context provider failed", "error", err)
	}
	return Context{}, ErrNoContext
}
