// Package session verifies mu-session-id headers against the store and
// caches the answers, so a burst of requests from the same session does not
// hammer the store with ASK queries.
package session

import (
	"context"

	"github.com/pkg/errors"
)

// Verifier answers whether a session URI is bound to an account.
type Verifier interface {
	IsLoggedIn(ctx context.Context, sessionURI string) (bool, error)
}

// Cache holds recent session answers. Entries expire on their own; only
// positive and negative lookups within the TTL are served from here.
type Cache interface {
	Get(key string) (value bool, ok bool)
	Set(key string, value bool)
}

// Checker is a caching Verifier.
type Checker struct {
	verifier Verifier
	cache    Cache
}

func NewChecker(verifier Verifier, cache Cache) *Checker {
	return &Checker{verifier: verifier, cache: cache}
}

func (c *Checker) IsLoggedIn(ctx context.Context, sessionURI string) (bool, error) {
	if loggedIn, ok := c.cache.Get(sessionURI); ok {
		return loggedIn, nil
	}
	loggedIn, err := c.verifier.IsLoggedIn(ctx, sessionURI)
	if err != nil {
		return false, errors.Wrap(err, "session.Checker.IsLoggedIn: verification failed")
	}
	c.cache.Set(sessionURI, loggedIn)
	return loggedIn, nil
}
