// Package repository holds the SPARQL-backed data access of the service.
// Every repository takes a Store, which *sparql.Client implements, so tests
// can swap in canned responses.
package repository

import (
	"context"

	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/sparql"
)

type Store interface {
	Select(ctx context.Context, query string) (*sparql.Response, error)
	Construct(ctx context.Context, query string) ([]sparql.Triple, error)
	Ask(ctx context.Context, query string) (bool, error)
	Update(ctx context.Context, update string) error
}

var _ Store = (*sparql.Client)(nil)
