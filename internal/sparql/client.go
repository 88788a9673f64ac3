package sparql

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("sparql")

const defaultTimeout = 30 * time.Second

// Client talks the SPARQL 1.1 protocol to the shared store. Query and update
// may target different endpoints (mu-semtech proxies them separately).
type Client struct {
	httpClient     *http.Client
	queryEndpoint  string
	updateEndpoint string
	sudo           bool
}

func NewClient(queryEndpoint, updateEndpoint string) *Client {
	if updateEndpoint == "" {
		updateEndpoint = queryEndpoint
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		queryEndpoint:  queryEndpoint,
		updateEndpoint: updateEndpoint,
	}
}

// Sudo returns a client that sends the mu-auth-sudo header, bypassing the
// authorization proxy. Only queries that address named graphs directly need
// it.
func (c *Client) Sudo() *Client {
	clone := *c
	clone.sudo = true
	return &clone
}

func (c *Client) post(ctx context.Context, endpoint, field, body string) ([]byte, error) {
	form := url.Values{}
	form.Set(field, body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "sparql.Client.post: building request failed")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/sparql-results+json")
	if c.sudo {
		req.Header.Set("mu-auth-sudo", "true")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "sparql.Client.post: request failed")
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "sparql.Client.post: reading response failed")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Errorf("sparql.Client.post: endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}
	return payload, nil
}

// Select runs a SELECT query and decodes the JSON result set.
func (c *Client) Select(ctx context.Context, query string) (*Response, error) {
	ctx, span := tracer.Start(ctx, "Sparql.Client.Select")
	defer span.End()

	payload, err := c.post(ctx, c.queryEndpoint, "query", query)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	var resp Response
	if err := json.Unmarshal(payload, &resp); err != nil {
		err = errors.Wrap(err, "sparql.Client.Select: decoding result set failed")
		span.RecordError(err)
		return nil, err
	}
	return &resp, nil
}

// Construct runs a CONSTRUCT query and returns the triple set. The store is
// expected to answer with s/p/o bindings in the JSON results format.
func (c *Client) Construct(ctx context.Context, query string) ([]Triple, error) {
	ctx, span := tracer.Start(ctx, "Sparql.Client.Construct")
	defer span.End()

	resp, err := c.Select(ctx, query)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	triples, err := ResponseToTriples(resp)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return triples, nil
}

// Ask runs an existence check.
func (c *Client) Ask(ctx context.Context, query string) (bool, error) {
	ctx, span := tracer.Start(ctx, "Sparql.Client.Ask")
	defer span.End()

	payload, err := c.post(ctx, c.queryEndpoint, "query", query)
	if err != nil {
		span.RecordError(err)
		return false, err
	}
	var resp Response
	if err := json.Unmarshal(payload, &resp); err != nil {
		err = errors.Wrap(err, "sparql.Client.Ask: decoding response failed")
		span.RecordError(err)
		return false, err
	}
	if resp.Boolean == nil {
		err := errors.New("sparql.Client.Ask: response carries no boolean")
		span.RecordError(err)
		return false, err
	}
	return *resp.Boolean, nil
}

// Update runs a mutating query. A single call is all-statements-or-none, but
// distinct calls are not transactional with each other.
func (c *Client) Update(ctx context.Context, update string) error {
	ctx, span := tracer.Start(ctx, "Sparql.Client.Update")
	defer span.End()

	if _, err := c.post(ctx, c.updateEndpoint, "update", update); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}
