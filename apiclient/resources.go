package apiclient

import (
	"context"
	"net/http"

	"github.com/jrsteele09/wave-console/customers"
	"github.com/jrsteele09/wave-console/estimates"
	"github.com/jrsteele09/wave-console/items"
	"github.com/jrsteele09/wave-console/paging"
	"github.com/jrsteele09/wave-console/tokens"
)

func (c *Client) ListEstimates(ctx context.Context, p paging.Params) (*estimates.Page, error) {
	var out estimates.Page
	if err := c.do(c.authorized(ctx, tokens.Access), http.MethodGet, "/estimates", nil, &out, p.Query()); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateEstimate posts a new estimate. Callers validate it first.
func (c *Client) CreateEstimate(ctx context.Context, e estimates.NewEstimate) (*estimates.Created, error) {
	var out estimates.Created
	if err := c.do(c.authorized(ctx, tokens.Access), http.MethodPost, "/estimates", e, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListCustomers(ctx context.Context, p paging.Params) (*customers.Page, error) {
	var out customers.Page
	if err := c.do(c.authorized(ctx, tokens.Access), http.MethodGet, "/customers", nil, &out, p.Query()); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListItems(ctx context.Context, p paging.Params) (*items.Page, error) {
	var out items.Page
	if err := c.do(c.authorized(ctx, tokens.Access), http.MethodGet, "/items", nil, &out, p.Query()); err != nil {
		return nil, err
	}
	return &out, nil
}
