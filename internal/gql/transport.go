package gql

import (
	"context"
	"fmt"
	"time"

	"gqlpick/internal/logger"
)

// post executes one GraphQL-over-HTTP request and returns the decoded
// envelope. Transport and HTTP-status failures are returned as errors;
// GraphQL-level errors are left in the envelope for the caller.
func (c *Client) post(ctx context.Context, op Operation, vars any, opts Options) (*wireResponse, error) {
	timeout := c.timeout
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	var out wireResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetHeaders(c.headers).
		SetHeaders(opts.Context).
		SetBody(wireRequest{
			Query:         op.Query,
			Variables:     vars,
			OperationName: op.Name,
		}).
		SetResult(&out).
		Post(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("gql: executing %s: %w", op.Name, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("gql: %s returned %s", op.Name, res.Status())
	}
	logger.Log.Debugf("gql: %s %s in %s", op.Name, res.Status(), time.Since(start))
	return &out, nil
}
