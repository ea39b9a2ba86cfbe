package stdb

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// probeEndpoints are tried in order by Connect.
var probeEndpoints = []string{"/databases", "/v1/databases", "/status", "/health"}

// Connect checks that the instance answers. The first endpoint returning a
// 2xx status wins; if none does, a *ProbeError listing every failure is returned.
func (c *Client) Connect(ctx context.Context) error {
	c.logger.Info("connecting to spacetimedb", slog.String("base_url", c.baseURL))

	var result *multierror.Error
	for _, endpoint := range probeEndpoints {
		if err := ctx.Err(); err != nil {
			return err
		}

		resp, err := c.doJSON(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "GET %s", endpoint))
			continue
		}
		ok := isOK(resp)
		status := statusText(resp)
		drain(resp)

		if ok {
			c.logger.Info("connected to spacetimedb",
				slog.String("base_url", c.baseURL),
				slog.String("endpoint", endpoint),
			)
			return nil
		}
		result = multierror.Append(result, errors.Errorf("GET %s: %s", endpoint, status))
	}

	return &ProbeError{BaseURL: c.baseURL, Errors: result}
}
