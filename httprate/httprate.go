package httprate

import (
	"net/http"

	"golang.org/x/time/rate"
)

// RLClient is an HTTP client that waits for the rate
// limiter before each request.
type RLClient struct {
	Client      *http.Client
	Ratelimiter *rate.Limiter
	UserAgent   string
}

func (c *RLClient) Do(req *http.Request) (*http.Response, error) {
	if c.Ratelimiter != nil {
		err := c.Ratelimiter.Wait(req.Context())
		if err != nil {
			return nil, err
		}
	}
	if c.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	return c.Client.Do(req)
}
