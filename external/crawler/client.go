// Package crawler notifies the crawl service that a user is looking at an
// area so it can (re)visit the venues there.
package crawler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mozilla-mobile/prox-sub000/schema"
)

type Client struct {
	apiEndpoint string
	client      *http.Client
}

func New(endpoint string) *Client {
	u, _ := url.Parse(endpoint)

	apiEndpoint := &url.URL{
		Scheme: u.Scheme,
		Host:   u.Host,
	}

	return &Client{
		apiEndpoint: apiEndpoint.String(),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Put asks the crawler to visit the area around a location. Callers treat
// the request as fire-and-forget and only log a returned error.
func (c *Client) Put(ctx context.Context, location schema.Location) error {
	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(map[string]float64{
		"lat": location.Latitude,
		"lng": location.Longitude,
	}); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		fmt.Sprintf("%s/api/v1/crawl", c.apiEndpoint), &body)
	if err != nil {
		return err
	}
	req.Header.Add("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("fail to notify crawler: status %d", resp.StatusCode)
	}

	return nil
}
