/*
Copyright 2025 The Crossplane Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package client

import (
	"crypto/tls"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/edudppaz/ansible-aci/pkg/logging"
)

// An Option configures a Client.
type Option func(*Client)

// WithHTTPClient configures the HTTP client used to talk to the controller.
// The client is copied before WithTimeout or WithInsecure are applied, so hc
// is never modified and the order of options does not matter.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithCredentials configures the username and password used to log in.
func WithCredentials(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithRateLimit limits the number of requests per second sent to the
// controller. Requests wait for their turn; none are dropped. A limit of zero
// or less disables rate limiting.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithTimeout configures the timeout of each request. A timeout of zero or
// less keeps the timeout of the HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithInsecure disables verification of the controller's certificate.
func WithInsecure(insecure bool) Option {
	return func(c *Client) {
		c.insecure = insecure
	}
}

// configure returns a copy of hc with the timeout and certificate
// verification settings of the Client applied.
func (c *Client) configure(hc *http.Client) *http.Client {
	if c.timeout <= 0 && !c.insecure {
		return hc
	}
	out := *hc
	if c.timeout > 0 {
		out.Timeout = c.timeout
	}
	if !c.insecure {
		return &out
	}

	var t *http.Transport
	switch rt := out.Transport.(type) {
	case nil:
		t = http.DefaultTransport.(*http.Transport).Clone() //nolint:forcetypeassert // Always an *http.Transport.
	case *http.Transport:
		t = rt.Clone()
	default:
		// A custom RoundTripper owns its own TLS configuration.
		c.log.Debug("Cannot disable certificate verification of a custom transport", "host", c.base.Host)
		return &out
	}
	if t.TLSClientConfig == nil {
		t.TLSClientConfig = &tls.Config{} //nolint:gosec // Verification is disabled below, explicitly requested.
	}
	t.TLSClientConfig.InsecureSkipVerify = true
	out.Transport = t
	return &out
}

// WithUserAgent configures the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger configures the logger for the client.
func WithLogger(log logging.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}
