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

// Package client talks to a fabric controller's REST API.
package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/edudppaz/ansible-aci/pkg/errors"
	"github.com/edudppaz/ansible-aci/pkg/logging"
	"github.com/edudppaz/ansible-aci/pkg/resource"
)

// Error strings.
const (
	errParseHost   = "cannot parse controller host"
	errNoHost      = "controller host must not be empty"
	errNoToken     = "controller did not return a session token"
	errDecode      = "cannot decode controller response"
	errEncode      = "cannot encode request body"
	errRateLimited = "cannot wait for rate limiter"
)

// Controller operations, used to describe a TransportError.
const (
	opLogin    = errors.OpLogin
	opFetch    = "fetch"
	opChildren = "list children of"
	opWrite    = "write"
	opDelete   = "delete"
)

const (
	// CookieName is the name of the session cookie the controller issues.
	CookieName = "APIC-cookie"

	// DefaultUserAgent is sent with every request unless overridden.
	DefaultUserAgent = "ansible-aci-go"

	pathLogin = "/api/aaaLogin.json"
	pathMO    = "/api/mo/"
)

// A Client reads and writes managed objects using a controller's REST API.
// It logs in lazily, on the first request, and reuses the session for every
// subsequent request. It is safe for concurrent use.
type Client struct {
	base      *url.URL
	client    *http.Client
	limiter   *rate.Limiter
	username  string
	password  string
	userAgent string
	timeout   time.Duration
	insecure  bool
	log       logging.Logger

	mu    sync.Mutex
	token string
}

// New returns a Client for the controller at the supplied host, e.g.
// https://apic.example.org. The scheme defaults to https.
func New(host string, opts ...Option) (*Client, error) {
	if host == "" {
		return nil, errors.New(errNoHost)
	}
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, errors.Wrap(err, errParseHost)
	}

	c := &Client{
		base:      u,
		client:    &http.Client{},
		userAgent: DefaultUserAgent,
		log:       logging.NewNopLogger(),
	}

	for _, o := range opts {
		o(c)
	}
	c.client = c.configure(c.client)

	return c, nil
}

// Login to the controller and store the session token. Login is called
// automatically before the first request; calling it again refreshes the
// session.
func (c *Client) Login(ctx context.Context) error {
	body := map[string]any{
		"aaaUser": map[string]any{
			"attributes": map[string]string{"name": c.username, "pwd": c.password},
		},
	}
	e, err := c.post(ctx, opLogin, c.base.Host, pathLogin, nil, body, false)
	if err != nil {
		return err
	}

	token := ""
	for _, o := range e.Imdata {
		if b, ok := o["aaaLogin"]; ok {
			token = b.Attributes["token"]
		}
	}
	if token == "" {
		return errors.New(errNoToken)
	}

	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	c.log.Debug("Logged in to controller", "host", c.base.Host, "username", c.username)
	return nil
}

func (c *Client) session(ctx context.Context) (string, error) {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		return token, nil
	}
	if err := c.Login(ctx); err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token, nil
}

// Fetch the configuration of the object at the supplied DN. If filter is not
// empty the object is only returned if it matches. Fetch returns nil and no
// error if there is no such object.
func (c *Client) Fetch(ctx context.Context, dn, filter string) (*resource.Existing, error) {
	q := url.Values{}
	q.Set("rsp-prop-include", "config-only")
	if filter != "" {
		q.Set("query-target-filter", filter)
	}

	e, err := c.get(ctx, opFetch, dn, moPath(dn), q)
	if errors.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	objs := e.objects()
	if len(objs) == 0 {
		return nil, nil
	}
	return &objs[0], nil
}

// Children returns the configuration of the children of the object at the
// supplied DN. If class is not empty only children of that class are
// returned.
func (c *Client) Children(ctx context.Context, dn, class string) ([]resource.Existing, error) {
	q := url.Values{}
	q.Set("query-target", "children")
	q.Set("rsp-prop-include", "config-only")
	if class != "" {
		q.Set("target-subtree-class", class)
	}

	e, err := c.get(ctx, opChildren, dn, moPath(dn), q)
	if errors.IsNotFound(err) {
		return []resource.Existing{}, nil
	}
	if err != nil {
		return nil, err
	}
	return e.objects(), nil
}

// Write creates the object at the supplied DN, or updates the supplied
// attributes of the existing object. The controller leaves attributes that
// are not supplied alone.
func (c *Client) Write(ctx context.Context, dn, class string, attrs resource.Attributes) error {
	_, err := c.post(ctx, opWrite, dn, moPath(dn), nil, payload(class, attrs), true)
	return err
}

// Delete the object at the supplied DN.
func (c *Client) Delete(ctx context.Context, dn string) error {
	_, err := c.delete(ctx, opDelete, dn, moPath(dn))
	return err
}

// Close releases idle connections to the controller.
func (c *Client) Close() {
	c.client.CloseIdleConnections()
}

func moPath(dn string) string {
	return pathMO + dn + ".json"
}
