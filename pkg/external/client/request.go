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
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/edudppaz/ansible-aci/pkg/errors"
)

// maxBody is the largest response body read from the controller.
const maxBody = 16 << 20

func (c *Client) get(ctx context.Context, op, dn, path string, query url.Values) (envelope, error) {
	return c.sendRequest(ctx, op, dn, http.MethodGet, path, query, nil, true)
}

func (c *Client) post(ctx context.Context, op, dn, path string, query url.Values, body any, auth bool) (envelope, error) {
	js, err := encode(body)
	if err != nil {
		return envelope{}, errors.Wrap(err, errEncode)
	}
	return c.sendRequest(ctx, op, dn, http.MethodPost, path, query, js, auth)
}

func (c *Client) delete(ctx context.Context, op, dn, path string) (envelope, error) {
	return c.sendRequest(ctx, op, dn, http.MethodDelete, path, nil, nil, true)
}

func (c *Client) buildRequest(ctx context.Context, method, path string, query url.Values, body []byte, token string) (*http.Request, error) {
	u := *c.base
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	u.RawQuery = query.Encode()

	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), r)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	}
	return req, nil
}

func (c *Client) sendRequest(ctx context.Context, op, dn, method, path string, query url.Values, body []byte, auth bool) (envelope, error) {
	token := ""
	if auth {
		t, err := c.session(ctx)
		if err != nil {
			return envelope{}, err
		}
		token = t
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return envelope{}, errors.NewTransport(op, dn, 0, errors.Wrap(err, errRateLimited))
		}
	}

	req, err := c.buildRequest(ctx, method, path, query, body, token)
	if err != nil {
		return envelope{}, errors.NewTransport(op, dn, 0, err)
	}

	c.log.Debug("Sending request", "method", method, "path", req.URL.Path)
	resp, err := c.client.Do(req)
	if err != nil {
		return envelope{}, errors.NewTransport(op, dn, 0, err)
	}
	defer ensureReaderClosed(resp)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return envelope{}, errors.NewTransport(op, dn, resp.StatusCode, err)
	}

	if err := checkResponseErr(op, dn, resp.StatusCode, data); err != nil {
		return envelope{}, err
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return envelope{}, nil
	}
	e, err := decode(data)
	if err != nil {
		return envelope{}, errors.NewTransport(op, dn, resp.StatusCode, errors.Wrap(err, errDecode))
	}
	return e, nil
}

// checkResponseErr returns an error if the controller rejected a request.
// Concurrent modification is reported as a ConflictError; every other failure
// is a TransportError.
func checkResponseErr(op, dn string, status int, body []byte) error {
	var code, text string
	hasErr := false
	if len(body) > 0 {
		if e, err := decode(body); err == nil {
			code, text, hasErr = e.controllerError()
		}
	}

	if status >= http.StatusOK && status < http.StatusMultipleChoices && !hasErr {
		return nil
	}
	if status == http.StatusConflict {
		return &errors.ConflictError{DN: dn, Message: text}
	}

	e := errors.NewTransport(op, dn, status, nil)
	e.Code = code
	e.Message = strings.TrimSpace(text)
	if !hasErr && len(body) > 0 && (status < http.StatusOK || status >= http.StatusMultipleChoices) {
		e.Message = strings.TrimSpace(string(body))
	}
	return e
}

// ensureReaderClosed drains and closes the response body so the connection
// can be reused.
func ensureReaderClosed(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.CopyN(io.Discard, resp.Body, 512)
	_ = resp.Body.Close()
}
