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

package test

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"sync"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-json"

	"github.com/edudppaz/ansible-aci/pkg/errors"
	"github.com/edudppaz/ansible-aci/pkg/resource"
)

// Operations recorded by a RecordingClient.
const (
	OpFetch    = "fetch"
	OpWrite    = "write"
	OpDelete   = "delete"
	OpChildren = "children"
)

// A Call is one request a RecordingClient received.
type Call struct {
	Op         string
	DN         string
	Class      string
	Attributes resource.Attributes
}

type object struct {
	class string
	attrs []byte
}

// A RecordingClient is an in-memory controller. Writes merge the supplied
// attributes into the stored object the way the controller does, so
// attributes that are not mentioned keep their value. Every call is recorded.
// It is safe for concurrent use.
type RecordingClient struct {
	// Errors to return from the named operation instead of touching the
	// store.
	Errors map[string]error

	mu      sync.Mutex
	objects map[string]object
	calls   []Call
}

// NewRecordingClient returns a RecordingClient holding the supplied objects,
// keyed by DN.
func NewRecordingClient(objects map[string]resource.Existing) *RecordingClient {
	c := &RecordingClient{objects: map[string]object{}}
	for dn, e := range objects {
		// Marshalling a string map cannot fail.
		js, _ := json.Marshal(e.Attributes)
		c.objects[dn] = object{class: e.Class, attrs: js}
	}
	return c
}

// Fetch returns the object at the supplied DN, or nil if there is none. The
// filter is recorded but not evaluated; objects are matched by DN.
func (c *RecordingClient) Fetch(_ context.Context, dn, _ string) (*resource.Existing, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, Call{Op: OpFetch, DN: dn})

	if err := c.Errors[OpFetch]; err != nil {
		return nil, err
	}
	return c.get(dn)
}

func (c *RecordingClient) get(dn string) (*resource.Existing, error) {
	o, ok := c.objects[dn]
	if !ok {
		return nil, nil
	}
	attrs := resource.Attributes{}
	if err := json.Unmarshal(o.attrs, &attrs); err != nil {
		return nil, errors.NewTransport(OpFetch, dn, 0, err)
	}
	return &resource.Existing{Class: o.class, Attributes: attrs}, nil
}

// Children returns the stored objects of the supplied class under the
// supplied DN, ordered by DN.
func (c *RecordingClient) Children(_ context.Context, dn, class string) ([]resource.Existing, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, Call{Op: OpChildren, DN: dn, Class: class})

	if err := c.Errors[OpChildren]; err != nil {
		return nil, err
	}
	dns := make([]string, 0)
	for k, o := range c.objects {
		if o.class == class && strings.HasPrefix(k, dn+"/") {
			dns = append(dns, k)
		}
	}
	sort.Strings(dns)

	out := make([]resource.Existing, 0, len(dns))
	for _, k := range dns {
		e, err := c.get(k)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, nil
}

// Write creates the object at the supplied DN, or merges the supplied
// attributes into it.
func (c *RecordingClient) Write(_ context.Context, dn, class string, attrs resource.Attributes) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, Call{Op: OpWrite, DN: dn, Class: class, Attributes: attrs.Clone()})

	if err := c.Errors[OpWrite]; err != nil {
		return err
	}
	patch, err := json.Marshal(attrs)
	if err != nil {
		return errors.NewTransport(OpWrite, dn, http.StatusBadRequest, err)
	}
	o, ok := c.objects[dn]
	if !ok {
		o = object{class: class, attrs: []byte("{}")}
	}
	merged, err := jsonpatch.MergePatch(o.attrs, patch)
	if err != nil {
		return errors.NewTransport(OpWrite, dn, http.StatusBadRequest, err)
	}
	c.objects[dn] = object{class: o.class, attrs: merged}
	return nil
}

// Delete removes the object at the supplied DN. Deleting an object that does
// not exist returns a not found TransportError.
func (c *RecordingClient) Delete(_ context.Context, dn string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, Call{Op: OpDelete, DN: dn})

	if err := c.Errors[OpDelete]; err != nil {
		return err
	}
	if _, ok := c.objects[dn]; !ok {
		return errors.NewTransport(OpDelete, dn, http.StatusNotFound, nil)
	}
	delete(c.objects, dn)
	return nil
}

// Calls returns every call the client received, oldest first.
func (c *RecordingClient) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Call, len(c.calls))
	copy(out, c.calls)
	return out
}

// Count returns the number of calls of the supplied operation.
func (c *RecordingClient) Count(op string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, call := range c.calls {
		if call.Op == op {
			n++
		}
	}
	return n
}

// Object returns the stored object at the supplied DN, or nil. It is not
// recorded as a call.
func (c *RecordingClient) Object(dn string) *resource.Existing {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, _ := c.get(dn)
	return e
}
