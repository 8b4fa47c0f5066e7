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

	"github.com/edudppaz/ansible-aci/pkg/resource"
)

// MockFetchFn mocks the Fetch method of an ExternalClient.
type MockFetchFn func(ctx context.Context, dn, filter string) (*resource.Existing, error)

// MockWriteFn mocks the Write method of an ExternalClient.
type MockWriteFn func(ctx context.Context, dn, class string, attrs resource.Attributes) error

// MockDeleteFn mocks the Delete method of an ExternalClient.
type MockDeleteFn func(ctx context.Context, dn string) error

// MockExternalClient is a mock ExternalClient for testing.
type MockExternalClient struct {
	MockFetch  MockFetchFn
	MockWrite  MockWriteFn
	MockDelete MockDeleteFn
}

// NewMockExternalClient creates a new MockExternalClient.
func NewMockExternalClient(opts ...func(*MockExternalClient)) *MockExternalClient {
	c := &MockExternalClient{}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Fetch calls the MockFetch function. The object is absent if it is unset.
func (c *MockExternalClient) Fetch(ctx context.Context, dn, filter string) (*resource.Existing, error) {
	if c.MockFetch != nil {
		return c.MockFetch(ctx, dn, filter)
	}
	return nil, nil
}

// Write calls the MockWrite function.
func (c *MockExternalClient) Write(ctx context.Context, dn, class string, attrs resource.Attributes) error {
	if c.MockWrite != nil {
		return c.MockWrite(ctx, dn, class, attrs)
	}
	return nil
}

// Delete calls the MockDelete function.
func (c *MockExternalClient) Delete(ctx context.Context, dn string) error {
	if c.MockDelete != nil {
		return c.MockDelete(ctx, dn)
	}
	return nil
}

// WithMockFetch adds a MockFetch function to the MockExternalClient.
func WithMockFetch(fn MockFetchFn) func(*MockExternalClient) {
	return func(c *MockExternalClient) {
		c.MockFetch = fn
	}
}

// WithMockWrite adds a MockWrite function to the MockExternalClient.
func WithMockWrite(fn MockWriteFn) func(*MockExternalClient) {
	return func(c *MockExternalClient) {
		c.MockWrite = fn
	}
}

// WithMockDelete adds a MockDelete function to the MockExternalClient.
func WithMockDelete(fn MockDeleteFn) func(*MockExternalClient) {
	return func(c *MockExternalClient) {
		c.MockDelete = fn
	}
}

// NewMockFetchFn returns a MockFetchFn that returns the supplied object and
// error.
func NewMockFetchFn(e *resource.Existing, err error) MockFetchFn {
	return func(_ context.Context, _, _ string) (*resource.Existing, error) { return e, err }
}

// NewMockWriteFn returns a MockWriteFn that returns the supplied error.
func NewMockWriteFn(err error) MockWriteFn {
	return func(_ context.Context, _, _ string, _ resource.Attributes) error { return err }
}

// NewMockDeleteFn returns a MockDeleteFn that returns the supplied error.
func NewMockDeleteFn(err error) MockDeleteFn {
	return func(_ context.Context, _ string) error { return err }
}
