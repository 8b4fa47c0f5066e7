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

// Package config loads the controllers a reconciler may talk to.
package config

import (
	"net/url"
	"strings"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	"github.com/edudppaz/ansible-aci/pkg/errors"
)

// Defaults.
const (
	DefaultName       = "default"
	DefaultTimeout    = 30 * time.Second
	DefaultAnnotation = "orchestrator:ansible"
)

// A Controller is a fabric controller and the credentials used to log in to
// it.
type Controller struct {
	// Name is a unique name for this controller.
	Name string `json:"name"`

	// Host of the controller, e.g. apic.example.org. The scheme defaults to
	// https.
	Host string `json:"host"`

	// Username to log in with.
	Username string `json:"username"`

	// Password to log in with.
	Password string `json:"password,omitempty"`

	// Insecure skips verification of the controller's certificate.
	Insecure *bool `json:"insecure,omitempty"`

	// Timeout of each request to the controller.
	Timeout *metav1.Duration `json:"timeout,omitempty"`

	// RateLimit is the maximum number of requests per second sent to the
	// controller. Zero means no limit.
	RateLimit float64 `json:"rateLimit,omitempty"`

	// Annotation is written to every object this controller manages.
	Annotation string `json:"annotation,omitempty"`
}

// URL returns the base URL of the controller.
func (c Controller) URL() (*url.URL, error) {
	h := c.Host
	if !strings.Contains(h, "://") {
		h = "https://" + h
	}
	u, err := url.Parse(h)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse host of controller %s", c.Name)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Errorf("controller %s has unsupported scheme %q", c.Name, u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.Errorf("controller %s has no host", c.Name)
	}
	return u, nil
}

// IsInsecure reports whether certificate verification is disabled.
func (c Controller) IsInsecure() bool {
	return ptr.Deref(c.Insecure, false)
}

// RequestTimeout returns the timeout of each request.
func (c Controller) RequestTimeout() time.Duration {
	if c.Timeout == nil {
		return DefaultTimeout
	}
	return c.Timeout.Duration
}

// Config is the set of controllers a reconciler may talk to.
type Config struct {
	// Controllers is a list of controller configurations.
	Controllers []Controller `json:"controllers"`

	// Default is the name of the controller used when none is specified. It
	// may be omitted if there is only one controller.
	Default string `json:"default,omitempty"`
}

// Controller returns the named controller, or the default controller if name
// is empty.
func (c Config) Controller(name string) (Controller, error) {
	if name == "" {
		name = c.Default
	}
	if name == "" {
		if len(c.Controllers) != 1 {
			return Controller{}, errors.Errorf("%d controllers are configured and none is the default", len(c.Controllers))
		}
		return c.Controllers[0], nil
	}
	for _, ctrl := range c.Controllers {
		if ctrl.Name == name {
			return ctrl, nil
		}
	}
	return Controller{}, errors.Errorf("controller %s is not configured", name)
}
