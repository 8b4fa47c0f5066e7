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
	"sync"

	"github.com/edudppaz/ansible-aci/pkg/config"
	"github.com/edudppaz/ansible-aci/pkg/errors"
	"github.com/edudppaz/ansible-aci/pkg/logging"
)

// Manager manages Clients for the controllers in a Config. It creates each
// Client on first use and reuses it afterwards, so every reconciliation
// against a controller shares one session.
type Manager struct {
	// mu protects the clients map.
	mu sync.Mutex

	// clients maps controller names to Client instances.
	clients map[string]*Client

	cfg  config.Config
	opts []Option
	log  logging.Logger
}

// NewManager creates a new Manager. The supplied options are applied to every
// Client it creates, after the options derived from the Config.
func NewManager(cfg config.Config, log logging.Logger, opts ...Option) *Manager {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Manager{
		clients: make(map[string]*Client),
		cfg:     cfg,
		opts:    opts,
		log:     log,
	}
}

// Client gets or creates the Client for the named controller, or for the
// default controller if name is empty.
func (m *Manager) Client(name string) (*Client, error) {
	ctrl, err := m.cfg.Controller(name)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.clients[ctrl.Name]; ok {
		return c, nil
	}

	u, err := ctrl.URL()
	if err != nil {
		return nil, err
	}
	opts := append([]Option{
		WithCredentials(ctrl.Username, ctrl.Password),
		WithTimeout(ctrl.RequestTimeout()),
		WithInsecure(ctrl.IsInsecure()),
		WithRateLimit(ctrl.RateLimit),
		WithLogger(m.log.WithValues("controller", ctrl.Name)),
	}, m.opts...)

	c, err := New(u.String(), opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot create client for controller %s", ctrl.Name)
	}
	m.clients[ctrl.Name] = c
	return c, nil
}

// Close closes all clients.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for name, c := range m.clients {
		c.Close()
		m.log.Debug("Closed controller client", "controller", name)
		delete(m.clients, name)
	}
}
