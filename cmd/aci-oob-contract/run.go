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


package main

import (
	"context"
	"io"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"

	"github.com/edudppaz/ansible-aci/pkg/config"
	"github.com/edudppaz/ansible-aci/pkg/errors"
	"github.com/edudppaz/ansible-aci/pkg/external/client"
	"github.com/edudppaz/ansible-aci/pkg/logging"
	"github.com/edudppaz/ansible-aci/pkg/mgmt/oob"
	"github.com/edudppaz/ansible-aci/pkg/reconciler/managed"
	"github.com/edudppaz/ansible-aci/pkg/resource"
)

// Error strings.
const (
	errLoadConfig   = "cannot load configuration"
	errInvalid      = "invalid configuration"
	errState        = "invalid --state"
	errClient       = "cannot connect to controller"
	errWriteResult  = "cannot write result"
	errWriteMetrics = "cannot write metrics"
)

type options struct {
	configPath  string
	envFile     string
	controller  string
	epg         string
	contract    string
	state       string
	annotation  string
	metricsFile string
	check       bool
	debug       bool
}

// AddFlags adds the command's flags to the supplied FlagSet.
func (o *options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.configPath, "config", "", "Path to a YAML or JSON file describing the controllers")
	fs.StringVar(&o.envFile, "env-file", "", "Path to a .env file with ACI_* variables for the default controller")
	fs.StringVar(&o.controller, "controller", "", "Name of the controller to use (defaults to the configured default)")
	fs.StringVar(&o.epg, "epg", "", "Name of the out-of-band management EPG")
	fs.StringVar(&o.contract, "contract", "", "Name of the out-of-band contract the EPG provides")
	fs.StringVar(&o.state, "state", string(resource.StatePresent), "One of present, absent or query")
	fs.StringVar(&o.annotation, "annotation", "", "Annotation for the relation (defaults to the controller's)")
	fs.StringVar(&o.metricsFile, "metrics-file", "", "Write Prometheus metrics in text format to this file")
	fs.BoolVar(&o.check, "check", false, "Report what would change without changing anything")
	fs.BoolVar(&o.debug, "debug", false, "Enable debug logging")
}

// output is printed to stdout after a run.
type output struct {
	Changed    bool                  `json:"changed"`
	DN         string                `json:"dn,omitempty"`
	Attributes resource.Attributes   `json:"attributes,omitempty"`
	Relations  []resource.Attributes `json:"relations,omitempty"`
}

type runner struct {
	fs     afero.Fs
	lookup config.LookupFn
	stdout io.Writer
	log    logging.Logger

	// clientOpts are applied to every controller client.
	clientOpts []client.Option
}

// Run reconciles the relation described by the supplied options and prints
// the result. The metrics file, if any, is written whether or not the run
// succeeds.
func (r *runner) Run(ctx context.Context, o options) (err error) {
	reg := prometheus.NewRegistry()
	metrics := managed.NewPrometheusMetrics()
	reg.MustRegister(metrics)
	defer func() {
		werr := writeMetrics(o.metricsFile, reg)
		if err == nil {
			err = werr
			return
		}
		if werr != nil {
			r.log.Info("Cannot write metrics after a failed run", "error", werr)
		}
	}()

	st, err := resource.ParseState(o.state)
	if err != nil {
		return errors.Wrap(err, errState)
	}

	cfg, err := r.loadConfig(o)
	if err != nil {
		return err
	}
	ctrl, err := cfg.Controller(o.controller)
	if err != nil {
		return errors.Wrap(err, errInvalid)
	}

	m := client.NewManager(cfg, r.log, r.clientOpts...)
	defer m.Close()
	c, err := m.Client(ctrl.Name)
	if err != nil {
		return errors.Wrap(err, errClient)
	}

	annotation := o.annotation
	if annotation == "" {
		annotation = ctrl.Annotation
	}
	p := oob.Params{EPG: o.epg, Contract: o.contract, Annotation: annotation, State: st}
	log := r.log.WithValues("controller", ctrl.Name, "epg", o.epg, "contract", o.contract)

	out := output{}
	if st == resource.StateQuery && o.contract == "" {
		rels, err := oob.Query(ctx, c, o.epg)
		if err != nil {
			return err
		}
		out.Relations = make([]resource.Attributes, len(rels))
		for i, rel := range rels {
			out.Relations[i] = rel.Attributes
		}
		log.Debug("Queried contract relations", "count", len(rels))
	} else {
		rec := managed.NewReconciler(c,
			managed.WithLogger(log),
			managed.WithMetrics(metrics),
			managed.WithDryRun(o.check),
		)
		res, err := oob.Reconcile(ctx, rec, p)
		if err != nil {
			return err
		}
		out = output{Changed: res.Changed, DN: res.DN, Attributes: res.Attributes}
	}

	if err := json.NewEncoder(r.stdout).Encode(out); err != nil {
		return errors.Wrap(err, errWriteResult)
	}
	return nil
}

// writeMetrics writes everything g gathers to path in the Prometheus text
// format. It does nothing if path is empty.
func writeMetrics(path string, g prometheus.Gatherer) error {
	if path == "" {
		return nil
	}
	return errors.Wrap(prometheus.WriteToTextfile(path, g), errWriteMetrics)
}

// loadConfig merges the config file, the env file and the environment, in
// increasing order of precedence.
func (r *runner) loadConfig(o options) (config.Config, error) {
	cfg := config.Config{}
	if o.configPath != "" {
		c, err := config.Load(r.fs, o.configPath)
		if err != nil {
			return config.Config{}, errors.Wrap(err, errLoadConfig)
		}
		cfg = c
	}

	env, err := config.ReadEnv(r.fs, o.envFile, r.lookup)
	if err != nil {
		return config.Config{}, errors.Wrap(err, errLoadConfig)
	}
	cfg, err = config.ApplyEnv(cfg, env)
	if err != nil {
		return config.Config{}, errors.Wrap(err, errLoadConfig)
	}

	cfg = config.Default(cfg)
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, errors.Wrap(err, errInvalid)
	}
	return cfg, nil
}
