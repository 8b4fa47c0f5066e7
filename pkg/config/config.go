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

package config

import (
	"time"

	"github.com/spf13/afero"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/validation/field"
	"sigs.k8s.io/yaml"

	"github.com/edudppaz/ansible-aci/pkg/errors"
)

// Error strings.
const (
	errReadConfig  = "unable to read config file"
	errParseConfig = "unable to parse config file"
	errInvalid     = "invalid configuration"
)

// Option configures how config is loaded.
type Option func(*Options)

// Options defines options for loading configurations.
type Options struct {
	// Default name of a controller that has none.
	DefaultName string

	// Default request timeout of a controller that has none.
	DefaultTimeout time.Duration
}

// WithDefaultName sets the default controller name.
func WithDefaultName(name string) Option {
	return func(o *Options) {
		o.DefaultName = name
	}
}

// WithDefaultTimeout sets the default request timeout.
func WithDefaultTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.DefaultTimeout = d
	}
}

// DefaultOptions returns the default Options.
func DefaultOptions() *Options {
	return &Options{
		DefaultName:    DefaultName,
		DefaultTimeout: DefaultTimeout,
	}
}

// Load reads a Config from the supplied YAML or JSON file, applies defaults
// and validates it.
func Load(fs afero.Fs, path string, opts ...Option) (Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Config{}, errors.Wrap(err, errReadConfig)
	}

	cfg := Config{}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, errParseConfig)
	}

	cfg = Default(cfg, opts...)
	if err := Validate(cfg); err != nil {
		return Config{}, errors.Wrap(err, errInvalid)
	}
	return cfg, nil
}

// Default returns a copy of the supplied Config with defaults applied.
func Default(cfg Config, opts ...Option) Config {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(o)
	}

	out := Config{Default: cfg.Default, Controllers: make([]Controller, len(cfg.Controllers))}
	for i, c := range cfg.Controllers {
		if c.Name == "" && len(cfg.Controllers) == 1 {
			c.Name = o.DefaultName
		}
		if c.Timeout == nil {
			c.Timeout = &metav1.Duration{Duration: o.DefaultTimeout}
		}
		if c.Annotation == "" {
			c.Annotation = DefaultAnnotation
		}
		out.Controllers[i] = c
	}
	return out
}

// Validate checks whether the supplied Config is valid. Every problem is
// reported, not just the first.
func Validate(cfg Config) error {
	errs := field.ErrorList{}
	root := field.NewPath("controllers")

	if len(cfg.Controllers) == 0 {
		errs = append(errs, field.Required(root, "at least one controller is required"))
	}

	names := map[string]bool{}
	for i, c := range cfg.Controllers {
		p := root.Index(i)
		switch {
		case c.Name == "":
			errs = append(errs, field.Required(p.Child("name"), "controllers must be named"))
		case names[c.Name]:
			errs = append(errs, field.Duplicate(p.Child("name"), c.Name))
		}
		names[c.Name] = true

		if c.Host == "" {
			errs = append(errs, field.Required(p.Child("host"), ""))
		} else if _, err := c.URL(); err != nil {
			errs = append(errs, field.Invalid(p.Child("host"), c.Host, err.Error()))
		}
		if c.Username == "" {
			errs = append(errs, field.Required(p.Child("username"), ""))
		}
		if c.RateLimit < 0 {
			errs = append(errs, field.Invalid(p.Child("rateLimit"), c.RateLimit, "must not be negative"))
		}
		if c.Timeout != nil && c.Timeout.Duration <= 0 {
			errs = append(errs, field.Invalid(p.Child("timeout"), c.Timeout.Duration.String(), "must be positive"))
		}
	}

	if cfg.Default != "" && !names[cfg.Default] {
		errs = append(errs, field.NotFound(field.NewPath("default"), cfg.Default))
	}

	return errs.ToAggregate()
}
