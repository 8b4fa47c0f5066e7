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
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	"github.com/edudppaz/ansible-aci/pkg/errors"
)

// Environment variables that configure the default controller.
const (
	EnvHost       = "ACI_HOST"
	EnvUsername   = "ACI_USERNAME"
	EnvPassword   = "ACI_PASSWORD"
	EnvInsecure   = "ACI_INSECURE"
	EnvTimeout    = "ACI_TIMEOUT"
	EnvAnnotation = "ACI_ANNOTATION"
)

var envKeys = []string{EnvHost, EnvUsername, EnvPassword, EnvInsecure, EnvTimeout, EnvAnnotation}

// Error strings.
const (
	errReadEnv  = "unable to read env file"
	errParseEnv = "unable to parse env file"
)

// A LookupFn looks up an environment variable.
type LookupFn func(key string) (string, bool)

// ReadEnv returns the controller environment variables. Variables set in the
// supplied lookup, usually os.LookupEnv, take precedence over those in the
// env file. The env file is optional; pass an empty path to skip it.
func ReadEnv(fs afero.Fs, path string, lookup LookupFn) (map[string]string, error) {
	env := map[string]string{}
	if path != "" {
		f, err := fs.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, errReadEnv)
		}
		defer f.Close() //nolint:errcheck // Read only.

		vars, err := godotenv.Parse(f)
		if err != nil {
			return nil, errors.Wrap(err, errParseEnv)
		}
		for _, k := range envKeys {
			if v, ok := vars[k]; ok {
				env[k] = v
			}
		}
	}

	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, k := range envKeys {
		if v, ok := lookup(k); ok {
			env[k] = v
		}
	}
	return env, nil
}

// ApplyEnv returns a copy of the supplied Config with the environment applied
// to its default controller. A controller is added if none is configured.
func ApplyEnv(cfg Config, env map[string]string, opts ...Option) (Config, error) {
	if len(env) == 0 {
		return cfg, nil
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(o)
	}

	out := Config{Default: cfg.Default, Controllers: make([]Controller, len(cfg.Controllers))}
	copy(out.Controllers, cfg.Controllers)

	i := -1
	switch {
	case len(out.Controllers) == 0:
		out.Controllers = append(out.Controllers, Controller{Name: o.DefaultName})
		i = 0
	case out.Default == "" && len(out.Controllers) == 1:
		i = 0
	default:
		for j, c := range out.Controllers {
			if c.Name == out.Default {
				i = j
			}
		}
	}
	if i < 0 {
		return Config{}, errors.Errorf("cannot apply environment: default controller %q is not configured", out.Default)
	}

	c := &out.Controllers[i]
	if v, ok := env[EnvHost]; ok {
		c.Host = v
	}
	if v, ok := env[EnvUsername]; ok {
		c.Username = v
	}
	if v, ok := env[EnvPassword]; ok {
		c.Password = v
	}
	if v, ok := env[EnvAnnotation]; ok {
		c.Annotation = v
	}
	if v, ok := env[EnvInsecure]; ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, errors.Wrapf(err, "cannot parse %s", EnvInsecure)
		}
		c.Insecure = ptr.To(b)
	}
	if v, ok := env[EnvTimeout]; ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, errors.Wrapf(err, "cannot parse %s", EnvTimeout)
		}
		c.Timeout = &metav1.Duration{Duration: d}
	}
	return out, nil
}
