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
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"
)

func TestLoad(t *testing.T) {
	type want struct {
		cfg Config
		err bool
	}
	cases := map[string]struct {
		reason string
		file   string
		opts   []Option
		want   want
	}{
		"YAML": {
			reason: "A YAML config should be parsed and defaulted.",
			file: `
controllers:
- host: apic.example.org
  username: admin
  password: secret
  insecure: true
  rateLimit: 5
`,
			want: want{cfg: Config{Controllers: []Controller{{
				Name:       DefaultName,
				Host:       "apic.example.org",
				Username:   "admin",
				Password:   "secret",
				Insecure:   ptr.To(true),
				Timeout:    &metav1.Duration{Duration: DefaultTimeout},
				RateLimit:  5,
				Annotation: DefaultAnnotation,
			}}}},
		},
		"JSON": {
			reason: "A JSON config should be parsed too.",
			file:   `{"default":"lab","controllers":[{"name":"lab","host":"https://10.0.0.1","username":"admin","timeout":"5s","annotation":"team:net"}]}`,
			want: want{cfg: Config{Default: "lab", Controllers: []Controller{{
				Name:       "lab",
				Host:       "https://10.0.0.1",
				Username:   "admin",
				Timeout:    &metav1.Duration{Duration: 5 * time.Second},
				Annotation: "team:net",
			}}}},
		},
		"Options": {
			reason: "Options should change the defaults applied.",
			file:   "controllers: [{host: apic, username: admin}]",
			opts:   []Option{WithDefaultName("lab"), WithDefaultTimeout(time.Minute)},
			want: want{cfg: Config{Controllers: []Controller{{
				Name:       "lab",
				Host:       "apic",
				Username:   "admin",
				Timeout:    &metav1.Duration{Duration: time.Minute},
				Annotation: DefaultAnnotation,
			}}}},
		},
		"UnknownField": {
			reason: "Unknown fields are probably typos and should be rejected.",
			file:   "controllers: [{host: apic, username: admin, passwrod: x}]",
			want:   want{err: true},
		},
		"Invalid": {
			reason: "An invalid config should be rejected.",
			file:   "controllers: []",
			want:   want{err: true},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			if err := afero.WriteFile(fs, "/etc/aci/config.yaml", []byte(tc.file), 0o600); err != nil {
				t.Fatalf("WriteFile(...): %v", err)
			}
			cfg, err := Load(fs, "/etc/aci/config.yaml", tc.opts...)
			if diff := cmp.Diff(tc.want.cfg, cfg); diff != "" {
				t.Errorf("\n%s\nLoad(...): -want, +got:\n%s", tc.reason, diff)
			}
			if (err != nil) != tc.want.err {
				t.Errorf("\n%s\nLoad(...): want error %t, got %v", tc.reason, tc.want.err, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(afero.NewMemMapFs(), "/nope.yaml"); err == nil {
		t.Errorf("Load(...): want error for a missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	valid := Controller{Name: "lab", Host: "apic", Username: "admin"}

	cases := map[string]struct {
		reason string
		cfg    Config
		want   string
	}{
		"Valid": {
			reason: "A complete config is valid.",
			cfg:    Config{Controllers: []Controller{valid}},
		},
		"NoControllers": {
			reason: "At least one controller is required.",
			cfg:    Config{},
			want:   "controllers: Required value: at least one controller is required",
		},
		"Incomplete": {
			reason: "Every problem should be reported.",
			cfg:    Config{Controllers: []Controller{{RateLimit: -1}}},
			want:   "[controllers[0].name: Required value: controllers must be named, controllers[0].host: Required value, controllers[0].username: Required value, controllers[0].rateLimit: Invalid value: -1: must not be negative]",
		},
		"Duplicate": {
			reason: "Controller names must be unique.",
			cfg:    Config{Controllers: []Controller{valid, valid}},
			want:   `controllers[1].name: Duplicate value: "lab"`,
		},
		"BadScheme": {
			reason: "Only http and https controllers are supported.",
			cfg:    Config{Controllers: []Controller{{Name: "lab", Host: "ftp://apic", Username: "admin"}}},
			want:   `controllers[0].host: Invalid value: "ftp://apic": controller lab has unsupported scheme "ftp"`,
		},
		"BadTimeout": {
			reason: "Timeouts must be positive.",
			cfg:    Config{Controllers: []Controller{{Name: "lab", Host: "apic", Username: "admin", Timeout: &metav1.Duration{}}}},
			want:   `controllers[0].timeout: Invalid value: "0s": must be positive`,
		},
		"MissingDefault": {
			reason: "The default controller must exist.",
			cfg:    Config{Default: "prod", Controllers: []Controller{valid}},
			want:   `default: Not found: "prod"`,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := ""
			if err := Validate(tc.cfg); err != nil {
				got = err.Error()
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("\n%s\nValidate(...): -want, +got:\n%s", tc.reason, diff)
			}
		})
	}
}

func TestController(t *testing.T) {
	lab := Controller{Name: "lab", Host: "apic-lab"}
	prod := Controller{Name: "prod", Host: "apic-prod"}

	type want struct {
		c   Controller
		err bool
	}
	cases := map[string]struct {
		cfg  Config
		name string
		want want
	}{
		"Named":     {cfg: Config{Controllers: []Controller{lab, prod}}, name: "prod", want: want{c: prod}},
		"Default":   {cfg: Config{Default: "lab", Controllers: []Controller{lab, prod}}, want: want{c: lab}},
		"OnlyOne":   {cfg: Config{Controllers: []Controller{prod}}, want: want{c: prod}},
		"Ambiguous": {cfg: Config{Controllers: []Controller{lab, prod}}, want: want{err: true}},
		"NotFound":  {cfg: Config{Controllers: []Controller{lab}}, name: "prod", want: want{err: true}},
		"NoneAtAll": {cfg: Config{}, want: want{err: true}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c, err := tc.cfg.Controller(tc.name)
			if diff := cmp.Diff(tc.want.c, c); diff != "" {
				t.Errorf("Controller(%q): -want, +got:\n%s", tc.name, diff)
			}
			if (err != nil) != tc.want.err {
				t.Errorf("Controller(%q): want error %t, got %v", tc.name, tc.want.err, err)
			}
		})
	}
}

func TestURL(t *testing.T) {
	cases := map[string]struct {
		host string
		want string
		err  bool
	}{
		"Bare":    {host: "apic.example.org", want: "https://apic.example.org"},
		"HTTP":    {host: "http://10.0.0.1:8080", want: "http://10.0.0.1:8080"},
		"NoHost":  {host: "https://", err: true},
		"BadHost": {host: "https://apic\x7f", err: true},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			u, err := Controller{Name: "lab", Host: tc.host}.URL()
			if (err != nil) != tc.err {
				t.Fatalf("URL(): want error %t, got %v", tc.err, err)
			}
			if err != nil {
				return
			}
			if diff := cmp.Diff(tc.want, u.String()); diff != "" {
				t.Errorf("URL(): -want, +got:\n%s", diff)
			}
		})
	}
}
