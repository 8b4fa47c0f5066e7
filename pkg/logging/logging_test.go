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

package logging

import (
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/google/go-cmp/cmp"
)

func TestLogrLogger(t *testing.T) {
	cases := map[string]struct {
		reason string
		log    func(l Logger)
		want   []string
	}{
		"Info": {
			reason: "Info messages should be logged at V(0) with accumulated values.",
			log: func(l Logger) {
				l.WithValues("dn", "uni/tn-mgmt").Info("Created", "class", "fvTenant")
			},
			want: []string{`"level"=0 "msg"="Created" "dn"="uni/tn-mgmt" "class"="fvTenant"`},
		},
		"DebugSuppressed": {
			reason: "Debug messages should be dropped when verbosity is zero.",
			log: func(l Logger) {
				l.Debug("Fetched")
			},
			want: nil,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var got []string
			l := funcr.New(func(_, args string) {
				got = append(got, args)
			}, funcr.Options{Verbosity: 0})

			tc.log(NewLogrLogger(l))

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("\n%s\nlog: -want, +got:\n%s", tc.reason, diff)
			}
		})
	}
}

func TestNopLogger(t *testing.T) {
	// Nothing to assert beyond not panicking.
	l := NewNopLogger().WithValues("k", "v")
	l.Info("msg")
	l.Debug("msg")
}
