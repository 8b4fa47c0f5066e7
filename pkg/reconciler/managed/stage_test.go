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

package managed

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/edudppaz/ansible-aci/pkg/logging"
)

func TestStageMachine(t *testing.T) {
	cases := map[string]struct {
		reason  string
		events  []string
		want    string
		wantErr bool
	}{
		"Apply": {
			reason: "The apply path ends in done.",
			events: []string{eventBuild, eventFetch, eventDiff, eventApply, eventFinish},
			want:   StageDone,
		},
		"QuerySkipsDiff": {
			reason: "A fetched object can skip straight to noop.",
			events: []string{eventBuild, eventFetch, eventSkip},
			want:   StageNoop,
		},
		"NoBackwardTransition": {
			reason:  "A fetched reconciliation cannot be built again.",
			events:  []string{eventBuild, eventFetch, eventBuild},
			want:    StageFetched,
			wantErr: true,
		},
		"NoSkippingStages": {
			reason:  "A reconciliation cannot be applied before it is diffed.",
			events:  []string{eventBuild, eventFetch, eventApply},
			want:    StageFetched,
			wantErr: true,
		},
		"Done": {
			reason:  "A finished reconciliation cannot be finished again.",
			events:  []string{eventBuild, eventFetch, eventSkip, eventFinish, eventFinish},
			want:    StageDone,
			wantErr: true,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			m := newStageMachine(logging.NewNopLogger())
			var err error
			for _, e := range tc.events {
				if err = m.advance(context.Background(), e); err != nil {
					break
				}
			}
			if (err != nil) != tc.wantErr {
				t.Errorf("\n%s\nadvance(...): want error %t, got %v", tc.reason, tc.wantErr, err)
			}
			if diff := cmp.Diff(tc.want, m.current()); diff != "" {
				t.Errorf("\n%s\ncurrent(): -want, +got:\n%s", tc.reason, diff)
			}
		})
	}
}
