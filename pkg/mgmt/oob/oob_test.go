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


package oob

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/edudppaz/ansible-aci/pkg/errors"
	"github.com/edudppaz/ansible-aci/pkg/path"
	"github.com/edudppaz/ansible-aci/pkg/reconciler/managed"
	"github.com/edudppaz/ansible-aci/pkg/resource"
	"github.com/edudppaz/ansible-aci/pkg/test"
)

const (
	epg      = "default"
	contract = "oob-test-ct"
	epgDN    = "uni/tn-mgmt/mgmtp-default/oob-default"
	dn       = epgDN + "/rsooBProv-oob-test-ct"

	otherDN   = epgDN + "/rsooBProv-other"
	foreignDN = "uni/tn-mgmt/mgmtp-default/oob-x/rsooBProv-oob-test-ct"
)

func TestValidate(t *testing.T) {
	cases := map[string]struct {
		reason string
		p      Params
		want   error
	}{
		"Present": {
			reason: "An EPG and a contract identify a relation.",
			p:      Params{EPG: epg, Contract: contract},
		},
		"NoEPG": {
			reason: "The EPG is always required.",
			p:      Params{Contract: contract, State: resource.StateAbsent},
			want:   errors.New(errNoEPG),
		},
		"NoContract": {
			reason: "The contract is required to delete a relation.",
			p:      Params{EPG: epg, State: resource.StateAbsent},
			want:   errors.Errorf(errNoContract, resource.StateAbsent),
		},
		"QueryWithoutContract": {
			reason: "Querying without a contract lists every relation.",
			p:      Params{EPG: epg, State: resource.StateQuery},
		},
		"UnknownState": {
			reason: "An unknown state is rejected.",
			p:      Params{EPG: epg, Contract: contract, State: "gone"},
			want:   errors.Errorf("unknown state %q: must be one of present, absent, query", "gone"),
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := tc.p.Validate()
			if diff := cmp.Diff(tc.want, got, test.EquateErrors()); diff != "" {
				t.Errorf("\n%s\nValidate(): -want, +got:\n%s", tc.reason, diff)
			}
		})
	}
}

func TestSegments(t *testing.T) {
	cases := map[string]struct {
		reason     string
		p          Params
		wantDN     string
		wantFilter string
	}{
		"Plain": {
			reason:     "The relation lives under the EPG in the mgmt tenant.",
			p:          Params{EPG: epg, Contract: contract},
			wantDN:     dn,
			wantFilter: `eq(mgmtRsOoBProv.tDn,"uni/tn-mgmt/oobbrc-oob-test-ct")`,
		},
		"Escaped": {
			reason:     "Names containing the delimiter are escaped.",
			p:          Params{EPG: "a/b", Contract: contract},
			wantDN:     "uni/tn-mgmt/mgmtp-default/oob-[a/b]/rsooBProv-oob-test-ct",
			wantFilter: `eq(mgmtRsOoBProv.tDn,"uni/tn-mgmt/oobbrc-oob-test-ct")`,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			p, err := path.Build(Segments(tc.p)...)
			if err != nil {
				t.Fatalf("\n%s\nBuild(...): %v", tc.reason, err)
			}
			if diff := cmp.Diff(tc.wantDN, p.DN()); diff != "" {
				t.Errorf("\n%s\nDN(): -want, +got:\n%s", tc.reason, diff)
			}
			if diff := cmp.Diff(tc.wantFilter, p.TargetFilter()); diff != "" {
				t.Errorf("\n%s\nTargetFilter(): -want, +got:\n%s", tc.reason, diff)
			}
		})
	}
}

func TestDesired(t *testing.T) {
	cases := map[string]struct {
		reason string
		p      Params
		want   resource.Desired
	}{
		"DefaultAnnotation": {
			reason: "A relation without an annotation gets the default one.",
			p:      Params{EPG: epg, Contract: contract},
			want: resource.Desired{Class: ClassProvided, Attributes: resource.Attributes{
				AttrContract:   contract,
				AttrAnnotation: DefaultAnnotation,
			}},
		},
		"Annotation": {
			reason: "A supplied annotation is used as is.",
			p:      Params{EPG: epg, Contract: contract, Annotation: "owner:netops"},
			want: resource.Desired{Class: ClassProvided, Attributes: resource.Attributes{
				AttrContract:   contract,
				AttrAnnotation: "owner:netops",
			}},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, Desired(tc.p)); diff != "" {
				t.Errorf("\n%s\nDesired(...): -want, +got:\n%s", tc.reason, diff)
			}
		})
	}
}

func TestReconcile(t *testing.T) {
	relation := resource.Existing{Class: ClassProvided, Attributes: resource.Attributes{
		AttrContract:   contract,
		AttrAnnotation: DefaultAnnotation,
		"prio":         "unspecified",
	}}

	type want struct {
		res     resource.Result
		err     error
		writes  []test.Call
		deletes int
	}
	cases := map[string]struct {
		reason   string
		existing map[string]resource.Existing
		p        Params
		want     want
	}{
		"CreateAbsent": {
			reason: "An absent relation with state present is created.",
			p:      Params{EPG: epg, Contract: contract},
			want: want{
				res: resource.Result{Changed: true, Outcome: resource.OutcomeApplied, DN: dn, Attributes: resource.Attributes{
					AttrContract:   contract,
					AttrAnnotation: DefaultAnnotation,
				}},
				writes: []test.Call{{Op: test.OpWrite, DN: dn, Class: ClassProvided, Attributes: resource.Attributes{
					AttrContract:   contract,
					AttrAnnotation: DefaultAnnotation,
				}}},
			},
		},
		"AlreadyPresent": {
			reason:   "A relation that is already present is left alone.",
			existing: map[string]resource.Existing{dn: relation},
			p:        Params{EPG: epg, Contract: contract},
			want: want{
				res: resource.Result{Outcome: resource.OutcomeNoop, DN: dn, Attributes: relation.Attributes},
			},
		},
		"Reannotate": {
			reason: "Only the annotation is written when only the annotation differs.",
			existing: map[string]resource.Existing{dn: {Class: ClassProvided, Attributes: resource.Attributes{
				AttrContract:   contract,
				AttrAnnotation: "",
			}}},
			p: Params{EPG: epg, Contract: contract},
			want: want{
				res: resource.Result{Changed: true, Outcome: resource.OutcomeApplied, DN: dn, Attributes: resource.Attributes{
					AttrContract:   contract,
					AttrAnnotation: DefaultAnnotation,
				}},
				writes: []test.Call{{Op: test.OpWrite, DN: dn, Class: ClassProvided, Attributes: resource.Attributes{
					AttrAnnotation: DefaultAnnotation,
				}}},
			},
		},
		"DeletePresent": {
			reason:   "A present relation with state absent is deleted.",
			existing: map[string]resource.Existing{dn: relation},
			p:        Params{EPG: epg, Contract: contract, State: resource.StateAbsent},
			want: want{
				res:     resource.Result{Changed: true, Outcome: resource.OutcomeDeleted, DN: dn},
				deletes: 1,
			},
		},
		"DeleteAbsent": {
			reason: "Deleting an absent relation issues no request.",
			p:      Params{EPG: epg, Contract: contract, State: resource.StateAbsent},
			want: want{
				res: resource.Result{Outcome: resource.OutcomeNoop, DN: dn},
			},
		},
		"Invalid": {
			reason: "Params that can't identify a relation are rejected before any request.",
			p:      Params{Contract: contract},
			want: want{
				err: errors.Wrap(errors.New(errNoEPG), errReconcile),
			},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c := test.NewRecordingClient(tc.existing)
			r := managed.NewReconciler(c)

			res, err := Reconcile(context.Background(), r, tc.p)
			got := want{res: res, err: err, deletes: c.Count(test.OpDelete)}
			for _, call := range c.Calls() {
				if call.Op == test.OpWrite {
					got.writes = append(got.writes, call)
				}
			}
			if diff := cmp.Diff(tc.want, got, cmp.AllowUnexported(want{}), test.EquateErrors()); diff != "" {
				t.Errorf("\n%s\nReconcile(...): -want, +got:\n%s", tc.reason, diff)
			}
		})
	}
}

func TestReconcileTwice(t *testing.T) {
	c := test.NewRecordingClient(nil)
	r := managed.NewReconciler(c)
	p := Params{EPG: epg, Contract: contract}

	var changed []bool
	for i := 0; i < 2; i++ {
		res, err := Reconcile(context.Background(), r, p)
		if err != nil {
			t.Fatalf("Reconcile(...): %v", err)
		}
		changed = append(changed, res.Changed)
	}
	if diff := cmp.Diff([]bool{true, false}, changed); diff != "" {
		t.Errorf("Reconcile(...): a second run should be a no-op: -want, +got:\n%s", diff)
	}
	if diff := cmp.Diff(1, c.Count(test.OpWrite)); diff != "" {
		t.Errorf("Reconcile(...): -want writes, +got writes:\n%s", diff)
	}
}

func TestQuery(t *testing.T) {
	other := resource.Existing{Class: ClassProvided, Attributes: resource.Attributes{AttrContract: "other"}}
	relation := resource.Existing{Class: ClassProvided, Attributes: resource.Attributes{AttrContract: contract}}
	errBoom := errors.New("boom")

	type want struct {
		rels []resource.Existing
		err  error
	}
	cases := map[string]struct {
		reason   string
		existing map[string]resource.Existing
		errs     map[string]error
		epg      string
		want     want
	}{
		"Relations": {
			reason: "Every relation under the EPG is returned, ordered by DN.",
			existing: map[string]resource.Existing{
				dn:        relation,
				otherDN:   other,
				foreignDN: relation,
				epgDN:     {Class: ClassOoB},
			},
			epg:  epg,
			want: want{rels: []resource.Existing{relation, other}},
		},
		"None": {
			reason: "An EPG without relations returns none.",
			epg:    epg,
			want:   want{rels: []resource.Existing{}},
		},
		"NoEPG": {
			reason: "The EPG is required.",
			want:   want{err: errors.Wrap(errors.New(errNoEPG), errQuery)},
		},
		"ClientError": {
			reason: "Errors from the client are returned.",
			errs:   map[string]error{test.OpChildren: errBoom},
			epg:    epg,
			want:   want{err: errors.Wrap(errBoom, errQuery)},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c := test.NewRecordingClient(tc.existing)
			c.Errors = tc.errs

			rels, err := Query(context.Background(), c, tc.epg)
			got := want{rels: rels, err: err}
			if diff := cmp.Diff(tc.want, got, cmp.AllowUnexported(want{}), test.EquateErrors()); diff != "" {
				t.Errorf("\n%s\nQuery(...): -want, +got:\n%s", tc.reason, diff)
			}
		})
	}
}
