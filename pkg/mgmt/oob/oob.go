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


// Package oob reconciles the provided contract relations of an out-of-band
// management endpoint group.
package oob

import (
	"context"

	"github.com/edudppaz/ansible-aci/pkg/errors"
	"github.com/edudppaz/ansible-aci/pkg/path"
	"github.com/edudppaz/ansible-aci/pkg/reconciler/managed"
	"github.com/edudppaz/ansible-aci/pkg/resource"
)

// Managed object classes along the path to a contract relation.
const (
	ClassUni      = "polUni"
	ClassTenant   = "fvTenant"
	ClassMgmtP    = "mgmtMgmtP"
	ClassOoB      = "mgmtOoB"
	ClassProvided = "mgmtRsOoBProv"
)

// Attributes of a contract relation.
const (
	AttrContract   = "tnVzOOBBrCPName"
	AttrAnnotation = "annotation"
)

// DefaultAnnotation is written to every relation that doesn't specify one.
const DefaultAnnotation = "orchestrator:ansible"

const (
	tenant      = "mgmt"
	mgmtProfile = "mgmtp-default"
)

// Error strings.
const (
	errNoEPG      = "epg is required"
	errNoContract = "contract is required when state is %s"
	errReconcile  = "cannot reconcile contract relation"
	errQuery      = "cannot query contract relations"
)

// Params identify a contract relation and the state it should be in.
type Params struct {
	// EPG is the name of the out-of-band endpoint group.
	EPG string

	// Contract is the name of the out-of-band contract the EPG provides.
	// Optional when querying.
	Contract string

	// Annotation written to the relation. Defaults to DefaultAnnotation.
	Annotation string

	// State of the relation. Defaults to present.
	State resource.State
}

// Validate returns an error if the Params can't identify a relation.
func (p Params) Validate() error {
	st, err := resource.ParseState(string(p.State))
	if err != nil {
		return err
	}
	if p.EPG == "" {
		return errors.New(errNoEPG)
	}
	if p.Contract == "" && st != resource.StateQuery {
		return errors.Errorf(errNoContract, st)
	}
	return nil
}

// EPGSegments returns the path from the root of the tree to the endpoint
// group.
func EPGSegments(epg string) []path.Segment {
	rn := path.Name("oob", epg)
	return []path.Segment{
		{Class: ClassUni, RN: "uni"},
		{Class: ClassTenant, RN: path.Name("tn", tenant), Filter: path.Filter{"name": tenant}},
		{Class: ClassMgmtP, RN: mgmtProfile},
		{Class: ClassOoB, RN: rn, Filter: path.Filter{"dn": "uni/tn-" + tenant + "/" + mgmtProfile + "/" + rn}},
	}
}

// Segments returns the path from the root of the tree to the contract
// relation.
func Segments(p Params) []path.Segment {
	return append(EPGSegments(p.EPG), path.Segment{
		Class:  ClassProvided,
		RN:     path.Name("rsooBProv", p.Contract),
		Filter: path.Filter{"tDn": ContractDN(p.Contract)},
	})
}

// ContractDN returns the DN of the named out-of-band contract.
func ContractDN(contract string) string {
	return "uni/tn-" + tenant + "/" + path.Name("oobbrc", contract)
}

// Desired returns the desired state of the contract relation.
func Desired(p Params) resource.Desired {
	a := p.Annotation
	if a == "" {
		a = DefaultAnnotation
	}
	return resource.Desired{
		Class: ClassProvided,
		Attributes: resource.Attributes{
			AttrContract:   p.Contract,
			AttrAnnotation: a,
		},
	}
}

// Reconcile the contract relation identified by the supplied Params.
func Reconcile(ctx context.Context, r *managed.Reconciler, p Params) (resource.Result, error) {
	if err := p.Validate(); err != nil {
		return resource.Result{}, errors.Wrap(err, errReconcile)
	}
	return r.Reconcile(ctx, managed.Request{
		Segments: Segments(p),
		Desired:  Desired(p),
		State:    p.State,
	})
}

// A Querier lists the children of a managed object.
type Querier interface {
	Children(ctx context.Context, dn, class string) ([]resource.Existing, error)
}

// Query returns every contract relation the endpoint group provides.
func Query(ctx context.Context, q Querier, epg string) ([]resource.Existing, error) {
	if err := (Params{EPG: epg, State: resource.StateQuery}).Validate(); err != nil {
		return nil, errors.Wrap(err, errQuery)
	}
	p, err := path.Build(EPGSegments(epg)...)
	if err != nil {
		return nil, errors.Wrap(err, errQuery)
	}
	rels, err := q.Children(ctx, p.DN(), ClassProvided)
	return rels, errors.Wrap(err, errQuery)
}
