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

// Package resource contains the managed object types exchanged between a
// reconciler and the controller it reconciles against.
package resource

import (
	"sort"

	"github.com/edudppaz/ansible-aci/pkg/errors"
)

// Attributes of a managed object. The controller serialises every attribute
// value as a string.
type Attributes map[string]string

// Clone returns a copy of the attributes. Cloning nil returns nil.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Equal reports whether a and b hold the same attributes. Nil and empty are
// equal.
func (a Attributes) Equal(b Attributes) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}

// Keys returns the attribute names in sorted order.
func (a Attributes) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Desired is the caller's intent for a target object.
type Desired struct {
	// Class of the target object, e.g. mgmtRsOoBProv.
	Class string

	// Attributes the target object should have. Attributes that are not
	// mentioned are left alone.
	Attributes Attributes
}

// Existing is the controller's current state of a target object. A nil
// *Existing means the object is absent.
type Existing struct {
	// Class of the object as reported by the controller.
	Class string

	// Attributes as reported by the controller.
	Attributes Attributes
}

// A State is the requested lifecycle state of a target object.
type State string

// Requested states.
const (
	StatePresent State = "present"
	StateAbsent  State = "absent"

	// StateQuery reads the target object and never changes it.
	StateQuery State = "query"
)

// ParseState returns the State named by s.
func ParseState(s string) (State, error) {
	switch st := State(s); st {
	case StatePresent, StateAbsent, StateQuery:
		return st, nil
	case "":
		return StatePresent, nil
	default:
		return "", errors.Errorf("unknown state %q: must be one of present, absent, query", s)
	}
}

// An Outcome is the terminal stage a reconciliation reached.
type Outcome string

// Reconciliation outcomes.
const (
	OutcomeApplied Outcome = "applied"
	OutcomeDeleted Outcome = "deleted"
	OutcomeNoop    Outcome = "noop"
)

// A Result reports what a reconciliation did.
type Result struct {
	// Changed is true iff a mutating request was issued, or would have been
	// in check mode.
	Changed bool `json:"changed"`

	// Outcome is the terminal stage the reconciliation reached.
	Outcome Outcome `json:"outcome,omitempty"`

	// DN of the target object.
	DN string `json:"dn,omitempty"`

	// Attributes of the target object after the reconciliation. Nil if the
	// object is absent.
	Attributes Attributes `json:"attributes,omitempty"`
}
