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

// Package diff computes the declarative difference between the desired and
// existing state of a managed object.
package diff

import (
	"dario.cat/mergo"

	"github.com/edudppaz/ansible-aci/pkg/resource"
)

// A Change is a structural change to the target object.
type Change string

// Structural changes.
const (
	ChangeNone   Change = "none"
	ChangeCreate Change = "create"
	ChangeDelete Change = "delete"
)

// A Diff is the minimal change needed to move an existing object to its
// desired state.
type Diff struct {
	// ToSet holds the desired attributes whose value differs from the
	// existing value, or all desired attributes if the object is absent.
	ToSet resource.Attributes

	// Change is the structural change required, if any.
	Change Change
}

// IsNoop reports whether applying the diff would issue no request.
func (d Diff) IsNoop() bool {
	return d.Change == ChangeNone && len(d.ToSet) == 0
}

// Compute the diff between the desired and existing state of an object. A nil
// existing means the object is absent. Compute is pure: the same inputs
// always produce the same Diff.
func Compute(s resource.State, desired resource.Desired, existing *resource.Existing) Diff {
	switch s {
	case resource.StateAbsent:
		return Diff{Change: ChangeDelete, ToSet: resource.Attributes{}}
	case resource.StateQuery:
		return Diff{Change: ChangeNone, ToSet: resource.Attributes{}}
	case resource.StatePresent:
	}

	if existing == nil {
		return Diff{Change: ChangeCreate, ToSet: desired.Attributes.Clone()}
	}

	// Attributes the caller didn't mention are left alone. This is a partial
	// update, not a replace.
	toSet := resource.Attributes{}
	for k, want := range desired.Attributes {
		if got, ok := existing.Attributes[k]; !ok || got != want {
			toSet[k] = want
		}
	}
	return Diff{Change: ChangeNone, ToSet: toSet}
}

// Merge returns the attributes the object has after the diff is applied on
// top of the existing attributes. It returns nil for a delete.
func Merge(existing *resource.Existing, d Diff) resource.Attributes {
	if d.Change == ChangeDelete {
		return nil
	}
	out := resource.Attributes{}
	if existing != nil {
		out = existing.Attributes.Clone()
		if out == nil {
			out = resource.Attributes{}
		}
	}
	// Merging string maps only fails for mismatched kinds, which the types
	// rule out. WithOverride copies every key in ToSet, empty values
	// included, so an empty desired value clears the existing one. Keys not
	// in ToSet keep their existing value.
	_ = mergo.Merge(&out, d.ToSet, mergo.WithOverride)
	return out
}
