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

// Package path builds distinguished names from an ordered chain of managed
// object segments.
package path

import (
	"sort"
	"strings"

	"github.com/edudppaz/ansible-aci/pkg/errors"
)

// Delimiter separates relative names in a distinguished name.
const Delimiter = "/"

// A Filter maps attribute names to the values an existing object must have
// to match a segment.
type Filter map[string]string

// A Segment is one level of the managed object tree.
type Segment struct {
	// Class of the object at this level, e.g. fvTenant.
	Class string

	// RN is the relative name of the object under its parent, e.g. tn-mgmt.
	RN string

	// Filter used to find the object at this level if it exists. Optional.
	Filter Filter
}

// A Path is an immutable chain of segments, root first and target last.
type Path struct {
	segments []Segment
}

// Build returns a Path for the supplied segments, root first. Every segment
// after the first is a child of the one before it.
func Build(segments ...Segment) (*Path, error) {
	if len(segments) == 0 {
		return nil, errors.NewInvalidPath(-1, "a path needs at least one segment")
	}
	p := &Path{segments: make([]Segment, len(segments))}
	for i, s := range segments {
		if err := validate(i, s); err != nil {
			return nil, err
		}
		p.segments[i] = Segment{Class: s.Class, RN: s.RN, Filter: cloneFilter(s.Filter)}
	}
	return p, nil
}

func validate(i int, s Segment) error {
	if s.Class == "" {
		return errors.NewInvalidPath(i, "class name must not be empty")
	}
	if s.RN == "" {
		return errors.NewInvalidPath(i, "relative name of %s must not be empty", s.Class)
	}
	depth := 0
	for _, r := range s.RN {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				return errors.NewInvalidPath(i, "relative name %q has an unbalanced ']'", s.RN)
			}
		case '/':
			if depth == 0 {
				return errors.NewInvalidPath(i, "relative name %q contains an unescaped %q", s.RN, Delimiter)
			}
		}
	}
	if depth != 0 {
		return errors.NewInvalidPath(i, "relative name %q has an unbalanced '['", s.RN)
	}
	for _, k := range sortedKeys(s.Filter) {
		if strings.Contains(s.Filter[k], `"`) {
			return errors.NewInvalidPath(i, "filter value of %s.%s must not contain a '\"'", s.Class, k)
		}
	}
	return nil
}

// DN returns the distinguished name of the path's target.
func (p *Path) DN() string {
	rns := make([]string, len(p.segments))
	for i, s := range p.segments {
		rns[i] = s.RN
	}
	return strings.Join(rns, Delimiter)
}

// Len returns the number of segments in the path.
func (p *Path) Len() int { return len(p.segments) }

// Target returns the last segment of the path.
func (p *Path) Target() Segment { return p.segments[len(p.segments)-1] }

// Segments returns a copy of the path's segments, root first.
func (p *Path) Segments() []Segment {
	out := make([]Segment, len(p.segments))
	for i, s := range p.segments {
		out[i] = Segment{Class: s.Class, RN: s.RN, Filter: cloneFilter(s.Filter)}
	}
	return out
}

// Parent returns the path of the target's parent, or nil if the target is
// the root.
func (p *Path) Parent() *Path {
	if len(p.segments) < 2 {
		return nil
	}
	return &Path{segments: p.segments[:len(p.segments)-1]}
}

// TargetFilter returns the target segment's filter rendered as a controller
// query filter, e.g. and(eq(mgmtOoB.name,"oob")). It returns an empty
// string if the target has no filter.
func (p *Path) TargetFilter() string {
	t := p.Target()
	if len(t.Filter) == 0 {
		return ""
	}
	keys := sortedKeys(t.Filter)
	terms := make([]string, len(keys))
	for i, k := range keys {
		// Values are quoted verbatim; the controller has no escape syntax.
		terms[i] = "eq(" + t.Class + "." + k + `,"` + t.Filter[k] + `")`
	}
	if len(terms) == 1 {
		return terms[0]
	}
	return "and(" + strings.Join(terms, ",") + ")"
}

func sortedKeys(f Filter) []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String returns the path's DN.
func (p *Path) String() string { return p.DN() }

// Name returns a relative name made of the supplied prefix and name, e.g.
// Name("oob", "default") returns "oob-default". Names that contain the
// delimiter are wrapped in brackets, which is how the controller escapes them.
func Name(prefix, name string) string {
	if strings.Contains(name, Delimiter) {
		name = "[" + name + "]"
	}
	return prefix + "-" + name
}

func cloneFilter(f Filter) Filter {
	if f == nil {
		return nil
	}
	out := make(Filter, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}
