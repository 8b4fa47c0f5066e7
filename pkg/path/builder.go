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

package path

import (
	"github.com/edudppaz/ansible-aci/pkg/errors"
)

// A Builder builds a Path. It provides a fluent API; validation happens once,
// when Build is called.
type Builder struct {
	segments []Segment
	rooted   bool
	err      error
}

// NewBuilder returns a new Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Root sets the root segment of the path. It must be called first, and only
// once.
func (b *Builder) Root(class, rn string, f Filter) *Builder {
	if b.rooted && b.err == nil {
		b.err = errors.NewInvalidPath(-1, "root segment already set")
	}
	b.rooted = true
	b.segments = append(b.segments, Segment{Class: class, RN: rn, Filter: f})
	return b
}

// Child appends a segment under the previous one.
func (b *Builder) Child(class, rn string, f Filter) *Builder {
	if !b.rooted && b.err == nil {
		b.err = errors.NewInvalidPath(len(b.segments), "child %s has no root", class)
	}
	b.segments = append(b.segments, Segment{Class: class, RN: rn, Filter: f})
	return b
}

// Build validates the segments and returns the Path.
func (b *Builder) Build() (*Path, error) {
	if b.err != nil {
		return nil, b.err
	}
	return Build(b.segments...)
}
