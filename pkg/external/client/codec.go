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

package client

import (
	"github.com/goccy/go-json"

	"github.com/edudppaz/ansible-aci/pkg/resource"
)

// classError is the class of the object the controller returns in place of
// the requested objects when a request fails.
const classError = "error"

// An envelope is the body of every controller response.
type envelope struct {
	TotalCount string     `json:"totalCount"`
	Imdata     []moObject `json:"imdata"`
	Error      *moBody    `json:"error,omitempty"`
}

// A moObject maps a class name to the object of that class, e.g.
// {"fvTenant": {"attributes": {...}}}. It always has exactly one key.
type moObject map[string]moBody

type moBody struct {
	Attributes resource.Attributes `json:"attributes"`
	Children   []moObject          `json:"children,omitempty"`
}

// class returns the class name and body of the object.
func (o moObject) class() (string, moBody) {
	for k, v := range o {
		return k, v
	}
	return "", moBody{}
}

// controllerError returns the error code and text the controller reported,
// if any.
func (e envelope) controllerError() (code, text string, ok bool) {
	if e.Error != nil {
		return e.Error.Attributes["code"], e.Error.Attributes["text"], true
	}
	for _, o := range e.Imdata {
		if b, found := o[classError]; found {
			return b.Attributes["code"], b.Attributes["text"], true
		}
	}
	return "", "", false
}

// objects returns the managed objects in the envelope.
func (e envelope) objects() []resource.Existing {
	out := make([]resource.Existing, 0, len(e.Imdata))
	for _, o := range e.Imdata {
		cls, b := o.class()
		if cls == "" || cls == classError {
			continue
		}
		attrs := b.Attributes
		if attrs == nil {
			attrs = resource.Attributes{}
		}
		out = append(out, resource.Existing{Class: cls, Attributes: attrs})
	}
	return out
}

// payload returns the request body that creates or updates an object of the
// supplied class.
func payload(class string, attrs resource.Attributes) moObject {
	a := attrs.Clone()
	if a == nil {
		a = resource.Attributes{}
	}
	return moObject{class: {Attributes: a}}
}

func decode(data []byte) (envelope, error) {
	e := envelope{}
	err := json.Unmarshal(data, &e)
	return e, err
}

func encode(v any) ([]byte, error) {
	return json.Marshal(v)
}
