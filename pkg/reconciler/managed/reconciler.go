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
	"time"

	"github.com/edudppaz/ansible-aci/pkg/diff"
	"github.com/edudppaz/ansible-aci/pkg/errors"
	"github.com/edudppaz/ansible-aci/pkg/logging"
	"github.com/edudppaz/ansible-aci/pkg/path"
	"github.com/edudppaz/ansible-aci/pkg/resource"
)

// Error strings.
const (
	errBuildPath     = "cannot build path to managed object"
	errClassMismatch = "desired class %s does not match target class %s"
	errFetch         = "cannot fetch managed object"
	errApply         = "cannot apply managed object"
	errDelete        = "cannot delete managed object"
)

// Stages at which a reconciliation can fail, as recorded by Metrics.
const (
	failedPath    = "path"
	failedFetch   = "fetch"
	failedExecute = "execute"
)

// An ExternalClient reads and writes managed objects on a controller. It must
// be safe for concurrent use.
type ExternalClient interface {
	// Fetch the object at the supplied DN, optionally narrowed by a
	// controller query filter. It returns nil and no error if the object
	// is absent.
	Fetch(ctx context.Context, dn, filter string) (*resource.Existing, error)

	// Write creates the object at the supplied DN, or updates the supplied
	// attributes of the existing object. Attributes that are not supplied
	// are left alone.
	Write(ctx context.Context, dn, class string, attrs resource.Attributes) error

	// Delete the object at the supplied DN.
	Delete(ctx context.Context, dn string) error
}

// A Request to reconcile one managed object.
type Request struct {
	// Segments from the root of the tree to the target object.
	Segments []path.Segment

	// Desired state of the target object. An empty class defaults to the
	// class of the target segment.
	Desired resource.Desired

	// State the target object should be in. Defaults to present.
	State resource.State
}

// ReconcilerOption is used to configure the Reconciler.
type ReconcilerOption func(*Reconciler)

// WithLogger specifies how the Reconciler should log messages.
func WithLogger(log logging.Logger) ReconcilerOption {
	return func(r *Reconciler) {
		r.log = log
	}
}

// WithMetrics specifies how the Reconciler should record metrics.
func WithMetrics(m Metrics) ReconcilerOption {
	return func(r *Reconciler) {
		r.metrics = m
	}
}

// WithDryRun specifies whether the Reconciler should skip mutating requests.
// A dry run still fetches and diffs, and its Result reports whether anything
// would have changed.
func WithDryRun(dryRun bool) ReconcilerOption {
	return func(r *Reconciler) {
		r.dryRun = dryRun
	}
}

// A Reconciler reconciles managed objects against a controller.
type Reconciler struct {
	client  ExternalClient
	log     logging.Logger
	metrics Metrics
	dryRun  bool
}

// NewReconciler returns a Reconciler that reconciles managed objects using the
// supplied ExternalClient.
func NewReconciler(c ExternalClient, opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{
		client:  c,
		log:     logging.NewNopLogger(),
		metrics: NopMetrics{},
	}

	for _, f := range opts {
		f(r)
	}

	return r
}

// Reconcile the managed object described by the supplied Request. It issues
// at most one mutating request. A failed reconciliation returns a Result that
// reports no change.
func (r *Reconciler) Reconcile(ctx context.Context, req Request) (resource.Result, error) { //nolint:gocyclo // One linear pass through the stages.
	started := time.Now()

	st := req.State
	if st == "" {
		st = resource.StatePresent
	}
	if _, err := resource.ParseState(string(st)); err != nil {
		return resource.Result{}, err
	}

	class := req.Desired.Class
	if class == "" && len(req.Segments) > 0 {
		class = req.Segments[len(req.Segments)-1].Class
	}
	log := r.log.WithValues("class", class, "state", string(st))
	m := newStageMachine(log)

	p, err := path.Build(req.Segments...)
	if err != nil {
		r.metrics.Failed(class, failedPath)
		return resource.Result{}, errors.Wrap(err, errBuildPath)
	}
	if t := p.Target().Class; t != class {
		r.metrics.Failed(class, failedPath)
		return resource.Result{}, errors.Wrap(errors.NewInvalidPath(p.Len()-1, errClassMismatch, class, t), errBuildPath)
	}
	dn := p.DN()
	log = log.WithValues("dn", dn)
	if err := m.advance(ctx, eventBuild); err != nil {
		return resource.Result{}, err
	}

	existing, err := r.client.Fetch(ctx, dn, p.TargetFilter())
	if err != nil {
		r.metrics.Failed(class, failedFetch)
		return resource.Result{}, errors.Wrap(err, errFetch)
	}
	log.Debug("Fetched managed object", "exists", existing != nil)
	if err := m.advance(ctx, eventFetch); err != nil {
		return resource.Result{}, err
	}

	if st == resource.StateQuery {
		res := resource.Result{Outcome: resource.OutcomeNoop, DN: dn}
		if existing != nil {
			res.Attributes = existing.Attributes.Clone()
		}
		return r.finish(ctx, m, class, eventSkip, res, started)
	}

	desired := resource.Desired{Class: class, Attributes: req.Desired.Attributes}
	d := diff.Compute(st, desired, existing)
	log.Debug("Computed diff", "change", string(d.Change), "attributes", d.ToSet.Keys())
	if err := m.advance(ctx, eventDiff); err != nil {
		return resource.Result{}, err
	}

	switch {
	case d.Change == diff.ChangeDelete && existing == nil:
		return r.finish(ctx, m, class, eventSkip, resource.Result{Outcome: resource.OutcomeNoop, DN: dn}, started)

	case d.Change == diff.ChangeDelete:
		if !r.dryRun {
			err := r.client.Delete(ctx, dn)
			if errors.IsNotFound(err) {
				// Someone else deleted it between our fetch and delete.
				log.Debug("Managed object was already deleted")
				return r.finish(ctx, m, class, eventSkip, resource.Result{Outcome: resource.OutcomeNoop, DN: dn}, started)
			}
			if err != nil {
				r.metrics.Failed(class, failedExecute)
				return resource.Result{}, errors.Wrap(err, errDelete)
			}
			log.Info("Deleted managed object")
		}
		return r.finish(ctx, m, class, eventDelete, resource.Result{Changed: true, Outcome: resource.OutcomeDeleted, DN: dn}, started)

	case d.IsNoop():
		res := resource.Result{Outcome: resource.OutcomeNoop, DN: dn, Attributes: diff.Merge(existing, d)}
		return r.finish(ctx, m, class, eventSkip, res, started)
	}

	if !r.dryRun {
		if err := r.client.Write(ctx, dn, class, d.ToSet); err != nil {
			r.metrics.Failed(class, failedExecute)
			return resource.Result{}, errors.Wrap(err, errApply)
		}
		log.Info("Applied managed object", "created", d.Change == diff.ChangeCreate, "attributes", d.ToSet.Keys())
	}
	res := resource.Result{Changed: true, Outcome: resource.OutcomeApplied, DN: dn, Attributes: diff.Merge(existing, d)}
	return r.finish(ctx, m, class, eventApply, res, started)
}

func (r *Reconciler) finish(ctx context.Context, m *stageMachine, class, event string, res resource.Result, started time.Time) (resource.Result, error) {
	if err := m.advance(ctx, event); err != nil {
		return resource.Result{}, err
	}
	if err := m.advance(ctx, eventFinish); err != nil {
		return resource.Result{}, err
	}
	r.metrics.Reconciled(class, res.Outcome, time.Since(started))
	return res, nil
}
