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

/*
Package managed reconciles a single managed object against a fabric
controller.

# Stages

Every call to Reconcile runs four stages, strictly in order:

1. Path: the segment chain is validated and the target DN is built.
2. Fetch: the target object is read from the controller. Absence is a
   result, not an error.
3. Diff: the desired and existing states are compared.
4. Execute: at most one mutating request is issued, either a write of the
   attributes that differ or a delete.

A failed stage aborts the reconciliation. Nothing is rolled back, and nothing
is retried; a ConflictError tells the caller that retrying the whole
reconciliation may succeed.

# Usage

	r := managed.NewReconciler(client,
		managed.WithLogger(log),
		managed.WithMetrics(managed.NewPrometheusMetrics()),
	)

	res, err := r.Reconcile(ctx, managed.Request{
		Segments: segments,
		Desired:  resource.Desired{Class: "mgmtRsOoBProv", Attributes: attrs},
		State:    resource.StatePresent,
	})

A Reconciler holds no state between calls, so it may be shared.
*/
package managed
