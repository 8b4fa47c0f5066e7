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

	"github.com/looplab/fsm"

	"github.com/edudppaz/ansible-aci/pkg/errors"
	"github.com/edudppaz/ansible-aci/pkg/logging"
)

// Stages of a reconciliation.
const (
	StageStart     = "start"
	StagePathBuilt = "path_built"
	StageFetched   = "fetched"
	StageDiffed    = "diffed"
	StageApplied   = "applied"
	StageDeleted   = "deleted"
	StageNoop      = "noop"
	StageDone      = "done"
)

// Events that move a reconciliation between stages.
const (
	eventBuild  = "build"
	eventFetch  = "fetch"
	eventDiff   = "diff"
	eventApply  = "apply"
	eventDelete = "delete"
	eventSkip   = "skip"
	eventFinish = "finish"
)

const errTransition = "cannot advance reconciliation"

// A stageMachine tracks the progress of one reconciliation. There are no
// backward transitions; a machine is used once and discarded.
type stageMachine struct {
	fsm *fsm.FSM
}

func newStageMachine(log logging.Logger) *stageMachine {
	return &stageMachine{fsm: fsm.NewFSM(
		StageStart,
		fsm.Events{
			{Name: eventBuild, Src: []string{StageStart}, Dst: StagePathBuilt},
			{Name: eventFetch, Src: []string{StagePathBuilt}, Dst: StageFetched},
			{Name: eventDiff, Src: []string{StageFetched}, Dst: StageDiffed},
			{Name: eventApply, Src: []string{StageDiffed}, Dst: StageApplied},
			{Name: eventDelete, Src: []string{StageDiffed}, Dst: StageDeleted},
			{Name: eventSkip, Src: []string{StageFetched, StageDiffed}, Dst: StageNoop},
			{Name: eventFinish, Src: []string{StageApplied, StageDeleted, StageNoop}, Dst: StageDone},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				log.Debug("Entered stage", "stage", e.Dst, "from", e.Src)
			},
		},
	)}
}

func (m *stageMachine) advance(ctx context.Context, event string) error {
	return errors.Wrap(m.fsm.Event(ctx, event), errTransition)
}

func (m *stageMachine) current() string {
	return m.fsm.Current()
}
