package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
)

// Recalculation states
const (
	RecalcStateClean       = "clean"
	RecalcStateRecomputing = "recomputing"
	RecalcStateFailed      = "failed"
)

// RecalcFSM guards a project's profit recalculation sequence. A rebuild
// must pass through recomputing before the ledger is considered clean
// again, and two rebuilds of the same project cannot overlap.
type RecalcFSM struct {
	projectID uint
	fsm       *fsm.FSM
}

// NewRecalcFSM creates a recalculation state machine for a project
func NewRecalcFSM(projectID uint) *RecalcFSM {
	r := &RecalcFSM{
		projectID: projectID,
	}

	r.fsm = fsm.NewFSM(
		RecalcStateClean,
		fsm.Events{
			// clean/failed → recomputing
			{Name: "start", Src: []string{RecalcStateClean, RecalcStateFailed}, Dst: RecalcStateRecomputing},

			// recomputing → clean
			{Name: "finish", Src: []string{RecalcStateRecomputing}, Dst: RecalcStateClean},

			// recomputing → failed
			{Name: "fail", Src: []string{RecalcStateRecomputing}, Dst: RecalcStateFailed},
		},
		fsm.Callbacks{},
	)

	return r
}

// Current returns the current recalculation state
func (r *RecalcFSM) Current() string {
	return r.fsm.Current()
}

// Start transitions into the recomputing state
func (r *RecalcFSM) Start(ctx context.Context) error {
	if err := r.fsm.Event(ctx, "start"); err != nil {
		return fmt.Errorf("recalculation already in progress for project %d: %w", r.projectID, err)
	}
	return nil
}

// Finish marks the rebuild as complete
func (r *RecalcFSM) Finish(ctx context.Context) error {
	if err := r.fsm.Event(ctx, "finish"); err != nil {
		return fmt.Errorf("failed to finish recalculation for project %d: %w", r.projectID, err)
	}
	return nil
}

// Fail marks the rebuild as failed, allowing a later retry
func (r *RecalcFSM) Fail(ctx context.Context) error {
	if err := r.fsm.Event(ctx, "fail"); err != nil {
		return fmt.Errorf("failed to mark recalculation failed for project %d: %w", r.projectID, err)
	}
	return nil
}
