// SPDX-License-Identifier: Apache-2.0

// Package lifecycle implements the form status state machine as pure
// functions over [models.FormStatus]. Persistence and validation live
// elsewhere; this package only answers which moves are legal.
//
// The state graph is forward-only:
//
//	draft → completed → final → archived
//
// with two shortcuts: draft may finalize directly, and any non-archived
// state may be archived. Archived is terminal.
package lifecycle

import (
	"fmt"

	"github.com/davistroy/radioforms-sub003/models"
)

// transitions enumerates every legal move. Absence means forbidden.
var transitions = map[models.FormStatus][]models.FormStatus{
	models.StatusDraft:     {models.StatusCompleted, models.StatusFinal, models.StatusArchived},
	models.StatusCompleted: {models.StatusFinal, models.StatusArchived},
	models.StatusFinal:     {models.StatusArchived},
	models.StatusArchived:  {},
}

// TransitionError reports an attempted illegal status move. It carries
// both endpoints so callers can surface exactly what was rejected.
type TransitionError struct {
	From models.FormStatus
	To   models.FormStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal status transition from %q to %q", e.From, e.To)
}

// Allowed reports whether moving from one status to target is legal.
// Unknown statuses are never allowed anywhere.
func Allowed(from, to models.FormStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Validate returns nil when the move is legal and a *TransitionError
// otherwise.
func Validate(from, to models.FormStatus) error {
	if !from.Valid() || !to.Valid() || !Allowed(from, to) {
		return &TransitionError{From: from, To: to}
	}
	return nil
}

// Available returns every status reachable from the given one in a
// single legal transition. Archived yields an empty slice.
func Available(from models.FormStatus) []models.FormStatus {
	next := transitions[from]
	out := make([]models.FormStatus, len(next))
	copy(out, next)
	return out
}

// Editable reports whether the data payload may change in the given
// status. Final and archived forms are read-only for data even though
// the status itself may still move forward.
func Editable(status models.FormStatus) bool {
	return status == models.StatusDraft || status == models.StatusCompleted
}

// RequiresValidation reports whether entering target gates on the
// form's required fields. Completing or finalizing a form asserts its
// payload is whole; archival does not.
func RequiresValidation(target models.FormStatus) bool {
	return target == models.StatusCompleted || target == models.StatusFinal
}

// Terminal reports whether no transition leaves the given status.
func Terminal(status models.FormStatus) bool {
	return len(transitions[status]) == 0
}
