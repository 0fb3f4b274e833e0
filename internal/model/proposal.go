package model

import (
	"errors"
	"strings"
	"time"
)

// Priority is the task priority level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the allowed priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ParsePriority normalizes a raw priority string. The second return value
// is false when the input is not a recognized level.
func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if p.Valid() {
		return p, true
	}
	return "", false
}

// ProposalKind discriminates the payload held by a PendingProposal.
type ProposalKind string

const (
	ProposalKindTask ProposalKind = "task"
	ProposalKindPlan ProposalKind = "plan"
)

// Proposal validation errors.
var (
	ErrEmptyProposalTitle  = errors.New("proposal title is empty")
	ErrUnparseableWindow   = errors.New("proposal start or end is not a valid timestamp")
	ErrInvalidWindowOrder  = errors.New("proposal end is not after start")
	ErrInvalidPriority     = errors.New("proposal priority is not low, medium, or high")
	ErrEmptyPlan           = errors.New("plan has no tasks")
	ErrNoValidPlanTasks    = errors.New("plan has no valid tasks")
	ErrMissingProposalBody = errors.New("pending proposal has no payload for its kind")
)

// TaskProposalPayload is a candidate task awaiting user confirmation.
// Start and End are RFC3339 strings: the payload is revalidated at
// confirmation time and may have gone stale or arrived malformed from
// the generative assist.
type TaskProposalPayload struct {
	Title          string
	SuggestedStart string
	SuggestedEnd   string
	Priority       Priority
}

// Window parses and validates the proposal's time window.
func (t TaskProposalPayload) Window() (start, end time.Time, err error) {
	if strings.TrimSpace(t.Title) == "" {
		return time.Time{}, time.Time{}, ErrEmptyProposalTitle
	}
	start, err = time.Parse(time.RFC3339, t.SuggestedStart)
	if err != nil {
		return time.Time{}, time.Time{}, ErrUnparseableWindow
	}
	end, err = time.Parse(time.RFC3339, t.SuggestedEnd)
	if err != nil {
		return time.Time{}, time.Time{}, ErrUnparseableWindow
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, ErrInvalidWindowOrder
	}
	if !t.Priority.Valid() {
		return time.Time{}, time.Time{}, ErrInvalidPriority
	}
	return start, end, nil
}

// Validate reports whether the payload can be materialized as-is.
func (t TaskProposalPayload) Validate() error {
	_, _, err := t.Window()
	return err
}

// PlanProposalPayload is an ordered set of candidate tasks proposed together.
type PlanProposalPayload struct {
	PlanTitle string
	Tasks     []TaskProposalPayload
}

// Validate checks the plan shape. Individual tasks are validated separately
// at materialization time so a single bad sub-task does not void the plan.
func (p PlanProposalPayload) Validate() error {
	if strings.TrimSpace(p.PlanTitle) == "" {
		return ErrEmptyProposalTitle
	}
	if len(p.Tasks) == 0 {
		return ErrEmptyPlan
	}
	return nil
}

// PendingProposal is the single not-yet-confirmed proposal a user may hold.
// It is replaced wholesale, never merged, except by the explicit
// date/time-adjustment transition.
type PendingProposal struct {
	Kind      ProposalKind
	Task      *TaskProposalPayload
	Plan      *PlanProposalPayload
	CreatedAt time.Time
}

// Payloads returns the proposal's task payloads in order, regardless of kind.
func (p *PendingProposal) Payloads() []TaskProposalPayload {
	switch p.Kind {
	case ProposalKindTask:
		if p.Task != nil {
			return []TaskProposalPayload{*p.Task}
		}
	case ProposalKindPlan:
		if p.Plan != nil {
			return p.Plan.Tasks
		}
	}
	return nil
}
