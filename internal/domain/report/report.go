// Package report holds the daily sales report entity and its codec.
package report

import (
	"encoding/json"
	"fmt"
	"time"
)

// ApprovalStatus is the recorded decision on a report
type ApprovalStatus string

const (
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
)

// IsValid returns true if the status is one of the defined constants
func (s ApprovalStatus) IsValid() bool {
	return s == StatusApproved || s == StatusRejected
}

// Approval records an approver's decision. Once set it is never mutated;
// an edit replaces the whole report document instead.
type Approval struct {
	Status           ApprovalStatus `json:"status"`
	ActorID          string         `json:"actorId"`
	ActorDisplayName string         `json:"actorDisplayName"`
	DecidedAt        time.Time      `json:"decidedAt"`
}

// Report is a single day's sales report for a tenant (Discord guild).
// Exactly one live document exists per (tenant, date); the submitter is
// recorded in the document, not in the storage key.
type Report struct {
	TenantID             string     `json:"tenantId"`
	Date                 string     `json:"date"` // YYYY-MM-DD, tenant-local
	SubmitterID          string     `json:"submitterId"`
	SubmitterDisplayName string     `json:"submitterDisplayName"`
	TotalAmount          int64      `json:"totalAmount"`
	CashAmount           int64      `json:"cashAmount"`
	CardAmount           int64      `json:"cardAmount"`
	ExpenseAmount        int64      `json:"expenseAmount"`
	Remainder            int64      `json:"remainder"`
	SubmittedAt          time.Time  `json:"submittedAt"`
	MessageRef           string     `json:"presentationMessageRef,omitempty"`
	Approval             *Approval  `json:"approval,omitempty"`
	EditedAt             *time.Time `json:"editedAt,omitempty"`
	EditorID             string     `json:"editorId,omitempty"`
}

// Decided reports whether an approval decision has been recorded
func (r *Report) Decided() bool {
	return r.Approval != nil
}

// DateShort returns the date as M/D for display, e.g. "7/7"
func (r *Report) DateShort() string {
	t, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return r.Date
	}
	return fmt.Sprintf("%d/%d", int(t.Month()), t.Day())
}

// Encode serializes the report as indented JSON, the format stored in the
// blob store.
func (r *Report) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return data, nil
}

// Decode deserializes a stored report document. A missing approval block is
// valid and leaves Approval nil.
func Decode(data []byte) (*Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &r, nil
}
