package port

import (
	"context"

	"github.com/svml/uriage-bot/internal/domain/report"
)

// RenderMode selects between posting a new message and updating an existing one
type RenderMode string

const (
	RenderNew    RenderMode = "new"
	RenderUpdate RenderMode = "update"
)

// Affordance is a user-facing action control attached to a rendered report
type Affordance string

const (
	AffordanceApprove Affordance = "approve"
	AffordanceReject  Affordance = "reject"
	AffordanceEdit    Affordance = "edit"
)

// RenderRequest describes how a report should appear in the channel
type RenderRequest struct {
	Mode       RenderMode
	ChannelID  string
	MessageRef string // required for RenderUpdate
	Report     *report.Report
	Edited     bool // true when the render follows an edit

	// Affordances lists the enabled controls; disabled controls stay
	// visible but inert.
	Affordances []Affordance
}

// ReportPresenter renders reports into channel messages. The core never
// touches the chat transport directly.
type ReportPresenter interface {
	// Present renders the request and returns the resulting message reference
	Present(ctx context.Context, req RenderRequest) (string, error)
}
