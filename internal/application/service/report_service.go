// Package service orchestrates the report lifecycle against the repository
// and presentation ports.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/svml/uriage-bot/internal/application/port"
	"github.com/svml/uriage-bot/internal/domain/lifecycle"
	"github.com/svml/uriage-bot/internal/domain/report"
	"github.com/svml/uriage-bot/internal/domain/tenant"
	"github.com/svml/uriage-bot/internal/repository"
)

// SubmitInput carries a new report submission from the modal form
type SubmitInput struct {
	TenantID  string
	ChannelID string
	Actor     tenant.Actor
	Fields    map[string]string
}

// EditInput carries an edited submission for an existing report
type EditInput struct {
	TenantID  string
	ChannelID string
	Actor     tenant.Actor
	Fields    map[string]string

	// OriginalDate is the YYYY-MM-DD date the report was filed under before
	// the edit; it addresses the document to supersede or relocate.
	OriginalDate string

	// MessageRef locates the rendered message to update in place
	MessageRef string
}

// DecideInput carries an approve/reject decision
type DecideInput struct {
	TenantID   string
	ChannelID  string
	Actor      tenant.Actor
	Date       string // YYYY-MM-DD
	Verdict    report.ApprovalStatus
	MessageRef string
}

// ReportService drives the submit, edit and decide transitions
type ReportService struct {
	reports    *repository.ReportRepository
	settings   *repository.SettingsRepository
	presenter  port.ReportPresenter
	defaultLoc *time.Location
	logger     *zap.Logger
	now        func() time.Time
}

// Option configures the report service
type Option func(*ReportService)

// WithClock overrides the time source, used by tests
func WithClock(now func() time.Time) Option {
	return func(s *ReportService) {
		s.now = now
	}
}

// NewReportService creates a new ReportService
func NewReportService(
	reports *repository.ReportRepository,
	settings *repository.SettingsRepository,
	presenter port.ReportPresenter,
	defaultLoc *time.Location,
	logger *zap.Logger,
	opts ...Option,
) *ReportService {
	s := &ReportService{
		reports:    reports,
		settings:   settings,
		presenter:  presenter,
		defaultLoc: defaultLoc,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates the modal fields, persists the report (backing up any
// prior submission for the same date) and posts the report message with
// approve, reject and edit controls.
func (s *ReportService) Submit(ctx context.Context, in SubmitInput) (*report.Report, error) {
	loc, err := s.tenantLocation(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}

	rep, err := report.ParseSubmission(in.Fields, in.TenantID, report.Submitter{
		ID:          in.Actor.ID,
		DisplayName: in.Actor.DisplayName,
	}, s.now(), loc)
	if err != nil {
		return nil, err
	}

	if err := s.reports.Save(ctx, rep); err != nil {
		return nil, err
	}

	ref, err := s.presenter.Present(ctx, port.RenderRequest{
		Mode:        port.RenderNew,
		ChannelID:   in.ChannelID,
		Report:      rep,
		Affordances: []port.Affordance{port.AffordanceApprove, port.AffordanceReject, port.AffordanceEdit},
	})
	if err != nil {
		// The document is already persisted; a missing message is
		// correctable by a later edit or manual resync.
		s.logger.Error("Report persisted but message render failed",
			zap.String("tenant_id", in.TenantID),
			zap.String("date", rep.Date),
			zap.Error(err))
		return nil, err
	}

	rep.MessageRef = ref
	if err := s.reports.Update(ctx, rep); err != nil {
		return nil, err
	}

	s.logger.Info("Report submitted",
		zap.String("tenant_id", in.TenantID),
		zap.String("date", rep.Date),
		zap.String("submitter_id", rep.SubmitterID))
	return rep, nil
}

// RequestEdit resolves the report behind a rendered message so the form can
// be pre-filled. The displayed M/D date is re-parsed to derive the key.
func (s *ReportService) RequestEdit(ctx context.Context, tenantID, displayedDate string) (*report.Report, error) {
	loc, err := s.tenantLocation(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	date, err := report.ParseReportDate(displayedDate, s.now(), loc)
	if err != nil {
		return nil, err
	}

	rep, err := s.reports.Load(ctx, tenantID, date)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, report.ErrStaleReport
	}
	return rep, nil
}

// SubmitEdit validates the edited fields and supersedes the original
// report. A changed date relocates the document (write new key, then delete
// old). The prior decision, if any, is cleared: an edited report awaits
// re-approval. The existing message is re-rendered in place.
func (s *ReportService) SubmitEdit(ctx context.Context, in EditInput) (*report.Report, error) {
	loc, err := s.tenantLocation(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}

	edited, err := report.ParseSubmission(in.Fields, in.TenantID, report.Submitter{
		ID:          in.Actor.ID,
		DisplayName: in.Actor.DisplayName,
	}, s.now(), loc)
	if err != nil {
		return nil, err
	}

	original, err := s.reports.Load(ctx, in.TenantID, in.OriginalDate)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, report.ErrStaleReport
	}

	machine, err := lifecycle.NewReportMachine(stateOf(original))
	if err != nil {
		return nil, err
	}
	if err := machine.Fire(lifecycle.TriggerEdit); err != nil {
		return nil, err
	}

	editedAt := edited.SubmittedAt
	edited.SubmitterID = original.SubmitterID
	edited.SubmitterDisplayName = original.SubmitterDisplayName
	edited.MessageRef = in.MessageRef
	if edited.MessageRef == "" {
		edited.MessageRef = original.MessageRef
	}
	edited.EditedAt = &editedAt
	edited.EditorID = in.Actor.ID

	if err := s.reports.Relocate(ctx, in.OriginalDate, edited); err != nil {
		return nil, err
	}

	if _, err := s.presenter.Present(ctx, port.RenderRequest{
		Mode:        port.RenderUpdate,
		ChannelID:   in.ChannelID,
		MessageRef:  edited.MessageRef,
		Report:      edited,
		Edited:      true,
		Affordances: []port.Affordance{port.AffordanceApprove, port.AffordanceReject, port.AffordanceEdit},
	}); err != nil {
		s.logger.Error("Edited report persisted but message update failed",
			zap.String("tenant_id", in.TenantID),
			zap.String("date", edited.Date),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Report edited",
		zap.String("tenant_id", in.TenantID),
		zap.String("original_date", in.OriginalDate),
		zap.String("date", edited.Date),
		zap.String("editor_id", in.Actor.ID))
	return edited, nil
}

// Decide records an approval or rejection. The permission check runs before
// any read or write; an already-decided report is not mutated again. On
// success the approve/reject controls are disabled while edit stays active.
func (s *ReportService) Decide(ctx context.Context, in DecideInput) (*report.Report, error) {
	if !in.Verdict.IsValid() {
		return nil, fmt.Errorf("unknown verdict %q", in.Verdict)
	}

	settings, err := s.settings.Load(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}
	if !tenant.CanDecide(in.Actor, settings) {
		return nil, report.ErrForbidden
	}

	rep, err := s.reports.Load(ctx, in.TenantID, in.Date)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, report.ErrNotFound
	}

	machine, err := lifecycle.NewReportMachine(stateOf(rep))
	if err != nil {
		return nil, err
	}
	trigger := lifecycle.TriggerApprove
	if in.Verdict == report.StatusRejected {
		trigger = lifecycle.TriggerReject
	}
	if err := machine.Fire(trigger); err != nil {
		return nil, report.ErrAlreadyDecided
	}

	rep.Approval = &report.Approval{
		Status:           in.Verdict,
		ActorID:          in.Actor.ID,
		ActorDisplayName: in.Actor.DisplayName,
		DecidedAt:        s.now(),
	}

	if err := s.reports.Save(ctx, rep); err != nil {
		return nil, err
	}

	messageRef := in.MessageRef
	if messageRef == "" {
		messageRef = rep.MessageRef
	}
	if _, err := s.presenter.Present(ctx, port.RenderRequest{
		Mode:        port.RenderUpdate,
		ChannelID:   in.ChannelID,
		MessageRef:  messageRef,
		Report:      rep,
		Affordances: []port.Affordance{port.AffordanceEdit},
	}); err != nil {
		s.logger.Error("Decision persisted but message update failed",
			zap.String("tenant_id", in.TenantID),
			zap.String("date", in.Date),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Report decided",
		zap.String("tenant_id", in.TenantID),
		zap.String("date", in.Date),
		zap.String("verdict", string(in.Verdict)),
		zap.String("actor_id", in.Actor.ID))
	return rep, nil
}

// tenantLocation resolves the tenant's timezone for date parsing
func (s *ReportService) tenantLocation(ctx context.Context, tenantID string) (*time.Location, error) {
	settings, err := s.settings.Load(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return settings.Location(s.defaultLoc), nil
}

// stateOf maps a persisted report to its lifecycle state
func stateOf(rep *report.Report) lifecycle.State {
	if rep.Approval == nil {
		return lifecycle.StateSubmitted
	}
	if rep.Approval.Status == report.StatusRejected {
		return lifecycle.StateRejected
	}
	return lifecycle.StateApproved
}
