package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/capitrack/engine/internal/models"
	"github.com/capitrack/engine/internal/repository"
	"github.com/capitrack/engine/internal/workflow"
	appErr "github.com/capitrack/engine/pkg/errors"
	"github.com/capitrack/engine/pkg/logger"
)

// TypeHistoryAppend is the asynq task type used to retry a failed audit
// append. The payload is the JSON-encoded history entry, id included, so the
// retried insert is idempotent.
const TypeHistoryAppend = "history:append"

// Actor identifies the authenticated initiator of a workflow operation.
type Actor struct {
	ID   uuid.UUID
	Role models.Role
}

// WorkflowService is the single authority for project status changes and the
// role-gated mutations around them. Every successful transition produces
// exactly one audit entry.
type WorkflowService interface {
	SubmitProposal(ctx context.Context, actor Actor, input *SubmitProposalInput) (*models.Project, error)
	Prioritize(ctx context.Context, projectID uuid.UUID, actor Actor, comments string) (*models.Project, error)
	Reject(ctx context.Context, projectID uuid.UUID, actor Actor, comments string) (*models.Project, error)
	Cancel(ctx context.Context, projectID uuid.UUID, actor Actor, reason string) (*models.Project, error)
	AllocateBudget(ctx context.Context, projectID uuid.UUID, actor Actor, input *AllocateBudgetInput) (*models.Project, error)
	PublishInvitation(ctx context.Context, projectID uuid.UUID, actor Actor, input *PublishInvitationInput) (*models.Project, error)
	SubmitBid(ctx context.Context, projectID uuid.UUID, actor Actor, input *SubmitBidInput) (*models.Bid, error)
	AwardContract(ctx context.Context, projectID uuid.UUID, actor Actor, bidID uuid.UUID) (*models.Project, error)
	RecordDisbursement(ctx context.Context, projectID uuid.UUID, actor Actor, amount float64) (*models.Project, error)
	SubmitUpdate(ctx context.Context, projectID uuid.UUID, actor Actor, input *SubmitUpdateInput) (*models.ProjectUpdate, error)
	ApproveUpdate(ctx context.Context, updateID uuid.UUID, actor Actor) (*models.ProjectUpdate, error)
	CreateMilestone(ctx context.Context, projectID uuid.UUID, actor Actor, input *CreateMilestoneInput) (*models.Milestone, error)
	UpdateMilestoneProgress(ctx context.Context, milestoneID uuid.UUID, actor Actor, percent int) (*models.Milestone, error)
	CompleteProject(ctx context.Context, projectID uuid.UUID, actor Actor) (*models.Project, error)
}

type SubmitProposalInput struct {
	Title              string
	Description        string
	Barangay           string
	Category           models.ProjectCategory
	ProblemDescription string
	ProposedSolution   string
	EstimatedCost      float64
}

type AllocateBudgetInput struct {
	BudgetAmount   float64
	FundSourceCode string
}

type PublishInvitationInput struct {
	Title                string
	Description          string
	Requirements         string
	BidOpeningDate       time.Time
	BidClosingDate       time.Time
	PreBidConferenceDate *time.Time
}

type SubmitBidInput struct {
	ContractorID uuid.UUID
	BidAmount    float64
	BidDate      time.Time
}

type SubmitUpdateInput struct {
	PercentageComplete int
	ReportText         string
}

type CreateMilestoneInput struct {
	Title              string
	Description        string
	PercentageComplete int
	ScheduledStartDate *time.Time
	ScheduledEndDate   *time.Time
}

type workflowService struct {
	projects    repository.ProjectRepository
	history     repository.HistoryRepository
	bids        repository.BidRepository
	invitations repository.InvitationRepository
	updates     repository.UpdateRepository
	milestones  repository.MilestoneRepository
	policy      workflow.CompletionPolicy
	asynqClient *asynq.Client
}

func NewWorkflowService(
	projects repository.ProjectRepository,
	history repository.HistoryRepository,
	bids repository.BidRepository,
	invitations repository.InvitationRepository,
	updates repository.UpdateRepository,
	milestones repository.MilestoneRepository,
	policy workflow.CompletionPolicy,
	asynqClient *asynq.Client,
) WorkflowService {
	return &workflowService{
		projects:    projects,
		history:     history,
		bids:        bids,
		invitations: invitations,
		updates:     updates,
		milestones:  milestones,
		policy:      policy,
		asynqClient: asynqClient,
	}
}

var _ WorkflowService = (*workflowService)(nil)

// authorize runs the role gate before anything else touches storage. An
// unauthorized caller learns nothing about the project's current state.
func (s *workflowService) authorize(actor Actor, op workflow.Operation) error {
	if !workflow.CanPerform(actor.Role, op) {
		return appErr.Newf(appErr.CodeForbidden, "role %s may not perform %s", actor.Role, op)
	}
	return nil
}

func (s *workflowService) loadProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	var p models.Project
	if err := s.projects.GetByID(ctx, projectID, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// recordTransition appends the audit entry for an already-applied project
// write, in the mandated update-then-append order. A failed append never
// rolls the project write back: the entry is handed to the worker queue for
// an idempotent retry instead.
func (s *workflowService) recordTransition(ctx context.Context, p *models.Project, actor Actor, action models.ActionType, oldStatus models.ProjectStatus, details map[string]any) error {
	payload, err := json.Marshal(details)
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "marshal change details failed")
	}

	entry := &models.ProjectHistory{
		ID:            uuid.New(),
		ProjectID:     p.ID,
		ChangedBy:     actor.ID,
		ActionType:    action,
		OldStatus:     oldStatus,
		NewStatus:     p.Status,
		ChangeDetails: datatypes.JSON(payload),
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.history.Append(ctx, entry); err == nil {
		return nil
	} else if s.asynqClient == nil {
		logger.L().Error("history append failed with no retry queue",
			zap.String("project_id", p.ID.String()), zap.String("action", string(action)), zap.Error(err))
		return appErr.Wrap(err, appErr.CodeUnavailable, "history append failed").WithMeta("transition_applied", true)
	} else {
		logger.L().Warn("history append failed, queueing retry",
			zap.String("project_id", p.ID.String()), zap.String("action", string(action)), zap.Error(err))
	}

	body, err := json.Marshal(entry)
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "marshal history entry failed")
	}
	task := asynq.NewTask(TypeHistoryAppend, body)
	if _, err := s.asynqClient.EnqueueContext(ctx, task, asynq.MaxRetry(10)); err != nil {
		logger.L().Error("enqueue history retry failed",
			zap.String("project_id", p.ID.String()), zap.String("action", string(action)), zap.Error(err))
		return appErr.Wrap(err, appErr.CodeUnavailable, "history append failed").WithMeta("transition_applied", true)
	}
	return nil
}

// transition re-checks the status graph, writes the project, then records the
// audit entry. mutate runs against the freshly loaded row.
func (s *workflowService) transition(ctx context.Context, p *models.Project, actor Actor, to models.ProjectStatus, action models.ActionType, details map[string]any, mutate func(*models.Project)) (*models.Project, error) {
	old := p.Status
	if to != old && !workflow.CanTransition(old, to) {
		return nil, appErr.Newf(appErr.CodeFailedPrecondition, "no transition from %s to %s", old, to)
	}

	mutate(p)
	p.Status = to
	if err := s.projects.Update(ctx, p); err != nil {
		return nil, err
	}

	logger.L().Info("project transition applied",
		zap.String("project_id", p.ID.String()),
		zap.String("actor_id", actor.ID.String()),
		zap.String("action", string(action)),
		zap.String("old_status", string(old)),
		zap.String("new_status", string(to)))

	if err := s.recordTransition(ctx, p, actor, action, old, details); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *workflowService) SubmitProposal(ctx context.Context, actor Actor, input *SubmitProposalInput) (*models.Project, error) {
	if err := s.authorize(actor, workflow.OpSubmitProposal); err != nil {
		return nil, err
	}
	if input.EstimatedCost <= 0 {
		return nil, appErr.New(appErr.CodeFailedPrecondition, "estimated cost must be greater than 0")
	}
	if input.Title == "" || input.Barangay == "" {
		return nil, appErr.New(appErr.CodeFailedPrecondition, "title and barangay are required")
	}

	p := &models.Project{
		Title:              input.Title,
		Description:        input.Description,
		Barangay:           input.Barangay,
		Category:           input.Category,
		ProblemDescription: input.ProblemDescription,
		ProposedSolution:   input.ProposedSolution,
		EstimatedCost:      input.EstimatedCost,
		Status:             models.StatusPendingReview,
		CreatedBy:          actor.ID,
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}

	logger.L().Info("proposal submitted",
		zap.String("project_id", p.ID.String()), zap.String("actor_id", actor.ID.String()))

	details := map[string]any{
		"estimated_cost":   input.EstimatedCost,
		"barangay":         input.Barangay,
		"project_category": input.Category,
	}
	if err := s.recordTransition(ctx, p, actor, models.ActionProposalSubmitted, "", details); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *workflowService) Prioritize(ctx context.Context, projectID uuid.UUID, actor Actor, comments string) (*models.Project, error) {
	if err := s.authorize(actor, workflow.OpPrioritize); err != nil {
		return nil, err
	}
	p, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p.Status != models.StatusPendingReview {
		return nil, appErr.Newf(appErr.CodeFailedPrecondition, "project is %s, expected %s", p.Status, models.StatusPendingReview)
	}
	return s.transition(ctx, p, actor, models.StatusPrioritized, models.ActionPrioritized,
		map[string]any{"comments": comments}, func(*models.Project) {})
}

func (s *workflowService) Reject(ctx context.Context, projectID uuid.UUID, actor Actor, comments string) (*models.Project, error) {
	if err := s.authorize(actor, workflow.OpReject); err != nil {
		return nil, err
	}
	p, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	// Rejecting an already-prioritized project reverses the council's own
	// decision; anything funded or later cannot be rejected.
	if p.Status != models.StatusPendingReview && p.Status != models.StatusPrioritized {
		return nil, appErr.Newf(appErr.CodeFailedPrecondition, "project is %s and can no longer be rejected", p.Status)
	}
	return s.transition(ctx, p, actor, models.StatusRejected, models.ActionRejected,
		map[string]any{"comments": comments}, func(*models.Project) {})
}

func (s *workflowService) Cancel(ctx context.Context, projectID uuid.UUID, actor Actor, reason string) (*models.Project, error) {
	if err := s.authorize(actor, workflow.OpCancel); err != nil {
		return nil, err
	}
	p, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p.Status != models.StatusPendingReview && p.Status != models.StatusPrioritized {
		return nil, appErr.Newf(appErr.CodeFailedPrecondition, "project is %s and can no longer be cancelled", p.Status)
	}
	// A planner may only withdraw their own proposal.
	if actor.Role == models.RolePlanner && p.CreatedBy != actor.ID {
		return nil, appErr.New(appErr.CodeFailedPrecondition, "only the proposing planner may withdraw this project")
	}
	return s.transition(ctx, p, actor, models.StatusCancelled, models.ActionCancelled,
		map[string]any{"reason": reason}, func(*models.Project) {})
}

func (s *workflowService) AllocateBudget(ctx context.Context, projectID uuid.UUID, actor Actor, input *AllocateBudgetInput) (*models.Project, error) {
	if err := s.authorize(actor, workflow.OpAllocateBudget); err != nil {
		return nil, err
	}
	if input.BudgetAmount <= 0 {
		return nil, appErr.New(appErr.CodeFailedPrecondition, "budget amount must be greater than 0")
	}
	if input.FundSourceCode == "" {
		return nil, appErr.New(appErr.CodeFailedPrecondition, "fund source code is required")
	}
	p, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p.Status != models.StatusPrioritized {
		return nil, appErr.Newf(appErr.CodeFailedPrecondition, "project is %s, expected %s", p.Status, models.StatusPrioritized)
	}
	details := map[string]any{
		"approved_budget_amount": input.BudgetAmount,
		"fund_source_code":       input.FundSourceCode,
	}
	return s.transition(ctx, p, actor, models.StatusFunded, models.ActionBudgetAllocated, details, func(p *models.Project) {
		amount := input.BudgetAmount
		code := input.FundSourceCode
		p.ApprovedBudgetAmount = &amount
		p.FundSourceCode = &code
	})
}

func (s *workflowService) PublishInvitation(ctx context.Context, projectID uuid.UUID, actor Actor, input *PublishInvitationInput) (*models.Project, error) {
	if err := s.authorize(actor, workflow.OpPublishInvitation); err != nil {
		return nil, err
	}
	if input.BidOpeningDate.IsZero() || input.BidClosingDate.IsZero() {
		return nil, appErr.New(appErr.CodeFailedPrecondition, "bid opening and closing dates are required")
	}
	if input.BidClosingDate.Before(input.BidOpeningDate) {
		return nil, appErr.New(appErr.CodeFailedPrecondition, "bid closing date precedes opening date")
	}
	p, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p.Status != models.StatusFunded {
		return nil, appErr.Newf(appErr.CodeFailedPrecondition, "project is %s, expected %s", p.Status, models.StatusFunded)
	}

	title := input.Title
	if title == "" {
		title = p.Title
	}
	inv := &models.BidInvitation{
		ProjectID:            p.ID,
		Title:                title,
		Description:          input.Description,
		Requirements:         input.Requirements,
		BidOpeningDate:       input.BidOpeningDate,
		BidClosingDate:       input.BidClosingDate,
		PreBidConferenceDate: input.PreBidConferenceDate,
		CreatedBy:            actor.ID,
	}
	if err := s.invitations.Create(ctx, inv); err != nil {
		return nil, err
	}

	details := map[string]any{
		"bid_opening_date": input.BidOpeningDate,
		"bid_closing_date": input.BidClosingDate,
	}
	return s.transition(ctx, p, actor, models.StatusOpenForBidding, models.ActionBidInvitationCreated, details, func(*models.Project) {})
}

func (s *workflowService) SubmitBid(ctx context.Context, projectID uuid.UUID, actor Actor, input *SubmitBidInput) (*models.Bid, error) {
	if err := s.authorize(actor, workflow.OpSubmitBid); err != nil {
		return nil, err
	}
	if input.BidAmount <= 0 {
		return nil, appErr.New(appErr.CodeFailedPrecondition, "bid amount must be greater than 0")
	}
	p, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p.Status != models.StatusOpenForBidding {
		return nil, appErr.Newf(appErr.CodeFailedPrecondition, "project is %s, expected %s", p.Status, models.StatusOpenForBidding)
	}

	bidDate := input.BidDate
	if bidDate.IsZero() {
		bidDate = time.Now().UTC()
	}
	b := &models.Bid{
		ProjectID:    p.ID,
		ContractorID: input.ContractorID,
		BidAmount:    input.BidAmount,
		BidDate:      bidDate,
	}
	if err := s.bids.Create(ctx, b); err != nil {
		return nil, err
	}
	logger.L().Info("bid recorded",
		zap.String("project_id", p.ID.String()), zap.String("bid_id", b.ID.String()),
		zap.String("contractor_id", input.ContractorID.String()))
	return b, nil
}

func (s *workflowService) AwardContract(ctx context.Context, projectID uuid.UUID, actor Actor, bidID uuid.UUID) (*models.Project, error) {
	if err := s.authorize(actor, workflow.OpAwardContract); err != nil {
		return nil, err
	}
	p, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p.Status != models.StatusOpenForBidding {
		return nil, appErr.Newf(appErr.CodeFailedPrecondition, "project is %s, expected %s", p.Status, models.StatusOpenForBidding)
	}

	var bid models.Bid
	if err := s.bids.GetByID(ctx, bidID, &bid); err != nil {
		return nil, err
	}
	if bid.ProjectID != p.ID {
		return nil, appErr.New(appErr.CodeFailedPrecondition, "bid does not belong to this project")
	}

	if err := s.bids.MarkWinning(ctx, bid.ID); err != nil {
		return nil, err
	}

	details := map[string]any{
		"contractor_id":   bid.ContractorID,
		"contract_amount": bid.BidAmount,
	}
	return s.transition(ctx, p, actor, models.StatusInProgress, models.ActionContractAwarded, details, func(p *models.Project) {
		amount := bid.BidAmount
		contractor := bid.ContractorID
		now := time.Now().UTC()
		p.ContractAmount = &amount
		p.ContractorID = &contractor
		p.StartDate = &now
	})
}

func (s *workflowService) RecordDisbursement(ctx context.Context, projectID uuid.UUID, actor Actor, amount float64) (*models.Project, error) {
	if err := s.authorize(actor, workflow.OpRecordDisbursement); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, appErr.New(appErr.CodeFailedPrecondition, "disbursement amount must be greater than 0")
	}
	p, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p.Status != models.StatusInProgress {
		return nil, appErr.Newf(appErr.CodeFailedPrecondition, "project is %s, expected %s", p.Status, models.StatusInProgress)
	}
	if amount > p.RemainingBudget() {
		return nil, appErr.Newf(appErr.CodeFailedPrecondition, "disbursement %.2f exceeds remaining budget %.2f", amount, p.RemainingBudget())
	}

	details := map[string]any{
		"amount":          amount,
		"total_disbursed": p.AmountDisbursed + amount,
	}
	return s.transition(ctx, p, actor, models.StatusInProgress, models.ActionDisbursementRecorded, details, func(p *models.Project) {
		p.AmountDisbursed += amount
	})
}

func (s *workflowService) SubmitUpdate(ctx context.Context, projectID uuid.UUID, actor Actor, input *SubmitUpdateInput) (*models.ProjectUpdate, error) {
	if err := s.authorize(actor, workflow.OpSubmitUpdate); err != nil {
		return nil, err
	}
	if input.PercentageComplete < 0 || input.PercentageComplete > 100 {
		return nil, appErr.New(appErr.CodeFailedPrecondition, "percentage complete must be between 0 and 100")
	}
	if input.ReportText == "" {
		return nil, appErr.New(appErr.CodeFailedPrecondition, "report text is required")
	}
	p, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p.Status != models.StatusInProgress {
		return nil, appErr.Newf(appErr.CodeFailedPrecondition, "project is %s, expected %s", p.Status, models.StatusInProgress)
	}

	u := &models.ProjectUpdate{
		ProjectID:          p.ID,
		SubmittedBy:        actor.ID,
		PercentageComplete: input.PercentageComplete,
		ReportText:         input.ReportText,
		IsPendingApproval:  true,
		SubmittedAt:        time.Now().UTC(),
	}
	if err := s.updates.Create(ctx, u); err != nil {
		return nil, err
	}
	logger.L().Info("progress update submitted",
		zap.String("project_id", p.ID.String()), zap.String("update_id", u.ID.String()))
	return u, nil
}

func (s *workflowService) ApproveUpdate(ctx context.Context, updateID uuid.UUID, actor Actor) (*models.ProjectUpdate, error) {
	if err := s.authorize(actor, workflow.OpApproveUpdate); err != nil {
		return nil, err
	}
	var u models.ProjectUpdate
	if err := s.updates.GetByID(ctx, updateID, &u); err != nil {
		return nil, err
	}
	if !u.IsPendingApproval {
		return nil, appErr.New(appErr.CodeFailedPrecondition, "update is not pending approval")
	}

	now := time.Now().UTC()
	approver := actor.ID
	u.IsApproved = true
	u.IsPendingApproval = false
	u.ApprovedBy = &approver
	u.ApprovedAt = &now
	if err := s.updates.Update(ctx, &u); err != nil {
		return nil, err
	}

	p, err := s.loadProject(ctx, u.ProjectID)
	if err != nil {
		return nil, err
	}
	details := map[string]any{
		"update_id":           u.ID,
		"percentage_complete": u.PercentageComplete,
	}
	// Project status is untouched; the entry records the approval itself.
	if err := s.recordTransition(ctx, p, actor, models.ActionUpdateApproved, p.Status, details); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *workflowService) CreateMilestone(ctx context.Context, projectID uuid.UUID, actor Actor, input *CreateMilestoneInput) (*models.Milestone, error) {
	if err := s.authorize(actor, workflow.OpCreateMilestone); err != nil {
		return nil, err
	}
	if input.Title == "" {
		return nil, appErr.New(appErr.CodeFailedPrecondition, "milestone title is required")
	}
	if input.PercentageComplete < 0 || input.PercentageComplete > 100 {
		return nil, appErr.New(appErr.CodeFailedPrecondition, "percentage complete must be between 0 and 100")
	}
	p, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p.Status != models.StatusInProgress {
		return nil, appErr.Newf(appErr.CodeFailedPrecondition, "project is %s, expected %s", p.Status, models.StatusInProgress)
	}

	seq, err := s.milestones.NextSequence(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	m := &models.Milestone{
		ProjectID:          p.ID,
		Title:              input.Title,
		Description:        input.Description,
		PercentageComplete: input.PercentageComplete,
		Status:             models.MilestoneNotStarted,
		OrderSequence:      seq,
		ScheduledStartDate: input.ScheduledStartDate,
		ScheduledEndDate:   input.ScheduledEndDate,
	}
	if input.PercentageComplete >= 100 {
		m.Status = models.MilestoneCompleted
	} else if input.PercentageComplete > 0 {
		m.Status = models.MilestoneInProgress
	}
	if err := s.milestones.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *workflowService) UpdateMilestoneProgress(ctx context.Context, milestoneID uuid.UUID, actor Actor, percent int) (*models.Milestone, error) {
	if err := s.authorize(actor, workflow.OpUpdateMilestone); err != nil {
		return nil, err
	}
	if percent < 0 || percent > 100 {
		return nil, appErr.New(appErr.CodeFailedPrecondition, "percentage complete must be between 0 and 100")
	}
	var m models.Milestone
	if err := s.milestones.GetByID(ctx, milestoneID, &m); err != nil {
		return nil, err
	}

	m.PercentageComplete = percent
	switch {
	case percent >= 100:
		m.Status = models.MilestoneCompleted
	case percent > 0:
		m.Status = models.MilestoneInProgress
	}
	if err := s.milestones.Update(ctx, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *workflowService) CompleteProject(ctx context.Context, projectID uuid.UUID, actor Actor) (*models.Project, error) {
	if err := s.authorize(actor, workflow.OpCompleteProject); err != nil {
		return nil, err
	}
	p, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p.Status != models.StatusInProgress {
		return nil, appErr.Newf(appErr.CodeFailedPrecondition, "project is %s, expected %s", p.Status, models.StatusInProgress)
	}

	ms, err := s.milestones.ListByProject(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanComplete(p, ms); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeFailedPrecondition, "project cannot be completed yet")
	}

	now := time.Now().UTC()
	details := map[string]any{"end_date": now}
	return s.transition(ctx, p, actor, models.StatusCompleted, models.ActionProjectCompleted, details, func(p *models.Project) {
		p.EndDate = &now
	})
}
