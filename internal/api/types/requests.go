package types

import "time"

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Role      string `json:"role" validate:"required"`
	Barangay  string `json:"barangay"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SubmitProposalRequest struct {
	Title              string  `json:"title" validate:"required"`
	Description        string  `json:"description"`
	Barangay           string  `json:"barangay" validate:"required"`
	Category           string  `json:"project_category" validate:"required,oneof=Flood_Control Road_Infrastructure Water_Supply Health_Facility Education_Facility Community_Center Market Other"`
	ProblemDescription string  `json:"problem_description"`
	ProposedSolution   string  `json:"proposed_solution"`
	EstimatedCost      float64 `json:"estimated_cost" validate:"required,gt=0"`
}

type ReviewRequest struct {
	Comments string `json:"comments"`
}

type AllocateBudgetRequest struct {
	BudgetAmount   float64 `json:"approved_budget_amount" validate:"required,gt=0"`
	FundSourceCode string  `json:"fund_source_code" validate:"required"`
}

type PublishInvitationRequest struct {
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	Requirements         string     `json:"requirements"`
	BidOpeningDate       time.Time  `json:"bid_opening_date" validate:"required"`
	BidClosingDate       time.Time  `json:"bid_closing_date" validate:"required"`
	PreBidConferenceDate *time.Time `json:"pre_bid_conference_date"`
}

type SubmitBidRequest struct {
	ContractorID string    `json:"contractor_id" validate:"required,uuid4"`
	BidAmount    float64   `json:"bid_amount" validate:"required,gt=0"`
	BidDate      time.Time `json:"bid_date"`
}

type AwardContractRequest struct {
	BidID string `json:"bid_id" validate:"required,uuid4"`
}

type RecordDisbursementRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type SubmitUpdateRequest struct {
	PercentageComplete int    `json:"percentage_complete" validate:"gte=0,lte=100"`
	ReportText         string `json:"report_text" validate:"required"`
}

type CreateMilestoneRequest struct {
	Title              string     `json:"title" validate:"required"`
	Description        string     `json:"description"`
	PercentageComplete int        `json:"percentage_complete" validate:"gte=0,lte=100"`
	ScheduledStartDate *time.Time `json:"scheduled_start_date"`
	ScheduledEndDate   *time.Time `json:"scheduled_end_date"`
}

type MilestoneProgressRequest struct {
	PercentageComplete int `json:"percentage_complete" validate:"gte=0,lte=100"`
}
