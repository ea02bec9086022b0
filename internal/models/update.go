package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectUpdate is a progress report filed against a project. It is created
// pending and transitions once, pending to approved; it never reverts.
type ProjectUpdate struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProjectID          uuid.UUID      `gorm:"type:uuid;index;not null" json:"project_id"`
	SubmittedBy        uuid.UUID      `gorm:"type:uuid;not null" json:"submitted_by"`
	PercentageComplete int            `gorm:"not null" json:"percentage_complete" validate:"gte=0,lte=100"`
	ReportText         string         `gorm:"type:text;not null" json:"report_text" validate:"required"`
	IsPendingApproval  bool           `gorm:"not null;default:true;index" json:"is_pending_approval"`
	IsApproved         bool           `gorm:"not null;default:false" json:"is_approved"`
	ApprovedBy         *uuid.UUID     `gorm:"type:uuid" json:"approved_by"`
	ApprovedAt         *time.Time     `json:"approved_at"`
	SubmittedAt        time.Time      `gorm:"not null" json:"submitted_at"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}
