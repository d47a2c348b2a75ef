package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProposalStatus string

const (
	ProposalPending  ProposalStatus = "pending"
	ProposalAccepted ProposalStatus = "accepted"
	ProposalDeclined ProposalStatus = "declined"
)

// ParseResponseStatus only accepts the two answers an accountant can give.
func ParseResponseStatus(s string) (ProposalStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "accepted", "aceita":
		return ProposalAccepted, true
	case "declined", "recusada":
		return ProposalDeclined, true
	}
	return "", false
}

type Proposal struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AccountantID uuid.UUID      `gorm:"type:uuid;not null;index" json:"accountant_id"`
	ClientID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"client_id"`
	Message      string         `gorm:"type:text;not null" json:"message"`
	Status       ProposalStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Response     string         `gorm:"type:text" json:"response"`
	SentAt       time.Time      `gorm:"autoCreateTime;index" json:"sent_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (p *Proposal) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

// CanTransitionTo reports whether the proposal may move to next.
func (p *Proposal) CanTransitionTo(next ProposalStatus) bool {
	return p.Status == ProposalPending && (next == ProposalAccepted || next == ProposalDeclined)
}
