package dto

import (
	"time"

	"farmledger/internal/core/id"
	"farmledger/internal/domain/batch"
)

// CreateBatchRequest is the request body for starting a batch.
type CreateBatchRequest struct {
	SectionID     string    `json:"sectionId" binding:"required"`
	ExpectedEndAt time.Time `json:"expectedEndAt" binding:"required"`
	TotalChicksIn int       `json:"totalChicksIn" binding:"required,min=1"`
}

// ToInput converts the request to a service input.
func (r *CreateBatchRequest) ToInput(sectionID id.ID, actorID string) batch.CreateInput {
	return batch.CreateInput{
		SectionID:     sectionID,
		ExpectedEndAt: r.ExpectedEndAt,
		TotalChicksIn: r.TotalChicksIn,
		ActorID:       actorID,
	}
}

// CloseBatchRequest is the optional request body for closing a batch.
type CloseBatchRequest struct {
	EndedAt *time.Time `json:"endedAt"`
}
