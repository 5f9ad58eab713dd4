package dto

import (
	"time"

	"farmledger/internal/domain/period"
)

// CreatePeriodRequest is the request body for opening a period.
type CreatePeriodRequest struct {
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
}

// ToInput converts the request to a service input.
func (r *CreatePeriodRequest) ToInput(actorID string) period.CreateInput {
	return period.CreateInput{
		Name:      r.Name,
		StartDate: r.StartDate,
		ActorID:   actorID,
	}
}

// UpdatePeriodRequest is a typed patch for an open period.
type UpdatePeriodRequest struct {
	Name      *string    `json:"name"`
	StartDate *time.Time `json:"startDate"`
}

// ToInput converts the request to a service input.
func (r *UpdatePeriodRequest) ToInput(actorID string) period.UpdateInput {
	return period.UpdateInput{
		Name:      r.Name,
		StartDate: r.StartDate,
		ActorID:   actorID,
	}
}

// ListPeriodsRequest narrows the period listing.
type ListPeriodsRequest struct {
	Status string `form:"status"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

// ToFilter converts the request to a repository filter.
func (r *ListPeriodsRequest) ToFilter() period.ListFilter {
	f := period.ListFilter{Limit: r.Limit, Offset: r.Offset}
	if r.Status != "" {
		st := period.Status(r.Status)
		f.Status = &st
	}
	return f
}
