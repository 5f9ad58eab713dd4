package dto

// CreateSectionRequest is the request body for registering a section.
type CreateSectionRequest struct {
	Name string `json:"name" binding:"required"`
}

// LinkPeriodRequest attaches a section to an accounting period.
type LinkPeriodRequest struct {
	PeriodID string `json:"periodId" binding:"required"`
}
