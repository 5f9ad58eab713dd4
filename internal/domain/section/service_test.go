package section_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmledger/internal/core/apperror"
	"farmledger/internal/core/entity"
	"farmledger/internal/domain/batch"
	"farmledger/internal/domain/domaintest"
	"farmledger/internal/domain/period"
	"farmledger/internal/domain/section"
)

type sectionEnv struct {
	sections *domaintest.SectionRepo
	periods  *domaintest.PeriodRepo
	svc      *section.Service
}

func newSectionEnv() *sectionEnv {
	sections := domaintest.NewSectionRepo()
	periods := domaintest.NewPeriodRepo()
	return &sectionEnv{
		sections: sections,
		periods:  periods,
		svc:      section.NewService(sections, periods),
	}
}

func (e *sectionEnv) seedPeriod(t *testing.T) *period.Period {
	t.Helper()
	p := period.New("2026 Q1", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, e.periods.Create(context.Background(), p))
	return p
}

func TestCreate_StartsEmpty(t *testing.T) {
	env := newSectionEnv()

	sec, err := env.svc.Create(context.Background(), "house-1", "mgr-1")
	require.NoError(t, err)
	assert.Equal(t, section.StatusEmpty, sec.Status)
	assert.Nil(t, sec.ActivePeriodID)
	assert.Nil(t, sec.ActiveBatchID)
}

func TestCreate_EmptyNameRejected(t *testing.T) {
	env := newSectionEnv()

	_, err := env.svc.Create(context.Background(), "", "mgr-1")
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestLinkPeriod_MovesEmptySectionToPreparing(t *testing.T) {
	env := newSectionEnv()
	ctx := context.Background()
	p := env.seedPeriod(t)

	sec, err := env.svc.Create(ctx, "house-1", "mgr-1")
	require.NoError(t, err)

	linked, err := env.svc.LinkPeriod(ctx, sec.ID, p.ID, "mgr-1")
	require.NoError(t, err)
	assert.Equal(t, section.StatusPreparing, linked.Status)
	require.NotNil(t, linked.ActivePeriodID)
	assert.Equal(t, p.ID, *linked.ActivePeriodID)
}

func TestLinkPeriod_CleaningSectionIsReusable(t *testing.T) {
	env := newSectionEnv()
	ctx := context.Background()
	p := env.seedPeriod(t)

	sec := section.New("house-2")
	sec.Status = section.StatusCleaning
	require.NoError(t, env.sections.Create(ctx, sec))

	linked, err := env.svc.LinkPeriod(ctx, sec.ID, p.ID, "mgr-1")
	require.NoError(t, err)
	assert.Equal(t, section.StatusPreparing, linked.Status)
}

func TestLinkPeriod_ClosedPeriodRejected(t *testing.T) {
	env := newSectionEnv()
	ctx := context.Background()

	p := env.seedPeriod(t)
	p.MarkClosed(time.Now())

	sec, err := env.svc.Create(ctx, "house-1", "mgr-1")
	require.NoError(t, err)

	_, err = env.svc.LinkPeriod(ctx, sec.ID, p.ID, "mgr-1")
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodePeriodClosed, appErr.Code)
}

func TestLinkPeriod_LiveBatchRejected(t *testing.T) {
	env := newSectionEnv()
	ctx := context.Background()
	p := env.seedPeriod(t)

	sec, err := env.svc.Create(ctx, "house-1", "mgr-1")
	require.NoError(t, err)

	b := &batch.Batch{
		BaseRecord:    entity.NewBaseRecord(),
		SectionID:     sec.ID,
		StartedAt:     time.Now(),
		TotalChicksIn: 1000,
		Status:        batch.StatusActive,
	}
	sec.ActiveBatchID = &b.ID
	sec.Status = section.StatusActive

	_, err = env.svc.LinkPeriod(ctx, sec.ID, p.ID, "mgr-1")
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidState, appErr.Code)
}
