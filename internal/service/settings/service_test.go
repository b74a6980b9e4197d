package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	settingsRepo "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/settings"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/settings/models"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/logger"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/ptr"
)

type fakeRepo struct {
	stored *domain.SchedulingPolicy
	getErr error
}

func (r *fakeRepo) Get(context.Context) (*domain.SchedulingPolicy, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	if r.stored == nil {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	copied := *r.stored
	return &copied, nil
}

func (r *fakeRepo) Upsert(_ context.Context, p *domain.SchedulingPolicy) (*domain.SchedulingPolicy, error) {
	copied := *p
	r.stored = &copied
	return &copied, nil
}

func TestService_Get_FallsBackToDefaults(t *testing.T) {
	svc := NewService(&fakeRepo{}, domain.DefaultSchedulingPolicy(), logger.NewNop())

	resp, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.SourceDefault, resp.Source)
	assert.Equal(t, domain.DefaultSlotLengthMinutes, resp.SlotLengthMinutes)
	assert.True(t, resp.BlockPublicHolidays)
	assert.Nil(t, resp.UpdatedAt)
}

func TestService_Update(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, domain.DefaultSchedulingPolicy(), logger.NewNop())

	resp, err := svc.Update(context.Background(), &models.UpdatePolicyRequest{
		BufferMinutes:       ptr.Ptr(10),
		BlockPublicHolidays: ptr.Ptr(false),
	})

	require.NoError(t, err)
	assert.Equal(t, models.SourceStored, resp.Source)
	assert.Equal(t, 30, resp.SlotLengthMinutes)
	assert.Equal(t, 10, resp.BufferMinutes)
	assert.False(t, resp.BlockPublicHolidays)

	effective, err := svc.Effective(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, effective.BufferMinutes)
}

func TestService_Update_Validation(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, domain.DefaultSchedulingPolicy(), logger.NewNop())

	_, err := svc.Update(context.Background(), &models.UpdatePolicyRequest{SlotLengthMinutes: ptr.Ptr(1)})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, repo.stored)
}

func TestService_StoreFailure(t *testing.T) {
	svc := NewService(&fakeRepo{getErr: errors.New("connection refused")}, domain.DefaultSchedulingPolicy(), logger.NewNop())

	_, err := svc.Effective(context.Background())
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
