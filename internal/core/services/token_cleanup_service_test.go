package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"hdb-bto-portal/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRefreshTokenRepo struct {
	deleteExpiredCalls atomic.Int64
}

func (r *fakeRefreshTokenRepo) Create(context.Context, *models.RefreshToken) error { return nil }
func (r *fakeRefreshTokenRepo) GetByTokenHash(context.Context, string) (*models.RefreshToken, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *fakeRefreshTokenRepo) GetByUserID(context.Context, uint) ([]*models.RefreshToken, error) {
	return nil, nil
}
func (r *fakeRefreshTokenRepo) Revoke(context.Context, uint) error { return nil }
func (r *fakeRefreshTokenRepo) RevokeByTokenHash(context.Context, string) error {
	return nil
}
func (r *fakeRefreshTokenRepo) RevokeAllByUserID(context.Context, uint) error { return nil }
func (r *fakeRefreshTokenRepo) DeleteExpired(context.Context) error {
	r.deleteExpiredCalls.Add(1)
	return nil
}
func (r *fakeRefreshTokenRepo) CountActiveByUserID(context.Context, uint) (int64, error) {
	return 0, nil
}

func TestTokenCleanupRunsOnStart(t *testing.T) {
	repo := &fakeRefreshTokenRepo{}
	svc := NewTokenCleanupService(repo)
	svc.interval = 10 * time.Millisecond

	svc.Start()
	defer svc.Stop()

	assert.Eventually(t, func() bool {
		return repo.deleteExpiredCalls.Load() >= 2
	}, time.Second, 5*time.Millisecond)
}
