//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"warehouse-booking/internal/domain/user"
	"warehouse-booking/internal/pkg/clock"
	"warehouse-booking/internal/pkg/config"
	"warehouse-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	service := jwt.NewService(h.cfg.Secret, duration, clock.NewRealClock())
	token, err := service.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

// CreateExpiredToken signs a token that expired an hour ago.
func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	past := clock.NewMockClock(time.Now().Add(-2 * time.Hour))
	service := jwt.NewService(h.cfg.Secret, time.Hour, past)
	token, err := service.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}
