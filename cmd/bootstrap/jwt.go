package bootstrap

import (
	"time"

	"warehouse-booking/internal/pkg/clock"
	"warehouse-booking/internal/pkg/config"
	"warehouse-booking/internal/pkg/jwt"

	"github.com/cockroachdb/errors"
	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config, clk clock.Clock) (*jwt.Service, error) {
	duration, err := time.ParseDuration(cfg.JWT.Duration)
	if err != nil {
		return nil, errors.Wrap(err, "invalid JWT_DURATION")
	}
	return jwt.NewService(cfg.JWT.Secret, duration, clk), nil
}
