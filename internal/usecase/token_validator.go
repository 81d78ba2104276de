package usecase

import (
	"warehouse-booking/internal/domain/user"
	"warehouse-booking/internal/pkg/jwt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=token_validator.go -destination=../../tests/mock/usecase/token_validator.go -package=usecasemock

// Identity is the authenticated caller. The booking core only ever receives
// the user id from it.
type Identity struct {
	UserID uuid.UUID
	Role   user.Role
}

func (i Identity) IsAdmin() bool {
	return i.Role.AtLeast(user.RoleAdmin)
}

// TokenValidator turns a bearer token into an Identity. Tokens are issued by
// an external identity provider sharing the signing secret.
type TokenValidator interface {
	ValidateToken(tokenString string) (Identity, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (Identity, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return Identity{}, err
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return Identity{}, jwt.ErrInvalidToken
	}

	return Identity{UserID: claims.UserID, Role: role}, nil
}
