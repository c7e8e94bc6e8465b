package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sarisaristore/sarisari-backend/pkg/enums"
)

// AccessTokenClaims carries the identity this backend scopes requests by.
// The actor id is opaque to the domain layer: for customers it is the id
// cart rows are keyed on, for admins it only appears in logs.
type AccessTokenClaims struct {
	ActorID uuid.UUID       `json:"actor_id"`
	Role    enums.ActorRole `json:"role"`
	jwt.RegisteredClaims
}

// AccessTokenPayload is the input for minting a token.
type AccessTokenPayload struct {
	ActorID uuid.UUID
	Role    enums.ActorRole
	JTI     string
}
