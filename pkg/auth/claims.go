package auth

import (
	"github.com/farmstayhq/farmstay-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	SubjectID uuid.UUID
	Role      enums.ActorRole
	JTI       string
}

// AccessTokenClaims represents the typed JWT issued to dashboard clients.
// SubjectID is the admin user or the property owner, depending on Role.
type AccessTokenClaims struct {
	SubjectID uuid.UUID       `json:"subject_id"`
	Role      enums.ActorRole `json:"role"`
	jwt.RegisteredClaims
}
