package auth

import (
	"github.com/employeeflow/employeeflow-backend-go/internal/domain/user"
	"github.com/employeeflow/employeeflow-backend-go/internal/pkg/validator"
)

// TokenRequest carries the identity provider's ID token. The email the API
// token is issued for comes from the verified ID token, never the body.
type TokenRequest struct {
	IDToken string `json:"idToken"`
}

func (r *TokenRequest) Validate() error {
	if validator.IsEmpty(r.IDToken) {
		return validator.ValidationErrors{{Field: "idToken", Message: "idToken is required"}}
	}
	return nil
}

// RegisterRequest is a profile registration proven by an ID token. Any email
// in the embedded profile is replaced by the verified one.
type RegisterRequest struct {
	IDToken string `json:"idToken"`
	user.RegisterRequest
}

type TokenResponse struct {
	Token     string `json:"token"`
	Role      string `json:"role"`
	ExpiresAt int64  `json:"expiresAt"`
}
