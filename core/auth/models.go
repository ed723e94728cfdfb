package auth

import "github.com/trezcool/registrar/core/session"

// maxFieldLen is the longest username or password the backend accepts.
const maxFieldLen = 50

type (
	LoginRequest struct {
		Username string `json:"username" validate:"required,notblank,max=50"`
		Password string `json:"password" validate:"required,max=50"`
	}

	ForgetPasswordRequest struct {
		Email string `json:"email" validate:"required,email"`
		Lang  string `json:"lang" validate:"required,oneof=ar en"`
	}

	CheckTokenRequest struct {
		EmailToken string `json:"emailToken" validate:"required,notblank"`
	}

	// PasswordResetRequest sets a new password using the token mailed by ForgetPassword.
	// Email, when known, is only used by the password policy.
	PasswordResetRequest struct {
		Password   string `json:"password" validate:"required"`
		RePassword string `json:"rePassword" validate:"required,eqfield=Password"`
		EmailToken string `json:"emailToken" validate:"required,notblank"`
		Email      string `json:"-"`
	}
)

type (
	// GeneralResponse is the envelope of payload-less backend answers.
	GeneralResponse struct {
		Detail string `json:"detail"`
	}

	LoginResponse struct {
		Detail  string               `json:"detail"`
		Payload session.LoginPayload `json:"payload"`
	}

	PermissionsResponse struct {
		Detail string `json:"detail"`
		Payload struct {
			UserPermissions session.Permissions `json:"userPermissions"`
		} `json:"payload"`
	}

	ForgetPasswordResponse struct {
		Detail string `json:"detail"`
		Payload struct {
			ToUserEmail string `json:"toUserEmail"`
		} `json:"payload"`
	}

	CheckTokenResponse struct {
		Detail string `json:"detail"`
		Payload struct {
			TokenStatus string `json:"tokenStatus"`
		} `json:"payload"`
	}
)
