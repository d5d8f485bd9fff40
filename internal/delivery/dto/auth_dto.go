package dto

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is shared by self-registration and radiologist registration.
type RegisterRequest struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Name          string `json:"name,omitempty"`
	Role          string `json:"role,omitempty"`
	Gender        string `json:"gender,omitempty"`
	Age           int    `json:"age,omitempty"`
	PhoneNumber   string `json:"phoneNumber,omitempty"`
	LicenseNumber string `json:"licenseNumber,omitempty"`
}

type VerifyTwoFactorRequest struct {
	UserID string `json:"userId" validate:"required"`
	Token  string `json:"token" validate:"required,len=6,number"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// SettingsRequest is the settings page form; it is validated, never sent to the backend.
type SettingsRequest struct {
	Language string `validate:"required,oneof=en ar"`
	Theme    string `validate:"required,oneof=light dark"`
}

type PrivilegeChangeRequest struct {
	Module     string   `json:"module"`
	Operations []string `json:"operations"`
}
