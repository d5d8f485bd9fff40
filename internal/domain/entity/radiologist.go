package entity

// Radiologist is a user account with the radiologist role.
type Radiologist struct {
	ObjectID            string `json:"_id"`
	Username            string `json:"username"`
	Name                string `json:"name"`
	Email               string `json:"email"`
	Gender              string `json:"gender"`
	Age                 int    `json:"age"`
	PhoneNumber         string `json:"phoneNumber"`
	LicenseNumber       string `json:"licenseNumber"`
	IsActive            bool   `json:"isActive"`
	TotalScansPerformed int    `json:"totalScansPerformed"`
}

// Registration is what POST /auth/register hands back to drive the 2FA step.
type Registration struct {
	UserID     string `json:"userId"`
	OTPAuthURL string `json:"otpAuthUrl"`
	Secret     string `json:"secret"`
}
