package screen

import (
	"errors"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
)

type RegistrationStep string

const (
	StepIdle        RegistrationStep = "idle"
	StepRegistering RegistrationStep = "registering"
	StepAwait2FA    RegistrationStep = "awaiting-2fa"
	StepVerifying   RegistrationStep = "verifying"
)

var ErrRegistrationStep = errors.New("registration is not in the expected step")

// Registration is the two-step register → verify-2fa flow. It is stored on
// the session between the two requests.
type Registration struct {
	Step       RegistrationStep `json:"step"`
	UserID     string           `json:"userId,omitempty"`
	OTPAuthURL string           `json:"otpAuthUrl,omitempty"`
	Secret     string           `json:"secret,omitempty"`
}

func NewRegistration() *Registration {
	return &Registration{Step: StepIdle}
}

func (r *Registration) current() RegistrationStep {
	if r.Step == "" {
		return StepIdle
	}
	return r.Step
}

func (r *Registration) BeginRegister() error {
	if r.current() != StepIdle {
		return ErrRegistrationStep
	}
	r.Step = StepRegistering
	return nil
}

func (r *Registration) Registered(reg entity.Registration) {
	r.Step = StepAwait2FA
	r.UserID = reg.UserID
	r.OTPAuthURL = reg.OTPAuthURL
	r.Secret = reg.Secret
}

func (r *Registration) RegisterFailed() {
	*r = Registration{Step: StepIdle}
}

func (r *Registration) BeginVerify() error {
	if r.current() != StepAwait2FA {
		return ErrRegistrationStep
	}
	r.Step = StepVerifying
	return nil
}

func (r *Registration) Verified() {
	*r = Registration{Step: StepIdle}
}

// VerifyFailed goes back to waiting for a code with the secret still shown.
func (r *Registration) VerifyFailed() {
	r.Step = StepAwait2FA
}

func (r *Registration) Cancel() {
	*r = Registration{Step: StepIdle}
}

func (r *Registration) AwaitingCode() bool {
	return r != nil && r.current() == StepAwait2FA
}
