package screen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/pkg/jwt"
)

func TestRegistration_HappyPath(t *testing.T) {
	r := NewRegistration()
	require.NoError(t, r.BeginRegister())
	assert.Equal(t, StepRegistering, r.Step)

	r.Registered(entity.Registration{UserID: "U", OTPAuthURL: "otpauth://totp/lab:u?secret=S", Secret: "S"})
	assert.True(t, r.AwaitingCode())
	assert.Equal(t, "S", r.Secret)

	require.NoError(t, r.BeginVerify())
	assert.Equal(t, StepVerifying, r.Step)
	r.Verified()
	assert.Equal(t, StepIdle, r.Step)
	assert.Empty(t, r.UserID)
}

func TestRegistration_FailuresReturnToEnteringStep(t *testing.T) {
	r := NewRegistration()
	require.NoError(t, r.BeginRegister())
	r.RegisterFailed()
	assert.Equal(t, StepIdle, r.Step)

	require.NoError(t, r.BeginRegister())
	r.Registered(entity.Registration{UserID: "U", Secret: "S"})
	require.NoError(t, r.BeginVerify())
	r.VerifyFailed()
	assert.Equal(t, StepAwait2FA, r.Step)
	assert.Equal(t, "U", r.UserID)
	assert.Equal(t, "S", r.Secret)
}

func TestRegistration_OutOfOrder(t *testing.T) {
	r := NewRegistration()
	assert.ErrorIs(t, r.BeginVerify(), ErrRegistrationStep)

	require.NoError(t, r.BeginRegister())
	assert.ErrorIs(t, r.BeginRegister(), ErrRegistrationStep)

	r.Cancel()
	assert.False(t, r.AwaitingCode())
	assert.False(t, (*Registration)(nil).AwaitingCode())
}

func TestConfirmer(t *testing.T) {
	c := NewConfirmer(jwt.NewConfirmService("secret", time.Minute))

	conf, err := c.Open("s1", "delete:representatives", "X", "Alex")
	require.NoError(t, err)
	assert.NotEmpty(t, conf.Token)

	assert.NoError(t, c.Confirm("s1", "delete:representatives", "X", conf.Token))
	assert.Error(t, c.Confirm("s1", "delete:representatives", "Y", conf.Token))
	assert.Error(t, c.Confirm("s1", "delete:representatives", "X", ""))
}
