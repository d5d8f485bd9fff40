package handler

import (
	"net/http"
	"strings"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/dto"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/http/view"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/screen"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/service"
)

const (
	flowRadiologist = "radiologist"
	flowSelf        = "self"
)

// verifyView is the second registration step: QR, secret and code input.
func (b *Base) verifyView(r *http.Request, qr service.QRCodeService, reg *screen.Registration, action, cancel, codeErr string) *view.VerifyView {
	uri, err := qr.DataURI(reg.OTPAuthURL)
	if err != nil {
		b.log.Warnf("Failed to render QR code for %s: %+v", reg.UserID, err)
	}
	return &view.VerifyView{
		Title:     b.t(r, "registration.verifyTitle"),
		QR:        uri,
		Secret:    reg.Secret,
		Action:    action,
		CancelURL: cancel,
		Field: view.FieldView{
			Name:        "token",
			Label:       b.t(r, "registration.code"),
			Kind:        "text",
			Placeholder: b.t(r, "registration.codePlaceholder"),
			Required:    true,
			Error:       codeErr,
		},
	}
}

// checkCode validates a one-time code before it goes to the backend.
func (b *Base) checkCode(r *http.Request, reg *screen.Registration) (string, string) {
	code := strings.TrimSpace(r.PostFormValue("token"))
	req := dto.VerifyTwoFactorRequest{UserID: reg.UserID, Token: code}
	if err := b.validator.Validate(&req); err != nil {
		if _, bad := b.validator.FormatValidationErrors(err)["Token"]; bad || code == "" {
			return code, b.t(r, "validation.otp")
		}
		return code, b.t(r, "registration.outOfStep")
	}
	return code, ""
}
