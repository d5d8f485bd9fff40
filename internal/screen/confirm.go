package screen

import (
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/pkg/jwt"
)

// Confirmation is an open confirm dialog. Token must come back with the
// confirming request.
type Confirmation struct {
	Action string
	Target string
	Label  string
	Token  string
}

// Confirmer issues and checks the tokens that gate destructive actions.
type Confirmer struct {
	tokens *jwt.ConfirmService
}

func NewConfirmer(tokens *jwt.ConfirmService) *Confirmer {
	return &Confirmer{tokens: tokens}
}

func (c *Confirmer) Open(sessionID, action, target, label string) (*Confirmation, error) {
	token, err := c.tokens.Issue(sessionID, action, target)
	if err != nil {
		return nil, err
	}
	return &Confirmation{Action: action, Target: target, Label: label, Token: token}, nil
}

// Confirm returns nil only for a token issued to this session for this action and target.
func (c *Confirmer) Confirm(sessionID, action, target, token string) error {
	return c.tokens.Verify(token, sessionID, action, target)
}
