package admin

import (
	"crypto/subtle"

	"github.com/lingora/lingora-backend/internal/domain"
)

// VerifyGate checks the second password that guards the dashboard on top
// of the regular admin login. Constant-time; an unconfigured gate admits
// nobody.
func (s *Service) VerifyGate(password string) error {
	if s.cfg.GatePassword == "" {
		return domain.ErrForbidden
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.GatePassword)) != 1 {
		return domain.ErrForbidden
	}
	return nil
}
