package domain

import (
	"fmt"
	"strings"

	"github.com/rahe01/StayVista/errors"
)

// CanChangeRole is the single place the self-elevation rule lives. Both the
// dashboard and the server call the same check: an identity may never change
// its own role, no matter which role it holds.
func CanChangeRole(actorEmail, targetEmail string) error {
	if strings.EqualFold(strings.TrimSpace(actorEmail), strings.TrimSpace(targetEmail)) {
		return fmt.Errorf(errors.SelfRoleChangeError)
	}
	return nil
}
