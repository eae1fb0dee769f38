package domain

import (
	"testing"

	"github.com/rahe01/StayVista/errors"
)

func TestCanChangeRoleRejectsSelf(t *testing.T) {
	err := CanChangeRole("admin@stayvista.com", "admin@stayvista.com")
	if err == nil {
		t.Fatal("CanChangeRole: expected error for same actor and target")
	}
	if err.Error() != errors.SelfRoleChangeError {
		t.Errorf("CanChangeRole: got %q, want %q", err.Error(), errors.SelfRoleChangeError)
	}
}

func TestCanChangeRoleIgnoresCaseAndSpacing(t *testing.T) {
	err := CanChangeRole("  Admin@StayVista.com ", "admin@stayvista.com")
	if err == nil {
		t.Fatal("CanChangeRole: expected error for same identity in different casing")
	}
}

func TestCanChangeRoleAllowsOtherUsers(t *testing.T) {
	if err := CanChangeRole("admin@stayvista.com", "guest@stayvista.com"); err != nil {
		t.Errorf("CanChangeRole: unexpected error %v", err)
	}
}
