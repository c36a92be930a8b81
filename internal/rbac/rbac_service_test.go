package rbac_test

import (
	"testing"

	"go-leavehub/internal/rbac"
	"go-leavehub/internal/user"

	"github.com/stretchr/testify/assert"
)

func TestService_Enforce(t *testing.T) {
	svc, err := rbac.NewService()
	assert.NoError(t, err)

	cases := []struct {
		name     string
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{"employee can create leave", user.RoleEmployee, "leave", "create", true},
		{"employee cannot approve leave", user.RoleEmployee, "leave", "approve", false},
		{"employee cannot read all leaves", user.RoleEmployee, "leave", "read", false},
		{"manager inherits employee create", user.RoleManager, "leave", "create", true},
		{"manager can approve leave", user.RoleManager, "leave", "approve", true},
		{"manager cannot delete leave", user.RoleManager, "leave", "delete", false},
		{"admin inherits manager approve", user.RoleAdmin, "leave", "approve", true},
		{"admin can delete leave", user.RoleAdmin, "leave", "delete", true},
		{"admin can write employees", user.RoleAdmin, "employee", "write", true},
		{"unknown role denied", "intern", "leave", "create", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := svc.Enforce(rbac.EnforceRequest{
				Role:     tc.role,
				Resource: tc.resource,
				Action:   tc.action,
			})
			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}
