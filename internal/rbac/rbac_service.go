package rbac

import (
	"sync"

	"go-leavehub/internal/user"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// EnforceRequest asks whether a role may perform an action on a resource.
type EnforceRequest struct {
	Role     string
	Resource string
	Action   string
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// Role permissions are fixed in code: roles and their grants come from the
// product, not from operators, so there is nothing to administer at runtime.
var policies = [][]string{
	{user.RoleEmployee, "leave", "create"},
	{user.RoleEmployee, "leave", "cancel"},

	{user.RoleManager, "leave", "read"},
	{user.RoleManager, "leave", "approve"},
	{user.RoleManager, "leave", "stats"},
	{user.RoleManager, "employee", "read"},

	{user.RoleAdmin, "leave", "delete"},
	{user.RoleAdmin, "employee", "write"},
}

// Role inheritance: admin covers manager, manager covers employee.
var groupings = [][]string{
	{user.RoleManager, user.RoleEmployee},
	{user.RoleAdmin, user.RoleManager},
}

// NewService builds an enforcer with the static policy loaded.
func NewService() (Service, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	for _, g := range groupings {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(req.Role, req.Resource, req.Action)
}
