package infra

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// permissionModel grants exact "resource:action" codes to roles; users
// inherit through g. No wildcards, no domains.
const permissionModel = `[request_definition]
r = sub, code

[policy_definition]
p = sub, code

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.code == p.code
`

// NewEnforcer returns an empty enforcer over the permission model.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(permissionModel)
	if err != nil {
		return nil, err
	}
	return casbin.NewEnforcer(m)
}
