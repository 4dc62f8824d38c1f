package auth

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/urmu/storefront/domain"
)

// RolePrefix is prepended to session roles to form casbin subjects
const RolePrefix = "role_"

const accessModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

// DefaultPolicies grant route access per role. Customers inherit guest
// routes and wholesale sellers inherit customer routes.
var DefaultPolicies = [][]string{
	{RolePrefix + domain.RoleGuest, "/health", "GET"},
	{RolePrefix + domain.RoleGuest, "/auth/flows", "POST"},
	{RolePrefix + domain.RoleGuest, "/auth/flows/:id", "GET"},
	{RolePrefix + domain.RoleGuest, "/auth/flows/:id/*", "POST"},
	{RolePrefix + domain.RoleGuest, "/products", "GET"},
	{RolePrefix + domain.RoleGuest, "/products/:id", "GET"},
	{RolePrefix + domain.RoleGuest, "/categories", "GET"},
	{RolePrefix + domain.RoleGuest, "/brands", "GET"},
	{RolePrefix + domain.RoleGuest, "/banners", "GET"},

	{RolePrefix + domain.RoleCustomer, "/auth/logout", "POST"},
	{RolePrefix + domain.RoleCustomer, "/cart", "GET"},
	{RolePrefix + domain.RoleCustomer, "/cart/items", "POST"},
	{RolePrefix + domain.RoleCustomer, "/cart/items/:id", "(PATCH)|(DELETE)"},
	{RolePrefix + domain.RoleCustomer, "/checkout", "POST"},
	{RolePrefix + domain.RoleCustomer, "/orders", "GET"},
	{RolePrefix + domain.RoleCustomer, "/orders/export", "GET"},
	{RolePrefix + domain.RoleCustomer, "/orders/:id", "GET"},
	{RolePrefix + domain.RoleCustomer, "/addresses", "(GET)|(POST)"},
	{RolePrefix + domain.RoleCustomer, "/addresses/:id", "DELETE"},
	{RolePrefix + domain.RoleCustomer, "/wholesale/application", "(GET)|(POST)"},
}

// DefaultRoleLinks is the role hierarchy
var DefaultRoleLinks = [][]string{
	{RolePrefix + domain.RoleCustomer, RolePrefix + domain.RoleGuest},
	{RolePrefix + domain.RoleWholesale, RolePrefix + domain.RoleCustomer},
}

type CasbinService struct{ E *casbin.Enforcer }

// NewCasbinService builds the enforcer. Policies are persisted through the
// gorm adapter when db is set, otherwise they live in memory.
func NewCasbinService(db *gorm.DB) (*CasbinService, error) {
	m, err := model.NewModelFromString(accessModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse access model: %w", err)
	}

	if db == nil {
		E, err := casbin.NewEnforcer(m)
		if err != nil {
			return nil, err
		}
		return &CasbinService{E}, nil
	}

	adp, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	E, err := casbin.NewEnforcer(m, adp)
	if err != nil {
		return nil, err
	}
	if err := E.LoadPolicy(); err != nil {
		return nil, err
	}
	return &CasbinService{E}, nil
}

// SeedDefaults adds the default policies and role links that are missing
func (s *CasbinService) SeedDefaults() error {
	for _, p := range DefaultPolicies {
		if _, err := s.E.AddPolicy(p[0], p[1], p[2]); err != nil {
			return fmt.Errorf("failed to add policy %v: %w", p, err)
		}
	}
	for _, g := range DefaultRoleLinks {
		if _, err := s.E.AddGroupingPolicy(g[0], g[1]); err != nil {
			return fmt.Errorf("failed to add role link %v: %w", g, err)
		}
	}
	return nil
}

// Allowed reports whether role may call method on path
func (s *CasbinService) Allowed(role, path, method string) (bool, error) {
	return s.E.Enforce(RolePrefix+role, path, method)
}
