package middleware

import (
	"fmt"
	"net/http"

	"FacultyManager/internal/session"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	RoleAnonymous = "anonymous"
	RoleMember    = "member"
)

const gateModel = `
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

// Anonymous callers may only reach the account pages; members inherit those
// and may reach everything else.
var gatePolicies = [][]string{
	{RoleAnonymous, "/login", "^(GET|POST)$"},
	{RoleAnonymous, "/signup", "^(GET|POST)$"},
	{RoleAnonymous, "/logout", "^GET$"},
	{RoleAnonymous, "/health", "^GET$"},
	{RoleMember, "/*", "^(GET|POST|HEAD)$"},
}

// AuthGate authorizes each request as either an anonymous caller or a signed
// in member and attaches the member's session to the request context.
type AuthGate struct {
	enforcer *casbin.Enforcer
	log      *zap.Logger
}

func NewAuthGate(log *zap.Logger) (*AuthGate, error) {
	m, err := model.NewModelFromString(gateModel)
	if err != nil {
		return nil, fmt.Errorf("load gate model: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create gate enforcer: %w", err)
	}
	if _, err := enforcer.AddPolicies(gatePolicies); err != nil {
		return nil, fmt.Errorf("add gate policies: %w", err)
	}
	if _, err := enforcer.AddGroupingPolicy(RoleMember, RoleAnonymous); err != nil {
		return nil, fmt.Errorf("add gate roles: %w", err)
	}
	return &AuthGate{enforcer: enforcer, log: log.Named("gate")}, nil
}

func (g *AuthGate) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role := RoleAnonymous
		if claims, ok := c.Get(SessionContextKey).(*session.Claims); ok {
			if s, err := session.FromClaims(claims); err == nil {
				role = RoleMember
				c.SetRequest(c.Request().WithContext(session.WithSession(c.Request().Context(), s)))
			}
		}

		obj := c.Request().URL.Path
		act := c.Request().Method
		allowed, err := g.enforcer.Enforce(role, obj, act)
		if err != nil {
			g.log.Error("Casbin enforce error", zap.Error(err))
			return echo.NewHTTPError(http.StatusInternalServerError, "authorization error")
		}
		if !allowed {
			if role == RoleAnonymous {
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			g.log.Debug("Casbin denied", zap.String("role", role), zap.String("obj", obj), zap.String("act", act))
			return echo.NewHTTPError(http.StatusForbidden, "forbidden")
		}
		return next(c)
	}
}
