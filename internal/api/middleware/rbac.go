package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// RBAC enforces role-based access control for one operation. The allowed
// role set comes from the policy table (domain.AllowedRoles); the gate
// itself is a pure membership check over the role claim injected by Auth.
func RBAC(op domain.Operation) echo.MiddlewareFunc {
	allowedRoles := domain.AllowedRoles(op)
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if _, ok := allowed[role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
