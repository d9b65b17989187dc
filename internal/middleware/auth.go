package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"crewpay/internal/identity"
	"crewpay/internal/model"
	"crewpay/internal/repository"
)

const (
	principalKey = "principal"
	userKey      = "currentUser"

	bearerScheme = "Bearer "
)

// ErrNotAdmitted is returned by Admit when the account is missing or its
// role is not in the route's required set.
var ErrNotAdmitted = errors.New("role not permitted for this route")

// RequireAuth extracts the bearer credential from the Authorization header
// and verifies it. A missing or malformed header is 401; a credential the
// provider rejects is 403. On success the principal is attached to the
// request context for downstream gates and handlers.
func RequireAuth(verifier identity.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerScheme) {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				model.NewErrorResponse("missing or malformed authorization header", ""))
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, bearerScheme))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				model.NewErrorResponse("missing or malformed authorization header", ""))
			return
		}

		principal, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden,
				model.NewErrorResponse("invalid or expired credential", err.Error()))
			return
		}

		SetPrincipal(c, principal)
		c.Next()
	}
}

// Admit is the role gate core: it accepts when the resolved account exists
// and its role matches one of the required roles exactly. No hierarchy, no
// elevation.
func Admit(user *model.User, roles ...model.Role) error {
	if user == nil {
		return ErrNotAdmitted
	}
	for _, role := range roles {
		if user.Role == role {
			return nil
		}
	}
	return ErrNotAdmitted
}

// RequireRole resolves the verified principal to its stored account and
// admits the request only when Admit accepts. The resolved account is
// attached to the context so handlers do not re-fetch it.
func RequireRole(users repository.IUserRepository, roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := PrincipalFrom(c)
		if principal == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				model.NewErrorResponse("authentication required", ""))
			return
		}

		user, err := users.FindByEmail(c.Request.Context(), strings.ToLower(principal.Email))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				model.NewErrorResponse("failed to resolve account", err.Error()))
			return
		}
		if err := Admit(user, roles...); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden,
				model.NewErrorResponse("forbidden", err.Error()))
			return
		}

		SetUser(c, user)
		c.Next()
	}
}

// SetPrincipal attaches a verified principal to the context. Used by
// RequireAuth and by handler tests.
func SetPrincipal(c *gin.Context, p *identity.Principal) {
	c.Set(principalKey, p)
}

// SetUser attaches a resolved account to the context. Used by RequireRole
// and by handler tests.
func SetUser(c *gin.Context, user *model.User) {
	c.Set(userKey, user)
}

// PrincipalFrom returns the verified principal, nil when the request did not
// pass RequireAuth.
func PrincipalFrom(c *gin.Context) *identity.Principal {
	if v, exists := c.Get(principalKey); exists {
		if p, ok := v.(*identity.Principal); ok {
			return p
		}
	}
	return nil
}

// UserFrom returns the resolved account, nil when the request did not pass a
// role gate.
func UserFrom(c *gin.Context) *model.User {
	if v, exists := c.Get(userKey); exists {
		if u, ok := v.(*model.User); ok {
			return u
		}
	}
	return nil
}
