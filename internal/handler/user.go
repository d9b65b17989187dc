package handler

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"crewpay/internal/middleware"
	"crewpay/internal/model"
	"crewpay/internal/service"
	"crewpay/pkg/util"
)

const (
	maxNameLength  = 100
	maxEmailLength = 254
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// UserHandler handles account HTTP requests
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Register handles POST /users
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Email is required", ""))
		return
	}
	if len(req.Email) > maxEmailLength {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Email exceeds maximum length", ""))
		return
	}
	if !emailRegex.MatchString(req.Email) {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Invalid email format", ""))
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if len(req.Name) > maxNameLength {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Name exceeds maximum length", ""))
		return
	}

	user, err := h.users.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusConflict, model.NewErrorResponse(err.Error(), ""))
			return
		}
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Registration failed", err.Error()))
		return
	}

	c.JSON(http.StatusCreated, model.NewSuccessResponse("Account created", user))
}

// Me handles GET /users/me
func (h *UserHandler) Me(c *gin.Context) {
	principal := middleware.PrincipalFrom(c)
	user, err := h.users.GetByEmail(c.Request.Context(), principal.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to load account", err.Error()))
		return
	}
	if user == nil {
		c.JSON(http.StatusForbidden, model.NewErrorResponse("No account for this credential", ""))
		return
	}
	c.JSON(http.StatusOK, user)
}

// RoleInfo handles GET /users/role
func (h *UserHandler) RoleInfo(c *gin.Context) {
	principal := middleware.PrincipalFrom(c)
	user, err := h.users.GetByEmail(c.Request.Context(), principal.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to load account", err.Error()))
		return
	}
	if user == nil {
		c.JSON(http.StatusForbidden, model.NewErrorResponse("No account for this credential", ""))
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": user.Role, "status": user.Status})
}

// ListAll handles GET /users (Admin)
func (h *UserHandler) ListAll(c *gin.Context) {
	users, err := h.users.ListAccounts(c.Request.Context(), false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to list accounts", err.Error()))
		return
	}
	c.JSON(http.StatusOK, users)
}

// ListVerified handles GET /users/verified (Admin)
func (h *UserHandler) ListVerified(c *gin.Context) {
	users, err := h.users.ListAccounts(c.Request.Context(), true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to list accounts", err.Error()))
		return
	}
	c.JSON(http.StatusOK, users)
}

// ListEmployees handles GET /users/employees (HR)
func (h *UserHandler) ListEmployees(c *gin.Context) {
	users, err := h.users.ListEmployees(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to list employees", err.Error()))
		return
	}
	c.JSON(http.StatusOK, users)
}

// Details handles GET /users/:id/details (HR)
func (h *UserHandler) Details(c *gin.Context) {
	id := c.Param("id")
	if !util.IsValidObjectID(id) {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Invalid user ID format", ""))
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to load account", err.Error()))
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, model.NewErrorResponse("User not found", ""))
		return
	}
	c.JSON(http.StatusOK, user)
}

// ToggleVerification handles PATCH /users/:id/update-verification (HR)
func (h *UserHandler) ToggleVerification(c *gin.Context) {
	h.patchByID(c, h.users.ToggleVerification, "Verification updated")
}

// MakeHR handles PATCH /users/:id/make-hr (Admin)
func (h *UserHandler) MakeHR(c *gin.Context) {
	h.patchByID(c, h.users.MakeHR, "Role updated")
}

// Fire handles PATCH /users/:id/fire (Admin)
func (h *UserHandler) Fire(c *gin.Context) {
	h.patchByID(c, h.users.Fire, "Account fired")
}

// patchByID runs one of the id-addressed mutations. A zero-match update is
// reported as success with matched count 0, matching the store's behavior.
func (h *UserHandler) patchByID(c *gin.Context, op func(ctx context.Context, idHex string) (int64, error), message string) {
	id := c.Param("id")
	if !util.IsValidObjectID(id) {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Invalid user ID format", ""))
		return
	}

	matched, err := op(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Update failed", err.Error()))
		return
	}
	c.JSON(http.StatusOK, model.NewSuccessResponse(message, gin.H{"matchedCount": matched}))
}

// LoginCheck handles POST /login-check
func (h *UserHandler) LoginCheck(c *gin.Context) {
	var req model.LoginCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Email is required", ""))
		return
	}

	user, err := h.users.LoginCheck(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Login check failed", err.Error()))
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, model.NewErrorResponse("No account for this email", ""))
		return
	}
	if user.Status == model.StatusFired {
		c.JSON(http.StatusForbidden, model.NewErrorResponse("This account has been fired", ""))
		return
	}

	c.JSON(http.StatusOK, model.NewSuccessResponse("Login permitted", gin.H{"role": user.Role}))
}
