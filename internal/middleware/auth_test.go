package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"crewpay/internal/identity"
	"crewpay/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubVerifier accepts the single token "good" and maps it to its principal.
type stubVerifier struct {
	principal *identity.Principal
}

func (v *stubVerifier) Verify(_ context.Context, token string) (*identity.Principal, error) {
	if token == "good" {
		return v.principal, nil
	}
	return nil, identity.ErrInvalidToken
}

// stubUserRepo resolves accounts by email from a fixed map.
type stubUserRepo struct {
	byEmail map[string]*model.User
	findErr error
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) (*model.User, error) { return u, nil }
func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.byEmail[email], nil
}
func (r *stubUserRepo) FindByID(_ context.Context, _ primitive.ObjectID) (*model.User, error) {
	return nil, nil
}
func (r *stubUserRepo) FindByRole(_ context.Context, _ model.Role) ([]*model.User, error) {
	return nil, nil
}
func (r *stubUserRepo) FindNonAdmin(_ context.Context, _ bool) ([]*model.User, error) {
	return nil, nil
}
func (r *stubUserRepo) UpdateFields(_ context.Context, _ primitive.ObjectID, _ bson.M) (int64, error) {
	return 0, nil
}
func (r *stubUserRepo) EnsureIndexes(_ context.Context) error { return nil }

func authRouter(verifier identity.Verifier) *gin.Engine {
	r := gin.New()
	r.GET("/ping", RequireAuth(verifier), func(c *gin.Context) {
		p := PrincipalFrom(c)
		c.JSON(http.StatusOK, gin.H{"email": p.Email})
	})
	return r
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	t.Parallel()

	r := authRouter(&stubVerifier{})
	req := httptest.NewRequest("GET", "/ping", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_WrongScheme(t *testing.T) {
	t.Parallel()

	r := authRouter(&stubVerifier{})
	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Authorization", "Basic Zm9vOmJhcg==")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_EmptyToken(t *testing.T) {
	t.Parallel()

	r := authRouter(&stubVerifier{})
	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Authorization", "Bearer ")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_RejectedToken(t *testing.T) {
	t.Parallel()

	r := authRouter(&stubVerifier{})
	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Authorization", "Bearer expired")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAuth_Success(t *testing.T) {
	t.Parallel()

	r := authRouter(&stubVerifier{principal: &identity.Principal{Email: "a@x.com"}})
	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "a@x.com")
}

func TestAdmit(t *testing.T) {
	t.Parallel()

	hr := &model.User{Role: model.RoleHR}
	admin := &model.User{Role: model.RoleAdmin}

	assert.NoError(t, Admit(hr, model.RoleHR))
	assert.NoError(t, Admit(admin, model.RoleHR, model.RoleAdmin))
	// Roles are flat: Admin does not satisfy an HR-only gate.
	assert.ErrorIs(t, Admit(admin, model.RoleHR), ErrNotAdmitted)
	assert.ErrorIs(t, Admit(hr, model.RoleAdmin), ErrNotAdmitted)
	// A missing account never passes a gate.
	assert.ErrorIs(t, Admit(nil, model.RoleEmployee), ErrNotAdmitted)
}

func roleRouter(repo *stubUserRepo, principal *identity.Principal, roles ...model.Role) *gin.Engine {
	r := gin.New()
	attach := func(c *gin.Context) {
		SetPrincipal(c, principal)
		c.Next()
	}
	r.GET("/guarded", attach, RequireRole(repo, roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": UserFrom(c).Role})
	})
	return r
}

func TestRequireRole_Admitted(t *testing.T) {
	t.Parallel()

	repo := &stubUserRepo{byEmail: map[string]*model.User{
		"hr@x.com": {Email: "hr@x.com", Role: model.RoleHR},
	}}
	r := roleRouter(repo, &identity.Principal{Email: "HR@x.com"}, model.RoleHR)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/guarded", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "HR")
}

func TestRequireRole_WrongRole(t *testing.T) {
	t.Parallel()

	repo := &stubUserRepo{byEmail: map[string]*model.User{
		"emp@x.com": {Email: "emp@x.com", Role: model.RoleEmployee},
	}}
	r := roleRouter(repo, &identity.Principal{Email: "emp@x.com"}, model.RoleAdmin)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/guarded", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRole_NoAccount(t *testing.T) {
	t.Parallel()

	repo := &stubUserRepo{byEmail: map[string]*model.User{}}
	r := roleRouter(repo, &identity.Principal{Email: "ghost@x.com"}, model.RoleEmployee)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/guarded", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRole_StoreFailure(t *testing.T) {
	t.Parallel()

	repo := &stubUserRepo{findErr: errors.New("store unavailable")}
	r := roleRouter(repo, &identity.Principal{Email: "a@x.com"}, model.RoleEmployee)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/guarded", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
