package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shikkhaloy/school-backend/internal/model"
	"github.com/shikkhaloy/school-backend/internal/response"
	"github.com/shikkhaloy/school-backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResolver maps one valid token to an email and serves user records
// from a map.
type fakeResolver struct {
	tokens map[string]string
	users  map[string]*model.User
}

func (f *fakeResolver) ValidateToken(tokenStr string) (*service.Claims, error) {
	email, ok := f.tokens[tokenStr]
	if !ok {
		return nil, service.ErrInvalidToken
	}
	return &service.Claims{Email: email}, nil
}

func (f *fakeResolver) Resolve(_ context.Context, email string) (*model.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, service.ErrUnauthenticated
	}
	return user, nil
}

func newResolver(users ...*model.User) *fakeResolver {
	f := &fakeResolver{tokens: map[string]string{}, users: map[string]*model.User{}}
	for _, u := range users {
		f.users[u.Email] = u
	}
	return f
}

func echoIdentity(c *gin.Context) {
	user := ActingUser(c)
	response.Success(c, http.StatusOK, gin.H{"email": user.Email, "role": user.Role})
}

func identityRouter(resolver *fakeResolver, trustHeader bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", RequireIdentity(resolver, trustHeader), echoIdentity)
	return r
}

func errCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func TestRequireIdentityBearerToken(t *testing.T) {
	resolver := newResolver(&model.User{Email: "s@example.com", Role: model.RoleStudent})
	resolver.tokens["session-token"] = "s@example.com"
	r := identityRouter(resolver, true)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer session-token")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "s@example.com")
}

func TestRequireIdentityInvalidBearerToken(t *testing.T) {
	resolver := newResolver(&model.User{Email: "s@example.com", Role: model.RoleStudent})
	r := identityRouter(resolver, true)

	// A present but invalid token must not fall through to the header.
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer forged")
	req.Header.Set(HeaderIdentity, "s@example.com")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_INVALID", errCode(t, rec))
}

func TestRequireIdentityTrustsHeaderWhenEnabled(t *testing.T) {
	// The header path is a claimed identity with no proof: any caller
	// naming a known email acts as that user.
	resolver := newResolver(&model.User{Email: "admin@example.com", Role: model.RoleAdmin})
	r := identityRouter(resolver, true)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(HeaderIdentity, "admin@example.com")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "admin@example.com")
}

func TestRequireIdentityQueryFallbacks(t *testing.T) {
	resolver := newResolver(&model.User{Email: "s@example.com", Role: model.RoleStudent})
	r := identityRouter(resolver, true)

	for _, target := range []string{"/me?requesterEmail=s@example.com", "/me?email=s@example.com"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, target)
	}
}

func TestRequireIdentityHeaderIgnoredWhenDisabled(t *testing.T) {
	resolver := newResolver(&model.User{Email: "admin@example.com", Role: model.RoleAdmin})
	r := identityRouter(resolver, false)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(HeaderIdentity, "admin@example.com")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHENTICATED", errCode(t, rec))
}

func TestRequireIdentityUnknownUser(t *testing.T) {
	r := identityRouter(newResolver(), true)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(HeaderIdentity, "never-logged-in@example.com")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHENTICATED", errCode(t, rec))
}

func TestRequireIdentityNoIdentity(t *testing.T) {
	r := identityRouter(newResolver(), true)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	resolver := newResolver(
		&model.User{Email: "admin@example.com", Role: model.RoleAdmin},
		&model.User{Email: "t@example.com", Role: model.RoleTeacher},
		&model.User{Email: "s@example.com", Role: model.RoleStudent},
	)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/list", RequireIdentity(resolver, true), RequireRole(model.RoleAdmin, model.RoleTeacher), echoIdentity)

	tests := []struct {
		email string
		want  int
	}{
		{"admin@example.com", http.StatusOK},
		{"t@example.com", http.StatusOK},
		{"s@example.com", http.StatusForbidden},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/list", nil)
		req.Header.Set(HeaderIdentity, tt.email)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, tt.want, rec.Code, tt.email)
	}
}

func TestRequireSelfOrAdmin(t *testing.T) {
	resolver := newResolver(
		&model.User{Email: "admin@example.com", Role: model.RoleAdmin},
		&model.User{Email: "owner@example.com", Role: model.RoleStudent},
		&model.User{Email: "other@example.com", Role: model.RoleStudent},
	)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/users/:email", RequireIdentity(resolver, true), RequireSelfOrAdmin("email"), echoIdentity)

	tests := []struct {
		name   string
		acting string
		target string
		want   int
	}{
		{"owner reads own record", "owner@example.com", "owner@example.com", http.StatusOK},
		{"owner case-insensitive match", "owner@example.com", "Owner@Example.com", http.StatusOK},
		{"admin reads any record", "admin@example.com", "owner@example.com", http.StatusOK},
		{"stranger is rejected", "other@example.com", "owner@example.com", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users/"+tt.target, nil)
			req.Header.Set(HeaderIdentity, tt.acting)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusForbidden {
				assert.Equal(t, "NOT_RESOURCE_OWNER", errCode(t, rec))
			}
		})
	}
}
