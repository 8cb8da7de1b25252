package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jayantgoyal1502/CampusHire/internal/auth"
)

func identityEcho(t *testing.T, got *Identity) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFrom(r.Context())
		require.True(t, ok)
		*got = identity
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireRoleAdmitsMatchingRole(t *testing.T) {
	tokens := auth.NewManager("test-secret", time.Hour)
	userID := primitive.NewObjectID()

	token, err := tokens.Generate(userID.Hex(), auth.RoleStudent)
	require.NoError(t, err)

	var got Identity
	handler := RequireRole(tokens, auth.RoleStudent)(identityEcho(t, &got))

	req := httptest.NewRequest(http.MethodGet, "/api/students/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, got.ID)
	assert.Equal(t, auth.RoleStudent, got.Role)
}

func TestRequireRoleRejectsWrongRole(t *testing.T) {
	tokens := auth.NewManager("test-secret", time.Hour)

	token, err := tokens.Generate(primitive.NewObjectID().Hex(), auth.RoleStudent)
	require.NoError(t, err)

	handler := RequireRole(tokens, auth.RoleRecruiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/recruiters/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleRejectsMissingToken(t *testing.T) {
	tokens := auth.NewManager("test-secret", time.Hour)

	handler := RequireRole(tokens, auth.RoleStudent)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/students/profile", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAnyAdmitsEitherRole(t *testing.T) {
	tokens := auth.NewManager("test-secret", time.Hour)
	handler := RequireAny(tokens, auth.RoleStudent, auth.RoleRecruiter)

	for _, role := range []string{auth.RoleStudent, auth.RoleRecruiter} {
		token, err := tokens.Generate(primitive.NewObjectID().Hex(), role)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, "role %s", role)
	}

	token, err := tokens.Generate(primitive.NewObjectID().Hex(), auth.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
