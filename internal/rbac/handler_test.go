package rbac

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumiere-institute/lumiere/internal/token"
)

type testServer struct {
	router  chi.Router
	codec   *token.Codec
	service *Service
	adminID int64
	student int64
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	repo := newMockRepository()
	admin := repo.seed("Admin", "Full system access", []string{"create", "read", "update", "delete", "manage_users", "manage_courses", "view_students", "update_profile"}, 2)
	student := repo.seed("Student", "Can access courses and profile", []string{"read", "update_profile"}, 156)

	registry := NewRegistry()
	service := NewService(repo, registry, NewPermissionCache(nil))
	codec := token.NewCodec("handler-test-secret", 0)
	guard := NewGuard(codec, service)
	middleware := Middleware{Guard: guard}

	router := chi.NewRouter()
	router.Route("/api/roles", NewHandler(nil, service, middleware).MountRoutes)
	router.Route("/api/permissions", NewPermissionsHandler(nil, registry, middleware).MountRoutes)

	return &testServer{router: router, codec: codec, service: service, adminID: admin.ID, student: student.ID}
}

func (s *testServer) request(t *testing.T, method, path, role, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if role != "" {
		raw, err := s.codec.Issue(token.Identity{ID: 1, Email: "t@lumiere.test", Name: "T", Role: role})
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+raw)
	}
	res := httptest.NewRecorder()
	s.router.ServeHTTP(res, req)
	return res
}

func TestRolesRequireAuthentication(t *testing.T) {
	srv := newTestServer(t)

	res := srv.request(t, http.MethodGet, "/api/roles/", "", "")
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestRolesForbiddenForStudent(t *testing.T) {
	srv := newTestServer(t)

	res := srv.request(t, http.MethodGet, "/api/roles/", "Student", "")
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = srv.request(t, http.MethodDelete, fmt.Sprintf("/api/roles/%d", srv.student), "Student", "")
	assert.Equal(t, http.StatusForbidden, res.Code)
}

func TestListRolesAsAdmin(t *testing.T) {
	srv := newTestServer(t)

	res := srv.request(t, http.MethodGet, "/api/roles/", "Admin", "")
	require.Equal(t, http.StatusOK, res.Code)

	var payload struct {
		Roles []Role `json:"roles"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &payload))
	require.Len(t, payload.Roles, 2)
	assert.Equal(t, "Admin", payload.Roles[0].Name)
	assert.Equal(t, "Student", payload.Roles[1].Name)
	assert.Equal(t, 156, payload.Roles[1].UserCount)
}

func TestCreateRoleEndpoint(t *testing.T) {
	srv := newTestServer(t)

	res := srv.request(t, http.MethodPost, "/api/roles/", "Admin",
		`{"name":"Instructor","description":"Can manage courses and students","permissions":["read","update","manage_courses","view_students"]}`)
	require.Equal(t, http.StatusCreated, res.Code)

	var role Role
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &role))
	assert.Equal(t, "Instructor", role.Name)
	assert.ElementsMatch(t, []string{"read", "update", "manage_courses", "view_students"}, role.Permissions)

	// Duplicate name collides case-insensitively.
	res = srv.request(t, http.MethodPost, "/api/roles/", "Admin", `{"name":"instructor","permissions":["read"]}`)
	assert.Equal(t, http.StatusConflict, res.Code)

	// Unknown permission id is rejected.
	res = srv.request(t, http.MethodPost, "/api/roles/", "Admin", `{"name":"Odd","permissions":["fly"]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, res.Code)

	// Malformed JSON is a bad request.
	res = srv.request(t, http.MethodPost, "/api/roles/", "Admin", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestDeleteRoleEndpoint(t *testing.T) {
	srv := newTestServer(t)

	res := srv.request(t, http.MethodDelete, fmt.Sprintf("/api/roles/%d", srv.student), "Admin", "")
	assert.Equal(t, http.StatusNoContent, res.Code)

	res = srv.request(t, http.MethodGet, "/api/roles/", "Admin", "")
	var payload struct {
		Roles []Role `json:"roles"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &payload))
	assert.Len(t, payload.Roles, 1)

	// The Admin role can never be deleted.
	res = srv.request(t, http.MethodDelete, fmt.Sprintf("/api/roles/%d", srv.adminID), "Admin", "")
	assert.Equal(t, http.StatusConflict, res.Code)

	// Unknown role yields 404.
	res = srv.request(t, http.MethodDelete, "/api/roles/999", "Admin", "")
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestUpdateRoleEndpoint(t *testing.T) {
	srv := newTestServer(t)

	res := srv.request(t, http.MethodPut, fmt.Sprintf("/api/roles/%d", srv.student), "Admin",
		`{"description":"Enrolled learner","permissions":["read","update_profile","view_students"]}`)
	require.Equal(t, http.StatusOK, res.Code)

	var role Role
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &role))
	assert.Equal(t, "Enrolled learner", role.Description)

	// Renaming Admin is refused.
	res = srv.request(t, http.MethodPut, fmt.Sprintf("/api/roles/%d", srv.adminID), "Admin", `{"name":"Root"}`)
	assert.Equal(t, http.StatusConflict, res.Code)
}

func TestRolePermissionsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	res := srv.request(t, http.MethodGet, fmt.Sprintf("/api/roles/%d/permissions", srv.student), "Admin", "")
	require.Equal(t, http.StatusOK, res.Code)

	var payload struct {
		Permissions []Permission `json:"permissions"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &payload))
	assert.Len(t, payload.Permissions, 2)
}

func TestListPermissionsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	res := srv.request(t, http.MethodGet, "/api/permissions/", "Admin", "")
	require.Equal(t, http.StatusOK, res.Code)

	var payload struct {
		Permissions []Permission `json:"permissions"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &payload))
	assert.Len(t, payload.Permissions, 8)

	res = srv.request(t, http.MethodGet, "/api/permissions/", "Student", "")
	assert.Equal(t, http.StatusForbidden, res.Code)
}
