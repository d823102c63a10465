package members

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"seedround/pkg/apperr"
	"seedround/pkg/response"
)

type mockMemberService struct {
	mock.Mock
}

func (m *mockMemberService) AddMember(ctx context.Context, startupID, profileID int64, role string) (Member, error) {
	args := m.Called(ctx, startupID, profileID, role)
	mem, _ := args.Get(0).(Member)
	return mem, args.Error(1)
}

func (m *mockMemberService) RemoveMember(ctx context.Context, startupID, profileID int64) error {
	args := m.Called(ctx, startupID, profileID)
	return args.Error(0)
}

func (m *mockMemberService) ChangeRole(ctx context.Context, startupID, profileID int64, newRole string) (Member, error) {
	args := m.Called(ctx, startupID, profileID, newRole)
	mem, _ := args.Get(0).(Member)
	return mem, args.Error(1)
}

func (m *mockMemberService) ListMembers(ctx context.Context, startupID int64) ([]Member, error) {
	args := m.Called(ctx, startupID)
	list, _ := args.Get(0).([]Member)
	return list, args.Error(1)
}

func setupMemberRouter(service MemberService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewMemberHandler(service)
	h.RegisterRoutes(r)
	return r
}

func TestMemberHandler_AddMember_Success(t *testing.T) {
	svc := new(mockMemberService)
	r := setupMemberRouter(svc)

	expected := Member{ID: 1, StartupID: 4, ProfileID: 2, Role: RoleMember}
	svc.On("AddMember", mock.Anything, int64(4), int64(2), RoleMember).Return(expected, nil)

	req := httptest.NewRequest(http.MethodPost, "/startups/4/members", strings.NewReader(`{"profile_id":2,"role":"member"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, "member added", resp.Message)

	svc.AssertExpectations(t)
}

func TestMemberHandler_AddMember_InvalidPayload(t *testing.T) {
	svc := new(mockMemberService)
	r := setupMemberRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/startups/4/members", strings.NewReader(`{"profile_id":2}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMemberHandler_AddMember_Duplicate(t *testing.T) {
	svc := new(mockMemberService)
	r := setupMemberRouter(svc)

	svc.On("AddMember", mock.Anything, int64(4), int64(2), RoleMember).
		Return(Member{}, apperr.New(apperr.KindConflict, "profile is already a member of this startup"))

	req := httptest.NewRequest(http.MethodPost, "/startups/4/members", strings.NewReader(`{"profile_id":2,"role":"member"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
	svc.AssertExpectations(t)
}

func TestMemberHandler_RemoveMember_LastAdmin(t *testing.T) {
	svc := new(mockMemberService)
	r := setupMemberRouter(svc)

	svc.On("RemoveMember", mock.Anything, int64(4), int64(2)).
		Return(apperr.New(apperr.KindInvalidState, "startup must keep at least one admin"))

	req := httptest.NewRequest(http.MethodDelete, "/startups/4/members/2", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.Equal(t, "startup must keep at least one admin", resp.Message)

	svc.AssertExpectations(t)
}

func TestMemberHandler_RemoveMember_InvalidProfileID(t *testing.T) {
	svc := new(mockMemberService)
	r := setupMemberRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/startups/4/members/abc", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "RemoveMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestMemberHandler_ChangeRole_Success(t *testing.T) {
	svc := new(mockMemberService)
	r := setupMemberRouter(svc)

	expected := Member{ID: 1, StartupID: 4, ProfileID: 2, Role: RoleAdmin}
	svc.On("ChangeRole", mock.Anything, int64(4), int64(2), RoleAdmin).Return(expected, nil)

	req := httptest.NewRequest(http.MethodPatch, "/startups/4/members/2", strings.NewReader(`{"role":"admin"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, RoleAdmin, data["role"])

	svc.AssertExpectations(t)
}

func TestMemberHandler_ListMembers_Success(t *testing.T) {
	svc := new(mockMemberService)
	r := setupMemberRouter(svc)

	svc.On("ListMembers", mock.Anything, int64(4)).Return([]Member{{ID: 1, Role: RoleAdmin}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/startups/4/members", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	require.EqualValues(t, 1, data["total"])

	svc.AssertExpectations(t)
}
