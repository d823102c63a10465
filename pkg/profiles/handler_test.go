package profiles

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

type mockProfileService struct {
	mock.Mock
}

func (m *mockProfileService) CreateProfile(ctx context.Context, name, email, profileType, password string) (Profile, error) {
	args := m.Called(ctx, name, email, profileType, password)
	p, _ := args.Get(0).(Profile)
	return p, args.Error(1)
}

func (m *mockProfileService) GetProfileByID(ctx context.Context, id int64) (Profile, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(Profile)
	return p, args.Error(1)
}

func (m *mockProfileService) GetProfileByUUID(ctx context.Context, uuid string) (Profile, error) {
	args := m.Called(ctx, uuid)
	p, _ := args.Get(0).(Profile)
	return p, args.Error(1)
}

func (m *mockProfileService) ListProfiles(ctx context.Context, page, limit int) ([]Profile, int64, error) {
	args := m.Called(ctx, page, limit)
	list, _ := args.Get(0).([]Profile)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *mockProfileService) DeactivateProfile(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupProfileRouter(service ProfileService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewProfileHandler(service)
	h.RegisterRoutes(r)
	return r
}

func TestProfileHandler_CreateProfile_Success(t *testing.T) {
	svc := new(mockProfileService)
	r := setupProfileRouter(svc)

	expected := Profile{ID: 1, Name: "Alice", Email: "alice@example.com", Type: TypeFounder, IsActive: true}
	svc.On("CreateProfile", mock.Anything, "Alice", "alice@example.com", TypeFounder, "secret").Return(expected, nil)

	reqBody := `{"name":"Alice","email":"alice@example.com","type":"founder","password":"secret"}`
	req := httptest.NewRequest(http.MethodPost, "/profiles", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, "profile created", resp.Message)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	require.EqualValues(t, 1, data["id"])
	require.Equal(t, "founder", data["type"])

	svc.AssertExpectations(t)
}

func TestProfileHandler_CreateProfile_InvalidPayload(t *testing.T) {
	svc := new(mockProfileService)
	r := setupProfileRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/profiles", strings.NewReader(`{"name":"Alice"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "CreateProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileHandler_GetProfileByID_NotFound(t *testing.T) {
	svc := new(mockProfileService)
	r := setupProfileRouter(svc)

	svc.On("GetProfileByID", mock.Anything, int64(99)).
		Return(Profile{}, apperr.New(apperr.KindNotFound, "profile not found"))

	req := httptest.NewRequest(http.MethodGet, "/profiles/99", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	svc.AssertExpectations(t)
}

func TestProfileHandler_DeactivateProfile_Success(t *testing.T) {
	svc := new(mockProfileService)
	r := setupProfileRouter(svc)

	svc.On("DeactivateProfile", mock.Anything, int64(1)).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/profiles/1", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
