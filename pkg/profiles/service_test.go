package profiles

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"seedround/pkg/apperr"
)

type mockProfileRepository struct {
	mock.Mock
}

func (m *mockProfileRepository) CreateProfile(ctx context.Context, name, email, profileType, passwordHash, uuid string) (Profile, error) {
	args := m.Called(ctx, name, email, profileType, passwordHash, uuid)
	p, _ := args.Get(0).(Profile)
	return p, args.Error(1)
}

func (m *mockProfileRepository) GetProfileByID(ctx context.Context, id int64) (Profile, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(Profile)
	return p, args.Error(1)
}

func (m *mockProfileRepository) GetProfileByUUID(ctx context.Context, uuid string) (Profile, error) {
	args := m.Called(ctx, uuid)
	p, _ := args.Get(0).(Profile)
	return p, args.Error(1)
}

func (m *mockProfileRepository) GetProfileByEmail(ctx context.Context, email string) (Profile, error) {
	args := m.Called(ctx, email)
	p, _ := args.Get(0).(Profile)
	return p, args.Error(1)
}

func (m *mockProfileRepository) ListProfiles(ctx context.Context, limit, offset int) ([]Profile, int64, error) {
	args := m.Called(ctx, limit, offset)
	list, _ := args.Get(0).([]Profile)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *mockProfileRepository) DeactivateProfile(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestProfileService_CreateProfile_InvalidType(t *testing.T) {
	repo := new(mockProfileRepository)
	service := NewProfileService(repo)

	_, err := service.CreateProfile(context.Background(), "Alice", "alice@example.com", "admin", "secret")

	require.True(t, apperr.Is(err, apperr.KindInvalidInput))
	repo.AssertNotCalled(t, "CreateProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileService_CreateProfile_HashesPassword(t *testing.T) {
	repo := new(mockProfileRepository)
	service := NewProfileService(repo)

	repo.On("CreateProfile", mock.Anything, "Alice", "alice@example.com", TypeFounder,
		mock.MatchedBy(func(hash string) bool {
			return bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret")) == nil
		}),
		mock.MatchedBy(func(uuid string) bool { return uuid != "" }),
	).Return(Profile{ID: 1, Name: "Alice", Type: TypeFounder}, nil)

	p, err := service.CreateProfile(context.Background(), "Alice", "alice@example.com", TypeFounder, "secret")

	require.NoError(t, err)
	require.Equal(t, TypeFounder, p.Type)
	repo.AssertExpectations(t)
}

func TestProfileService_CreateProfile_DuplicateEmail(t *testing.T) {
	repo := new(mockProfileRepository)
	service := NewProfileService(repo)

	repo.On("CreateProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(Profile{}, &pgconn.PgError{Code: "23505"})

	_, err := service.CreateProfile(context.Background(), "Alice", "alice@example.com", TypeInvestor, "secret")

	require.True(t, apperr.Is(err, apperr.KindConflict))
	repo.AssertExpectations(t)
}

func TestProfileService_GetProfileByID_NotFound(t *testing.T) {
	repo := new(mockProfileRepository)
	service := NewProfileService(repo)

	repo.On("GetProfileByID", mock.Anything, int64(99)).Return(Profile{}, ErrProfileNotFound)

	_, err := service.GetProfileByID(context.Background(), 99)

	require.True(t, apperr.Is(err, apperr.KindNotFound))
	repo.AssertExpectations(t)
}

func TestProfileService_DeactivateProfile_NotFound(t *testing.T) {
	repo := new(mockProfileRepository)
	service := NewProfileService(repo)

	repo.On("DeactivateProfile", mock.Anything, int64(99)).Return(ErrProfileNotFound)

	err := service.DeactivateProfile(context.Background(), 99)

	require.True(t, apperr.Is(err, apperr.KindNotFound))
	repo.AssertExpectations(t)
}

func TestProfileService_ListProfiles_PaginationDefaults(t *testing.T) {
	repo := new(mockProfileRepository)
	service := NewProfileService(repo)

	repo.On("ListProfiles", mock.Anything, 10, 0).Return([]Profile{}, int64(0), nil)

	_, _, err := service.ListProfiles(context.Background(), 0, 0)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}
