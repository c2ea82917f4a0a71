package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-ledger-api/internal/application/auth"
	"github.com/jhoicas/inventario-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventario-ledger-api/internal/domain"
	"github.com/jhoicas/inventario-ledger-api/internal/domain/entity"
)

const (
	secret = "secreto-de-pruebas"
	userID = "3a9b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"
)

// MockUserRepository implementación mock de repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func newAuth(repo *MockUserRepository) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: secret, Issuer: "inventario-test"})
}

func storedUser(t *testing.T, password string, active bool) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.User{ID: userID, Email: "ana@example.com", FullName: "Ana", PasswordHash: string(hash), Role: entity.RoleUser, IsActive: active}
}

func TestRegister_CreaUsuarioConRolUser(t *testing.T) {
	repo := new(MockUserRepository)
	ctx := context.Background()
	repo.On("GetByEmail", ctx, "ana@example.com").Return(nil, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "ana@example.com" && u.Role == entity.RoleUser && u.PasswordHash != "Secreto123" && u.IsActive
	})).Return(nil)

	res, err := newAuth(repo).Register(ctx, dto.RegisterRequest{Email: " Ana@Example.com ", Password: "Secreto123", FullName: "Ana"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Tokens.Access)
	assert.NotEmpty(t, res.Tokens.Refresh)
	assert.Equal(t, 30*time.Minute, res.Tokens.AccessTTL)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(res.User.PasswordHash), []byte("Secreto123")))
	repo.AssertExpectations(t)
}

func TestRegister_EmailExistente(t *testing.T) {
	repo := new(MockUserRepository)
	ctx := context.Background()
	repo.On("GetByEmail", ctx, "ana@example.com").Return(storedUser(t, "x", true), nil)

	_, err := newAuth(repo).Register(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "Secreto123", FullName: "Ana"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_PasswordCorta(t *testing.T) {
	_, err := newAuth(new(MockUserRepository)).Register(context.Background(), dto.RegisterRequest{Email: "a@b.co", Password: "corta", FullName: "A"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("credenciales válidas", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByEmail", ctx, "ana@example.com").Return(storedUser(t, "TestingQp#1", true), nil)
		repo.On("UpdateLastLogin", ctx, userID, mock.AnythingOfType("time.Time")).Return(nil)

		res, err := newAuth(repo).Login(ctx, dto.LoginRequest{Email: "ANA@example.com", Password: "TestingQp#1"})
		require.NoError(t, err)
		require.NotNil(t, res.User.LastLogin)
		repo.AssertExpectations(t)
	})

	t.Run("password incorrecta", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByEmail", ctx, "ana@example.com").Return(storedUser(t, "TestingQp#1", true), nil)

		_, err := newAuth(repo).Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "otra"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("usuario inexistente", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByEmail", ctx, "nadie@example.com").Return(nil, nil)

		_, err := newAuth(repo).Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "x"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("usuario inactivo", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByEmail", ctx, "ana@example.com").Return(storedUser(t, "TestingQp#1", false), nil)

		_, err := newAuth(repo).Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "TestingQp#1"})
		assert.ErrorIs(t, err, domain.ErrInactiveUser)
	})
}

func loginTokens(t *testing.T, repo *MockUserRepository, uc *auth.AuthUseCase) auth.Tokens {
	t.Helper()
	ctx := context.Background()
	repo.On("GetByEmail", ctx, "ana@example.com").Return(storedUser(t, "TestingQp#1", true), nil)
	repo.On("UpdateLastLogin", ctx, userID, mock.Anything).Return(nil)
	res, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "TestingQp#1"})
	require.NoError(t, err)
	return res.Tokens
}

func TestAuthorize(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	uc := newAuth(repo)
	tokens := loginTokens(t, repo, uc)
	repo.On("GetByID", ctx, userID).Return(storedUser(t, "x", true), nil)

	user, err := uc.Authorize(ctx, tokens.Access)
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)

	// el refresh token no sirve como access
	_, err = uc.Authorize(ctx, tokens.Refresh)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = uc.Authorize(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: "otro"}).Authorize(ctx, tokens.Access)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestAuthorize_UsuarioDesactivado(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	uc := newAuth(repo)
	tokens := loginTokens(t, repo, uc)
	repo.On("GetByID", ctx, userID).Return(storedUser(t, "x", false), nil)

	_, err := uc.Authorize(ctx, tokens.Access)
	assert.ErrorIs(t, err, domain.ErrInactiveUser)
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	uc := newAuth(repo)
	tokens := loginTokens(t, repo, uc)
	repo.On("GetByID", ctx, userID).Return(storedUser(t, "x", true), nil)

	access, err := uc.Refresh(ctx, tokens.Refresh)
	require.NoError(t, err)
	user, err := uc.Authorize(ctx, access)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)

	_, err = uc.Refresh(ctx, tokens.Access)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestProfile_NoExiste(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	repo.On("GetByID", ctx, userID).Return(nil, nil)

	_, err := newAuth(repo).Profile(ctx, userID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
