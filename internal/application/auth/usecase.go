package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventario-ledger-api/internal/domain"
	"github.com/jhoicas/inventario-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger-api/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Tokens par de tokens emitidos en register/login.
type Tokens struct {
	Access     string
	Refresh    string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Result usuario autenticado y sus tokens.
type Result struct {
	User   *entity.User
	Tokens Tokens
}

// AuthUseCase casos de uso de autenticación: registro, login, refresh y autorización.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	if jwtCfg.AccessTTL <= 0 {
		jwtCfg.AccessTTL = 30 * time.Minute
	}
	if jwtCfg.RefreshTTL <= 0 {
		jwtCfg.RefreshTTL = 7 * 24 * time.Hour
	}
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, now: time.Now}
}

// Register crea un usuario con rol "user", hashea la password con bcrypt y emite tokens.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*Result, error) {
	user, err := uc.CreateUser(ctx, in.Email, in.Password, in.FullName, entity.RoleUser)
	if err != nil {
		return nil, err
	}
	tokens, err := uc.issue(user)
	if err != nil {
		return nil, err
	}
	return &Result{User: user, Tokens: *tokens}, nil
}

// CreateUser persiste un usuario activo con el rol indicado.
func (uc *AuthUseCase) CreateUser(ctx context.Context, email, password, fullName, role string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(fullName) == "" {
		return nil, domain.Invalid("email y full_name son requeridos")
	}
	if len(password) < 8 {
		return nil, domain.Invalid("la contraseña debe tener al menos 8 caracteres")
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		FullName:     strings.TrimSpace(fullName),
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

// Login verifica email/password, registra last_login y emite tokens.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*Result, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveUser
	}
	now := uc.now().UTC()
	if err := uc.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now
	tokens, err := uc.issue(user)
	if err != nil {
		return nil, err
	}
	return &Result{User: user, Tokens: *tokens}, nil
}

// Refresh emite un nuevo access token a partir de un refresh token válido.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", domain.ErrInvalidToken
	}
	claims, err := jwt.ParseOfType(uc.jwtCfg.Secret, refreshToken, jwt.TokenTypeRefresh)
	if err != nil {
		return "", domain.ErrInvalidToken
	}
	user, err := uc.activeUser(ctx, claims.UserID())
	if err != nil {
		return "", err
	}
	return jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, jwt.TokenTypeAccess, uc.jwtCfg.Issuer, uc.jwtCfg.AccessTTL)
}

// Authorize valida un access token y devuelve el usuario activo al que pertenece.
// Cualquier fallo se reporta como ErrInvalidToken / ErrInactiveUser (ambos ErrUnauthorized).
func (uc *AuthUseCase) Authorize(ctx context.Context, accessToken string) (*entity.User, error) {
	if accessToken == "" {
		return nil, domain.ErrInvalidToken
	}
	claims, err := jwt.ParseOfType(uc.jwtCfg.Secret, accessToken, jwt.TokenTypeAccess)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	return uc.activeUser(ctx, claims.UserID())
}

// Profile devuelve el perfil de un usuario.
func (uc *AuthUseCase) Profile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFound("usuario")
	}
	return ToProfileResponse(user), nil
}

// AccessTTL vigencia de los access tokens.
func (uc *AuthUseCase) AccessTTL() time.Duration { return uc.jwtCfg.AccessTTL }

func (uc *AuthUseCase) activeUser(ctx context.Context, userID string) (*entity.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrInvalidToken
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidToken
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveUser
	}
	return user, nil
}

func (uc *AuthUseCase) issue(user *entity.User) (*Tokens, error) {
	access, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, jwt.TokenTypeAccess, uc.jwtCfg.Issuer, uc.jwtCfg.AccessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, jwt.TokenTypeRefresh, uc.jwtCfg.Issuer, uc.jwtCfg.RefreshTTL)
	if err != nil {
		return nil, err
	}
	return &Tokens{Access: access, Refresh: refresh, AccessTTL: uc.jwtCfg.AccessTTL, RefreshTTL: uc.jwtCfg.RefreshTTL}, nil
}

// ToUserResponse vista pública del usuario.
func ToUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Email: u.Email, FullName: u.FullName, Role: u.Role}
}

// ToProfileResponse perfil completo para /auth/me.
func ToProfileResponse(u *entity.User) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
	}
}
