package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/northquant/site-backend/internal/data/repos"
	"github.com/northquant/site-backend/internal/domain"
	"github.com/northquant/site-backend/internal/platform/ctxutil"
	"github.com/northquant/site-backend/internal/platform/dbctx"
	"github.com/northquant/site-backend/internal/platform/envutil"
	"github.com/northquant/site-backend/internal/platform/logger"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	EnsureSeedAdmin(ctx context.Context) error
	AccessTTL() time.Duration
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	users        repos.AdminUserRepo
	jwtSecretKey string
	accessTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	users repos.AdminUserRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
) AuthService {
	return &authService{
		db:           db,
		log:          log.With("service", "AuthService"),
		users:        users,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
	}
}

func (as *authService) AccessTTL() time.Duration { return as.accessTTL }

func (as *authService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", &ValidationError{Msg: "Email and password are required"}
	}

	user, err := as.users.GetByEmail(dbctx.Context{Ctx: ctx}, email)
	if err != nil {
		return "", fmt.Errorf("load user by email: %w", err)
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return as.signToken(user)
}

func (as *authService) signToken(user *domain.AdminUser) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(as.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// SetContextFromToken verifies the bearer token, loads the user behind it and
// attaches the caller identity to the context for downstream handlers.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return ctx, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx, fmt.Errorf("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return ctx, fmt.Errorf("invalid token subject")
	}

	user, err := as.users.GetByID(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return ctx, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return ctx, fmt.Errorf("unknown user")
	}

	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}), nil
}

// EnsureSeedAdmin creates the bootstrap admin from ADMIN_EMAIL/ADMIN_PASSWORD
// when the account does not exist yet. A no-op when the vars are unset.
func (as *authService) EnsureSeedAdmin(ctx context.Context) error {
	email := strings.ToLower(envutil.Str("ADMIN_EMAIL", ""))
	password := envutil.Str("ADMIN_PASSWORD", "")
	if email == "" || password == "" {
		return nil
	}

	existing, err := as.users.GetByEmail(dbctx.Context{Ctx: ctx}, email)
	if err != nil {
		return fmt.Errorf("check seed admin: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed admin password: %w", err)
	}
	if _, err := as.users.Create(dbctx.Context{Ctx: ctx}, &domain.AdminUser{
		Email:    email,
		Password: string(hash),
		Role:     domain.RoleAdmin,
	}); err != nil {
		return fmt.Errorf("create seed admin: %w", err)
	}
	as.log.Info("seed admin created", "email", email)
	return nil
}
