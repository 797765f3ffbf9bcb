package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/qaportal-net/qaportal-be/internal/config"
	"github.com/qaportal-net/qaportal-be/internal/model"
	"github.com/qaportal-net/qaportal-be/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	userRepo       repository.IUserRepository
	auditRepo      repository.IAuditRepository
	newsletterRepo repository.INewsletterRepository
	jwtConfig      config.JWTConfig
}

func NewAuthService(
	userRepo repository.IUserRepository,
	auditRepo repository.IAuditRepository,
	newsletterRepo repository.INewsletterRepository,
	jwtConfig config.JWTConfig,
) IAuthService {
	return &authService{
		userRepo:       userRepo,
		auditRepo:      auditRepo,
		newsletterRepo: newsletterRepo,
		jwtConfig:      jwtConfig,
	}
}

// Login accepts a username or an email address in the username field.
// Passwords are verified with bcrypt; the server keeps no session state,
// the returned token only carries the user identity.
func (s *authService) Login(ctx context.Context, req *model.DTOLoginRequest) (*model.DTOLoginResponse, error) {
	user, err := s.userRepo.GetByUsernameOrEmail(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("error looking up user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("error updating last login: %w", err)
	}

	if err := s.audit(ctx, user.ID, "login", "user", map[string]any{"username": user.Username}); err != nil {
		return nil, err
	}

	expirationTime := time.Now().Add(s.jwtConfig.AccessTokenExpiresIn)
	claims := &model.Claims{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "qaportal-be",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtConfig.SecretKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create token: %w", err)
	}

	return &model.DTOLoginResponse{
		Message: "Login successful",
		User: model.DTOUser{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			UserType: user.UserType,
		},
		AccessToken: tokenString,
		TokenType:   "Bearer",
	}, nil
}

func (s *authService) Register(ctx context.Context, req *model.DTORegisterRequest) (int, error) {
	exists, err := s.userRepo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return 0, fmt.Errorf("error checking for existing user: %w", err)
	}
	if exists {
		return 0, ErrConflict
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("error hashing password: %w", err)
	}

	userType := model.UserType(req.UserType)
	if userType == "" {
		userType = model.UserTypeTester
	}

	user := model.User{
		Username:             req.Username,
		Email:                req.Email,
		PasswordHash:         string(hashedPassword),
		UserType:             userType,
		AcceptedTerms:        req.AcceptedTerms,
		SubscribedNewsletter: req.SubscribedNewsletter,
	}

	newUserID, err := s.userRepo.Create(ctx, &user)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	if req.SubscribedNewsletter {
		if err := s.newsletterRepo.Subscribe(ctx, req.Email, "signup"); err != nil {
			return 0, fmt.Errorf("failed to subscribe to newsletter: %w", err)
		}
	}

	return newUserID, nil
}

// Logout only audits; without server-side sessions there is nothing to
// invalidate. A missing user id is a no-op, not an error.
func (s *authService) Logout(ctx context.Context, userID int) error {
	if userID <= 0 {
		return nil
	}
	return s.audit(ctx, userID, "logout", "user", map[string]any{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*model.Claims, error) {
	claims := &model.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.SecretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

func (s *authService) audit(ctx context.Context, userID int, action, resourceType string, details map[string]any) error {
	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("marshaling audit details: %w", err)
	}
	err = s.auditRepo.Insert(ctx, &model.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		Details:      string(payload),
	})
	if err != nil {
		return fmt.Errorf("writing audit log: %w", err)
	}
	return nil
}
