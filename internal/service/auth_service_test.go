package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/qaportal-net/qaportal-be/internal/config"
	"github.com/qaportal-net/qaportal-be/internal/model"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		SecretKey:            "test-secret",
		AccessTokenExpiresIn: time.Hour,
	}
}

func activeUser(t *testing.T, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &model.User{
		ID:           7,
		Username:     "alice",
		Email:        "alice@example.test",
		PasswordHash: string(hash),
		UserType:     model.UserTypeTester,
		IsActive:     true,
	}
}

func TestLogin_Success(t *testing.T) {
	user := activeUser(t, "s3cret")
	userRepo := &fakeUserRepo{users: map[string]*model.User{"alice": user}}
	auditRepo := &fakeAuditRepo{}
	svc := NewAuthService(userRepo, auditRepo, &fakeNewsletterRepo{}, testJWTConfig())

	resp, err := svc.Login(context.Background(), &model.DTOLoginRequest{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)

	assert.Equal(t, "Login successful", resp.Message)
	assert.Equal(t, 7, resp.User.ID)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, model.UserTypeTester, resp.User.UserType)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.NotEmpty(t, resp.AccessToken)

	assert.Equal(t, []int{7}, userRepo.lastLoginOf)
	require.Len(t, auditRepo.entries, 1)
	assert.Equal(t, "login", auditRepo.entries[0].Action)
	assert.Equal(t, 7, auditRepo.entries[0].UserID)
}

func TestLogin_TokenRoundTrip(t *testing.T) {
	user := activeUser(t, "s3cret")
	svc := NewAuthService(
		&fakeUserRepo{users: map[string]*model.User{"alice": user}},
		&fakeAuditRepo{},
		&fakeNewsletterRepo{},
		testJWTConfig(),
	)

	resp, err := svc.Login(context.Background(), &model.DTOLoginRequest{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.ID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.test", claims.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	user := activeUser(t, "s3cret")
	svc := NewAuthService(
		&fakeUserRepo{users: map[string]*model.User{"alice": user}},
		&fakeAuditRepo{},
		&fakeNewsletterRepo{},
		testJWTConfig(),
	)

	_, err := svc.Login(context.Background(), &model.DTOLoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{users: map[string]*model.User{}}, &fakeAuditRepo{}, &fakeNewsletterRepo{}, testJWTConfig())

	_, err := svc.Login(context.Background(), &model.DTOLoginRequest{Username: "ghost", Password: "s3cret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	user := activeUser(t, "s3cret")
	user.IsActive = false
	svc := NewAuthService(
		&fakeUserRepo{users: map[string]*model.User{"alice": user}},
		&fakeAuditRepo{},
		&fakeNewsletterRepo{},
		testJWTConfig(),
	)

	_, err := svc.Login(context.Background(), &model.DTOLoginRequest{Username: "alice", Password: "s3cret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_Success(t *testing.T) {
	userRepo := &fakeUserRepo{createdID: 11}
	newsletterRepo := &fakeNewsletterRepo{}
	svc := NewAuthService(userRepo, &fakeAuditRepo{}, newsletterRepo, testJWTConfig())

	id, err := svc.Register(context.Background(), &model.DTORegisterRequest{
		Username:             "bob",
		Email:                "bob@example.test",
		Password:             "hunter2",
		AcceptedTerms:        true,
		SubscribedNewsletter: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 11, id)

	require.Len(t, userRepo.created, 1)
	created := userRepo.created[0]
	assert.Equal(t, model.UserTypeTester, created.UserType, "user type defaults to tester")
	assert.NotEqual(t, "hunter2", created.PasswordHash, "password must never be stored in plain text")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("hunter2")))

	require.Len(t, newsletterRepo.signups, 1)
	assert.Equal(t, newsletterSignup{email: "bob@example.test", source: "signup"}, newsletterRepo.signups[0])
}

func TestRegister_WithoutNewsletter(t *testing.T) {
	newsletterRepo := &fakeNewsletterRepo{}
	svc := NewAuthService(&fakeUserRepo{createdID: 12}, &fakeAuditRepo{}, newsletterRepo, testJWTConfig())

	_, err := svc.Register(context.Background(), &model.DTORegisterRequest{
		Username:      "carol",
		Email:         "carol@example.test",
		Password:      "hunter2",
		UserType:      "developer",
		AcceptedTerms: true,
	})
	require.NoError(t, err)
	assert.Empty(t, newsletterRepo.signups)
}

func TestRegister_Conflict(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{exists: true}, &fakeAuditRepo{}, &fakeNewsletterRepo{}, testJWTConfig())

	_, err := svc.Register(context.Background(), &model.DTORegisterRequest{
		Username:      "alice",
		Email:         "alice@example.test",
		Password:      "s3cret",
		AcceptedTerms: true,
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLogout_AuditsWithTimestamp(t *testing.T) {
	auditRepo := &fakeAuditRepo{}
	svc := NewAuthService(&fakeUserRepo{}, auditRepo, &fakeNewsletterRepo{}, testJWTConfig())

	require.NoError(t, svc.Logout(context.Background(), 7))

	require.Len(t, auditRepo.entries, 1)
	entry := auditRepo.entries[0]
	assert.Equal(t, "logout", entry.Action)
	assert.Equal(t, "user", entry.ResourceType)

	var details map[string]string
	require.NoError(t, json.Unmarshal([]byte(entry.Details), &details))
	_, err := time.Parse(time.RFC3339, details["timestamp"])
	assert.NoError(t, err)
}

func TestLogout_MissingUserIsNoOp(t *testing.T) {
	auditRepo := &fakeAuditRepo{}
	svc := NewAuthService(&fakeUserRepo{}, auditRepo, &fakeNewsletterRepo{}, testJWTConfig())

	require.NoError(t, svc.Logout(context.Background(), 0))
	assert.Empty(t, auditRepo.entries)
}

func TestValidateToken_Expired(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessTokenExpiresIn = -time.Minute
	user := activeUser(t, "s3cret")
	svc := NewAuthService(
		&fakeUserRepo{users: map[string]*model.User{"alice": user}},
		&fakeAuditRepo{},
		&fakeNewsletterRepo{},
		cfg,
	)

	resp, err := svc.Login(context.Background(), &model.DTOLoginRequest{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), resp.AccessToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{}, &fakeAuditRepo{}, &fakeNewsletterRepo{}, testJWTConfig())

	_, err := svc.ValidateToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
