package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/joshua-takyi/grooviti/internal/helpers"
	"github.com/joshua-takyi/grooviti/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type UserService struct {
	userRepo models.UserRepo
	tokens   *helpers.TokenIssuer
}

func NewUserService(userRepo models.UserRepo, tokens *helpers.TokenIssuer) *UserService {
	return &UserService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (us *UserService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := models.Validate.Struct(req); err != nil {
		return nil, err
	}

	hash, err := helpers.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}
	account, err := us.userRepo.CreateUser(ctx, &models.Account{
		User:         models.User{Name: req.Name, Email: req.Email},
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}
	return &account.User, nil
}

// Login checks the credentials and returns a signed bearer token.
func (us *UserService) Login(ctx context.Context, req models.LoginRequest) (string, *models.User, error) {
	if err := models.Validate.Struct(req); err != nil {
		return "", nil, err
	}
	account, err := us.userRepo.GetUserByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return "", nil, err
	}
	if account == nil || !helpers.CheckPassword(account.PasswordHash, req.Password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := us.tokens.Issue(account.ID, account.Email)
	if err != nil {
		return "", nil, err
	}
	return token, &account.User, nil
}

func (us *UserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("invalid user ID")
	}
	account, err := us.userRepo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrUserNotFound
	}
	return &account.User, nil
}

func (us *UserService) Tokens() *helpers.TokenIssuer {
	return us.tokens
}
