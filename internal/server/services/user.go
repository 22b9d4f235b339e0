// Package services contains the server-side business logic. UserService
// handles signup and login; login mints a session token on success.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pagescout/internal/common"
	"github.com/dmitrijs2005/pagescout/internal/dbx"
	"github.com/dmitrijs2005/pagescout/internal/server/auth"
	"github.com/dmitrijs2005/pagescout/internal/server/models"
	"github.com/dmitrijs2005/pagescout/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the most bcrypt will hash; longer input is rejected
// rather than silently truncated.
const maxPasswordBytes = 72

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenService
	hashCost    int
	dummyHash   []byte
}

// NewUserService constructs a UserService. hashCost is the bcrypt cost used
// for new passwords.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.TokenService, hashCost int) *UserService {
	dummy, err := bcrypt.GenerateFromPassword([]byte("pagescout-timing-equalizer"), hashCost)
	if err != nil {
		dummy, _ = bcrypt.GenerateFromPassword([]byte("pagescout-timing-equalizer"), bcrypt.DefaultCost)
	}
	return &UserService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		hashCost:    hashCost,
		dummyHash:   dummy,
	}
}

// Signup stores a new credential. It fails with common.ErrInvalidInput for an
// empty username or password and common.ErrAlreadyExists when the username
// is taken.
func (s *UserService) Signup(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrInvalidInput)
	}
	if len(password) > maxPasswordBytes {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", common.ErrInvalidInput, maxPasswordBytes)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %w", common.ErrInternal, err)
	}

	var created *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetByUsername(ctx, username)
		switch {
		case err == nil:
			return fmt.Errorf("%w: username %q", common.ErrAlreadyExists, username)
		case !errors.Is(err, common.ErrNotFound):
			return err
		}

		created, err = repo.Create(ctx, &models.User{Username: username, PasswordHash: string(hash)})
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: create user: %w", common.ErrInternal, err)
	}

	return created, nil
}

// Login checks the credential and returns a fresh session token. Unknown
// users and wrong passwords both yield common.ErrInvalidCredentials, and an
// unknown user still costs one hash comparison.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", fmt.Errorf("%w: username and password are required", common.ErrInvalidInput)
	}

	user, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return "", common.ErrInvalidCredentials
		}
		return "", fmt.Errorf("%w: lookup user: %w", common.ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", common.ErrInvalidCredentials
	}

	return s.tokens.Issue(user.Username)
}
