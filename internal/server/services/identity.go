// Package services implements the domain operations behind the HTTP API:
// identity, listings, comments and favorites. Services are constructed once
// at startup and injected into the transport layer.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/aslanbek/shanyrak/internal/common"
	"github.com/aslanbek/shanyrak/internal/server/auth"
	"github.com/aslanbek/shanyrak/internal/server/config"
	"github.com/aslanbek/shanyrak/internal/server/models"
	"github.com/aslanbek/shanyrak/internal/server/repositories/repomanager"
	"github.com/aslanbek/shanyrak/internal/server/repositories/users"
	"github.com/aslanbek/shanyrak/internal/server/validation"
)

type RegisterParams struct {
	Username string
	Phone    string
	Password string
	Name     string
	City     string
}

// Profile is the public view of a user account.
type Profile struct {
	Username string
	Phone    string
	Name     string
	City     string
}

// ProfileUpdate is a partial profile change. Nil fields stay untouched.
type ProfileUpdate struct {
	Phone *string
	Name  *string
	City  *string
}

type IdentityService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	jwtSecret   []byte
	accessTTL   time.Duration
}

func NewIdentityService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *IdentityService {
	return &IdentityService{
		db:          db,
		repomanager: m,
		jwtSecret:   []byte(cfg.Token.Secret),
		accessTTL:   cfg.Token.AccessTTL,
	}
}

// Register validates every field, hashes the password and creates the
// account. A taken username or phone surfaces as common.ErrConflict.
func (s *IdentityService) Register(ctx context.Context, p RegisterParams) (int64, error) {

	if err := validation.Username(p.Username); err != nil {
		return 0, err
	}
	if err := validation.Phone(p.Phone); err != nil {
		return 0, err
	}
	if err := validation.Password(p.Password); err != nil {
		return 0, err
	}
	if err := validation.Name(p.Name); err != nil {
		return 0, err
	}
	if err := validation.City(p.City); err != nil {
		return 0, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:     p.Username,
		Phone:        p.Phone,
		PasswordHash: string(hash),
		Name:         p.Name,
		City:         p.City,
	}

	id, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return 0, common.ErrConflict
		}
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

// Login checks the credentials and returns a signed access token. Both an
// unknown username and a wrong password map to common.ErrUnauthorized so the
// response does not reveal which one failed.
func (s *IdentityService) Login(ctx context.Context, username, password string) (string, error) {

	user, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrUnauthorized
		}
		return "", common.ErrInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", common.ErrUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTTL)
	if err != nil {
		return "", common.ErrInternal
	}

	return token, nil
}

// Authenticate resolves a bearer token to the user id it carries.
func (s *IdentityService) Authenticate(ctx context.Context, token string) (int64, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}

func (s *IdentityService) GetProfile(ctx context.Context, userID int64) (*Profile, error) {

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	return &Profile{
		Username: user.Username,
		Phone:    user.Phone,
		Name:     user.Name,
		City:     user.City,
	}, nil
}

// UpdateProfile validates each supplied field with the registration rules and
// applies only those fields.
func (s *IdentityService) UpdateProfile(ctx context.Context, userID int64, upd ProfileUpdate) error {

	if upd.Phone != nil {
		if err := validation.Phone(*upd.Phone); err != nil {
			return err
		}
	}
	if upd.Name != nil {
		if err := validation.Name(*upd.Name); err != nil {
			return err
		}
	}
	if upd.City != nil {
		if err := validation.City(*upd.City); err != nil {
			return err
		}
	}

	err := s.repomanager.Users(s.db).Update(ctx, userID, users.Update{
		Phone: upd.Phone,
		Name:  upd.Name,
		City:  upd.City,
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrConflict) {
			return err
		}
		return fmt.Errorf("error updating user: %w", err)
	}

	return nil
}
