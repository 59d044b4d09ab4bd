package service

import (
	"context"
	"fmt"
	"time"

	appErr "github.com/gridwatch/gridboard/internal/pkg/errors"
	"github.com/gridwatch/gridboard/internal/pkg/jwt"
	"github.com/gridwatch/gridboard/internal/pkg/password"
	"github.com/gridwatch/gridboard/internal/pkg/timeutil"

	"github.com/gridwatch/gridboard/internal/model"
)

type AuthService struct {
	users     UserStore
	resets    ResetStore
	mailer    EmailSender
	jwtSecret []byte
	jwtTTL    time.Duration
	resetTTL  time.Duration
}

func NewAuthService(users UserStore, resets ResetStore, mailer EmailSender, secret []byte, ttl, resetTTL time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		resets:    resets,
		mailer:    mailer,
		jwtSecret: secret,
		jwtTTL:    ttl,
		resetTTL:  resetTTL,
	}
}

func (s *AuthService) Register(ctx context.Context, username, email, plainPassword string) (*model.User, error) {
	if username == "" || email == "" {
		return nil, appErr.ErrInvalid
	}
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, appErr.ErrConflict
	} else if !appErr.IsNotFound(err) {
		return nil, err
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, appErr.ErrConflict
	} else if !appErr.IsNotFound(err) {
		return nil, err
	}
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	user := &model.User{
		ID:           newID(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Ctime:        now,
		Mtime:        now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a username/password pair and issues a bearer
// token. Unknown user and wrong password both map to ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, username, plainPassword string) (*model.User, string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", appErr.ErrUnauthorized
	}
	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return nil, "", appErr.ErrUnauthorized
	}
	token, err := jwt.GenerateToken(user.ID, user.Username, user.Email, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// RequestReset stores a fresh single-use reset token for the user
// (replacing any earlier one) and mails it out.
func (s *AuthService) RequestReset(ctx context.Context, username string) error {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	now := timeutil.NowUnix()
	reset := &model.PasswordReset{
		ID:       newID(),
		Username: user.Username,
		Token:    newToken(),
		ExpireAt: now + int64(s.resetTTL/time.Second),
		Ctime:    now,
	}
	if err := s.resets.Replace(ctx, reset); err != nil {
		return err
	}
	body := fmt.Sprintf("A password change was requested for your account.\n\nReset token: %s\n\nThe token expires in %s.", reset.Token, s.resetTTL)
	return s.mailer.Send(user.Email, "Forgot Password", body)
}

// ChangePassword consumes the caller's pending reset token and stores
// a fresh digest. A missing or expired token fails with
// ErrResetExpired so the handler can answer 410 Gone.
func (s *AuthService) ChangePassword(ctx context.Context, userID, plainPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	reset, err := s.resets.Consume(ctx, user.Username)
	if err != nil {
		if appErr.IsNotFound(err) {
			return appErr.ErrResetExpired
		}
		return err
	}
	if reset.ExpireAt < timeutil.NowUnix() {
		return appErr.ErrResetExpired
	}
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.ID, hash, timeutil.NowUnix())
}
