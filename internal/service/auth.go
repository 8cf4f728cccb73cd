package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/techhub-shop/techhub/internal/hash"
	"github.com/techhub-shop/techhub/internal/logging"
	"github.com/techhub-shop/techhub/internal/models"
	"github.com/techhub-shop/techhub/internal/mykafka"
	"github.com/techhub-shop/techhub/internal/repo"
	"github.com/techhub-shop/techhub/internal/token"
)

var (
	ErrValidation         = errors.New("validation")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AuthService struct {
	Repo   *repo.GormRepo
	Tokens *token.Service
	Events mykafka.Publisher
}

func (s *AuthService) Register(ctx context.Context, username, email, password string, isAdmin bool) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || password == "" {
		return nil, ErrValidation
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrValidation
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: pwHash,
		IsAdmin:      isAdmin,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrUserExists) {
			l.Warn("register_conflict", "username", username)
		} else {
			l.Error("register_error", "error", err)
		}
		return nil, err
	}

	s.publish(ctx, "user_events", user, map[string]interface{}{
		"type":     "user_registered",
		"user_id":  user.ID,
		"username": user.Username,
	})

	l.Info("user_registered", "user_id", user.ID)
	return user, nil
}

// Login возвращает подписанный access-токен с username в subject.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// не раскрываем, существует ли пользователь
			return "", nil, ErrInvalidCredentials
		}
		l.Error("login_error", "error", err)
		return "", nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	accessToken, err := s.Tokens.Issue(user.Username)
	if err != nil {
		l.Error("login_error", "reason", "cannot sign token", "error", err)
		return "", nil, err
	}

	s.publish(ctx, "user_events", user, map[string]interface{}{
		"type":     "user_logged_in",
		"user_id":  user.ID,
		"username": user.Username,
	})

	l.Info("user_logged_in", "user_id", user.ID)
	return accessToken, user, nil
}

// CurrentUser превращает bearer-токен в пользователя. Любой отказ
// (подпись, срок, исчезнувший subject) наружу означает 401.
func (s *AuthService) CurrentUser(ctx context.Context, raw string) (*models.User, error) {
	subject, err := s.Tokens.Verify(raw)
	if err != nil {
		return nil, err
	}
	return s.Repo.FindByUsername(ctx, subject)
}

func (s *AuthService) publish(ctx context.Context, topic string, user *models.User, event map[string]interface{}) {
	if s.Events == nil {
		return
	}
	if err := s.Events.PublishEvent(ctx, topic, user.Username, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "topic", topic, "error", err)
	}
}
