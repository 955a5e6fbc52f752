package users

import (
	"context"
	"errors"
	"fmt"
	"mindwell/internal/auth"

	"github.com/sirupsen/logrus"
)

var (
	ErrUserNotFound       = errors.New("пользователь не найден")
	ErrUserAlreadyExists  = errors.New("пользователь с таким именем уже существует")
	ErrEmailAlreadyExists = errors.New("пользователь с таким email уже существует")
	ErrInvalidCredentials = errors.New("неверное имя пользователя или пароль")
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Register(ctx context.Context, username, email, password string) (*User, error) {
	existingUser, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		logrus.Errorf("Ошибка при проверке существующего пользователя '%s': %v", username, err)
		return nil, fmt.Errorf("внутренняя ошибка сервера при проверке пользователя")
	}
	if existingUser != nil {
		return nil, ErrUserAlreadyExists
	}

	existingByEmail, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		logrus.Errorf("Ошибка при проверке email '%s': %v", email, err)
		return nil, fmt.Errorf("внутренняя ошибка сервера при проверке email")
	}
	if existingByEmail != nil {
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		logrus.Errorf("Ошибка хеширования пароля для пользователя '%s': %v", username, err)
		return nil, fmt.Errorf("внутренняя ошибка сервера при хешировании пароля")
	}

	user, err := s.repo.CreateUser(ctx, username, email, hashedPassword)
	if err != nil {
		logrus.Errorf("Ошибка создания пользователя '%s' в репозитории: %v", username, err)
		return nil, fmt.Errorf("внутренняя ошибка сервера при создании пользователя")
	}
	return user, nil
}

func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		logrus.Errorf("Ошибка при получении пользователя '%s' для аутентификации: %v", username, err)
		return nil, fmt.Errorf("внутренняя ошибка сервера при аутентификации")
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *Service) GetUserByID(ctx context.Context, id int64) (*User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		logrus.Errorf("Ошибка при получении пользователя по ID %d: %v", id, err)
		return nil, fmt.Errorf("внутренняя ошибка сервера")
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
