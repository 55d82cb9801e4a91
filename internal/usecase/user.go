package usecase

import (
	"errors"
	"net/mail"
	"strings"

	"moneymgr/internal/entity"
)

type Login struct {
	repo userRepository
}

func NewLogin(repo userRepository) *Login {
	return &Login{
		repo: repo,
	}
}

func (u *Login) Execute(name, email string) (entity.User, error) {
	user := entity.User{Name: strings.TrimSpace(name), Email: strings.TrimSpace(email)}
	if user.Name == "" {
		return entity.User{}, &entity.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if _, err := mail.ParseAddress(user.Email); err != nil {
		return entity.User{}, &entity.ValidationError{Field: "email", Reason: "is not an email address"}
	}

	if err := u.repo.Save(user); err != nil {
		return entity.User{}, err
	}
	return user, nil
}

type Logout struct {
	repo userRepository
}

func NewLogout(repo userRepository) *Logout {
	return &Logout{
		repo: repo,
	}
}

func (u *Logout) Execute() error {
	return u.repo.Delete()
}

type CurrentUser struct {
	repo userRepository
}

func NewCurrentUser(repo userRepository) *CurrentUser {
	return &CurrentUser{
		repo: repo,
	}
}

func (u *CurrentUser) Execute() (entity.User, bool, error) {
	user, err := u.repo.Get()
	if err != nil {
		if errors.Is(err, entity.UserNotFoundErr) {
			return entity.User{}, false, nil
		}
		return entity.User{}, false, err
	}
	return user, true, nil
}
