// Package auth handles registration and password login. The session
// layer only ever sees an already-authenticated usr.
package auth

import (
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/mkeen/dodo/db"
	"github.com/mkeen/dodo/domain"
	"github.com/mkeen/dodo/util"
)

type Service struct {
	store *db.DB
}

func NewService(store *db.DB) *Service {
	return &Service{store: store}
}

// Register validates the profile fields, hashes the password and
// creates the account. Returns the allocated usr.
func (a *Service) Register(name, email, phone, password string) (string, error) {
	if ok, msg := util.IsValidName(name); !ok {
		return "", domain.InvalidInputf("%s", msg)
	}
	if ok, msg := util.IsValidEmail(email); !ok {
		return "", domain.InvalidInputf("%s", msg)
	}
	if ok, msg := util.IsValidPhone(phone); !ok {
		return "", domain.InvalidInputf("%s", msg)
	}
	if ok, msg := util.IsValidPassword(password); !ok {
		return "", domain.InvalidInputf("%s", msg)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", domain.StoreErrf("hash password: %s", err)
	}

	usr, err := a.store.CreateUser(name, email, phone, string(hash))
	if err != nil {
		return "", err
	}
	log.Printf("registered user %s", usr)
	return usr, nil
}

// Login checks the credentials and returns the user's profile. A
// missing user and a wrong password are indistinguishable to the
// caller.
func (a *Service) Login(usr, password string) (*domain.User, error) {
	err, hash := a.store.ReadPasswordHash(usr)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.InvalidInputf("invalid credentials")
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(*hash), []byte(password)) != nil {
		return nil, domain.InvalidInputf("invalid credentials")
	}

	err, user := a.store.ReadUser(usr)
	if err != nil {
		return nil, err
	}
	return user, nil
}
