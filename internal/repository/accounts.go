package repository

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
	customError "github.com/channabasavaballolli/Edu-Pay/pkg/errors"
)

// Account is a local login used when the backend cannot authenticate.
type Account struct {
	User         domain.User
	PasswordHash []byte
}

func NewAccount(user domain.User, password string) (Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}
	return Account{User: user, PasswordHash: hash}, nil
}

// AccountStore checks credentials against bcrypt hashes.
type AccountStore struct {
	accounts []Account
}

func NewAccountStore(accounts []Account) *AccountStore {
	return &AccountStore{accounts: accounts}
}

// SeedAccounts builds the two demo logins.
func SeedAccounts() (*AccountStore, error) {
	admin, err := NewAccount(domain.User{ID: "admin1", Email: "admin@edupay.com", Name: "Admin User", Role: domain.RoleAdmin}, "admin123")
	if err != nil {
		return nil, err
	}
	student, err := NewAccount(domain.User{ID: "1", Email: "rahul@example.com", Name: "Rahul Sharma", Role: domain.RoleStudent}, "student123")
	if err != nil {
		return nil, err
	}
	return NewAccountStore([]Account{admin, student}), nil
}

func (s *AccountStore) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	for _, a := range s.accounts {
		if !strings.EqualFold(a.User.Email, strings.TrimSpace(email)) {
			continue
		}
		if err := bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(password)); err != nil {
			return nil, customError.WrapInvalidCredentials()
		}
		user := a.User
		return &user, nil
	}
	return nil, customError.WrapInvalidCredentials()
}
