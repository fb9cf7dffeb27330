//go:build unit || e2e

package builder

import (
	"marketplace-api/internal/domain/user"
	"marketplace-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserBuilder struct {
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		Email:        "buyer@example.com",
		PasswordHash: "hashed_password",
		Role:         "buyer",
		IsActive:     true,
	}
}

func (b *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(b)
	return b
}

func (b *UserBuilder) BuildDomain() (*user.User, error) {
	email, err := user.NewEmail(b.Email)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(b.Role)
	if err != nil {
		return nil, err
	}
	return user.NewUser(email, b.PasswordHash, role), nil
}

func (b *UserBuilder) BuildReadModel() *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:       uuid.New(),
		Email:    b.Email,
		Role:     b.Role,
		IsActive: b.IsActive,
	}
}
