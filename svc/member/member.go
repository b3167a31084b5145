package member

import (
	"context"
	"errors"

	"github.com/netandconnect/portal/pkg/sanitizer"
	"github.com/netandconnect/portal/pkg/token"
)

// Member is a club member as stored in the repository.
type Member struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Tokens   int    `json:"tokens"`
	Image    string `json:"image,omitempty"`
}

// UserData is the snapshot cached in session tokens.
func (m Member) UserData() *token.UserData {
	return &token.UserData{
		ID:       m.ID,
		Email:    m.Email,
		FullName: m.FullName,
		Tokens:   m.Tokens,
		Image:    m.Image,
	}
}

// Repository stores members. FindByEmail returns ErrMemberNotFound for
// unknown addresses.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*Member, error)
	Create(ctx context.Context, email, fullName string) (*Member, error)
	UpdateTokens(ctx context.Context, id string, tokens int) (*Member, error)
}

// GetOrCreate returns the member for email, registering it when unknown.
// The full name of a new member defaults to the local part of the email.
func GetOrCreate(ctx context.Context, repo Repository, email string) (*Member, bool, error) {
	email = sanitizer.NormalizeEmail(email)
	if email == "" {
		return nil, false, ErrInvalidEmail
	}

	m, err := repo.FindByEmail(ctx, email)
	if err == nil {
		return m, false, nil
	}
	if !errors.Is(err, ErrMemberNotFound) {
		return nil, false, err
	}

	m, err = repo.Create(ctx, email, sanitizer.EmailLocalPart(email))
	if err != nil {
		return nil, false, err
	}
	return m, true, nil
}
