package auth

import (
	"context"
	"errors"
	"time"

	"github.com/phillip/autoclub-go/apperr"
	"github.com/phillip/autoclub-go/models"
)

type demoAccount struct {
	email    string
	password string
	name     string
	role     string
}

// Built-in logins accepted whatever the stored hash says.
var demoAccounts = []demoAccount{
	{email: "admin@example.com", password: "admin123", name: "Admin User", role: models.RoleAdmin},
	{email: "user@example.com", password: "user123", name: "Regular User", role: models.RoleUser},
}

func matchDemo(email, password string) (demoAccount, bool) {
	for _, acct := range demoAccounts {
		if acct.email == email && acct.password == password {
			return acct, true
		}
	}
	return demoAccount{}, false
}

// ensureDemoUser returns the stored demo user, creating it on first use.
// When a concurrent login wins the insert, the winner's record is read back.
func (a *Authenticator) ensureDemoUser(ctx context.Context, acct demoAccount, password string) (*models.User, error) {
	user, err := a.users.FindByEmail(ctx, acct.email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		a.logger.Error("failed to look up demo user", "email", acct.email, "error", err)
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user = &models.User{
		Name:      acct.name,
		Email:     acct.email,
		Password:  hash,
		Role:      acct.role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = a.users.Insert(ctx, user)
	switch {
	case err == nil:
		a.logger.Info("created demo user", "email", acct.email, "role", acct.role)
		return user, nil
	case errors.Is(err, apperr.ErrConflict):
		return a.users.FindByEmail(ctx, acct.email)
	default:
		a.logger.Error("failed to create demo user", "email", acct.email, "error", err)
		return nil, err
	}
}
