package user

import (
	"context"
	"time"

	"github.com/BruksfildServices01/crime-detection/internal/auth"
)

type Logout struct {
	blacklist auth.Blacklist
	now       func() time.Time
}

func NewLogout(blacklist auth.Blacklist) *Logout {
	return &Logout{
		blacklist: blacklist,
		now:       time.Now,
	}
}

// Execute revokes the token until it would have expired anyway.
func (uc *Logout) Execute(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	ttl := claims.ExpiresAt.Time.Sub(uc.now())
	return uc.blacklist.Revoke(ctx, claims.ID, ttl)
}
