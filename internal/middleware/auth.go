package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/crime-detection/internal/auth"
	"github.com/BruksfildServices01/crime-detection/internal/domain/user"
	"github.com/BruksfildServices01/crime-detection/internal/httperr"
	"github.com/BruksfildServices01/crime-detection/internal/models"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextUser     = "user"
	ContextClaims   = "claims"
)

type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// UserLoader is the part of the user repository the middleware needs.
type UserLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

func AuthMiddleware(
	tokens TokenParser,
	blacklist auth.Blacklist,
	users UserLoader,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "Authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_authorization_header", "Expected a bearer token")
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Could not validate credentials")
			return
		}

		revoked, err := blacklist.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			_ = c.Error(err)
			httperr.Abort(c, http.StatusInternalServerError, "internal_error", "Internal server error")
			return
		}
		if revoked {
			httperr.Abort(c, http.StatusUnauthorized, "token_revoked", "Token has been revoked")
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token_payload", "Could not validate credentials")
			return
		}

		u, err := users.FindByID(c.Request.Context(), userID)
		if errors.Is(err, user.ErrNotFound) {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Could not validate credentials")
			return
		}
		if err != nil {
			_ = c.Error(err)
			httperr.Abort(c, http.StatusInternalServerError, "internal_error", "Internal server error")
			return
		}
		if !u.IsActive {
			httperr.Abort(c, http.StatusForbidden, httperr.CodeUserInactive, "User account is disabled")
			return
		}

		c.Set(ContextUserID, u.ID)
		c.Set(ContextUserRole, u.Role)
		c.Set(ContextUser, u)
		c.Set(ContextClaims, claims)

		c.Next()
	}
}

// CurrentUserID is only valid behind AuthMiddleware.
func CurrentUserID(c *gin.Context) uuid.UUID {
	id, _ := c.Get(ContextUserID)
	userID, _ := id.(uuid.UUID)
	return userID
}

func CurrentUser(c *gin.Context) *models.User {
	v, _ := c.Get(ContextUser)
	u, _ := v.(*models.User)
	return u
}

func CurrentClaims(c *gin.Context) *auth.Claims {
	v, _ := c.Get(ContextClaims)
	claims, _ := v.(*auth.Claims)
	return claims
}
