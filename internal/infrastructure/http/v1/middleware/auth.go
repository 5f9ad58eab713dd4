package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"farmledger/internal/core/actor"
	"farmledger/internal/core/apperror"
)

// ActorClaims are the JWT claims the farm backend cares about.
type ActorClaims struct {
	Name string `json:"name,omitempty"`
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenParser validates bearer tokens and produces the acting user.
type TokenParser struct {
	secret []byte
}

// NewTokenParser creates a parser for HMAC-signed tokens.
func NewTokenParser(secret string) *TokenParser {
	return &TokenParser{secret: []byte(secret)}
}

// Parse validates the token and extracts the actor.
func (p *TokenParser) Parse(tokenString string) (*actor.Actor, error) {
	claims := &ActorClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	return &actor.Actor{
		ID:   claims.Subject,
		Name: claims.Name,
		Role: claims.Role,
	}, nil
}

// Auth middleware validates the bearer token and populates the actor
// context. It does no role or permission checking: every authenticated
// user may call every operation.
func Auth(parser *TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			_ = c.Error(apperror.NewUnauthorized("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			_ = c.Error(apperror.NewUnauthorized("invalid authorization header format"))
			c.Abort()
			return
		}

		a, err := parser.Parse(parts[1])
		if err != nil {
			_ = c.Error(apperror.NewUnauthorized("invalid token"))
			c.Abort()
			return
		}

		ctx := actor.WithActor(c.Request.Context(), a)
		c.Request = c.Request.WithContext(ctx)
		c.Set("actor_id", a.ID)

		c.Next()
	}
}
