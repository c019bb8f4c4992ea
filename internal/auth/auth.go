// Package auth issues and validates the bearer tokens protecting the API and
// resolves each request to an Actor carrying its ownership scope.
package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/lfms6164/digital-folder-api/internal/apperr"
	"github.com/lfms6164/digital-folder-api/internal/config"
	"github.com/lfms6164/digital-folder-api/internal/models"
	"github.com/lfms6164/digital-folder-api/internal/store"
)

// ActorContextKey is the key used to store the actor in the Gin context.
const ActorContextKey = "actor"

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword checks if a password matches the hash
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Claims represents JWT claims
type Claims struct {
	UserID string `json:"id"` // UUID stored as string
	jwt.RegisteredClaims
}

// Authenticator signs tokens and authenticates requests.
type Authenticator struct {
	store  *store.Store
	secret []byte
	expiry time.Duration
}

// New creates an Authenticator.
func New(s *store.Store, cfg config.AuthConfig) *Authenticator {
	expiry := time.Duration(cfg.TokenExpiryMinutes) * time.Minute
	if expiry <= 0 {
		expiry = 30 * time.Minute
	}
	return &Authenticator{
		store:  s,
		secret: []byte(cfg.JWTSecret),
		expiry: expiry,
	}
}

// GenerateToken creates a signed JWT for a user id.
func (a *Authenticator) GenerateToken(userID uuid.UUID) (string, error) {
	claims := Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "digital-folder",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// validateToken validates a JWT token and returns claims
func (a *Authenticator) validateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, &apperr.AuthenticationError{Message: "invalid or expired token"}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, &apperr.AuthenticationError{Message: "invalid token claims"}
	}
	return claims, nil
}

// Actor resolves a validated token into the acting user with its ownership
// scope. Viewers are scoped to the admin user's rows; users to their own.
func (a *Authenticator) Actor(tokenString string) (*models.Actor, error) {
	claims, err := a.validateToken(tokenString)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, &apperr.AuthenticationError{Message: "invalid user id in token"}
	}

	user, err := store.GetByID[models.User](a.store, userID)
	if err != nil {
		return nil, err
	}

	actor := &models.Actor{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	}

	switch user.Role {
	case models.RoleUser:
		id := user.ID
		actor.FilterID = &id
	case models.RoleViewer:
		admin, err := store.GetByField[models.User](a.store, models.RoleAdmin, "role")
		if err != nil {
			return nil, err
		}
		actor.FilterID = &admin.ID
	}

	return actor, nil
}

// Middleware authenticates the Bearer token and stores the actor in the
// request context.
func (a *Authenticator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		actor, err := a.Actor(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(ActorContextKey, actor)
		c.Next()
	}
}

// ActorFromContext extracts the authenticated actor from the Gin context.
func ActorFromContext(c *gin.Context) (*models.Actor, error) {
	value, exists := c.Get(ActorContextKey)
	if !exists {
		return nil, &apperr.AuthenticationError{Message: "unauthenticated"}
	}
	actor, ok := value.(*models.Actor)
	if !ok {
		return nil, &apperr.AuthenticationError{Message: "invalid actor in context"}
	}
	return actor, nil
}

// RequireWriter rejects mutation requests from read-only roles.
func RequireWriter() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := ActorFromContext(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			c.Abort()
			return
		}
		if !actor.CanWrite() {
			c.JSON(http.StatusForbidden, gin.H{"error": fmt.Sprintf("user %s does not have permission to perform this action", actor.ID)})
			c.Abort()
			return
		}
		c.Next()
	}
}
