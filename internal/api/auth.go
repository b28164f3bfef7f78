package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Roles understood by the API. ADMIN passes every role gate.
const (
	RoleAdmin   = "ADMIN"
	RoleOfficer = "OFFICER"
)

const tokenTTL = 60 * time.Minute

// User is an API account with a bcrypt password hash.
type User struct {
	Username     string
	PasswordHash []byte
	Role         string
}

// NewUser hashes the given password and returns a ready account.
func NewUser(username, password, role string) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password for %s: %w", username, err)
	}
	return User{Username: username, PasswordHash: hash, Role: role}, nil
}

// Auth issues and validates HS256 bearer tokens and guards routes by role.
type Auth struct {
	secret []byte
	users  map[string]User
}

func NewAuth(secret string, users []User) *Auth {
	byName := make(map[string]User, len(users))
	for _, u := range users {
		byName[u.Username] = u
	}
	return &Auth{secret: []byte(secret), users: byName}
}

// Login checks credentials and returns a signed token plus the user's role.
func (a *Auth) Login(username, password string) (string, string, error) {
	user, ok := a.users[username]
	if !ok {
		return "", "", fmt.Errorf("unknown user")
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return "", "", fmt.Errorf("wrong password")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.Username,
		"role": user.Role,
		"exp":  time.Now().Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign token: %w", err)
	}
	return signed, user.Role, nil
}

// Claims carries the authenticated identity extracted from a token.
type Claims struct {
	Username string
	Role     string
}

func (a *Auth) validateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" {
		return nil, fmt.Errorf("token missing subject")
	}
	return &Claims{Username: sub, Role: role}, nil
}

type contextKeyClaims struct{}

// ClaimsFrom returns the authenticated claims stored on the request context,
// or nil on unauthenticated routes.
func ClaimsFrom(ctx context.Context) *Claims {
	claims, _ := ctx.Value(contextKeyClaims{}).(*Claims)
	return claims
}

// RequireRole returns middleware that rejects requests without a valid
// bearer token for the given role. ADMIN is accepted everywhere.
func (a *Auth) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := a.validateToken(tokenString)
			if err != nil {
				log.Printf("[api] rejected token: %v", err)
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			if claims.Role != role && claims.Role != RoleAdmin {
				writeError(w, http.StatusForbidden, "access denied")
				return
			}

			ctx := context.WithValue(r.Context(), contextKeyClaims{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
