// Package session holds the signed-in state of one browser: the bearer token
// returned by the API and the identity decoded from it. Role checks made here
// only decide which controls are shown. The API is the sole trust boundary.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"intwork/internal/models"
)

var ErrMalformedToken = errors.New("malformed token")

// Session is empty when nobody is signed in.
type Session struct {
	Token string
	User  *models.UserView
}

func (s Session) LoggedIn() bool {
	return s.Token != ""
}

func (s Session) Username() string {
	if s.User == nil {
		return ""
	}
	return s.User.Username
}

func (s Session) Role() models.Role {
	if !s.LoggedIn() || s.User == nil {
		return ""
	}
	return s.User.Role
}

func (s Session) IsAdmin() bool {
	return s.Role() == models.RoleAdmin
}

// IsStaff reports whether the applications and dashboard pages are shown.
func (s Session) IsStaff() bool {
	role := s.Role()
	return role == models.RoleAdmin || role == models.RoleManager
}

// CanManage reports whether edit and delete controls are shown for content written by author.
func (s Session) CanManage(author string) bool {
	if !s.LoggedIn() {
		return false
	}
	return s.IsAdmin() || (author != "" && s.Username() == author)
}

func Login(_ Session, token string, user models.UserView) Session {
	return Session{Token: token, User: &user}
}

func Logout(Session) Session {
	return Session{}
}

// DecodeToken reads the identity claims of a JWT without checking its
// signature. The result is only used for display.
func DecodeToken(token string) (models.UserView, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return models.UserView{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	username, _ := claims["sub"].(string)
	if username == "" {
		username, _ = claims["username"].(string)
	}
	if username == "" {
		return models.UserView{}, fmt.Errorf("%w: no subject claim", ErrMalformedToken)
	}

	return models.UserView{
		Username: username,
		Role:     normalizeRole(claims["role"]),
	}, nil
}

func normalizeRole(claim any) models.Role {
	var raw string
	switch v := claim.(type) {
	case string:
		raw = v
	case []any:
		if len(v) > 0 {
			raw, _ = v[0].(string)
		}
	}

	role := models.Role(strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(raw)), "ROLE_"))
	for _, known := range models.Roles {
		if role == known {
			return role
		}
	}
	return models.RoleUser
}

// parseUser treats missing or malformed stored JSON as no user.
func parseUser(raw string) *models.UserView {
	if raw == "" || raw == "undefined" || raw == "null" {
		return nil
	}
	var user models.UserView
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil
	}
	if user.Username == "" && user.Role == "" {
		return nil
	}
	return &user
}
