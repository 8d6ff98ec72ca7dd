package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	apiauth "github.com/openchess/tournhall/pkg/api/types/auth"
	apierr "github.com/openchess/tournhall/pkg/api/types/errors"
	"github.com/openchess/tournhall/pkg/audit"
	kcfg "github.com/openchess/tournhall/pkg/configs"
	"github.com/openchess/tournhall/pkg/domain"
	kdbuser "github.com/openchess/tournhall/pkg/domain/user/db"
	"golang.org/x/crypto/bcrypt"
)

// Identity is the authenticated caller of a request.
type Identity struct {
	Username string
	Role     domain.Role
}

const identityContextKey = "tournhall/identity"

// SessionClaim is the JWT payload of a session token.
type SessionClaim struct {
	jwt.RegisteredClaims

	Role string `json:"tournhall/role"`
}

// NewSessionToken issues a signed session token for the user.
func NewSessionToken(conf *kcfg.AuthConfig, user domain.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaim{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(conf.TokenTTL())),
		},
		Role: user.Role.String(),
	})
	return token.SignedString([]byte(conf.SignKey()))
}

// ParseSessionToken verifies a session token and extracts the identity.
func ParseSessionToken(conf *kcfg.AuthConfig, token string) (Identity, error) {
	claims := &SessionClaim{}
	parsed, err := jwt.ParseWithClaims(
		token, claims,
		func(t *jwt.Token) (any, error) { return []byte(conf.SignKey()), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)
	if err != nil {
		return Identity{}, err
	}
	if !parsed.Valid {
		return Identity{}, errors.New("invalid session token")
	}

	role, err := domain.AsRole(claims.Role)
	if err != nil {
		return Identity{}, err
	}
	return Identity{Username: claims.Subject, Role: role}, nil
}

// AuthMiddleware parses the Bearer token and stores the caller identity
// in the request context.
func AuthMiddleware(conf *kcfg.AuthConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found {
				return apierr.Unauthorized("send a session token as Bearer token", nil)
			}

			identity, err := ParseSessionToken(conf, token)
			if err != nil {
				return apierr.Unauthorized("session token is invalid or expired. login again", err)
			}

			c.Set(identityContextKey, identity)
			return next(c)
		}
	}
}

// RequireRole refuses callers not having one of the roles.
func RequireRole(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityOf(c)
			if !ok {
				return apierr.Unauthorized("login first", nil)
			}
			for _, role := range roles {
				if identity.Role == role {
					return next(c)
				}
			}
			return apierr.Forbidden("your role may not do this")
		}
	}
}

// IdentityOf reads the identity set by AuthMiddleware.
func IdentityOf(c echo.Context) (Identity, bool) {
	identity, ok := c.Get(identityContextKey).(Identity)
	return identity, ok
}

func LoginHandler(
	dbUser kdbuser.UserInterface,
	conf *kcfg.AuthConfig,
	auditor audit.Client,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := apiauth.LoginRequest{}
		if err := c.Bind(&req); err != nil {
			return apierr.BadRequest("send username and password as json", err)
		}

		ctx := c.Request().Context()
		user, err := dbUser.Get(ctx, req.Username)
		if err != nil {
			if errors.Is(err, domain.ErrMissing) {
				return apierr.Unauthorized("username or password is wrong", domain.ErrBadCredential)
			}
			return apierr.InternalServerError(err)
		}

		if err := bcrypt.CompareHashAndPassword(
			[]byte(user.PasswordHash), []byte(req.Password),
		); err != nil {
			return apierr.Unauthorized("username or password is wrong", domain.ErrBadCredential)
		}

		token, err := NewSessionToken(conf, user)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		auditor.Emit(domain.AuditEvent{
			EventType: domain.AuditLogin,
			Username:  user.Username,
			IpAddress: c.RealIP(),
			UserAgent: c.Request().UserAgent(),
		})

		return c.JSON(http.StatusOK, apiauth.LoginResponse{
			Token:    token,
			Username: user.Username,
			Role:     user.Role.String(),
		})
	}
}

func LogoutHandler(auditor audit.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := IdentityOf(c)
		if !ok {
			return apierr.Unauthorized("login first", nil)
		}

		// tokens are stateless; logout is recorded for the audit trail
		// and the client drops the token.
		auditor.Emit(domain.AuditEvent{
			EventType: domain.AuditLogout,
			Username:  identity.Username,
			IpAddress: c.RealIP(),
			UserAgent: c.Request().UserAgent(),
		})

		return c.NoContent(http.StatusNoContent)
	}
}
