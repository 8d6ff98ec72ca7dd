package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	apierr "github.com/openchess/tournhall/pkg/api/types/errors"
	apiusers "github.com/openchess/tournhall/pkg/api/types/users"
	"github.com/openchess/tournhall/pkg/audit"
	"github.com/openchess/tournhall/pkg/domain"
	kdbuser "github.com/openchess/tournhall/pkg/domain/user/db"
	"golang.org/x/crypto/bcrypt"
)

func CreateUserHandler(dbUser kdbuser.UserInterface, auditor audit.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := apiusers.NewUserRequest{}
		decoder := json.NewDecoder(c.Request().Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			return apierr.NewErrorMessage(
				http.StatusBadRequest,
				"format error",
				apierr.WithAdvice(err.Error()),
				apierr.WithError(err),
			)
		}

		if req.Username == "" || req.Password == "" {
			return apierr.BadRequest("username and password are required", nil)
		}
		role, err := domain.AsRole(req.Role)
		if err != nil {
			return apierr.BadRequest(`role should be one of "manager", "player", "coach" or "arbiter"`, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		spec, err := req.ToSpec(role, string(hash))
		if err != nil {
			return apierr.BadRequest("date_of_birth should be formatted as YYYY-MM-DD", err)
		}

		ctx := c.Request().Context()
		if err := dbUser.New(ctx, spec); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				return apierr.Conflict("username is taken", apierr.WithError(err))
			}
			if errors.Is(err, domain.ErrMissing) {
				return apierr.BadRequest("a referenced team or title does not exist", err)
			}
			return apierr.InternalServerError(err)
		}

		identity, _ := IdentityOf(c)
		auditor.Emit(domain.AuditEvent{
			EventType: domain.AuditUserCreated,
			Username:  identity.Username,
			Details: map[string]string{
				"created_username": req.Username,
				"created_role":     role.String(),
			},
			IpAddress: c.RealIP(),
			UserAgent: c.Request().UserAgent(),
		})

		return c.JSON(http.StatusCreated, apiusers.Detail{
			Username: req.Username,
			Role:     role.String(),
		})
	}
}
