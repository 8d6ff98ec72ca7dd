package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	httptestutil "github.com/openchess/tournhall/internal/testutils/http"
	apiauth "github.com/openchess/tournhall/pkg/api/types/auth"
	auditmock "github.com/openchess/tournhall/pkg/audit/mock"
	kcfg "github.com/openchess/tournhall/pkg/configs"
	"github.com/openchess/tournhall/pkg/domain"
	dbusermock "github.com/openchess/tournhall/pkg/domain/user/db/mock"
	"github.com/openchess/tournhall/pkg/utils/try"
	"golang.org/x/crypto/bcrypt"

	"github.com/openchess/tournhall/cmd/tournd/handlers"
)

func authConfig(t *testing.T) *kcfg.AuthConfig {
	t.Helper()
	return kcfg.TrySeal[*kcfg.AuthConfig](&kcfg.AuthConfigMarshall{
		SignKey: "test-sign-key", TokenTTL: "1h",
	})
}

func TestLoginHandler(t *testing.T) {

	hash := try.To(bcrypt.GenerateFromPassword(
		[]byte("open sesame"), bcrypt.MinCost,
	)).OrFatal(t)

	t.Run("it issues a token for a correct credential", func(t *testing.T) {
		conf := authConfig(t)
		mckuser := dbusermock.NewUserInterface()
		mckuser.Impl.Get = func(ctx context.Context, username string) (domain.User, error) {
			return domain.User{
				Username: "magnus", PasswordHash: string(hash), Role: domain.RolePlayer,
			}, nil
		}
		auditor := auditmock.NewClient()

		e := echo.New()
		c, respRec := httptestutil.Post(
			e, "/api/auth/login",
			strings.NewReader(`{"username": "magnus", "password": "open sesame"}`),
			httptestutil.ContentType("application/json"),
		)

		testee := handlers.LoginHandler(mckuser, conf, auditor)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}

		if respRec.Code != http.StatusOK {
			t.Fatalf("status code is not 200: %d", respRec.Code)
		}

		resp := apiauth.LoginResponse{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if resp.Username != "magnus" || resp.Role != "player" {
			t.Errorf("unmatch: response: %+v", resp)
		}

		identity := try.To(handlers.ParseSessionToken(conf, resp.Token)).OrFatal(t)
		if identity.Username != "magnus" || identity.Role != domain.RolePlayer {
			t.Errorf("unmatch: identity in token: %+v", identity)
		}

		if auditor.Calls.Emit.Times() != 1 {
			t.Fatalf("audit event is not emitted (times: %d)", auditor.Calls.Emit.Times())
		}
		if ev := auditor.Calls.Emit[0]; ev.EventType != domain.AuditLogin || ev.Username != "magnus" {
			t.Errorf("unmatch: audit event: %+v", ev)
		}
	})

	t.Run("it refuses a wrong password", func(t *testing.T) {
		conf := authConfig(t)
		mckuser := dbusermock.NewUserInterface()
		mckuser.Impl.Get = func(ctx context.Context, username string) (domain.User, error) {
			return domain.User{
				Username: "magnus", PasswordHash: string(hash), Role: domain.RolePlayer,
			}, nil
		}
		auditor := auditmock.NewClient()

		e := echo.New()
		c, _ := httptestutil.Post(
			e, "/api/auth/login",
			strings.NewReader(`{"username": "magnus", "password": "wrong"}`),
			httptestutil.ContentType("application/json"),
		)

		testee := handlers.LoginHandler(mckuser, conf, auditor)
		err := testee(c)
		if err == nil {
			t.Fatal("expected error does not occured")
		}
		httperr := new(echo.HTTPError)
		if !errors.As(err, &httperr) || httperr.Code != http.StatusUnauthorized {
			t.Errorf("unmatch: error: %+v", err)
		}
		if auditor.Calls.Emit.Times() != 0 {
			t.Error("audit event should not be emitted for a failed login")
		}
	})

	t.Run("it refuses an unknown user the same way", func(t *testing.T) {
		conf := authConfig(t)
		mckuser := dbusermock.NewUserInterface()
		mckuser.Impl.Get = func(ctx context.Context, username string) (domain.User, error) {
			return domain.User{}, domain.ErrMissing
		}
		auditor := auditmock.NewClient()

		e := echo.New()
		c, _ := httptestutil.Post(
			e, "/api/auth/login",
			strings.NewReader(`{"username": "nobody", "password": "whatever"}`),
			httptestutil.ContentType("application/json"),
		)

		testee := handlers.LoginHandler(mckuser, conf, auditor)
		err := testee(c)
		httperr := new(echo.HTTPError)
		if !errors.As(err, &httperr) || httperr.Code != http.StatusUnauthorized {
			t.Errorf("unmatch: error: %+v", err)
		}
	})
}

func TestAuthMiddleware(t *testing.T) {
	conf := authConfig(t)
	token := try.To(handlers.NewSessionToken(conf, domain.User{
		Username: "judit", Role: domain.RoleArbiter,
	})).OrFatal(t)

	inner := func(c echo.Context) error {
		identity, ok := handlers.IdentityOf(c)
		if !ok {
			t.Error("identity is not set")
		}
		if identity.Username != "judit" || identity.Role != domain.RoleArbiter {
			t.Errorf("unmatch: identity: %+v", identity)
		}
		return c.NoContent(http.StatusOK)
	}

	t.Run("it passes a request with a valid token", func(t *testing.T) {
		e := echo.New()
		c, respRec := httptestutil.Get(
			e, "/api/matches",
			httptestutil.WithHeader("Authorization", "Bearer "+token),
		)

		testee := handlers.AuthMiddleware(conf)(inner)
		if err := testee(c); err != nil {
			t.Fatal(err)
		}
		if respRec.Code != http.StatusOK {
			t.Errorf("status code is not 200: %d", respRec.Code)
		}
	})

	for name, header := range map[string][]string{
		"it refuses a request without a token": nil,
		"it refuses a non-bearer header":       {"Authorization", "Basic anVkaXQ6cGFzcw=="},
		"it refuses a garbage token":           {"Authorization", "Bearer not.a.token"},
	} {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			opts := []httptestutil.RequestOption{}
			if header != nil {
				opts = append(opts, httptestutil.WithHeader(header[0], header[1]))
			}
			c, _ := httptestutil.Get(e, "/api/matches", opts...)

			testee := handlers.AuthMiddleware(conf)(inner)
			err := testee(c)
			httperr := new(echo.HTTPError)
			if !errors.As(err, &httperr) || httperr.Code != http.StatusUnauthorized {
				t.Errorf("unmatch: error: %+v", err)
			}
		})
	}

	t.Run("it refuses a token signed with another key", func(t *testing.T) {
		otherConf := kcfg.TrySeal[*kcfg.AuthConfig](&kcfg.AuthConfigMarshall{
			SignKey: "other-key", TokenTTL: "1h",
		})
		otherToken := try.To(handlers.NewSessionToken(otherConf, domain.User{
			Username: "judit", Role: domain.RoleArbiter,
		})).OrFatal(t)

		e := echo.New()
		c, _ := httptestutil.Get(
			e, "/api/matches",
			httptestutil.WithHeader("Authorization", "Bearer "+otherToken),
		)

		testee := handlers.AuthMiddleware(conf)(inner)
		err := testee(c)
		httperr := new(echo.HTTPError)
		if !errors.As(err, &httperr) || httperr.Code != http.StatusUnauthorized {
			t.Errorf("unmatch: error: %+v", err)
		}
	})
}

func TestRequireRole(t *testing.T) {
	conf := authConfig(t)

	invoke := func(t *testing.T, role domain.Role, required ...domain.Role) error {
		t.Helper()
		token := try.To(handlers.NewSessionToken(conf, domain.User{
			Username: "someone", Role: role,
		})).OrFatal(t)

		e := echo.New()
		c, _ := httptestutil.Get(
			e, "/api/users",
			httptestutil.WithHeader("Authorization", "Bearer "+token),
		)

		testee := handlers.AuthMiddleware(conf)(
			handlers.RequireRole(required...)(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			}),
		)
		return testee(c)
	}

	t.Run("it passes a caller having the role", func(t *testing.T) {
		if err := invoke(t, domain.RoleManager, domain.RoleManager); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("it passes a caller having one of the roles", func(t *testing.T) {
		if err := invoke(t, domain.RoleCoach, domain.RoleManager, domain.RoleCoach); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("it refuses a caller lacking the role", func(t *testing.T) {
		err := invoke(t, domain.RolePlayer, domain.RoleManager)
		httperr := new(echo.HTTPError)
		if !errors.As(err, &httperr) || httperr.Code != http.StatusForbidden {
			t.Errorf("unmatch: error: %+v", err)
		}
	})
}
