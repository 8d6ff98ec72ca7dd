package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/openchess/tournhall/cmd/auditd/recorder"
	apierr "github.com/openchess/tournhall/pkg/api/types/errors"
	"github.com/openchess/tournhall/pkg/domain"
	kdbaudit "github.com/openchess/tournhall/pkg/domain/audit/db"
)

func PostEventHandler(rec *recorder.Recorder) echo.HandlerFunc {
	return func(c echo.Context) error {
		event := domain.AuditEvent{}
		if err := c.Bind(&event); err != nil {
			return apierr.BadRequest("send an audit event as json", err)
		}
		if event.EventType == "" {
			return apierr.BadRequest("event_type should not be empty", nil)
		}

		ctx := c.Request().Context()
		if err := rec.Record(ctx, event); err != nil {
			return apierr.InternalServerError(err)
		}
		return c.NoContent(http.StatusAccepted)
	}
}

func FindEventsHandler(dbAudit kdbaudit.AuditInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		if dbAudit == nil {
			return apierr.ServiceUnavailable("no database is configured; read the spool files", nil)
		}
		username := c.QueryParam("username")

		ctx := c.Request().Context()
		events, err := dbAudit.Find(ctx, username)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, events)
	}
}
