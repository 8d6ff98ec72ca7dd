package main

import (
	"context"
	"flag"
	"log"
	"strconv"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/openchess/tournhall/cmd/auditd/handlers"
	"github.com/openchess/tournhall/cmd/auditd/recorder"
	kcfg "github.com/openchess/tournhall/pkg/configs"
	kpool "github.com/openchess/tournhall/pkg/conn/db/postgres/pool"
	kdbaudit "github.com/openchess/tournhall/pkg/domain/audit/db"
	kpgaudit "github.com/openchess/tournhall/pkg/domain/audit/db/postgres"
	"github.com/openchess/tournhall/pkg/utils/echoutil"
	"github.com/openchess/tournhall/pkg/utils/filewatch"
)

func main() {

	configPath := flag.String("config-path", "", "auditd config path")
	loglevel := flag.String("loglevel", "info", "log level. debug|info|warn|error|off")
	flag.Parse()

	e := echo.New()

	echoutil.SetLevel(e, *loglevel)
	e.HTTPErrorHandler = func(err error, ctx echo.Context) {
		e.DefaultHTTPErrorHandler(err, ctx)
		e.Logger.Error(err)
	}
	e.Use(echoutil.LogHandlerFunc)

	conf, err := kcfg.LoadAuditdConfig(*configPath)
	if err != nil {
		log.Fatalf("can not read configration: %s", err)
	}

	{
		ctx, cancel, err := filewatch.UntilModifyContext(context.Background(), *configPath)
		if err != nil {
			log.Fatalf("can not watch configration: %s", err)
		}
		defer cancel()
		context.AfterFunc(ctx, func() {
			log.Println("config file is updated. quit to restart server.")
			graceful, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := e.Shutdown(graceful); err != nil {
				log.Printf("error on shutdown by config update: %s", err)
			}
		})
	}

	// without a database, events are journaled to the spool only.
	var dbAudit kdbaudit.AuditInterface
	if conf.Database() != "" {
		pool, err := pgxpool.Connect(context.Background(), conf.Database())
		if err != nil {
			log.Fatalf("can not connect to database: %s", err)
		}
		defer pool.Close()
		dbAudit = kpgaudit.New(kpool.Wrap(pool))
	}
	rec := recorder.New(conf.Spool(), dbAudit, log.Default())

	e.POST("/api/audit", handlers.PostEventHandler(rec))
	e.GET("/api/audit", handlers.FindEventsHandler(dbAudit))

	port := strconv.Itoa(int(conf.Port()))
	e.Logger.Fatal(e.Start(":" + port))
}
