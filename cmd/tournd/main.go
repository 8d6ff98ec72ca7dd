package main

import (
	"context"
	"flag"
	"log"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/openchess/tournhall/cmd/tournd/handlers"
	"github.com/openchess/tournhall/pkg/audit"
	"github.com/openchess/tournhall/pkg/cache"
	kcfg "github.com/openchess/tournhall/pkg/configs"
	"github.com/openchess/tournhall/pkg/domain"
	"github.com/openchess/tournhall/pkg/domain/tournament"
	"github.com/openchess/tournhall/pkg/utils/echoutil"
	"github.com/openchess/tournhall/pkg/utils/filewatch"
)

func main() {

	configPath := flag.String("config-path", "", "tournd config path")
	schemaRepo := flag.String("schema-repo", "", "path to the schema repository (optional; enables restart on schema upgrade)")
	loglevel := flag.String("loglevel", "info", "log level. debug|info|warn|error|off")
	pcert := flag.String("cert", "", "certification file for TLS")
	pkey := flag.String("certkey", "", "key of certification file for TLS")
	flag.Parse()

	e := echo.New()

	// set log
	echoutil.SetLevel(e, *loglevel)
	e.HTTPErrorHandler = func(err error, ctx echo.Context) {
		e.DefaultHTTPErrorHandler(err, ctx)
		e.Logger.Error(err)
	}
	e.Use(echoutil.LogHandlerFunc)

	// read configfile
	conf, err := kcfg.LoadTournConfig(*configPath)
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

	ctx := context.Background()

	options := []tournament.Option{}
	if *schemaRepo != "" {
		options = append(options, tournament.WithSchemaRepository(*schemaRepo))
	}
	db, err := tournament.New(ctx, conf, options...)
	if err != nil {
		log.Fatalf("can not connect to database: %s", err)
	}
	defer db.Close()

	if *schemaRepo != "" {
		sctx, cancel := db.Schema().Database().Context(ctx)
		defer cancel()
		context.AfterFunc(sctx, func() {
			log.Println("database schema is outdated. quit to restart server.")
			graceful, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := e.Shutdown(graceful); err != nil {
				log.Printf("error on shutdown by schema update: %s", err)
			}
		})
	}

	store := cache.Null()
	if conf.Cache().Address() != "" {
		s, err := cache.NewRedis(ctx, conf.Cache())
		if err != nil {
			log.Fatalf("can not connect to redis: %s", err)
		}
		store = s
	}

	auditor := audit.Null()
	if conf.Audit().Endpoint() != "" {
		auditor = audit.New(conf.Audit(), log.Default())
	}
	defer auditor.Close()

	authed := handlers.AuthMiddleware(conf.Auth())
	manager := handlers.RequireRole(domain.RoleManager)
	managerOrCoach := handlers.RequireRole(domain.RoleManager, domain.RoleCoach)
	arbiter := handlers.RequireRole(domain.RoleArbiter)

	// handlers
	e.GET("/api/health", handlers.HealthHandler(db.Ping))

	{
		e.POST("/api/auth/login", handlers.LoginHandler(db.User().Database(), conf.Auth(), auditor))
		e.POST("/api/auth/logout", handlers.LogoutHandler(auditor), authed)
	}

	{
		e.POST("/api/users", handlers.CreateUserHandler(db.User().Database(), auditor), authed, manager)
	}

	{
		hallId := "hallId"
		e.GET("/api/halls", handlers.FindHallsHandler(db.Hall().Database(), store), authed)
		e.PUT("/api/halls/:hallId", handlers.RenameHallHandler(db.Hall().Database(), store, hallId), authed, manager)
		e.GET("/api/halls/:hallId/tables", handlers.GetHallTablesHandler(db.Hall().Database(), store, hallId), authed)
	}

	{
		matchId := "matchId"
		e.GET("/api/matches", handlers.FindMatchesHandler(db.Match().Database()), authed)
		e.POST("/api/matches", handlers.CreateMatchHandler(db.Match().Database(), auditor), authed, manager)
		e.GET("/api/matches/:matchId", handlers.GetMatchHandler(db.Match().Database(), matchId), authed)
		e.DELETE("/api/matches/:matchId", handlers.DeleteMatchHandler(db.Match().Database(), matchId), authed, manager)
		e.PUT("/api/matches/:matchId/assignment", handlers.AssignPlayersHandler(db.Match().Database(), matchId), authed, managerOrCoach)
		e.PUT("/api/matches/:matchId/result", handlers.SetResultHandler(db.Match().Database(), matchId), authed, arbiter)
		e.PUT("/api/matches/:matchId/rating", handlers.RateMatchHandler(db.Match().Database(), auditor, matchId), authed, arbiter)
	}

	{
		username := "username"
		e.POST("/api/coaches/:username/contracts", handlers.CreateContractHandler(db.Coach().Database(), username), authed, managerOrCoach)
		e.GET("/api/coaches/:username/contracts", handlers.FindContractsHandler(db.Coach().Database(), username), authed)
		e.GET("/api/players/:username/summary", handlers.PlayerSummaryHandler(db.Player().Database(), username), authed)
		e.GET("/api/players/:username/opponents", handlers.PlayerOpponentsHandler(db.Player().Database(), username), authed)
		e.GET("/api/arbiters/:username/summary", handlers.ArbiterSummaryHandler(db.Arbiter().Database(), username), authed)
	}

	{
		name := "name"
		e.GET("/api/stats", handlers.GetStatsHandler(db.Stats().Database(), store), authed)
		e.GET("/api/stats/:name", handlers.GetStatHandler(db.Stats().Database(), store, name), authed)
	}

	log.Println("registred routes:")
	for _, r := range e.Routes() {
		log.Println(r.Method, r.Path)
	}

	port := strconv.Itoa(int(conf.Port()))
	cert, key := *pcert, *pkey
	if cert != "" && key != "" {
		e.Logger.Fatal(e.StartTLS(":"+port, cert, key))
	} else {
		e.Logger.Fatal(e.Start(":" + port))
	}
}
