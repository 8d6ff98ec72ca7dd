package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/openchess/tournhall/cmd/loops/recurring"
	kcfg "github.com/openchess/tournhall/pkg/configs"
	"github.com/openchess/tournhall/pkg/domain/tournament"
	"github.com/openchess/tournhall/pkg/utils/args"
	"github.com/openchess/tournhall/pkg/utils/filewatch"
	"github.com/openchess/tournhall/pkg/utils/try"
)

func main() {
	logger := log.Default()
	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill, syscall.SIGTERM,
	)
	defer cancel()

	pconfig := flag.String(
		"config", os.Getenv("TOURNHALL_CONFIG"), "path to config file",
	)
	pSchemaRepo := flag.String(
		"schema-repo", os.Getenv("TOURNHALL_SCHEMA"), "schema repository path",
	)
	loopType := args.Parser(AsLoopType)
	flag.Var(loopType, "type", "one of loop type: initialize|stats")
	policy := args.Parser(recurring.ParsePolicy)
	flag.Var(
		policy, "policy",
		`loop policy (syntax: forever[:COOLDOWN]|backlog).`+
			` "forever[:COOLDOWN]" = run forever until error. When backlog is over, `+
			`wait COOLDOWN (optional duration. default: 0) as inteval.`+
			` "backlog" = run until error or backlog is over.`,
	)
	flag.Parse()

	if !loopType.IsSet() {
		logger.Fatal("loop type is required (--type)")
	}

	{
		wctx, cancel, err := filewatch.UntilModifyContext(ctx, *pconfig)
		if err != nil {
			logger.Fatal(err)
		}
		defer cancel()
		ctx = wctx
	}

	conf := try.To(kcfg.LoadTournConfig(*pconfig)).OrFatal(logger)

	options := []tournament.Option{}
	if *pSchemaRepo != "" {
		options = append(options, tournament.WithSchemaRepository(*pSchemaRepo))
	}
	db := try.To(tournament.New(ctx, conf, options...)).OrFatal(logger)
	defer db.Close()

	if *pSchemaRepo != "" {
		sctx, scancel := db.Schema().Database().Context(ctx)
		defer scancel()
		ctx = sctx
	}

	pol := recurring.Policy(nil)
	if policy.IsSet() {
		pol = policy.Value()
	} else {
		// sensible defaults per task
		switch loopType.Value() {
		case TypeInitialize:
			pol = recurring.Backlog()
		case TypeStats:
			pol = recurring.Forever(conf.Stats().Interval())
		}
	}

	logger.Printf(
		`start loop "%s" /w policy "%s"`,
		loopType.Value().String(), pol.String(),
	)

	err := StartLoop(
		ctx, logger, db,
		LoopManifest{
			Type:   loopType.Value(),
			Policy: recurring.UntilError(pol),
		},
	)

	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		logger.Fatal(err, " (loop context is cancelled by: ", context.Cause(ctx), ")")
	}
	logger.Fatal(err)
}
