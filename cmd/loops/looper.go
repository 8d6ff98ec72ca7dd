package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/openchess/tournhall/cmd/loops/recurring"
	"github.com/openchess/tournhall/cmd/loops/tasks/initialize"
	"github.com/openchess/tournhall/cmd/loops/tasks/stats"
	"github.com/openchess/tournhall/pkg/domain/tournament"
	"github.com/openchess/tournhall/pkg/loop"
)

type LoopType string

const (
	TypeInitialize LoopType = "initialize"
	TypeStats      LoopType = "stats"
)

func (l LoopType) String() string {
	return string(l)
}

func AsLoopType(s string) (LoopType, error) {
	switch t := LoopType(s); t {
	case TypeInitialize, TypeStats:
		return t, nil
	}
	return "", fmt.Errorf("unknown loop type: %s (should be one of -- initialize|stats)", s)
}

type LoggerOptions func(*log.Logger) *log.Logger

func byLogger(l *log.Logger, opt ...LoggerOptions) *log.Logger {
	for _, o := range opt {
		l = o(l)
	}
	return l
}

func Copied() LoggerOptions {
	return func(l *log.Logger) *log.Logger {
		return log.New(l.Writer(), l.Prefix(), l.Flags())
	}
}

func WithPrefix(pre string) LoggerOptions {
	return func(l *log.Logger) *log.Logger {
		l.SetPrefix(pre)
		return l
	}
}

// monitor logs the start and the end of each cycle of a task.
func monitor[T any](logger *log.Logger, task loop.Task[T]) loop.Task[T] {
	var counter uint64
	return func(ctx context.Context, t T) (ret T, next loop.Next) {
		counter += 1
		timestamp := time.Now()

		logger.Printf("task start: #0x%X: ", counter)
		defer func() {
			logger.Printf(
				"task end: #0x%X (takes %s): %s\n with value = %#v",
				counter, time.Since(timestamp), next, ret,
			)
		}()

		ret, next = task(ctx, t)
		return
	}
}

// Manifest for starting a loop, which determines how the loop should behave.
type LoopManifest struct {
	Type   LoopType
	Policy recurring.Policy
}

func StartLoop(
	ctx context.Context,
	logger *log.Logger,
	db tournament.Tournament,
	manifest LoopManifest,
) error {
	switch manifest.Type {
	case TypeInitialize:
		l := byLogger(logger, Copied(), WithPrefix("[initialize loop]"))
		_, err := loop.Start(
			ctx, initialize.Seed(),
			monitor(l, initialize.Task(db.Schema().Database()).Applied(manifest.Policy)),
		)
		return err

	case TypeStats:
		l := byLogger(logger, Copied(), WithPrefix("[stats loop]"))
		_, err := loop.Start(
			ctx, stats.Seed(),
			monitor(l, stats.Task(db.Stats().Database()).Applied(manifest.Policy)),
		)
		return err
	}

	return fmt.Errorf("unknown loop type: %s", manifest.Type)
}
