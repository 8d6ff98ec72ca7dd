package recorder

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/openchess/tournhall/pkg/domain"
	kdbaudit "github.com/openchess/tournhall/pkg/domain/audit/db"
	xe "github.com/openchess/tournhall/pkg/errors"
)

// Recorder persists audit events.
//
// The spool file is the durable record; a write failure there fails
// the whole Record. The database insert is best effort, so querying
// stays available while a missing row can still be recovered from the
// spool.
type Recorder struct {
	spool  string
	db     kdbaudit.AuditInterface
	logger *log.Logger

	mu sync.Mutex
}

func New(spool string, db kdbaudit.AuditInterface, logger *log.Logger) *Recorder {
	return &Recorder{spool: spool, db: db, logger: logger}
}

// Record stamps missing fields and persists the event.
func (r *Recorder) Record(ctx context.Context, event domain.AuditEvent) error {
	if event.EventId == "" {
		event.EventId = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	if err := r.appendSpool(event); err != nil {
		return err
	}

	if r.db == nil {
		// spool-only operation.
		return nil
	}
	if err := r.db.Record(ctx, event); err != nil {
		r.logger.Printf("failed to store audit event %s in database: %s", event.EventId, err)
	}
	return nil
}

// one file per day, JSON lines.
func (r *Recorder) appendSpool(event domain.AuditEvent) error {
	line, err := json.Marshal(event)
	if err != nil {
		return xe.Wrap(err)
	}

	name := filepath.Join(
		r.spool,
		"audit-"+event.Timestamp.UTC().Format("2006-01-02")+".jsonl",
	)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(r.spool, 0o755); err != nil {
		return xe.Wrap(err)
	}
	f, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return xe.Wrap(err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return xe.Wrap(err)
	}
	return nil
}
