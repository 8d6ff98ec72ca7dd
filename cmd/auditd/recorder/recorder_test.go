package recorder_test

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/openchess/tournhall/cmd/auditd/recorder"
	"github.com/openchess/tournhall/pkg/domain"
	dbauditmock "github.com/openchess/tournhall/pkg/domain/audit/db/mock"
	"github.com/openchess/tournhall/pkg/utils/try"
)

func readSpool(t *testing.T, name string) []domain.AuditEvent {
	t.Helper()

	f := try.To(os.Open(name)).OrFatal(t)
	defer f.Close()

	events := []domain.AuditEvent{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		event := domain.AuditEvent{}
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			t.Fatalf("broken spool line %q: %s", scanner.Text(), err)
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		t.Fatal(err)
	}
	return events
}

func TestRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("it journals the event and stores it in database", func(t *testing.T) {
		spool := t.TempDir()
		dbAudit := dbauditmock.NewAuditInterface()
		dbAudit.Impl.Record = func(ctx context.Context, event domain.AuditEvent) error {
			return nil
		}
		testee := recorder.New(spool, dbAudit, log.Default())

		stamped := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
		if err := testee.Record(ctx, domain.AuditEvent{
			EventId:   "event-1",
			EventType: domain.AuditLogin,
			Username:  "magnus",
			Timestamp: stamped,
			Source:    "tournd",
		}); err != nil {
			t.Fatal(err)
		}

		journaled := readSpool(t, filepath.Join(spool, "audit-2024-06-01.jsonl"))
		if len(journaled) != 1 {
			t.Fatalf("unexpected journal: %+v", journaled)
		}
		if journaled[0].EventId != "event-1" || journaled[0].Username != "magnus" {
			t.Errorf("unexpected event: %+v", journaled[0])
		}

		if dbAudit.Calls.Record.Times() != 1 {
			t.Fatalf("unexpected Record calls: %d", dbAudit.Calls.Record.Times())
		}
		if dbAudit.Calls.Record[0].EventId != "event-1" {
			t.Errorf("unexpected event in database: %+v", dbAudit.Calls.Record[0])
		}
	})

	t.Run("it stamps id and timestamp when they are missing", func(t *testing.T) {
		spool := t.TempDir()
		dbAudit := dbauditmock.NewAuditInterface()
		dbAudit.Impl.Record = func(ctx context.Context, event domain.AuditEvent) error {
			return nil
		}
		testee := recorder.New(spool, dbAudit, log.Default())

		before := time.Now().UTC().Add(-time.Second)
		if err := testee.Record(ctx, domain.AuditEvent{
			EventType: domain.AuditLogout,
			Username:  "magnus",
			Source:    "tournd",
		}); err != nil {
			t.Fatal(err)
		}

		stored := dbAudit.Calls.Record[0]
		if stored.EventId == "" {
			t.Error("event id is not stamped")
		}
		if stored.Timestamp.Before(before) {
			t.Errorf("timestamp is not stamped: %s", stored.Timestamp)
		}
	})

	t.Run("a database failure does not fail the record", func(t *testing.T) {
		spool := t.TempDir()
		dbAudit := dbauditmock.NewAuditInterface()
		dbAudit.Impl.Record = func(ctx context.Context, event domain.AuditEvent) error {
			return errors.New("fake database error")
		}
		testee := recorder.New(spool, dbAudit, log.Default())

		stamped := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
		if err := testee.Record(ctx, domain.AuditEvent{
			EventId:   "event-1",
			EventType: domain.AuditLogin,
			Username:  "magnus",
			Timestamp: stamped,
			Source:    "tournd",
		}); err != nil {
			t.Fatal(err)
		}

		// the spool stays the durable record.
		journaled := readSpool(t, filepath.Join(spool, "audit-2024-06-01.jsonl"))
		if len(journaled) != 1 {
			t.Errorf("unexpected journal: %+v", journaled)
		}
	})

	t.Run("a spool failure fails the record", func(t *testing.T) {
		spool := filepath.Join(t.TempDir(), "not-a-dir")
		if err := os.WriteFile(spool, []byte("occupied"), 0o644); err != nil {
			t.Fatal(err)
		}
		dbAudit := dbauditmock.NewAuditInterface()
		testee := recorder.New(spool, dbAudit, log.Default())

		if err := testee.Record(ctx, domain.AuditEvent{
			EventType: domain.AuditLogin,
			Username:  "magnus",
			Source:    "tournd",
		}); err == nil {
			t.Error("no error for an unwritable spool")
		}

		// nothing reached the database either.
		if dbAudit.Calls.Record.Times() != 0 {
			t.Errorf("unexpected Record calls: %d", dbAudit.Calls.Record.Times())
		}
	})

	t.Run("events of different days land in different files", func(t *testing.T) {
		spool := t.TempDir()
		dbAudit := dbauditmock.NewAuditInterface()
		dbAudit.Impl.Record = func(ctx context.Context, event domain.AuditEvent) error {
			return nil
		}
		testee := recorder.New(spool, dbAudit, log.Default())

		for i, stamped := range []time.Time{
			time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC),
			time.Date(2024, 6, 2, 0, 1, 0, 0, time.UTC),
		} {
			if err := testee.Record(ctx, domain.AuditEvent{
				EventId:   []string{"event-1", "event-2"}[i],
				EventType: domain.AuditLogin,
				Username:  "magnus",
				Timestamp: stamped,
				Source:    "tournd",
			}); err != nil {
				t.Fatal(err)
			}
		}

		for day, eventId := range map[string]string{
			"audit-2024-06-01.jsonl": "event-1",
			"audit-2024-06-02.jsonl": "event-2",
		} {
			journaled := readSpool(t, filepath.Join(spool, day))
			if len(journaled) != 1 || journaled[0].EventId != eventId {
				t.Errorf("unexpected journal %s: %+v", day, journaled)
			}
		}
	})
}
