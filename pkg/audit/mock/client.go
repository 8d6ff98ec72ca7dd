// this package provide "mock" implementation of the audit client for testing.
package mock

import (
	"github.com/openchess/tournhall/pkg/audit"
	"github.com/openchess/tournhall/pkg/domain"
	dbmock "github.com/openchess/tournhall/pkg/internal/db/mock"
)

type Client struct {
	Impl struct {
		Emit  func(event domain.AuditEvent)
		Close func()
	}

	Calls struct {
		Emit  dbmock.CallLog[domain.AuditEvent]
		Close dbmock.CallLog[struct{}]
	}
}

func NewClient() *Client {
	return &Client{}
}

var _ audit.Client = &Client{}

// Emit records the event. Unlike database mocks it tolerates having no
// Impl, since most tests only care which events were emitted.
func (m *Client) Emit(event domain.AuditEvent) {
	m.Calls.Emit = append(m.Calls.Emit, event)
	if m.Impl.Emit != nil {
		m.Impl.Emit(event)
	}
}

func (m *Client) Close() {
	m.Calls.Close = append(m.Calls.Close, struct{}{})
	if m.Impl.Close != nil {
		m.Impl.Close()
	}
}
