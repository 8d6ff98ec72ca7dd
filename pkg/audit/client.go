// Package audit ships audit events to the audit sink daemon.
//
// Shipping is fire-and-forget: the caller never blocks on the sink,
// and events are dropped (with a log line) when the buffer is full or
// the sink is down. Auditing must not take the API down with it.
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	kcfg "github.com/openchess/tournhall/pkg/configs"
	"github.com/openchess/tournhall/pkg/domain"
)

type Client interface {
	// Emit queues an event for shipping. It never blocks.
	Emit(event domain.AuditEvent)

	// Close stops the shipper after draining queued events.
	Close()
}

type httpClient struct {
	endpoint string
	source   string
	events   chan domain.AuditEvent
	client   *http.Client
	logger   *log.Logger

	stop    sync.Once
	quit    chan struct{}
	stopped chan struct{}
}

// New starts a shipper posting events to the configured endpoint.
func New(conf *kcfg.AuditSinkConfig, logger *log.Logger) Client {
	c := &httpClient{
		endpoint: conf.Endpoint(),
		source:   conf.Source(),
		events:   make(chan domain.AuditEvent, conf.Buffer()),
		client:   &http.Client{Timeout: 5 * time.Second},
		logger:   logger,
		quit:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go c.run()
	return c
}

func (c *httpClient) Emit(event domain.AuditEvent) {
	if event.EventId == "" {
		event.EventId = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	event.Source = c.source

	select {
	case <-c.quit:
		c.logger.Printf("audit: shipper is closed, dropping event %s (%s)", event.EventId, event.EventType)
		return
	default:
	}

	select {
	case c.events <- event:
	default:
		c.logger.Printf("audit: buffer full, dropping event %s (%s)", event.EventId, event.EventType)
	}
}

func (c *httpClient) Close() {
	c.stop.Do(func() { close(c.quit) })
	<-c.stopped
}

func (c *httpClient) run() {
	defer close(c.stopped)
	for {
		select {
		case event := <-c.events:
			c.ship(event)
		case <-c.quit:
			// drain what is queued, then stop.
			for {
				select {
				case event := <-c.events:
					c.ship(event)
				default:
					return
				}
			}
		}
	}
}

func (c *httpClient) ship(event domain.AuditEvent) {
	if err := c.post(event); err != nil {
		c.logger.Printf("audit: dropping event %s: %s", event.EventId, err)
	}
}

func (c *httpClient) post(event domain.AuditEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if 300 <= resp.StatusCode {
		return &SinkError{Status: resp.StatusCode}
	}
	return nil
}

// SinkError is a non-2xx answer from the audit sink.
type SinkError struct {
	Status int
}

func (e *SinkError) Error() string {
	return http.StatusText(e.Status) + " from audit sink"
}

// Null is a Client for deployments without an audit sink.
func Null() Client {
	return nullClient{}
}

type nullClient struct{}

func (nullClient) Emit(event domain.AuditEvent) {}
func (nullClient) Close()                       {}
