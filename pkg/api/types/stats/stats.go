package stats

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/openchess/tournhall/pkg/domain"
)

type Stat struct {
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Payload    json.RawMessage `json:"payload"`
	ComputedAt string          `json:"computed_at"`
}

func (s *Stat) Equal(o *Stat) bool {
	return s.Name == o.Name &&
		s.Category == o.Category &&
		bytes.Equal(s.Payload, o.Payload) &&
		s.ComputedAt == o.ComputedAt
}

func ComposeStat(s domain.Stat) Stat {
	return Stat{
		Name:       s.Name,
		Category:   s.Category,
		Payload:    s.Payload,
		ComputedAt: s.ComputedAt.UTC().Format(time.RFC3339),
	}
}
