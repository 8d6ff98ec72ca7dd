package matches

import (
	"time"

	"github.com/openchess/tournhall/pkg/domain"
)

// format of date-only fields on the wire.
const DateFormat = "2006-01-02"

type NewMatchRequest struct {
	Date      string `json:"date"`
	TimeSlot  int    `json:"time_slot"`
	HallId    int    `json:"hall_id"`
	TableId   int    `json:"table_id"`
	TeamWhite int    `json:"team_white"`
	TeamBlack int    `json:"team_black"`
	Arbiter   string `json:"arbiter"`
}

// ToSpec parses the request into a scheduling spec.
func (r *NewMatchRequest) ToSpec() (domain.NewMatch, error) {
	date, err := time.Parse(DateFormat, r.Date)
	if err != nil {
		return domain.NewMatch{}, err
	}
	return domain.NewMatch{
		Date:            date,
		TimeSlot:        r.TimeSlot,
		HallId:          r.HallId,
		TableId:         r.TableId,
		TeamWhite:       r.TeamWhite,
		TeamBlack:       r.TeamBlack,
		ArbiterUsername: r.Arbiter,
	}, nil
}

type Assignment struct {
	WhitePlayer string  `json:"white_player"`
	BlackPlayer string  `json:"black_player"`
	Result      *string `json:"result,omitempty"`
}

func (a *Assignment) Equal(o *Assignment) bool {
	if (a == nil) || (o == nil) {
		return a == nil && o == nil
	}
	if (a.Result == nil) != (o.Result == nil) {
		return false
	}
	return a.WhitePlayer == o.WhitePlayer &&
		a.BlackPlayer == o.BlackPlayer &&
		(a.Result == nil || *a.Result == *o.Result)
}

type Rating struct {
	Value   float64 `json:"value"`
	RatedAt string  `json:"rated_at"`
}

func (r *Rating) Equal(o *Rating) bool {
	if (r == nil) || (o == nil) {
		return r == nil && o == nil
	}
	return *r == *o
}

type Detail struct {
	Id         int         `json:"id"`
	Date       string      `json:"date"`
	TimeSlot   int         `json:"time_slot"`
	HallId     int         `json:"hall_id"`
	TableId    int         `json:"table_id"`
	TeamWhite  int         `json:"team_white"`
	TeamBlack  int         `json:"team_black"`
	Arbiter    string      `json:"arbiter"`
	Assignment *Assignment `json:"assignment,omitempty"`
	Rating     *Rating     `json:"rating,omitempty"`
}

func (d *Detail) Equal(o *Detail) bool {
	return d.Id == o.Id &&
		d.Date == o.Date &&
		d.TimeSlot == o.TimeSlot &&
		d.HallId == o.HallId &&
		d.TableId == o.TableId &&
		d.TeamWhite == o.TeamWhite &&
		d.TeamBlack == o.TeamBlack &&
		d.Arbiter == o.Arbiter &&
		d.Assignment.Equal(o.Assignment) &&
		d.Rating.Equal(o.Rating)
}

func ComposeDetail(m domain.Match) Detail {
	detail := Detail{
		Id:        m.Id,
		Date:      m.Date.Format(DateFormat),
		TimeSlot:  m.TimeSlot,
		HallId:    m.HallId,
		TableId:   m.TableId,
		TeamWhite: m.TeamWhite,
		TeamBlack: m.TeamBlack,
		Arbiter:   m.ArbiterUsername,
	}
	if a := m.Assignment; a != nil {
		assignment := &Assignment{
			WhitePlayer: a.WhitePlayer,
			BlackPlayer: a.BlackPlayer,
		}
		if a.Result != nil {
			result := a.Result.String()
			assignment.Result = &result
		}
		detail.Assignment = assignment
	}
	if r := m.Rating; r != nil {
		detail.Rating = &Rating{
			Value:   r.Value,
			RatedAt: r.RatedAt.UTC().Format(time.RFC3339),
		}
	}
	return detail
}

type AssignmentRequest struct {
	WhitePlayer string `json:"white_player"`
	BlackPlayer string `json:"black_player"`
}

type ResultRequest struct {
	Result string `json:"result"`
}

type RatingRequest struct {
	Rating float64 `json:"rating"`
}
