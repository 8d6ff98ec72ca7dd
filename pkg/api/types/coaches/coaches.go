package coaches

import (
	"time"

	"github.com/openchess/tournhall/pkg/domain"
)

const DateFormat = "2006-01-02"

type ContractRequest struct {
	TeamId    int    `json:"team_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type Contract struct {
	CoachUsername string `json:"coach_username"`
	TeamId        int    `json:"team_id"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
}

func (c Contract) Equal(o Contract) bool {
	return c.CoachUsername == o.CoachUsername &&
		c.TeamId == o.TeamId &&
		c.StartDate == o.StartDate &&
		c.EndDate == o.EndDate
}

func ComposeContract(c domain.CoachContract) Contract {
	return Contract{
		CoachUsername: c.CoachUsername,
		TeamId:        c.TeamId,
		StartDate:     c.StartDate.Format(DateFormat),
		EndDate:       c.EndDate.Format(DateFormat),
	}
}

// ToSpec parses the request dates. It does not range-check them.
func (req ContractRequest) ToSpec(coachUsername string) (domain.CoachContract, error) {
	start, err := time.Parse(DateFormat, req.StartDate)
	if err != nil {
		return domain.CoachContract{}, err
	}
	end, err := time.Parse(DateFormat, req.EndDate)
	if err != nil {
		return domain.CoachContract{}, err
	}
	return domain.CoachContract{
		CoachUsername: coachUsername,
		TeamId:        req.TeamId,
		StartDate:     start,
		EndDate:       end,
	}, nil
}
