package domain_test

import (
	"testing"
	"time"

	"github.com/openchess/tournhall/pkg/domain"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func contract(start, end string) domain.CoachContract {
	return domain.CoachContract{
		CoachUsername: "coach-a", TeamId: 1,
		StartDate: day(start), EndDate: day(end),
	}
}

func TestCoachContract_Overlaps(t *testing.T) {
	for name, testcase := range map[string]struct {
		a, b domain.CoachContract
		then bool
	}{
		"disjoint periods do not overlap": {
			a:    contract("2024-01-01", "2024-03-31"),
			b:    contract("2024-04-01", "2024-06-30"),
			then: false,
		},
		"sharing a single day overlaps": {
			a:    contract("2024-01-01", "2024-03-31"),
			b:    contract("2024-03-31", "2024-06-30"),
			then: true,
		},
		"containment overlaps": {
			a:    contract("2024-01-01", "2024-12-31"),
			b:    contract("2024-06-01", "2024-06-30"),
			then: true,
		},
		"identical periods overlap": {
			a:    contract("2024-01-01", "2024-03-31"),
			b:    contract("2024-01-01", "2024-03-31"),
			then: true,
		},
	} {
		t.Run(name, func(t *testing.T) {
			if actual := testcase.a.Overlaps(testcase.b); actual != testcase.then {
				t.Errorf("unmatch: Overlaps = %v", actual)
			}
			// overlap is symmetric
			if actual := testcase.b.Overlaps(testcase.a); actual != testcase.then {
				t.Errorf("unmatch: Overlaps (swapped) = %v", actual)
			}
		})
	}
}
