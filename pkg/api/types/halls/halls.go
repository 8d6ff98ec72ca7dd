package halls

import (
	"github.com/openchess/tournhall/pkg/domain"
)

type Detail struct {
	Id       int    `json:"id"`
	Name     string `json:"name"`
	Country  string `json:"country"`
	Capacity int    `json:"capacity"`
}

func (d *Detail) Equal(o *Detail) bool {
	return *d == *o
}

func ComposeDetail(h domain.Hall) Detail {
	return Detail{
		Id:       h.Id,
		Name:     h.Name,
		Country:  h.Country,
		Capacity: h.Capacity,
	}
}

type Table struct {
	Id     int `json:"id"`
	HallId int `json:"hall_id"`
}

func (t *Table) Equal(o *Table) bool {
	return *t == *o
}

func ComposeTable(t domain.MatchTable) Table {
	return Table{Id: t.Id, HallId: t.HallId}
}

type RenameRequest struct {
	Name string `json:"name"`
}
