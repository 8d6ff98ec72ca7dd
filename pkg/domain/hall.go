package domain

// Hall is a playing venue. Capacity counts tables it can host at once.
type Hall struct {
	Id       int
	Name     string
	Country  string
	Capacity int
}

// MatchTable is a physical table inside a hall.
type MatchTable struct {
	Id     int
	HallId int
}
