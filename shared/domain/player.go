package domain

import "time"

const (
	MinPlayerAge = 1
	MaxPlayerAge = 120
)

type Player struct {
	Id          PlayerId
	FirstName   string
	LastName    string
	Age         int
	Nationality string
	ImageUrl    *string
	CreatedAt   time.Time
}

func (p Player) FullName() string {
	return p.FirstName + " " + p.LastName
}

// PlayerSummary is the projection of a player embedded in match records.
type PlayerSummary struct {
	Id        PlayerId
	FirstName string
	LastName  string
	ImageUrl  *string
}

func (p PlayerSummary) FullName() string {
	return p.FirstName + " " + p.LastName
}

func (p Player) Summary() PlayerSummary {
	return PlayerSummary{Id: p.Id, FirstName: p.FirstName, LastName: p.LastName, ImageUrl: p.ImageUrl}
}

// to iterate thru layers: handler -> service -> storage
type PlayerCreationData struct {
	FirstName   string
	LastName    string
	Age         int
	Nationality string
	ImageUrl    *string
}

// nil fields are left untouched
type PlayerUpdateData struct {
	FirstName   *string
	LastName    *string
	Age         *int
	Nationality *string
	ImageUrl    *string
}

func (d PlayerUpdateData) IsEmpty() bool {
	return d.FirstName == nil && d.LastName == nil && d.Age == nil && d.Nationality == nil && d.ImageUrl == nil
}
