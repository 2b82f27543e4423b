package domain

import "time"

type User struct {
	Id        UserId
	Email     Email
	PassHash  string
	Name      string
	Admin     bool
	CreatedAt time.Time
}

// UserSummary is the projection of a user embedded in other records.
type UserSummary struct {
	Id    UserId
	Name  string
	Email Email
}
