package store

import "time"

type Doc struct {
	ID           string
	Title        string
	Content      string
	Type         string // text | code | whiteboard
	Language     string // for code docs
	OwnerID      string
	LastModified time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Room struct {
	ID          string
	Name        string
	Description string
	Type        string // document | code | whiteboard
	Private     bool
	OwnerID     string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Member struct {
	ID     string
	Name   string
	Email  string
	Avatar string
}
