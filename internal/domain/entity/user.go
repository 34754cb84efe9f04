package entity

import "time"

type User struct {
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Avatar   string    `json:"avatar" yaml:"avatar"`
	Dorm     string    `json:"dorm" yaml:"dorm"`
	Verified bool      `json:"verified" yaml:"verified"`
	Rating   float64   `json:"rating" yaml:"rating"`
	JoinedAt time.Time `json:"joined_at" yaml:"-"`
}
