package models

import "time"

type User struct {
	ID             string    `json:"id" db:"id"`
	Credits        int       `json:"credits" db:"credits"`
	TotalCreations int       `json:"total_creations" db:"total_creations"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
