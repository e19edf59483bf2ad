package models

import "time"

// User создаётся только через cmd/createuser, маршрута регистрации нет.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
