package models

import "time"

const MaxDescriptionLen = 500

type Task struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"-"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Status - открытый строковый enum: клиенты могут передавать
// произвольные значения, константы ниже - известный набор.
type Status string

const StatusPending Status = "pending"
const StatusCompleted Status = "completed"
const StatusFrozen Status = "frozen"
