package models

import "time"

// Note с is_void=true остаётся в базе навсегда (tombstone),
// но не попадает в выдачу. Обратной операции нет.
type Note struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"-"`
	Content   string     `json:"content"`
	IsVoid    bool       `json:"is_void"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
