package entity

import (
	"time"

	"p2p_market/internal/domain/value"
)

type User struct {
	ID        int64          `json:"id" db:"id"`
	Name      string         `json:"name" db:"name"`
	Username  value.Username `json:"username" db:"username"`
	Role      value.UserRole `json:"role" db:"role"`
	Verified  bool           `json:"verified" db:"verified"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}
