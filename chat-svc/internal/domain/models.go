package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxContentLength is measured in characters, not bytes.
const MaxContentLength = 2000

type Role string

const (
	RoleUser      Role = "USER"
	RoleAssistant Role = "ASSISTANT"
	RoleSystem    Role = "SYSTEM"
)

// ChatMessage is one entry of the shared guest/concierge timeline. ProfileID
// is nil for assistant and system messages.
type ChatMessage struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	ProfileID *uuid.UUID `json:"profile_id,omitempty" db:"profile_id"`
	Role      Role       `json:"role" db:"role"`
	Content   string     `json:"content" db:"content"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}
