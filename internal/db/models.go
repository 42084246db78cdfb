package db

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// JSONB represents a JSON column stored as text in SQLite
type JSONB map[string]interface{}

// Value implements the driver.Valuer interface
func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements the sql.Scanner interface
func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		if len(v) == 0 {
			*j = nil
			return nil
		}
		return json.Unmarshal(v, j)
	case string:
		if v == "" {
			*j = nil
			return nil
		}
		return json.Unmarshal([]byte(v), j)
	default:
		return errors.New("type assertion to []byte or string failed")
	}
}

// Run records the outcome of a single command execution
type Run struct {
	ID             string    `json:"id" db:"id"`
	Descriptor     string    `json:"descriptor" db:"descriptor"`
	Repository     string    `json:"repository" db:"repository"`
	Success        bool      `json:"success" db:"success"`
	ExitCode       *int      `json:"exit_code,omitempty" db:"exit_code"`
	Message        string    `json:"message" db:"message"`
	TrackedCount   int       `json:"tracked_count" db:"tracked_count"`
	UntrackedCount int       `json:"untracked_count" db:"untracked_count"`
	Data           JSONB     `json:"data,omitempty" db:"data"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// TableName returns the table name for Run
func (Run) TableName() string {
	return "runs"
}
