package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task is a work-sheet entry. Owned by the Employee who created it; HR has
// read-only visibility across all tasks.
type Task struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"` // creator, not enforced against users
	Task      string             `bson:"task" json:"task"`
	Hours     int                `bson:"hours" json:"hours"`
	Date      string             `bson:"date" json:"date"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// TaskRequest is the create/update payload. Hours is coerced to an integer;
// non-numeric input is stored as zero without rejection, matching the
// inconsistent validation the product ships with.
type TaskRequest struct {
	Task  string `json:"task"`
	Hours any    `json:"hours"`
	Date  string `json:"date"`
}
