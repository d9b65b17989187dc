package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is a flat account role. Roles are mutually exclusive: Admin does not
// satisfy an HR-only gate.
type Role string

const (
	RoleEmployee Role = "Employee"
	RoleHR       Role = "HR"
	RoleAdmin    Role = "Admin"
)

// Status is the employment status of an account.
type Status string

const (
	StatusActive Status = "active"
	StatusFired  Status = "fired"
)

// User is an account document. Accounts are never hard-deleted; firing only
// flips the status.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email       string             `bson:"email" json:"email"` // lower-cased, unique
	Name        string             `bson:"name" json:"name"`
	Role        Role               `bson:"role" json:"role"`
	Designation string             `bson:"designation" json:"designation"`
	Salary      int                `bson:"salary" json:"salary"`
	BankAccount string             `bson:"bankAccount" json:"bankAccount"`
	Photo       string             `bson:"photo" json:"photo"`
	Status      Status             `bson:"status" json:"status"`
	IsVerified  bool               `bson:"isVerified" json:"isVerified"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// RegisterRequest is the self-registration payload. Salary arrives as either
// a number or a digit string and is coerced before persistence.
type RegisterRequest struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Salary      any    `json:"salary"`
	BankAccount string `json:"bankAccount"`
	Photo       string `json:"photo"`
}

// LoginCheckRequest asks whether an account may log in.
type LoginCheckRequest struct {
	Email string `json:"email"`
}
