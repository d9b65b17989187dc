package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment records one salary disbursement. At most one payment may exist per
// (employeeId, month, year); a unique index backs the invariant.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID    string             `bson:"employeeId" json:"employeeId"`
	Email         string             `bson:"email" json:"email"`
	Month         int                `bson:"month" json:"month"` // 1-12
	Year          int                `bson:"year" json:"year"`   // 1900-2099
	Salary        int                `bson:"salary" json:"salary"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// PaymentRequest is the record-payment payload. Month accepts a 1-12 number
// or an English month name; year accepts a number or a 4-digit string. Both
// are normalized before the duplicate check.
type PaymentRequest struct {
	EmployeeID    string `json:"employeeId"`
	Email         string `json:"email"`
	Month         any    `json:"month"`
	Year          any    `json:"year"`
	Salary        any    `json:"salary"`
	TransactionID string `json:"transactionId"`
}

// PaymentPage is one page of an employee's payment history.
type PaymentPage struct {
	Payments []*Payment `json:"payments"`
	Total    int64      `json:"total"`
}

// PaymentIntentRequest asks the gateway for a payment intent. Amount is in
// the smallest currency unit.
type PaymentIntentRequest struct {
	Amount any `json:"amount"`
}
