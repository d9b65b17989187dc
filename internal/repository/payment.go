package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"crewpay/internal/model"
)

// IPaymentRepository defines payment persistence
type IPaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) (*model.Payment, error)
	Exists(ctx context.Context, employeeID string, month, year int) (bool, error)
	FindByEmailPaged(ctx context.Context, email string, page, limit int) ([]*model.Payment, int64, error)
	EnsureIndexes(ctx context.Context) error
}

// PaymentRepository implements payment persistence
type PaymentRepository struct {
	collection *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) IPaymentRepository {
	return &PaymentRepository{collection: db.Collection("payments")}
}

// EnsureIndexes creates the unique (employeeId, month, year) index. The
// index, not the pre-insert existence check, is what closes the race window
// between concurrent identical submissions.
func (r *PaymentRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "employeeId", Value: 1},
			{Key: "month", Value: 1},
			{Key: "year", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *PaymentRepository) Create(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	payment.CreatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, payment)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		payment.ID = oid
	}
	return payment, nil
}

// Exists reports whether a payment is already recorded for the normalized
// (employeeId, month, year) triple.
func (r *PaymentRepository) Exists(ctx context.Context, employeeID string, month, year int) (bool, error) {
	err := r.collection.FindOne(ctx, bson.M{
		"employeeId": employeeID,
		"month":      month,
		"year":       year,
	}).Err()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// FindByEmailPaged returns one page of an employee's payment history, newest
// period first (year desc, then month desc), plus the total matching count.
func (r *PaymentRepository) FindByEmailPaged(ctx context.Context, email string, page, limit int) ([]*model.Payment, int64, error) {
	filter := bson.M{"email": email}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "year", Value: -1}, {Key: "month", Value: -1}}).
		SetSkip(int64(page-1) * int64(limit)).
		SetLimit(int64(limit))

	cur, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	payments := []*model.Payment{}
	if err := cur.All(ctx, &payments); err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}
