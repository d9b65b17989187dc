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

// ITaskRepository defines work-sheet persistence
type ITaskRepository interface {
	Create(ctx context.Context, task *model.Task) (*model.Task, error)
	FindAll(ctx context.Context) ([]*model.Task, error)
	FindByEmail(ctx context.Context, email string) ([]*model.Task, error)
	UpdateOwned(ctx context.Context, id primitive.ObjectID, email string, fields bson.M) (int64, error)
	DeleteOwned(ctx context.Context, id primitive.ObjectID, email string) (int64, error)
}

// TaskRepository implements work-sheet persistence
type TaskRepository struct {
	collection *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) ITaskRepository {
	return &TaskRepository{collection: db.Collection("tasks")}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) (*model.Task, error) {
	task.CreatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, task)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		task.ID = oid
	}
	return task, nil
}

func (r *TaskRepository) FindAll(ctx context.Context) ([]*model.Task, error) {
	return r.find(ctx, bson.M{})
}

func (r *TaskRepository) FindByEmail(ctx context.Context, email string) ([]*model.Task, error) {
	return r.find(ctx, bson.M{"email": email})
}

// UpdateOwned updates a task only when it belongs to the given email. A
// missing or foreign id matches zero documents.
func (r *TaskRepository) UpdateOwned(ctx context.Context, id primitive.ObjectID, email string, fields bson.M) (int64, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "email": email},
		bson.M{"$set": fields})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// DeleteOwned deletes a task only when it belongs to the given email.
func (r *TaskRepository) DeleteOwned(ctx context.Context, id primitive.ObjectID, email string) (int64, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "email": email})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *TaskRepository) find(ctx context.Context, filter bson.M) ([]*model.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	tasks := []*model.Task{}
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}
