package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"crewpay/internal/model"
	"crewpay/internal/repository"
	"crewpay/pkg/util"
)

// TaskService handles work-sheet business logic
type TaskService struct {
	repo repository.ITaskRepository
}

// NewTaskService creates a new task service
func NewTaskService(repo repository.ITaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

// Create records a work-sheet entry for the owning employee. Hours coerce to
// zero on non-numeric input and are stored regardless; hours carry no range
// validation, unlike payment year and month.
func (s *TaskService) Create(ctx context.Context, email string, req *model.TaskRequest) (*model.Task, error) {
	hours, _ := util.CoerceInt(req.Hours)
	task := &model.Task{
		Email: email,
		Task:  req.Task,
		Hours: hours,
		Date:  req.Date,
	}
	return s.repo.Create(ctx, task)
}

// ListAll returns every work-sheet entry, newest first.
func (s *TaskService) ListAll(ctx context.Context) ([]*model.Task, error) {
	return s.repo.FindAll(ctx)
}

// ListByEmail returns the entries owned by one employee, newest first.
func (s *TaskService) ListByEmail(ctx context.Context, email string) ([]*model.Task, error) {
	return s.repo.FindByEmail(ctx, email)
}

// Update rewrites an owned entry. A missing or foreign id matches zero
// documents and is reported as such, not as an error.
func (s *TaskService) Update(ctx context.Context, idHex, email string, req *model.TaskRequest) (int64, error) {
	id, err := util.ParseObjectID(idHex)
	if err != nil {
		return 0, err
	}
	hours, _ := util.CoerceInt(req.Hours)
	return s.repo.UpdateOwned(ctx, id, email, bson.M{
		"task":  req.Task,
		"hours": hours,
		"date":  req.Date,
	})
}

// Delete removes an owned entry.
func (s *TaskService) Delete(ctx context.Context, idHex, email string) (int64, error) {
	id, err := util.ParseObjectID(idHex)
	if err != nil {
		return 0, err
	}
	return s.repo.DeleteOwned(ctx, id, email)
}
