package handler_test

import (
	"context"
	"sort"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"crewpay/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeUserRepo is an in-memory IUserRepository.
type fakeUserRepo struct {
	users []*model.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *model.User) (*model.User, error) {
	u.ID = primitive.NewObjectID()
	r.users = append(r.users, u)
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByRole(_ context.Context, role model.Role) ([]*model.User, error) {
	out := []*model.User{}
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindNonAdmin(_ context.Context, verifiedOnly bool) ([]*model.User, error) {
	out := []*model.User{}
	for _, u := range r.users {
		if u.Role == model.RoleAdmin {
			continue
		}
		if verifiedOnly && !u.IsVerified {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateFields(_ context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	for _, u := range r.users {
		if u.ID != id {
			continue
		}
		if v, ok := fields["isVerified"]; ok {
			u.IsVerified = v.(bool)
		}
		if v, ok := fields["role"]; ok {
			u.Role = v.(model.Role)
		}
		if v, ok := fields["status"]; ok {
			u.Status = v.(model.Status)
		}
		return 1, nil
	}
	return 0, nil
}

func (r *fakeUserRepo) EnsureIndexes(_ context.Context) error { return nil }

// fakeTaskRepo is an in-memory ITaskRepository.
type fakeTaskRepo struct {
	tasks []*model.Task
}

func (r *fakeTaskRepo) Create(_ context.Context, t *model.Task) (*model.Task, error) {
	t.ID = primitive.NewObjectID()
	r.tasks = append(r.tasks, t)
	return t, nil
}

func (r *fakeTaskRepo) FindAll(_ context.Context) ([]*model.Task, error) {
	return r.tasks, nil
}

func (r *fakeTaskRepo) FindByEmail(_ context.Context, email string) ([]*model.Task, error) {
	out := []*model.Task{}
	for _, t := range r.tasks {
		if t.Email == email {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) UpdateOwned(_ context.Context, id primitive.ObjectID, email string, fields bson.M) (int64, error) {
	for _, t := range r.tasks {
		if t.ID != id || t.Email != email {
			continue
		}
		if v, ok := fields["task"]; ok {
			t.Task = v.(string)
		}
		if v, ok := fields["hours"]; ok {
			t.Hours = v.(int)
		}
		if v, ok := fields["date"]; ok {
			t.Date = v.(string)
		}
		return 1, nil
	}
	return 0, nil
}

func (r *fakeTaskRepo) DeleteOwned(_ context.Context, id primitive.ObjectID, email string) (int64, error) {
	for i, t := range r.tasks {
		if t.ID == id && t.Email == email {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// fakePaymentRepo is an in-memory IPaymentRepository.
type fakePaymentRepo struct {
	payments []*model.Payment
}

func (r *fakePaymentRepo) Create(_ context.Context, p *model.Payment) (*model.Payment, error) {
	p.ID = primitive.NewObjectID()
	r.payments = append(r.payments, p)
	return p, nil
}

func (r *fakePaymentRepo) Exists(_ context.Context, employeeID string, month, year int) (bool, error) {
	for _, p := range r.payments {
		if p.EmployeeID == employeeID && p.Month == month && p.Year == year {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePaymentRepo) FindByEmailPaged(_ context.Context, email string, page, limit int) ([]*model.Payment, int64, error) {
	matched := []*model.Payment{}
	for _, p := range r.payments {
		if p.Email == email {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Year != matched[j].Year {
			return matched[i].Year > matched[j].Year
		}
		return matched[i].Month > matched[j].Month
	})

	total := int64(len(matched))
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *fakePaymentRepo) EnsureIndexes(_ context.Context) error { return nil }
