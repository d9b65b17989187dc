package server

import (
	"go.mongodb.org/mongo-driver/mongo"

	"crewpay/internal/config"
	"crewpay/internal/handler"
	"crewpay/internal/repository"
	"crewpay/internal/service"
)

// Repositories bundles the record-store access layer
type Repositories struct {
	Users    repository.IUserRepository
	Tasks    repository.ITaskRepository
	Payments repository.IPaymentRepository
}

// Services bundles the business-logic layer
type Services struct {
	User    *service.UserService
	Task    *service.TaskService
	Payment *service.PaymentService
	Intent  *service.IntentService
}

// Handlers bundles the HTTP layer
type Handlers struct {
	User    *handler.UserHandler
	Task    *handler.TaskHandler
	Payment *handler.PaymentHandler
	Intent  *handler.IntentHandler
	Health  *handler.HealthHandler
}

func InitRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Users:    repository.NewUserRepository(db),
		Tasks:    repository.NewTaskRepository(db),
		Payments: repository.NewPaymentRepository(db),
	}
}

func InitServices(cfg *config.Config, repos *Repositories) *Services {
	return &Services{
		User:    service.NewUserService(cfg, repos.Users),
		Task:    service.NewTaskService(repos.Tasks),
		Payment: service.NewPaymentService(repos.Payments),
		Intent:  service.NewIntentService(cfg),
	}
}

func InitHandlers(s *Services) *Handlers {
	return &Handlers{
		User:    handler.NewUserHandler(s.User),
		Task:    handler.NewTaskHandler(s.Task),
		Payment: handler.NewPaymentHandler(s.Payment),
		Intent:  handler.NewIntentHandler(s.Intent),
		Health:  handler.NewHealthHandler(),
	}
}
