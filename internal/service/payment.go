package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"crewpay/internal/config"
	"crewpay/internal/model"
	"crewpay/internal/repository"
)

// PaymentService handles salary payment business logic
type PaymentService struct {
	repo repository.IPaymentRepository
}

// NewPaymentService creates a new payment service
func NewPaymentService(repo repository.IPaymentRepository) *PaymentService {
	return &PaymentService{repo: repo}
}

// Record persists one salary payment. Month and year must already be
// normalized; the duplicate check runs on the normalized triple, and the
// unique index converts a lost race into the same ErrDuplicatePayment.
func (s *PaymentService) Record(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	exists, err := s.repo.Exists(ctx, payment.EmployeeID, payment.Month, payment.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing payments: %w", err)
	}
	if exists {
		return nil, ErrDuplicatePayment
	}

	created, err := s.repo.Create(ctx, payment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicatePayment
		}
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	return created, nil
}

// History returns one page of an employee's payment history. Page is 1-based;
// out-of-range paging inputs are clamped.
func (s *PaymentService) History(ctx context.Context, email string, page, limit int) (*model.PaymentPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = config.DefaultPageSize
	}
	if limit > config.MaxPageSize {
		limit = config.MaxPageSize
	}

	payments, total, err := s.repo.FindByEmailPaged(ctx, email, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment history: %w", err)
	}
	return &model.PaymentPage{Payments: payments, Total: total}, nil
}
