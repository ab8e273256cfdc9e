package repository

import (
	"context"

	"github.com/shop2give/payment-service/internal/domain/model"
)

// CheckoutLogRepository appends checkout audit rows
type CheckoutLogRepository interface {
	Create(ctx context.Context, log *model.CheckoutLog) error
}
