package service

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"ayitichat/internal/domain"
	"ayitichat/internal/domain/repositories"
	"ayitichat/internal/domain/services"
)

// guestService implements the GuestService interface
type guestService struct {
	usageRepo  repositories.GuestUsageRepository
	dailyLimit int
	logger     *slog.Logger
}

// NewGuestService creates a new guest service
func NewGuestService(usageRepo repositories.GuestUsageRepository, dailyLimit int, logger *slog.Logger) services.GuestService {
	return &guestService{
		usageRepo:  usageRepo,
		dailyLimit: dailyLimit,
		logger:     logger,
	}
}

// Consume spends one message from today's quota. The increment happens
// first; a guest racing themselves can at worst land exactly on the cap,
// never past it.
func (s *guestService) Consume(ctx context.Context, guestID string) (int, error) {
	if err := validateGuestID(guestID); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	count, err := s.usageRepo.Increment(ctx, guestID)
	if err != nil {
		return 0, err
	}

	if count > s.dailyLimit {
		s.logger.Info("guest quota exhausted", "guest_id", guestID, "count", count)
		return 0, fmt.Errorf("daily guest message limit: %w", domain.ErrLimitReached)
	}

	return s.dailyLimit - count, nil
}

// Usage reports today's consumption without spending quota.
func (s *guestService) Usage(ctx context.Context, guestID string) (int, int, error) {
	if err := validateGuestID(guestID); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	count, err := s.usageRepo.Count(ctx, guestID)
	if err != nil {
		return 0, 0, err
	}
	if count > s.dailyLimit {
		count = s.dailyLimit
	}

	return count, s.dailyLimit, nil
}

func validateGuestID(guestID string) error {
	return validation.Validate(guestID, validation.Required, validation.Length(8, 128))
}
