package service

import (
	"context"
	"fmt"

	"github.com/qaportal-net/qaportal-be/internal/repository"
)

type newsletterService struct {
	newsletterRepo repository.INewsletterRepository
}

func NewNewsletterService(newsletterRepo repository.INewsletterRepository) INewsletterService {
	return &newsletterService{newsletterRepo: newsletterRepo}
}

func (s *newsletterService) Subscribe(ctx context.Context, email, source string) error {
	if err := s.newsletterRepo.Subscribe(ctx, email, source); err != nil {
		return fmt.Errorf("subscribing %s: %w", email, err)
	}
	return nil
}
