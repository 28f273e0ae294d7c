package audit

import (
	"context"
	"time"
)

type Service interface {
	LogDecision(ctx context.Context, log AccessLog) error
	QueryDecisions(ctx context.Context, from, to time.Time, subjectKey, resourceID string) ([]AccessLog, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) LogDecision(ctx context.Context, log AccessLog) error {
	return s.repo.LogDecision(ctx, log)
}

func (s *service) QueryDecisions(ctx context.Context, from, to time.Time, subjectKey, resourceID string) ([]AccessLog, error) {
	return s.repo.QueryDecisions(ctx, from, to, subjectKey, resourceID)
}
