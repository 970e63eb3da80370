package settings

import (
	"context"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context) (*Settings, error) {
	out, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("travel agency settings: %w", err)
	}
	return out, nil
}

// Put inserts the settings row when absent and updates it when present.
func (s *Service) Put(ctx context.Context, req PutSettingsRequest) (*Settings, error) {
	if err := s.repo.Put(ctx, Settings{Name: req.Name, Address: req.Address}); err != nil {
		return nil, fmt.Errorf("store travel agency settings: %w", err)
	}
	return s.repo.Get(ctx)
}
