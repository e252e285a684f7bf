package service

import (
	"context"
	"time"

	"github.com/alexanderramin/planwise/internal/domain"
	"github.com/alexanderramin/planwise/internal/repository"
)

type profileService struct {
	profiles repository.ProfileRepo
}

func NewProfileService(profiles repository.ProfileRepo) ProfileService {
	return &profileService{profiles: profiles}
}

func (s *profileService) Get(ctx context.Context) (*domain.Profile, error) {
	p, err := s.profiles.Get(ctx)
	if err != nil {
		return nil, mapNotFound(err, ErrProfileNotFound)
	}
	return p, nil
}

func (s *profileService) Save(ctx context.Context, p *domain.Profile) error {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	return s.profiles.Upsert(ctx, p)
}
