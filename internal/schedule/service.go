package schedule

import (
	"context"
	"strings"
)

type CreateResourceRequest struct {
	Name string
	Kind string
}

type UpdateResourceRequest struct {
	Name   *string
	Kind   *string
	Active *bool
}

// Service manages the bookable resource catalog.
type Service interface {
	Create(ctx context.Context, req CreateResourceRequest) (*Resource, error)
	GetByID(ctx context.Context, id string) (*Resource, error)
	List(ctx context.Context, activeOnly bool) ([]*Resource, error)
	Update(ctx context.Context, id string, req UpdateResourceRequest) (*Resource, error)
	CountActive(ctx context.Context) (int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateResourceRequest) (*Resource, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	res := &Resource{
		Name:   name,
		Kind:   strings.TrimSpace(req.Kind),
		Active: true,
	}

	if err := s.repo.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Resource, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, activeOnly bool) ([]*Resource, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *service) Update(ctx context.Context, id string, req UpdateResourceRequest) (*Resource, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		res.Name = name
	}
	if req.Kind != nil {
		res.Kind = strings.TrimSpace(*req.Kind)
	}
	if req.Active != nil {
		res.Active = *req.Active
	}

	if err := s.repo.Update(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) CountActive(ctx context.Context) (int, error) {
	return s.repo.CountActive(ctx)
}
