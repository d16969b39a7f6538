package reservation

import (
	"context"

	domain "github.com/BruksfildServices01/mesa-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/mesa-scheduler/internal/errs"
	"github.com/BruksfildServices01/mesa-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mesa-scheduler/internal/models"
)

// FindRestaurantBySlug resolve o restaurante das rotas públicas.
type FindRestaurantBySlug struct {
	repo domain.Repository
}

func NewFindRestaurantBySlug(repo domain.Repository) *FindRestaurantBySlug {
	return &FindRestaurantBySlug{repo: repo}
}

func (uc *FindRestaurantBySlug) Execute(ctx context.Context, slug string) (*models.Restaurant, error) {
	if slug == "" {
		return nil, httperr.ErrBusiness("restaurant_not_found")
	}

	rest, err := uc.repo.GetRestaurantBySlug(ctx, slug)
	if err != nil {
		if errs.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("restaurant_not_found")
		}
		return nil, err
	}
	return rest, nil
}
