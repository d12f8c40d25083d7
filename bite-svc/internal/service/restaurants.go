package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"scroll-and-bite/bite-svc/internal/domain"
	"scroll-and-bite/bite-svc/internal/draft"
	"scroll-and-bite/bite-svc/internal/storage"
)

// Verification reports which profile fields still block verification.
type Verification struct {
	Verified bool     `json:"verified"`
	Missing  []string `json:"missing"`
}

type RestaurantService struct {
	restaurants RestaurantRepository
	objects     ObjectStorage

	mu      sync.Mutex
	wizards map[string]draft.Wizard
}

func NewRestaurantService(restaurants RestaurantRepository, objects ObjectStorage) *RestaurantService {
	return &RestaurantService{
		restaurants: restaurants,
		objects:     objects,
		wizards:     make(map[string]draft.Wizard),
	}
}

// Current returns the owner's restaurant, ErrNoRestaurant when there is none.
func (s *RestaurantService) Current(ctx context.Context, owner string) (domain.RestaurantProfile, error) {
	profile, err := s.restaurants.GetRestaurantByOwner(ctx, owner)
	if errors.Is(err, storage.ErrNotFound) {
		return domain.RestaurantProfile{}, ErrNoRestaurant
	}
	if err != nil {
		return domain.RestaurantProfile{}, fmt.Errorf("failed to load restaurant: %w", err)
	}
	return profile, nil
}

func (s *RestaurantService) Get(ctx context.Context, id int64) (domain.RestaurantProfile, error) {
	return s.restaurants.GetRestaurant(ctx, id)
}

// Save is the single page editor submit. A banner, when given, is uploaded
// before the profile is written.
func (s *RestaurantService) Save(ctx context.Context, owner string, d draft.RestaurantDraft, banner io.Reader) (domain.RestaurantProfile, error) {
	if err := d.Validate(draft.EditorFields...); err != nil {
		return domain.RestaurantProfile{}, err
	}
	if err := d.Validate(draft.FieldOpeningHours); err != nil {
		return domain.RestaurantProfile{}, err
	}

	if banner != nil {
		objectPath, err := s.objects.Upload(ctx, "banners", banner, true)
		if err != nil {
			return domain.RestaurantProfile{}, fmt.Errorf("failed to upload banner: %w", err)
		}
		d, err = d.With(draft.FieldBanner, objectPath)
		if err != nil {
			return domain.RestaurantProfile{}, err
		}
	}

	profile, err := s.restaurants.UpsertRestaurant(ctx, d.Profile(owner))
	if err != nil {
		return domain.RestaurantProfile{}, fmt.Errorf("failed to save restaurant: %w", err)
	}
	return profile, nil
}

func (s *RestaurantService) Verify(ctx context.Context, owner string) (Verification, error) {
	profile, err := s.Current(ctx, owner)
	if errors.Is(err, ErrNoRestaurant) {
		return Verification{Missing: draft.NewRestaurantDraft().Missing(draft.VerificationFields...)}, nil
	}
	if err != nil {
		return Verification{}, err
	}
	missing := draft.FromProfile(profile).Missing(draft.VerificationFields...)
	return Verification{Verified: len(missing) == 0, Missing: missing}, nil
}

func (s *RestaurantService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.restaurants.ListCategories(ctx)
}

// StartWizard begins or restarts onboarding for owner.
func (s *RestaurantService) StartWizard(owner string) draft.Wizard {
	s.mu.Lock()
	defer s.mu.Unlock()
	wizard := draft.NewWizard(owner)
	s.wizards[owner] = wizard
	return wizard
}

func (s *RestaurantService) Wizard(owner string) (draft.Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wizard, ok := s.wizards[owner]
	if !ok {
		return draft.Wizard{}, ErrNoWizard
	}
	return wizard, nil
}

// AdvanceWizard applies step to the owner's wizard and keeps the result
// only when step succeeds.
func (s *RestaurantService) AdvanceWizard(owner string, step func(draft.Wizard) (draft.Wizard, error)) (draft.Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wizard, ok := s.wizards[owner]
	if !ok {
		return draft.Wizard{}, ErrNoWizard
	}
	next, err := step(wizard)
	if err != nil {
		return wizard, err
	}
	s.wizards[owner] = next
	return next, nil
}

// CommitWizard writes the reviewed profile and ends onboarding.
func (s *RestaurantService) CommitWizard(ctx context.Context, owner string) (domain.RestaurantProfile, error) {
	wizard, err := s.Wizard(owner)
	if err != nil {
		return domain.RestaurantProfile{}, err
	}
	_, profile, err := wizard.Commit(ctx, s.restaurants)
	if err != nil {
		return domain.RestaurantProfile{}, err
	}

	s.mu.Lock()
	delete(s.wizards, owner)
	s.mu.Unlock()
	return profile, nil
}
