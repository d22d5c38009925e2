package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/PhucLH2303/RentEase-sub000/api"
	"github.com/PhucLH2303/RentEase-sub000/config"
	"github.com/PhucLH2303/RentEase-sub000/fetch"
	"github.com/PhucLH2303/RentEase-sub000/models"
	"github.com/PhucLH2303/RentEase-sub000/utils"
)

// FavoritesService assembles the favorites view: liked-apartment join
// records resolved into display-ready cards with details and images.
type FavoritesService struct {
	cfg    *config.Config
	api    *api.Client
	logger *utils.Logger

	// details caches apartment lookups per id so duplicate likes and
	// repeated openings of the view share one fetch.
	details *fetch.Loader[*models.Apartment]
	retry   *utils.RetryConfig

	mu          sync.Mutex
	pageLoading bool
}

// NewFavoritesService creates a FavoritesService.
func NewFavoritesService(cfg *config.Config, client *api.Client, logger *utils.Logger) *FavoritesService {
	return &FavoritesService{
		cfg:     cfg,
		api:     client,
		logger:  logger,
		details: fetch.NewLoader[*models.Apartment](),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   500 * time.Millisecond,
			Logger:      logger,
		},
	}
}

// DedupeLiked collapses the raw liked list to one entry per apartment
// id, last record wins, first-seen order preserved. Every entry starts
// with both flags up, no detail and an empty image list.
func DedupeLiked(liked []models.LikedApt) []*models.FavoriteApartment {
	byID := make(map[string]models.LikedApt, len(liked))
	order := make([]string, 0, len(liked))

	for _, l := range liked {
		if _, seen := byID[l.AptID]; !seen {
			order = append(order, l.AptID)
		}
		byID[l.AptID] = l
	}

	entries := make([]*models.FavoriteApartment, 0, len(order))
	for _, id := range order {
		entries = append(entries, &models.FavoriteApartment{
			AptID:        id,
			Liked:        byID[id],
			Images:       []models.AptImage{},
			Loading:      true,
			ImageLoading: true,
		})
	}
	return entries
}

// Load fetches the account's liked apartments and resolves each entry's
// detail and image list with independent fetches. A failed detail fetch
// degrades that card to a failed-to-load state; it never fails the
// batch. The page-level loading flag clears only once every entry has
// settled.
func (s *FavoritesService) Load(ctx context.Context, accountID string) ([]*models.FavoriteApartment, error) {
	liked, err := s.api.LikedApts(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("favorites: list liked apartments: %w", err)
	}

	entries := DedupeLiked(liked)
	s.mu.Lock()
	s.pageLoading = true
	s.mu.Unlock()

	pool := utils.NewWorkerPool(s.cfg.MaxConcurrency, s.cfg.RateLimitMs)
	var mu sync.Mutex

	for _, entry := range entries {
		entry := entry
		pool.Submit(func() {
			s.resolveEntry(ctx, entry, &mu, entries)
		})
	}
	pool.Wait()

	mu.Lock()
	s.scanSettled(entries)
	mu.Unlock()

	return entries, nil
}

func (s *FavoritesService) resolveEntry(ctx context.Context, entry *models.FavoriteApartment, mu *sync.Mutex, all []*models.FavoriteApartment) {
	detail, err := s.details.Load(entry.AptID, func() (*models.Apartment, error) {
		return s.fetchDetail(ctx, entry.AptID)
	})

	mu.Lock()
	if err != nil {
		s.logger.Warn("[favorites] apartment %s failed to load: %v", entry.AptID, err)
		entry.Failed = true
		entry.Loading = false
		entry.ImageLoading = false
		s.scanSettled(all)
		mu.Unlock()
		return
	}
	entry.Detail = detail
	entry.Loading = false
	mu.Unlock()

	images, err := s.api.AptImages(ctx, entry.AptID)

	mu.Lock()
	if err != nil {
		s.logger.Warn("[favorites] images for apartment %s failed to load: %v", entry.AptID, err)
	} else {
		entry.Images = images
	}
	entry.ImageLoading = false
	s.scanSettled(all)
	mu.Unlock()
}

// scanSettled re-checks the whole list after each fetch settles and
// clears the page-level loading flag once no entry is pending. Caller
// holds the list mutex.
func (s *FavoritesService) scanSettled(all []*models.FavoriteApartment) {
	for _, e := range all {
		if !e.Settled() {
			return
		}
	}
	s.mu.Lock()
	s.pageLoading = false
	s.mu.Unlock()
}

// PageLoading reports whether any entry of the last Load is unsettled.
func (s *FavoritesService) PageLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pageLoading
}

func (s *FavoritesService) fetchDetail(ctx context.Context, aptID string) (*models.Apartment, error) {
	var apt *models.Apartment
	err := s.retry.Do("apartment "+aptID, func() error {
		var ferr error
		apt, ferr = s.api.Apartment(ctx, aptID)
		return ferr
	})
	return apt, err
}

// CardImage returns the URL to render for a card. An apartment with
// zero images gets the placeholder, never an empty source.
func (s *FavoritesService) CardImage(entry *models.FavoriteApartment) string {
	if len(entry.Images) == 0 {
		return s.cfg.PlaceholderImageURL
	}
	return entry.Images[0].ImageURL
}

// Unlike removes a favorite: the backend call goes first, and the local
// list is filtered only after it succeeds. On failure the list is
// returned unchanged alongside the error.
func (s *FavoritesService) Unlike(ctx context.Context, accountID, aptID string, list []*models.FavoriteApartment) ([]*models.FavoriteApartment, error) {
	if err := s.api.Unlike(ctx, accountID, aptID); err != nil {
		return list, fmt.Errorf("favorites: unlike apartment %s: %w", aptID, err)
	}

	s.details.Invalidate(aptID)

	filtered := make([]*models.FavoriteApartment, 0, len(list))
	for _, e := range list {
		if e.AptID != aptID {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}
