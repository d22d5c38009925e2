package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/PhucLH2303/RentEase-sub000/api"
	"github.com/PhucLH2303/RentEase-sub000/config"
	"github.com/PhucLH2303/RentEase-sub000/fetch"
	"github.com/PhucLH2303/RentEase-sub000/models"
	"github.com/PhucLH2303/RentEase-sub000/utils"
)

// PostForm carries the user-entered fields of a create/edit submission.
// Validation runs before any network call.
type PostForm struct {
	AptID       string
	Title       string
	Note        string
	CategoryID  int
	RentPrice   float64
	PilePrice   float64
	TotalSlot   int
	CurrentSlot int
	MoveInDate  time.Time
	MoveOutDate time.Time
}

// Validate checks the form invariants: a title, a known category, a
// positive rent, currentSlot within totalSlot and a move-out date after
// the move-in date. All violations are reported together.
func (f *PostForm) Validate() error {
	var errs []error

	if f.Title == "" {
		errs = append(errs, errors.New("title is required"))
	}
	if f.CategoryID != models.CategoryRoommate && f.CategoryID != models.CategoryRental {
		errs = append(errs, fmt.Errorf("unknown post category %d", f.CategoryID))
	}
	if f.RentPrice <= 0 {
		errs = append(errs, errors.New("rent price must be positive"))
	}
	if f.TotalSlot < 1 {
		errs = append(errs, errors.New("total slots must be at least 1"))
	}
	if f.CurrentSlot < 0 || f.CurrentSlot > f.TotalSlot {
		errs = append(errs, fmt.Errorf("current slots (%d) must not exceed total slots (%d)", f.CurrentSlot, f.TotalSlot))
	}
	if !f.MoveOutDate.After(f.MoveInDate) {
		errs = append(errs, errors.New("move-out date must be after move-in date"))
	}

	return errors.Join(errs...)
}

// PostService handles browsing, creating and editing posts.
type PostService struct {
	cfg    *config.Config
	api    *api.Client
	logger *utils.Logger

	// apartments caches address lookups while building snapshots.
	apartments *fetch.Loader[*models.Apartment]
}

// NewPostService creates a PostService.
func NewPostService(cfg *config.Config, client *api.Client, logger *utils.Logger) *PostService {
	return &PostService{
		cfg:        cfg,
		api:        client,
		logger:     logger,
		apartments: fetch.NewLoader[*models.Apartment](),
	}
}

// Browse fetches one page of posts, optionally filtered by category.
func (s *PostService) Browse(ctx context.Context, page, category int) ([]models.Post, *api.Page, error) {
	posts, pg, err := s.api.Posts(ctx, page, s.cfg.PageSize, category)
	if err != nil {
		return nil, nil, fmt.Errorf("posts: browse page %d: %w", page, err)
	}
	return posts, pg, nil
}

// Create validates the form and submits a new post for the account. The
// backend assigns the pending approval status.
func (s *PostService) Create(ctx context.Context, accountID string, form PostForm) (*models.Post, error) {
	if err := form.Validate(); err != nil {
		return nil, fmt.Errorf("posts: invalid form: %w", err)
	}

	post := &models.Post{
		AccountID:      accountID,
		AptID:          form.AptID,
		Title:          form.Title,
		Note:           form.Note,
		PostCategoryID: form.CategoryID,
		RentPrice:      form.RentPrice,
		PilePrice:      form.PilePrice,
		TotalSlot:      form.TotalSlot,
		CurrentSlot:    form.CurrentSlot,
		MoveInDate:     form.MoveInDate,
		MoveOutDate:    form.MoveOutDate,
		Status:         true,
	}

	created, err := s.api.CreatePost(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("posts: create: %w", err)
	}
	return created, nil
}

// Edit validates the form and updates an existing post in place.
func (s *PostService) Edit(ctx context.Context, post *models.Post, form PostForm) error {
	if err := form.Validate(); err != nil {
		return fmt.Errorf("posts: invalid form: %w", err)
	}

	post.Title = form.Title
	post.Note = form.Note
	post.PostCategoryID = form.CategoryID
	post.RentPrice = form.RentPrice
	post.PilePrice = form.PilePrice
	post.TotalSlot = form.TotalSlot
	post.CurrentSlot = form.CurrentSlot
	post.MoveInDate = form.MoveInDate
	post.MoveOutDate = form.MoveOutDate

	if err := s.api.UpdatePost(ctx, post); err != nil {
		return fmt.Errorf("posts: update %s: %w", post.PostID, err)
	}
	return nil
}

// Snapshots flattens posts for export and the market report, resolving
// each post's apartment address and rating in parallel. A failed
// apartment lookup leaves the address empty rather than dropping the
// post.
func (s *PostService) Snapshots(ctx context.Context, posts []models.Post) []*models.Snapshot {
	snaps := make([]*models.Snapshot, len(posts))
	pool := utils.NewWorkerPool(s.cfg.MaxConcurrency, s.cfg.RateLimitMs)
	var mu sync.Mutex

	for i, post := range posts {
		i, post := i, post
		pool.Submit(func() {
			snap := &models.Snapshot{
				PostID:      post.PostID,
				Title:       post.Title,
				Category:    models.CategoryName(post.PostCategoryID),
				RentPrice:   post.RentPrice,
				TotalSlot:   post.TotalSlot,
				CurrentSlot: post.CurrentSlot,
				Approve:     models.ApproveStatusName(post.ApproveStatusID),
				FetchedAt:   time.Now(),
			}

			apt, err := s.apartments.Load(post.AptID, func() (*models.Apartment, error) {
				return s.api.Apartment(ctx, post.AptID)
			})
			if err != nil {
				s.logger.Warn("[posts] apartment %s lookup failed: %v", post.AptID, err)
			} else {
				snap.Address = apt.Address
				snap.Rating = apt.Rating
			}

			mu.Lock()
			snaps[i] = snap
			mu.Unlock()
		})
	}
	pool.Wait()

	return snaps
}
