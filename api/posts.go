package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/PhucLH2303/RentEase-sub000/models"
)

// Posts fetches one page of posts. categoryID filters by post category
// when non-zero.
func (c *Client) Posts(ctx context.Context, page, size, categoryID int) ([]models.Post, *Page, error) {
	q := url.Values{}
	q.Set("pageNumber", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(size))
	if categoryID != 0 {
		q.Set("categoryId", strconv.Itoa(categoryID))
	}

	var posts []models.Post
	pg, err := c.get(ctx, "Post/GetAll", q, &posts)
	if err != nil {
		return nil, nil, err
	}
	return posts, pg, nil
}

// Post fetches a single post by id.
func (c *Client) Post(ctx context.Context, postID string) (*models.Post, error) {
	var post models.Post
	if _, err := c.get(ctx, "Post/GetById/"+url.PathEscape(postID), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost submits a new post. The backend assigns the id and puts the
// post into the pending approval state.
func (c *Client) CreatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	var created models.Post
	if _, err := c.post(ctx, "Post", post, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdatePost edits an existing post owned by the current account.
func (c *Client) UpdatePost(ctx context.Context, post *models.Post) error {
	_, err := c.put(ctx, "Post", post, nil)
	return err
}
