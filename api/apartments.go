package api

import (
	"context"
	"io"
	"net/url"

	"github.com/PhucLH2303/RentEase-sub000/models"
)

// Apartment fetches a single apartment by id.
func (c *Client) Apartment(ctx context.Context, aptID string) (*models.Apartment, error) {
	var apt models.Apartment
	if _, err := c.get(ctx, "Apt/GetById/"+url.PathEscape(aptID), nil, &apt); err != nil {
		return nil, err
	}
	return &apt, nil
}

// AptImages fetches the image list for an apartment. An empty list is a
// valid result; callers render a placeholder in that case.
func (c *Client) AptImages(ctx context.Context, aptID string) ([]models.AptImage, error) {
	var images []models.AptImage
	if _, err := c.get(ctx, "AptImage/GetByAptId/"+url.PathEscape(aptID), nil, &images); err != nil {
		return nil, err
	}
	return images, nil
}

// UploadAptImage uploads one image file for an apartment as multipart
// form data.
func (c *Client) UploadAptImage(ctx context.Context, aptID, fileName string, file io.Reader) (*models.AptImage, error) {
	var img models.AptImage
	fields := map[string]string{"aptId": aptID}
	if _, err := c.upload(ctx, "AptImage", "image", fileName, file, fields, &img); err != nil {
		return nil, err
	}
	return &img, nil
}
