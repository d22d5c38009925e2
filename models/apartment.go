package models

import "time"

// Apartment is the physical property entity owned by a landlord account.
type Apartment struct {
	AptID           string    `json:"aptId"`
	OwnerID         string    `json:"posterId"`
	Name            string    `json:"name"`
	Address         string    `json:"address"`
	Area            float64   `json:"area"`
	NumberOfRoom    int       `json:"numberOfRoom"`
	NumberOfSlot    int       `json:"numberOfSlot"`
	AptCategoryID   int       `json:"aptCategoryId"`
	AptStatusID     int       `json:"aptStatusId"`
	ApproveStatusID int       `json:"approveStatusId"`
	Rating          float64   `json:"rating"`
	Note            string    `json:"note"`
	CreatedAt       time.Time `json:"createdAt"`
	Utilities       []Utility `json:"utilities,omitempty"`
}

// AptImage is one image attached to an apartment.
type AptImage struct {
	ID       int    `json:"id"`
	AptID    string `json:"aptId"`
	ImageURL string `json:"imageUrl"`
}

// Utility is an amenity associated with an apartment.
type Utility struct {
	UtilityID int    `json:"utilityId"`
	Name      string `json:"name"`
	Note      string `json:"note"`
}

// LikedApt is the join record between an account and an apartment it
// favorited, as returned by the AccountLikedApt endpoints. The raw list
// may contain duplicate apartment ids.
type LikedApt struct {
	AccountID string    `json:"accountId"`
	AptID     string    `json:"aptId"`
	CreatedAt time.Time `json:"createdAt"`
}

// FavoriteApartment joins a liked-apartment record to its resolved
// apartment detail and image list. It is assembled client-side by
// independent fetches; the two flags track which of them have settled.
type FavoriteApartment struct {
	AptID        string
	Liked        LikedApt
	Detail       *Apartment
	Images       []AptImage
	Loading      bool
	ImageLoading bool
	// Failed is set when the detail fetch errored; the card renders a
	// failed-to-load state instead of apartment data.
	Failed bool
}

// Settled reports whether both the detail and image fetches for this
// entry have completed, successfully or not.
func (f *FavoriteApartment) Settled() bool {
	return !f.Loading && !f.ImageLoading
}
