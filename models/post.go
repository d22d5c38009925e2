package models

import "time"

// Post category ids as defined by the backend.
// Roommate-seeking posts are category 1, rental-slot posts are category 2.
const (
	CategoryRoommate = 1
	CategoryRental   = 2
)

// Approve status ids shared by posts and apartments. The workflow is
// owned by the backend; the client only ever reads these.
const (
	ApprovePending  = 1
	ApproveApproved = 2
	ApproveRejected = 3
)

// Post is a listing advertisement (rental slot or roommate search)
// against an apartment. Posts are soft-deleted server-side; Status=false
// means hidden, never physically removed.
type Post struct {
	PostID          string    `json:"postId"`
	AccountID       string    `json:"accountId"`
	AptID           string    `json:"aptId"`
	Title           string    `json:"title"`
	Note            string    `json:"note"`
	PostCategoryID  int       `json:"postCategoryId"`
	RentPrice       float64   `json:"rentPrice"`
	PilePrice       float64   `json:"pilePrice"`
	TotalSlot       int       `json:"totalSlot"`
	CurrentSlot     int       `json:"currentSlot"`
	MoveInDate      time.Time `json:"moveInDate"`
	MoveOutDate     time.Time `json:"moveOutDate"`
	ApproveStatusID int       `json:"approveStatusId"`
	Status          bool      `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CategoryName maps a post category id to its display label.
func CategoryName(id int) string {
	switch id {
	case CategoryRoommate:
		return "roommate"
	case CategoryRental:
		return "rental"
	default:
		return "unknown"
	}
}

// ApproveStatusName maps an approve status id to its display label.
func ApproveStatusName(id int) string {
	switch id {
	case ApprovePending:
		return "pending"
	case ApproveApproved:
		return "approved"
	case ApproveRejected:
		return "rejected"
	default:
		return "unknown"
	}
}
