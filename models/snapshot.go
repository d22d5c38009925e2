package models

import "time"

// Snapshot is a browsed post flattened for local export and the market
// report: the post joined with the address of its apartment. This is
// client-side cache data, not a backend schema.
type Snapshot struct {
	ID          int64
	PostID      string
	Title       string
	Category    string
	RentPrice   float64
	TotalSlot   int
	CurrentSlot int
	Address     string
	Rating      float64
	Approve     string
	FetchedAt   time.Time
}

// MarketReport holds the computed analytics over a set of snapshots.
type MarketReport struct {
	TotalPosts     int
	RentalPosts    int
	RoommatePosts  int
	AverageRent    float64
	MinRent        float64
	MaxRent        float64
	MostExpensive  *Snapshot
	TopRated       []*Snapshot
	PostsByAddress map[string]int
}
