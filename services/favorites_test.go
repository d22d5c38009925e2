package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PhucLH2303/RentEase-sub000/models"
	"github.com/PhucLH2303/RentEase-sub000/utils"
)

func TestDedupeLikedOneEntryPerApartment(t *testing.T) {
	t1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	liked := []models.LikedApt{
		{AccountID: "me", AptID: "A", CreatedAt: t1},
		{AccountID: "me", AptID: "A", CreatedAt: t2},
		{AccountID: "me", AptID: "B", CreatedAt: t1},
	}

	entries := DedupeLiked(liked)
	if len(entries) != 2 {
		t.Fatalf("entries: got %d, want 2", len(entries))
	}
	if entries[0].AptID != "A" || entries[1].AptID != "B" {
		t.Errorf("order: got [%s %s], want [A B]", entries[0].AptID, entries[1].AptID)
	}
	// last-write-wins: the duplicate A keeps the later record
	if !entries[0].Liked.CreatedAt.Equal(t2) {
		t.Errorf("duplicate A: kept CreatedAt %v, want %v", entries[0].Liked.CreatedAt, t2)
	}
	for _, e := range entries {
		if !e.Loading || !e.ImageLoading {
			t.Errorf("entry %s: both flags should start true", e.AptID)
		}
		if e.Images == nil || len(e.Images) != 0 {
			t.Errorf("entry %s: images should start as an empty list", e.AptID)
		}
	}
}

func TestDedupeLikedEmpty(t *testing.T) {
	if got := DedupeLiked(nil); len(got) != 0 {
		t.Errorf("expected no entries, got %d", len(got))
	}
}

func favoritesBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/AccountLikedApt/GetByAccountId/", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 200, "", []models.LikedApt{
			{AccountID: "me", AptID: "A"},
			{AccountID: "me", AptID: "A"},
			{AccountID: "me", AptID: "B"},
			{AccountID: "me", AptID: "C"},
		})
	})
	mux.HandleFunc("/Apt/GetById/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/Apt/GetById/")
		if id == "C" {
			writeEnvelope(w, 500, "internal error", nil)
			return
		}
		writeEnvelope(w, 200, "", models.Apartment{AptID: id, Address: id + " street", Rating: 4.5})
	})
	mux.HandleFunc("/AptImage/GetByAptId/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/AptImage/GetByAptId/")
		if id == "A" {
			writeEnvelope(w, 200, "", []models.AptImage{
				{ID: 1, AptID: "A", ImageURL: "https://img.example/a1.jpg"},
				{ID: 2, AptID: "A", ImageURL: "https://img.example/a2.jpg"},
			})
			return
		}
		writeEnvelope(w, 200, "", []models.AptImage{})
	})
	mux.HandleFunc("/AccountLikedApt/Unlike", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 200, "", nil)
	})

	return httptest.NewServer(mux)
}

func TestFavoritesLoadAggregation(t *testing.T) {
	srv := favoritesBackend(t)
	defer srv.Close()

	cfg := testConfig(srv.URL)
	svc := NewFavoritesService(cfg, newTestClient(t, cfg), utils.NewLogger())

	entries, err := svc.Load(context.Background(), "me")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// [A, A, B, C] dedupes to 3 cards
	if len(entries) != 3 {
		t.Fatalf("entries: got %d, want 3", len(entries))
	}

	byID := make(map[string]*models.FavoriteApartment)
	for _, e := range entries {
		byID[e.AptID] = e
		if !e.Settled() {
			t.Errorf("entry %s: should be settled after Load", e.AptID)
		}
	}

	if byID["A"].Detail == nil || byID["A"].Detail.Address != "A street" {
		t.Error("entry A: detail not populated")
	}
	if got := svc.CardImage(byID["A"]); got != "https://img.example/a1.jpg" {
		t.Errorf("entry A card image: got %q", got)
	}

	// B resolved but has zero images: placeholder, never an empty source
	if byID["B"].Failed {
		t.Error("entry B: should not be failed")
	}
	if got := svc.CardImage(byID["B"]); got != cfg.PlaceholderImageURL {
		t.Errorf("entry B card image: got %q, want placeholder", got)
	}

	// C's detail fetch failed: degraded card, batch unaffected
	if !byID["C"].Failed {
		t.Error("entry C: should be marked failed")
	}
	if byID["C"].Detail != nil {
		t.Error("entry C: detail should stay nil after failure")
	}

	if svc.PageLoading() {
		t.Error("page-level loading should clear once every entry settled")
	}
}

func TestFavoritesUnlikeFiltersOnSuccess(t *testing.T) {
	srv := favoritesBackend(t)
	defer srv.Close()

	cfg := testConfig(srv.URL)
	svc := NewFavoritesService(cfg, newTestClient(t, cfg), utils.NewLogger())

	list := DedupeLiked([]models.LikedApt{
		{AccountID: "me", AptID: "A"},
		{AccountID: "me", AptID: "B"},
	})

	remaining, err := svc.Unlike(context.Background(), "me", "A", list)
	if err != nil {
		t.Fatalf("Unlike: %v", err)
	}
	if len(remaining) != 1 || remaining[0].AptID != "B" {
		t.Errorf("remaining: got %d entries, want only B", len(remaining))
	}
}

func TestFavoritesUnlikeKeepsListOnBackendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 500, "unlike failed", nil)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	svc := NewFavoritesService(cfg, newTestClient(t, cfg), utils.NewLogger())

	list := DedupeLiked([]models.LikedApt{
		{AccountID: "me", AptID: "A"},
		{AccountID: "me", AptID: "B"},
	})

	remaining, err := svc.Unlike(context.Background(), "me", "A", list)
	if err == nil {
		t.Fatal("expected error when the backend unlike fails")
	}
	if len(remaining) != 2 {
		t.Errorf("list must stay unchanged on failure: got %d entries, want 2", len(remaining))
	}
}
