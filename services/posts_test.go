package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PhucLH2303/RentEase-sub000/models"
	"github.com/PhucLH2303/RentEase-sub000/utils"
)

func validForm() PostForm {
	return PostForm{
		AptID:       "apt-1",
		Title:       "Sunny room near campus",
		CategoryID:  models.CategoryRental,
		RentPrice:   350,
		TotalSlot:   3,
		CurrentSlot: 1,
		MoveInDate:  time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		MoveOutDate: time.Date(2027, 8, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestPostFormValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PostForm)
		wantOK bool
	}{
		{"valid form", func(f *PostForm) {}, true},
		{"slots exceeded", func(f *PostForm) { f.CurrentSlot = 5; f.TotalSlot = 3 }, false},
		{"negative current slot", func(f *PostForm) { f.CurrentSlot = -1 }, false},
		{"zero total slots", func(f *PostForm) { f.TotalSlot = 0; f.CurrentSlot = 0 }, false},
		{"move-out before move-in", func(f *PostForm) { f.MoveOutDate = f.MoveInDate.AddDate(0, 0, -1) }, false},
		{"move-out equals move-in", func(f *PostForm) { f.MoveOutDate = f.MoveInDate }, false},
		{"missing title", func(f *PostForm) { f.Title = "" }, false},
		{"unknown category", func(f *PostForm) { f.CategoryID = 7 }, false},
		{"zero rent", func(f *PostForm) { f.RentPrice = 0 }, false},
	}

	for _, tt := range tests {
		form := validForm()
		tt.mutate(&form)
		err := form.Validate()
		if tt.wantOK && err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
		}
		if !tt.wantOK && err == nil {
			t.Errorf("%s: expected a validation error", tt.name)
		}
	}
}

func TestCreateRejectsInvalidFormBeforeNetwork(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		writeEnvelope(w, 200, "", models.Post{PostID: "p1"})
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	svc := NewPostService(cfg, newTestClient(t, cfg), utils.NewLogger())

	form := validForm()
	form.CurrentSlot = 5
	form.TotalSlot = 3

	if _, err := svc.Create(context.Background(), "me", form); err == nil {
		t.Fatal("expected validation error")
	}
	if n := atomic.LoadInt64(&calls); n != 0 {
		t.Errorf("backend calls: got %d, want 0", n)
	}
}

func TestEditRejectsInvalidFormBeforeNetwork(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		writeEnvelope(w, 200, "", nil)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	svc := NewPostService(cfg, newTestClient(t, cfg), utils.NewLogger())

	form := validForm()
	form.MoveOutDate = form.MoveInDate.AddDate(0, -1, 0)

	post := &models.Post{PostID: "p1"}
	if err := svc.Edit(context.Background(), post, form); err == nil {
		t.Fatal("expected validation error")
	}
	if n := atomic.LoadInt64(&calls); n != 0 {
		t.Errorf("backend calls: got %d, want 0", n)
	}
}

func TestSnapshotsResolveAddressAndDegrade(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/Apt/GetById/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/Apt/GetById/")
		if id == "apt-bad" {
			writeEnvelope(w, 500, "boom", nil)
			return
		}
		writeEnvelope(w, 200, "", models.Apartment{AptID: id, Address: "12 Nguyen Hue", Rating: 4.2})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := testConfig(srv.URL)
	svc := NewPostService(cfg, newTestClient(t, cfg), utils.NewLogger())

	posts := []models.Post{
		{PostID: "p1", AptID: "apt-ok", Title: "Good", PostCategoryID: models.CategoryRental, RentPrice: 300},
		{PostID: "p2", AptID: "apt-bad", Title: "Dodgy", PostCategoryID: models.CategoryRoommate, RentPrice: 150},
	}

	snaps := svc.Snapshots(context.Background(), posts)
	if len(snaps) != 2 {
		t.Fatalf("snapshots: got %d, want 2", len(snaps))
	}

	if snaps[0].Address != "12 Nguyen Hue" || snaps[0].Rating != 4.2 {
		t.Errorf("p1: address/rating not resolved: %+v", snaps[0])
	}
	if snaps[0].Category != "rental" {
		t.Errorf("p1 category: got %q, want rental", snaps[0].Category)
	}

	// the failed apartment lookup degrades, it does not drop the post
	if snaps[1].PostID != "p2" || snaps[1].Address != "" {
		t.Errorf("p2: expected empty address after lookup failure, got %+v", snaps[1])
	}
	if snaps[1].Category != "roommate" {
		t.Errorf("p2 category: got %q, want roommate", snaps[1].Category)
	}
}
