package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PhucLH2303/RentEase-sub000/config"
	"github.com/PhucLH2303/RentEase-sub000/models"
	"github.com/PhucLH2303/RentEase-sub000/utils"
)

type fakeSession struct {
	token   string
	cleared bool
}

func (f *fakeSession) Token() (string, error)            { return f.token, nil }
func (f *fakeSession) Current() (*models.Account, error) { return &models.Account{}, nil }
func (f *fakeSession) Clear() error                      { f.cleared = true; return nil }

func testClient(t *testing.T, baseURL string, sess *fakeSession) *Client {
	t.Helper()
	cfg := &config.Config{APIBaseURL: baseURL, HTTPTimeoutMs: 2000}
	return NewClient(cfg, sess, sess, utils.NewLogger())
}

func writeEnvelope(w http.ResponseWriter, statusCode int, message string, data any) {
	env := map[string]any{
		"statusCode": statusCode,
		"message":    message,
	}
	if data != nil {
		env["data"] = data
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(env)
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, 200, "", models.Post{PostID: "p1"})
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, &fakeSession{token: "tok-123"})
	if _, err := c.Post(context.Background(), "p1"); err != nil {
		t.Fatalf("Post: %v", err)
	}

	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization header: got %q, want %q", gotAuth, "Bearer tok-123")
	}
}

func TestClientApplicationErrorInsideHTTP200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 404, "post not found", nil)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, &fakeSession{})
	_, err := c.Post(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error for statusCode 404 envelope")
	}

	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if apiErr.StatusCode != 404 || apiErr.Message != "post not found" {
		t.Errorf("unexpected error fields: %+v", apiErr)
	}
}

func TestClientMalformedEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, &fakeSession{})
	if _, err := c.Post(context.Background(), "p1"); err == nil {
		t.Fatal("expected error for non-JSON body")
	}
}

func TestClientUnexpectedDataShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// data is a string where a Post object is expected
		writeEnvelope(w, 200, "", "surprise")
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, &fakeSession{})
	if _, err := c.Post(context.Background(), "p1"); err == nil {
		t.Fatal("expected error for mismatched data shape")
	}
}

func TestClient401ClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	sess := &fakeSession{token: "expired"}
	c := testClient(t, srv.URL, sess)

	_, err := c.Post(context.Background(), "p1")
	if err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if !sess.cleared {
		t.Error("session should have been cleared after 401")
	}
}

func TestClientPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("pageNumber"); got != "2" {
			t.Errorf("pageNumber: got %q, want %q", got, "2")
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"statusCode":  200,
			"count":       25,
			"currentPage": 2,
			"totalPages":  3,
			"data":        []models.Post{{PostID: "p1"}, {PostID: "p2"}},
		})
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, &fakeSession{})
	posts, pg, err := c.Posts(context.Background(), 2, 10, 0)
	if err != nil {
		t.Fatalf("Posts: %v", err)
	}
	if len(posts) != 2 {
		t.Errorf("posts: got %d, want 2", len(posts))
	}
	if pg.Count != 25 || pg.CurrentPage != 2 || pg.TotalPages != 3 {
		t.Errorf("unexpected page info: %+v", pg)
	}
}

func TestConfirmPaymentCarriesParamsVerbatim(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		got = map[string]string{
			"code": q.Get("code"), "id": q.Get("id"), "cancel": q.Get("cancel"),
			"status": q.Get("status"), "orderCode": q.Get("orderCode"),
		}
		writeEnvelope(w, 200, "", nil)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, &fakeSession{})
	err := c.ConfirmPayment(context.Background(), CallbackParams{
		Code: "00", ID: "1", Cancel: "false", Status: "PAID", OrderCode: "XYZ123",
	})
	if err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}

	want := map[string]string{"code": "00", "id": "1", "cancel": "false", "status": "PAID", "orderCode": "XYZ123"}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("param %s: got %q, want %q", k, got[k], v)
		}
	}
}
