package services

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/PhucLH2303/RentEase-sub000/api"
	"github.com/PhucLH2303/RentEase-sub000/config"
	"github.com/PhucLH2303/RentEase-sub000/utils"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		APIBaseURL:          baseURL,
		HTTPTimeoutMs:       2000,
		MaxConcurrency:      4,
		RateLimitMs:         0,
		MaxRetries:          1,
		PageSize:            10,
		PlaceholderImageURL: "https://placehold.co/600x400?text=No+Image",
		HomePath:            "/home",
	}
}

func newTestClient(t *testing.T, cfg *config.Config) *api.Client {
	t.Helper()
	return api.NewClient(cfg, nil, nil, utils.NewLogger())
}

// writeEnvelope emits the backend's uniform response wrapper.
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
