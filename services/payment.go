package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/mux"

	"github.com/PhucLH2303/RentEase-sub000/api"
	"github.com/PhucLH2303/RentEase-sub000/config"
	"github.com/PhucLH2303/RentEase-sub000/models"
	"github.com/PhucLH2303/RentEase-sub000/utils"
)

// PaymentService drives the payment flow: create a payment link, let
// the user pay on the external gateway, catch the redirect on a local
// listener and reconcile via one confirmation call.
type PaymentService struct {
	cfg    *config.Config
	api    *api.Client
	logger *utils.Logger
}

// NewPaymentService creates a PaymentService.
func NewPaymentService(cfg *config.Config, client *api.Client, logger *utils.Logger) *PaymentService {
	return &PaymentService{cfg: cfg, api: client, logger: logger}
}

// CreateLink asks the backend for a checkout URL, pointing the gateway
// return URLs at the local listener.
func (s *PaymentService) CreateLink(ctx context.Context, accountID, postID string, amount float64) (*models.PaymentLink, error) {
	base := "http://" + s.cfg.CallbackListenAddr
	link, err := s.api.CreatePaymentLink(ctx, api.CreatePaymentLinkRequest{
		AccountID: accountID,
		PostID:    postID,
		Amount:    amount,
		ReturnURL: base + "/payment/success",
		CancelURL: base + "/payment/failure",
	})
	if err != nil {
		return nil, fmt.Errorf("payment: create payment link: %w", err)
	}
	return link, nil
}

// ParseReturn extracts the gateway parameters from a redirect query.
// cancel defaults to "false" when absent. ok is false when any of the
// required parameters (code, id, status, orderCode) is missing; no
// confirmation call may be issued in that case.
func ParseReturn(q url.Values) (p api.CallbackParams, ok bool) {
	p = api.CallbackParams{
		Code:      q.Get("code"),
		ID:        q.Get("id"),
		Cancel:    q.Get("cancel"),
		Status:    q.Get("status"),
		OrderCode: q.Get("orderCode"),
	}
	if p.Cancel == "" {
		p.Cancel = "false"
	}
	ok = p.Code != "" && p.ID != "" && p.Status != "" && p.OrderCode != ""
	return p, ok
}

// HandleReturn reconciles one gateway redirect: a single best-effort
// confirmation call when the required parameters are present. Failures
// are logged only; the flow always proceeds home afterwards.
func (s *PaymentService) HandleReturn(ctx context.Context, q url.Values) {
	params, ok := ParseReturn(q)
	if !ok {
		s.logger.Warn("[payment] redirect missing required parameters, skipping confirmation")
		return
	}

	if err := s.api.ConfirmPayment(ctx, params); err != nil {
		s.logger.Error("[payment] confirmation call failed: %v", err)
		return
	}
	s.logger.Info("[payment] order %s confirmed (status %s)", params.OrderCode, params.Status)
}

// Router serves the gateway return endpoints. Both outcomes run the
// same reconciliation and then redirect to the home path; done receives
// one value per handled redirect.
func (s *PaymentService) Router(done chan<- struct{}) *mux.Router {
	r := mux.NewRouter()

	handle := func(w http.ResponseWriter, req *http.Request) {
		s.HandleReturn(req.Context(), req.URL.Query())
		http.Redirect(w, req, s.cfg.HomePath, http.StatusFound)
		select {
		case done <- struct{}{}:
		default:
		}
	}

	r.HandleFunc("/payment/success", handle).Methods(http.MethodGet)
	r.HandleFunc("/payment/failure", handle).Methods(http.MethodGet)
	r.HandleFunc(s.cfg.HomePath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, "<html><body><p>Payment processed — you can close this tab and return to the terminal.</p></body></html>")
	}).Methods(http.MethodGet)

	return r
}

// AwaitReturn runs the local listener until one redirect has been
// handled, the timeout expires or ctx is cancelled.
func (s *PaymentService) AwaitReturn(ctx context.Context, timeout time.Duration) error {
	done := make(chan struct{}, 1)
	srv := &http.Server{
		Addr:    s.cfg.CallbackListenAddr,
		Handler: s.Router(done),
	}

	errc := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	s.logger.Info("[payment] waiting for gateway redirect on http://%s ...", s.cfg.CallbackListenAddr)

	var result error
	select {
	case <-done:
		// Give the browser a moment to follow the /home redirect.
		time.Sleep(500 * time.Millisecond)
	case err := <-errc:
		result = fmt.Errorf("payment: redirect listener: %w", err)
	case <-time.After(timeout):
		result = fmt.Errorf("payment: no gateway redirect within %s", timeout)
	case <-ctx.Done():
		result = ctx.Err()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)

	return result
}
