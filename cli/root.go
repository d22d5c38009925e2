package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PhucLH2303/RentEase-sub000/api"
	"github.com/PhucLH2303/RentEase-sub000/config"
	"github.com/PhucLH2303/RentEase-sub000/services"
	"github.com/PhucLH2303/RentEase-sub000/session"
	"github.com/PhucLH2303/RentEase-sub000/utils"
)

// app bundles the shared dependencies every command needs: one config,
// one session store, one API client, one service per view.
type app struct {
	cfg    *config.Config
	logger *utils.Logger
	store  *session.Store
	client *api.Client

	posts     *services.PostService
	favorites *services.FavoritesService
	chat      *services.ChatService
	payment   *services.PaymentService
	insights  *services.InsightService
}

func newApp() *app {
	cfg := config.Load()
	logger := utils.NewLogger()
	store := session.NewStore(cfg.SessionPath)
	client := api.NewClient(cfg, store, store, logger)

	return &app{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		client:    client,
		posts:     services.NewPostService(cfg, client, logger),
		favorites: services.NewFavoritesService(cfg, client, logger),
		chat:      services.NewChatService(cfg, client, logger),
		payment:   services.NewPaymentService(cfg, client, logger),
		insights:  services.NewInsightService(logger),
	}
}

// requireSession is the auth gate: every data-bearing command calls it
// first, and the returned error names the command so the user knows
// what to retry after logging in.
func (a *app) requireSession(from string) (*session.Session, error) {
	return a.store.Require(from)
}

// Execute builds the command tree and runs it.
func Execute() {
	a := newApp()

	root := &cobra.Command{
		Use:           "rentease",
		Short:         "Terminal client for the RentEase rental and roommate marketplace",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		a.loginCmd(),
		a.logoutCmd(),
		a.postsCmd(),
		a.apartmentsCmd(),
		a.favoritesCmd(),
		a.chatCmd(),
		a.payCmd(),
		a.exportCmd(),
		a.insightsCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
