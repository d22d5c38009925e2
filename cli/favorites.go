package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) favoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "List and manage favorited apartments",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.requireSession("favorites")
			if err != nil {
				return err
			}

			entries, err := a.favorites.Load(cmd.Context(), sess.Account.AccountID)
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Println("No favorites yet.")
				return nil
			}

			for _, e := range entries {
				if e.Failed {
					fmt.Printf("%-12s (failed to load)\n", e.AptID)
					continue
				}
				fmt.Printf("%-12s %-30s %.1f ★  %s\n",
					e.AptID, truncateCell(e.Detail.Address, 30), e.Detail.Rating, a.favorites.CardImage(e))
			}
			return nil
		},
	}

	cmd.AddCommand(a.favoritesAddCmd(), a.favoritesRemoveCmd())
	return cmd
}

func (a *app) favoritesAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <aptId>",
		Short: "Favorite an apartment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.requireSession("favorites add")
			if err != nil {
				return err
			}

			if err := a.client.Like(cmd.Context(), sess.Account.AccountID, args[0]); err != nil {
				return err
			}
			fmt.Printf("Apartment %s added to favorites.\n", args[0])
			return nil
		},
	}
}

func (a *app) favoritesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <aptId>",
		Short: "Remove an apartment from favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.requireSession("favorites remove")
			if err != nil {
				return err
			}

			entries, err := a.favorites.Load(cmd.Context(), sess.Account.AccountID)
			if err != nil {
				return err
			}

			remaining, err := a.favorites.Unlike(cmd.Context(), sess.Account.AccountID, args[0], entries)
			if err != nil {
				return err
			}
			fmt.Printf("Apartment %s removed — %d favorites left.\n", args[0], len(remaining))
			return nil
		},
	}
}

func truncateCell(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
