package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/PhucLH2303/RentEase-sub000/models"
)

func (a *app) payCmd() *cobra.Command {
	var amount float64
	var wait time.Duration

	cmd := &cobra.Command{
		Use:   "pay <postId>",
		Short: "Create a payment link and reconcile the gateway redirect",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.requireSession("pay")
			if err != nil {
				return err
			}
			if amount <= 0 {
				return errors.New("--amount must be positive")
			}

			link, err := a.payment.CreateLink(cmd.Context(), sess.Account.AccountID, args[0], amount)
			if err != nil {
				return err
			}

			fmt.Printf("Order %s created.\n", link.OrderCode)
			fmt.Printf("Open this URL in your browser to pay:\n\n  %s\n\n", link.CheckoutURL)

			if err := a.payment.AwaitReturn(cmd.Context(), wait); err != nil {
				// The confirmation path is best-effort; a missed redirect
				// leaves the order for the backend to settle.
				a.logger.Warn("[pay] %v", err)
			}

			fmt.Println("Done — check 'rentease pay orders' for the order status.")
			return nil
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "payment amount")
	cmd.Flags().DurationVar(&wait, "wait", 5*time.Minute, "how long to wait for the gateway redirect")

	cmd.AddCommand(a.payOrdersCmd())
	return cmd
}

func (a *app) payOrdersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "List your payment records",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.requireSession("pay orders")
			if err != nil {
				return err
			}

			orders, err := a.client.OrdersOf(cmd.Context(), sess.Account.AccountID)
			if err != nil {
				return err
			}

			if len(orders) == 0 {
				fmt.Println("No orders yet.")
				return nil
			}

			for _, o := range orders {
				fmt.Printf("%-14s %10.2f  %-10s %s\n",
					o.OrderCode, o.Amount, models.OrderStatusName(o.OrderStatusID), o.CreatedAt.Format(dateLayout))
			}
			return nil
		},
	}
}
