package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) chatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "List conversation threads and exchange messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.requireSession("chat")
			if err != nil {
				return err
			}

			threads, err := a.chat.Threads(cmd.Context(), sess.Account.AccountID)
			if err != nil {
				return err
			}

			if len(threads) == 0 {
				fmt.Println("No conversations yet.")
				return nil
			}

			for _, t := range threads {
				fmt.Printf("%-12s %-25s since %s\n",
					t.Conversation.ConversationID, t.CounterpartName,
					t.Conversation.CreatedAt.Format(dateLayout))
			}
			return nil
		},
	}

	cmd.AddCommand(a.chatOpenCmd(), a.chatSendCmd(), a.chatStartCmd())
	return cmd
}

func (a *app) chatOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <conversationId>",
		Short: "Show the full message history of a thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.requireSession("chat open")
			if err != nil {
				return err
			}

			msgs, err := a.chat.Open(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			for _, m := range msgs {
				who := "them"
				if m.SenderID == sess.Account.AccountID {
					who = "me"
				}
				fmt.Printf("[%s] %-4s %s\n", m.SentAt.Format("2006-01-02 15:04"), who, m.Content)
			}
			return nil
		},
	}
}

func (a *app) chatSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <conversationId> <message...>",
		Short: "Send a message and refetch the thread",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.requireSession("chat send")
			if err != nil {
				return err
			}

			body := strings.Join(args[1:], " ")
			msgs, err := a.chat.Send(cmd.Context(), args[0], sess.Account.AccountID, body)
			if err != nil {
				return err
			}

			fmt.Printf("Sent. Thread now has %d messages.\n", len(msgs))
			return nil
		},
	}
}

func (a *app) chatStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <accountId>",
		Short: "Open (or create) a thread with another account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.requireSession("chat start")
			if err != nil {
				return err
			}

			conv, err := a.chat.StartThread(cmd.Context(), sess.Account.AccountID, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Conversation %s ready — use 'rentease chat send %s <message>'.\n",
				conv.ConversationID, conv.ConversationID)
			return nil
		},
	}
}
