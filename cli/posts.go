package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/PhucLH2303/RentEase-sub000/models"
	"github.com/PhucLH2303/RentEase-sub000/services"
)

const dateLayout = "2006-01-02"

func parseCategory(name string) (int, error) {
	switch strings.ToLower(name) {
	case "", "all":
		return 0, nil
	case "rental":
		return models.CategoryRental, nil
	case "roommate":
		return models.CategoryRoommate, nil
	default:
		return 0, fmt.Errorf("unknown category %q (want rental, roommate or all)", name)
	}
}

func (a *app) postsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Browse and manage listing posts",
	}
	cmd.AddCommand(a.postsListCmd(), a.postsShowCmd(), a.postsCreateCmd(), a.postsEditCmd())
	return cmd
}

func (a *app) postsListCmd() *cobra.Command {
	var page int
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := parseCategory(category)
			if err != nil {
				return err
			}

			posts, pg, err := a.posts.Browse(cmd.Context(), page, cat)
			if err != nil {
				return err
			}

			for _, p := range posts {
				fmt.Printf("%-12s %-10s %10.2f  %d/%d slots  %-9s %s\n",
					p.PostID, models.CategoryName(p.PostCategoryID), p.RentPrice,
					p.CurrentSlot, p.TotalSlot,
					models.ApproveStatusName(p.ApproveStatusID), p.Title)
			}
			fmt.Printf("\nPage %d of %d (%d posts total)\n", pg.CurrentPage, pg.TotalPages, pg.Count)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().StringVar(&category, "category", "all", "rental, roommate or all")
	return cmd
}

func (a *app) postsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <postId>",
		Short: "Show one post with its apartment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			post, err := a.client.Post(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", post.Title)
			fmt.Printf("  Category : %s\n", models.CategoryName(post.PostCategoryID))
			fmt.Printf("  Rent     : %.2f (pile %.2f)\n", post.RentPrice, post.PilePrice)
			fmt.Printf("  Slots    : %d/%d\n", post.CurrentSlot, post.TotalSlot)
			fmt.Printf("  Move in  : %s\n", post.MoveInDate.Format(dateLayout))
			fmt.Printf("  Move out : %s\n", post.MoveOutDate.Format(dateLayout))
			fmt.Printf("  Status   : %s\n", models.ApproveStatusName(post.ApproveStatusID))
			if post.Note != "" {
				fmt.Printf("  Note     : %s\n", post.Note)
			}

			apt, err := a.client.Apartment(cmd.Context(), post.AptID)
			if err != nil {
				a.logger.Warn("[posts] apartment %s failed to load: %v", post.AptID, err)
				return nil
			}
			fmt.Printf("  Address  : %s (%.1f m², %d rooms)\n", apt.Address, apt.Area, apt.NumberOfRoom)
			return nil
		},
	}
}

func postFormFlags(cmd *cobra.Command, form *postFormInput) {
	cmd.Flags().StringVar(&form.aptID, "apt", "", "apartment id")
	cmd.Flags().StringVar(&form.title, "title", "", "post title")
	cmd.Flags().StringVar(&form.note, "note", "", "free-form note")
	cmd.Flags().StringVar(&form.category, "category", "rental", "rental or roommate")
	cmd.Flags().Float64Var(&form.rentPrice, "rent", 0, "monthly rent price")
	cmd.Flags().Float64Var(&form.pilePrice, "pile", 0, "deposit (pile) price")
	cmd.Flags().IntVar(&form.totalSlot, "total-slots", 1, "total slots")
	cmd.Flags().IntVar(&form.currentSlot, "current-slots", 0, "occupied slots")
	cmd.Flags().StringVar(&form.moveIn, "move-in", "", "move-in date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&form.moveOut, "move-out", "", "move-out date (YYYY-MM-DD)")
}

type postFormInput struct {
	aptID, title, note, category string
	rentPrice, pilePrice         float64
	totalSlot, currentSlot       int
	moveIn, moveOut              string
}

func (in *postFormInput) toForm() (services.PostForm, error) {
	cat, err := parseCategory(in.category)
	if err != nil {
		return services.PostForm{}, err
	}

	var moveIn, moveOut time.Time
	if in.moveIn != "" {
		if moveIn, err = time.Parse(dateLayout, in.moveIn); err != nil {
			return services.PostForm{}, fmt.Errorf("invalid --move-in date: %w", err)
		}
	}
	if in.moveOut != "" {
		if moveOut, err = time.Parse(dateLayout, in.moveOut); err != nil {
			return services.PostForm{}, fmt.Errorf("invalid --move-out date: %w", err)
		}
	}

	return services.PostForm{
		AptID:       in.aptID,
		Title:       in.title,
		Note:        in.note,
		CategoryID:  cat,
		RentPrice:   in.rentPrice,
		PilePrice:   in.pilePrice,
		TotalSlot:   in.totalSlot,
		CurrentSlot: in.currentSlot,
		MoveInDate:  moveIn,
		MoveOutDate: moveOut,
	}, nil
}

func (a *app) postsCreateCmd() *cobra.Command {
	var in postFormInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Submit a new post (enters the pending approval queue)",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.requireSession("posts create")
			if err != nil {
				return err
			}

			form, err := in.toForm()
			if err != nil {
				return err
			}

			created, err := a.posts.Create(cmd.Context(), sess.Account.AccountID, form)
			if err != nil {
				return err
			}

			fmt.Printf("Post %s created — approval status: %s\n",
				created.PostID, models.ApproveStatusName(created.ApproveStatusID))
			return nil
		},
	}

	postFormFlags(cmd, &in)
	return cmd
}

func (a *app) postsEditCmd() *cobra.Command {
	var in postFormInput

	cmd := &cobra.Command{
		Use:   "edit <postId>",
		Short: "Edit a post you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireSession("posts edit"); err != nil {
				return err
			}

			post, err := a.client.Post(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			form, err := in.toForm()
			if err != nil {
				return err
			}

			if err := a.posts.Edit(cmd.Context(), post, form); err != nil {
				return err
			}

			fmt.Printf("Post %s updated.\n", post.PostID)
			return nil
		},
	}

	postFormFlags(cmd, &in)
	return cmd
}
