package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PhucLH2303/RentEase-sub000/models"
	"github.com/PhucLH2303/RentEase-sub000/storage"
	"github.com/PhucLH2303/RentEase-sub000/utils"
)

// fetchSnapshots pulls up to maxPages pages of posts and flattens them.
// Posts repeated across page boundaries are taken once.
func (a *app) fetchSnapshots(cmd *cobra.Command, category string, maxPages int) ([]*models.Snapshot, error) {
	cat, err := parseCategory(category)
	if err != nil {
		return nil, err
	}

	seen := utils.NewIDSet()
	var all []*models.Snapshot
	for page := 1; page <= maxPages; page++ {
		posts, pg, err := a.posts.Browse(cmd.Context(), page, cat)
		if err != nil {
			return nil, err
		}

		fresh := posts[:0:0]
		for _, p := range posts {
			if seen.Add(p.PostID) {
				fresh = append(fresh, p)
			}
		}

		all = append(all, a.posts.Snapshots(cmd.Context(), fresh)...)
		if page >= pg.TotalPages {
			break
		}
	}
	return all, nil
}

func (a *app) exportCmd() *cobra.Command {
	var category string
	var pages int
	var toPostgres bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Snapshot browsed posts to CSV (and optionally PostgreSQL)",
		RunE: func(cmd *cobra.Command, args []string) error {
			snaps, err := a.fetchSnapshots(cmd, category, pages)
			if err != nil {
				return err
			}
			if len(snaps) == 0 {
				return fmt.Errorf("no posts fetched, nothing to export")
			}

			csvWriter, err := storage.NewCSVWriter(a.cfg.CSVOutputPath)
			if err != nil {
				return err
			}
			defer csvWriter.Close()

			if err := csvWriter.Write(snaps); err != nil {
				return err
			}
			a.logger.Info("[export] %d snapshots written to %s", len(snaps), a.cfg.CSVOutputPath)

			if toPostgres {
				pgWriter, err := storage.NewPostgresWriter(a.cfg.DSN())
				if err != nil {
					return err
				}
				defer pgWriter.Close()

				if err := pgWriter.Write(snaps); err != nil {
					return err
				}
				a.logger.Info("[export] snapshot cache refreshed in PostgreSQL (table: post_snapshots)")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "all", "rental, roommate or all")
	cmd.Flags().IntVar(&pages, "pages", 3, "maximum pages to fetch")
	cmd.Flags().BoolVar(&toPostgres, "pg", false, "also refresh the PostgreSQL snapshot cache")
	return cmd
}

func (a *app) insightsCmd() *cobra.Command {
	var category string
	var pages int
	var offline bool

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Print a market report over current posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			var snaps []*models.Snapshot
			var err error

			if offline {
				pgWriter, perr := storage.NewPostgresWriter(a.cfg.DSN())
				if perr != nil {
					return perr
				}
				defer pgWriter.Close()
				snaps, err = pgWriter.FetchAll()
			} else {
				snaps, err = a.fetchSnapshots(cmd, category, pages)
			}
			if err != nil {
				return err
			}

			report := a.insights.Generate(snaps)
			a.insights.Print(report)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "all", "rental, roommate or all")
	cmd.Flags().IntVar(&pages, "pages", 3, "maximum pages to fetch")
	cmd.Flags().BoolVar(&offline, "offline", false, "use the PostgreSQL snapshot cache instead of the backend")
	return cmd
}
