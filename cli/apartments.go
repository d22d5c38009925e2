package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func (a *app) apartmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apt",
		Short: "Inspect apartments and manage their images",
	}
	cmd.AddCommand(a.aptShowCmd(), a.aptUploadCmd())
	return cmd
}

func (a *app) aptShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <aptId>",
		Short: "Show one apartment with its images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apt, err := a.client.Apartment(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", apt.Name)
			fmt.Printf("  Address : %s\n", apt.Address)
			fmt.Printf("  Area    : %.1f m², %d rooms, %d slots\n", apt.Area, apt.NumberOfRoom, apt.NumberOfSlot)
			fmt.Printf("  Rating  : %.1f ★\n", apt.Rating)
			for _, u := range apt.Utilities {
				fmt.Printf("  Utility : %s\n", u.Name)
			}

			images, err := a.client.AptImages(cmd.Context(), args[0])
			if err != nil {
				a.logger.Warn("[apt] images for %s failed to load: %v", args[0], err)
				return nil
			}
			if len(images) == 0 {
				fmt.Printf("  Image   : %s\n", a.cfg.PlaceholderImageURL)
				return nil
			}
			for _, img := range images {
				fmt.Printf("  Image   : %s\n", img.ImageURL)
			}
			return nil
		},
	}
}

func (a *app) aptUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload-image <aptId> <file>",
		Short: "Upload an image for an apartment you own",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireSession("apt upload-image"); err != nil {
				return err
			}

			f, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("open image %q: %w", args[1], err)
			}
			defer f.Close()

			img, err := a.client.UploadAptImage(cmd.Context(), args[0], filepath.Base(args[1]), f)
			if err != nil {
				return err
			}

			fmt.Printf("Image uploaded: %s\n", img.ImageURL)
			return nil
		},
	}
}
