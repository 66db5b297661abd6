package cmd

import (
	"fmt"
	"os"

	"github.com/lehigh-university-libraries/sketchbook/internal/composer"
	"github.com/lehigh-university-libraries/sketchbook/internal/drawing"
	"github.com/lehigh-university-libraries/sketchbook/internal/gallery"
	"github.com/lehigh-university-libraries/sketchbook/internal/images"
	"github.com/spf13/cobra"
)

func newDrawCmd(root *rootOptions) *cobra.Command {
	var classID, name, text, imagePath, outDir string
	var count int
	var selectIndex int

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Draw pictures from the command line and save them",
		Long: `Composes a prompt from the text (and reference image, if given), draws
--count pictures and saves all of them as {class}_{name}_{id}.png.
With --select the chosen picture is also saved as {class}_{name}_Selected.png.`,
		Example: `  # Draw once and save
  sketchbook draw --class 6101 --name Kim --text "a red balloon over the village"

  # Draw three variations from a reference photo, keep the second
  sketchbook draw --class 6101 --name Kim --text "add mountains" --image photo.jpg --count 3 --select 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = cfg.SaveDir
			}
			if err := os.MkdirAll(outDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			var ref *composer.Image
			if imagePath != "" {
				data, err := os.ReadFile(imagePath)
				if err != nil {
					return fmt.Errorf("failed to read image: %w", err)
				}
				ref = &composer.Image{Data: data, MIMEType: images.DetectMIME(data)}
			}

			comp, err := drawing.NewComposer(cfg)
			if err != nil {
				return err
			}
			gen, err := drawing.NewGenerator(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			fetcher := images.NewFetcher()
			fetcher.HTTPClient.Timeout = cfg.HTTPTimeout
			gal := gallery.New(fetcher)
			svc := drawing.NewService(comp, gen, nil)

			req := drawing.Request{ClassID: classID, Name: name, Text: text, Reference: ref}
			for i := 0; i < count; i++ {
				res, err := svc.Draw(cmd.Context(), "cli", gal, req)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Drew picture %d: %s\n", res.Index, res.Image.Locator)
			}

			if selectIndex >= 0 {
				if err := gal.Select(selectIndex); err != nil {
					return err
				}
			}

			result, err := drawing.Save(cmd.Context(), gal, gallery.SaveRequest{
				ClassID:        classID,
				Name:           name,
				DestinationDir: outDir,
			})
			for _, p := range result.Paths {
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", p)
			}
			if err != nil {
				return err
			}
			if result.SelectedPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Saved selected picture %s\n", result.SelectedPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&classID, "class", "", "Class number (required)")
	cmd.Flags().StringVar(&name, "name", "", "Student name (required)")
	cmd.Flags().StringVar(&text, "text", "", "What the AI should draw (required)")
	cmd.Flags().StringVar(&imagePath, "image", "", "Optional reference image")
	cmd.Flags().StringVar(&outDir, "out", "", "Directory to save pictures to (defaults to save_dir)")
	cmd.Flags().IntVar(&count, "count", 1, "Number of pictures to draw")
	cmd.Flags().IntVar(&selectIndex, "select", -1, "Index of the picture to also save as Selected")

	_ = cmd.MarkFlagRequired("class")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}
