package cmd

import (
	"fmt"

	"github.com/lehigh-university-libraries/sketchbook/internal/history"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newHistoryCmd() *cobra.Command {
	var classID string

	cmd := &cobra.Command{
		Use:   "history FILE",
		Short: "Print a drawing history file as YAML",
		Example: `  sketchbook history drawings.parquet
  sketchbook history drawings.parquet --class 6101`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := history.ReadFile(args[0])
			if err != nil {
				return err
			}

			filtered := records[:0]
			for _, r := range records {
				if classID == "" || r.ClassID == classID {
					filtered = append(filtered, r)
				}
			}

			data, err := yaml.Marshal(filtered)
			if err != nil {
				return fmt.Errorf("failed to marshal history: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&classID, "class", "", "Only show drawings from this class")
	return cmd
}
