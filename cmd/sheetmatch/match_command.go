package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sheetmatch/internal/review"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var sheetPath string
	var exportFlag bool
	var outputPath string
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "match --sheet FILE IMAGES...",
		Short: "Classify images against a reference sheet",
		Long: `Classify images against the labels of a reference sheet.

Each image is scored against every label; images at or above the match
threshold are MATCH, the rest are CHECK. Later shots of an image already
seen in the batch (photo_1.jpg, photo_2.jpg) are counted as duplicates.
IMAGES may be files or directories.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if sheetPath == "" {
				return errors.New("--sheet is required")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			b, err := openBatch(cmd.Context(), cfg, logger, sheetPath, args, exportFlag || outputPath != "")
			if err != nil {
				return err
			}
			defer b.close()

			report := newBatchReport(b)
			var skippedExport bool
			if exportFlag || outputPath != "" {
				path, count, err := b.exportArchive(cmd.Context(), outputPath)
				switch {
				case errors.Is(err, errNothingToExport):
					skippedExport = true
				case err != nil:
					return fmt.Errorf("export: %w", err)
				default:
					report.Archive = &archiveReport{Path: path, Entries: count}
				}
			}

			if jsonFlag {
				return writeJSON(cmd, report)
			}

			out := cmd.OutOrStdout()
			printSummary(out, b)
			printBucket(out, review.BucketMatch, report.Match)
			printBucket(out, review.BucketCheck, report.Check)
			if report.Archive != nil {
				fmt.Fprintf(out, "Exported %d image(s) to %s\n", report.Archive.Entries, report.Archive.Path)
			}
			if skippedExport {
				fmt.Fprintln(out, "No archive written: no images in MATCH")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&sheetPath, "sheet", "s", "", "Reference sheet (.csv, .tsv or .txt)")
	cmd.Flags().BoolVar(&exportFlag, "export", false, "Write the MATCH images to <output_dir>/<folder_name>.zip")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Archive path (implies --export)")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Output as JSON")
	return cmd
}
