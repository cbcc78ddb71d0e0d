package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"sheetmatch/internal/review"
)

const reviewHelp = `Commands:
  list [match|check|duplicate|removed|all]  show items (default: match and check)
  summary                                   show bucket counts
  labels [filter]                           list reference labels
  suggest <n>                               rank labels for item n
  rebind <n> <label>                        bind item n to an exact label
  confirm <n>                               move CHECK item n to MATCH
  remove <n>                                remove item n
  bulk-remove <n> [<n>...]                  remove several items, all or nothing
  history                                   show the batch journal
  reset                                     undo every review action
  reload                                    re-read the sheet and images
  export [file]                             write the MATCH archive
  help                                      show this help
  quit                                      leave the review`

func newReviewCommand(ctx *commandContext) *cobra.Command {
	var sheetPath string

	cmd := &cobra.Command{
		Use:   "review --sheet FILE IMAGES...",
		Short: "Classify images and review the result interactively",
		Long: `Classify images, then read review commands from stdin until quit.

Items are addressed by the number shown in "list". Rebinding only accepts a
label exactly as written in the reference sheet; use "labels" or "suggest" to
find it.`,
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

			b, err := openBatch(cmd.Context(), cfg, logger, sheetPath, args, true)
			if err != nil {
				return err
			}
			defer b.close()

			shell := &reviewShell{
				batch:  b,
				in:     cmd.InOrStdin(),
				out:    cmd.OutOrStdout(),
				prompt: isTerminal(cmd.InOrStdin()),
			}
			return shell.run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&sheetPath, "sheet", "s", "", "Reference sheet (.csv, .tsv or .txt)")
	return cmd
}

type reviewShell struct {
	batch  *batch
	in     io.Reader
	out    io.Writer
	prompt bool
}

func (s *reviewShell) run(ctx context.Context) error {
	printSummary(s.out, s.batch)
	s.list("")
	if s.prompt {
		fmt.Fprintln(s.out, `Type "help" for commands.`)
	}

	scanner := bufio.NewScanner(s.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.prompt {
			fmt.Fprint(s.out, "sheetmatch> ")
		}
		if !scanner.Scan() {
			break
		}
		quit, err := s.dispatch(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}

func (s *reviewShell) dispatch(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]
	session := s.batch.session

	switch name {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprintln(s.out, reviewHelp)
	case "summary":
		printSummary(s.out, s.batch)
	case "list", "ls":
		return false, s.list(strings.Join(args, " "))
	case "labels":
		s.labels(strings.Join(args, " "))
	case "suggest":
		item, err := s.item(args, 0)
		if err != nil {
			return false, err
		}
		printRanking(s.out, item, session.Matcher().Rank(item.OriginalName()), 5)
	case "rebind":
		item, err := s.item(args, 0)
		if err != nil {
			return false, err
		}
		label := restOfLine(line, 2)
		if label == "" {
			return false, errors.New("usage: rebind <n> <label>")
		}
		if err := s.batch.apply(ctx, review.Rebind{Item: item, Label: label}); err != nil {
			return false, err
		}
		bound, _ := item.Label()
		fmt.Fprintf(s.out, "Rebound #%d to %q (%s)\n", item.Seq(), bound.Text, item.Bucket())
	case "confirm":
		item, err := s.item(args, 0)
		if err != nil {
			return false, err
		}
		if err := s.batch.apply(ctx, review.Confirm{Item: item}); err != nil {
			return false, err
		}
		bound, _ := item.Label()
		fmt.Fprintf(s.out, "Confirmed #%d as %q\n", item.Seq(), bound.Text)
	case "remove", "rm":
		item, err := s.item(args, 0)
		if err != nil {
			return false, err
		}
		if err := s.batch.apply(ctx, review.Remove{Item: item}); err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "Removed #%d\n", item.Seq())
	case "bulk-remove":
		if len(args) == 0 {
			return false, errors.New("usage: bulk-remove <n> [<n>...]")
		}
		items := make([]*review.Item, 0, len(args))
		for i := range args {
			item, err := s.item(args, i)
			if err != nil {
				return false, err
			}
			items = append(items, item)
		}
		if err := s.batch.apply(ctx, review.BulkRemove{Items: items}); err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "Removed %d item(s)\n", len(items))
	case "history":
		entries, err := s.batch.journal.List(ctx, session.ID())
		if err != nil {
			return false, err
		}
		printHistory(s.out, entries)
	case "reset":
		if err := s.batch.reset(ctx); err != nil {
			return false, fmt.Errorf("reset: %w", err)
		}
		fmt.Fprintln(s.out, "Reset; every image was classified again")
		printSummary(s.out, s.batch)
	case "reload":
		if err := s.batch.load(ctx); err != nil {
			return false, fmt.Errorf("reload: %w", err)
		}
		fmt.Fprintln(s.out, "Reloaded; previous review actions were discarded")
		printSummary(s.out, s.batch)
	case "export":
		path := restOfLine(line, 1)
		written, count, err := s.batch.exportArchive(ctx, path)
		if err != nil {
			return false, fmt.Errorf("export: %w", err)
		}
		fmt.Fprintf(s.out, "Exported %d image(s) to %s\n", count, written)
	default:
		return false, fmt.Errorf("unknown command %q (type \"help\")", name)
	}
	return false, nil
}

func (s *reviewShell) list(which string) error {
	session := s.batch.session
	var buckets []review.Bucket
	switch strings.ToLower(strings.TrimSpace(which)) {
	case "":
		buckets = []review.Bucket{review.BucketMatch, review.BucketCheck}
	case "all":
		buckets = []review.Bucket{review.BucketMatch, review.BucketCheck, review.BucketDuplicate, review.BucketRemoved}
	default:
		bucket, ok := review.ParseBucket(which)
		if !ok {
			return fmt.Errorf("unknown bucket %q", which)
		}
		buckets = []review.Bucket{bucket}
	}
	for _, bucket := range buckets {
		printBucket(s.out, bucket, session.View(bucket))
	}
	return nil
}

func (s *reviewShell) labels(filter string) {
	labels := s.batch.session.Index().Filter(filter)
	if len(labels) == 0 {
		fmt.Fprintln(s.out, "No matching labels")
		return
	}
	rows := make([][]string, 0, len(labels))
	for _, label := range labels {
		rows = append(rows, []string{strconv.Itoa(label.Position + 1), label.Text})
	}
	fmt.Fprintln(s.out, renderTable(fmt.Sprintf("Labels (%d)", len(labels)),
		[]string{"Row", "Label"}, rows, []columnAlignment{alignRight}))
}

// item resolves the item number at args[i].
func (s *reviewShell) item(args []string, i int) (*review.Item, error) {
	if i >= len(args) {
		return nil, errors.New("missing item number")
	}
	seq, err := strconv.Atoi(strings.TrimPrefix(args[i], "#"))
	if err != nil {
		return nil, fmt.Errorf("invalid item number %q", args[i])
	}
	item, ok := s.batch.session.Item(seq)
	if !ok {
		return nil, fmt.Errorf("no item #%d", seq)
	}
	return item, nil
}

// restOfLine returns line without its first n whitespace-separated fields,
// keeping the spacing of what remains.
func restOfLine(line string, n int) string {
	rest := strings.TrimSpace(line)
	for i := 0; i < n; i++ {
		idx := strings.IndexFunc(rest, func(r rune) bool { return r == ' ' || r == '\t' })
		if idx < 0 {
			return ""
		}
		rest = strings.TrimSpace(rest[idx:])
	}
	return rest
}
