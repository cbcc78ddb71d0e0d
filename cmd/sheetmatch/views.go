package main

import (
	"fmt"
	"io"
	"strconv"

	"sheetmatch/internal/imageset"
	"sheetmatch/internal/journal"
	"sheetmatch/internal/matcher"
	"sheetmatch/internal/review"
)

// batchReport is the JSON shape printed by "match --json".
type batchReport struct {
	BatchID         string             `json:"batch_id"`
	MatchThreshold  float64            `json:"match_threshold"`
	ReviewThreshold float64            `json:"review_threshold"`
	Labels          int                `json:"labels"`
	Summary         review.Summary     `json:"summary"`
	Match           []review.ItemView  `json:"match"`
	Check           []review.ItemView  `json:"check"`
	Skipped         []imageset.Skipped `json:"skipped,omitempty"`
	Archive         *archiveReport     `json:"archive,omitempty"`
}

type archiveReport struct {
	Path    string `json:"path"`
	Entries int    `json:"entries"`
}

func newBatchReport(b *batch) batchReport {
	policy := b.session.Policy()
	return batchReport{
		BatchID:         b.session.ID(),
		MatchThreshold:  policy.MatchThreshold,
		ReviewThreshold: policy.ReviewThreshold,
		Labels:          b.labelCount,
		Summary:         b.session.Summary(),
		Match:           b.session.View(review.BucketMatch),
		Check:           b.session.View(review.BucketCheck),
		Skipped:         b.skipped,
	}
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 2, 64)
}

func printSummary(w io.Writer, b *batch) {
	summary := b.session.Summary()
	policy := b.session.Policy()
	fmt.Fprintf(w, "Batch %s: %d labels, match threshold %s (review threshold %s)\n",
		shortID(b.session.ID()), b.labelCount, formatScore(policy.MatchThreshold), formatScore(policy.ReviewThreshold))
	fmt.Fprintf(w, "MATCH %d · CHECK %d · DUPLICATE %d · REMOVED %d\n",
		summary.Match, summary.Check, summary.Duplicate, summary.Removed)
	if b.labelCount == 0 {
		fmt.Fprintln(w, "Warning: the reference sheet has no labels; every image needs review")
	}
	if len(b.skipped) > 0 {
		fmt.Fprintf(w, "Skipped %d file(s)\n", len(b.skipped))
	}
}

func printBucket(w io.Writer, bucket review.Bucket, views []review.ItemView) {
	if len(views) == 0 {
		fmt.Fprintf(w, "%s: none\n", bucket)
		return
	}
	rows := make([][]string, 0, len(views))
	for _, view := range views {
		rows = append(rows, []string{
			strconv.Itoa(view.Seq),
			view.OriginalName,
			view.Label,
			formatScore(view.Score),
		})
	}
	fmt.Fprintln(w, renderTable(
		fmt.Sprintf("%s (%d)", bucket, len(views)),
		[]string{"#", "Image", "Label", "Score"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight},
	))
}

func printRanking(w io.Writer, item *review.Item, ranked []matcher.Match, limit int) {
	if len(ranked) == 0 {
		fmt.Fprintln(w, "No reference labels loaded")
		return
	}
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	rows := make([][]string, 0, len(ranked))
	for i, match := range ranked {
		rows = append(rows, []string{strconv.Itoa(i + 1), match.Label.Text, formatScore(match.Score)})
	}
	fmt.Fprintln(w, renderTable(
		fmt.Sprintf("Suggestions for #%d %s", item.Seq(), item.OriginalName()),
		[]string{"Rank", "Label", "Score"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight},
	))
}

func printHistory(w io.Writer, entries []journal.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No history")
		return
	}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		item := ""
		if entry.ItemSeq > 0 {
			item = "#" + strconv.Itoa(entry.ItemSeq) + " " + entry.OriginalName
		}
		what := entry.Op
		if what == "" {
			what = string(entry.Kind)
		}
		rows = append(rows, []string{
			strconv.Itoa(entry.Position),
			entry.CreatedAt.Local().Format("15:04:05"),
			what,
			item,
			entry.Label,
			entry.Bucket,
			entry.Detail,
		})
	}
	fmt.Fprintln(w, renderTable("History",
		[]string{"#", "Time", "Event", "Item", "Label", "Bucket", "Detail"},
		rows,
		[]columnAlignment{alignRight},
	))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
