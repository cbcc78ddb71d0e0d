package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofrs/flock"

	"sheetmatch/internal/config"
	"sheetmatch/internal/export"
	"sheetmatch/internal/imageprep"
	"sheetmatch/internal/imageset"
	"sheetmatch/internal/journal"
	"sheetmatch/internal/logging"
	"sheetmatch/internal/matcher"
	"sheetmatch/internal/preflight"
	"sheetmatch/internal/reference"
	"sheetmatch/internal/review"
	"sheetmatch/internal/sheet"
)

// errOutputLocked reports another sheetmatch process working in the output directory.
var errOutputLocked = errors.New("output directory is locked by another sheetmatch process")

// errNothingToExport is returned when an export is requested with an empty MATCH bucket.
var errNothingToExport = errors.New("nothing to export: no images in MATCH")

// batch is one classified upload together with everything the commands need
// to review and export it.
type batch struct {
	cfg        *config.Config
	logger     *slog.Logger
	sheetPath  string
	imageArgs  []string
	session    *review.Session
	journal    *journal.Store
	exporter   *export.Exporter
	images     []review.Image
	skipped    []imageset.Skipped
	lock       *flock.Flock
	labelCount int
}

// openBatch runs preflight, takes the output lock when lock is set, loads the
// sheet and images, and classifies the batch.
func openBatch(ctx context.Context, cfg *config.Config, logger *slog.Logger, sheetPath string, imageArgs []string, lock bool) (*batch, error) {
	if err := preflight.Err(preflight.RunAll(cfg, sheetPath)); err != nil {
		return nil, fmt.Errorf("preflight: %w", err)
	}

	b := &batch{
		cfg:       cfg,
		logger:    logger,
		sheetPath: sheetPath,
		imageArgs: imageArgs,
		exporter:  export.New(cfg.Export.FolderName, cfg.Export.Extension, logger),
	}
	if lock {
		b.lock = flock.New(cfg.LockPath())
		ok, err := b.lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("acquire lock: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("%w (%s)", errOutputLocked, cfg.LockPath())
		}
	}

	store, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		b.close()
		return nil, fmt.Errorf("open journal: %w", err)
	}
	b.journal = store

	if err := b.load(ctx); err != nil {
		b.close()
		return nil, err
	}
	return b, nil
}

// load (re)reads the sheet and images into a fresh session.
func (b *batch) load(ctx context.Context) error {
	labels, err := sheet.Load(b.sheetPath, sheet.Options{
		LabelColumn:      b.cfg.Reference.LabelColumn,
		SkipFilledColumn: b.cfg.Reference.SkipFilledColumn,
		HasHeader:        b.cfg.Reference.HasHeader,
	})
	if err != nil {
		return err
	}
	index := reference.NewIndex(labels)

	loader := &imageset.Loader{
		Accept: b.cfg.AcceptsImage,
		Logger: b.logger,
	}
	if b.cfg.Images.Reencode {
		opts := imageprep.Options{
			Width:   b.cfg.Images.Width,
			Height:  b.cfg.Images.Height,
			Quality: b.cfg.Images.JPEGQuality,
		}
		loader.Prepare = func(data []byte) ([]byte, error) {
			return imageprep.Prepare(data, opts)
		}
	}
	loaded, err := loader.Load(ctx, b.imageArgs)
	if err != nil {
		return err
	}

	session, err := review.NewSession(matcher.New(index), b.cfg.Policy(), b.logger)
	if err != nil {
		return err
	}
	if err := b.classify(ctx, session, loaded.Images); err != nil {
		return err
	}

	b.session = session
	b.images = loaded.Images
	b.skipped = loaded.Skipped
	b.labelCount = index.Len()
	return nil
}

// reset discards every review action and classifies the already loaded
// images again under a new batch id, without re-reading any file.
func (b *batch) reset(ctx context.Context) error {
	b.session.Reset()
	return b.classify(ctx, b.session, b.images)
}

func (b *batch) classify(ctx context.Context, session *review.Session, images []review.Image) error {
	items := session.Ingest(images)
	views := make([]review.ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, item.View())
	}
	return b.journal.RecordClassified(ctx, session.ID(), views)
}

// apply runs an operator command and journals the touched items.
func (b *batch) apply(ctx context.Context, cmd review.Command) error {
	if err := b.session.Apply(cmd); err != nil {
		return err
	}
	var touched []*review.Item
	switch c := cmd.(type) {
	case review.Rebind:
		touched = []*review.Item{c.Item}
	case review.Confirm:
		touched = []*review.Item{c.Item}
	case review.Remove:
		touched = []*review.Item{c.Item}
	case review.BulkRemove:
		touched = c.Items
	}
	views := make([]review.ItemView, 0, len(touched))
	for _, item := range touched {
		views = append(views, item.View())
	}
	if err := b.journal.RecordCommand(ctx, b.session.ID(), cmd.Op(), views); err != nil {
		logging.WarnWithContext(b.logger, "journal write failed", "journal_write_failed",
			logging.Error(err),
			logging.String(logging.FieldOp, string(cmd.Op())),
			logging.String(logging.FieldImpact, "the command was applied but is missing from history"),
			logging.String(logging.FieldErrorHint, "check journal.path permissions"),
		)
	}
	return nil
}

// exportArchive writes the MATCH bucket to path, or to the configured archive
// path when path is empty. An empty MATCH bucket writes nothing.
func (b *batch) exportArchive(ctx context.Context, path string) (string, int, error) {
	entries := b.session.ExportEntries()
	if len(entries) == 0 {
		return "", 0, errNothingToExport
	}
	if path == "" {
		path = b.cfg.ArchivePath()
	}
	count, err := b.exporter.WriteFile(path, entries)
	if err != nil {
		return "", 0, err
	}
	if err := b.journal.RecordExport(ctx, b.session.ID(), path, count); err != nil {
		logging.WarnWithContext(b.logger, "journal write failed", "journal_write_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "the archive was written but is missing from history"),
			logging.String(logging.FieldErrorHint, "check journal.path permissions"),
		)
	}
	return path, count, nil
}

func (b *batch) close() {
	if b.journal != nil {
		_ = b.journal.Close()
	}
	if b.lock != nil {
		if err := b.lock.Unlock(); err != nil {
			b.logger.Warn("failed to release output lock", logging.Error(err))
		}
	}
}
