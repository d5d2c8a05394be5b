package bookmarksync

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/stefanboere/nc-bookmark-sync/pkg/bookmarksync/core"
	"github.com/stefanboere/nc-bookmark-sync/pkg/logging"
)

// Pair binds two storages together under a conflict resolution policy and a
// state file that anchors their three-way diffs across runs.
type Pair struct {
	Name               string
	A                  Storage
	B                  Storage
	StatusPath         string
	ConflictResolution core.ConflictResolution
	Logger             *logging.Logger
}

// Run executes one synchronization cycle for the pair: load the previous
// snapshot (or fall back to the initial blind-union path if there is none),
// list both sides, reconcile, apply A then B, and persist the new snapshot.
func (p *Pair) Run(ctx context.Context) error {
	runID := uuid.New().String()
	logger := p.Logger.Sublogger(p.Name).Sublogger(runID[:8])

	previous, err := loadSnapshot(p.StatusPath)
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}

	aListing, err := p.A.List(ctx)
	if err != nil {
		return fmt.Errorf("listing side a: %w", err)
	}
	bListing, err := p.B.List(ctx)
	if err != nil {
		return fmt.Errorf("listing side b: %w", err)
	}

	var update *core.Update
	if previous == nil {
		logger.Infof("no previous snapshot found, performing initial sync")
		update, err = core.ReconcileInitial(aListing, bListing, p.ConflictResolution)
	} else {
		logger.Debugf("previous sync was %s", humanize.Time(time.Unix(previous.At, 0)))
		update, err = core.Reconcile(previous, aListing, bListing, p.ConflictResolution)
	}
	if err != nil {
		return fmt.Errorf("reconciling: %w", err)
	}

	logger.Debugf("applying %d new, %d changed, %d deleted to side a",
		len(update.ForA.New), len(update.ForA.Changed), len(update.ForA.Deleted))
	if err := p.A.Apply(ctx, update.ForA, update.NewSnapshot); err != nil {
		return fmt.Errorf("applying to side a: %w", err)
	}

	logger.Debugf("applying %d new, %d changed, %d deleted to side b",
		len(update.ForB.New), len(update.ForB.Changed), len(update.ForB.Deleted))
	if err := p.B.Apply(ctx, update.ForB, update.NewSnapshot); err != nil {
		return fmt.Errorf("applying to side b: %w", err)
	}

	if err := saveSnapshot(p.StatusPath, update.NewSnapshot, p.Logger); err != nil {
		return fmt.Errorf("persisting snapshot: %w", err)
	}

	logger.Infof("synchronized %s bookmarks", humanize.Comma(int64(len(update.NewSnapshot))))
	return nil
}
