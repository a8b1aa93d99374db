package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/SscSPs/ledger_posting_core/internal/apperrors"
	portsrepo "github.com/SscSPs/ledger_posting_core/internal/core/ports/repositories"
)

const defaultEntryPrefix = "JE-"

var trailingDigits = regexp.MustCompile(`(\d+)$`)

// EntryNumberSequencer hands out per-entity entry numbers. It must run in the
// same transaction as the insert; gaps are fine, duplicates are not.
type EntryNumberSequencer struct {
	prefix string
}

// NewEntryNumberSequencer creates a sequencer emitting prefix + zero padded number.
func NewEntryNumberSequencer(prefix string) *EntryNumberSequencer {
	return &EntryNumberSequencer{prefix: prefix}
}

// Next increments the numeric suffix of the most recently created entry.
// Ordering is by creation, not by number, so renumbered history is tolerated.
func (s *EntryNumberSequencer) Next(ctx context.Context, tx portsrepo.Tx, entityID string) (string, error) {
	latest, err := tx.Journals().LatestEntryNumber(ctx, entityID)
	if err != nil {
		return "", err
	}
	n, err := nextSequence(latest)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%03d", s.prefix, n), nil
}

func nextSequence(latest string) (int64, error) {
	m := trailingDigits.FindStringSubmatch(latest)
	if m == nil {
		return 1, nil
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeInternal, "unparseable entry number "+latest, err)
	}
	return n + 1, nil
}
