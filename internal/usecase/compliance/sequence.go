package compliance

import (
	"context"
	"fmt"

	domaincompliance "inspectra/internal/domain/compliance"
)

// allocateReferenceTx draws the next reference number for a scope inside
// the caller's transaction. The counter increment is atomic, so concurrent
// allocators in the same period get distinct, contiguous values; the taken
// probe only guards against identifiers imported from outside the counter.
// After the bounded retry budget the allocation fails loudly.
func (s *Service) allocateReferenceTx(
	txCtx context.Context,
	kind domaincompliance.ScopeKind,
	taken func(ctx context.Context, reference string) (bool, error),
) (string, error) {
	period, err := domaincompliance.PeriodKey(kind, s.nowUTC())
	if err != nil {
		return "", err
	}

	maxRetries := s.policy.Sequences.MaxRetries
	for attempt := 0; attempt < maxRetries; attempt++ {
		seq, err := s.repo.NextSequence(txCtx, string(kind), period)
		if err != nil {
			return "", err
		}
		if seq > domaincompliance.MaxSequence(kind) {
			break
		}

		reference, err := domaincompliance.FormatReference(kind, period, seq)
		if err != nil {
			return "", err
		}

		inUse, err := taken(txCtx, reference)
		if err != nil {
			return "", err
		}
		if !inUse {
			return reference, nil
		}
	}

	return "", fmt.Errorf("%w: scope %s period %s after %d attempts",
		domaincompliance.ErrSequenceExhausted, kind, period, maxRetries)
}
