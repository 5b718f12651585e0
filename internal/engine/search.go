package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/piwi3910/PlateCut/internal/model"
)

const costEpsilon = 1e-9

// deadline is the cooperative cancellation check shared by the searches.
// It trips when the context is done or the wall-clock budget is spent.
type deadline struct {
	ctx      context.Context
	until    time.Time
	hasLimit bool
}

func newDeadline(ctx context.Context, limit time.Duration) deadline {
	d := deadline{ctx: ctx}
	if limit > 0 {
		d.until = time.Now().Add(limit)
		d.hasLimit = true
	}
	return d
}

func (d deadline) expired() bool {
	if d.ctx != nil && d.ctx.Err() != nil {
		return true
	}
	return d.hasLimit && time.Now().After(d.until)
}

type loggerKey struct{}

// contextWithLogger attaches the solver logger so the search loops can report
// timeouts and skipped orderings.
func contextWithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func loggerFrom(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return slog.Default()
}

// orderOf materialises the piece order described by idx.
func orderOf(pieces []model.Piece, idx []int, dst []model.Piece) []model.Piece {
	dst = dst[:0]
	for _, i := range idx {
		dst = append(dst, pieces[i])
	}
	return dst
}

// nextPermutation rearranges idx into its lexicographic successor.
// It returns false when idx is already the last permutation.
func nextPermutation(idx []int) bool {
	i := len(idx) - 2
	for i >= 0 && idx[i] >= idx[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(idx) - 1
	for idx[j] <= idx[i] {
		j--
	}
	idx[i], idx[j] = idx[j], idx[i]
	for l, r := i+1, len(idx)-1; l < r; l, r = l+1, r-1 {
		idx[l], idx[r] = idx[r], idx[l]
	}
	return true
}

func identity(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
