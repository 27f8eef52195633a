// Package cryptarithm searches a word list for alphametic puzzles of the form A + B = C: three
// words under a one to one letter to digit mapping, with no leading zeros, where the sum holds
// and exactly one word C fits for the chosen A and B.
package cryptarithm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/cryptograms/internal/cipher"
)

const (
	defaultBatchSize = 10
	defaultWorkers   = 4
	// ctxCheckInterval is how many assignments pass between context checks.
	ctxCheckInterval = 4096
	maxLetters       = 10
)

// ErrExhaustedSearch is returned when the search budget runs out or the context ends before a
// puzzle is found.
var ErrExhaustedSearch = errors.New("cryptarithm search exhausted")

// WordSource hands out random batches of distinct lowercase words. *corpus.WordList satisfies it.
type WordSource interface {
	Len() int
	Sample(r cipher.Rand, k int) []string
}

// Solution is a found puzzle.
type Solution struct {
	A, B, C                string
	ValueA, ValueB, ValueC int
}

// String renders the puzzle, e.g. "send + more = money".
func (s Solution) String() string {
	return fmt.Sprintf("%s + %s = %s", s.A, s.B, s.C)
}

// Answer renders the numeric solution, e.g. "9567 + 1085 = 10652".
func (s Solution) Answer() string {
	return fmt.Sprintf("%d + %d = %d", s.ValueA, s.ValueB, s.ValueC)
}

// Stats counts the work done by one Solve call.
type Stats struct {
	Batches          int64 `json:"batches"`
	Pairs            int64 `json:"pairs"`
	Assignments      int64 `json:"assignments"`
	LeadingZeroSkips int64 `json:"leading_zero_skips"`
	LengthRejections int64 `json:"length_rejections"`
	FixedRejections  int64 `json:"fixed_rejections"`
	GroupRejections  int64 `json:"group_rejections"`
}

// MarshalLogObject lets Stats be logged with zap.Object.
func (s Stats) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt64("batches", s.Batches)
	enc.AddInt64("pairs", s.Pairs)
	enc.AddInt64("assignments", s.Assignments)
	enc.AddInt64("leading_zero_skips", s.LeadingZeroSkips)
	enc.AddInt64("length_rejections", s.LengthRejections)
	enc.AddInt64("fixed_rejections", s.FixedRejections)
	enc.AddInt64("group_rejections", s.GroupRejections)
	return nil
}

// counters is the concurrent side of Stats.
type counters struct {
	batches, pairs, assignments, leadingZero atomic.Int64
	length, fixed, group                     atomic.Int64
}

func (c *counters) reject(r rejection) {
	switch r {
	case rejectLength:
		c.length.Add(1)
	case rejectFixed:
		c.fixed.Add(1)
	case rejectGroup:
		c.group.Add(1)
	}
}

func (c *counters) snapshot() Stats {
	return Stats{
		Batches:          c.batches.Load(),
		Pairs:            c.pairs.Load(),
		Assignments:      c.assignments.Load(),
		LeadingZeroSkips: c.leadingZero.Load(),
		LengthRejections: c.length.Load(),
		FixedRejections:  c.fixed.Load(),
		GroupRejections:  c.group.Load(),
	}
}

// Solver generates cryptarithms from a word source. It is safe for concurrent use.
type Solver struct {
	words      WordSource
	batchSize  int
	maxBatches int
	timeout    time.Duration
	workers    int
	logger     *zap.Logger
}

// Option configures a Solver.
type Option func(*Solver)

// WithBatchSize sets how many words are drawn per batch.
func WithBatchSize(n int) Option {
	return func(s *Solver) {
		if n > 1 {
			s.batchSize = n
		}
	}
}

// WithMaxBatches bounds the search. Zero, the default, searches until the context ends.
func WithMaxBatches(n int) Option {
	return func(s *Solver) {
		if n >= 0 {
			s.maxBatches = n
		}
	}
}

// WithTimeout bounds every Solve call. Zero, the default, leaves it to the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(s *Solver) {
		if d >= 0 {
			s.timeout = d
		}
	}
}

// WithWorkers sets how many pairs of a batch are searched at once.
func WithWorkers(n int) Option {
	return func(s *Solver) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Solver) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Solver over words.
func New(words WordSource, opts ...Option) (*Solver, error) {
	if words == nil {
		return nil, errors.New("cryptarithm: word source cannot be nil")
	}
	if words.Len() < 2 {
		return nil, fmt.Errorf("cryptarithm: need at least two words, have %d", words.Len())
	}
	s := &Solver{
		words:     words,
		batchSize: defaultBatchSize,
		workers:   defaultWorkers,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("cryptarithm")
	return s, nil
}

// Solve draws batches of words and tries every pair in each until a puzzle with a unique
// answer turns up. The returned Stats are filled in on success and failure alike.
func (s *Solver) Solve(ctx context.Context, r cipher.Rand) (Solution, Stats, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var c counters
	for batch := 1; ; batch++ {
		if err := ctx.Err(); err != nil {
			return Solution{}, c.snapshot(), fmt.Errorf("%w: %w", ErrExhaustedSearch, err)
		}
		if s.maxBatches > 0 && batch > s.maxBatches {
			return Solution{}, c.snapshot(), fmt.Errorf("%w: no puzzle after %d batches", ErrExhaustedSearch, s.maxBatches)
		}

		words := s.words.Sample(r, s.batchSize)
		c.batches.Add(1)
		s.logger.Debug("Searching batch", zap.Int("batch", batch), zap.Strings("words", words))

		sol, ok, err := s.searchBatch(ctx, words, &c)
		if err != nil {
			return Solution{}, c.snapshot(), fmt.Errorf("%w: %w", ErrExhaustedSearch, err)
		}
		if ok {
			stats := c.snapshot()
			s.logger.Info("Found cryptarithm", zap.Stringer("puzzle", sol), zap.Object("stats", stats))
			return sol, stats, nil
		}
		s.logger.Debug("Switching batch", zap.Object("stats", c.snapshot()))
	}
}

// SolveWords tries every pair of words against the rest of words. When several pairs yield a
// puzzle, the one earliest in pair order wins, however many workers run.
func (s *Solver) SolveWords(ctx context.Context, words []string) (Solution, Stats, bool, error) {
	var c counters
	sol, ok, err := s.searchBatch(ctx, words, &c)
	return sol, c.snapshot(), ok, err
}

// searchBatch spreads the pairs of words over the worker pool. best holds the index of the
// earliest successful pair; later pairs are skipped once it is set, earlier ones still run.
func (s *Solver) searchBatch(ctx context.Context, words []string, c *counters) (Solution, bool, error) {
	type pair struct{ a, b string }
	var pairs []pair
	for i := 0; i < len(words); i++ {
		for j := i + 1; j < len(words); j++ {
			pairs = append(pairs, pair{words[i], words[j]})
		}
	}

	var (
		best  atomic.Int64
		mu    sync.Mutex
		found = make(map[int64]Solution)
	)
	best.Store(int64(len(pairs)))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, p := range pairs {
		idx := int64(i)
		if idx > best.Load() || gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if idx > best.Load() {
				return nil
			}
			c.pairs.Add(1)
			sol, ok, err := s.solvePair(gctx, p.a, p.b, words, c)
			if err != nil || !ok {
				return err
			}
			mu.Lock()
			found[idx] = sol
			mu.Unlock()
			for {
				cur := best.Load()
				if idx >= cur || best.CompareAndSwap(cur, idx) {
					return nil
				}
			}
		})
	}
	if err := g.Wait(); err != nil {
		return Solution{}, false, err
	}

	if b := best.Load(); b < int64(len(pairs)) {
		return found[b], true, nil
	}
	if err := ctx.Err(); err != nil {
		return Solution{}, false, err
	}
	return Solution{}, false, nil
}

// solvePair enumerates every assignment of digits to the letters of a and b and succeeds when
// exactly one candidate word matches across all of them.
func (s *Solver) solvePair(ctx context.Context, a, b string, words []string, c *counters) (Solution, bool, error) {
	letters, ok := uniqueLetters(a, b)
	if !ok || len(a) == 0 || len(b) == 0 {
		return Solution{}, false, nil
	}

	lo := max(len(a), len(b))
	var candidates []string
	for _, w := range words {
		if len(w) >= lo && len(w) <= lo+1 && w != a && w != b {
			candidates = append(candidates, w)
		}
	}
	if len(candidates) == 0 {
		return Solution{}, false, nil
	}

	var (
		found   []Solution
		asg     = newAssignment()
		visited int
		err     error
	)
	leadA, leadB := a[0], b[0]

	var walk func(depth int) bool
	walk = func(depth int) bool {
		if depth == len(letters) {
			visited++
			c.assignments.Add(1)
			if visited%ctxCheckInterval == 0 {
				if err = ctx.Err(); err != nil {
					return false
				}
			}
			va, vb := asg.value(a), asg.value(b)
			sum := va + vb
			for _, m := range match(newPattern(sum, &asg), candidates, c) {
				found = append(found, Solution{A: a, B: b, C: m, ValueA: va, ValueB: vb, ValueC: sum})
			}
			// A second match anywhere rules the pair out.
			return len(found) < 2
		}

		l := letters[depth]
		for d := 0; d <= 9; d++ {
			if asg.letter[d] != 0 {
				continue
			}
			if d == 0 && (l == leadA || l == leadB) {
				c.leadingZero.Add(1)
				continue
			}
			asg.set(l, d)
			more := walk(depth + 1)
			asg.clear(l)
			if !more {
				return false
			}
		}
		return true
	}
	walk(0)

	if err != nil {
		return Solution{}, false, err
	}
	if len(found) != 1 {
		return Solution{}, false, nil
	}
	return found[0], true, nil
}

// match returns the candidates fitting p.
func match(p *Pattern, candidates []string, c *counters) []string {
	var out []string
	for _, w := range candidates {
		r := p.check(w)
		if r == accepted {
			out = append(out, w)
			continue
		}
		c.reject(r)
	}
	return out
}

// uniqueLetters lists the distinct letters of a then b in order of first appearance. It fails
// for more than ten letters or for anything but lowercase ASCII.
func uniqueLetters(a, b string) ([]byte, bool) {
	var (
		seen [26]bool
		out  []byte
	)
	for _, w := range [2]string{a, b} {
		for i := 0; i < len(w); i++ {
			ch := w[i]
			if ch < 'a' || ch > 'z' {
				return nil, false
			}
			if seen[ch-'a'] {
				continue
			}
			seen[ch-'a'] = true
			out = append(out, ch)
		}
	}
	return out, len(out) <= maxLetters
}
