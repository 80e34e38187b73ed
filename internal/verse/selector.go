package verse

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Selector encapsulates the verse selection rules:
//   - no verse repeats until every verse has been shown once
//   - consecutive days avoid the same (book, chapter) unless no
//     alternative exists.
type Selector struct {
	repo Repository
	rng  *rand.Rand
}

// NewSelector builds a Selector over the given store. A non-zero seed makes
// the tie-break among eligible verses reproducible; zero seeds from the
// clock.
func NewSelector(repo Repository, seed int64) *Selector {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Selector{
		repo: repo,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// ResolveForDate returns the verse for the given calendar date, computing
// and persisting a new selection only when none exists yet. Calling it
// repeatedly for the same date always yields the same verse.
func (s *Selector) ResolveForDate(ctx context.Context, date time.Time) (*Verse, error) {
	date = DateOf(date)

	existing, err := s.repo.SelectionFor(ctx, date)
	if err == nil {
		return &existing.Verse, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("lookup selection: %w", err)
	}

	pick, err := s.pickUnused(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateSelection(ctx, date, pick.ID); err != nil {
		if errors.Is(err, ErrConflict) {
			// Lost a concurrent race; the committed row wins.
			committed, rerr := s.repo.SelectionFor(ctx, date)
			if rerr != nil {
				return nil, fmt.Errorf("re-read after conflict: %w", rerr)
			}
			return &committed.Verse, nil
		}
		return nil, fmt.Errorf("persist selection: %w", err)
	}
	return pick, nil
}

// pickUnused chooses uniformly among verses never selected before,
// avoiding the chapter of the most recent selection when an alternative
// exists. Returns ErrExhausted once the whole corpus has been shown;
// recovery (resetting history or extending the corpus) is an operator
// action, never automatic.
func (s *Selector) pickUnused(ctx context.Context) (*Verse, error) {
	verses, err := s.repo.AllVerses(ctx)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	history, err := s.repo.SelectionsByDateDesc(ctx)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	used := make(map[int]struct{}, len(history))
	for _, sel := range history {
		used[sel.VerseID] = struct{}{}
	}

	var unused []Verse
	for _, v := range verses {
		if _, ok := used[v.ID]; !ok {
			unused = append(unused, v)
		}
	}
	if len(unused) == 0 {
		return nil, ErrExhausted
	}

	pool := unused
	if len(history) > 0 {
		// "Yesterday" is the most recent selection by date, which may not
		// be calendar-yesterday when history has gaps.
		last := history[0].Verse
		filtered := make([]Verse, 0, len(unused))
		for _, v := range unused {
			if v.SameChapter(&last) {
				continue
			}
			filtered = append(filtered, v)
		}
		// The chapter rule is soft: only applied when it leaves candidates.
		if len(filtered) > 0 {
			pool = filtered
		}
	}

	pick := pool[s.rng.Intn(len(pool))]
	return &pick, nil
}

// Random returns a uniformly random verse from the whole corpus. It never
// reads or writes selection history.
func (s *Selector) Random(ctx context.Context) (*Verse, error) {
	return s.repo.RandomVerse(ctx)
}

// ScheduledDay is one row of a ScheduleRange result.
type ScheduledDay struct {
	Date  time.Time
	Verse Verse
}

// ScheduleReport describes the outcome of a ScheduleRange run. When the
// corpus runs out mid-range, Days holds the resolved prefix and Failed
// counts the dates left unscheduled.
type ScheduleReport struct {
	Days      []ScheduledDay
	Scheduled int
	Failed    int
}

// ScheduleRange resolves selections for `days` consecutive dates starting
// at start. Without overwrite, dates that already have a selection keep it
// and are returned as-is. With overwrite, existing selections in the range
// are discarded first and every date is recomputed in order, so each day
// sees the freshly recomputed previous day as its chapter constraint.
func (s *Selector) ScheduleRange(ctx context.Context, start time.Time, days int, overwrite bool) (*ScheduleReport, error) {
	if days <= 0 {
		return nil, fmt.Errorf("day count must be positive, got %d", days)
	}

	start = DateOf(start)
	if overwrite {
		end := start.AddDate(0, 0, days-1)
		if _, err := s.repo.DeleteSelectionsBetween(ctx, start, end); err != nil {
			return nil, fmt.Errorf("clear range: %w", err)
		}
	}

	report := &ScheduleReport{Days: make([]ScheduledDay, 0, days)}
	for offset := 0; offset < days; offset++ {
		target := start.AddDate(0, 0, offset)
		v, err := s.ResolveForDate(ctx, target)
		if err != nil {
			if errors.Is(err, ErrExhausted) {
				report.Failed = days - offset
				return report, fmt.Errorf("scheduling stopped at %s after %d of %d days: %w",
					target.Format("2006-01-02"), report.Scheduled, days, ErrExhausted)
			}
			return report, err
		}
		report.Days = append(report.Days, ScheduledDay{Date: target, Verse: *v})
		report.Scheduled++
	}
	return report, nil
}
