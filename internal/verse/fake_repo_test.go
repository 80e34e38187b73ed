package verse

import (
	"context"
	"sort"
	"sync"
	"time"
)

// fakeRepo is an in-memory Repository for engine tests. It enforces the
// same invariants as the Postgres store: unique verse identity and at most
// one selection per date.
type fakeRepo struct {
	mu          sync.Mutex
	verses      []Verse
	selections  map[string]Selection
	nextVerseID int
	nextSelID   int

	// stealVerse simulates a concurrent writer: when set, the next
	// CreateSelection call finds the date already taken by this verse.
	stealVerse *Verse
}

func newFakeRepo(verses ...Verse) *fakeRepo {
	r := &fakeRepo{
		selections:  make(map[string]Selection),
		nextVerseID: 1,
		nextSelID:   1,
	}
	for _, v := range verses {
		v.ID = r.nextVerseID
		v.CreatedAt = time.Now()
		r.nextVerseID++
		r.verses = append(r.verses, v)
	}
	return r
}

func dateKey(date time.Time) string {
	return DateOf(date).Format("2006-01-02")
}

func (r *fakeRepo) AllVerses(ctx context.Context) ([]Verse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Verse(nil), r.verses...), nil
}

func (r *fakeRepo) RandomVerse(ctx context.Context) (*Verse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.verses) == 0 {
		return nil, ErrNotFound
	}
	v := r.verses[0]
	return &v, nil
}

func (r *fakeRepo) InsertVerses(ctx context.Context, verses []Verse) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inserted := 0
	for _, v := range verses {
		if r.hasIdentity(v) {
			continue
		}
		v.ID = r.nextVerseID
		v.CreatedAt = time.Now()
		r.nextVerseID++
		r.verses = append(r.verses, v)
		inserted++
	}
	return inserted, nil
}

func (r *fakeRepo) hasIdentity(v Verse) bool {
	for _, existing := range r.verses {
		if existing.Book == v.Book && existing.Chapter == v.Chapter && existing.Verse == v.Verse {
			return true
		}
	}
	return false
}

func (r *fakeRepo) SelectionFor(ctx context.Context, date time.Time) (*Selection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.selections[dateKey(date)]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (r *fakeRepo) SelectionsByDateDesc(ctx context.Context) ([]Selection, error) {
	return r.sorted(func(a, b Selection) bool { return a.Date.After(b.Date) }), nil
}

func (r *fakeRepo) SelectionsByDateAsc(ctx context.Context) ([]Selection, error) {
	return r.sorted(func(a, b Selection) bool { return a.Date.Before(b.Date) }), nil
}

func (r *fakeRepo) sorted(less func(a, b Selection) bool) []Selection {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Selection, 0, len(r.selections))
	for _, s := range r.selections {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func (r *fakeRepo) CreateSelection(ctx context.Context, date time.Time, verseID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := dateKey(date)
	if r.stealVerse != nil {
		stolen := *r.stealVerse
		r.stealVerse = nil
		r.selections[key] = Selection{
			ID:      r.nextSelID,
			Date:    DateOf(date),
			VerseID: stolen.ID,
			Verse:   stolen,
		}
		r.nextSelID++
		return ErrConflict
	}

	if _, exists := r.selections[key]; exists {
		return ErrConflict
	}

	var verse Verse
	for _, v := range r.verses {
		if v.ID == verseID {
			verse = v
			break
		}
	}
	r.selections[key] = Selection{
		ID:      r.nextSelID,
		Date:    DateOf(date),
		VerseID: verseID,
		Verse:   verse,
	}
	r.nextSelID++
	return nil
}

func (r *fakeRepo) DeleteSelectionsBetween(ctx context.Context, start, end time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start, end = DateOf(start), DateOf(end)
	var deleted int64
	for key, s := range r.selections {
		if !s.Date.Before(start) && !s.Date.After(end) {
			delete(r.selections, key)
			deleted++
		}
	}
	return deleted, nil
}

func (r *fakeRepo) DeleteAllSelections(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := int64(len(r.selections))
	r.selections = make(map[string]Selection)
	return deleted, nil
}

func (r *fakeRepo) selectionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.selections)
}
