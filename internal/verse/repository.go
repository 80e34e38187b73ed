package verse

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taiwoajasa245/daily-verse-api/internal/database"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrConflict       = errors.New("selection already exists for date")
	ErrExhausted      = errors.New("verse corpus exhausted")
	ErrInternalServer = errors.New("internal server error")
)

// pgUniqueViolation is the Postgres error code for a unique constraint hit.
const pgUniqueViolation = "23505"

// Repository is the storage contract the selection engine depends on.
// AllVerses/SelectionFor/SelectionsByDateDesc/CreateSelection back the
// engine itself; the remaining methods serve the loader, the scheduling
// utility and the history-reset tool. Nothing here ever updates a verse
// or an existing selection.
type Repository interface {
	AllVerses(ctx context.Context) ([]Verse, error)
	RandomVerse(ctx context.Context) (*Verse, error)
	InsertVerses(ctx context.Context, verses []Verse) (int, error)

	SelectionFor(ctx context.Context, date time.Time) (*Selection, error)
	SelectionsByDateDesc(ctx context.Context) ([]Selection, error)
	SelectionsByDateAsc(ctx context.Context) ([]Selection, error)
	CreateSelection(ctx context.Context, date time.Time, verseID int) error
	DeleteSelectionsBetween(ctx context.Context, start, end time.Time) (int64, error)
	DeleteAllSelections(ctx context.Context) (int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(dbService database.Service) Repository {
	return &repository{db: dbService.DB()}
}

func (r *repository) AllVerses(ctx context.Context) ([]Verse, error) {
	query := `
		SELECT id, book, chapter, verse, text_kjv, created_at
		FROM verses
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var verses []Verse
	for rows.Next() {
		var v Verse
		if err := rows.Scan(&v.ID, &v.Book, &v.Chapter, &v.Verse, &v.TextKJV, &v.CreatedAt); err != nil {
			return nil, err
		}
		verses = append(verses, v)
	}
	return verses, rows.Err()
}

func (r *repository) RandomVerse(ctx context.Context) (*Verse, error) {
	query := `
		SELECT id, book, chapter, verse, text_kjv, created_at
		FROM verses
		ORDER BY RANDOM()
		LIMIT 1
	`

	var v Verse
	err := r.db.QueryRowContext(ctx, query).Scan(
		&v.ID,
		&v.Book,
		&v.Chapter,
		&v.Verse,
		&v.TextKJV,
		&v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// InsertVerses bulk-loads corpus rows. Rows whose (book, chapter, verse)
// identity already exists are skipped, so reloading the same file is safe.
func (r *repository) InsertVerses(ctx context.Context, verses []Verse) (int, error) {
	query := `
		INSERT INTO verses (book, chapter, verse, text_kjv)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ON CONSTRAINT uq_book_chapter_verse DO NOTHING
	`

	inserted := 0
	for _, v := range verses {
		res, err := r.db.ExecContext(ctx, query, v.Book, v.Chapter, v.Verse, v.TextKJV)
		if err != nil {
			return inserted, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return inserted, err
		}
		inserted += int(n)
	}
	return inserted, nil
}

func (r *repository) SelectionFor(ctx context.Context, date time.Time) (*Selection, error) {
	query := `
		SELECT ds.id, ds.date, ds.verse_id, ds.created_at,
		       v.id, v.book, v.chapter, v.verse, v.text_kjv, v.created_at
		FROM daily_selections ds
		JOIN verses v ON v.id = ds.verse_id
		WHERE ds.date = $1
	`

	var s Selection
	err := r.db.QueryRowContext(ctx, query, DateOf(date)).Scan(
		&s.ID,
		&s.Date,
		&s.VerseID,
		&s.CreatedAt,
		&s.Verse.ID,
		&s.Verse.Book,
		&s.Verse.Chapter,
		&s.Verse.Verse,
		&s.Verse.TextKJV,
		&s.Verse.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) SelectionsByDateDesc(ctx context.Context) ([]Selection, error) {
	return r.selections(ctx, "DESC")
}

func (r *repository) SelectionsByDateAsc(ctx context.Context) ([]Selection, error) {
	return r.selections(ctx, "ASC")
}

func (r *repository) selections(ctx context.Context, order string) ([]Selection, error) {
	query := `
		SELECT ds.id, ds.date, ds.verse_id, ds.created_at,
		       v.id, v.book, v.chapter, v.verse, v.text_kjv, v.created_at
		FROM daily_selections ds
		JOIN verses v ON v.id = ds.verse_id
		ORDER BY ds.date ` + order

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var selections []Selection
	for rows.Next() {
		var s Selection
		if err := rows.Scan(
			&s.ID,
			&s.Date,
			&s.VerseID,
			&s.CreatedAt,
			&s.Verse.ID,
			&s.Verse.Book,
			&s.Verse.Chapter,
			&s.Verse.Verse,
			&s.Verse.TextKJV,
			&s.Verse.CreatedAt,
		); err != nil {
			return nil, err
		}
		selections = append(selections, s)
	}
	return selections, rows.Err()
}

// CreateSelection commits the date -> verse binding. The unique constraint
// on daily_selections.date is the single source of truth for "at most one
// selection per date": a concurrent loser gets ErrConflict and must re-read.
func (r *repository) CreateSelection(ctx context.Context, date time.Time, verseID int) error {
	query := `
		INSERT INTO daily_selections (date, verse_id)
		VALUES ($1, $2)
	`

	_, err := r.db.ExecContext(ctx, query, DateOf(date), verseID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (r *repository) DeleteSelectionsBetween(ctx context.Context, start, end time.Time) (int64, error) {
	query := `
		DELETE FROM daily_selections
		WHERE date BETWEEN $1 AND $2
	`

	res, err := r.db.ExecContext(ctx, query, DateOf(start), DateOf(end))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) DeleteAllSelections(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM daily_selections`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
