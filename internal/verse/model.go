package verse

import (
	"fmt"
	"time"
)

// Verse is one corpus entry. Identity is (book, chapter, verse); rows are
// written once by the bulk loader and never updated afterwards.
type Verse struct {
	ID        int       `json:"id"`
	Book      string    `json:"book"`
	Chapter   int       `json:"chapter"`
	Verse     int       `json:"verse"`
	TextKJV   string    `json:"text_kjv"`
	CreatedAt time.Time `json:"created_at"`
}

// Ref returns the human-readable reference, e.g. "Genesis 1:1".
func (v *Verse) Ref() string {
	return fmt.Sprintf("%s %d:%d", v.Book, v.Chapter, v.Verse)
}

// SameChapter reports whether both verses belong to the same book chapter.
func (v *Verse) SameChapter(other *Verse) bool {
	return v.Book == other.Book && v.Chapter == other.Chapter
}

// Selection binds one calendar date to one verse. At most one row exists
// per date and a committed row is never mutated.
type Selection struct {
	ID        int       `json:"id"`
	Date      time.Time `json:"date"`
	VerseID   int       `json:"verse_id"`
	CreatedAt time.Time `json:"created_at"`
	Verse     Verse     `json:"verse"`
}

type DailyVerseResponse struct {
	Date      string `json:"date"`
	Reference string `json:"reference"`
	KJV       string `json:"kjv"`
}

type RandomVerseResponse struct {
	Reference string `json:"reference"`
	KJV       string `json:"kjv"`
}

// DateOf truncates t to its UTC calendar date. All selection dates pass
// through here so map keys and DATE columns agree.
func DateOf(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
