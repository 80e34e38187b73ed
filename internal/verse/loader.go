package verse

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// csvColumns are the required header names for a corpus file.
var csvColumns = []string{"book", "chapter", "verse", "text_kjv"}

// LoadCSV bulk-loads verses from tabular input with columns
// book,chapter,verse,text_kjv (any column order). Rows whose identity is
// already present in the store are skipped. Returns the number of rows
// actually inserted.
func LoadCSV(ctx context.Context, repo Repository, r io.Reader) (int, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, errors.New("empty corpus file")
		}
		return 0, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, col := range csvColumns {
		if _, ok := index[col]; !ok {
			return 0, fmt.Errorf("CSV must contain columns: %s", strings.Join(csvColumns, ","))
		}
	}

	var batch []Verse
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("read row: %w", err)
		}
		line++

		v, err := parseRow(record, index)
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", line, err)
		}
		batch = append(batch, v)
	}

	if len(batch) == 0 {
		return 0, errors.New("no verse rows in input")
	}
	return repo.InsertVerses(ctx, batch)
}

func parseRow(record []string, index map[string]int) (Verse, error) {
	book := strings.TrimSpace(record[index["book"]])
	if book == "" {
		return Verse{}, errors.New("book must not be empty")
	}

	chapter, err := strconv.Atoi(strings.TrimSpace(record[index["chapter"]]))
	if err != nil || chapter <= 0 {
		return Verse{}, fmt.Errorf("invalid chapter %q", record[index["chapter"]])
	}

	number, err := strconv.Atoi(strings.TrimSpace(record[index["verse"]]))
	if err != nil || number <= 0 {
		return Verse{}, fmt.Errorf("invalid verse number %q", record[index["verse"]])
	}

	text := record[index["text_kjv"]]
	if strings.TrimSpace(text) == "" {
		return Verse{}, errors.New("text_kjv must not be empty")
	}

	return Verse{Book: book, Chapter: chapter, Verse: number, TextKJV: text}, nil
}
