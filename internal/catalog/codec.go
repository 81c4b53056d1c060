// Package catalog reads, edits and writes the delimited path catalog file.
//
// The file holds one entry per row with three columns (name, description,
// path) separated by commas, or by tabs when the file contains any tab.
// Quoting follows the usual CSV rules. There is no header row; blank rows
// and rows with fewer than three columns are ignored.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"quickpaths/internal/model"
)

const (
	Comma = ','
	Tab   = '\t'
)

// MinFields is the number of columns a row needs to become an entry.
const MinFields = 3

// DetectDelimiter picks the delimiter for a whole file: tab if the text
// contains a tab anywhere, comma otherwise.
func DetectDelimiter(text string) rune {
	if strings.ContainsRune(text, Tab) {
		return Tab
	}
	return Comma
}

// Decode parses catalog text into entries, in row order. Rows that are
// blank or shorter than MinFields are skipped. Blanks around every field
// are ignored, including around quoted fields. Columns past the second are
// joined back with the delimiter to form the path, and home shorthand in
// the path is expanded against home. A quote that is never closed fails
// the whole decode with ErrUnterminatedQuote.
func Decode(text, home string) ([]model.PathEntry, error) {
	delim := DetectDelimiter(text)

	clean, err := normalize(text, delim)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(strings.NewReader(clean))
	r.Comma = delim
	r.FieldsPerRecord = -1

	entries := []model.PathEntry{}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				continue
			}
			return nil, err
		}

		fields := trimFields(record)
		if isBlank(fields) || len(fields) < MinFields {
			continue
		}

		rawPath := strings.Join(fields[2:], string(delim))
		entries = append(entries, model.NewPathEntry(fields[0], fields[1], rawPath, home))
	}
	return entries, nil
}

// Encode serializes entries as slug, description and raw path rows joined
// by delim. Every row ends with "\n"; an empty catalog encodes to "".
func Encode(entries []model.PathEntry, delim rune) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	w.Comma = delim

	for _, e := range entries {
		if err := w.Write([]string{e.Slug, e.Description, e.RawPath}); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return b.String(), nil
}

// normalize rewrites text as strict CSV for encoding/csv. Blanks before an
// opening quote and after a closing quote are dropped, text trailing a
// closing quote stays in the same field, and fields holding a bare quote
// are re-quoted. Line breaks outside quotes become "\n".
func normalize(text string, delim rune) (string, error) {
	d := byte(delim)
	blanks := " \t"
	if delim == Tab {
		blanks = " "
	}
	blank := func(c byte) bool { return strings.IndexByte(blanks, c) >= 0 }
	endsField := func(c byte) bool { return c == d || c == '\n' || c == '\r' }

	var out strings.Builder
	out.Grow(len(text))
	line := 1
	i := 0
	for i < len(text) {
		j := i
		for j < len(text) && blank(text[j]) {
			j++
		}

		var field strings.Builder
		if j < len(text) && text[j] == '"' {
			start := line
			k := j + 1
			closed := false
			for k < len(text) {
				c := text[k]
				if c == '"' {
					if k+1 < len(text) && text[k+1] == '"' {
						field.WriteByte('"')
						k += 2
						continue
					}
					closed = true
					k++
					break
				}
				if c == '\n' {
					line++
				}
				field.WriteByte(c)
				k++
			}
			if !closed {
				return "", fmt.Errorf("%w starting on line %d", ErrUnterminatedQuote, start)
			}
			rest := k
			for k < len(text) && !endsField(text[k]) {
				k++
			}
			field.WriteString(strings.TrimRight(text[rest:k], blanks))
			i = k
		} else {
			k := j
			for k < len(text) && !endsField(text[k]) {
				k++
			}
			field.WriteString(strings.TrimRight(text[j:k], blanks))
			i = k
		}
		writeField(&out, field.String(), d)

		if i >= len(text) {
			break
		}
		switch text[i] {
		case d:
			out.WriteByte(d)
			i++
		case '\r':
			out.WriteByte('\n')
			i++
			if i < len(text) && text[i] == '\n' {
				i++
			}
			line++
		case '\n':
			out.WriteByte('\n')
			i++
			line++
		}
	}
	return out.String(), nil
}

func writeField(out *strings.Builder, v string, delim byte) {
	if !strings.ContainsAny(v, "\"\r\n"+string(delim)) {
		out.WriteString(v)
		return
	}
	out.WriteByte('"')
	out.WriteString(strings.ReplaceAll(v, `"`, `""`))
	out.WriteByte('"')
}

func trimFields(record []string) []string {
	out := make([]string, len(record))
	for i, f := range record {
		out[i] = strings.TrimSpace(f)
	}
	return out
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if f != "" {
			return false
		}
	}
	return true
}
