package csvsource

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/diillson/roreports-go/internal/shared/types"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/unicode/norm"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// table is a fully read delimited file with a header row.
type table struct {
	path    string
	headers map[string]int
	dups    map[string]bool // header names that appear more than once
	rows    [][]string
	lines   []int // source line of each entry in rows
}

// decode converte o conteúdo bruto do arquivo para UTF-8.
// Para utf-8 o conteúdo é validado: bytes inválidos tornam o arquivo ilegível.
func decode(data []byte, name string) ([]byte, error) {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		data = bytes.TrimPrefix(data, utf8BOM)
		if line := invalidUTF8Line(data); line > 0 {
			return nil, fmt.Errorf("%w: invalid utf-8 on line %d", types.ErrInvalidEncoding, line)
		}
		return data, nil
	}

	dec, err := decoderFor(name)
	if err != nil {
		return nil, err
	}
	out, err := dec.Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidEncoding, err)
	}
	return out, nil
}

// invalidUTF8Line returns the 1-based line of the first invalid sequence, or 0.
func invalidUTF8Line(data []byte) int {
	if utf8.Valid(data) {
		return 0
	}
	line := 1
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			return line
		}
		if r == '\n' {
			line++
		}
		data = data[size:]
	}
	return line
}

// decoderFor devolve o decodificador para os encodings de um byte e utf-16.
func decoderFor(name string) (*encoding.Decoder, error) {
	switch strings.ToLower(name) {
	case "utf-16":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder(), nil
	case "windows-1251", "cp1251":
		return charmap.Windows1251.NewDecoder(), nil
	case "koi8-r":
		return charmap.KOI8R.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedEncoding, name)
	}
}

// normalizeHeader trims a header cell and puts it in NFC form so that
// composed and decomposed spellings of the same name match.
func normalizeHeader(h string) string {
	return norm.NFC.String(strings.TrimSpace(h))
}

// readTable opens path, decodes it and parses every row. Rows shorter than
// the header are padded with empty cells; longer rows are truncated.
func readTable(path, enc string, delimiter rune) (*table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decoded, err := decode(raw, enc)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, types.ErrEmptyFile
		}
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	t := &table{path: path, headers: make(map[string]int, len(header)), dups: map[string]bool{}}
	for i, h := range header {
		name := normalizeHeader(h)
		if _, dup := t.headers[name]; dup {
			t.dups[name] = true
			continue
		}
		t.headers[name] = i
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse row: %w", err)
		}
		if isBlank(row) {
			continue
		}
		line, _ := reader.FieldPos(0)
		switch {
		case len(row) < len(header):
			padded := make([]string, len(header))
			copy(padded, row)
			row = padded
		case len(row) > len(header):
			row = row[:len(header)]
		}
		t.rows = append(t.rows, row)
		t.lines = append(t.lines, line)
	}

	return t, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// column returns the index of a required column. A required column whose
// name repeats in the header is ambiguous and rejected.
func (t *table) column(name string) (int, error) {
	key := normalizeHeader(name)
	idx, ok := t.headers[key]
	if !ok {
		return -1, &types.MissingColumnError{File: t.path, Column: name}
	}
	if t.dups[key] {
		return -1, fmt.Errorf("%w: %s: column %q appears more than once", types.ErrDuplicateColumn, t.path, name)
	}
	return idx, nil
}

// columns resolves several required columns at once, in order.
func (t *table) columns(names ...string) ([]int, error) {
	idx := make([]int, len(names))
	for i, name := range names {
		c, err := t.column(name)
		if err != nil {
			return nil, err
		}
		idx[i] = c
	}
	return idx, nil
}

// record returns the row as a header-keyed map.
func (t *table) record(row []string) map[string]string {
	out := make(map[string]string, len(t.headers))
	for name, i := range t.headers {
		out[name] = row[i]
	}
	return out
}
