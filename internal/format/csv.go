package format

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/handiism/movieshelf/internal/errs"
	"github.com/handiism/movieshelf/internal/model"
)

const csvFields = 3

// CSVCodec reads and writes one movie per line as name, year, genre.
//
// No header row is written or expected. Names containing the delimiter,
// quotes or newlines are quoted. Blank lines are skipped on read; any other
// malformed row fails the whole decode.
type CSVCodec struct {
	comma rune
}

// NewCSVCodec creates a CSV codec using comma as the field delimiter.
// A zero rune selects ','.
func NewCSVCodec(comma rune) *CSVCodec {
	if comma == 0 {
		comma = ','
	}
	return &CSVCodec{comma: comma}
}

// Format implements Codec.
func (c *CSVCodec) Format() Format {
	return FormatCSV
}

// Encode implements Codec.
func (c *CSVCodec) Encode(w io.Writer, movies []model.Movie) error {
	cw := csv.NewWriter(w)
	cw.Comma = c.comma

	for _, m := range movies {
		if err := cw.Write([]string{m.Name, strconv.Itoa(m.ReleaseYear), string(m.Genre)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Decode implements Codec.
func (c *CSVCodec) Decode(r io.Reader) ([]model.Movie, error) {
	cr := csv.NewReader(r)
	cr.Comma = c.comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	movies := []model.Movie{}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, &errs.ParseError{Format: "csv", Line: perr.Line, Message: perr.Err.Error()}
			}
			return nil, err
		}

		line, _ := cr.FieldPos(0)
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}

		m, err := parseCSVRecord(record)
		if err != nil {
			return nil, &errs.ParseError{Format: "csv", Line: line, Message: err.Error()}
		}
		movies = append(movies, m)
	}
	return movies, nil
}

func parseCSVRecord(record []string) (model.Movie, error) {
	if len(record) != csvFields {
		return model.Movie{}, fmt.Errorf("expected %d fields, got %d", csvFields, len(record))
	}

	year, err := strconv.Atoi(strings.TrimSpace(record[1]))
	if err != nil {
		return model.Movie{}, fmt.Errorf("invalid release year %q", record[1])
	}

	genre, err := model.ParseGenre(record[2])
	if err != nil {
		return model.Movie{}, err
	}

	m := model.NewMovie(record[0], year, genre)
	if err := m.Validate(); err != nil {
		return model.Movie{}, err
	}
	return m, nil
}
