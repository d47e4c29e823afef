package format

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/handiism/movieshelf/internal/errs"
	"github.com/handiism/movieshelf/internal/model"
)

// xmlMovies is the document root wrapping the collection.
type xmlMovies struct {
	XMLName xml.Name   `xml:"movies"`
	Movies  []xmlMovie `xml:"movie"`
}

type xmlMovie struct {
	Name        string `xml:"name"`
	ReleaseYear string `xml:"releaseYear"`
	Genre       string `xml:"genre"`
}

// XMLCodec reads and writes a self-describing XML document:
//
//	<?xml version="1.0" encoding="UTF-8"?>
//	<movies>
//	  <movie>
//	    <name>Inception</name>
//	    <releaseYear>2010</releaseYear>
//	    <genre>Sci-Fi</genre>
//	  </movie>
//	</movies>
//
// An empty <movies/> root decodes to zero movies; a file without the root
// element is malformed.
type XMLCodec struct{}

// Format implements Codec.
func (XMLCodec) Format() Format {
	return FormatXML
}

// Encode implements Codec.
func (XMLCodec) Encode(w io.Writer, movies []model.Movie) error {
	doc := xmlMovies{Movies: make([]xmlMovie, 0, len(movies))}
	for _, m := range movies {
		doc.Movies = append(doc.Movies, xmlMovie{
			Name:        m.Name,
			ReleaseYear: strconv.Itoa(m.ReleaseYear),
			Genre:       string(m.Genre),
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Decode implements Codec.
//
// Only whitespace, comments and processing instructions may follow the
// closing </movies> tag.
func (XMLCodec) Decode(r io.Reader) ([]model.Movie, error) {
	dec := xml.NewDecoder(r)
	var doc xmlMovies
	if err := dec.Decode(&doc); err != nil {
		return nil, xmlParseError(err)
	}
	if err := expectXMLEnd(dec); err != nil {
		return nil, err
	}

	movies := make([]model.Movie, 0, len(doc.Movies))
	for i, xm := range doc.Movies {
		year, err := parseXMLYear(xm.ReleaseYear)
		if err != nil {
			return nil, &errs.ParseError{Format: "xml", Message: fmt.Sprintf("movie %d", i+1), Err: err}
		}
		genre, err := model.ParseGenre(xm.Genre)
		if err != nil {
			return nil, &errs.ParseError{Format: "xml", Message: fmt.Sprintf("movie %d", i+1), Err: err}
		}
		m := model.NewMovie(xm.Name, year, genre)
		if err := m.Validate(); err != nil {
			return nil, &errs.ParseError{Format: "xml", Message: fmt.Sprintf("movie %d", i+1), Err: err}
		}
		movies = append(movies, m)
	}
	return movies, nil
}

func parseXMLYear(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, errors.New("missing <releaseYear>")
	}
	return strconv.Atoi(text)
}

// expectXMLEnd consumes the rest of the document.
func expectXMLEnd(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return xmlParseError(err)
		}
		switch tok := tok.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(bytes.TrimSpace(tok)) != 0 {
				line, _ := dec.InputPos()
				return &errs.ParseError{Format: "xml", Line: line, Message: "text after </movies>"}
			}
		default:
			line, _ := dec.InputPos()
			return &errs.ParseError{Format: "xml", Line: line, Message: "content after </movies>"}
		}
	}
}

// xmlParseError classifies decoder failures. Anything that is not about the
// document itself, such as a read error, is returned unchanged.
func xmlParseError(err error) error {
	var (
		syntax    *xml.SyntaxError
		unmarshal xml.UnmarshalError
	)
	switch {
	case errors.Is(err, io.EOF):
		return &errs.ParseError{Format: "xml", Message: "no <movies> element"}
	case errors.As(err, &syntax):
		return &errs.ParseError{Format: "xml", Line: syntax.Line, Message: syntax.Msg}
	case errors.As(err, &unmarshal), errors.Is(err, io.ErrUnexpectedEOF):
		return &errs.ParseError{Format: "xml", Err: err}
	}
	return err
}
