package format

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"math"

	"github.com/handiism/movieshelf/internal/errs"
	"github.com/handiism/movieshelf/internal/model"
)

// Binary layout, all integers big-endian:
//
//	magic    [4]byte "MVSH"
//	version  uint8
//	count    uint32
//	count × {
//	    nameLen  uint16
//	    name     [nameLen]byte (UTF-8)
//	    year     int32
//	    genreLen uint8
//	    genre    [genreLen]byte
//	}
//	checksum uint32 CRC-32 (IEEE) of every preceding byte
const (
	binaryVersion    = 1
	binaryHeaderSize = 4 + 1 + 4
	binaryTrailer    = 4
	binaryMinRecord  = 2 + 4 + 1
)

var binaryMagic = [4]byte{'M', 'V', 'S', 'H'}

// BinaryCodec reads and writes the movieshelf binary layout.
//
// The whole file is covered by a checksum, so corruption anywhere rejects
// the file; there is no partial recovery. Files carry a single version byte
// and only version 1 is understood.
type BinaryCodec struct{}

// Format implements Codec.
func (BinaryCodec) Format() Format {
	return FormatBinary
}

// Encode implements Codec.
func (BinaryCodec) Encode(w io.Writer, movies []model.Movie) error {
	if uint64(len(movies)) > math.MaxUint32 {
		return errs.NewValidationError("collection", len(movies), "too many movies for the binary format")
	}
	for _, m := range movies {
		if len(m.Name) > math.MaxUint16 {
			return errs.NewValidationError("name", m.Name, "too long for the binary format")
		}
		if len(m.Genre) > math.MaxUint8 {
			return errs.NewValidationError("genre", string(m.Genre), "too long for the binary format")
		}
		if m.ReleaseYear < math.MinInt32 || m.ReleaseYear > math.MaxInt32 {
			return errs.NewValidationError("release year", m.ReleaseYear, "out of range for the binary format")
		}
	}

	var buf bytes.Buffer
	buf.Write(binaryMagic[:])
	buf.WriteByte(binaryVersion)
	buf.Write(binary.BigEndian.AppendUint32(nil, uint32(len(movies))))
	for _, m := range movies {
		buf.Write(binary.BigEndian.AppendUint16(nil, uint16(len(m.Name))))
		buf.WriteString(m.Name)
		buf.Write(binary.BigEndian.AppendUint32(nil, uint32(int32(m.ReleaseYear))))
		buf.WriteByte(uint8(len(m.Genre)))
		buf.WriteString(string(m.Genre))
	}
	buf.Write(binary.BigEndian.AppendUint32(nil, crc32.ChecksumIEEE(buf.Bytes())))

	_, err := w.Write(buf.Bytes())
	return err
}

// Decode implements Codec.
func (BinaryCodec) Decode(r io.Reader) ([]model.Movie, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if len(data) < len(binaryMagic) || !bytes.Equal(data[:len(binaryMagic)], binaryMagic[:]) {
		return nil, binaryParseError("not a movieshelf binary file", nil)
	}
	if len(data) < binaryHeaderSize+binaryTrailer {
		return nil, binaryParseError("truncated header", nil)
	}
	if v := data[len(binaryMagic)]; v != binaryVersion {
		return nil, binaryParseError(fmt.Sprintf("unsupported version %d", v), nil)
	}

	body, trailer := data[:len(data)-binaryTrailer], data[len(data)-binaryTrailer:]
	if crc32.ChecksumIEEE(body) != binary.BigEndian.Uint32(trailer) {
		return nil, binaryParseError("checksum mismatch", nil)
	}

	br := bytes.NewReader(body[len(binaryMagic)+1:])
	var count uint32
	if err := binary.Read(br, binary.BigEndian, &count); err != nil {
		return nil, binaryParseError("truncated header", err)
	}
	if uint64(count)*binaryMinRecord > uint64(br.Len()) {
		return nil, binaryParseError(fmt.Sprintf("record count %d exceeds file size", count), nil)
	}

	movies := make([]model.Movie, 0, count)
	for i := range count {
		m, err := readBinaryRecord(br)
		if err != nil {
			return nil, binaryParseError(fmt.Sprintf("record %d", i+1), err)
		}
		movies = append(movies, m)
	}
	if br.Len() != 0 {
		return nil, binaryParseError(fmt.Sprintf("%d unexpected trailing bytes", br.Len()), nil)
	}
	return movies, nil
}

func readBinaryRecord(br *bytes.Reader) (model.Movie, error) {
	var nameLen uint16
	if err := binary.Read(br, binary.BigEndian, &nameLen); err != nil {
		return model.Movie{}, err
	}
	name := make([]byte, nameLen)
	if _, err := io.ReadFull(br, name); err != nil {
		return model.Movie{}, err
	}

	var year int32
	if err := binary.Read(br, binary.BigEndian, &year); err != nil {
		return model.Movie{}, err
	}

	genreLen, err := br.ReadByte()
	if err != nil {
		return model.Movie{}, err
	}
	genreBytes := make([]byte, genreLen)
	if _, err := io.ReadFull(br, genreBytes); err != nil {
		return model.Movie{}, err
	}

	genre, err := model.ParseGenre(string(genreBytes))
	if err != nil {
		return model.Movie{}, err
	}
	m := model.NewMovie(string(name), int(year), genre)
	if err := m.Validate(); err != nil {
		return model.Movie{}, err
	}
	return m, nil
}

func binaryParseError(msg string, err error) *errs.ParseError {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return &errs.ParseError{Format: "binary", Message: msg, Err: err}
}
