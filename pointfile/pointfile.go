package pointfile

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"math"
	"os"

	"github.com/hupe1980/minloc/point"
	"github.com/hupe1980/minloc/resource"
)

// File format:
//
//	[Magic 4B "MLPT"][Version 1B][Codec 1B][Reserved 2B]
//	[Count uint64][PayloadLen uint64][CRC32C uint32]
//	[Payload]
//
// Payload is Count*3 little-endian float64 coordinates, compressed per the
// codec byte. PayloadLen == 0 means the payload is stored uncompressed
// (Count*24 bytes follow) regardless of codec; this mirrors the
// incompressible-block convention of LZ4 block encoding.
var magic = [4]byte{'M', 'L', 'P', 'T'}

const (
	version    = 1
	headerSize = 4 + 1 + 1 + 2 + 8 + 8 + 4

	coordBytes = 3 * 8

	// ioChunkSize is the unit of rate-limited writes.
	ioChunkSize = 256 * 1024

	// maxExpansion bounds the declared raw size against the payload bytes
	// actually present, so a forged header cannot demand an allocation far
	// beyond the file's real size.
	maxExpansion = 1 << 20
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

var (
	// ErrBadMagic indicates the input is not a point file.
	ErrBadMagic = errors.New("bad magic")

	// ErrChecksumMismatch indicates payload corruption.
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// ErrUnsupportedVersion is a named error type for an unknown format version.
type ErrUnsupportedVersion struct {
	Version uint8
}

func (e *ErrUnsupportedVersion) Error() string {
	return fmt.Sprintf("unsupported point file version %d", e.Version)
}

// Options contains configuration options for writing point files.
type Options struct {
	// Codec selects payload compression.
	Codec Codec

	// Controller, if set, rate-limits writes via its IO limit.
	Controller *resource.Controller
}

// DefaultOptions contains the default configuration options for writing
// point files.
var DefaultOptions = Options{
	Codec: CodecZSTD,
}

// Write serializes the store to w.
func Write(ctx context.Context, w io.Writer, s *point.Store, optFns ...func(o *Options)) error {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	coords := s.Coords()
	raw := make([]byte, len(coords)*8)
	for i, c := range coords {
		binary.LittleEndian.PutUint64(raw[i*8:], math.Float64bits(c))
	}

	payload, compressed, err := compress(raw, opts.Codec)
	if err != nil {
		return fmt.Errorf("compress payload: %w", err)
	}

	header := make([]byte, headerSize)
	copy(header[0:4], magic[:])
	header[4] = version
	header[5] = byte(opts.Codec)
	binary.LittleEndian.PutUint64(header[8:], uint64(s.Size()))
	if compressed {
		binary.LittleEndian.PutUint64(header[16:], uint64(len(payload)))
	}
	binary.LittleEndian.PutUint32(header[24:], crc32.Checksum(payload, castagnoli))

	if err := writeThrottled(ctx, w, header, opts.Controller); err != nil {
		return err
	}
	return writeThrottled(ctx, w, payload, opts.Controller)
}

// Read deserializes a store from r.
func Read(r io.Reader) (*point.Store, error) {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	if [4]byte(header[0:4]) != magic {
		return nil, ErrBadMagic
	}
	if header[4] != version {
		return nil, &ErrUnsupportedVersion{Version: header[4]}
	}
	codec := Codec(header[5])
	if !codec.valid() {
		return nil, &ErrUnknownCodec{Codec: codec}
	}

	count := binary.LittleEndian.Uint64(header[8:])
	payloadLen := binary.LittleEndian.Uint64(header[16:])
	sum := binary.LittleEndian.Uint32(header[24:])

	if count > math.MaxInt/coordBytes {
		return nil, fmt.Errorf("point count %d exceeds maximum", count)
	}
	rawLen := count * coordBytes
	if payloadLen > rawLen {
		return nil, fmt.Errorf("compressed payload size %d exceeds raw size %d", payloadLen, rawLen)
	}
	storedLen := payloadLen
	if storedLen == 0 {
		storedLen = rawLen
	}

	// The header is untrusted until the checksum passes, so size the payload
	// buffer by what the reader actually delivers rather than the declared
	// length.
	var payloadBuf bytes.Buffer
	n, err := io.Copy(&payloadBuf, io.LimitReader(r, int64(storedLen)))
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	if uint64(n) != storedLen {
		return nil, fmt.Errorf("read payload: %w", io.ErrUnexpectedEOF)
	}
	payload := payloadBuf.Bytes()

	if crc32.Checksum(payload, castagnoli) != sum {
		return nil, ErrChecksumMismatch
	}

	raw := payload
	if payloadLen != 0 {
		if rawLen/payloadLen > maxExpansion {
			return nil, fmt.Errorf("raw size %d implausible for payload size %d", rawLen, payloadLen)
		}
		decoded, err := decompress(payload, int(rawLen), codec)
		if err != nil {
			return nil, fmt.Errorf("decompress payload: %w", err)
		}
		raw = decoded
	}
	if uint64(len(raw)) != rawLen {
		return nil, fmt.Errorf("payload size %d does not match point count %d", len(raw), count)
	}

	coords := make([]float64, count*3)
	for i := range coords {
		coords[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
	}
	return point.FromCoords(coords)
}

// Save writes the store to a file at path.
func Save(ctx context.Context, path string, s *point.Store, optFns ...func(o *Options)) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Write(ctx, f, s, optFns...); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads a store from a file at path.
func Load(path string) (*point.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f)
}

func writeThrottled(ctx context.Context, w io.Writer, data []byte, c *resource.Controller) error {
	for len(data) > 0 {
		n := len(data)
		if n > ioChunkSize {
			n = ioChunkSize
		}
		if err := c.AcquireIO(ctx, n); err != nil {
			return err
		}
		if _, err := w.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}
