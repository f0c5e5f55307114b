package pointfile

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec defines the payload compression algorithm.
type Codec uint8

const (
	// CodecNone indicates no compression.
	CodecNone Codec = 0
	// CodecLZ4 indicates LZ4 block compression (fast).
	CodecLZ4 Codec = 1
	// CodecZSTD indicates ZSTD compression (better ratio).
	CodecZSTD Codec = 2
)

func (c Codec) valid() bool {
	return c <= CodecZSTD
}

func (c Codec) String() string {
	switch c {
	case CodecNone:
		return "none"
	case CodecLZ4:
		return "lz4"
	case CodecZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(c))
	}
}

// ParseCodec returns the codec named by s.
func ParseCodec(s string) (Codec, error) {
	switch s {
	case "none":
		return CodecNone, nil
	case "lz4":
		return CodecLZ4, nil
	case "zstd":
		return CodecZSTD, nil
	default:
		return 0, fmt.Errorf("unknown compression codec %q", s)
	}
}

// ErrUnknownCodec is a named error type for an unrecognized codec byte.
type ErrUnknownCodec struct {
	Codec Codec
}

func (e *ErrUnknownCodec) Error() string {
	return fmt.Sprintf("unknown codec %d", uint8(e.Codec))
}

// ZSTD encoder/decoder pools for efficiency.
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// compress compresses raw with the given codec. The second return value is
// false when the data is stored uncompressed, either because the codec is
// CodecNone or because compression did not help (ratio > 0.9, or LZ4
// reported the block incompressible).
func compress(raw []byte, codec Codec) ([]byte, bool, error) {
	if codec == CodecNone || len(raw) == 0 {
		return raw, false, nil
	}

	var compressed []byte
	switch codec {
	case CodecLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(raw)))
		n, err := lz4.CompressBlock(raw, buf, nil)
		if err != nil {
			return nil, false, err
		}
		if n == 0 {
			// Incompressible.
			return raw, false, nil
		}
		compressed = buf[:n]
	case CodecZSTD:
		enc := getZstdEncoder()
		defer putZstdEncoder(enc)
		compressed = enc.EncodeAll(raw, nil)
	default:
		return nil, false, &ErrUnknownCodec{Codec: codec}
	}

	if float64(len(compressed)) > float64(len(raw))*0.9 {
		return raw, false, nil
	}
	return compressed, true, nil
}

// decompress restores a compressed payload to rawLen bytes.
func decompress(payload []byte, rawLen int, codec Codec) ([]byte, error) {
	switch codec {
	case CodecLZ4:
		raw := make([]byte, rawLen)
		n, err := lz4.UncompressBlock(payload, raw)
		if err != nil {
			return nil, err
		}
		if n != rawLen {
			return nil, fmt.Errorf("decompressed size %d, want %d", n, rawLen)
		}
		return raw, nil
	case CodecZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)
		raw, err := dec.DecodeAll(payload, make([]byte, 0, rawLen))
		if err != nil {
			return nil, err
		}
		if len(raw) != rawLen {
			return nil, fmt.Errorf("decompressed size %d, want %d", len(raw), rawLen)
		}
		return raw, nil
	default:
		return nil, &ErrUnknownCodec{Codec: codec}
	}
}
