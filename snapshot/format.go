// Package snapshot dumps any iterator range to a byte stream and restores it
// into any output position.
//
// Stream layout (all integers little-endian):
//
//	magic       [4]byte  "SQKS"
//	version     uint8
//	compression uint8    (0 none, 1 lz4, 2 zstd)
//	codecLen    uint8
//	codec       [codecLen]byte
//	blocks...            [uncompressed uint32][stored uint32][data]
//	terminator  [8]byte  zero block header
//	count       uint64
//	checksum    uint32   CRC32C of every preceding byte
//
// A block holds whole records, each a uvarint length followed by the codec
// encoding of one element. A stored size of 0 means the block data is kept
// uncompressed.
package snapshot

import (
	"errors"
	"fmt"

	"github.com/hupe1980/seqkit"
	"github.com/hupe1980/seqkit/codec"
)

const (
	magic   = "SQKS"
	version = 1

	blockHeaderSize = 8

	// DefaultBlockSize is the record payload gathered before a block is flushed.
	DefaultBlockSize = 64 << 10

	// maxBlockSize bounds the uncompressed size a reader accepts.
	maxBlockSize = 64 << 20
)

var (
	ErrBadMagic           = errors.New("snapshot: bad magic")
	ErrVersion            = errors.New("snapshot: unsupported version")
	ErrChecksum           = errors.New("snapshot: checksum mismatch")
	ErrUnknownCodec       = errors.New("snapshot: unknown codec")
	ErrUnknownCompression = errors.New("snapshot: unknown compression")
	ErrCorrupt            = errors.New("snapshot: corrupt stream")
	ErrClosed             = errors.New("snapshot: writer closed")
	ErrRecordTooLarge     = errors.New("snapshot: record too large")
)

type options struct {
	codec       codec.Codec
	compression Compression
	blockSize   int
	logger      *seqkit.Logger
}

// Option configures a Writer or Reader.
type Option func(*options)

// WithCodec sets the element codec. Readers use it when its name matches
// the stream header and fall back to the built-in codecs otherwise.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

// WithCompression sets the block compression used by writers.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithBlockSize sets the record payload gathered before a block is flushed.
func WithBlockSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.blockSize = min(n, maxBlockSize)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *seqkit.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func buildOptions(opts []Option) options {
	o := options{
		codec:       codec.Default,
		compression: CompressionNone,
		blockSize:   DefaultBlockSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = seqkit.NoopLogger()
	}
	o.logger = o.logger.WithComponent("snapshot")
	return o
}

func corruptf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorrupt, fmt.Sprintf(format, args...))
}
