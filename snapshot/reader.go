package snapshot

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"io"
	"iter"

	"github.com/hupe1980/seqkit/codec"
	"github.com/hupe1980/seqkit/internal/conv"
	ihash "github.com/hupe1980/seqkit/internal/hash"
	"github.com/hupe1980/seqkit/iterator"
)

// Reader decodes elements from a snapshot stream.
type Reader[T any] struct {
	r           *bufio.Reader
	crc         hash.Hash32
	codec       codec.Codec
	compression Compression
	opts        options

	block []byte // undecoded records of the current block
	count uint64
	err   error // sticky; io.EOF after a verified trailer
}

// NewReader reads and validates the stream header.
func NewReader[T any](r io.Reader, opts ...Option) (*Reader[T], error) {
	o := buildOptions(opts)
	sr := &Reader[T]{
		r:    bufio.NewReader(r),
		crc:  ihash.NewCRC32C(),
		opts: o,
	}

	var hdr [len(magic) + 3]byte
	if err := sr.readFull(hdr[:]); err != nil {
		return nil, err
	}
	if string(hdr[:len(magic)]) != magic {
		return nil, ErrBadMagic
	}
	if v := hdr[len(magic)]; v != version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, v)
	}
	sr.compression = Compression(hdr[len(magic)+1])
	if !sr.compression.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, sr.compression)
	}

	name := make([]byte, hdr[len(magic)+2])
	if err := sr.readFull(name); err != nil {
		return nil, err
	}
	switch {
	case o.codec != nil && o.codec.Name() == string(name):
		sr.codec = o.codec
	default:
		c, ok := codec.ByName(string(name))
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
		}
		sr.codec = c
	}
	return sr, nil
}

func (sr *Reader[T]) readFull(p []byte) error {
	if _, err := io.ReadFull(sr.r, p); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return corruptf("truncated stream")
		}
		return fmt.Errorf("snapshot: read: %w", err)
	}
	_, _ = sr.crc.Write(p)
	return nil
}

// Codec returns the codec named by the stream header.
func (sr *Reader[T]) Codec() codec.Codec { return sr.codec }

// Compression returns the block compression named by the stream header.
func (sr *Reader[T]) Compression() Compression { return sr.compression }

// Next decodes the following element. It returns io.EOF once the trailer has
// been read and its count and checksum verified.
func (sr *Reader[T]) Next() (T, error) {
	var zero T
	if sr.err != nil {
		return zero, sr.err
	}
	for len(sr.block) == 0 {
		more, err := sr.nextBlock()
		if err != nil {
			sr.err = err
			return zero, err
		}
		if !more {
			sr.err = sr.finish()
			return zero, sr.err
		}
	}

	u, k := binary.Uvarint(sr.block)
	n, err := conv.Uint64ToInt(u)
	if k <= 0 || err != nil || n > len(sr.block)-k {
		sr.err = corruptf("bad record length at element %d", sr.count)
		return zero, sr.err
	}
	rec := sr.block[k : k+n]
	sr.block = sr.block[k+n:]

	var v T
	if err := sr.codec.Unmarshal(rec, &v); err != nil {
		sr.err = fmt.Errorf("snapshot: decode element %d: %w", sr.count, err)
		return zero, sr.err
	}
	sr.count++
	return v, nil
}

// nextBlock loads the following block. It reports false at the terminator.
func (sr *Reader[T]) nextBlock() (bool, error) {
	var hdr [blockHeaderSize]byte
	if err := sr.readFull(hdr[:]); err != nil {
		return false, err
	}
	size := binary.LittleEndian.Uint32(hdr[0:])
	stored := binary.LittleEndian.Uint32(hdr[4:])
	if size == 0 {
		if stored != 0 {
			return false, corruptf("bad terminator")
		}
		return false, nil
	}
	if size > maxBlockSize || stored > size {
		return false, corruptf("block of %d bytes (%d stored)", size, stored)
	}

	if stored == 0 {
		buf := make([]byte, size)
		if err := sr.readFull(buf); err != nil {
			return false, err
		}
		sr.block = buf
		return true, nil
	}

	payload := make([]byte, stored)
	if err := sr.readFull(payload); err != nil {
		return false, err
	}
	data, err := decodeBlock(payload, int(size), sr.compression)
	if err != nil {
		if errors.Is(err, ErrCorrupt) {
			return false, err
		}
		return false, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	sr.block = data
	return true, nil
}

func (sr *Reader[T]) finish() error {
	var cnt [8]byte
	if err := sr.readFull(cnt[:]); err != nil {
		return err
	}
	want := sr.crc.Sum32()

	var sum [4]byte
	if _, err := io.ReadFull(sr.r, sum[:]); err != nil {
		return corruptf("truncated stream")
	}
	if binary.LittleEndian.Uint32(sum[:]) != want {
		return ErrChecksum
	}
	if n := binary.LittleEndian.Uint64(cnt[:]); n != sr.count {
		return corruptf("trailer counts %d elements, stream holds %d", n, sr.count)
	}

	sr.opts.logger.Debug("snapshot read",
		"elements", sr.count,
		"codec", sr.codec.Name(),
		"compression", sr.compression.String(),
	)
	return io.EOF
}

// Count returns the number of elements decoded so far.
func (sr *Reader[T]) Count() int { return int(sr.count) }

// All yields every remaining element. A failure is yielded once with the
// zero value, after which iteration stops.
func (sr *Reader[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			v, err := sr.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(v, err) || err != nil {
				return
			}
		}
	}
}

// Read restores a complete stream into out and returns the advanced output
// position and the number of elements emitted. Elements are emitted as they
// are decoded, so on error out already holds the elements that preceded it.
func Read[T any, Out iterator.Output[T, Out]](r io.Reader, out Out, opts ...Option) (Out, int, error) {
	sr, err := NewReader[T](r, opts...)
	if err != nil {
		return out, 0, err
	}
	for {
		v, err := sr.Next()
		if errors.Is(err, io.EOF) {
			return out, sr.Count(), nil
		}
		if err != nil {
			return out, sr.Count(), err
		}
		out.Set(v)
		out = out.Next()
	}
}
