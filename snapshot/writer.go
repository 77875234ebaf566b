package snapshot

import (
	"encoding/binary"
	"fmt"
	"hash"
	"io"

	ihash "github.com/hupe1980/seqkit/internal/hash"
	"github.com/hupe1980/seqkit/iterator"
)

// Writer encodes elements into a snapshot stream.
type Writer[T any] struct {
	w      io.Writer
	crc    hash.Hash32
	opts   options
	block  []byte
	frame  []byte
	count  uint64
	blocks int
	closed bool
}

// NewWriter writes the stream header and returns a Writer. The stream is
// incomplete until Close is called.
func NewWriter[T any](w io.Writer, opts ...Option) (*Writer[T], error) {
	o := buildOptions(opts)
	if !o.compression.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, o.compression)
	}
	name := o.codec.Name()
	if len(name) == 0 || len(name) > 255 {
		return nil, fmt.Errorf("%w: invalid name %q", ErrUnknownCodec, name)
	}

	sw := &Writer[T]{
		w:    w,
		crc:  ihash.NewCRC32C(),
		opts: o,
	}

	hdr := make([]byte, 0, len(magic)+3+len(name))
	hdr = append(hdr, magic...)
	hdr = append(hdr, version, byte(o.compression), byte(len(name)))
	hdr = append(hdr, name...)
	if err := sw.write(hdr); err != nil {
		return nil, err
	}
	return sw, nil
}

func (sw *Writer[T]) write(p []byte) error {
	if _, err := sw.w.Write(p); err != nil {
		return fmt.Errorf("snapshot: write: %w", err)
	}
	_, _ = sw.crc.Write(p)
	return nil
}

// Append encodes v into the current block, flushing it once it reaches the
// configured block size. A record whose framed size exceeds the largest
// block a reader accepts is rejected with ErrRecordTooLarge and leaves the
// stream as it was.
func (sw *Writer[T]) Append(v T) error {
	if sw.closed {
		return ErrClosed
	}
	b, err := sw.opts.codec.Marshal(v)
	if err != nil {
		return fmt.Errorf("snapshot: encode element %d: %w", sw.count, err)
	}
	framed := uvarintLen(uint64(len(b))) + len(b)
	if framed > maxBlockSize {
		return fmt.Errorf("%w: element %d encodes to %d bytes", ErrRecordTooLarge, sw.count, len(b))
	}
	if len(sw.block)+framed > maxBlockSize {
		if err := sw.flush(); err != nil {
			return err
		}
	}
	sw.block = binary.AppendUvarint(sw.block, uint64(len(b)))
	sw.block = append(sw.block, b...)
	sw.count++

	if len(sw.block) >= sw.opts.blockSize {
		return sw.flush()
	}
	return nil
}

func (sw *Writer[T]) flush() error {
	if len(sw.block) == 0 {
		return nil
	}
	frame, err := encodeBlock(sw.frame[:0], sw.block, sw.opts.compression)
	if err != nil {
		return fmt.Errorf("snapshot: compress block: %w", err)
	}
	sw.frame = frame
	sw.block = sw.block[:0]
	sw.blocks++
	return sw.write(frame)
}

func uvarintLen(x uint64) int {
	var buf [binary.MaxVarintLen64]byte
	return binary.PutUvarint(buf[:], x)
}

// Count returns the number of elements appended so far.
func (sw *Writer[T]) Count() int { return int(sw.count) }

// Close flushes the pending block and writes the trailer. It does not close
// the underlying writer.
func (sw *Writer[T]) Close() error {
	if sw.closed {
		return nil
	}
	if err := sw.flush(); err != nil {
		return err
	}
	sw.closed = true

	var tail [blockHeaderSize + 8]byte
	binary.LittleEndian.PutUint64(tail[blockHeaderSize:], sw.count)
	if err := sw.write(tail[:]); err != nil {
		return err
	}

	var sum [4]byte
	binary.LittleEndian.PutUint32(sum[:], sw.crc.Sum32())
	if _, err := sw.w.Write(sum[:]); err != nil {
		return fmt.Errorf("snapshot: write: %w", err)
	}

	sw.opts.logger.Debug("snapshot written",
		"elements", sw.count,
		"blocks", sw.blocks,
		"codec", sw.opts.codec.Name(),
		"compression", sw.opts.compression.String(),
	)
	return nil
}

// Write dumps [first, last) to w as a complete stream and returns the number
// of elements written.
func Write[T any, It iterator.Input[T, It]](w io.Writer, first, last It, opts ...Option) (int, error) {
	sw, err := NewWriter[T](w, opts...)
	if err != nil {
		return 0, err
	}
	for ; !first.Equal(last); first = first.Next() {
		if err := sw.Append(first.Get()); err != nil {
			return sw.Count(), err
		}
	}
	if err := sw.Close(); err != nil {
		return sw.Count(), err
	}
	return sw.Count(), nil
}
