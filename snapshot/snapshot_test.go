package snapshot

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/seqkit/codec"
	"github.com/hupe1980/seqkit/deque"
	"github.com/hupe1980/seqkit/iterator"
	"github.com/hupe1980/seqkit/list"
	"github.com/hupe1980/seqkit/testutil"
)

type record struct {
	ID    int      `json:"id"`
	Name  string   `json:"name"`
	Tags  []string `json:"tags,omitempty"`
	Score float64  `json:"score"`
}

func records(n int) []record {
	out := make([]record, n)
	for i := range out {
		out[i] = record{
			ID:    i,
			Name:  fmt.Sprintf("item-%d", i%17),
			Tags:  []string{"alpha", "beta"}[:i%3%2+1],
			Score: float64(i) / 4,
		}
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	src := records(500)
	for _, name := range codec.Names() {
		c, _ := codec.ByName(name)
		for _, comp := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
			t.Run(name+"/"+comp.String(), func(t *testing.T) {
				var buf bytes.Buffer
				n, err := Write[record](&buf, iterator.Begin(src), iterator.End(src),
					WithCodec(c), WithCompression(comp), WithBlockSize(1024))
				require.NoError(t, err)
				require.Equal(t, len(src), n)

				var got []record
				_, n, err = Read[record](bytes.NewReader(buf.Bytes()), iterator.Append(&got))
				require.NoError(t, err)
				assert.Equal(t, len(src), n)
				assert.Equal(t, src, got)
			})
		}
	}
}

func TestRoundTrip_Empty(t *testing.T) {
	var buf bytes.Buffer
	n, err := Write[int](&buf, iterator.Begin([]int(nil)), iterator.End([]int(nil)))
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	sr, err := NewReader[int](&buf)
	require.NoError(t, err)
	_, err = sr.Next()
	assert.ErrorIs(t, err, io.EOF)
	_, err = sr.Next()
	assert.ErrorIs(t, err, io.EOF, "end is sticky")
}

func TestRoundTrip_DequeToList(t *testing.T) {
	src := testutil.NewRNG(3).Ints(2000, 1000)
	d, err := deque.NewFrom[int](iterator.Begin(src), iterator.End(src), deque.WithBufferSize(64))
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = Write[int](&buf, d.Begin(), d.End(), WithCompression(CompressionZSTD), WithBlockSize(256))
	require.NoError(t, err)

	l, err := list.New[int]()
	require.NoError(t, err)
	out, n, err := Read[int](&buf, iterator.BackInserter[int](l))
	require.NoError(t, err)
	require.NoError(t, out.Err())
	assert.Equal(t, len(src), n)
	assert.Equal(t, src, slices.Collect(l.All()))
}

func TestCompressionShrinksRepetitiveData(t *testing.T) {
	src := make([]string, 2000)
	for i := range src {
		src[i] = strings.Repeat("seqkit ", 8)
	}

	size := func(c Compression) int {
		var buf bytes.Buffer
		_, err := Write[string](&buf, iterator.Begin(src), iterator.End(src), WithCompression(c))
		require.NoError(t, err)
		return buf.Len()
	}

	raw := size(CompressionNone)
	assert.Less(t, size(CompressionLZ4), raw/2)
	assert.Less(t, size(CompressionZSTD), raw/2)
}

func TestWriter_AppendAfterClose(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter[int](&buf)
	require.NoError(t, err)
	require.NoError(t, w.Append(1))
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.Append(2), ErrClosed)
	assert.Equal(t, 1, w.Count())
}

func TestReader_All(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter[string](&buf, WithCodec(codec.JSON{}), WithBlockSize(8))
	require.NoError(t, err)
	for _, s := range []string{"a", "b", "c", "d"} {
		require.NoError(t, w.Append(s))
	}
	require.NoError(t, w.Close())

	sr, err := NewReader[string](&buf)
	require.NoError(t, err)
	assert.Equal(t, "json", sr.Codec().Name())
	assert.Equal(t, CompressionNone, sr.Compression())

	var got []string
	for v, err := range sr.All() {
		require.NoError(t, err)
		got = append(got, v)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
	assert.Equal(t, 4, sr.Count())
}

// upperJSON is a codec that only readers configured with it can decode.
type upperJSON struct{ codec.JSON }

func (upperJSON) Name() string { return "upper-json" }

func TestCustomCodec(t *testing.T) {
	src := []string{"x", "y"}
	var buf bytes.Buffer
	_, err := Write[string](&buf, iterator.Begin(src), iterator.End(src), WithCodec(upperJSON{}))
	require.NoError(t, err)
	data := buf.Bytes()

	_, err = NewReader[string](bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrUnknownCodec)

	var got []string
	_, _, err = Read[string](bytes.NewReader(data), iterator.Append(&got), WithCodec(upperJSON{}))
	require.NoError(t, err)
	assert.Equal(t, src, got)
}

// sizedCodec encodes an int n as n zero bytes.
type sizedCodec struct{}

func (sizedCodec) Name() string { return "sized" }

func (sizedCodec) Marshal(v any) ([]byte, error) { return make([]byte, v.(int)), nil }

func (sizedCodec) Unmarshal(data []byte, v any) error {
	*v.(*int) = len(data)
	return nil
}

func TestAppend_RecordTooLarge(t *testing.T) {
	var buf bytes.Buffer
	sw, err := NewWriter[int](&buf, WithCodec(sizedCodec{}))
	require.NoError(t, err)

	require.NoError(t, sw.Append(3))
	err = sw.Append(maxBlockSize)
	require.ErrorIs(t, err, ErrRecordTooLarge)
	assert.Equal(t, 1, sw.Count())
	require.NoError(t, sw.Append(5))
	require.NoError(t, sw.Close())

	var got []int
	_, n, err := Read[int](bytes.NewReader(buf.Bytes()), iterator.Append(&got), WithCodec(sizedCodec{}))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []int{3, 5}, got)
}

func TestAppend_FlushesBeforeBlockLimit(t *testing.T) {
	if testing.Short() {
		t.Skip("writes a block close to the reader limit")
	}
	big := maxBlockSize - 16
	var buf bytes.Buffer
	sw, err := NewWriter[int](&buf, WithCodec(sizedCodec{}), WithBlockSize(maxBlockSize))
	require.NoError(t, err)
	require.NoError(t, sw.Append(100))
	require.NoError(t, sw.Append(big))
	require.NoError(t, sw.Close())

	var got []int
	_, _, err = Read[int](bytes.NewReader(buf.Bytes()), iterator.Append(&got), WithCodec(sizedCodec{}))
	require.NoError(t, err)
	assert.Equal(t, []int{100, big}, got)
}

func encodeStrings(t *testing.T, src []string, opts ...Option) []byte {
	t.Helper()
	var buf bytes.Buffer
	_, err := Write[string](&buf, iterator.Begin(src), iterator.End(src), opts...)
	require.NoError(t, err)
	return buf.Bytes()
}

func TestCorruption(t *testing.T) {
	src := []string{"aaaa", "bbbb", "cccc"}

	t.Run("bad magic", func(t *testing.T) {
		data := encodeStrings(t, src)
		data[0] = 'X'
		_, err := NewReader[string](bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrBadMagic)
	})

	t.Run("version", func(t *testing.T) {
		data := encodeStrings(t, src)
		data[len(magic)] = 9
		_, err := NewReader[string](bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrVersion)
	})

	t.Run("compression", func(t *testing.T) {
		data := encodeStrings(t, src)
		data[len(magic)+1] = 7
		_, err := NewReader[string](bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrUnknownCompression)
	})

	t.Run("flipped payload", func(t *testing.T) {
		data := encodeStrings(t, src)
		i := bytes.Index(data, []byte("bbbb"))
		require.Positive(t, i)
		data[i] = 'z'

		var got []string
		_, n, err := Read[string](bytes.NewReader(data), iterator.Append(&got))
		assert.ErrorIs(t, err, ErrChecksum)
		assert.Equal(t, 3, n)
		assert.Equal(t, []string{"aaaa", "zbbb", "cccc"}, got)
	})

	t.Run("truncated", func(t *testing.T) {
		data := encodeStrings(t, src)
		for _, cut := range []int{1, 4, 10, len(data) - 10} {
			_, _, err := Read[string](bytes.NewReader(data[:len(data)-cut]), iterator.Discard[string]())
			assert.ErrorIs(t, err, ErrCorrupt, "cut %d", cut)
		}
	})

	t.Run("error is sticky", func(t *testing.T) {
		data := encodeStrings(t, src, WithCompression(CompressionZSTD))
		sr, err := NewReader[string](bytes.NewReader(data[:len(data)-2]))
		require.NoError(t, err)

		var errs int
		for _, err := range sr.All() {
			if err != nil {
				errs++
				assert.ErrorIs(t, err, ErrCorrupt)
			}
		}
		assert.Equal(t, 1, errs)
		_, err = sr.Next()
		assert.ErrorIs(t, err, ErrCorrupt)
	})
}

func TestParseCompression(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		got, err := ParseCompression(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err := ParseCompression("brotli")
	assert.ErrorIs(t, err, ErrUnknownCompression)

	_, err = NewWriter[int](io.Discard, WithCompression(Compression(5)))
	assert.ErrorIs(t, err, ErrUnknownCompression)
}

func BenchmarkWrite(b *testing.B) {
	src := records(10000)
	for _, comp := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		b.Run(comp.String(), func(b *testing.B) {
			for b.Loop() {
				_, _ = Write[record](io.Discard, iterator.Begin(src), iterator.End(src), WithCompression(comp))
			}
		})
	}
}
