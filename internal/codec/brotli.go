package codec

import (
	"bytes"
	"io"

	"github.com/andybalholm/brotli"

	"github.com/hejhdiss/gxd/internal/gxderr"
)

// brotliQuality is fixed rather than caller-tunable: the level knob in the
// engine API is documented as zstd-only (§4.1).
const brotliQuality = 9

func brotliEncode(_ int, src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, brotliQuality)
	if _, err := w.Write(src); err != nil {
		return nil, gxderr.Wrap(gxderr.ErrCodec, err)
	}
	if err := w.Close(); err != nil {
		return nil, gxderr.Wrap(gxderr.ErrCodec, err)
	}
	return buf.Bytes(), nil
}

func brotliDecode(src []byte) ([]byte, error) {
	r := brotli.NewReader(bytes.NewReader(src))
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, gxderr.Wrap(gxderr.ErrCodec, err)
	}
	return out, nil
}
