package codec

import (
	"bytes"
	"io"

	"github.com/pierrec/lz4/v4"

	"github.com/hejhdiss/gxd/internal/gxderr"
)

// lz4 ignores the level parameter entirely; block archives care about
// decode speed more than ratio, so the writer uses a fixed 64 KB block
// size rather than one tuned per call.
func lz4Encode(_ int, src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if err := w.Apply(lz4.BlockSizeOption(lz4.Block64Kb)); err != nil {
		return nil, gxderr.Wrap(gxderr.ErrCodec, err)
	}
	if _, err := w.Write(src); err != nil {
		return nil, gxderr.Wrap(gxderr.ErrCodec, err)
	}
	if err := w.Close(); err != nil {
		return nil, gxderr.Wrap(gxderr.ErrCodec, err)
	}
	return buf.Bytes(), nil
}

func lz4Decode(src []byte) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(src))
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, gxderr.Wrap(gxderr.ErrCodec, err)
	}
	return out, nil
}
