// Package codec is the GXD codec registry: it maps an algorithm tag to a
// stateless (encode, decode) pair. All codec state (encoder pools, shared
// decoders) lives behind this package; callers only ever see byte slices.
package codec

import "github.com/hejhdiss/gxd/internal/gxderr"

// Algo identifies a registered compression algorithm.
type Algo string

const (
	Zstd   Algo = "zstd"
	LZ4    Algo = "lz4"
	Brotli Algo = "brotli"
	None   Algo = "none"
)

// Codec is the (encode, decode) pair for one algorithm. level is consumed
// only by zstd; other codecs ignore it.
type Codec struct {
	Encode func(level int, src []byte) ([]byte, error)
	Decode func(src []byte) ([]byte, error)
}

// registry is populated once at init from a fixed configuration of
// recognized algorithms, per the design note in spec §9: codecs are
// "registered" as runtime configuration, not discovered by reflection.
// A codec absent here (its optional library unavailable) fails lookups
// with UnsupportedAlgorithm.
var registry = map[Algo]Codec{
	Zstd:   {Encode: zstdEncode, Decode: zstdDecode},
	LZ4:    {Encode: lz4Encode, Decode: lz4Decode},
	Brotli: {Encode: brotliEncode, Decode: brotliDecode},
	None:   {Encode: identityEncode, Decode: identityDecode},
}

// Get looks up a codec by tag.
func Get(algo Algo) (Codec, error) {
	c, ok := registry[algo]
	if !ok {
		return Codec{}, gxderr.Wrapf(gxderr.ErrUnsupportedAlgorithm, "algorithm %q", string(algo))
	}
	return c, nil
}

// Valid reports whether algo names a registered codec.
func Valid(algo string) bool {
	_, ok := registry[Algo(algo)]
	return ok
}
