// Package gxd implements the GXD block archive format: split an input
// stream into fixed-size blocks, compress each independently, record
// per-block and whole-file SHA-256 digests, and produce a footer-indexed
// archive supporting full decompression, verified integrity checking, and
// random-access range extraction.
package gxd

import (
	"io"

	"github.com/hejhdiss/gxd/internal/archive"
	"github.com/hejhdiss/gxd/internal/codec"
	"github.com/hejhdiss/gxd/internal/gxderr"
)

// Algo identifies a compression algorithm registered with the codec
// registry.
type Algo = codec.Algo

// Recognized algorithm tags. An archive mixes exactly one of these across
// all its blocks.
const (
	Zstd   = codec.Zstd
	LZ4    = codec.LZ4
	Brotli = codec.Brotli
	None   = codec.None
)

// BlockEvent reports one block finishing processing.
type BlockEvent = archive.BlockEvent

// Progress is an optional per-block callback for compress, decompress,
// and seek. There is no default implementation — callers that want
// human-readable output (the CLI collaborator) supply their own.
type Progress = archive.Progress

// CompressOptions configures Compress.
type CompressOptions = archive.CompressOptions

// DecompressOptions configures Decompress.
type DecompressOptions = archive.DecompressOptions

// SeekOptions configures Seek.
type SeekOptions = archive.SeekOptions

// Error kinds. Match with errors.Is(err, gxd.ErrBadMagic) and so on;
// BlockHashMismatchError carries the failing block's id.
var (
	ErrIO                   = gxderr.ErrIO
	ErrBadMagic             = gxderr.ErrBadMagic
	ErrCorruptFooter        = gxderr.ErrCorruptFooter
	ErrUnsupportedAlgorithm = gxderr.ErrUnsupportedAlgorithm
	ErrCodec                = gxderr.ErrCodec
	ErrGlobalHashMismatch   = gxderr.ErrGlobalHashMismatch
	ErrInvalidArgument      = gxderr.ErrInvalidArgument
)

// BlockHashMismatchError is returned when a decoded block's digest
// differs from its stored hash.
type BlockHashMismatchError = gxderr.BlockHashMismatchError

// Compress reads sourcePath, partitions it into opts.BlockSize blocks,
// compresses each with opts.Algo, and writes a new archive to
// archivePath.
func Compress(sourcePath, archivePath string, opts CompressOptions) error {
	return archive.Compress(sourcePath, archivePath, opts)
}

// Decompress reassembles the full original input from archivePath and
// writes it to sink in order.
func Decompress(archivePath string, sink io.Writer, opts DecompressOptions) error {
	return archive.Decompress(archivePath, sink, opts)
}

// Seek extracts input[offset : offset+length) from archivePath, decoding
// only the blocks that cover the requested range, and writes the result
// to sink.
func Seek(archivePath string, sink io.Writer, opts SeekOptions) error {
	return archive.Seek(archivePath, sink, opts)
}
