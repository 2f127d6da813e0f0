package archive

import (
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"

	"github.com/hejhdiss/gxd/internal/codec"
	"github.com/hejhdiss/gxd/internal/gxderr"
)

// MaxThreads bounds the worker pool width per spec §5.
const MaxThreads = 128

// resolveThreads validates a caller-supplied thread count. 0 means the
// host's core count, capped at MaxThreads; any other value outside
// [1, MaxThreads] is rejected with InvalidArgument.
func resolveThreads(threads int) (int, error) {
	if threads == 0 {
		threads = min(runtime.NumCPU(), MaxThreads)
	}
	if threads < 1 || threads > MaxThreads {
		return 0, gxderr.Wrapf(gxderr.ErrInvalidArgument, "threads %d out of [1, %d]", threads, MaxThreads)
	}
	return threads, nil
}

// CompressOptions configures a write.
type CompressOptions struct {
	Algo      codec.Algo
	Level     int
	BlockSize int64
	Threads   int
	// Verify is accepted for API symmetry with Decompress/Seek but is a
	// no-op: the format always stores per-block hashes (spec §6.2).
	Verify   bool
	Progress Progress
}

// Compress partitions sourcePath into fixed-size blocks, compresses each
// independently, and writes a footer-indexed archive to archivePath.
func Compress(sourcePath, archivePath string, opts CompressOptions) error {
	if opts.BlockSize <= 0 {
		return gxderr.Wrapf(gxderr.ErrInvalidArgument, "block_size %d <= 0", opts.BlockSize)
	}
	threads, err := resolveThreads(opts.Threads)
	if err != nil {
		return err
	}
	c, err := codec.Get(opts.Algo)
	if err != nil {
		return err
	}

	src, err := os.Open(sourcePath)
	if err != nil {
		return gxderr.Wrap(gxderr.ErrIO, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return gxderr.Wrap(gxderr.ErrIO, err)
	}
	totalSize := info.Size()

	spans := PlanLayout(totalSize, opts.BlockSize)

	results, globalHash, err := processBlocks(src, totalSize, spans, c, opts.Level, threads, opts.Progress)
	if err != nil {
		return err
	}

	dir := filepath.Dir(archivePath)
	tmp, err := os.CreateTemp(dir, ".gxd-*.tmp")
	if err != nil {
		return gxderr.Wrap(gxderr.ErrIO, err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	if _, err := tmp.WriteString(Magic); err != nil {
		cleanup()
		return gxderr.Wrap(gxderr.ErrIO, err)
	}

	footer := Footer{
		Version:    Version,
		Algo:       string(opts.Algo),
		GlobalHash: globalHash,
		Blocks:     make([]BlockDescriptor, len(results)),
	}

	offset := int64(magicLen)
	for _, r := range results {
		if _, err := tmp.Write(r.compressed); err != nil {
			cleanup()
			return gxderr.Wrap(gxderr.ErrIO, err)
		}
		size := int64(len(r.compressed))
		footer.Blocks[r.id] = BlockDescriptor{
			ID:       r.id,
			Start:    offset,
			Size:     size,
			OrigSize: r.origSize,
			Hash:     r.hash,
		}
		offset += size
	}

	footerBytes, err := json.Marshal(footer)
	if err != nil {
		cleanup()
		return gxderr.Wrap(gxderr.ErrIO, err)
	}
	if _, err := tmp.Write(footerBytes); err != nil {
		cleanup()
		return gxderr.Wrap(gxderr.ErrIO, err)
	}
	if err := binary.Write(tmp, binary.BigEndian, uint64(len(footerBytes))); err != nil {
		cleanup()
		return gxderr.Wrap(gxderr.ErrIO, err)
	}
	if _, err := tmp.WriteString(Magic); err != nil {
		cleanup()
		return gxderr.Wrap(gxderr.ErrIO, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return gxderr.Wrap(gxderr.ErrIO, err)
	}
	if err := os.Rename(tmpPath, archivePath); err != nil {
		os.Remove(tmpPath)
		return gxderr.Wrap(gxderr.ErrIO, err)
	}
	return nil
}
