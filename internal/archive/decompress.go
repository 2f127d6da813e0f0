package archive

import (
	"io"

	"github.com/hejhdiss/gxd/internal/digest"
	"github.com/hejhdiss/gxd/internal/gxderr"
)

// DecompressOptions configures a full decode.
type DecompressOptions struct {
	Threads      int
	VerifyBlocks bool
	Progress     Progress
}

// Decompress reassembles the full original input from archivePath and
// writes it to sink in order. With VerifyBlocks set, both per-block
// digests and the whole-file global_hash are checked; with it unset,
// neither is.
func Decompress(archivePath string, sink io.Writer, opts DecompressOptions) error {
	threads, err := resolveThreads(opts.Threads)
	if err != nil {
		return err
	}

	r, err := Open(archivePath)
	if err != nil {
		return err
	}
	defer r.Close()

	ids := make([]int, r.BlockCount())
	for i := range ids {
		ids[i] = i
	}

	var global *digest.Global
	if opts.VerifyBlocks {
		global = digest.NewGlobal()
	}

	err = decodeStream(r, ids, opts.VerifyBlocks, threads, opts.Progress, func(_ int, data []byte) error {
		if _, err := sink.Write(data); err != nil {
			return gxderr.Wrap(gxderr.ErrIO, err)
		}
		if global != nil {
			global.Write(data)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if global != nil && global.SumHex() != r.GlobalHash() {
		return gxderr.ErrGlobalHashMismatch
	}
	return nil
}
