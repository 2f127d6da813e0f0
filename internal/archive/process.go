package archive

import (
	"io"
	"sync"

	"github.com/hejhdiss/gxd/internal/codec"
	"github.com/hejhdiss/gxd/internal/digest"
	"github.com/hejhdiss/gxd/internal/gxderr"
)

// blockResult is what a write-path worker produces for one span.
type blockResult struct {
	id         int
	compressed []byte
	origSize   int64
	hash       string
}

// processBlocks reads each span from src, compresses it, and hashes the
// original bytes, fanning the work out across a bounded worker pool. It
// also hashes the entire source sequentially (concurrently with the
// per-block workers) to produce the global digest, since that digest is a
// hash of the concatenation and cannot be derived from the per-block
// hashes. Results are returned sorted by id; the caller writes them in
// that order. Modeled on the worker/result-channel/error-once shape used
// for parallel NCA block compression.
func processBlocks(src io.ReaderAt, totalSize int64, spans []BlockSpan, c codec.Codec, level, threads int, progress Progress) ([]blockResult, string, error) {
	results := make([]blockResult, len(spans))

	spanCh := make(chan BlockSpan, threads*4)
	resultCh := make(chan blockResult, threads*4)
	cancel := make(chan struct{})

	var workerWg sync.WaitGroup
	var errOnce sync.Once
	var workerErr error

	// setErr records only the first error and signals every in-flight
	// worker (and the dispatch loop below) to abandon further work after
	// whatever block they are currently on — the coordinator never cuts a
	// worker off mid-block.
	setErr := func(err error) {
		errOnce.Do(func() {
			workerErr = err
			close(cancel)
		})
	}

	var collectWg sync.WaitGroup
	collectWg.Add(1)
	go func() {
		defer collectWg.Done()
		for r := range resultCh {
			results[r.id] = r
			progress.report(BlockEvent{ID: r.id, Total: len(spans), Phase: "compress"})
		}
	}()

	for i := 0; i < threads; i++ {
		workerWg.Add(1)
		go func() {
			defer workerWg.Done()
			for span := range spanCh {
				select {
				case <-cancel:
					continue
				default:
				}

				buf := make([]byte, span.SrcLen)
				if _, err := src.ReadAt(buf, span.SrcOffset); err != nil && err != io.EOF {
					setErr(gxderr.Wrap(gxderr.ErrIO, err))
					continue
				}

				compressed, err := c.Encode(level, buf)
				if err != nil {
					setErr(err)
					continue
				}

				resultCh <- blockResult{
					id:         span.ID,
					compressed: compressed,
					origSize:   span.SrcLen,
					hash:       digest.Block(buf),
				}
			}
		}()
	}

	var globalHash string
	var hashWg sync.WaitGroup
	hashWg.Add(1)
	go func() {
		defer hashWg.Done()
		h := digest.NewGlobal()
		if _, err := io.Copy(h, io.NewSectionReader(src, 0, totalSize)); err != nil {
			setErr(gxderr.Wrap(gxderr.ErrIO, err))
			return
		}
		globalHash = h.SumHex()
	}()

dispatch:
	for _, span := range spans {
		select {
		case spanCh <- span:
		case <-cancel:
			break dispatch
		}
	}
	close(spanCh)

	workerWg.Wait()
	close(resultCh)
	collectWg.Wait()
	hashWg.Wait()

	if workerErr != nil {
		return nil, "", workerErr
	}
	return results, globalHash, nil
}
