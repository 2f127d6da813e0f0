package archive

import (
	"sync"

	"github.com/hejhdiss/gxd/internal/codec"
	"github.com/hejhdiss/gxd/internal/digest"
	"github.com/hejhdiss/gxd/internal/gxderr"
)

// decodedBlock is one worker's output: a block's full decoded bytes,
// keyed by id so the coordinator can reassemble in order.
type decodedBlock struct {
	id   int
	data []byte
}

// decodeStream decompresses ids (a contiguous ascending range) across a
// bounded worker pool and hands each block's bytes to emit strictly in
// ascending id order, even though workers may finish out of order. The
// only buffering beyond in-flight blocks is the reorder map holding
// results that arrived before their turn — per spec §5, the shared
// mutable state is the ordered result buffer and nothing else. On the
// first error from a worker or from emit itself, the coordinator stops
// dispatching new work and returns that error; workers already holding a
// block finish it (their result is simply never emitted).
func decodeStream(r *Reader, ids []int, verifyBlocks bool, threads int, progress Progress, emit func(id int, data []byte) error) error {
	if len(ids) == 0 {
		return nil
	}

	idCh := make(chan int, threads*4)
	resultCh := make(chan decodedBlock, threads*4)
	cancel := make(chan struct{})

	var workerWg sync.WaitGroup
	var errOnce sync.Once
	var firstErr error
	setErr := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			close(cancel)
		})
	}

	c, err := codec.Get(r.Algo())
	if err != nil {
		return err
	}

	for i := 0; i < threads; i++ {
		workerWg.Add(1)
		go func() {
			defer workerWg.Done()
			for id := range idCh {
				select {
				case <-cancel:
					continue
				default:
				}

				compressed, err := r.ReadBlockBytes(id)
				if err != nil {
					setErr(err)
					continue
				}
				decoded, err := c.Decode(compressed)
				if err != nil {
					setErr(err)
					continue
				}
				if verifyBlocks {
					if digest.Block(decoded) != r.Block(id).Hash {
						setErr(&gxderr.BlockHashMismatchError{ID: id})
						continue
					}
				}
				resultCh <- decodedBlock{id: id, data: decoded}
			}
		}()
	}

	go func() {
		defer close(resultCh)
		workerWg.Wait()
	}()

	// Dispatch runs concurrently with the resultCh drain below, mirroring
	// process.go's collector goroutine: workers can fill resultCh and
	// block on sending while the coordinator is still feeding idCh, and
	// nothing can drain resultCh until dispatch finishes otherwise.
	go func() {
	dispatch:
		for _, id := range ids {
			select {
			case idCh <- id:
			case <-cancel:
				break dispatch
			}
		}
		close(idCh)
	}()

	// Reorder buffer: holds blocks that finished before their turn.
	pending := make(map[int][]byte)
	next := 0 // index into ids
	var emitErr error

	for r := range resultCh {
		if emitErr != nil {
			continue
		}
		select {
		case <-cancel:
			continue
		default:
		}
		pending[r.id] = r.data
		progress.report(BlockEvent{ID: r.id, Total: len(ids), Phase: "decode"})

		for next < len(ids) {
			data, ok := pending[ids[next]]
			if !ok {
				break
			}
			if err := emit(ids[next], data); err != nil {
				emitErr = err
				setErr(err)
				break
			}
			delete(pending, ids[next])
			next++
		}
	}

	if firstErr != nil {
		return firstErr
	}
	return emitErr
}
