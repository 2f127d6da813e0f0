package archive

// BlockSpan is a write-path descriptor: which slice of the source each
// block covers, before compression.
type BlockSpan struct {
	ID        int
	SrcOffset int64
	SrcLen    int64
}

// PlanLayout partitions a totalSize-byte input into blockSize-byte spans.
// Every span but the last has length blockSize; the last has length
// totalSize - (N-1)*blockSize, in [1, blockSize]. Empty input yields no
// spans at all.
func PlanLayout(totalSize, blockSize int64) []BlockSpan {
	if totalSize <= 0 || blockSize <= 0 {
		return nil
	}

	n := (totalSize + blockSize - 1) / blockSize
	spans := make([]BlockSpan, n)
	for i := int64(0); i < n; i++ {
		off := i * blockSize
		length := blockSize
		if off+length > totalSize {
			length = totalSize - off
		}
		spans[i] = BlockSpan{ID: int(i), SrcOffset: off, SrcLen: length}
	}
	return spans
}
