package codec

import (
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/hejhdiss/gxd/internal/gxderr"
)

var (
	zstdDecoder, _ = zstd.NewReader(nil)

	zstdEncoderPools = make(map[int]*sync.Pool)
	zstdPoolMu       sync.RWMutex
)

func getZstdEncoderPool(level int) *sync.Pool {
	zstdPoolMu.RLock()
	pool, ok := zstdEncoderPools[level]
	zstdPoolMu.RUnlock()
	if ok {
		return pool
	}

	zstdPoolMu.Lock()
	defer zstdPoolMu.Unlock()

	if pool, ok = zstdEncoderPools[level]; ok {
		return pool
	}

	pool = &sync.Pool{
		New: func() interface{} {
			enc, _ := zstd.NewWriter(nil,
				zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)),
				zstd.WithEncoderConcurrency(1),
			)
			return enc
		},
	}
	zstdEncoderPools[level] = pool
	return pool
}

func zstdEncode(level int, src []byte) ([]byte, error) {
	if level < 1 || level > 22 {
		return nil, gxderr.Wrapf(gxderr.ErrInvalidArgument, "zstd level %d out of [1, 22]", level)
	}
	pool := getZstdEncoderPool(level)
	enc := pool.Get().(*zstd.Encoder)
	defer pool.Put(enc)

	return enc.EncodeAll(src, make([]byte, 0, len(src))), nil
}

func zstdDecode(src []byte) ([]byte, error) {
	out, err := zstdDecoder.DecodeAll(src, nil)
	if err != nil {
		return nil, gxderr.Wrap(gxderr.ErrCodec, err)
	}
	return out, nil
}
