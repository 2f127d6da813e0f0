package archive

import (
	"encoding/binary"
	"encoding/json"
	"os"

	"github.com/hejhdiss/gxd/internal/codec"
	"github.com/hejhdiss/gxd/internal/gxderr"
)

// requiredFooterFields guards against a syntactically valid JSON object
// that is missing a field the format requires.
var requiredFooterFields = []string{"version", "algo", "global_hash", "blocks"}

// Reader opens an archive for footer inspection and random-access block
// reads. It holds the file open for the lifetime of a request.
type Reader struct {
	f      *os.File
	size   int64
	footer Footer
}

// Open validates the magic, footer length, and block adjacency invariants,
// then returns a Reader ready to serve block(s).
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, gxderr.Wrap(gxderr.ErrIO, err)
	}

	r, err := openFile(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

func openFile(f *os.File) (*Reader, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, gxderr.Wrap(gxderr.ErrIO, err)
	}
	size := info.Size()
	if size < int64(magicLen+trailerSize) {
		return nil, gxderr.Wrapf(gxderr.ErrCorruptFooter, "archive too small: %d bytes", size)
	}

	closing := make([]byte, magicLen)
	if _, err := f.ReadAt(closing, size-int64(magicLen)); err != nil {
		return nil, gxderr.Wrap(gxderr.ErrIO, err)
	}
	if string(closing) != Magic {
		return nil, gxderr.Wrapf(gxderr.ErrBadMagic, "closing magic %q", closing)
	}

	lenBuf := make([]byte, lenFieldSz)
	lenOffset := size - int64(trailerSize)
	if _, err := f.ReadAt(lenBuf, lenOffset); err != nil {
		return nil, gxderr.Wrap(gxderr.ErrIO, err)
	}
	footerLen := int64(binary.BigEndian.Uint64(lenBuf))
	if footerLen == 0 || footerLen > size-int64(trailerSize) {
		return nil, gxderr.Wrapf(gxderr.ErrCorruptFooter, "impossible footer length %d", footerLen)
	}

	footerOffset := lenOffset - footerLen
	footerBytes := make([]byte, footerLen)
	if _, err := f.ReadAt(footerBytes, footerOffset); err != nil {
		return nil, gxderr.Wrap(gxderr.ErrIO, err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(footerBytes, &raw); err != nil {
		return nil, gxderr.Wrap(gxderr.ErrCorruptFooter, err)
	}
	for _, field := range requiredFooterFields {
		if _, ok := raw[field]; !ok {
			return nil, gxderr.Wrapf(gxderr.ErrCorruptFooter, "missing field %q", field)
		}
	}

	var footer Footer
	if err := json.Unmarshal(footerBytes, &footer); err != nil {
		return nil, gxderr.Wrap(gxderr.ErrCorruptFooter, err)
	}
	if !codec.Valid(footer.Algo) {
		return nil, gxderr.Wrapf(gxderr.ErrUnsupportedAlgorithm, "algorithm %q", footer.Algo)
	}

	opening := make([]byte, magicLen)
	if _, err := f.ReadAt(opening, 0); err != nil {
		return nil, gxderr.Wrap(gxderr.ErrIO, err)
	}
	if string(opening) != Magic {
		return nil, gxderr.Wrapf(gxderr.ErrBadMagic, "opening magic %q", opening)
	}

	if err := validateAdjacency(footer.Blocks, footerOffset); err != nil {
		return nil, err
	}

	return &Reader{f: f, size: size, footer: footer}, nil
}

// validateAdjacency checks invariant 2: blocks are dense from id 0,
// written contiguously starting at the opening magic, with no gaps or
// overlaps, ending exactly where the footer begins.
func validateAdjacency(blocks []BlockDescriptor, payloadEnd int64) error {
	expected := int64(magicLen)
	for i, b := range blocks {
		if b.ID != i {
			return gxderr.Wrapf(gxderr.ErrCorruptFooter, "block %d has id %d", i, b.ID)
		}
		if b.Start != expected {
			return gxderr.Wrapf(gxderr.ErrCorruptFooter, "block %d starts at %d, expected %d", i, b.Start, expected)
		}
		if b.Size < 0 {
			return gxderr.Wrapf(gxderr.ErrCorruptFooter, "block %d has negative size", i)
		}
		expected = b.Start + b.Size
	}
	if expected != payloadEnd {
		return gxderr.Wrapf(gxderr.ErrCorruptFooter, "payload ends at %d, footer starts at %d", expected, payloadEnd)
	}
	return nil
}

// BlockCount returns the number of blocks in the archive.
func (r *Reader) BlockCount() int { return len(r.footer.Blocks) }

// Block returns the i-th block descriptor.
func (r *Reader) Block(i int) BlockDescriptor { return r.footer.Blocks[i] }

// Blocks returns all block descriptors, in id order.
func (r *Reader) Blocks() []BlockDescriptor { return r.footer.Blocks }

// Algo returns the archive's codec tag.
func (r *Reader) Algo() codec.Algo { return codec.Algo(r.footer.Algo) }

// GlobalHash returns the hex SHA-256 of the original input.
func (r *Reader) GlobalHash() string { return r.footer.GlobalHash }

// TotalOrigSize returns the sum of all blocks' original sizes: the length
// of the decoded payload.
func (r *Reader) TotalOrigSize() int64 {
	var total int64
	for _, b := range r.footer.Blocks {
		total += b.OrigSize
	}
	return total
}

// ReadBlockBytes reads the i-th block's compressed bytes.
func (r *Reader) ReadBlockBytes(i int) ([]byte, error) {
	b := r.footer.Blocks[i]
	buf := make([]byte, b.Size)
	if _, err := r.f.ReadAt(buf, b.Start); err != nil {
		return nil, gxderr.Wrap(gxderr.ErrIO, err)
	}
	return buf, nil
}

// Close releases the underlying file handle.
func (r *Reader) Close() error {
	return r.f.Close()
}
