// Package archive implements the GXD on-disk container: block layout,
// parallel compression and decompression, the footer format, and the
// random-access seek planner. See the wire format in spec §6.1.
package archive

// Version identifies this writer implementation in the footer.
const Version = "gxd-1"

// Magic is the 6-byte ASCII marker that opens and closes every archive.
const Magic = "GXDINC"

const (
	magicLen   = len(Magic)
	lenFieldSz = 8
	// trailerSize is the footer-length field plus the closing magic —
	// everything after the footer JSON itself.
	trailerSize = lenFieldSz + magicLen
)

// BlockDescriptor is one footer entry: where a compressed block lives and
// what it hashes to.
type BlockDescriptor struct {
	ID       int    `json:"id"`
	Start    int64  `json:"start"`
	Size     int64  `json:"size"`
	OrigSize int64  `json:"orig_size"`
	Hash     string `json:"hash"`
}

// Footer is the JSON metadata block trailing every archive.
type Footer struct {
	Version    string            `json:"version"`
	Algo       string            `json:"algo"`
	GlobalHash string            `json:"global_hash"`
	Blocks     []BlockDescriptor `json:"blocks"`
}

// BlockEvent is reported to a Progress callback as each block finishes
// processing, on both the write and read paths.
type BlockEvent struct {
	ID    int
	Total int
	// Phase is a short tag: "compress" on the write path, "decode" on the
	// read path (both decompress and seek).
	Phase string
}

// Progress is an optional, caller-supplied callback. There is no
// process-wide progress singleton — per spec §9, progress reporting is
// explicit or absent.
type Progress func(BlockEvent)

func (p Progress) report(ev BlockEvent) {
	if p != nil {
		p(ev)
	}
}
