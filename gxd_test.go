package gxd_test

import (
	"bytes"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/hejhdiss/gxd"
)

func writeSource(t *testing.T, dir string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, "source.bin")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func compressTo(t *testing.T, dir string, data []byte, opts gxd.CompressOptions) string {
	t.Helper()
	source := writeSource(t, dir, data)
	archivePath := filepath.Join(dir, "out.gxd")
	if err := gxd.Compress(source, archivePath, opts); err != nil {
		t.Fatalf("Compress: %v", err)
	}
	return archivePath
}

func decompressAll(t *testing.T, archivePath string, verify bool) []byte {
	t.Helper()
	var buf bytes.Buffer
	err := gxd.Decompress(archivePath, &buf, gxd.DecompressOptions{VerifyBlocks: verify})
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	return buf.Bytes()
}

// TestRoundTrip covers testable property 1 across every registered
// algorithm and a spread of block sizes (testable property 6: algorithm
// invariance — decoded output is identical regardless of algo).
func TestRoundTrip(t *testing.T) {
	input := []byte("ABCDEFGHIJ")
	algos := []gxd.Algo{gxd.None, gxd.Zstd, gxd.LZ4, gxd.Brotli}
	blockSizes := []int64{1, 3, 4, 100}

	for _, algo := range algos {
		for _, bs := range blockSizes {
			dir := t.TempDir()
			archivePath := compressTo(t, dir, input, gxd.CompressOptions{
				Algo: algo, Level: 3, BlockSize: bs, Threads: 2,
			})
			got := decompressAll(t, archivePath, true)
			if !bytes.Equal(got, input) {
				t.Fatalf("algo=%s block_size=%d: got %q, want %q", algo, bs, got, input)
			}
		}
	}
}

// TestEmptyInput covers testable property 7.
func TestEmptyInput(t *testing.T) {
	dir := t.TempDir()
	archivePath := compressTo(t, dir, []byte{}, gxd.CompressOptions{
		Algo: gxd.None, BlockSize: 4, Threads: 1,
	})
	got := decompressAll(t, archivePath, true)
	if len(got) != 0 {
		t.Fatalf("expected empty output, got %d bytes", len(got))
	}
}

// TestS1SmallRoundTrip is spec §8's concrete S1 scenario.
func TestS1SmallRoundTrip(t *testing.T) {
	dir := t.TempDir()
	input := []byte("ABCDEFGHIJ")
	archivePath := compressTo(t, dir, input, gxd.CompressOptions{
		Algo: gxd.None, BlockSize: 4, Threads: 1,
	})
	got := decompressAll(t, archivePath, true)
	if !bytes.Equal(got, input) {
		t.Fatalf("got %q, want %q", got, input)
	}
}

// TestSeekEquivalence is spec §8's testable property 2, exercised as a
// randomized ReadAt-equivalence loop in the style of
// jonjohnsonjr/targz's ranger_test.go.
func TestSeekEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	input := make([]byte, 5000)
	rng.Read(input)

	dir := t.TempDir()
	archivePath := compressTo(t, dir, input, gxd.CompressOptions{
		Algo: gxd.Zstd, Level: 3, BlockSize: 777, Threads: 4,
	})

	for i := 0; i < 200; i++ {
		offset := int64(rng.Intn(len(input)))
		length := int64(rng.Intn(len(input) - int(offset) + 1))

		var buf bytes.Buffer
		err := gxd.Seek(archivePath, &buf, gxd.SeekOptions{Offset: offset, Length: &length})
		if err != nil {
			t.Fatalf("Seek(%d, %d): %v", offset, length, err)
		}

		want := input[offset : offset+length]
		if !bytes.Equal(buf.Bytes(), want) {
			t.Fatalf("Seek(%d, %d) = %q, want %q", offset, length, buf.Bytes(), want)
		}
	}
}

// TestSeekMidBlock is spec §8's S2 scenario.
func TestSeekMidBlock(t *testing.T) {
	dir := t.TempDir()
	archivePath := compressTo(t, dir, []byte("ABCDEFGHIJ"), gxd.CompressOptions{
		Algo: gxd.None, BlockSize: 4, Threads: 1,
	})

	length := int64(3)
	var buf bytes.Buffer
	if err := gxd.Seek(archivePath, &buf, gxd.SeekOptions{Offset: 5, Length: &length}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "FGH" {
		t.Fatalf("got %q, want %q", buf.String(), "FGH")
	}
}

// TestSeekTailBeyondEOF is spec §8's S3 scenario.
func TestSeekTailBeyondEOF(t *testing.T) {
	dir := t.TempDir()
	archivePath := compressTo(t, dir, []byte("ABCDEFGHIJ"), gxd.CompressOptions{
		Algo: gxd.None, BlockSize: 4, Threads: 1,
	})

	length := int64(100)
	var buf bytes.Buffer
	if err := gxd.Seek(archivePath, &buf, gxd.SeekOptions{Offset: 8, Length: &length}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "IJ" {
		t.Fatalf("got %q, want %q", buf.String(), "IJ")
	}
}

// TestSeekOffsetBeyondEOF covers the offset >= len(input) permissive
// behavior from spec §4.6 and §9's open question.
func TestSeekOffsetBeyondEOF(t *testing.T) {
	dir := t.TempDir()
	archivePath := compressTo(t, dir, []byte("ABCDEFGHIJ"), gxd.CompressOptions{
		Algo: gxd.None, BlockSize: 4, Threads: 1,
	})

	var buf bytes.Buffer
	if err := gxd.Seek(archivePath, &buf, gxd.SeekOptions{Offset: 50}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected zero bytes, got %d", buf.Len())
	}
}

// TestCorruptClosingMagic is spec §8's S4 scenario.
func TestCorruptClosingMagic(t *testing.T) {
	dir := t.TempDir()
	archivePath := compressTo(t, dir, []byte("ABCDEFGHIJ"), gxd.CompressOptions{
		Algo: gxd.None, BlockSize: 4, Threads: 1,
	})

	flipLastByte(t, archivePath)

	var buf bytes.Buffer
	err := gxd.Decompress(archivePath, &buf, gxd.DecompressOptions{VerifyBlocks: true})
	if !errors.Is(err, gxd.ErrBadMagic) {
		t.Fatalf("got %v, want ErrBadMagic", err)
	}
}

// TestTruncation is spec §8's S5 scenario.
func TestTruncation(t *testing.T) {
	dir := t.TempDir()
	archivePath := compressTo(t, dir, []byte("ABCDEFGHIJ"), gxd.CompressOptions{
		Algo: gxd.None, BlockSize: 4, Threads: 1,
	})

	truncate(t, archivePath, 20)

	var buf bytes.Buffer
	err := gxd.Decompress(archivePath, &buf, gxd.DecompressOptions{VerifyBlocks: true})
	if !errors.Is(err, gxd.ErrBadMagic) && !errors.Is(err, gxd.ErrCorruptFooter) {
		t.Fatalf("got %v, want ErrBadMagic or ErrCorruptFooter", err)
	}
}

// TestCorruptBlockVerified is spec §8's S6 scenario with verify_blocks=true.
func TestCorruptBlockVerified(t *testing.T) {
	dir := t.TempDir()
	archivePath := compressTo(t, dir, []byte("ABCDEFGHIJ"), gxd.CompressOptions{
		Algo: gxd.None, BlockSize: 4, Threads: 1,
	})

	// Block 1 starts right after the 6-byte magic and block 0's 4
	// identity-compressed bytes: offset 6+4 = 10.
	flipByteAt(t, archivePath, 10)

	var buf bytes.Buffer
	err := gxd.Decompress(archivePath, &buf, gxd.DecompressOptions{VerifyBlocks: true})
	var mismatch *gxd.BlockHashMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("got %v, want *BlockHashMismatchError", err)
	}
	if mismatch.ID != 1 {
		t.Fatalf("got mismatch for block %d, want block 1", mismatch.ID)
	}
}

// TestUnknownAlgorithm is spec §8's S7 scenario: a hand-crafted footer
// with an unrecognized algo tag.
func TestUnknownAlgorithm(t *testing.T) {
	dir := t.TempDir()
	archivePath := compressTo(t, dir, []byte("ABCDEFGHIJ"), gxd.CompressOptions{
		Algo: gxd.None, BlockSize: 4, Threads: 1,
	})

	rewriteAlgoTag(t, archivePath, "none", "xyzz")

	var buf bytes.Buffer
	err := gxd.Decompress(archivePath, &buf, gxd.DecompressOptions{VerifyBlocks: true})
	if !errors.Is(err, gxd.ErrUnsupportedAlgorithm) {
		t.Fatalf("got %v, want ErrUnsupportedAlgorithm", err)
	}
}

func flipLastByte(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	data[len(data)-1] ^= 0xFF
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func flipByteAt(t *testing.T, path string, offset int) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	data[offset] ^= 0xFF
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func truncate(t *testing.T, path string, dropBytes int) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data[:len(data)-dropBytes], 0o644); err != nil {
		t.Fatal(err)
	}
}

func rewriteAlgoTag(t *testing.T, path, from, to string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	needle := []byte(`"algo":"` + from + `"`)
	replacement := []byte(`"algo":"` + to + `"`)
	idx := bytes.Index(data, needle)
	if idx < 0 {
		t.Fatalf("could not find algo tag %q in archive", from)
	}
	// Same length, so the footer length field and block offsets stay valid.
	copy(data[idx:], replacement)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}
