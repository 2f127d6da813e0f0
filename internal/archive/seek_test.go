package archive

import "testing"

func blocks(sizes ...int64) []BlockDescriptor {
	bs := make([]BlockDescriptor, len(sizes))
	for i, sz := range sizes {
		bs[i] = BlockDescriptor{ID: i, OrigSize: sz}
	}
	return bs
}

func lenPtr(n int64) *int64 { return &n }

// These three mirror spec §8's S1/S2/S3 scenarios over the 10-byte,
// block_size=4 archive from S1 (blocks of original size 4, 4, 2).
func TestPlanSeekMidBlock(t *testing.T) {
	// S2: seek(offset=5, length=3) over "ABCDEFGHIJ" should select only
	// block 1 ("EFGH"), trimmed to "FGH" — the Expect value in the spec
	// is the authoritative one; see DESIGN.md for why the prose
	// description of S2 (which claims blocks 1 and 2) is not followed
	// literally.
	plan, err := PlanSeek(blocks(4, 4, 2), 5, lenPtr(3))
	if err != nil {
		t.Fatal(err)
	}
	if plan.Empty {
		t.Fatal("plan should not be empty")
	}
	if plan.First != 1 || plan.Last != 1 {
		t.Fatalf("got first=%d last=%d, want first=1 last=1", plan.First, plan.Last)
	}
	if plan.TrimStart != 1 || plan.TrimEnd != 4 {
		t.Fatalf("got trimStart=%d trimEnd=%d, want 1, 4", plan.TrimStart, plan.TrimEnd)
	}
}

func TestPlanSeekTailBeyondEOF(t *testing.T) {
	// S3: seek(offset=8, length=100) should clamp to "IJ".
	plan, err := PlanSeek(blocks(4, 4, 2), 8, lenPtr(100))
	if err != nil {
		t.Fatal(err)
	}
	if plan.Empty {
		t.Fatal("plan should not be empty")
	}
	if plan.First != 2 || plan.Last != 2 {
		t.Fatalf("got first=%d last=%d, want first=2 last=2", plan.First, plan.Last)
	}
	if plan.TrimStart != 0 || plan.TrimEnd != 2 {
		t.Fatalf("got trimStart=%d trimEnd=%d, want 0, 2", plan.TrimStart, plan.TrimEnd)
	}
}

func TestPlanSeekOffsetAtEOF(t *testing.T) {
	plan, err := PlanSeek(blocks(4, 4, 2), 10, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !plan.Empty {
		t.Fatalf("offset == total length should yield an empty plan, got %+v", plan)
	}
}

func TestPlanSeekOffsetPastEOF(t *testing.T) {
	plan, err := PlanSeek(blocks(4, 4, 2), 1000, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !plan.Empty {
		t.Fatalf("offset past EOF should yield an empty plan, got %+v", plan)
	}
}

func TestPlanSeekSpansMultipleBlocks(t *testing.T) {
	// offset=0, length=9 over blocks of 4,4,2 covers all three blocks.
	plan, err := PlanSeek(blocks(4, 4, 2), 0, lenPtr(9))
	if err != nil {
		t.Fatal(err)
	}
	if plan.First != 0 || plan.Last != 2 {
		t.Fatalf("got first=%d last=%d, want first=0 last=2", plan.First, plan.Last)
	}
	if plan.TrimStart != 0 || plan.TrimEnd != 1 {
		t.Fatalf("got trimStart=%d trimEnd=%d, want 0, 1", plan.TrimStart, plan.TrimEnd)
	}
}

func TestPlanSeekNegativeOffset(t *testing.T) {
	if _, err := PlanSeek(blocks(4, 4, 2), -1, nil); err == nil {
		t.Fatal("expected an error for negative offset")
	}
}

func TestPlanSeekNoLengthReadsToEnd(t *testing.T) {
	plan, err := PlanSeek(blocks(4, 4, 2), 9, nil)
	if err != nil {
		t.Fatal(err)
	}
	if plan.First != 2 || plan.Last != 2 {
		t.Fatalf("got first=%d last=%d", plan.First, plan.Last)
	}
	if plan.TrimStart != 1 || plan.TrimEnd != 2 {
		t.Fatalf("got trimStart=%d trimEnd=%d, want 1, 2", plan.TrimStart, plan.TrimEnd)
	}
}
