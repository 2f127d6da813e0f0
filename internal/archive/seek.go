package archive

import (
	"sort"

	"github.com/hejhdiss/gxd/internal/gxderr"
)

// BlockPlan is the covering block range for a [offset, offset+length) read,
// plus the intra-block trims needed on the first and last blocks.
type BlockPlan struct {
	Empty bool
	First int
	Last  int
	// TrimStart is how many leading bytes to drop from the first block's
	// decoded output.
	TrimStart int64
	// TrimEnd is how many bytes, measured from the start of the last
	// block's decoded output, to keep.
	TrimEnd int64
}

// PlanSeek maps a logical byte range onto the minimal covering block range.
// length == nil means "to end of payload". offset >= total payload length
// yields an empty (not erroneous) plan, per the permissive-EOF rule in
// spec §4.6.
func PlanSeek(blocks []BlockDescriptor, offset int64, length *int64) (BlockPlan, error) {
	if offset < 0 {
		return BlockPlan{}, gxderr.Wrapf(gxderr.ErrInvalidArgument, "negative offset %d", offset)
	}

	cum := make([]int64, len(blocks)+1)
	for i, b := range blocks {
		cum[i+1] = cum[i] + b.OrigSize
	}
	total := cum[len(blocks)]

	if offset >= total {
		return BlockPlan{Empty: true}, nil
	}

	end := total
	if length != nil {
		if *length < 0 {
			return BlockPlan{}, gxderr.Wrapf(gxderr.ErrInvalidArgument, "negative length %d", *length)
		}
		if offset+*length < end {
			end = offset + *length
		}
	}
	if end <= offset {
		return BlockPlan{Empty: true}, nil
	}

	// first: smallest i such that cum[i] <= offset < cum[i+1].
	first := sort.Search(len(blocks), func(i int) bool { return cum[i+1] > offset })
	// last: smallest i such that cum[i] < end <= cum[i+1].
	last := sort.Search(len(blocks), func(i int) bool { return cum[i+1] >= end })

	return BlockPlan{
		First:     first,
		Last:      last,
		TrimStart: offset - cum[first],
		TrimEnd:   end - cum[last],
	}, nil
}
