package story

import (
	"fmt"

	"lullaby/pkg/schema"
)

// Progress is the position of an interactive story. The server keeps no
// session: the app sends back the segmentCount it last received and the
// whole progression is derived from that number.
type Progress struct {
	Current int
	Final   bool
}

// OpeningProgress is the position before the first segment is written.
func OpeningProgress() Progress {
	return Progress{}
}

// ProgressFrom normalizes a caller supplied counter. Absent or non-positive
// counters mean the first continuation.
func ProgressFrom(segmentCount int) Progress {
	if segmentCount < 1 {
		segmentCount = 1
	}
	return Progress{Current: segmentCount, Final: segmentCount >= MaxSegments}
}

// Next is the counter the app must send with its next continuation.
func (p Progress) Next() int {
	return p.Current + 1
}

// Enforce overrides what the model claimed about the end of the story with
// what the counter says. A non-final segment without choices is rejected.
func (p Progress) Enforce(seg schema.Segment) (schema.Segment, error) {
	if p.Final {
		seg.IsFinal = true
		seg.Choices = []string{}
	} else {
		seg.IsFinal = false
		if len(seg.Choices) == 0 {
			return schema.Segment{}, fmt.Errorf("%w: non-final segment %d has no choices", ErrContractViolation, p.Current)
		}
	}
	seg.SegmentCount = p.Next()
	return seg, nil
}
