package hsd

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Segment file names embed the segment index and the segment count, e.g.
// HS_H09_20250321_0810_B13_FLDK_R20_S0410.DAT is segment 4 of 10.
var (
	segmentToken    = regexp.MustCompile(`_S(\d{2})10`)
	segmentTemplate = regexp.MustCompile(`_S\d{4}`)
)

// SegmentIndex extracts the segment index from a tile path. ok is false
// when the path carries no segment token, meaning the file is a complete
// single-tile scene.
func SegmentIndex(path string) (int, bool) {
	m := segmentToken.FindStringSubmatch(path)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 || n > segmentCount {
		return 0, false
	}
	return n, true
}

// SceneMembers lists the sibling segment paths of the scene path belongs
// to, in ascending segment order. Only files that exist are returned; a
// candidate ending in .bz2 is also accepted in its already-extracted form
// under the same base name. The result is empty when path has no segment
// token.
//
// This is a pure path transformation plus existence checks; a different
// naming convention only needs a replacement for this function, not for
// Merge.
func SceneMembers(path string) []string {
	if _, ok := SegmentIndex(path); !ok {
		return nil
	}

	var members []string
	for i := 1; i <= segmentCount; i++ {
		candidate := segmentTemplate.ReplaceAllString(path, fmt.Sprintf("_S%02d10", i))
		if fileExists(candidate) {
			members = append(members, candidate)
			continue
		}
		if extracted, ok := strings.CutSuffix(candidate, ".bz2"); ok && fileExists(extracted) {
			members = append(members, extracted)
		}
	}
	return members
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Merge stacks tiles vertically, in the order given, into a single raster.
// Callers pass segments in ascending index order so the first row of
// tiles[0] becomes the first row of the result.
//
// All non-geometric metadata is copied from tiles[0]; segments of one scene
// are assumed radiometrically identical and this is deliberately not
// verified (matching the upstream tooling, which would silently ignore a
// mismatched sibling's constants).
func Merge(tiles []*Tile) (*Tile, error) {
	if len(tiles) == 0 {
		return nil, fmt.Errorf("%w: no segments to merge", ErrMalformedHeader)
	}
	if len(tiles) == 1 {
		return tiles[0], nil
	}

	width := tiles[0].Width
	height := 0
	samples := 0
	for i, t := range tiles {
		if t.Width != width {
			return nil, fmt.Errorf("%w: segment %d is %d wide, want %d", ErrWidthMismatch, i+1, t.Width, width)
		}
		height += t.Height
		samples += len(t.Data)
	}

	merged := *tiles[0]
	merged.Height = height
	merged.Temp = nil
	merged.Data = make([]uint16, 0, samples)
	for _, t := range tiles {
		merged.Data = append(merged.Data, t.Data...)
	}

	return &merged, nil
}

// ReadScene decodes the tile at path and, when the path carries a segment
// token, merges in every sibling segment that can be found. A scene whose
// remaining segments are absent degrades to the single decoded tile; that
// is the expected state when only part of a scene has been downloaded.
func ReadScene(path string) (*Tile, error) {
	members := SceneMembers(path)
	switch len(members) {
	case 0:
		return Open(path)
	case 1:
		// Discovery may have resolved path to its extracted form.
		return Open(members[0])
	}

	tiles := make([]*Tile, len(members))
	for i, member := range members {
		t, err := Open(member)
		if err != nil {
			return nil, err
		}
		tiles[i] = t
	}

	return Merge(tiles)
}
