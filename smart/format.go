package smart

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// reCapacitySeparators matches every character smartctl (or a non-English
// Windows locale) might use as a thousands separator inside a byte count:
// space, apostrophe, comma, period, U+00A0 (NBSP), and U+00C2 (the stray
// lead byte a mis-decoded NBSP sometimes shows up as).
var reCapacitySeparators = regexp.MustCompile(`[ '.,\x{00A0}\x{00C2}]`)

var reBracketSuffix = regexp.MustCompile(`\s*\[.*\]\s*$`)

var reTrailingBytesWord = regexp.MustCompile(`(?i)\s*bytes\s*$`)

// formatSize renders a byte count the way smartctl's own "User Capacity"
// line does: a decimal (SI) figure followed by the binary (IEC) figure and
// the exact byte count, e.g. "1.0 TB [932 GiB, 1000204886016 bytes]". The
// decimal/binary scaling and unit suffixes are delegated to go-humanize,
// the §6.4 byte-size-formatter collaborator's concrete implementation.
func formatSize(bytes uint64) string {
	return fmt.Sprintf("%s [%s, %d bytes]", humanize.Bytes(bytes), humanize.IBytes(bytes), bytes)
}

// parseUserCapacity parses smartctl's "User Capacity" value, which carries
// a thousands-separated byte count followed by an optional bracketed
// human-readable restatement smartctl already computed itself (which we
// discard and recompute via formatSize for a stable displayable string).
func parseUserCapacity(value string) (bytesOut int64, display string) {
	stripped := reBracketSuffix.ReplaceAllString(value, "")
	stripped = reTrailingBytesWord.ReplaceAllString(stripped, "")
	digits := reCapacitySeparators.ReplaceAllString(stripped, "")
	digits = strings.TrimSpace(digits)

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, value
	}
	return n, formatSize(uint64(n))
}

var reFirstInt = regexp.MustCompile(`-?\d+`)

// firstInt extracts the first integer literal found in s, returning 0 if
// none is present. Used for fields like "Rotation Rate: 7200 rpm" where the
// leading number is the value of interest.
func firstInt(s string) int64 {
	m := reFirstInt.FindString(s)
	if m == "" {
		return 0
	}
	n, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
