package sync

import (
	"fmt"
	"strings"
	"time"
)

// commitBody builds the structured body paragraph appended to the fixed
// commit subject: where the content came from, when, and what changed.
func commitBody(source, diffstat string, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Source: %s\n", source)
	fmt.Fprintf(&b, "Timestamp: %s\n", now.UTC().Format(time.RFC3339))
	if diffstat != "" {
		fmt.Fprintf(&b, "Diff: %s\n", diffstat)
	}
	return strings.TrimRight(b.String(), "\n")
}
