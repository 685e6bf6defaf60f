package dumpsys

import (
	"strings"

	"adbdesk/pkg/types"
)

// minListingFields is permissions, links, owner, group, size, date, time, name.
const minListingFields = 8

// ParseListing parses `ls -l <parent>` output. Summary lines and rows with
// fewer than eight fields are dropped silently since the format varies by shell.
//
// The name joins every field from the eighth on, so names with spaces survive,
// but the path is built from the last field only. A name such as "my file.txt"
// therefore gets a path ending in "/file.txt". Callers rely on that behaviour.
func ParseListing(parent, out string) []types.FileEntry {
	entries := []types.FileEntry{}
	base := strings.TrimRight(parent, "/")

	for _, line := range Lines(out) {
		if strings.HasPrefix(line, "total") {
			continue
		}
		fields := Fields(line)
		if len(fields) < minListingFields {
			continue
		}

		perms := fields[0]
		entries = append(entries, types.FileEntry{
			Name:        strings.Join(fields[7:], " "),
			Path:        base + "/" + fields[len(fields)-1],
			IsDir:       strings.HasPrefix(perms, "d"),
			Size:        optUint64(ParseUint64(fields[4])),
			Permissions: perms,
		})
	}
	return entries
}
