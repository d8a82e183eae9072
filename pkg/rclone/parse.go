package rclone

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"
)

// lsjsonItem mirrors the fields rclone's lsjson subcommand is documented to
// emit. Unknown fields are ignored by encoding/json by default.
type lsjsonItem struct {
	Name    string `json:"Name"`
	Size    int64  `json:"Size"`
	ModTime string `json:"ModTime"`
	IsDir   bool   `json:"IsDir"`
}

// parseLsjsonItems decodes an lsjson array payload into entries. path is the
// parent directory path used to build each child's full Path.
func parseLsjsonItems(data []byte, path string) ([]Entry, error) {
	var items []lsjsonItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, newError(ErrorCodeIO, "invalid lsjson payload: %s", err.Error())
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, entryFromItem(path, item))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		rankI, rankJ := dirRank(entries[i].Kind), dirRank(entries[j].Kind)
		if rankI != rankJ {
			return rankI < rankJ
		}
		return entries[i].Name < entries[j].Name
	})

	return entries, nil
}

// parseLsjsonStatItem decodes a single lsjson --stat payload item, returning
// (Entry, true) or the zero Entry and false if item is JSON null (rclone's
// way of reporting "not found").
func parseLsjsonStatItem(data []byte, path string) (Entry, bool, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return Entry{}, false, nil
	}

	var wrapper struct {
		Item *lsjsonItem `json:"item"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil && wrapper.Item != nil {
		return entryFromItem(parentOf(path), *wrapper.Item), true, nil
	}

	var item lsjsonItem
	if err := json.Unmarshal(data, &item); err != nil {
		return Entry{}, false, newError(ErrorCodeIO, "invalid lsjson stat payload: %s", err.Error())
	}
	return entryFromItem(parentOf(path), item), true, nil
}

func entryFromItem(parentPath string, item lsjsonItem) Entry {
	kind := EntryFile
	var size *int64
	if item.IsDir {
		kind = EntryDir
	} else {
		s := item.Size
		size = &s
	}
	return Entry{
		Name:         item.Name,
		Path:         joinCloudPath(parentPath, item.Name),
		Kind:         kind,
		Size:         size,
		Modified:     normalizeModTime(item.ModTime),
		Capabilities: CoreReadWrite(),
	}
}

func dirRank(kind EntryKind) int {
	if kind == EntryDir {
		return 0
	}
	return 1
}

func joinCloudPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return strings.TrimSuffix(parent, "/") + "/" + name
}

func parentOf(path string) string {
	idx := strings.LastIndexByte(path, '/')
	if idx < 0 {
		return ""
	}
	return path[:idx]
}

// normalizeModTime reformats an RFC3339 timestamp (rclone's lsjson wire
// format) to the local "YYYY-MM-DD HH:MM" display format used everywhere
// else entries are rendered, so cloud and local entries sort/filter
// consistently. Unparseable input is passed through unchanged.
func normalizeModTime(value string) string {
	if value == "" {
		return ""
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	return parsed.Local().Format("2006-01-02 15:04")
}

// parseVersionStdout extracts the version string from `rclone version`
// stdout, whose first line looks like "rclone v1.67.0".
func parseVersionStdout(stdout string) (string, bool) {
	firstLine := stdout
	if idx := strings.IndexByte(stdout, '\n'); idx >= 0 {
		firstLine = stdout[:idx]
	}
	firstLine = strings.TrimSpace(firstLine)
	const prefix = "rclone v"
	if !strings.HasPrefix(firstLine, prefix) {
		return "", false
	}
	return strings.TrimPrefix(firstLine, prefix), true
}

// parseVersionTriplet parses a "1.67.0" (optionally with a trailing
// "-betaNNNN" or similar suffix) string into a comparable triplet.
func parseVersionTriplet(version string) ([3]uint64, bool) {
	core := version
	if idx := strings.IndexAny(core, "-+"); idx >= 0 {
		core = core[:idx]
	}
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return [3]uint64{}, false
	}
	var triplet [3]uint64
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return [3]uint64{}, false
		}
		triplet[i] = n
	}
	return triplet, true
}

func versionLess(a, b [3]uint64) bool {
	for i := 0; i < 3; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
