package rclone

import (
	"context"
	"strings"
)

// listRemotesLongItem mirrors one entry of `rclone listremotes --long`'s
// JSON-ish output; rclone's --long form is actually plain text
// ("name:\ttype\n" per line), so this is parsed by line, not by JSON
// unmarshal (see ListRemotes below).
type listRemotesLongItem struct {
	Name string
	Type string
}

// ListRemotes returns every configured remote.
func (b *Broker) ListRemotes(ctx context.Context) ([]Remote, error) {
	stdout, err := b.run(ctx, "listremotes", "--long")
	if err != nil {
		return nil, err
	}

	items := parseListRemotesLong(stdout)
	remotes := make([]Remote, 0, len(items))
	for _, item := range items {
		remotes = append(remotes, Remote{
			ID:           item.Name,
			Label:        item.Name,
			Provider:     item.Type,
			RootPath:     item.Name + ":",
			Capabilities: CoreReadWrite(),
		})
	}
	return remotes, nil
}

// parseListRemotesLong parses `rclone listremotes --long` output, where
// each line is "name:\ttype" (the trailing colon on the name is part of
// rclone's own remote-name wire form and is stripped here).
func parseListRemotesLong(stdout string) []listRemotesLongItem {
	var items []listRemotesLongItem
	for _, line := range strings.Split(stdout, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		name := strings.TrimSuffix(fields[0], ":")
		items = append(items, listRemotesLongItem{Name: name, Type: fields[1]})
	}
	return items
}
