package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"selectmenu/internal/domain"
)

// itemsFromArgs makes one item per argument, keyed by the argument itself
func itemsFromArgs(args []string) []domain.Item {
	items := make([]domain.Item, 0, len(args))
	for _, a := range args {
		items = append(items, domain.Item{Key: a})
	}
	return items
}

// parseItems reads one item per line. A line holds up to three tab
// separated fields: key, title and detail. Blank lines are skipped and
// a literal \n in the detail becomes a line break.
func parseItems(r io.Reader) ([]domain.Item, error) {
	var items []domain.Item
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.SplitN(line, "\t", 3)
		item := domain.Item{Key: fields[0]}
		if len(fields) > 1 {
			item.Title = fields[1]
		}
		if len(fields) > 2 {
			item.Detail = strings.ReplaceAll(fields[2], `\n`, "\n")
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read items: %w", err)
	}
	return items, nil
}

// uniqueKeys reports the first key that appears twice
func uniqueKeys(items []domain.Item) error {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if seen[it.Key] {
			return fmt.Errorf("duplicate item key %q", it.Key)
		}
		seen[it.Key] = true
	}
	return nil
}
