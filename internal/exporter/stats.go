package exporter

import (
	"fmt"
	"io"
	"sort"

	"exprsplit/internal/types"
)

func DisplayStats(stats types.TokenStats, writer io.Writer) {
	type kindCount struct {
		Kind  types.TokenKind
		Count int
	}

	var kindCounts []kindCount

	fmt.Fprintln(writer, "=== Token Statistics ===")
	fmt.Fprintf(writer, "  Input size: %d bytes\n", stats.InputSize)
	fmt.Fprintf(writer, "  Segments: %d (%d empty)\n", stats.SegmentCount, stats.EmptySegments)
	fmt.Fprintf(writer, "  Total tokens: %d\n", stats.TotalTokens)

	fmt.Fprintln(writer, "\n--- Tokens by Kind")

	for k, count := range stats.TokensByKind {
		kindCounts = append(kindCounts, kindCount{k, count})
	}
	sort.Slice(kindCounts, func(i, j int) bool {
		if kindCounts[i].Count == kindCounts[j].Count {
			return kindCounts[i].Kind < kindCounts[j].Kind
		}
		return kindCounts[i].Count > kindCounts[j].Count
	})

	for _, kc := range kindCounts {
		percentage := float64(kc.Count) / float64(stats.TotalTokens) * 100
		fmt.Fprintf(writer, "  %-30s:  %5d (%.1f%%)\n", kc.Kind.String(), kc.Count, percentage)
	}

	if len(stats.Symbols) > 0 {
		fmt.Fprintln(writer, "\n--- Most Used Symbols")
		displayTopN(writer, stats.Symbols, 10)
	}

	if len(stats.Identifiers) > 0 {
		fmt.Fprintln(writer, "\n--- Most Used Identifiers")
		displayTopN(writer, stats.Identifiers, 10)
	}

	if len(stats.Numbers) > 0 {
		fmt.Fprintln(writer, "\n--- Numeric Literals")
		displayTopN(writer, stats.Numbers, 10)
	}
}

func displayTopN(writer io.Writer, data map[string]int, n int) {
	type entry struct {
		Key   string
		Count int
	}

	var entries []entry
	for k, v := range data {
		entries = append(entries, entry{k, v})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count == entries[j].Count {
			return entries[i].Key < entries[j].Key
		}
		return entries[i].Count > entries[j].Count
	})

	for i, e := range entries {
		if i >= n {
			break
		}
		fmt.Fprintf(writer, "  %-30s: %5d\n", truncate(e.Key, 30), e.Count)
	}
}
