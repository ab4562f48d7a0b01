package transform

import (
	"github.com/knadh/koanf/maps"

	"github.com/PatrickMcKenzier/microbundle/pkg/core"
)

// MergeItems combines ConfigItem lists by resolved-path identity. Items
// appear in first-seen order across the concatenated inputs; when an
// identity repeats, the later options deep-merge over the earlier ones,
// later values winning on key conflicts.
func MergeItems(lists ...[]core.ConfigItem) []core.ConfigItem {
	index := make(map[string]int)
	var merged []core.ConfigItem

	for _, list := range lists {
		for _, item := range list {
			i, ok := index[item.Path]
			if !ok {
				index[item.Path] = len(merged)
				merged = append(merged, item)
				continue
			}
			merged[i] = core.ConfigItem{
				Path:    item.Path,
				Options: mergeOptions(merged[i].Options, item.Options),
			}
		}
	}
	return merged
}

// mergeOptions deep-merges over onto base without mutating either.
func mergeOptions(base, over map[string]any) map[string]any {
	if base == nil && over == nil {
		return nil
	}
	dst := maps.Copy(base)
	maps.Merge(maps.Copy(over), dst)
	return dst
}

// unionStrings unions base with extra, keeping base order and appending
// unseen extras. Extra tolerates []string and the []any produced by JSON
// decoding; non-string elements are dropped.
func unionStrings(base []string, extra any) []string {
	out := append([]string(nil), base...)
	seen := make(map[string]bool, len(out))
	for _, s := range out {
		seen[s] = true
	}

	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	switch v := extra.(type) {
	case []string:
		for _, s := range v {
			add(s)
		}
	case []any:
		for _, e := range v {
			if s, ok := e.(string); ok {
				add(s)
			}
		}
	}
	return out
}
