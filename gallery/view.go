package gallery

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

type SortMode string

const (
	SortNewest SortMode = "newest"
	SortOldest SortMode = "oldest"
	SortName   SortMode = "name"
)

func ParseSortMode(s string) (SortMode, error) {
	switch mode := SortMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case SortNewest, SortOldest, SortName:
		return mode, nil
	case "":
		return SortNewest, nil
	default:
		return "", fmt.Errorf("unknown sort mode %q (use newest, oldest or name)", s)
	}
}

// State is the full in-memory gallery plus the current controls.
type State struct {
	Items  []Item
	Sort   SortMode
	Filter string
}

// View is what gets painted.
type View struct {
	Items []Item
	Count int
}

func (v View) CountLabel() string {
	if v.Count == 1 {
		return "1 photo"
	}
	return fmt.Sprintf("%d photos", v.Count)
}

// Project sorts then filters a copy of the state's items. The state is never modified.
func Project(state State) View {
	items := FilterItems(SortItems(state.Items, state.Sort), state.Filter)
	return View{Items: items, Count: len(items)}
}

// SortItems returns a sorted copy. Sorting is stable; name order compares contributor
// names case-insensitively so empty names come first. Unknown modes keep the order.
func SortItems(items []Item, mode SortMode) []Item {
	out := slices.Clone(items)
	if out == nil {
		out = []Item{}
	}
	switch mode {
	case SortNewest:
		slices.SortStableFunc(out, func(a, b Item) int { return b.Timestamp.Compare(a.Timestamp) })
	case SortOldest:
		slices.SortStableFunc(out, func(a, b Item) int { return a.Timestamp.Compare(b.Timestamp) })
	case SortName:
		slices.SortStableFunc(out, func(a, b Item) int {
			return cmp.Compare(strings.ToLower(a.Meta.Name), strings.ToLower(b.Meta.Name))
		})
	}
	return out
}

// FilterItems keeps items whose contributor name contains term, ignoring case.
func FilterItems(items []Item, term string) []Item {
	term = strings.ToLower(term)
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Meta.Name), term) {
			out = append(out, item)
		}
	}
	return out
}
