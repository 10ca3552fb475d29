package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction controls sort order.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Numeric sort keys; every other key compares as a string.
const (
	SortByPrice  = "price"
	SortBySpaces = "spaces"
)

// Project filters lessons by a case-insensitive substring match on
// subject or location, then stable-sorts by sortKey. The input slice
// is never mutated; callers get a fresh slice on every call.
func Project(lessons []Lesson, query, sortKey string, dir Direction) []Lesson {
	q := strings.ToLower(query)

	out := make([]Lesson, 0, len(lessons))
	for _, l := range lessons {
		if q == "" ||
			strings.Contains(strings.ToLower(l.Subject), q) ||
			strings.Contains(strings.ToLower(l.Location), q) {
			out = append(out, l)
		}
	}

	modifier := 1
	if dir == Descending {
		modifier = -1
	}

	switch sortKey {
	case SortByPrice:
		sort.SliceStable(out, func(i, j int) bool {
			return compareFloat(out[i].Price, out[j].Price)*modifier < 0
		})
	case SortBySpaces:
		sort.SliceStable(out, func(i, j int) bool {
			return (out[i].Spaces-out[j].Spaces)*modifier < 0
		})
	default:
		c := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool {
			a := stringField(out[i], sortKey)
			b := stringField(out[j], sortKey)
			return c.CompareString(a, b)*modifier < 0
		})
	}

	return out
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// stringField resolves a sort key to its string value. Unknown keys
// sort as the empty string.
func stringField(l Lesson, key string) string {
	switch key {
	case "subject":
		return l.Subject
	case "location":
		return l.Location
	case "id", "_id":
		return l.ID
	default:
		return ""
	}
}
