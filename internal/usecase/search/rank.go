package search

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"direct-admission/internal/domain/entity"
)

// Rank returns a copy of items ordered by mode. The sort is stable and
// the input slice is left untouched. Unknown modes return the items in
// their original order.
//
// For the fee orderings a college has no fee and always sorts after every
// course, in both directions.
func Rank(items []entity.ResultItem, mode SortMode) []entity.ResultItem {
	out := make([]entity.ResultItem, len(items))
	copy(out, items)

	var less func(a, b entity.ResultItem) bool
	switch mode {
	case SortFeesLow:
		less = feeLess(func(x, y int64) bool { return x < y })
	case SortFeesHigh:
		less = feeLess(func(x, y int64) bool { return x > y })
	case SortAlphaAsc, SortAlphaDesc:
		// collate.Collator is not safe for concurrent use
		col := collate.New(language.English)
		if mode == SortAlphaAsc {
			less = func(a, b entity.ResultItem) bool { return col.CompareString(a.Name(), b.Name()) < 0 }
		} else {
			less = func(a, b entity.ResultItem) bool { return col.CompareString(a.Name(), b.Name()) > 0 }
		}
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func feeLess(cmp func(x, y int64) bool) func(a, b entity.ResultItem) bool {
	return func(a, b entity.ResultItem) bool {
		ac, bc := a.IsCourse(), b.IsCourse()
		switch {
		case ac && bc:
			return cmp(a.Course.Fees, b.Course.Fees)
		case ac:
			return true
		default:
			return false
		}
	}
}
