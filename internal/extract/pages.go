package extract

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"pdfworker/internal/domain"
)

// ParsePageRange parses a page-selection string like "1,3,5-10" into a sorted
// list of unique 1-indexed page numbers. A range with start > end is a
// validation error. Page numbers beyond the document are not an error here;
// they are silently skipped during processing.
func ParsePageRange(s string) ([]int, error) {
	pages := make(map[int]struct{})

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)

		if strings.Contains(part, "-") {
			bounds := strings.SplitN(part, "-", 2)
			start, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
			if err != nil {
				return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPageRange, part)
			}
			end, err := strconv.Atoi(strings.TrimSpace(bounds[1]))
			if err != nil {
				return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPageRange, part)
			}
			if start > end {
				return nil, fmt.Errorf("%w: %q (start > end)", domain.ErrInvalidPageRange, part)
			}
			for p := start; p <= end; p++ {
				pages[p] = struct{}{}
			}
			continue
		}

		p, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPageRange, part)
		}
		pages[p] = struct{}{}
	}

	out := make([]int, 0, len(pages))
	for p := range pages {
		out = append(out, p)
	}
	sort.Ints(out)
	return out, nil
}
