// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rangespec handles page-range expressions such as "1-3,5-7".
//
// The client only gates on completeness; the remote service owns the grammar
// and the page bounds. Parse mirrors the service grammar so callers can warn
// early, but a Parse error must never block a submission.
package rangespec

import (
	"fmt"
	"strconv"
	"strings"
)

// PageRange is an inclusive, 1-based range of pages.
type PageRange struct {
	Start int
	End   int
}

// String renders the range as "start-end".
func (r PageRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Pages returns the number of pages covered.
func (r PageRange) Pages() int {
	return r.End - r.Start + 1
}

// IsPresentAndNonBlank reports whether text has any non-whitespace characters.
func IsPresentAndNonBlank(text string) bool {
	return strings.TrimSpace(text) != ""
}

// Serialize returns the expression as sent on the wire, unchanged.
func Serialize(text string) string {
	return text
}

// Parse splits a range expression into page ranges. Each comma-separated
// item is either a page number or "start-end" with 1 ≤ start ≤ end.
func Parse(text string) ([]PageRange, error) {
	if !IsPresentAndNonBlank(text) {
		return nil, fmt.Errorf("range expression is empty")
	}

	var ranges []PageRange
	for _, item := range strings.Split(text, ",") {
		item = strings.TrimSpace(item)
		r, err := parseItem(item)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}

func parseItem(item string) (PageRange, error) {
	startStr, endStr, isRange := strings.Cut(item, "-")
	if !isRange {
		endStr = startStr
	}

	start, err := strconv.Atoi(strings.TrimSpace(startStr))
	if err != nil {
		return PageRange{}, fmt.Errorf("cannot parse range %q", item)
	}
	end, err := strconv.Atoi(strings.TrimSpace(endStr))
	if err != nil {
		return PageRange{}, fmt.Errorf("cannot parse range %q", item)
	}
	if start < 1 || start > end {
		return PageRange{}, fmt.Errorf("invalid page range %q", item)
	}
	return PageRange{Start: start, End: end}, nil
}
