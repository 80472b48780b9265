// Package plan turns a user intent into a concrete processing plan: which
// bucket indices to run, and whether existing artifacts are overwritten.
package plan

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"papercard/internal/scan"
)

// Plan is an ordered set of 0-based bucket indices plus the overwrite flag
// that applies to every selected bucket.
type Plan struct {
	Indices   []int
	Overwrite bool
}

// Empty reports whether the plan selects no buckets. Callers must treat an
// empty plan as "nothing to do" and stop rather than start a run.
func (p Plan) Empty() bool {
	return len(p.Indices) == 0
}

// SelectorError describes a malformed selector token. The whole selector is
// rejected; no partial application happens.
type SelectorError struct {
	Token  string
	Reason string
}

func (e *SelectorError) Error() string {
	return fmt.Sprintf("invalid selector token %q: %s", e.Token, e.Reason)
}

// AllPending selects every bucket with pending documents, never
// overwriting.
func AllPending(folders []scan.FolderStatus) Plan {
	var indices []int
	for i, folder := range folders {
		if folder.Pending > 0 {
			indices = append(indices, i)
		}
	}
	return Plan{Indices: indices}
}

// AllOverwrite selects every non-empty bucket for a full re-run. Callers
// must obtain an explicit confirmation before acting on this plan.
func AllOverwrite(folders []scan.FolderStatus) Plan {
	var indices []int
	for i, folder := range folders {
		if folder.Total > 0 {
			indices = append(indices, i)
		}
	}
	return Plan{Indices: indices, Overwrite: true}
}

// Subset builds a plan from explicitly selected indices. The overwrite
// choice applies to the entire subset; it is never decided per document.
func Subset(indices []int, overwrite bool) Plan {
	return Plan{Indices: indices, Overwrite: overwrite}
}

// HasProcessed reports whether any selected bucket already has processed
// documents, in which case the caller must ask for the subset-wide
// skip-or-overwrite choice.
func HasProcessed(folders []scan.FolderStatus, indices []int) bool {
	for _, i := range indices {
		if i >= 0 && i < len(folders) && folders[i].Processed > 0 {
			return true
		}
	}
	return false
}

// ParseSelector parses a selector expression against max buckets.
//
// Grammar: comma-separated tokens, each a 1-based integer ("3") or an
// inclusive range ("2-5" with a <= b, both within [1, max]). Whitespace is
// ignored, duplicates collapse, and the result is a sorted slice of
// 0-based indices. Any malformed token rejects the whole selector.
func ParseSelector(expr string, max int) ([]int, error) {
	cleaned := strings.ReplaceAll(expr, " ", "")
	if cleaned == "" {
		return nil, &SelectorError{Token: expr, Reason: "empty selector"}
	}

	selected := map[int]struct{}{}
	for _, token := range strings.Split(cleaned, ",") {
		if token == "" {
			continue
		}
		if strings.Contains(token, "-") {
			if err := parseRange(token, max, selected); err != nil {
				return nil, err
			}
			continue
		}
		value, err := parseBound(token, token, max)
		if err != nil {
			return nil, err
		}
		selected[value-1] = struct{}{}
	}

	if len(selected) == 0 {
		return nil, &SelectorError{Token: expr, Reason: "empty selector"}
	}

	indices := make([]int, 0, len(selected))
	for index := range selected {
		indices = append(indices, index)
	}
	sort.Ints(indices)
	return indices, nil
}

func parseRange(token string, max int, selected map[int]struct{}) error {
	bounds := strings.SplitN(token, "-", 2)
	if len(bounds) != 2 || bounds[0] == "" || bounds[1] == "" {
		return &SelectorError{Token: token, Reason: "range must look like a-b"}
	}
	start, err := parseBound(bounds[0], token, max)
	if err != nil {
		return err
	}
	end, err := parseBound(bounds[1], token, max)
	if err != nil {
		return err
	}
	if start > end {
		return &SelectorError{Token: token, Reason: "range is reversed"}
	}
	for i := start; i <= end; i++ {
		selected[i-1] = struct{}{}
	}
	return nil
}

func parseBound(value, token string, max int) (int, error) {
	number, err := strconv.Atoi(value)
	if err != nil {
		return 0, &SelectorError{Token: token, Reason: "not a number"}
	}
	if number < 1 || number > max {
		return 0, &SelectorError{Token: token, Reason: fmt.Sprintf("out of range 1-%d", max)}
	}
	return number, nil
}
