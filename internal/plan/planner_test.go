package plan_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"papercard/internal/plan"
	"papercard/internal/scan"
)

func TestParseSelector(t *testing.T) {
	tests := []struct {
		expr string
		max  int
		want []int
	}{
		{"1,3-5,7", 10, []int{0, 2, 3, 4, 6}},
		{"1, 3", 5, []int{0, 2}},
		{"2-2", 5, []int{1}},
		{"3,1,3", 5, []int{0, 2}},
		{"1-3,2-4", 5, []int{0, 1, 2, 3}},
	}
	for _, tc := range tests {
		got, err := plan.ParseSelector(tc.expr, tc.max)
		if err != nil {
			t.Fatalf("ParseSelector(%q) returned error: %v", tc.expr, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("ParseSelector(%q) = %v, want %v", tc.expr, got, tc.want)
		}
	}
}

func TestParseSelectorRejects(t *testing.T) {
	tests := []struct {
		expr      string
		max       int
		wantToken string
	}{
		{"0", 5, "0"},
		{"6", 5, "6"},
		{"3-2", 5, "3-2"},
		{"a", 5, "a"},
		{"1,x-3", 5, "x-3"},
		{"2-", 5, "2-"},
		{"", 5, ""},
		{"1-9", 5, "1-9"},
	}
	for _, tc := range tests {
		_, err := plan.ParseSelector(tc.expr, tc.max)
		if err == nil {
			t.Fatalf("ParseSelector(%q) should fail", tc.expr)
		}
		var selErr *plan.SelectorError
		if !errors.As(err, &selErr) {
			t.Fatalf("ParseSelector(%q) error type %T", tc.expr, err)
		}
		if tc.wantToken != "" && !strings.Contains(selErr.Error(), tc.wantToken) {
			t.Fatalf("error %q does not name token %q", selErr, tc.wantToken)
		}
	}
}

func statuses() []scan.FolderStatus {
	return []scan.FolderStatus{
		{Name: "A", Total: 2, Processed: 2, Pending: 0},
		{Name: "B", Total: 3, Processed: 1, Pending: 2},
		{Name: "C", Total: 0, Processed: 0, Pending: 0},
		{Name: "D", Total: 1, Processed: 0, Pending: 1},
	}
}

func TestAllPending(t *testing.T) {
	p := plan.AllPending(statuses())
	if !reflect.DeepEqual(p.Indices, []int{1, 3}) {
		t.Fatalf("unexpected indices: %v", p.Indices)
	}
	if p.Overwrite {
		t.Fatal("all-pending must not overwrite")
	}
}

func TestAllPendingEmpty(t *testing.T) {
	folders := []scan.FolderStatus{{Name: "A", Total: 2, Processed: 2}}
	if p := plan.AllPending(folders); !p.Empty() {
		t.Fatalf("expected empty plan, got %v", p.Indices)
	}
}

func TestAllOverwrite(t *testing.T) {
	p := plan.AllOverwrite(statuses())
	if !reflect.DeepEqual(p.Indices, []int{0, 1, 3}) {
		t.Fatalf("unexpected indices: %v", p.Indices)
	}
	if !p.Overwrite {
		t.Fatal("all-overwrite must set the overwrite flag")
	}
}

func TestHasProcessed(t *testing.T) {
	folders := statuses()
	if !plan.HasProcessed(folders, []int{0, 3}) {
		t.Fatal("expected processed detection for bucket A")
	}
	if plan.HasProcessed(folders, []int{3}) {
		t.Fatal("bucket D has no processed documents")
	}
}
