package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintFolderStatusTotalsRow(t *testing.T) {
	var out bytes.Buffer
	printFolderStatus(&out, planFolders(), nil, 0)

	// alpha 3/3/0, beta 2/0/2, gamma 1/1/0 sum to 6/4/2.
	var footer string
	for _, line := range strings.Split(out.String(), "\n") {
		if strings.Contains(line, "TOTAL") && strings.Contains(line, "6") {
			footer = line
			break
		}
	}
	if footer == "" {
		t.Fatalf("no totals row in status table:\n%s", out.String())
	}
	for _, want := range []string{"6", "4", "2"} {
		if !strings.Contains(footer, want) {
			t.Fatalf("totals row missing %q: %q", want, footer)
		}
	}
}

func TestPrintFolderStatusStrayWarning(t *testing.T) {
	var out bytes.Buffer
	strays := []string{"/inbox/a.pdf", "/inbox/b.pdf", "/inbox/c.pdf", "/inbox/d.pdf", "/inbox/e.pdf", "/inbox/f.pdf"}
	printFolderStatus(&out, planFolders(), strays, 1)

	text := out.String()
	if !strings.Contains(text, "6 document(s) sit outside any bucket") {
		t.Fatalf("missing stray warning:\n%s", text)
	}
	if !strings.Contains(text, "... and 1 more") {
		t.Fatalf("stray list should cap at five entries:\n%s", text)
	}
	if !strings.Contains(text, "1 catalog bucket(s) contain no documents yet.") {
		t.Fatalf("missing empty-bucket hint:\n%s", text)
	}
}
