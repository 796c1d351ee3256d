package faculty

import (
	"bytes"
	"testing"
	"time"
)

func TestBuildDirectoryPDF(t *testing.T) {
	rows := []*Faculty{
		{ID: 2, Name: "Zed", Department: "Math", Email: "z@u.edu"},
		{ID: 1, Name: "Ada", Department: "CS", Email: "ada@u.edu"},
	}
	pdf, err := BuildDirectoryPDF(rows, time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("BuildDirectoryPDF: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF document")
	}
	if rows[0].ID != 2 {
		t.Fatalf("input slice must not be reordered")
	}

	empty, err := BuildDirectoryPDF(nil, time.Now())
	if err != nil || len(empty) == 0 {
		t.Fatalf("empty directory should still render, err=%v", err)
	}
}
