// SPDX-License-Identifier: AGPL-3.0-or-later
package projection

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bartekus/tenancy/internal/testutil/golden"
)

var routeHeaders = []string{"Domain", "Method", "URI", "Name", "Action", "Middleware"}

var routeRows = [][]string{
	{"acme.test", "GET|HEAD", "/users/{id}", "users.show", "UserController@show", "web,auth"},
	{"acme.test", "POST", "/admin/settings", "", "AdminController@update", "csrf,admin"},
}

func TestAtomicWrite(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "out", "file.txt")
	content := []byte("hello world")

	if err := AtomicWrite(target, content); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if string(got) != string(content) {
		t.Errorf("got %q, want %q", got, content)
	}
}

func TestRenderTable(t *testing.T) {
	got := RenderTable([]string{"Method", "URI"}, [][]string{{"GET|HEAD", "/"}})
	want := "| Method | URI |\n| --- | --- |\n| GET\\|HEAD | / |\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderBoxTable(t *testing.T) {
	got := RenderBoxTable(routeHeaders, routeRows, nil)
	golden.Assert(t, "routes_box", got)
}

func TestRenderBoxTable_HeaderOnly(t *testing.T) {
	got := RenderBoxTable([]string{"Method", "URI"}, nil, nil)
	want := "+--------+-----+\n| Method | URI |\n+--------+-----+\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderBoxTable_PaintKeepsAlignment(t *testing.T) {
	paint := func(s string) string { return "<" + s + ">" }
	got := RenderBoxTable([]string{"Name"}, [][]string{{"users.show"}}, paint)

	lines := strings.Split(got, "\n")
	if lines[1] != "| <Name      > |" {
		t.Errorf("header line = %q", lines[1])
	}
	if lines[3] != "| users.show |" {
		t.Errorf("row line = %q", lines[3])
	}
}

func TestRenderBoxTable_MultibyteCells(t *testing.T) {
	got := RenderBoxTable([]string{"URI"}, [][]string{{"/café"}}, nil)
	want := "+-------+\n| URI   |\n+-------+\n| /café |\n+-------+\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
