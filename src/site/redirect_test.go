package site

import (
	"errors"
	"strings"
	"testing"
)

func TestWithRedirect_InsertsBeforeHeadClose(t *testing.T) {
	page := "<html><head><title>x</title></head><body></body></html>"

	out, err := WithRedirect([]byte(page), "https://docs.example.com")
	if err != nil {
		t.Fatalf("WithRedirect: %v", err)
	}

	tag := `<meta http-equiv="refresh" content="0; url=https://docs.example.com/manual/">`
	want := "<html><head><title>x</title>" + tag + "</head><body></body></html>"
	if string(out) != want {
		t.Fatalf("mismatch:\ngot  %q\nwant %q", out, want)
	}
}

func TestWithRedirect_TrimsTrailingSlash(t *testing.T) {
	out, err := WithRedirect([]byte("</head>"), "http://localhost:8080/")
	if err != nil {
		t.Fatalf("WithRedirect: %v", err)
	}
	if !strings.Contains(string(out), "url=http://localhost:8080/manual/") {
		t.Fatalf("trailing slash not collapsed: %q", out)
	}
}

func TestWithRedirect_OtherwiseByteIdentical(t *testing.T) {
	page := "prefix\n<head>\nstuff\n</head>\nsuffix"

	out, err := WithRedirect([]byte(page), "http://localhost:8080")
	if err != nil {
		t.Fatalf("WithRedirect: %v", err)
	}

	stripped := strings.Replace(string(out),
		`<meta http-equiv="refresh" content="0; url=http://localhost:8080/manual/">`, "", 1)
	if stripped != page {
		t.Fatalf("content changed beyond the inserted tag:\ngot  %q\nwant %q", stripped, page)
	}
}

func TestWithRedirect_MissingMarkerFails(t *testing.T) {
	_, err := WithRedirect([]byte("<html><body></body></html>"), "http://localhost:8080")
	if !errors.Is(err, ErrNoHeadMarker) {
		t.Fatalf("expected ErrNoHeadMarker, got %v", err)
	}
}
