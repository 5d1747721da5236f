package ui

import (
	"strings"
	"testing"
)

// TestIndexHTMLEmbedded verifies that the index.html is embedded and wired to the API.
func TestIndexHTMLEmbedded(t *testing.T) {
	if len(IndexHTML) == 0 {
		t.Fatal("IndexHTML should not be empty")
	}

	html := string(IndexHTML)

	if !strings.HasPrefix(html, "<!DOCTYPE html>") {
		t.Error("IndexHTML should start with DOCTYPE declaration")
	}

	for _, endpoint := range []string{"/get-info", "/download"} {
		if !strings.Contains(html, endpoint) {
			t.Errorf("IndexHTML should call %s", endpoint)
		}
	}
}
