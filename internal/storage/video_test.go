package storage_test

import (
	"strings"
	"testing"

	"combatbible/gymdesk/internal/storage"
)

func TestIsExternalURL(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"https://cdn.example.com/jab.mp4", true},
		{"http://example.com/a.mp4", true},
		{"techniques/tp1/l1/a1/x.mp4", false},
		{"ftp://example.com/a.mp4", false},
		{"https:///nohost", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := storage.IsExternalURL(tt.ref); got != tt.want {
			t.Errorf("IsExternalURL(%q) = %v, want %v", tt.ref, got, tt.want)
		}
	}
}

func TestNewVideoKey(t *testing.T) {
	a := storage.NewVideoKey("tp1", "l1", "a1", "video/mp4")
	b := storage.NewVideoKey("tp1", "l1", "a1", "video/mp4")
	if a == b {
		t.Error("keys must be unique")
	}
	if !strings.HasPrefix(a, "techniques/tp1/l1/a1/") || !strings.HasSuffix(a, ".mp4") {
		t.Errorf("key = %q", a)
	}
	if k := storage.NewVideoKey("tp1", "l2", "", "video/webm"); !strings.HasPrefix(k, "techniques/tp1/l2/") || strings.Count(k, "/") != 3 {
		t.Errorf("level key = %q", k)
	}
	if !storage.ValidVideoContentType("VIDEO/MP4") || storage.ValidVideoContentType("image/png") {
		t.Error("content type check")
	}
}
