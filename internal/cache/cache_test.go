package cache

import (
	"path/filepath"
	"testing"
)

func openTestCache(t *testing.T) *PageCache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "pages.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestPageCache_PutGet(t *testing.T) {
	c := openTestCache(t)

	url := "https://docs.example.com/page"
	if err := c.Put(url, []byte("<html>hello</html>")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	body, ok := c.Get(url)
	if !ok {
		t.Fatal("Get() = miss, want hit")
	}
	if string(body) != "<html>hello</html>" {
		t.Errorf("Get() = %q", body)
	}
}

func TestPageCache_Miss(t *testing.T) {
	c := openTestCache(t)

	if _, ok := c.Get("https://docs.example.com/missing"); ok {
		t.Error("Get() = hit for unknown URL, want miss")
	}
}

func TestPageCache_Overwrite(t *testing.T) {
	c := openTestCache(t)

	url := "https://docs.example.com/page"
	if err := c.Put(url, []byte("v1")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := c.Put(url, []byte("v2")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	body, _ := c.Get(url)
	if string(body) != "v2" {
		t.Errorf("Get() = %q, want %q", body, "v2")
	}
}
