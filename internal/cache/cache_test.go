package cache

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFilingKey(t *testing.T) {
	a := FilingKey("1234567", "0001193125-26-000001")
	b := FilingKey("1234567", "000119312526000001")
	if a != b {
		t.Errorf("dashed and bare accessions must share a key: %q vs %q", a, b)
	}
	if a != "catalyst:v1:filing:1234567:000119312526000001" {
		t.Errorf("key = %q", a)
	}
}

func TestURLKey(t *testing.T) {
	a := URLKey("https://example.test/a")
	b := URLKey("https://example.test/b")
	if a == b {
		t.Error("distinct URLs must hash differently")
	}
	if !strings.HasPrefix(a, "catalyst:v1:url:") {
		t.Errorf("key = %q", a)
	}
}

func TestMemoryCacheDefaultTTL(t *testing.T) {
	mem := NewMemoryCache(time.Millisecond, time.Minute)
	if err := mem.Set("k", []byte("filing text"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, ok := mem.Get("k"); ok {
		t.Error("a zero TTL must fall back to the cache default")
	}

	if err := mem.Set("k", []byte("filing text"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got, ok := mem.Get("k"); !ok || string(got) != "filing text" {
		t.Errorf("explicit TTL entry missing: ok=%v data=%q", ok, got)
	}
}

func TestLayeredPromotesToMemory(t *testing.T) {
	mem := NewMemoryCache(time.Hour, time.Hour)
	disk := NewDiskCache(filepath.Join(t.TempDir(), "cache"), time.Hour)
	layered := &LayeredCache{memory: mem, disk: disk}

	key := FilingKey("1234567", "acc")
	if err := layered.Set(key, []byte("filing text"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// Drop the memory layer; a read should fall through to disk and
	// repopulate memory.
	if err := mem.Clear(); err != nil {
		t.Fatal(err)
	}
	got, ok := layered.Get(key)
	if !ok || string(got) != "filing text" {
		t.Fatalf("disk fallthrough failed: ok=%v data=%q", ok, got)
	}
	if _, ok := mem.Get(key); !ok {
		t.Error("disk hits should be promoted back into memory")
	}
}

func TestDiskCacheExpiry(t *testing.T) {
	disk := NewDiskCache(filepath.Join(t.TempDir(), "cache"), time.Hour)
	key := FilingKey("1234567", "acc")
	if err := disk.Set(key, []byte("x"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, ok := disk.Get(key); ok {
		t.Error("expired entries must not be served")
	}
}
