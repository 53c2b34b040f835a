package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"

	"pydeps/internal/output"
)

func TestSnapshot_EncodeIdempotent(t *testing.T) {
	result := fixtureResult()
	cycles := [][]string{{"pkg.a", "pkg.b"}}

	first, err := BuildSnapshot(result, cycles).Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	second, err := BuildSnapshot(result, cycles).Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Distinct scan ids, identical payload
	if bytes.Equal(first, second) {
		t.Error("provenance should differ between snapshots")
	}
	same, reason := output.CompareSnapshots(first, second)
	if !same {
		t.Errorf("normalized snapshots differ: %s", reason)
	}
}

func TestSnapshot_Shape(t *testing.T) {
	snap := BuildSnapshot(fixtureResult(), nil)
	data, err := snap.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	s := string(data)
	for _, key := range []string{`"modules"`, `"cycles"`, `"provenance"`, `"rawImports"`, `"internalImports"`, `"externalImports"`} {
		if !strings.Contains(s, key) {
			t.Errorf("snapshot missing %s:\n%s", key, s)
		}
	}
	if !strings.Contains(s, `"cycles": []`) {
		t.Errorf("nil cycles not encoded as empty list:\n%s", s)
	}
}

func TestWriteFile_Compressed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deps.json.zst")
	payload := []byte(`{"modules":{},"cycles":[]}`)

	if err := WriteFile(path, payload, true); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	r, err := zstd.NewReader(f)
	if err != nil {
		t.Fatalf("zstd.NewReader: %v", err)
	}
	defer r.Close()

	var out bytes.Buffer
	if _, err := out.ReadFrom(r); err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if !bytes.Equal(out.Bytes(), payload) {
		t.Errorf("roundtrip = %q, want %q", out.Bytes(), payload)
	}
}

func TestWriteFile_Plain(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deps.json")
	payload := []byte(`{"modules":{}}`)

	if err := WriteFile(path, payload, false); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("file = %q, want %q", got, payload)
	}
}
