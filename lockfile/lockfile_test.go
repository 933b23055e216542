package lockfile

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	pypackaging "github.com/pyembed/go-pypackaging"
)

func sampleSnapshot() *Snapshot {
	policy := pypackaging.NewPackagingPolicy()
	policy.SetExtensionModuleFilter(pypackaging.ExtensionModuleFilterNoGPL)

	extensions := []pypackaging.ExtensionModule{
		{Name: "_abc", Variant: "default"},
		{Name: "_ssl", Variant: "openssl-static"},
	}
	return FromResolution(policy, "x86_64-unknown-linux-gnu", extensions)
}

func TestFromResolution(t *testing.T) {
	s := sampleSnapshot()

	if s.Version != SnapshotVersion {
		t.Errorf("Version = %d, want %d", s.Version, SnapshotVersion)
	}
	if s.TargetTriple != "x86_64-unknown-linux-gnu" {
		t.Errorf("TargetTriple = %q", s.TargetTriple)
	}
	if s.ExtensionModuleFilter != "no-gpl" {
		t.Errorf("ExtensionModuleFilter = %q, want no-gpl", s.ExtensionModuleFilter)
	}
	if s.ResourcesPolicy != "in-memory-only" {
		t.Errorf("ResourcesPolicy = %q, want in-memory-only", s.ResourcesPolicy)
	}
	want := []Extension{{Name: "_abc", Variant: "default"}, {Name: "_ssl", Variant: "openssl-static"}}
	if !reflect.DeepEqual(s.Extensions, want) {
		t.Errorf("Extensions = %v, want %v", s.Extensions, want)
	}
}

func TestMarshal_RoundTripAndDeterminism(t *testing.T) {
	s := sampleSnapshot()

	first, err := s.Marshal()
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	second, err := s.Marshal()
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("two marshals of the same snapshot differ")
	}
	if first[len(first)-1] != '\n' {
		t.Error("marshaled snapshot missing trailing newline")
	}

	parsed, err := Parse(first)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if !reflect.DeepEqual(parsed, s) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", parsed, s)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("{")); err == nil {
		t.Error("Parse accepted malformed JSON")
	}
	if _, err := Parse([]byte(`{"version": 99}`)); err == nil {
		t.Error("Parse accepted an unsupported snapshot version")
	}
	if _, err := Parse([]byte(`{}`)); err == nil {
		t.Error("Parse accepted a snapshot without a version")
	}
}

func TestWriteFileReadFile(t *testing.T) {
	s := sampleSnapshot()
	path := filepath.Join(t.TempDir(), "pypackaging.lock")

	if err := s.WriteFile(path); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("snapshot permissions = %o, want 600", perm)
	}

	read, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if !reflect.DeepEqual(read, s) {
		t.Errorf("ReadFile mismatch:\n got %+v\nwant %+v", read, s)
	}
}

func TestWriteTo(t *testing.T) {
	s := sampleSnapshot()

	var buf bytes.Buffer
	n, err := s.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo error: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo returned %d, wrote %d", n, buf.Len())
	}
}

func TestCompare(t *testing.T) {
	old := &Snapshot{
		Version: SnapshotVersion,
		Extensions: []Extension{
			{Name: "_abc", Variant: "default"},
			{Name: "_ssl", Variant: "default"},
		},
	}
	updated := &Snapshot{
		Version: SnapshotVersion,
		Extensions: []Extension{
			{Name: "_abc", Variant: "default"},
			{Name: "_ssl", Variant: "openssl-static"},
			{Name: "zlib", Variant: "default"},
		},
	}

	diff := Compare(old, updated)
	if !diff.HasChanges() {
		t.Fatal("diff should report changes")
	}
	wantAdded := []string{"_ssl@openssl-static", "zlib@default"}
	if !reflect.DeepEqual(diff.Added, wantAdded) {
		t.Errorf("Added = %v, want %v", diff.Added, wantAdded)
	}
	wantRemoved := []string{"_ssl@default"}
	if !reflect.DeepEqual(diff.Removed, wantRemoved) {
		t.Errorf("Removed = %v, want %v", diff.Removed, wantRemoved)
	}
}

func TestCompare_IgnoresDuplicates(t *testing.T) {
	// A resolution under the "all" filter can record the same variant twice.
	// The diff treats entries as a set.
	old := &Snapshot{
		Version: SnapshotVersion,
		Extensions: []Extension{
			{Name: "_io", Variant: "default"},
			{Name: "_io", Variant: "default"},
		},
	}
	updated := &Snapshot{
		Version:    SnapshotVersion,
		Extensions: []Extension{{Name: "_io", Variant: "default"}},
	}

	if diff := Compare(old, updated); diff.HasChanges() {
		t.Errorf("diff = %+v, want no changes", diff)
	}
}

func TestCompare_Identical(t *testing.T) {
	s := sampleSnapshot()
	if diff := Compare(s, s); diff.HasChanges() {
		t.Errorf("diff of a snapshot with itself = %+v", diff)
	}
}
