// Package lockfile records the outcome of an extension module resolution as
// a JSON snapshot.
//
// Snapshots are byte-identical for identical resolutions: field order is
// fixed and extension entries keep resolution output order. Diffing two
// snapshots answers "did a policy or distribution change alter what gets
// embedded" without re-running resolution.
package lockfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	pypackaging "github.com/pyembed/go-pypackaging"
)

// SnapshotVersion is the current snapshot schema version.
const SnapshotVersion = 1

// snapshotPermissions is the file permission mode for written snapshots.
const snapshotPermissions = 0o600

// Snapshot is the recorded outcome of one resolution pass.
type Snapshot struct {
	// Version is the snapshot schema version.
	Version int `json:"version"`

	// TargetTriple is the platform the resolution was performed for.
	TargetTriple string `json:"target_triple"`

	// ExtensionModuleFilter is the canonical literal of the filter in
	// effect.
	ExtensionModuleFilter string `json:"extension_module_filter"`

	// ResourcesPolicy is the textual form of the resources policy in
	// effect.
	ResourcesPolicy string `json:"resources_policy"`

	// Extensions lists the resolved extension variants in resolution
	// output order, duplicates included.
	Extensions []Extension `json:"extensions"`
}

// Extension is one resolved extension module variant.
type Extension struct {
	Name    string `json:"name"`
	Variant string `json:"variant"`
}

// FromResolution creates a snapshot from a resolution result.
func FromResolution(policy *pypackaging.PackagingPolicy, targetTriple string, extensions []pypackaging.ExtensionModule) *Snapshot {
	s := &Snapshot{
		Version:               SnapshotVersion,
		TargetTriple:          targetTriple,
		ExtensionModuleFilter: policy.ExtensionModuleFilter().String(),
		ResourcesPolicy:       policy.ResourcesPolicy().String(),
		Extensions:            make([]Extension, 0, len(extensions)),
	}
	for _, ext := range extensions {
		s.Extensions = append(s.Extensions, Extension{
			Name:    ext.Name,
			Variant: ext.Variant,
		})
	}
	return s
}

// ReadFile reads and parses a snapshot from the given path.
func ReadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return Parse(data)
}

// Parse parses snapshot JSON data.
func Parse(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot JSON: %w", err)
	}
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", s.Version)
	}
	return &s, nil
}

// Marshal serializes the snapshot with deterministic formatting.
func (s *Snapshot) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteFile writes the snapshot to the given path.
func (s *Snapshot) WriteFile(path string) error {
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, snapshotPermissions)
}

// WriteTo writes the snapshot to the given writer.
func (s *Snapshot) WriteTo(w io.Writer) (int64, error) {
	data, err := s.Marshal()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// Diff describes the difference between two snapshots.
type Diff struct {
	// Added contains name@variant entries present in the new snapshot only.
	Added []string

	// Removed contains name@variant entries present in the old snapshot
	// only.
	Removed []string
}

// HasChanges reports whether the diff is non-empty.
func (d *Diff) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0
}

// Compare returns the entries that differ between two snapshots. Entries
// are compared as name@variant sets; duplicate entries in one snapshot
// count once.
func Compare(old, updated *Snapshot) *Diff {
	oldSet := entrySet(old)
	newSet := entrySet(updated)

	diff := &Diff{}
	for _, ext := range updated.Extensions {
		key := ext.Name + "@" + ext.Variant
		if _, ok := oldSet[key]; !ok && !contains(diff.Added, key) {
			diff.Added = append(diff.Added, key)
		}
	}
	for _, ext := range old.Extensions {
		key := ext.Name + "@" + ext.Variant
		if _, ok := newSet[key]; !ok && !contains(diff.Removed, key) {
			diff.Removed = append(diff.Removed, key)
		}
	}
	return diff
}

func entrySet(s *Snapshot) map[string]struct{} {
	set := make(map[string]struct{}, len(s.Extensions))
	for _, ext := range s.Extensions {
		set[ext.Name+"@"+ext.Variant] = struct{}{}
	}
	return set
}

func contains(entries []string, key string) bool {
	for _, e := range entries {
		if e == key {
			return true
		}
	}
	return false
}
