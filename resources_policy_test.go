package pypackaging

import (
	"errors"
	"testing"
)

func TestParseResourcesPolicy(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ResourcesPolicy
	}{
		{
			name:  "in-memory only",
			input: "in-memory-only",
			want:  ResourcesPolicy{Kind: InMemoryOnly},
		},
		{
			name:  "filesystem relative",
			input: "filesystem-relative-only:lib",
			want:  ResourcesPolicy{Kind: FilesystemRelativeOnly, Prefix: "lib"},
		},
		{
			name:  "filesystem relative empty prefix",
			input: "filesystem-relative-only:",
			want:  ResourcesPolicy{Kind: FilesystemRelativeOnly, Prefix: ""},
		},
		{
			name:  "filesystem relative prefix containing colon",
			input: "filesystem-relative-only:lib:python",
			want:  ResourcesPolicy{Kind: FilesystemRelativeOnly, Prefix: "lib:python"},
		},
		{
			name:  "prefer in-memory fallback",
			input: "prefer-in-memory-fallback-filesystem-relative:packages",
			want:  ResourcesPolicy{Kind: PreferInMemoryFallbackFilesystemRelative, Prefix: "packages"},
		},
		{
			name:  "prefer in-memory fallback empty prefix",
			input: "prefer-in-memory-fallback-filesystem-relative:",
			want:  ResourcesPolicy{Kind: PreferInMemoryFallbackFilesystemRelative, Prefix: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseResourcesPolicy(tt.input)
			if err != nil {
				t.Fatalf("ParseResourcesPolicy(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseResourcesPolicy(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseResourcesPolicy_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"bogus",
		"in-memory",
		"in-memory-only:prefix",
		"filesystem-relative-only",
		"prefer-in-memory-fallback-filesystem-relative",
	}

	for _, input := range inputs {
		_, err := ParseResourcesPolicy(input)
		if err == nil {
			t.Errorf("ParseResourcesPolicy(%q) succeeded, want error", input)
			continue
		}

		var policyErr *InvalidPolicyValueError
		if !errors.As(err, &policyErr) {
			t.Errorf("ParseResourcesPolicy(%q) error type %T, want *InvalidPolicyValueError", input, err)
			continue
		}
		if policyErr.Value != input {
			t.Errorf("error value = %q, want %q", policyErr.Value, input)
		}
	}
}

func TestResourcesPolicy_RoundTrip(t *testing.T) {
	prefixes := []string{"", "lib", "lib/python3.9", "a:b:c", "with space", "回"}

	policies := []ResourcesPolicy{{Kind: InMemoryOnly}}
	for _, prefix := range prefixes {
		policies = append(policies,
			ResourcesPolicy{Kind: FilesystemRelativeOnly, Prefix: prefix},
			ResourcesPolicy{Kind: PreferInMemoryFallbackFilesystemRelative, Prefix: prefix},
		)
	}

	for _, policy := range policies {
		text := policy.String()
		parsed, err := ParseResourcesPolicy(text)
		if err != nil {
			t.Fatalf("ParseResourcesPolicy(%q) error: %v", text, err)
		}
		if parsed != policy {
			t.Errorf("round trip of %+v via %q = %+v", policy, text, parsed)
		}
	}
}
