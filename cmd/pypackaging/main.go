// Pypackaging decides which parts of a Python distribution get embedded into
// a standalone binary.
//
// It evaluates a Starlark packaging policy against a YAML manifest of
// discovered resources and extension module variants, reporting which
// resources are admitted and which extension variant is chosen per group.
//
// Usage:
//
//	# Resolve a manifest against a policy for a target platform
//	pypackaging resolve --policy policy.bzl --manifest dist.yaml --target x86_64-unknown-linux-gnu
//
//	# Record the resolution in a snapshot for later diffing
//	pypackaging resolve --policy policy.bzl --manifest dist.yaml \
//	    --target x86_64-unknown-linux-gnu --lockfile packaging.lock.json
//
//	# Check a policy file for errors
//	pypackaging validate --policy policy.bzl
package main

func main() {
	Execute()
}
