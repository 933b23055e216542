// Package starconf loads packaging policy configuration from Starlark
// policy files.
//
// A policy file is a sequence of calls:
//
//	packaging_policy(
//	    extension_module_filter = "no-gpl",
//	    resources_policy = "prefer-in-memory-fallback-filesystem-relative:lib",
//	    include_distribution_sources = True,
//	    include_distribution_resources = False,
//	    include_test = False,
//	)
//
//	preferred_extension_module_variant(extension = "_ssl", variant = "openssl-static")
//
//	register_broken_extension(target_triple = "x86_64-pc-windows-msvc", extension = "_crypt")
//
// Parsing is strict: unknown statements, malformed attributes and invalid
// policy values are all diagnostics. A file with diagnostics is rejected as
// a whole; there is no partially applied configuration.
package starconf

import (
	"fmt"
	"os"

	"github.com/bazelbuild/buildtools/build"
	pypackaging "github.com/pyembed/go-pypackaging"
)

// ParseError is a configuration diagnostic with position information.
type ParseError struct {
	Pos     Position
	Message string
	Wrapped error
}

// Position locates a diagnostic within a policy file.
type Position struct {
	Filename string
	Line     int
	Column   int
}

func (e *ParseError) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename, e.Pos.Line, e.Pos.Column, e.Message)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Wrapped
}

// ParseResult contains the parsed policy and any diagnostics.
//
// The policy reflects every statement that parsed cleanly; callers that want
// all-or-nothing semantics should reject the result when HasErrors reports
// true (LoadFile does this).
type ParseResult struct {
	Policy *pypackaging.PackagingPolicy
	Errors []*ParseError
}

// HasErrors returns true if there were parse errors.
func (r *ParseResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// LoadFile reads a policy file and returns the configured policy, or the
// first diagnostic if the file is rejected.
func LoadFile(filename string) (*pypackaging.PackagingPolicy, error) {
	result, err := ParseFile(filename)
	if err != nil {
		return nil, err
	}
	if result.HasErrors() {
		return nil, result.Errors[0]
	}
	return result.Policy, nil
}

// ParseFile reads and parses a policy file from disk.
func ParseFile(filename string) (*ParseResult, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return ParseContent(filename, data)
}

// ParseContent parses policy file content from bytes.
func ParseContent(filename string, content []byte) (*ParseResult, error) {
	p := &parser{
		filename: filename,
		policy:   pypackaging.NewPackagingPolicy(),
	}
	return p.parse(content)
}

type parser struct {
	filename string
	policy   *pypackaging.PackagingPolicy
	errors   []*ParseError
}

func (p *parser) parse(content []byte) (*ParseResult, error) {
	raw, err := build.ParseBzl(p.filename, content)
	if err != nil {
		return nil, &ParseError{
			Pos:     Position{Filename: p.filename},
			Message: fmt.Sprintf("syntax error: %v", err),
			Wrapped: err,
		}
	}

	for _, stmt := range raw.Stmt {
		p.parseStatement(stmt)
	}

	return &ParseResult{
		Policy: p.policy,
		Errors: p.errors,
	}, nil
}

func (p *parser) parseStatement(expr build.Expr) {
	if _, ok := expr.(*build.CommentBlock); ok {
		return
	}

	call, ok := expr.(*build.CallExpr)
	if !ok {
		p.addError(p.position(expr), "unsupported statement: policy files contain only calls")
		return
	}

	pos := p.position(call)

	ident, ok := call.X.(*build.Ident)
	if !ok {
		p.addError(pos, "unsupported statement: policy files contain only calls")
		return
	}

	switch ident.Name {
	case "packaging_policy":
		p.parsePackagingPolicy(call, pos)
	case "preferred_extension_module_variant":
		p.parsePreferredVariant(call, pos)
	case "register_broken_extension":
		p.parseRegisterBrokenExtension(call, pos)
	default:
		p.addError(pos, "unknown statement %q", ident.Name)
	}
}

func (p *parser) parsePackagingPolicy(call *build.CallExpr, pos Position) {
	if value, ok := p.stringAttr(call, "extension_module_filter", pos); ok {
		filter, err := pypackaging.ParseExtensionModuleFilter(value)
		if err != nil {
			p.addWrappedError(pos, err, "packaging_policy: %v", err)
		} else {
			p.policy.SetExtensionModuleFilter(filter)
		}
	}

	if value, ok := p.stringAttr(call, "resources_policy", pos); ok {
		policy, err := pypackaging.ParseResourcesPolicy(value)
		if err != nil {
			p.addWrappedError(pos, err, "packaging_policy: %v", err)
		} else {
			p.policy.SetResourcesPolicy(policy)
		}
	}

	if value, ok := p.boolAttr(call, "include_distribution_sources", pos); ok {
		p.policy.SetIncludeDistributionSources(value)
	}
	if value, ok := p.boolAttr(call, "include_distribution_resources", pos); ok {
		p.policy.SetIncludeDistributionResources(value)
	}
	if value, ok := p.boolAttr(call, "include_test", pos); ok {
		p.policy.SetIncludeTest(value)
	}
}

func (p *parser) parsePreferredVariant(call *build.CallExpr, pos Position) {
	extension, okExt := p.stringAttr(call, "extension", pos)
	variant, okVar := p.stringAttr(call, "variant", pos)

	if !okExt || extension == "" {
		p.addError(pos, "preferred_extension_module_variant: missing required 'extension' attribute")
		return
	}
	if !okVar || variant == "" {
		p.addError(pos, "preferred_extension_module_variant: missing required 'variant' attribute")
		return
	}

	p.policy.SetPreferredVariant(extension, variant)
}

func (p *parser) parseRegisterBrokenExtension(call *build.CallExpr, pos Position) {
	targetTriple, okTriple := p.stringAttr(call, "target_triple", pos)
	extension, okExt := p.stringAttr(call, "extension", pos)

	if !okTriple || targetTriple == "" {
		p.addError(pos, "register_broken_extension: missing required 'target_triple' attribute")
		return
	}
	if !okExt || extension == "" {
		p.addError(pos, "register_broken_extension: missing required 'extension' attribute")
		return
	}

	p.policy.RegisterBrokenExtension(targetTriple, extension)
}

// Helper methods for extracting attributes

func (p *parser) position(expr build.Expr) Position {
	start, _ := expr.Span()
	return Position{
		Filename: p.filename,
		Line:     start.Line,
		Column:   start.LineRune,
	}
}

func (p *parser) addError(pos Position, format string, args ...any) {
	p.errors = append(p.errors, &ParseError{
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	})
}

func (p *parser) addWrappedError(pos Position, wrapped error, format string, args ...any) {
	p.errors = append(p.errors, &ParseError{
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
		Wrapped: wrapped,
	})
}

// stringAttr extracts a named string attribute. The second return is false
// when the attribute is absent; a present attribute of the wrong type is a
// diagnostic.
func (p *parser) stringAttr(call *build.CallExpr, name string, pos Position) (string, bool) {
	rhs, ok := findAttr(call, name)
	if !ok {
		return "", false
	}
	str, ok := rhs.(*build.StringExpr)
	if !ok {
		p.addError(pos, "attribute %q must be a string", name)
		return "", false
	}
	return str.Value, true
}

// boolAttr extracts a named True/False attribute. The second return is false
// when the attribute is absent; a present attribute of the wrong type is a
// diagnostic.
func (p *parser) boolAttr(call *build.CallExpr, name string, pos Position) (bool, bool) {
	rhs, ok := findAttr(call, name)
	if !ok {
		return false, false
	}
	ident, ok := rhs.(*build.Ident)
	if !ok || (ident.Name != "True" && ident.Name != "False") {
		p.addError(pos, "attribute %q must be True or False", name)
		return false, false
	}
	return ident.Name == "True", true
}

func findAttr(call *build.CallExpr, name string) (build.Expr, bool) {
	for _, arg := range call.List {
		if assign, ok := arg.(*build.AssignExpr); ok {
			if lhs, ok := assign.LHS.(*build.Ident); ok && lhs.Name == name {
				return assign.RHS, true
			}
		}
	}
	return nil, false
}
