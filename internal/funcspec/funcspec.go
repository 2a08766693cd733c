// Package funcspec provides shared method specification parsing and matching.
package funcspec

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/mpyw/concmut/internal/tree"
)

// ErrInvalidSpec is returned for specifications without a type and method.
var ErrInvalidSpec = errors.New("invalid method specification")

// ConstructorName is the method name that denotes a constructor.
const ConstructorName = "new"

// Spec holds parsed components of a method specification.
// Format: "pkg.Type.method" or "pkg.Type.new" for constructors.
type Spec struct {
	Namespace string
	TypeName  string
	FuncName  string
}

// Parse parses a single specification string into components.
// Type names are recognized by their leading upper-case letter.
func Parse(s string) Spec {
	spec := Spec{}

	lastDot := strings.LastIndex(s, ".")
	if lastDot == -1 {
		spec.FuncName = s

		return spec
	}

	spec.FuncName = s[lastDot+1:]
	prefix := s[:lastDot]

	secondLastDot := strings.LastIndex(prefix, ".")
	possibleType := prefix[secondLastDot+1:]
	if len(possibleType) > 0 && unicode.IsUpper(rune(possibleType[0])) {
		spec.TypeName = possibleType
		if secondLastDot != -1 {
			spec.Namespace = prefix[:secondLastDot]
		}

		return spec
	}

	spec.Namespace = prefix

	return spec
}

// ForType returns a spec naming the type qname and no method.
func ForType(qname string) Spec {
	namespace, name := tree.SplitQualified(qname)
	return Spec{Namespace: namespace, TypeName: name}
}

// ParseList parses a comma-separated list of specifications. Every entry
// must name a type and a method.
func ParseList(s string) ([]Spec, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	specs := make([]Spec, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		spec := Parse(part)
		if spec.TypeName == "" || spec.FuncName == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSpec, part)
		}
		specs = append(specs, spec)
	}

	return specs, nil
}

// IsConstructor reports whether the spec names a constructor.
func (s Spec) IsConstructor() bool {
	return s.FuncName == ConstructorName
}

// TypeQualifiedName returns "pkg.Type".
func (s Spec) TypeQualifiedName() string {
	if s.Namespace == "" {
		return s.TypeName
	}
	return s.Namespace + "." + s.TypeName
}

// FullName returns a human-readable name, e.g. "ExecutorService.submit".
func (s Spec) FullName() string {
	if s.TypeName == "" {
		return s.FuncName
	}
	return s.TypeName + "." + s.FuncName
}

// String returns the spec in its parseable form.
func (s Spec) String() string {
	if s.FuncName == "" {
		return s.TypeQualifiedName()
	}
	return s.TypeQualifiedName() + "." + s.FuncName
}

// Matches checks if a resolved method symbol is declared by exactly the
// spec's type.
func (s Spec) Matches(sym *tree.Symbol) bool {
	if sym == nil || sym.Kind != tree.SymMethod || sym.Name != s.FuncName {
		return false
	}

	return sym.Owner != nil && sym.Owner.QualifiedName() == s.TypeQualifiedName()
}

// MatchesDescendant checks if t is the spec's type or one of its subtypes.
func (s Spec) MatchesDescendant(t *tree.Type) bool {
	return tree.IsSubtype(t, s.TypeQualifiedName())
}
