// Package finding defines the hazard records produced by the detectors.
package finding

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/minio/highwayhash"

	"github.com/mpyw/concmut/internal/tree"
)

// Severity of a finding. Every detector reports warnings.
type Severity string

// SeverityWarning is the only severity the detectors emit.
const SeverityWarning Severity = "warning"

// Finding is one detected hazard occurrence.
type Finding struct {
	Checker  string   `json:"checker" yaml:"checker"`
	Severity Severity `json:"severity" yaml:"severity"`
	Pos      tree.Pos `json:"pos" yaml:"pos"`
	Message  string   `json:"message" yaml:"message"`

	// Node is the flagged node. It is not serialized.
	Node *tree.Node `json:"-" yaml:"-"`
}

// New creates a warning at n.
func New(checker, message string, n *tree.Node) Finding {
	f := Finding{
		Checker:  checker,
		Severity: SeverityWarning,
		Message:  message,
		Node:     n,
	}
	if n != nil {
		f.Pos = n.Pos
	}
	return f
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s (%s)", f.Pos, f.Message, f.Checker)
}

// Compare orders findings by file, offset, checker and message.
func Compare(a, b Finding) int {
	return cmp.Or(
		strings.Compare(a.Pos.File, b.Pos.File),
		cmp.Compare(a.Pos.Line, b.Pos.Line),
		cmp.Compare(a.Pos.Column, b.Pos.Column),
		cmp.Compare(a.Pos.Offset, b.Pos.Offset),
		strings.Compare(a.Checker, b.Checker),
		strings.Compare(a.Message, b.Message),
	)
}

// Sort sorts findings in place into their stable report order.
func Sort(fs []Finding) {
	slices.SortStableFunc(fs, Compare)
}

// fingerprintKey is a fixed HighwayHash key; fingerprints must be stable
// across runs and machines.
var fingerprintKey = []byte("concmut-fingerprint-key-00000000")

// Fingerprint identifies a finding independently of its line number, so a
// baseline survives unrelated edits above the flagged code. Two findings of
// the same checker on identical source text in the same file collide; the
// baseline stores occurrence counts for that reason.
func Fingerprint(f Finding) (string, error) {
	h, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}

	text := ""
	if f.Node != nil {
		text = strings.Join(strings.Fields(f.Node.Text), " ")
	}
	for _, part := range []string{f.Checker, f.Pos.File, f.Message, text} {
		_, _ = h.Write([]byte(part))
		_, _ = h.Write([]byte{0})
	}

	return strconv.FormatUint(h.Sum64(), 16), nil
}
