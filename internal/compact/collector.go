package compact

import (
	"strings"

	"github.com/minapi/minapi/internal/document"
	"go.yaml.in/yaml/v4"
)

// RefPrefix is the internal-schema reference prefix; only references under
// it participate in collection.
const RefPrefix = "#/components/schemas/"

// RefPolicy selects how far reference collection reaches.
type RefPolicy string

const (
	// RefsDirect collects only references found directly under the paths
	// tree. References nested inside component schemas stay undiscovered,
	// matching the historical behavior of this notation.
	RefsDirect RefPolicy = "direct"
	// RefsTransitive additionally closes over $ref edges inside the
	// collected schema definitions.
	RefsTransitive RefPolicy = "transitive"
)

// RefSet is the set of schema names selected for the compact output:
// insertion-ordered, deduplicated, always a subset of the definition keys.
type RefSet struct {
	names []string
	seen  map[string]struct{}
}

func newRefSet() *RefSet {
	return &RefSet{seen: make(map[string]struct{})}
}

func (s *RefSet) add(name string) {
	if _, ok := s.seen[name]; ok {
		return
	}
	s.seen[name] = struct{}{}
	s.names = append(s.names, name)
}

func (s *RefSet) Has(name string) bool {
	_, ok := s.seen[name]
	return ok
}

// Names returns the collected names in discovery order.
func (s *RefSet) Names() []string {
	return s.names
}

func (s *RefSet) Len() int {
	return len(s.names)
}

// CollectRefs walks every node reachable from paths and gathers the schema
// names it references, then appends any seed names present among the
// definitions. Under RefsTransitive the set is closed over $ref edges
// through the definitions themselves.
func CollectRefs(paths, defs *yaml.Node, policy RefPolicy, seeds []string) *RefSet {
	set := newRefSet()
	walkRefs(paths, defs, set)

	for _, seed := range seeds {
		if document.MapGet(defs, seed) != nil {
			set.add(seed)
		}
	}

	if policy == RefsTransitive {
		// set.names grows while we walk; plain index loop doubles as the
		// work queue.
		for i := 0; i < len(set.names); i++ {
			walkRefs(document.MapGet(defs, set.names[i]), defs, set)
		}
	}

	return set
}

func walkRefs(n, defs *yaml.Node, set *RefSet) {
	switch {
	case document.IsMapping(n):
		if ref, ok := document.ScalarString(document.MapGet(n, "$ref")); ok {
			if name, ok := strings.CutPrefix(ref, RefPrefix); ok && document.MapGet(defs, name) != nil {
				set.add(name)
			}
		}
		for _, value := range document.MapPairs(n) {
			walkRefs(value, defs, set)
		}
	case document.IsSequence(n):
		for _, item := range document.Items(n) {
			walkRefs(item, defs, set)
		}
	}
}
