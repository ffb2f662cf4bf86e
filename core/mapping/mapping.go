package mapping

import (
	"iter"
	"slices"
)

// Entry associates a Source product identifier with a Sink product identifier.
type Entry struct {
	// SourceKey is the stable external identifier on the Source side (barcode).
	SourceKey string `json:"source_key"`
	// SinkID is the numeric product identifier on the Sink side.
	SinkID int64 `json:"sink_id"`
}

// Mapping is an immutable, insertion-ordered table of entries.
// SourceKey is unique and SinkID is always positive.
type Mapping struct {
	entries []Entry
	index   map[string]int
}

// Empty returns a mapping with no entries.
func Empty() *Mapping {
	return &Mapping{index: map[string]int{}}
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Entries returns a copy of the entries in insertion order.
func (m *Mapping) Entries() []Entry {
	if m == nil {
		return nil
	}
	return slices.Clone(m.entries)
}

// All iterates the entries in insertion order.
func (m *Mapping) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		if m == nil {
			return
		}
		for _, e := range m.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// Lookup returns the sink id mapped to sourceKey.
func (m *Mapping) Lookup(sourceKey string) (int64, bool) {
	if m == nil {
		return 0, false
	}
	i, ok := m.index[sourceKey]
	if !ok {
		return 0, false
	}
	return m.entries[i].SinkID, true
}

// builder accumulates entries. A repeated key keeps its first position and takes the last value.
type builder struct {
	m *Mapping
}

func newBuilder() *builder {
	return &builder{m: Empty()}
}

func (b *builder) add(e Entry) {
	if i, ok := b.m.index[e.SourceKey]; ok {
		b.m.entries[i].SinkID = e.SinkID
		return
	}
	b.m.index[e.SourceKey] = len(b.m.entries)
	b.m.entries = append(b.m.entries, e)
}

func (b *builder) build() *Mapping {
	return b.m
}
