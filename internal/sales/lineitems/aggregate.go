package lineitems

import (
	"sort"
	"strconv"
	"strings"
)

const (
	nameDelimiter    = " - "
	displaySeparator = ", "
	manualKeyPrefix  = "manual:"
	sourceKeyPrefix  = "source:"
)

// Aggregate folds raw document rows into editable line items.
//
// Rows are ordered by sequence (missing sequence counts as 0), grouped by
// SourceID, and every referenced source that produced no rows gets an empty
// placeholder group. Groups come out ordered by the smallest sequence seen in
// each; placeholders follow in reference order.
func Aggregate(raw []RawItem, referencedSourceIDs []string) []LineItem {
	indexed := make([]int, len(raw))
	for i := range raw {
		indexed[i] = i
	}
	sort.SliceStable(indexed, func(a, b int) bool {
		return raw[indexed[a]].sequence() < raw[indexed[b]].sequence()
	})

	byKey := make(map[string]*group, len(raw)+len(referencedSourceIDs))
	// Rows are visited in sequence order, so creation order is already the
	// order of each group's minimum sequence.
	ordered := make([]*group, 0, len(raw))
	for _, idx := range indexed {
		item := raw[idx]
		key, sourceID := groupKey(item, idx)
		g, ok := byKey[key]
		if !ok {
			g = newGroup(groupID(item, sourceID, idx), sourceID)
			byKey[key] = g
			ordered = append(ordered, g)
		}
		g.add(item, idx)
	}

	for _, id := range referencedSourceIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		key := sourceKeyPrefix + id
		if _, ok := byKey[key]; ok {
			continue
		}
		g := newGroup(id, id)
		byKey[key] = g
		ordered = append(ordered, g)
	}

	out := make([]LineItem, 0, len(ordered))
	for _, g := range ordered {
		out = append(out, g.lineItem())
	}
	return out
}

// DisplayName returns the part of a raw item name before the " - " delimiter.
func DisplayName(name string) string {
	before, _, _ := strings.Cut(name, nameDelimiter)
	return strings.TrimSpace(before)
}

func groupKey(item RawItem, idx int) (key, sourceID string) {
	sourceID = strings.TrimSpace(item.SourceID)
	if sourceID != "" {
		return sourceKeyPrefix + sourceID, sourceID
	}
	if id := strings.TrimSpace(item.ID); id != "" {
		return manualKeyPrefix + id, ""
	}
	return manualKeyPrefix + "#" + strconv.Itoa(idx), ""
}

func groupID(item RawItem, sourceID string, idx int) string {
	if sourceID != "" {
		return sourceID
	}
	if id := strings.TrimSpace(item.ID); id != "" {
		return id
	}
	return "manual-" + strconv.Itoa(idx)
}

type group struct {
	id       string
	sourceID string
	name     string
	unit     string
	patterns orderedSet
	fabrics  orderedSet
	colors   orderedSet
	sizes    orderedSet
	rows     []SizeRow
}

func newGroup(id, sourceID string) *group {
	return &group{id: id, sourceID: sourceID, rows: []SizeRow{}}
}

func (g *group) add(item RawItem, idx int) {
	if g.name == "" {
		g.name = DisplayName(item.Name)
	}
	if g.unit == "" {
		g.unit = strings.TrimSpace(item.Unit)
	}
	g.patterns.add(item.Pattern)
	g.fabrics.add(item.FabricType)
	g.colors.add(item.Color)

	rowBase := strings.TrimSpace(item.ID)
	if rowBase == "" {
		rowBase = g.id + "-" + strconv.Itoa(idx)
	}

	if len(item.Sizes) == 0 {
		g.sizes.add(item.Size)
		g.rows = append(g.rows, SizeRow{
			ID:        rowBase,
			Size:      strings.TrimSpace(item.Size),
			Quantity:  item.Quantity.Float(),
			UnitPrice: item.UnitPrice.Float(),
			Notes:     item.Notes,
		})
		return
	}
	for i, size := range item.Sizes {
		rowID := strings.TrimSpace(size.ID)
		if rowID == "" {
			rowID = rowBase + "-" + strconv.Itoa(i+1)
		}
		g.sizes.add(size.Size)
		g.rows = append(g.rows, SizeRow{
			ID:        rowID,
			Size:      strings.TrimSpace(size.Size),
			Quantity:  size.Quantity.Float(),
			UnitPrice: size.UnitPrice.Float(),
			Notes:     size.Notes,
		})
	}
}

func (g *group) lineItem() LineItem {
	item := LineItem{
		ID:         g.id,
		Name:       g.name,
		Pattern:    g.patterns.join(),
		FabricType: g.fabrics.join(),
		Color:      g.colors.join(),
		Sizes:      g.sizes.join(),
		Unit:       g.unit,
		SizeRows:   g.rows,
	}
	if g.sourceID != "" {
		sourceID := g.sourceID
		item.SourceID = &sourceID
	}
	return item
}

// orderedSet keeps the first occurrence of each trimmed, non-empty value.
type orderedSet struct {
	seen   map[string]struct{}
	values []string
}

func (s *orderedSet) add(v string) {
	v = strings.TrimSpace(v)
	if v == "" {
		return
	}
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.values = append(s.values, v)
}

func (s *orderedSet) join() string {
	return strings.Join(s.values, displaySeparator)
}
