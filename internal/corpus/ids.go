package corpus

import "strconv"

// Entity identifier prefixes. Documents use "d"; the six dictionary
// entities use the remaining prefixes.
const (
	PrefixDocument    = "d"
	PrefixAuthor      = "a"
	PrefixCountry     = "c"
	PrefixInstitution = "i"
	PrefixSource      = "j"
	PrefixAuthorKW    = "k"
	PrefixKeywordPlus = "p"
	PrefixReference   = "r"
)

// Ordinal is a positional identifier: a prefix plus the index of the
// entity in the frozen ordering of its unique set. Ordinals are
// transient: any filter or merge reassigns them, so they must never
// be compared across two Corpus values.
type Ordinal struct {
	Prefix string
	Index  int
}

func (o Ordinal) String() string {
	return o.Prefix + "_" + strconv.Itoa(o.Index)
}

// IDTable is the frozen id assignment for one entity: names in id
// order plus both lookup directions.
type IDTable struct {
	Prefix string
	Names  []string
	byName map[string]int
}

// AssignIDs freezes the given ordering of unique names and assigns
// ids prefix_0 .. prefix_{n-1}. The slice is not copied; callers hand
// over ownership.
func AssignIDs(prefix string, names []string) *IDTable {
	byName := make(map[string]int, len(names))
	for i, n := range names {
		byName[n] = i
	}
	return &IDTable{Prefix: prefix, Names: names, byName: byName}
}

// Len returns the number of assigned ids.
func (t *IDTable) Len() int { return len(t.Names) }

// ID looks up the ordinal for a name.
func (t *IDTable) ID(name string) (Ordinal, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Ordinal{}, false
	}
	return Ordinal{Prefix: t.Prefix, Index: i}, true
}

// Name looks up the name for an index; empty string when out of range.
func (t *IDTable) Name(index int) string {
	if index < 0 || index >= len(t.Names) {
		return ""
	}
	return t.Names[index]
}

// Index returns the positional index for a name, or -1.
func (t *IDTable) Index(name string) int {
	if i, ok := t.byName[name]; ok {
		return i
	}
	return -1
}

// Pairs returns (id, name) rows in id order, for tabular export to
// presentation collaborators.
func (t *IDTable) Pairs() [][2]string {
	out := make([][2]string, len(t.Names))
	for i, n := range t.Names {
		out[i] = [2]string{Ordinal{Prefix: t.Prefix, Index: i}.String(), n}
	}
	return out
}
