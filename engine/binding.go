package engine

import (
	"sort"
	"strings"
)

// Kind identifies one of the closed set of gesture kinds.
type Kind string

const (
	KindSwipe   Kind = "swipe"
	KindPinch   Kind = "pinch"
	KindPointer Kind = "pointer"
)

// GlobalScope is the reserved fallback application scope.
const GlobalScope = "global"

// Command is one external program invocation: no shell, args pre-split.
type Command struct {
	Program string
	Args    []string
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Program
	}
	return c.Program + " " + strings.Join(c.Args, " ")
}

// CommandList is the ordered list of commands bound to one gesture. Commands
// run in order, independently.
type CommandList []Command

// BindingKey is the structured lookup key for one binding. Empty Trigger,
// HeldKeys, or Qualifier mean "not constrained"; absence of a key in a scope
// is distinct from a binding with an empty command list.
type BindingKey struct {
	Motion    string
	Trigger   string // "kind motion" label of the preceding gesture, or ""
	HeldKeys  string // "+"-joined held-key label, or ""
	Qualifier string // finger count (swipe) or button name (pointer); "" for pinch
}

// Binding pairs a key with its commands, for display ordering.
type Binding struct {
	Key      BindingKey
	Commands CommandList
}

type scope struct {
	name  string
	kinds map[Kind]map[BindingKey]CommandList
	order map[Kind][]BindingKey // insertion order, display only
}

// BindingTable maps application scopes to per-kind binding maps. Lookups
// never mutate the table.
type BindingTable struct {
	scopes  map[string]*scope
	oblique map[Kind]bool
}

// NewBindingTable returns an empty table.
func NewBindingTable() *BindingTable {
	return &BindingTable{
		scopes:  make(map[string]*scope),
		oblique: make(map[Kind]bool),
	}
}

// Add inserts a binding into the named application scope, creating the scope
// as needed. Scope names are matched case-insensitively.
func (t *BindingTable) Add(app string, kind Kind, key BindingKey, cmds CommandList) {
	app = strings.ToLower(app)
	s, ok := t.scopes[app]
	if !ok {
		s = &scope{
			name:  app,
			kinds: make(map[Kind]map[BindingKey]CommandList),
			order: make(map[Kind][]BindingKey),
		}
		t.scopes[app] = s
	}
	if s.kinds[kind] == nil {
		s.kinds[kind] = make(map[BindingKey]CommandList)
	}
	if _, dup := s.kinds[kind][key]; !dup {
		s.order[kind] = append(s.order[kind], key)
	}
	s.kinds[kind][key] = cmds

	switch kind {
	case KindSwipe:
		if strings.Contains(key.Motion, "_") {
			t.oblique[kind] = true
		}
	case KindPinch:
		if key.Motion == "clockwise" || key.Motion == "anticlockwise" {
			t.oblique[kind] = true
		}
	}
}

// HasOblique reports whether any configured binding for the kind uses a
// compound (oblique/rotation) motion name. The classifier only resolves to
// eight-way or rotational motions when something could match them.
func (t *BindingTable) HasOblique(kind Kind) bool {
	return t.oblique[kind]
}

// Resolve searches [app, global] for the most specific binding matching the
// completed gesture. For the first scope holding any bindings of this kind,
// candidate keys are tried most-specific first: qualifier before generic,
// then trigger before generic, then held keys before generic. The first
// present key wins; a scope with bindings for the kind but no matching key
// falls through to the next scope. Returns the matched scope name.
func (t *BindingTable) Resolve(app string, kind Kind, motion, qualifier, held, trigger string) (CommandList, string, bool) {
	for _, name := range t.scopeOrder(app) {
		s, ok := t.scopes[name]
		if !ok {
			continue
		}
		byKey := s.kinds[kind]
		if len(byKey) == 0 {
			continue
		}
		for _, key := range candidateKeys(motion, qualifier, held, trigger) {
			if cmds, ok := byKey[key]; ok {
				return cmds, s.name, true
			}
		}
	}
	return nil, "", false
}

func (t *BindingTable) scopeOrder(app string) []string {
	app = strings.ToLower(app)
	if app == "" || app == GlobalScope {
		return []string{GlobalScope}
	}
	return []string{app, GlobalScope}
}

// candidateKeys generates the specificity-ordered candidate list: 8 keys for
// swipe/pointer (qualifier present), 4 for pinch (qualifier empty).
func candidateKeys(motion, qualifier, held, trigger string) []BindingKey {
	keys := make([]BindingKey, 0, 8)
	for _, q := range fallback(qualifier) {
		for _, tr := range fallback(trigger) {
			for _, h := range fallback(held) {
				keys = append(keys, BindingKey{
					Motion:    motion,
					Trigger:   tr,
					HeldKeys:  h,
					Qualifier: q,
				})
			}
		}
	}
	return keys
}

// fallback yields the concrete value then the generic "" (deduplicated).
func fallback(v string) []string {
	if v == "" {
		return []string{""}
	}
	return []string{v, ""}
}

// Scopes returns the scope names in sorted order, global last.
func (t *BindingTable) Scopes() []string {
	var names []string
	for name := range t.scopes {
		if name != GlobalScope {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if _, ok := t.scopes[GlobalScope]; ok {
		names = append(names, GlobalScope)
	}
	return names
}

// Bindings returns the scope's bindings for a kind in insertion order.
func (t *BindingTable) Bindings(app string, kind Kind) []Binding {
	s, ok := t.scopes[strings.ToLower(app)]
	if !ok {
		return nil
	}
	var out []Binding
	for _, key := range s.order[kind] {
		out = append(out, Binding{Key: key, Commands: s.kinds[kind][key]})
	}
	return out
}
