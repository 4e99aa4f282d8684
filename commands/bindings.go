package commands

import (
	"strings"

	"github.com/mobile-next/gesturecli/config"
	"github.com/mobile-next/gesturecli/engine"
)

// BindingsRequest represents the parameters for the bindings command
type BindingsRequest struct {
	ConfigPath string `json:"configPath"`
}

// BindingInfo is one binding, flattened for display.
type BindingInfo struct {
	Kind      string   `json:"kind"`
	Motion    string   `json:"motion"`
	Qualifier string   `json:"qualifier,omitempty"`
	HeldKeys  string   `json:"heldKeys,omitempty"`
	Trigger   string   `json:"trigger,omitempty"`
	Commands  []string `json:"commands"`
}

// ScopeInfo groups a scope's bindings.
type ScopeInfo struct {
	Scope    string        `json:"scope"`
	Bindings []BindingInfo `json:"bindings"`
}

// BindingsCommand loads and dumps the binding table. Load failures are the
// same fatal validation errors `run` would report.
func BindingsCommand(req BindingsRequest) *CommandResponse {
	table, _, err := config.Load(req.ConfigPath)
	if err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(DumpTable(table))
}

// DumpTable flattens a binding table in scope then insertion order.
func DumpTable(table *engine.BindingTable) []ScopeInfo {
	var scopes []ScopeInfo
	for _, scope := range table.Scopes() {
		info := ScopeInfo{Scope: scope}
		for _, kind := range []engine.Kind{engine.KindSwipe, engine.KindPinch, engine.KindPointer} {
			for _, b := range table.Bindings(scope, kind) {
				bi := BindingInfo{
					Kind:      string(kind),
					Motion:    b.Key.Motion,
					Qualifier: b.Key.Qualifier,
					HeldKeys:  b.Key.HeldKeys,
					Trigger:   b.Key.Trigger,
				}
				for _, c := range b.Commands {
					bi.Commands = append(bi.Commands, c.String())
				}
				info.Bindings = append(info.Bindings, bi)
			}
		}
		scopes = append(scopes, info)
	}
	return scopes
}

// String renders one binding the way it appears in the config file.
func (b BindingInfo) String() string {
	s := b.Kind + " " + b.Motion
	if b.Qualifier != "" {
		s += " " + b.Qualifier
	}
	if b.HeldKeys != "" {
		s += " +" + b.HeldKeys
	}
	if b.Trigger != "" {
		s += " @" + strings.Replace(b.Trigger, " ", ".", 1)
	}
	return s
}
