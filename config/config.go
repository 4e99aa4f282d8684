// Package config loads the gesture binding table from an INI file.
//
// One section per application scope ([global] is the reserved fallback), one
// key per binding. The key is a gesture selector, the value an ordered
// command list:
//
//	[global]
//	swipe left 3            = _internal ws_down
//	swipe right 3           = _internal ws_up
//	swipe left_up 4 +leftctrl = playerctl next
//	pinch in                = xdotool key ctrl+minus
//	pointer double_tap btn_middle @swipe.left = xdotool key ctrl+w
//
//	[firefox]
//	swipe left 3 = xdotool key alt+Right
//
// Selector tokens after "<kind> <motion>": a bare token is the kind-specific
// qualifier (finger count or button name), "+k1+k2" names keys that must be
// held, "@kind.motion" requires the preceding gesture as a trigger.
// Commands in a value are separated by ";" and split on whitespace; there is
// no shell. Validation errors are fatal at load time.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/mobile-next/gesturecli/engine"
)

// settingsSection is reserved for engine tunables and is not a scope.
const settingsSection = "settings"

// Settings are the non-binding tunables from the [settings] section.
type Settings struct {
	// SwipeThreshold is the minimum accumulated swipe distance before a
	// swipe classifies. Zero accepts any movement.
	SwipeThreshold float64
}

var validMotions = map[engine.Kind]map[string]bool{
	engine.KindSwipe: {
		"up": true, "down": true, "left": true, "right": true,
		"left_up": true, "left_down": true, "right_up": true, "right_down": true,
		"up_left": true, "up_right": true, "down_left": true, "down_right": true,
	},
	engine.KindPinch: {
		"in": true, "out": true, "clockwise": true, "anticlockwise": true,
	},
	engine.KindPointer: {
		"tap": true, "double_tap": true, "triple_tap": true, "quadruple_tap": true,
	},
}

// Load parses and validates the binding config at path.
func Load(path string) (*engine.BindingTable, Settings, error) {
	file, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, path)
	if err != nil {
		return nil, Settings{}, fmt.Errorf("failed to read config %s: %v", path, err)
	}

	table := engine.NewBindingTable()
	settings := Settings{}

	for _, section := range file.Sections() {
		name := strings.ToLower(section.Name())
		if name == strings.ToLower(ini.DefaultSection) {
			if len(section.Keys()) > 0 {
				return nil, Settings{}, fmt.Errorf("bindings must live inside a scope section such as [%s]", engine.GlobalScope)
			}
			continue
		}
		if name == settingsSection {
			if settings, err = parseSettings(section); err != nil {
				return nil, Settings{}, err
			}
			continue
		}
		for _, key := range section.Keys() {
			kind, bkey, err := parseSelector(key.Name())
			if err != nil {
				return nil, Settings{}, fmt.Errorf("[%s] %q: %v", name, key.Name(), err)
			}
			cmds, err := parseCommands(key.Value())
			if err != nil {
				return nil, Settings{}, fmt.Errorf("[%s] %q: %v", name, key.Name(), err)
			}
			table.Add(name, kind, bkey, cmds)
		}
	}

	return table, settings, nil
}

func parseSettings(section *ini.Section) (Settings, error) {
	s := Settings{}
	for _, key := range section.Keys() {
		switch key.Name() {
		case "swipe_threshold":
			v, err := key.Float64()
			if err != nil || v < 0 {
				return s, fmt.Errorf("[settings] swipe_threshold: not a non-negative number: %q", key.Value())
			}
			s.SwipeThreshold = v
		default:
			return s, fmt.Errorf("[settings] unknown setting %q", key.Name())
		}
	}
	return s, nil
}

// parseSelector parses "<kind> <motion> [qualifier] [+held] [@trigger]".
func parseSelector(selector string) (engine.Kind, engine.BindingKey, error) {
	tokens := strings.Fields(strings.ToLower(selector))
	if len(tokens) < 2 {
		return "", engine.BindingKey{}, fmt.Errorf("expected at least \"<kind> <motion>\"")
	}

	kind := engine.Kind(tokens[0])
	motions, ok := validMotions[kind]
	if !ok {
		return "", engine.BindingKey{}, fmt.Errorf("unsupported gesture kind %q", tokens[0])
	}

	motion := tokens[1]
	if !motions[motion] {
		return "", engine.BindingKey{}, fmt.Errorf("unsupported %s motion %q", kind, motion)
	}

	key := engine.BindingKey{Motion: motion}
	for _, tok := range tokens[2:] {
		switch {
		case strings.HasPrefix(tok, "+"):
			if key.HeldKeys != "" {
				return "", engine.BindingKey{}, fmt.Errorf("duplicate held-key clause %q", tok)
			}
			key.HeldKeys = strings.Trim(tok, "+")
			if key.HeldKeys == "" {
				return "", engine.BindingKey{}, fmt.Errorf("empty held-key clause")
			}
		case strings.HasPrefix(tok, "@"):
			if key.Trigger != "" {
				return "", engine.BindingKey{}, fmt.Errorf("duplicate trigger clause %q", tok)
			}
			trigger, err := parseTrigger(tok[1:])
			if err != nil {
				return "", engine.BindingKey{}, err
			}
			key.Trigger = trigger
		default:
			if key.Qualifier != "" {
				return "", engine.BindingKey{}, fmt.Errorf("duplicate qualifier %q", tok)
			}
			key.Qualifier = tok
		}
	}

	if err := validateQualifier(kind, key.Qualifier); err != nil {
		return "", engine.BindingKey{}, err
	}
	return kind, key, nil
}

// parseTrigger parses "kind.motion" into the "kind motion" last-gesture
// label used at resolution time.
func parseTrigger(spec string) (string, error) {
	parts := strings.SplitN(spec, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("trigger must be \"@<kind>.<motion>\", got %q", "@"+spec)
	}
	kind := engine.Kind(parts[0])
	motions, ok := validMotions[kind]
	if !ok {
		return "", fmt.Errorf("trigger references unsupported kind %q", parts[0])
	}
	if !motions[parts[1]] {
		return "", fmt.Errorf("trigger references unsupported %s motion %q", kind, parts[1])
	}
	return parts[0] + " " + parts[1], nil
}

func validateQualifier(kind engine.Kind, qualifier string) error {
	switch kind {
	case engine.KindSwipe:
		if qualifier == "" {
			return nil // generic binding, matches any finger count
		}
		n, err := strconv.Atoi(qualifier)
		if err != nil || n < 1 || n > 5 {
			return fmt.Errorf("swipe qualifier must be a finger count 1-5, got %q", qualifier)
		}
	case engine.KindPointer:
		if qualifier != "" && !strings.HasPrefix(qualifier, "btn_") {
			return fmt.Errorf("pointer qualifier must be a btn_* name, got %q", qualifier)
		}
	case engine.KindPinch:
		if qualifier != "" {
			return fmt.Errorf("pinch bindings take no qualifier, got %q", qualifier)
		}
	}
	return nil
}

// parseCommands splits a binding value into its command list.
func parseCommands(value string) (engine.CommandList, error) {
	var cmds engine.CommandList
	for _, part := range strings.Split(value, ";") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		cmds = append(cmds, engine.Command{Program: fields[0], Args: fields[1:]})
	}
	if len(cmds) == 0 {
		return nil, fmt.Errorf("empty command list")
	}
	return cmds, nil
}
