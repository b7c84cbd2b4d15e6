package controller

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/noahnc/smartmonitoring-cli/internal/manifest"
)

// Change describes a single field that differs between two local configs,
// rendered as a dotted path of Go field names like
// "ZabbixProxyContainer.ProxyName" (the config types carry no json tags).
type Change struct {
	Path     string
	OldValue string
	NewValue string
}

// String renders a change the way apply-config's confirmation prompt
// shows it.
func (c Change) String() string {
	return fmt.Sprintf("%s: %s -> %s", c.Path, c.OldValue, c.NewValue)
}

// diffLocalConfig reports every changed, added or removed field between
// two local configs. The original relies on DeepDiff for this; no
// equivalent structural-diff library is available in this module's
// dependency set, so this recursive comparison is hand-rolled over the
// configs' JSON representation (see DESIGN.md for the justification).
func diffLocalConfig(oldCfg, newCfg *manifest.LocalConfig) ([]Change, error) {
	oldMap, err := toGenericMap(oldCfg)
	if err != nil {
		return nil, err
	}
	newMap, err := toGenericMap(newCfg)
	if err != nil {
		return nil, err
	}

	var changes []Change
	diffValues("", oldMap, newMap, &changes)

	sort.Slice(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })
	return changes, nil
}

func toGenericMap(v interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

const absent = "<unset>"

func diffValues(path string, oldVal, newVal interface{}, changes *[]Change) {
	oldMap, oldIsMap := oldVal.(map[string]interface{})
	newMap, newIsMap := newVal.(map[string]interface{})
	if oldIsMap && newIsMap {
		diffMaps(path, oldMap, newMap, changes)
		return
	}

	if !valuesEqual(oldVal, newVal) {
		*changes = append(*changes, Change{
			Path:     path,
			OldValue: render(oldVal),
			NewValue: render(newVal),
		})
	}
}

func diffMaps(prefix string, oldMap, newMap map[string]interface{}, changes *[]Change) {
	keys := make(map[string]struct{}, len(oldMap)+len(newMap))
	for k := range oldMap {
		keys[k] = struct{}{}
	}
	for k := range newMap {
		keys[k] = struct{}{}
	}

	for k := range keys {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		oldVal, hasOld := oldMap[k]
		newVal, hasNew := newMap[k]
		switch {
		case hasOld && hasNew:
			diffValues(path, oldVal, newVal, changes)
		case hasOld && !hasNew:
			*changes = append(*changes, Change{Path: path, OldValue: render(oldVal), NewValue: absent})
		case !hasOld && hasNew:
			*changes = append(*changes, Change{Path: path, OldValue: absent, NewValue: render(newVal)})
		}
	}
}

func valuesEqual(a, b interface{}) bool {
	aJSON, errA := json.Marshal(a)
	bJSON, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
	}
	return string(aJSON) == string(bJSON)
}

func render(v interface{}) string {
	if v == nil {
		return absent
	}
	if s, ok := v.(string); ok {
		return s
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return strings.Trim(string(raw), `"`)
}
