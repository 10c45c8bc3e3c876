// Package jsonpatch computes RFC 6902 patches between JSON documents.
package jsonpatch

import (
	"sort"
	"strconv"
	"strings"

	"reminder-engine/internal/model"
)

// DiffBoth computes the forward (a→b) and backward (b→a) RFC 6902 patches
// in a single traversal. Both a and b should be the result of
// json.Unmarshal into interface{}; path is "" for the root document. Object
// keys are visited in sorted order so the patches are deterministic.
func DiffBoth(a, b interface{}, path string) (fwd, bwd []model.PatchOperation) {
	if a == nil && b == nil {
		return nil, nil
	}
	if a == nil || b == nil {
		return []model.PatchOperation{replaceOp(path, b)},
			[]model.PatchOperation{replaceOp(path, a)}
	}

	aMap, aIsMap := a.(map[string]interface{})
	bMap, bIsMap := b.(map[string]interface{})
	if aIsMap && bIsMap {
		return diffObjectsBoth(aMap, bMap, path)
	}

	aArr, aIsArr := a.([]interface{})
	bArr, bIsArr := b.([]interface{})
	if aIsArr && bIsArr {
		return diffArraysBoth(aArr, bArr, path)
	}

	if a != b {
		return []model.PatchOperation{replaceOp(path, b)},
			[]model.PatchOperation{replaceOp(path, a)}
	}

	return nil, nil
}

func diffObjectsBoth(a, b map[string]interface{}, path string) (fwd, bwd []model.PatchOperation) {
	for _, k := range sortedKeys(a) {
		if _, ok := b[k]; !ok {
			childPath := path + "/" + escapeKey(k)
			fwd = append(fwd, removeOp(childPath))
			bwd = append(bwd, addOp(childPath, a[k]))
		}
	}

	for _, k := range sortedKeys(b) {
		childPath := path + "/" + escapeKey(k)
		av, inA := a[k]
		if !inA {
			fwd = append(fwd, addOp(childPath, b[k]))
			bwd = append(bwd, removeOp(childPath))
			continue
		}
		subFwd, subBwd := DiffBoth(av, b[k], childPath)
		fwd = append(fwd, subFwd...)
		bwd = append(bwd, subBwd...)
	}

	return fwd, bwd
}

func diffArraysBoth(a, b []interface{}, path string) (fwd, bwd []model.PatchOperation) {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	for i := 0; i < minLen; i++ {
		subFwd, subBwd := DiffBoth(a[i], b[i], path+"/"+strconv.Itoa(i))
		fwd = append(fwd, subFwd...)
		bwd = append(bwd, subBwd...)
	}

	// a has extra elements: forward removes (descending), backward adds (ascending)
	for i := len(a) - 1; i >= minLen; i-- {
		fwd = append(fwd, removeOp(path+"/"+strconv.Itoa(i)))
	}
	for i := minLen; i < len(a); i++ {
		bwd = append(bwd, addOp(path+"/"+strconv.Itoa(i), a[i]))
	}

	// b has extra elements: forward adds (ascending), backward removes (descending)
	for i := minLen; i < len(b); i++ {
		fwd = append(fwd, addOp(path+"/"+strconv.Itoa(i), b[i]))
	}
	for i := len(b) - 1; i >= minLen; i-- {
		bwd = append(bwd, removeOp(path+"/"+strconv.Itoa(i)))
	}

	return fwd, bwd
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func replaceOp(path string, value interface{}) model.PatchOperation {
	return model.PatchOperation{Op: "replace", Path: path, Value: value}
}

func addOp(path string, value interface{}) model.PatchOperation {
	return model.PatchOperation{Op: "add", Path: path, Value: value}
}

func removeOp(path string) model.PatchOperation {
	return model.PatchOperation{Op: "remove", Path: path}
}

// escapeKey escapes a JSON Pointer token per RFC 6901.
func escapeKey(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	s = strings.ReplaceAll(s, "/", "~1")
	return s
}
