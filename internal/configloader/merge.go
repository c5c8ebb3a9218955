package configloader

import (
	"maps"
	"slices"
)

// setting is one configured value together with where it came from.
type setting struct {
	value  any
	source string
}

// settings maps canonical option keys to their configured values.
type settings map[string]setting

// newSettings normalizes the keys of values and attributes them to source.
// When two spellings of the same key appear, the one that sorts last wins.
func newSettings(values map[string]any, source string) settings {
	result := make(settings, len(values))
	for _, key := range slices.Sorted(maps.Keys(values)) {
		result[CanonicalKey(key)] = setting{value: values[key], source: source}
	}
	return result
}

// merge combines two layers, with override taking precedence over base.
// Keys absent from override keep the base value; a present key replaces the
// base value entirely, including lists.
func merge(base, override settings) settings {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := make(settings, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
}

// mergeAll merges layers in order, with later layers taking precedence.
func mergeAll(layers ...settings) settings {
	var result settings
	for _, layer := range layers {
		result = merge(result, layer)
	}
	return result
}
