package eval

import (
	"fmt"
	"sort"
)

// ToNative converts v to plain Go values: maps become map[string]any
// keyed by the names of keywords and the printed form of other keys,
// sequences become []any.
func ToNative(v any) any {
	switch x := v.(type) {
	case int64:
		return int(x)
	case Keyword:
		return string(x)
	case Sym:
		return string(x)
	case Char:
		return string(rune(x))
	case List:
		return nativeSlice(x)
	case Vector:
		return nativeSlice(x)
	case *Set:
		return nativeSlice(x.Items())
	case *Map:
		res := make(map[string]any, x.Len())
		x.Each(func(k, v any) {
			switch kk := k.(type) {
			case Keyword:
				res[string(kk)] = ToNative(v)
			case string:
				res[kk] = ToNative(v)
			default:
				res[Print(k)] = ToNative(v)
			}
		})
		return res
	}
	return v
}

func nativeSlice(xs []any) []any {
	res := make([]any, len(xs))
	for i, x := range xs {
		res[i] = ToNative(x)
	}
	return res
}

// FromNative converts decoded JSON, YAML or expr values. String map keys
// become keywords.
func FromNative(v any) (any, error) {
	switch x := v.(type) {
	case nil, bool, string, int64, float64, Keyword, Sym, Char, List, Vector, *Map, *Set, *Fn:
		return v, nil
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case uint:
		return int64(x), nil
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint64:
		return int64(x), nil
	case float32:
		return float64(x), nil
	case []any:
		res := make(Vector, len(x))
		for i, it := range x {
			c, err := FromNative(it)
			if err != nil {
				return nil, err
			}
			res[i] = c
		}
		return res, nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMap()
		for _, k := range keys {
			c, err := FromNative(x[k])
			if err != nil {
				return nil, err
			}
			m.put(Keyword(k), c)
		}
		return m, nil
	case map[any]any:
		m := NewMap()
		keys := make([]any, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
		})
		for _, k := range keys {
			kv, err := FromNative(k)
			if err != nil {
				return nil, err
			}
			if s, ok := kv.(string); ok {
				kv = Keyword(s)
			}
			c, err := FromNative(x[k])
			if err != nil {
				return nil, err
			}
			m.put(kv, c)
		}
		return m, nil
	}
	if s, ok := v.(Symbol); ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: cannot convert %T", ErrType, v)
}
