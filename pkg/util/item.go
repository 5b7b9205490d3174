package util

import (
	"fmt"
	"reflect"
	"strconv"
)

// GetItem follows path through nested maps, slices, arrays, pointers and
// struct fields and returns the value found, or nil when any step misses.
//
//	GetItem(cfg, "servers", 0, "host")
func GetItem(obj any, path ...any) any {
	v := reflect.ValueOf(obj)
	for _, key := range path {
		v = indirect(v)
		if !v.IsValid() {
			return nil
		}
		next, ok := child(v, key)
		if !ok {
			return nil
		}
		v = next
	}
	v = indirectInterface(v)
	if !v.IsValid() {
		return nil
	}
	return v.Interface()
}

// SetItem stores the last argument at the path formed by the others,
// creating intermediate containers as needed: a []any when the following
// key is an integer and a map[string]any otherwise. Slices grow to fit the
// index. To grow a top-level slice, pass a pointer to it.
//
//	SetItem(m, "a", 0, "b", 42) // m["a"] == []any{map[string]any{"b": 42}}
func SetItem(obj any, args ...any) error {
	if len(args) < 2 {
		return nil
	}
	keys, value := args[:len(args)-1], args[len(args)-1]
	_, err := setPath(reflect.ValueOf(obj), keys, value)
	return err
}

func setPath(c reflect.Value, keys []any, value any) (reflect.Value, error) {
	holder := c
	c = indirectInterface(c)
	if c.Kind() == reflect.Pointer {
		if c.IsNil() {
			return holder, fmt.Errorf("util: nil pointer at %v", keys[0])
		}
		elem := c.Elem()
		out, err := setPath(elem, keys, value)
		if err != nil {
			return holder, err
		}
		if elem.CanSet() {
			elem.Set(out)
		}
		return holder, nil
	}

	key := keys[0]
	switch c.Kind() {
	case reflect.Map:
		if c.IsNil() {
			return holder, fmt.Errorf("util: nil map at %v", key)
		}
		k, err := convertKey(key, c.Type().Key())
		if err != nil {
			return holder, err
		}
		v, err := nextValue(c.MapIndex(k), c.Type().Elem(), keys, value)
		if err != nil {
			return holder, err
		}
		c.SetMapIndex(k, v)
		return c, nil

	case reflect.Slice:
		idx, ok := toIndex(key)
		if !ok || idx < 0 {
			return holder, fmt.Errorf("util: bad slice index %v", key)
		}
		if idx >= c.Len() {
			grown := reflect.MakeSlice(c.Type(), idx+1, idx+1)
			reflect.Copy(grown, c)
			c = grown
		}
		v, err := nextValue(c.Index(idx), c.Type().Elem(), keys, value)
		if err != nil {
			return holder, err
		}
		c.Index(idx).Set(v)
		return c, nil

	case reflect.Struct:
		name, _ := key.(string)
		f := c.FieldByName(name)
		if !f.IsValid() || !f.CanSet() {
			return holder, fmt.Errorf("util: no settable field %v", key)
		}
		v, err := nextValue(f, f.Type(), keys, value)
		if err != nil {
			return holder, err
		}
		f.Set(v)
		return c, nil
	}
	return holder, fmt.Errorf("util: cannot index %s with %v", c.Kind(), key)
}

// nextValue computes the value to store in a slot of type typ currently
// holding cur, either the final value or the updated child container.
func nextValue(cur reflect.Value, typ reflect.Type, keys []any, value any) (reflect.Value, error) {
	if len(keys) == 1 {
		return assignable(value, typ, keys[0])
	}
	container := indirectInterface(cur)
	if !isContainer(container) {
		if _, isText := keys[1].(string); !isText && isIndex(keys[1]) {
			container = reflect.ValueOf([]any{})
		} else {
			container = reflect.ValueOf(map[string]any{})
		}
	}
	out, err := setPath(container, keys[1:], value)
	if err != nil {
		return reflect.Value{}, err
	}
	return assignable(out.Interface(), typ, keys[0])
}

func assignable(value any, typ reflect.Type, key any) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(typ), nil
	}
	v := reflect.ValueOf(value)
	if v.Type().AssignableTo(typ) {
		return v, nil
	}
	if v.Type().ConvertibleTo(typ) {
		return v.Convert(typ), nil
	}
	return reflect.Value{}, fmt.Errorf("util: cannot store %T at %v", value, key)
}

func isContainer(v reflect.Value) bool {
	if !v.IsValid() {
		return false
	}
	switch v.Kind() {
	case reflect.Map, reflect.Slice:
		return !v.IsNil()
	case reflect.Pointer:
		return !v.IsNil() && v.Elem().Kind() == reflect.Struct
	}
	return false
}

func child(v reflect.Value, key any) (reflect.Value, bool) {
	switch v.Kind() {
	case reflect.Map:
		k, err := convertKey(key, v.Type().Key())
		if err != nil {
			return reflect.Value{}, false
		}
		out := v.MapIndex(k)
		return out, out.IsValid()
	case reflect.Slice, reflect.Array:
		idx, ok := toIndex(key)
		if !ok || idx < 0 || idx >= v.Len() {
			return reflect.Value{}, false
		}
		return v.Index(idx), true
	case reflect.Struct:
		name, ok := key.(string)
		if !ok {
			return reflect.Value{}, false
		}
		f, found := v.Type().FieldByName(name)
		if !found || !f.IsExported() {
			return reflect.Value{}, false
		}
		return v.FieldByIndex(f.Index), true
	}
	return reflect.Value{}, false
}

func convertKey(key any, typ reflect.Type) (reflect.Value, error) {
	k := reflect.ValueOf(key)
	if k.IsValid() && k.Type().AssignableTo(typ) {
		return k, nil
	}
	if typ.Kind() == reflect.String {
		return reflect.ValueOf(fmt.Sprint(key)).Convert(typ), nil
	}
	if k.IsValid() && k.Type().ConvertibleTo(typ) && k.Kind() != reflect.String {
		return k.Convert(typ), nil
	}
	return reflect.Value{}, fmt.Errorf("util: key %v does not fit %s", key, typ)
}

func isIndex(key any) bool {
	_, ok := toIndex(key)
	return ok
}

func toIndex(key any) (int, bool) {
	switch k := key.(type) {
	case int:
		return k, true
	case int8:
		return int(k), true
	case int16:
		return int(k), true
	case int32:
		return int(k), true
	case int64:
		return int(k), true
	case uint:
		return int(k), true
	case uint32:
		return int(k), true
	case uint64:
		return int(k), true
	case string:
		n, err := strconv.Atoi(k)
		return n, err == nil
	}
	return 0, false
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func indirectInterface(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}
