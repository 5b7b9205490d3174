package util

import "reflect"

// Clone returns a deep copy of v. Maps, slices, arrays, pointers and
// interfaces are copied recursively; struct fields that cannot be set
// through reflection (unexported ones) are copied shallowly. Cyclic values
// are not supported.
func Clone[T any](v T) T {
	src := reflect.ValueOf(&v).Elem()
	dst := reflect.New(src.Type()).Elem()
	copyValue(dst, src)
	return dst.Interface().(T)
}

func copyValue(dst, src reflect.Value) {
	switch src.Kind() {
	case reflect.Interface:
		if src.IsNil() {
			return
		}
		inner := src.Elem()
		cp := reflect.New(inner.Type()).Elem()
		copyValue(cp, inner)
		dst.Set(cp)
	case reflect.Pointer:
		if src.IsNil() {
			return
		}
		cp := reflect.New(src.Elem().Type())
		copyValue(cp.Elem(), src.Elem())
		dst.Set(cp)
	case reflect.Map:
		if src.IsNil() {
			return
		}
		cp := reflect.MakeMapWithSize(src.Type(), src.Len())
		iter := src.MapRange()
		for iter.Next() {
			val := reflect.New(iter.Value().Type()).Elem()
			copyValue(val, iter.Value())
			cp.SetMapIndex(iter.Key(), val)
		}
		dst.Set(cp)
	case reflect.Slice:
		if src.IsNil() {
			return
		}
		cp := reflect.MakeSlice(src.Type(), src.Len(), src.Len())
		for i := 0; i < src.Len(); i++ {
			copyValue(cp.Index(i), src.Index(i))
		}
		dst.Set(cp)
	case reflect.Array:
		for i := 0; i < src.Len(); i++ {
			copyValue(dst.Index(i), src.Index(i))
		}
	case reflect.Struct:
		dst.Set(src)
		for i := 0; i < src.NumField(); i++ {
			if dst.Field(i).CanSet() {
				copyValue(dst.Field(i), src.Field(i))
			}
		}
	default:
		dst.Set(src)
	}
}
