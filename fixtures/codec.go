package fixtures

import (
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/bytedance/sonic"
)

// ExposeTag is the struct tag that opts a field in to serialization by an expose codec.
// Any value other than "false" counts, so `expose:"true"` and `expose:""` are equivalent.
const ExposeTag = "expose"

var jsonAPI = sonic.ConfigStd

// Codec is a JSON encoder/decoder that only handles fields that were explicitly selected.
//
// A codec from NewExposeCodec looks at struct fields, at any depth, and ignores every field
// that has no expose tag. A codec from NewAllowListCodec takes a list of property names and
// applies it to the top level of the document, whether that is a struct or a map.
//
// When decoding, properties that are not selected are dropped before the data reaches the
// target, so the corresponding fields keep whatever value they had.
//
// Values whose types encode themselves (json.Marshaler, encoding.TextMarshaler, and the
// matching unmarshalers on decode) are passed through whole. A selected field with a json
// "omitempty" option is left out when it is empty, as encoding/json does.
type Codec struct {
	allowList map[string]bool
}

// NewExposeCodec returns a codec that only serializes struct fields tagged with expose.
func NewExposeCodec() *Codec {
	return &Codec{}
}

// NewAllowListCodec returns a codec that only serializes the named top-level properties.
func NewAllowListCodec(keys ...string) *Codec {
	allow := make(map[string]bool, len(keys))
	for _, k := range keys {
		allow[k] = true
	}
	return &Codec{allowList: allow}
}

func (c *Codec) exposeMode() bool {
	return c.allowList == nil
}

// Marshal encodes v, keeping only the selected fields.
func (c *Codec) Marshal(v interface{}) ([]byte, error) {
	return jsonAPI.Marshal(c.filterValue(reflect.ValueOf(v), true))
}

// Unmarshal decodes data into v, ignoring every property that is not selected.
func (c *Codec) Unmarshal(data []byte, v interface{}) error {
	target := reflect.ValueOf(v)
	if target.Kind() != reflect.Ptr || target.IsNil() {
		return fmt.Errorf("decode target must be a non-nil pointer, got %T", v)
	}
	var raw interface{}
	if err := jsonAPI.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	filtered, err := jsonAPI.Marshal(c.filterRaw(target.Type().Elem(), raw, true))
	if err != nil {
		return err
	}
	return jsonAPI.Unmarshal(filtered, v)
}

func (c *Codec) filterValue(v reflect.Value, top bool) interface{} {
	if !v.IsValid() {
		return nil
	}
	if encodesItself(v.Type()) {
		if v.Kind() == reflect.Ptr && v.IsNil() {
			return nil
		}
		return marshalerValue(v)
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return c.filterValue(v.Elem(), top)
	case reflect.Struct:
		out := make(map[string]interface{})
		for _, f := range selectedFields(v.Type(), c, top) {
			field := v.Field(f.index)
			if f.omitEmpty && isEmptyValue(field) {
				continue
			}
			out[f.name] = c.filterValue(field, false)
		}
		return out
	case reflect.Map:
		if v.IsNil() {
			return nil
		}
		if v.Type().Key().Kind() != reflect.String {
			return v.Interface()
		}
		out := make(map[string]interface{}, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			key := iter.Key().String()
			if top && !c.exposeMode() && !c.allowList[key] {
				continue
			}
			out[key] = c.filterValue(iter.Value(), false)
		}
		return out
	case reflect.Slice:
		if v.IsNil() {
			return nil
		}
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return v.Interface()
		}
		fallthrough
	case reflect.Array:
		out := make([]interface{}, v.Len())
		for i := range out {
			out[i] = c.filterValue(v.Index(i), false)
		}
		return out
	default:
		return v.Interface()
	}
}

// filterRaw prunes a generic decoded document so that only properties which are selected for
// the target type remain.
func (c *Codec) filterRaw(t reflect.Type, raw interface{}, top bool) interface{} {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if decodesItself(t) {
		return raw
	}
	switch value := raw.(type) {
	case map[string]interface{}:
		switch t.Kind() {
		case reflect.Struct:
			out := make(map[string]interface{})
			for _, f := range selectedFields(t, c, top) {
				if v, ok := value[f.name]; ok {
					out[f.name] = c.filterRaw(t.Field(f.index).Type, v, false)
				}
			}
			return out
		case reflect.Map:
			out := make(map[string]interface{}, len(value))
			for k, v := range value {
				if top && !c.exposeMode() && !c.allowList[k] {
					continue
				}
				out[k] = c.filterRaw(t.Elem(), v, false)
			}
			return out
		case reflect.Interface:
			if top && !c.exposeMode() {
				out := make(map[string]interface{}, len(value))
				for k, v := range value {
					if c.allowList[k] {
						out[k] = v
					}
				}
				return out
			}
		}
	case []interface{}:
		if t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
			out := make([]interface{}, len(value))
			for i, v := range value {
				out[i] = c.filterRaw(t.Elem(), v, false)
			}
			return out
		}
	}
	return raw
}

var (
	jsonMarshalerType   = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	jsonUnmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

func implementsEither(t reflect.Type, a, b reflect.Type) bool {
	if t.Kind() == reflect.Interface {
		return false
	}
	return t.Implements(a) || t.Implements(b) ||
		reflect.PtrTo(t).Implements(a) || reflect.PtrTo(t).Implements(b)
}

func encodesItself(t reflect.Type) bool {
	return implementsEither(t, jsonMarshalerType, textMarshalerType)
}

func decodesItself(t reflect.Type) bool {
	return implementsEither(t, jsonUnmarshalerType, textUnmarshalerType)
}

// marshalerValue returns v in a form whose marshal method the encoder will find. A method with
// a pointer receiver needs an addressable copy.
func marshalerValue(v reflect.Value) interface{} {
	t := v.Type()
	if t.Implements(jsonMarshalerType) || t.Implements(textMarshalerType) || v.Kind() == reflect.Ptr {
		return v.Interface()
	}
	p := reflect.New(t)
	p.Elem().Set(v)
	return p.Interface()
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}

type selectedField struct {
	index     int
	name      string
	omitEmpty bool
}

func selectedFields(t reflect.Type, c *Codec, top bool) []selectedField {
	var ret []selectedField
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		name, omitEmpty, skip := jsonName(f)
		if skip {
			continue
		}
		if c.exposeMode() {
			tag, ok := f.Tag.Lookup(ExposeTag)
			if !ok || tag == "false" {
				continue
			}
		} else if top && !c.allowList[name] {
			continue
		}
		ret = append(ret, selectedField{index: i, name: name, omitEmpty: omitEmpty})
	}
	return ret
}

func jsonName(f reflect.StructField) (name string, omitEmpty, skip bool) {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	name = tag
	if comma := strings.Index(tag, ","); comma >= 0 {
		name = tag[:comma]
		for _, opt := range strings.Split(tag[comma+1:], ",") {
			if opt == "omitempty" {
				omitEmpty = true
			}
		}
	}
	if name == "" {
		name = f.Name
	}
	return name, omitEmpty, false
}
