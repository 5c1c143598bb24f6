// Package astdump converts parsed statements into ordered documents that
// encode as YAML or JSON.
package astdump

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/format"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// Field is one key of an Object.
type Field struct {
	Key   string
	Value any
}

// Object is a mapping that keeps its keys in insertion order.
type Object []Field

// Get returns the value stored under key.
func (o Object) Get(key string) (any, bool) {
	for _, f := range o {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// MarshalJSON implements json.Marshaler.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML implements yaml.Marshaler.
func (o Object) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range o {
		var val yaml.Node
		if err := val.Encode(f.Value); err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Key, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key},
			&val)
	}
	return node, nil
}

var (
	positionType = reflect.TypeOf(token.Position{})
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
)

// Dump converts a node into an Object. Names and data types are
// collapsed to their rendering in d; every node carries its kind and,
// when known, its source position.
func Dump(n core.Node, d dialect.Dialect) (Object, error) {
	if d == nil {
		return nil, dialect.ErrDialectRequired
	}
	v, err := dumpValue(reflect.ValueOf(n), d)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(Object)
	if !ok {
		return Object{{Key: "node", Value: nodeName(n)}, {Key: "value", Value: v}}, nil
	}
	return obj, nil
}

// DumpAll converts a script.
func DumpAll(stmts []core.Stmt, d dialect.Dialect) ([]Object, error) {
	docs := make([]Object, 0, len(stmts))
	for i, stmt := range stmts {
		obj, err := Dump(stmt, d)
		if err != nil {
			return nil, fmt.Errorf("statement %d: %w", i+1, err)
		}
		docs = append(docs, obj)
	}
	return docs, nil
}

// YAML encodes docs as a YAML stream, one document per statement.
func YAML(docs []Object) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	for _, doc := range docs {
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JSON encodes docs as an indented JSON array.
func JSON(docs []Object) ([]byte, error) {
	if docs == nil {
		docs = []Object{}
	}
	return json.MarshalIndent(docs, "", "  ")
}

func dumpValue(v reflect.Value, d dialect.Dialect) (any, error) {
	if !v.IsValid() {
		return nil, nil
	}
	if (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) && v.IsNil() {
		return nil, nil
	}

	switch n := v.Interface().(type) {
	case *core.Identifier, *core.CompoundIdentifier, *core.DataType:
		return format.Render(n.(core.Node), d)
	case core.CopyValue:
		return n.String(), nil
	case *core.BinaryExpr:
		return dumpBinary(n, d)
	case *core.UnaryExpr:
		return dumpUnary(n, d)
	}

	if isEnum(v.Type()) {
		return v.Interface().(fmt.Stringer).String(), nil
	}

	switch v.Kind() {
	case reflect.Interface:
		return dumpValue(v.Elem(), d)
	case reflect.Pointer:
		if v.Elem().Kind() != reflect.Struct {
			return dumpValue(v.Elem(), d)
		}
		return dumpStruct(v, d)
	case reflect.Slice:
		items := make([]any, 0, v.Len())
		for i := range v.Len() {
			item, err := dumpValue(v.Index(i), d)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.String:
		return v.String(), nil
	case reflect.Int, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	default:
		return nil, fmt.Errorf("cannot dump %s", v.Type())
	}
}

// dumpStruct walks the exported fields of a node pointer in declaration
// order, dropping positions and zero values.
func dumpStruct(v reflect.Value, d dialect.Dialect) (Object, error) {
	obj := Object{{Key: "node", Value: v.Elem().Type().Name()}}
	if n, ok := v.Interface().(core.Node); ok {
		if pos := n.Pos(); pos.IsValid() {
			obj = append(obj, Field{Key: "pos", Value: pos.String()})
		}
	}

	elem := v.Elem()
	for i := range elem.NumField() {
		sf := elem.Type().Field(i)
		if !sf.IsExported() || sf.Type == positionType {
			continue
		}
		fv := elem.Field(i)
		if fv.IsZero() && !isEnum(sf.Type) {
			continue
		}
		val, err := dumpValue(fv, d)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", elem.Type().Name(), sf.Name, err)
		}
		obj = append(obj, Field{Key: snakeCase(sf.Name), Value: val})
	}
	return obj, nil
}

func dumpBinary(b *core.BinaryExpr, d dialect.Dialect) (Object, error) {
	left, err := dumpValue(reflect.ValueOf(b.Left), d)
	if err != nil {
		return nil, err
	}
	right, err := dumpValue(reflect.ValueOf(b.Right), d)
	if err != nil {
		return nil, err
	}
	obj := Object{{Key: "node", Value: "BinaryExpr"}}
	if pos := b.Pos(); pos.IsValid() {
		obj = append(obj, Field{Key: "pos", Value: pos.String()})
	}
	return append(obj,
		Field{Key: "op", Value: b.Operator()},
		Field{Key: "left", Value: left},
		Field{Key: "right", Value: right},
	), nil
}

func dumpUnary(u *core.UnaryExpr, d dialect.Dialect) (Object, error) {
	expr, err := dumpValue(reflect.ValueOf(u.Expr), d)
	if err != nil {
		return nil, err
	}
	op := u.Op.String()
	if u.IsNot() {
		op = "NOT"
	}
	return Object{
		{Key: "node", Value: "UnaryExpr"},
		{Key: "pos", Value: u.Pos().String()},
		{Key: "op", Value: op},
		{Key: "expr", Value: expr},
	}, nil
}

// isEnum reports whether t is an integer kind with a String method.
func isEnum(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int, reflect.Int32, reflect.Int64:
		return t.Implements(stringerType)
	}
	return false
}

func nodeName(n core.Node) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", n), "*core.")
}

// snakeCase turns a Go field name such as ReferredColumns into
// referred_columns.
func snakeCase(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
