// Package graphql serves the catalog schema through gqlgen's handler. Field
// resolvers are registered per object and run by ExecutableSchema, which
// drives gqlgen's field collection, middleware chain and response writers.
package graphql

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	gql "github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// FieldFunc resolves one field of an object. obj is the parent value, nil for
// root fields. args holds the coerced arguments with defaults applied.
type FieldFunc func(ctx context.Context, obj any, args map[string]any) (any, error)

// resolverError marks errors returned by a FieldFunc so the presenter can tell
// them apart from errors raised by gqlgen itself.
type resolverError struct {
	err error
}

func (e *resolverError) Error() string { return e.err.Error() }
func (e *resolverError) Unwrap() error { return e.err }

// ExecutableSchema runs query operations against registered field resolvers.
type ExecutableSchema struct {
	schema    *ast.Schema
	resolvers map[string]map[string]FieldFunc
}

var _ gql.ExecutableSchema = (*ExecutableSchema)(nil)

func newSchema(schema *ast.Schema) *ExecutableSchema {
	es := &ExecutableSchema{
		schema:    schema,
		resolvers: map[string]map[string]FieldFunc{},
	}
	registerIntrospection(es)
	return es
}

// resolve registers fn for object.field. Fields without a resolver are read
// from the parent struct by json tag.
func (es *ExecutableSchema) resolve(object, field string, fn FieldFunc) {
	if es.resolvers[object] == nil {
		es.resolvers[object] = map[string]FieldFunc{}
	}
	es.resolvers[object][field] = fn
}

func (es *ExecutableSchema) Schema() *ast.Schema {
	return es.schema
}

func (es *ExecutableSchema) Complexity(_ context.Context, _, _ string, _ int, _ map[string]any) (int, bool) {
	return 0, false
}

func (es *ExecutableSchema) Exec(ctx context.Context) gql.ResponseHandler {
	opCtx := gql.GetOperationContext(ctx)
	if opCtx.Operation.Operation != ast.Query {
		return gql.OneShot(gql.ErrorResponse(ctx, "%s operations are not supported", opCtx.Operation.Operation))
	}

	x := &execution{es: es, opCtx: opCtx}
	first := true
	return func(ctx context.Context) *gql.Response {
		if !first {
			return nil
		}
		first = false
		data := x.executeObject(ctx, es.schema.Query, opCtx.Operation.SelectionSet, nil)
		var buf bytes.Buffer
		data.MarshalGQL(&buf)
		return &gql.Response{Data: buf.Bytes()}
	}
}

type execution struct {
	es    *ExecutableSchema
	opCtx *gql.OperationContext
}

// executeObject resolves the selected fields of obj. It returns gql.Null when
// a non-null field came back null, so the parent becomes null in turn.
func (x *execution) executeObject(ctx context.Context, def *ast.Definition, sel ast.SelectionSet, obj any) gql.Marshaler {
	root := def == x.es.schema.Query
	fields := gql.CollectFields(x.opCtx, sel, []string{def.Name})
	if root {
		ctx = gql.WithFieldContext(ctx, &gql.FieldContext{Object: def.Name})
	}

	out := gql.NewFieldSet(fields)
	for i, field := range fields {
		if field.Name == "__typename" {
			out.Values[i] = gql.MarshalString(def.Name)
			continue
		}
		fieldDef := field.Definition
		if fieldDef == nil {
			fieldDef = def.Fields.ForName(field.Name)
		}
		if fieldDef == nil {
			gql.AddErrorf(ctx, "unknown field %s.%s", def.Name, field.Name)
			out.Values[i] = gql.Null
			continue
		}

		fn := x.es.resolvers[def.Name][field.Name]
		resolve := func(ctx context.Context) gql.Marshaler {
			res := x.executeField(ctx, def, fieldDef, field, obj, fn)
			if res == gql.Null && fieldDef.Type.NonNull {
				atomic.AddUint32(&out.Invalids, 1)
			}
			return res
		}

		switch {
		case root:
			rctx := gql.WithRootFieldContext(ctx, &gql.RootFieldContext{Object: def.Name, Field: field})
			out.Concurrently(i, func(context.Context) gql.Marshaler {
				return x.opCtx.RootResolverMiddleware(rctx, resolve)
			})
		case fn != nil:
			out.Concurrently(i, resolve)
		default:
			out.Values[i] = resolve(ctx)
		}
	}
	out.Dispatch(ctx)

	if out.Invalids > 0 {
		return gql.Null
	}
	return out
}

func (x *execution) executeField(ctx context.Context, object *ast.Definition, def *ast.FieldDefinition, field gql.CollectedField, obj any, fn FieldFunc) gql.Marshaler {
	return gql.ResolveField[any](
		ctx,
		x.opCtx,
		field,
		func(_ context.Context, field gql.CollectedField) (*gql.FieldContext, error) {
			return &gql.FieldContext{
				Object:     object.Name,
				Field:      field,
				Args:       field.ArgumentMap(x.opCtx.Variables),
				IsMethod:   fn != nil,
				IsResolver: fn != nil,
			}, nil
		},
		func(ctx context.Context) (any, error) {
			if fn == nil {
				return structField(obj, field.Name), nil
			}
			res, err := fn(ctx, obj, gql.GetFieldContext(ctx).Args)
			if err != nil {
				var gqlErr *gqlerror.Error
				if errors.As(err, &gqlErr) {
					return nil, err
				}
				return nil, &resolverError{err: err}
			}
			return res, nil
		},
		nil,
		func(ctx context.Context, sel ast.SelectionSet, v any) gql.Marshaler {
			return x.complete(ctx, def.Type, sel, v)
		},
		true,
		def.Type.NonNull,
	)
}

func (x *execution) complete(ctx context.Context, typ *ast.Type, sel ast.SelectionSet, v any) gql.Marshaler {
	if isNil(v) {
		if typ.NonNull && !gql.HasFieldError(ctx, gql.GetFieldContext(ctx)) {
			gql.AddErrorf(ctx, "must not be null")
		}
		return gql.Null
	}
	if typ.Elem != nil {
		return x.completeList(ctx, typ, sel, v)
	}

	def := x.es.schema.Types[typ.NamedType]
	if def == nil {
		gql.AddErrorf(ctx, "unknown type %s", typ.NamedType)
		return gql.Null
	}
	switch def.Kind {
	case ast.Scalar, ast.Enum:
		m, err := marshalLeaf(def, v)
		if err != nil {
			gql.AddError(ctx, err)
			return gql.Null
		}
		return m
	case ast.Object:
		return x.executeObject(ctx, def, sel, v)
	}
	gql.AddErrorf(ctx, "cannot complete %s value of %s", def.Kind, def.Name)
	return gql.Null
}

// completeList completes object items concurrently so relation loaders see the
// keys of every item before they dispatch a batch.
func (x *execution) completeList(ctx context.Context, typ *ast.Type, sel ast.SelectionSet, v any) gql.Marshaler {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		gql.AddErrorf(ctx, "expected a list, got %T", v)
		return gql.Null
	}

	n := rv.Len()
	ret := make(gql.Array, n)
	concurrent := n > 1 && !isLeafType(x.es.schema, typ.Elem)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		item := listItem(rv.Index(i))
		ctx := gql.WithFieldContext(ctx, &gql.FieldContext{Index: &i, Result: item})
		completeItem := func() {
			defer func() {
				if r := recover(); r != nil {
					x.opCtx.Error(ctx, x.opCtx.Recover(ctx, r))
					ret[i] = gql.Null
				}
			}()
			ret[i] = x.complete(ctx, typ.Elem, sel, item)
		}
		if !concurrent {
			completeItem()
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			completeItem()
		}()
	}
	wg.Wait()

	if typ.Elem.NonNull {
		for _, e := range ret {
			if e == gql.Null {
				return gql.Null
			}
		}
	}
	return ret
}

// listItem hands struct items out by pointer so their methods are reachable.
func listItem(v reflect.Value) any {
	if v.Kind() == reflect.Struct && v.CanAddr() {
		return v.Addr().Interface()
	}
	return v.Interface()
}

func isLeafType(schema *ast.Schema, typ *ast.Type) bool {
	for typ.Elem != nil {
		typ = typ.Elem
	}
	def := schema.Types[typ.NamedType]
	return def != nil && (def.Kind == ast.Scalar || def.Kind == ast.Enum)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func marshalLeaf(def *ast.Definition, v any) (gql.Marshaler, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return gql.Null, nil
		}
		rv = rv.Elem()
	}

	switch def.Name {
	case "Int":
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return gql.MarshalInt64(rv.Int()), nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return gql.MarshalUint64(rv.Uint()), nil
		}
	case "Float":
		switch rv.Kind() {
		case reflect.Float32, reflect.Float64:
			return gql.MarshalFloat(rv.Float()), nil
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return gql.MarshalFloat(float64(rv.Int())), nil
		}
	case "Boolean":
		if rv.Kind() == reflect.Bool {
			return gql.MarshalBoolean(rv.Bool()), nil
		}
	case "ID":
		switch rv.Kind() {
		case reflect.String:
			return gql.MarshalID(rv.String()), nil
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return gql.MarshalID(strconv.FormatInt(rv.Int(), 10)), nil
		}
	default:
		if rv.Kind() == reflect.String {
			return gql.MarshalString(rv.String()), nil
		}
		if def.Kind == ast.Scalar && def.Name != "String" {
			return gql.MarshalAny(rv.Interface()), nil
		}
	}
	return nil, fmt.Errorf("cannot marshal %s as %s", rv.Type(), def.Name)
}

var fieldIndexCache sync.Map

// structField reads the field tagged json:"name" from a struct or struct pointer.
func structField(obj any, name string) any {
	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	i, ok := jsonFieldIndex(rv.Type())[name]
	if !ok {
		return nil
	}
	return rv.Field(i).Interface()
}

func jsonFieldIndex(t reflect.Type) map[string]int {
	if cached, ok := fieldIndexCache.Load(t); ok {
		return cached.(map[string]int)
	}
	index := map[string]int{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		index[name] = i
	}
	fieldIndexCache.Store(t, index)
	return index
}
