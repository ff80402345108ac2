package graphql

import (
	"context"

	gql "github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/introspection"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// registerIntrospection serves __schema and __type from gqlgen's
// introspection package. Introspection stays off unless the
// extension.Introspection handler extension enables it.
func registerIntrospection(es *ExecutableSchema) {
	es.resolve("Query", "__schema", func(ctx context.Context, _ any, _ map[string]any) (any, error) {
		if gql.GetOperationContext(ctx).DisableIntrospection {
			return nil, gqlerror.Errorf("introspection disabled")
		}
		return introspection.WrapSchema(es.schema), nil
	})
	es.resolve("Query", "__type", func(ctx context.Context, _ any, args map[string]any) (any, error) {
		if gql.GetOperationContext(ctx).DisableIntrospection {
			return nil, gqlerror.Errorf("introspection disabled")
		}
		name, _ := args["name"].(string)
		return introspection.WrapTypeFromDef(es.schema, es.schema.Types[name]), nil
	})

	introspect(es, "__Schema", map[string]func(*introspection.Schema, map[string]any) any{
		"description":      func(s *introspection.Schema, _ map[string]any) any { return s.Description() },
		"types":            func(s *introspection.Schema, _ map[string]any) any { return s.Types() },
		"queryType":        func(s *introspection.Schema, _ map[string]any) any { return s.QueryType() },
		"mutationType":     func(s *introspection.Schema, _ map[string]any) any { return s.MutationType() },
		"subscriptionType": func(s *introspection.Schema, _ map[string]any) any { return s.SubscriptionType() },
		"directives":       func(s *introspection.Schema, _ map[string]any) any { return s.Directives() },
	})
	introspect(es, "__Type", map[string]func(*introspection.Type, map[string]any) any{
		"kind":           func(t *introspection.Type, _ map[string]any) any { return t.Kind() },
		"name":           func(t *introspection.Type, _ map[string]any) any { return t.Name() },
		"description":    func(t *introspection.Type, _ map[string]any) any { return t.Description() },
		"specifiedByURL": func(t *introspection.Type, _ map[string]any) any { return t.SpecifiedByURL() },
		"fields":         func(t *introspection.Type, args map[string]any) any { return t.Fields(includeDeprecated(args)) },
		"interfaces":     func(t *introspection.Type, _ map[string]any) any { return t.Interfaces() },
		"possibleTypes":  func(t *introspection.Type, _ map[string]any) any { return t.PossibleTypes() },
		"enumValues":     func(t *introspection.Type, args map[string]any) any { return t.EnumValues(includeDeprecated(args)) },
		"inputFields":    func(t *introspection.Type, _ map[string]any) any { return t.InputFields() },
		"ofType":         func(t *introspection.Type, _ map[string]any) any { return t.OfType() },
		"isOneOf":        func(t *introspection.Type, _ map[string]any) any { return t.IsOneOf() },
	})
	introspect(es, "__Field", map[string]func(*introspection.Field, map[string]any) any{
		"name":              func(f *introspection.Field, _ map[string]any) any { return f.Name },
		"description":       func(f *introspection.Field, _ map[string]any) any { return f.Description() },
		"args":              func(f *introspection.Field, _ map[string]any) any { return f.Args },
		"type":              func(f *introspection.Field, _ map[string]any) any { return f.Type },
		"isDeprecated":      func(f *introspection.Field, _ map[string]any) any { return f.IsDeprecated() },
		"deprecationReason": func(f *introspection.Field, _ map[string]any) any { return f.DeprecationReason() },
	})
	introspect(es, "__InputValue", map[string]func(*introspection.InputValue, map[string]any) any{
		"name":              func(v *introspection.InputValue, _ map[string]any) any { return v.Name },
		"description":       func(v *introspection.InputValue, _ map[string]any) any { return v.Description() },
		"type":              func(v *introspection.InputValue, _ map[string]any) any { return v.Type },
		"defaultValue":      func(v *introspection.InputValue, _ map[string]any) any { return v.DefaultValue },
		"isDeprecated":      func(v *introspection.InputValue, _ map[string]any) any { return v.IsDeprecated() },
		"deprecationReason": func(v *introspection.InputValue, _ map[string]any) any { return v.DeprecationReason() },
	})
	introspect(es, "__EnumValue", map[string]func(*introspection.EnumValue, map[string]any) any{
		"name":              func(v *introspection.EnumValue, _ map[string]any) any { return v.Name },
		"description":       func(v *introspection.EnumValue, _ map[string]any) any { return v.Description() },
		"isDeprecated":      func(v *introspection.EnumValue, _ map[string]any) any { return v.IsDeprecated() },
		"deprecationReason": func(v *introspection.EnumValue, _ map[string]any) any { return v.DeprecationReason() },
	})
	introspect(es, "__Directive", map[string]func(*introspection.Directive, map[string]any) any{
		"name":         func(d *introspection.Directive, _ map[string]any) any { return d.Name },
		"description":  func(d *introspection.Directive, _ map[string]any) any { return d.Description() },
		"isRepeatable": func(d *introspection.Directive, _ map[string]any) any { return d.IsRepeatable },
		"locations":    func(d *introspection.Directive, _ map[string]any) any { return d.Locations },
		"args":         func(d *introspection.Directive, _ map[string]any) any { return d.Args },
	})
}

func introspect[T any](es *ExecutableSchema, object string, fields map[string]func(*T, map[string]any) any) {
	for name, get := range fields {
		es.resolve(object, name, func(_ context.Context, obj any, args map[string]any) (any, error) {
			return get(obj.(*T), args), nil
		})
	}
}

func includeDeprecated(args map[string]any) bool {
	v, _ := args["includeDeprecated"].(bool)
	return v
}
