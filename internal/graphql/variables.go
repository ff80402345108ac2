package graphql

import (
	"context"

	gql "github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/errcode"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// strictNumericVariables rejects JSON strings supplied for Int and Float
// variables, which gqlparser accepts when they parse as numbers.
type strictNumericVariables struct {
	schema *ast.Schema
}

var _ interface {
	gql.HandlerExtension
	gql.OperationContextMutator
} = strictNumericVariables{}

func (strictNumericVariables) ExtensionName() string {
	return "StrictNumericVariables"
}

func (strictNumericVariables) Validate(gql.ExecutableSchema) error {
	return nil
}

func (s strictNumericVariables) MutateOperationContext(_ context.Context, opCtx *gql.OperationContext) *gqlerror.Error {
	for _, def := range opCtx.Operation.VariableDefinitions {
		value, ok := opCtx.Variables[def.Variable]
		if !ok {
			continue
		}
		path := ast.Path{ast.PathName("variable"), ast.PathName(def.Variable)}
		if err := s.check(def.Type, value, path); err != nil {
			errcode.Set(err, errcode.ValidationFailed)
			return err
		}
	}
	return nil
}

func (s strictNumericVariables) check(typ *ast.Type, value any, path ast.Path) *gqlerror.Error {
	if value == nil {
		return nil
	}
	if typ.Elem != nil {
		items, ok := value.([]any)
		if !ok {
			return s.check(typ.Elem, value, path)
		}
		for i, item := range items {
			if err := s.check(typ.Elem, item, appendPath(path, ast.PathIndex(i))); err != nil {
				return err
			}
		}
		return nil
	}

	def := s.schema.Types[typ.NamedType]
	if def == nil {
		return nil
	}
	switch def.Kind {
	case ast.Scalar:
		if _, isString := value.(string); isString && (def.Name == "Int" || def.Name == "Float") {
			return gqlerror.ErrorPathf(path, "cannot use string as %s", def.Name)
		}
	case ast.InputObject:
		fields, ok := value.(map[string]any)
		if !ok {
			return nil
		}
		for _, field := range def.Fields {
			if err := s.check(field.Type, fields[field.Name], appendPath(path, ast.PathName(field.Name))); err != nil {
				return err
			}
		}
	}
	return nil
}

func appendPath(path ast.Path, el ast.PathElement) ast.Path {
	out := make(ast.Path, len(path), len(path)+1)
	copy(out, path)
	return append(out, el)
}
