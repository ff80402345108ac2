package catalog

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/rpattn/barmenu/internal/domain"
	"github.com/rpattn/barmenu/internal/filters"
	"github.com/rpattn/barmenu/internal/repository"
)

// Service exposes the catalog listings shared by REST and GraphQL.
type Service struct {
	categories  repository.CategoryRepository
	products    repository.ProductRepository
	ingredients repository.IngredientRepository
	logger      *zap.Logger
}

type Option func(*Service)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewService(repos repository.Repositories, opts ...Option) *Service {
	s := &Service{
		categories:  repos.Categories,
		products:    repos.Products,
		ingredients: repos.Ingredients,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListCategories returns one page of categories.
func (s *Service) ListCategories(ctx context.Context, raw filters.Raw) (domain.PaginationEnvelope[domain.Category], error) {
	return paginate[domain.Category](ctx, s, s.categories, domain.Scope{}, raw, domain.CategoryResource())
}

// ListProducts returns one page of products across all categories.
func (s *Service) ListProducts(ctx context.Context, raw filters.Raw) (domain.PaginationEnvelope[domain.Product], error) {
	return paginate[domain.Product](ctx, s, s.products, domain.Scope{}, raw, domain.ProductResource())
}

// ListIngredients returns one page of ingredients.
func (s *Service) ListIngredients(ctx context.Context, raw filters.Raw) (domain.PaginationEnvelope[domain.Ingredient], error) {
	return paginate[domain.Ingredient](ctx, s, s.ingredients, domain.Scope{}, raw, domain.IngredientResource())
}

// ListCategoryProducts returns one page of the products of a category.
func (s *Service) ListCategoryProducts(ctx context.Context, categoryID int64, raw filters.Raw) (domain.PaginationEnvelope[domain.Product], error) {
	f, err := filters.Build(raw, domain.ProductResource(), filters.Paginated)
	if err != nil {
		return domain.PaginationEnvelope[domain.Product]{}, err
	}
	if _, err := s.Category(ctx, categoryID); err != nil {
		return domain.PaginationEnvelope[domain.Product]{}, err
	}
	listing, err := Run[domain.Product](ctx, s.products, domain.CategoryScope(categoryID), f)
	if err != nil {
		return domain.PaginationEnvelope[domain.Product]{}, err
	}
	s.logListing("products", f, len(listing.Items()))
	return listing.Envelope()
}

// AllCategoryProducts returns every product of a category, sorted but not
// paginated. Page parameters in raw are ignored.
func (s *Service) AllCategoryProducts(ctx context.Context, categoryID int64, raw filters.Raw) ([]domain.Product, error) {
	f, err := filters.Build(raw, domain.ProductResource(), filters.SortingOnly)
	if err != nil {
		return nil, err
	}
	if _, err := s.Category(ctx, categoryID); err != nil {
		return nil, err
	}
	listing, err := Run[domain.Product](ctx, s.products, domain.CategoryScope(categoryID), f)
	if err != nil {
		return nil, err
	}
	s.logListing("products", f, len(listing.Items()))
	return listing.Items(), nil
}

// Category fetches one category. Unknown IDs yield domain.ErrNotFound.
func (s *Service) Category(ctx context.Context, id int64) (domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Category{}, &domain.NotFoundError{Resource: "category"}
		}
		return domain.Category{}, err
	}
	return category, nil
}

// IngredientsForProducts loads the ingredients of many products at once.
func (s *Service) IngredientsForProducts(ctx context.Context, productIDs []int64) (map[int64][]domain.ProductIngredient, error) {
	if len(productIDs) == 0 {
		return map[int64][]domain.ProductIngredient{}, nil
	}
	return s.ingredients.ListByProductIDs(ctx, productIDs)
}

// CategoriesForProducts loads the categories of many products at once.
func (s *Service) CategoriesForProducts(ctx context.Context, productIDs []int64) (map[int64][]domain.Category, error) {
	if len(productIDs) == 0 {
		return map[int64][]domain.Category{}, nil
	}
	return s.categories.ListByProductIDs(ctx, productIDs)
}

// ProductsForIngredients loads the products using each of many ingredients.
func (s *Service) ProductsForIngredients(ctx context.Context, ingredientIDs []int64) (map[int64][]domain.Product, error) {
	if len(ingredientIDs) == 0 {
		return map[int64][]domain.Product{}, nil
	}
	return s.products.ListByIngredientIDs(ctx, ingredientIDs)
}

func paginate[T any](ctx context.Context, s *Service, src Source[T], scope domain.Scope, raw filters.Raw, resource domain.Resource) (domain.PaginationEnvelope[T], error) {
	listing, err := List(ctx, src, scope, raw, resource, true)
	if err != nil {
		return domain.PaginationEnvelope[T]{}, err
	}
	s.logListing(resource.Name, listing.Filters(), len(listing.Items()))
	return listing.Envelope()
}

func (s *Service) logListing(resource string, f domain.QueryFilters, count int) {
	if ce := s.logger.Check(zap.DebugLevel, "catalog listing"); ce != nil {
		fields := []zap.Field{
			zap.String("resource", resource),
			zap.Stringer("sort", f.Sort()),
			zap.Int("count", count),
		}
		if page, err := f.Pagination(); err == nil {
			fields = append(fields, zap.Int("page", page.Page()), zap.Int("limit", page.Limit()))
		}
		ce.Write(fields...)
	}
}
