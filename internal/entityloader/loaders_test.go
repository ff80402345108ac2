package entityloader

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rpattn/barmenu/internal/domain"
)

type stubRelations struct {
	mu      sync.Mutex
	batches [][]int64
	err     error
}

func (s *stubRelations) record(ids []int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = append(s.batches, append([]int64(nil), ids...))
}

func (s *stubRelations) IngredientsForProducts(_ context.Context, ids []int64) (map[int64][]domain.ProductIngredient, error) {
	s.record(ids)
	if s.err != nil {
		return nil, s.err
	}
	out := map[int64][]domain.ProductIngredient{}
	for _, id := range ids {
		if id == 2 {
			continue
		}
		out[id] = []domain.ProductIngredient{{Ingredient: domain.Ingredient{ID: id * 10}, Type: domain.IngredientTypeBase}}
	}
	return out, nil
}

func (s *stubRelations) CategoriesForProducts(_ context.Context, ids []int64) (map[int64][]domain.Category, error) {
	s.record(ids)
	return map[int64][]domain.Category{}, nil
}

func (s *stubRelations) ProductsForIngredients(_ context.Context, ids []int64) (map[int64][]domain.Product, error) {
	s.record(ids)
	return map[int64][]domain.Product{}, nil
}

func TestLoadersBatchPendingKeys(t *testing.T) {
	src := &stubRelations{}
	loaders := NewLoaders(src)
	ctx := context.Background()

	thunks := []func() (any, error){}
	for _, id := range []int64{1, 2, 3} {
		thunks = append(thunks, loaders.ingredientsByProduct.Load(ctx, key(id)))
	}
	for i, thunk := range thunks {
		data, err := thunk()
		if err != nil {
			t.Fatalf("thunk %d: %v", i, err)
		}
		items := data.([]domain.ProductIngredient)
		if i == 1 && len(items) != 0 {
			t.Fatalf("expected no ingredients for product 2, got %+v", items)
		}
		if i != 1 && (len(items) != 1 || items[0].ID != int64(i+1)*10) {
			t.Fatalf("unexpected ingredients for key %d: %+v", i, items)
		}
	}

	if len(src.batches) != 1 || len(src.batches[0]) != 3 {
		t.Fatalf("expected one batch of 3 keys, got %v", src.batches)
	}
}

func TestLoadersReturnEmptySliceForMissingKeys(t *testing.T) {
	loaders := NewLoaders(&stubRelations{})

	categories, err := loaders.CategoriesOf(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if categories == nil || len(categories) != 0 {
		t.Fatalf("expected empty slice, got %#v", categories)
	}
}

func TestLoadersPropagateFetchErrors(t *testing.T) {
	boom := errors.New("db down")
	loaders := NewLoaders(&stubRelations{err: boom})

	if _, err := loaders.IngredientsOf(context.Background(), 1); !errors.Is(err, boom) {
		t.Fatalf("expected fetch error, got %v", err)
	}
}
