package cart

import (
	"testing"

	"github.com/envatex/storefront-gateway/pkg/upstream"
	"github.com/stretchr/testify/require"
)

func product(id int64, name string) upstream.Product {
	return upstream.Product{ID: id, Name: name}
}

func TestAddDistinctProducts(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.Add(product(1, "Canvas"))
	s.Add(product(2, "Denim"))
	s.Add(product(3, "Twill"))
	s.Add(product(2, "Denim"))
	s.Add(product(2, "Denim"))

	require.Equal(t, 3, s.Len())
	require.Equal(t, 1, s.QuantityOf(1))
	require.Equal(t, 3, s.QuantityOf(2))
	require.Equal(t, 1, s.QuantityOf(3))
}

func TestAddThenDecrementToEmpty(t *testing.T) {
	t.Parallel()

	s := NewStore()
	for i := 0; i < 4; i++ {
		s.Add(product(1, "Canvas"))
	}
	for i := 0; i < 4; i++ {
		s.Decrement(1)
	}

	require.Equal(t, 0, s.Len())
	require.Equal(t, 0, s.QuantityOf(1))
}

func TestDecrementAbsentProductIsNoop(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.Add(product(1, "Canvas"))

	s.Decrement(99)

	require.Equal(t, 1, s.Len())
	require.Equal(t, 1, s.QuantityOf(1))
}

func TestClearAlwaysEmpties(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.Clear()
	require.Equal(t, 0, s.Len())

	s.Add(product(1, "Canvas"))
	s.Add(product(2, "Denim"))
	s.Clear()
	require.Equal(t, 0, s.Len())
	require.Empty(t, s.Snapshot())
}

func TestAddAddDecrementDecrementScenario(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.Add(product(1, "Canvas"))
	require.Equal(t, 1, s.QuantityOf(1))
	s.Add(product(1, "Canvas"))
	require.Equal(t, 2, s.QuantityOf(1))
	s.Decrement(1)
	require.Equal(t, 1, s.QuantityOf(1))
	s.Decrement(1)
	require.Equal(t, 0, s.QuantityOf(1))
	require.Equal(t, 0, s.Len())
}

func TestInsertionOrderPreserved(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.Add(product(3, "Twill"))
	s.Add(product(1, "Canvas"))
	s.Add(product(2, "Denim"))
	s.Add(product(1, "Canvas"))

	snapshot := s.Snapshot()
	require.Len(t, snapshot, 3)
	require.Equal(t, int64(3), snapshot[0].Product.ID)
	require.Equal(t, int64(1), snapshot[1].Product.ID)
	require.Equal(t, int64(2), snapshot[2].Product.ID)
}

// Re-adding a removed product appends at the tail. This is intentional:
// position is a display concern only.
func TestReAddAfterRemovalAppendsAtTail(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.Add(product(1, "Canvas"))
	s.Add(product(2, "Denim"))
	s.Decrement(1)
	s.Add(product(1, "Canvas"))

	snapshot := s.Snapshot()
	require.Len(t, snapshot, 2)
	require.Equal(t, int64(2), snapshot[0].Product.ID)
	require.Equal(t, int64(1), snapshot[1].Product.ID)
}

func TestSnapshotIsACopy(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.Add(product(1, "Canvas"))

	snapshot := s.Snapshot()
	snapshot[0].Quantity = 99

	require.Equal(t, 1, s.QuantityOf(1))
}
