package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/electrabase/pkg/types"
)

func TestSubscribe_Cancel(t *testing.T) {
	inv := setupInventory(t, false)
	ctx := context.Background()

	first, second := &recorder{}, &recorder{}
	sub1 := inv.Subscribe(first.handle)
	sub2 := inv.Subscribe(second.handle)
	assert.NotEqual(t, sub1.ID(), sub2.ID())

	_, err := inv.AddComponent(ctx, types.NewActive("NE555", "TI", 50, "IC", 15, 8, ""))
	require.NoError(t, err)

	sub1.Cancel()
	sub1.Cancel()

	_, err = inv.AddCategory(ctx, types.Category{Name: "Sensor"})
	require.NoError(t, err)

	assert.Equal(t, []EventKind{ComponentsChanged}, first.kinds())
	assert.Equal(t, []EventKind{ComponentsChanged, CategoriesChanged}, second.kinds())

	sub2.Cancel()
	assert.Zero(t, inv.events.len())
}

func TestErrorEventCarriesMessage(t *testing.T) {
	inv := setupInventory(t, false)
	ctx := context.Background()

	rec := &recorder{}
	sub := inv.Subscribe(rec.handle)
	defer sub.Cancel()

	_, err := inv.DeleteCategory(ctx, 9999)
	require.ErrorIs(t, err, types.ErrNotFound)

	require.Len(t, rec.events, 1)
	assert.Equal(t, ErrorOccurred, rec.events[0].Kind)
	assert.Contains(t, rec.events[0].Message, "delete category")
}

func TestHandlerMayCallBack(t *testing.T) {
	inv := setupInventory(t, false)
	ctx := context.Background()

	var seen int
	sub := inv.Subscribe(func(ev Event) {
		if ev.Kind != ComponentsChanged {
			return
		}
		components, err := inv.ListComponents(ctx)
		require.NoError(t, err)
		seen = len(components)
	})
	defer sub.Cancel()

	_, err := inv.AddComponent(ctx, types.NewActive("NE555", "TI", 50, "IC", 15, 8, ""))
	require.NoError(t, err)
	assert.Equal(t, 1, seen)
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "components_changed", ComponentsChanged.String())
	assert.Equal(t, "categories_changed", CategoriesChanged.String())
	assert.Equal(t, "error_occurred", ErrorOccurred.String())
	assert.Equal(t, "unknown", EventKind(0).String())
}
