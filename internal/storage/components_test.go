package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/electrabase/pkg/types"
)

func TestComponentStore_RoundTrip(t *testing.T) {
	storage := setupTestDB(t)
	defer storage.Close()
	ctx := context.Background()

	t.Run("passive", func(t *testing.T) {
		c := types.NewPassive("RES-4K7-0805", "Panasonic", 75, "Resistor", 4700.0, "Ω", "0805")
		id, err := storage.Components().Add(ctx, c)
		require.NoError(t, err)

		got, err := storage.Components().GetByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, types.KindPassive, got.Kind)
		require.NotNil(t, got.Passive)
		assert.Equal(t, 4700.0, got.Passive.Value)
		assert.Equal(t, "Ω", got.Passive.Unit)
		assert.Equal(t, "0805", got.Passive.Package)

		c.ID = id
		assert.Equal(t, c, got)
	})

	t.Run("active", func(t *testing.T) {
		c := types.NewActive("STM32F103C8T6", "STMicroelectronics", 15, "IC", 3.3, 48,
			"https://www.st.com/resource/en/datasheet/stm32f103c8.pdf")
		id, err := storage.Components().Add(ctx, c)
		require.NoError(t, err)

		got, err := storage.Components().GetByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, types.KindActive, got.Kind)
		require.NotNil(t, got.Active)
		assert.Equal(t, 3.3, got.Active.OperatingVoltage)
		assert.Equal(t, 48, got.Active.PinCount)

		c.ID = id
		assert.Equal(t, c, got)
	})
}

func TestComponentStore_HydrationFallback(t *testing.T) {
	storage := setupTestDB(t)
	defer storage.Close()
	ctx := context.Background()

	q := storage.conn.querier()
	_, err := q.ExecContext(ctx, `INSERT INTO inventory (name, manufacturer, type, quantity, param_1, param_2, extra_data)
		VALUES ('Mystery', NULL, 'Vanished', 2, 1.5, 'DIP', 'x')`)
	require.NoError(t, err)
	_, err = q.ExecContext(ctx, `INSERT INTO inventory (name, type, quantity, param_1, param_2, extra_data)
		VALUES ('Odd IC', 'IC', 1, 5.0, 'lots', '')`)
	require.NoError(t, err)

	components, err := storage.Components().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, components, 2)

	mystery := components[0]
	assert.Equal(t, "Mystery", mystery.Name)
	assert.Equal(t, types.KindPassive, mystery.Kind)
	assert.Equal(t, "", mystery.Manufacturer)
	require.NotNil(t, mystery.Passive)
	assert.Equal(t, 1.5, mystery.Passive.Value)
	assert.Equal(t, "DIP", mystery.Passive.Package)
	assert.Equal(t, "x", mystery.Passive.Unit)

	odd := components[1]
	require.Equal(t, types.KindActive, odd.Kind)
	assert.Equal(t, 0, odd.Active.PinCount)
}

func TestComponentStore_Update(t *testing.T) {
	storage := setupTestDB(t)
	defer storage.Close()
	ctx := context.Background()

	c := types.NewPassive("CAP-1uF-0805", "Samsung", 5, "Capacitor", 1e-6, "F", "0805")
	id, err := storage.Components().Add(ctx, c)
	require.NoError(t, err)

	updated := types.NewActive("1N4148", "Vishay", 500, "Diode", 100, 2, "")
	updated.ID = id
	require.NoError(t, storage.Components().Update(ctx, updated))

	got, err := storage.Components().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	missing := updated
	missing.ID = 9999
	err = storage.Components().Update(ctx, missing)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestComponentStore_Delete(t *testing.T) {
	storage := setupTestDB(t)
	defer storage.Close()
	ctx := context.Background()

	id, err := storage.Components().Add(ctx, types.NewActive("NE555", "TI", 50, "IC", 15, 8, ""))
	require.NoError(t, err)

	require.NoError(t, storage.Components().Delete(ctx, id))

	_, err = storage.Components().GetByID(ctx, id)
	assert.ErrorIs(t, err, types.ErrNotFound)

	err = storage.Components().Delete(ctx, id)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestComponentStore_Queries(t *testing.T) {
	storage := setupTestDB(t)
	defer storage.Close()
	ctx := context.Background()

	inserted, err := storage.SeedSampleData(ctx, true)
	require.NoError(t, err)
	require.Equal(t, len(SampleComponents()), inserted)

	t.Run("list all ordered by name", func(t *testing.T) {
		all, err := storage.Components().ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, inserted)
		for i := 1; i < len(all); i++ {
			assert.LessOrEqual(t, all[i-1].Name, all[i].Name)
		}
	})

	t.Run("by category", func(t *testing.T) {
		capacitors, err := storage.Components().ListByCategory(ctx, "Capacitor")
		require.NoError(t, err)
		require.Len(t, capacitors, 4)
		for _, c := range capacitors {
			assert.Equal(t, "Capacitor", c.Category)
			assert.Equal(t, types.KindPassive, c.Kind)
		}
	})

	t.Run("low stock", func(t *testing.T) {
		const threshold = 10
		low, err := storage.Components().ListLowStock(ctx, threshold)
		require.NoError(t, err)

		all, err := storage.Components().ListAll(ctx)
		require.NoError(t, err)
		want := 0
		for _, c := range all {
			if c.IsLowStock(threshold) {
				want++
			}
		}
		require.Len(t, low, want)

		for i, c := range low {
			assert.Less(t, c.Quantity, threshold)
			if i > 0 {
				assert.LessOrEqual(t, low[i-1].Quantity, c.Quantity)
			}
		}
		assert.Equal(t, "IND-100uH-THT", low[0].Name)
	})

	t.Run("search ignores case", func(t *testing.T) {
		found, err := storage.Components().SearchByName(ctx, "res")
		require.NoError(t, err)
		require.NotEmpty(t, found)
		for _, c := range found {
			assert.Contains(t, c.Name, "RES")
		}

		found, err = storage.Components().SearchByName(ctx, "100nf")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "CAP-100nF-0805", found[0].Name)
	})

	t.Run("search escapes wildcards", func(t *testing.T) {
		found, err := storage.Components().SearchByName(ctx, "%")
		require.NoError(t, err)
		assert.Empty(t, found)

		found, err = storage.Components().SearchByName(ctx, "_")
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("composed options", func(t *testing.T) {
		found, err := storage.Components().List(ctx,
			ByCategory("Resistor"), BelowQuantity(100), OrderByQuantity(), WithLimit(2))
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "RES-10K-0805", found[0].Name)
		assert.Equal(t, "RES-100K-1206", found[1].Name)

		count, err := storage.Components().Count(ctx, ByCategory("Resistor"))
		require.NoError(t, err)
		assert.Equal(t, 6, count)
	})
}

func TestComponentStore_ReturnsIndependentCopies(t *testing.T) {
	storage := setupTestDB(t)
	defer storage.Close()
	ctx := context.Background()

	id, err := storage.Components().Add(ctx, types.NewPassive("R1", "Yageo", 1, "Resistor", 10, "Ω", "0805"))
	require.NoError(t, err)

	first, err := storage.Components().GetByID(ctx, id)
	require.NoError(t, err)
	first.Passive.Value = 99

	second, err := storage.Components().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 10.0, second.Passive.Value)
}
