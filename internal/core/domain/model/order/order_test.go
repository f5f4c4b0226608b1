package order_test

import (
	"testing"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems(t *testing.T) []order.Item {
	t.Helper()

	// Two lines totaling 47000: 2 x 18500 + 1 x 10000.
	bottle, err := order.NewItem(kernel.NewUUID(), "Water 19L", 2, decimal.NewFromInt(18500))
	require.NoError(t, err)
	pump, err := order.NewItem(kernel.NewUUID(), "Manual pump", 1, decimal.NewFromInt(10000))
	require.NoError(t, err)

	return []order.Item{bottle, pump}
}

func testOrder(t *testing.T) *order.Order {
	t.Helper()

	geo, err := kernel.NewGeoPoint(41.2995, 69.2401)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Aziz Karimov",
		"12 Amir Temur Avenue",
		geo,
		testItems(t),
		time.Now().Add(2*time.Hour),
	)
	require.NoError(t, err)
	return o
}

func testDriver(t *testing.T, name string) order.DriverRef {
	t.Helper()

	d, err := order.NewDriverRef(kernel.NewUUID(), name)
	require.NoError(t, err)
	return d
}

func TestNewOrder(t *testing.T) {
	t.Run("should create Pending order with computed total", func(t *testing.T) {
		o := testOrder(t)

		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.Driver())
		assert.Empty(t, o.CancelReason())
		assert.Zero(t, o.OrderNumber())
		assert.True(t, decimal.NewFromInt(47000).Equal(o.Total()))
		assert.Len(t, o.Items(), 2)
	})

	t.Run("should reject empty item list", func(t *testing.T) {
		geo, err := kernel.NewGeoPoint(41.3, 69.2)
		require.NoError(t, err)

		_, err = order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"Aziz Karimov", "12 Amir Temur Avenue", geo, nil, time.Now().Add(time.Hour))

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject missing client name and address", func(t *testing.T) {
		geo, err := kernel.NewGeoPoint(41.3, 69.2)
		require.NoError(t, err)
		items := testItems(t)

		_, err = order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"", "12 Amir Temur Avenue", geo, items, time.Now().Add(time.Hour))
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"Aziz Karimov", "", geo, items, time.Now().Add(time.Hour))
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should freeze items against caller mutation", func(t *testing.T) {
		o := testOrder(t)
		before := o.Total()

		leaked := o.Items()
		leaked[0] = order.Item{}

		assert.True(t, before.Equal(o.Total()))
		require.NoError(t, o.Items()[0].Validate())
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should reject zero-value order", func(t *testing.T) {
		var o order.Order

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("should reject nil order", func(t *testing.T) {
		var o *order.Order

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_AssignDriver(t *testing.T) {
	t.Run("should assign driver to Pending order", func(t *testing.T) {
		o := testOrder(t)
		driver := testDriver(t, "Bekzod")

		require.NoError(t, o.AssignDriver(driver))

		assert.Equal(t, order.Assigned, o.Status())
		require.NotNil(t, o.Driver())
		assert.True(t, driver.IsEqual(*o.Driver()))
	})

	t.Run("should replace prior assignment atomically", func(t *testing.T) {
		o := testOrder(t)
		first := testDriver(t, "Bekzod")
		second := testDriver(t, "Rustam")

		require.NoError(t, o.AssignDriver(first))
		require.NoError(t, o.AssignDriver(second))

		assert.Equal(t, order.Assigned, o.Status())
		assert.True(t, second.IsEqual(*o.Driver()))
	})

	t.Run("should reject unconstructed driver", func(t *testing.T) {
		o := testOrder(t)

		err := o.AssignDriver(order.DriverRef{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("should conflict on OnTheWay order", func(t *testing.T) {
		o := testOrder(t)
		require.NoError(t, o.AssignDriver(testDriver(t, "Bekzod")))
		require.NoError(t, o.Advance(order.OnTheWay))

		err := o.AssignDriver(testDriver(t, "Rustam"))

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, order.OnTheWay, o.Status())
	})
}

// TestOrder_FullDeliveryFlow walks the forward path end to end and verifies
// the record freezes once delivered.
func TestOrder_FullDeliveryFlow(t *testing.T) {
	o := testOrder(t)
	driver := testDriver(t, "Bekzod")

	require.Equal(t, order.Pending, o.Status())
	assert.True(t, decimal.NewFromInt(47000).Equal(o.Total()))

	require.NoError(t, o.AssignDriver(driver))
	assert.Equal(t, order.Assigned, o.Status())
	assert.True(t, driver.IsEqual(*o.Driver()))

	require.NoError(t, o.Advance(order.OnTheWay))
	assert.Equal(t, order.OnTheWay, o.Status())

	require.NoError(t, o.Advance(order.Delivered))
	assert.Equal(t, order.Delivered, o.Status())

	// Terminal: every further mutation conflicts and changes nothing.
	require.ErrorIs(t, o.Cancel("customer changed mind"), errs.ErrConflict)
	require.ErrorIs(t, o.AssignDriver(testDriver(t, "Rustam")), errs.ErrConflict)
	require.ErrorIs(t, o.ReturnToQueue(), errs.ErrConflict)
	assert.Equal(t, order.Delivered, o.Status())
	assert.True(t, driver.IsEqual(*o.Driver()))
	assert.Empty(t, o.CancelReason())
}

func TestOrder_ReturnToQueue(t *testing.T) {
	t.Run("should clear driver and allow a fresh assignment", func(t *testing.T) {
		o := testOrder(t)
		first := testDriver(t, "Bekzod")
		second := testDriver(t, "Rustam")
		require.NoError(t, o.AssignDriver(first))

		require.NoError(t, o.ReturnToQueue())
		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.Driver())

		require.NoError(t, o.AssignDriver(second))
		assert.Equal(t, order.Assigned, o.Status())
		assert.True(t, second.IsEqual(*o.Driver()))
	})

	t.Run("should work from OnTheWay", func(t *testing.T) {
		o := testOrder(t)
		require.NoError(t, o.AssignDriver(testDriver(t, "Bekzod")))
		require.NoError(t, o.Advance(order.OnTheWay))

		require.NoError(t, o.ReturnToQueue())

		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.Driver())
	})

	t.Run("should conflict from Pending", func(t *testing.T) {
		o := testOrder(t)

		require.ErrorIs(t, o.ReturnToQueue(), errs.ErrConflict)
		assert.Equal(t, order.Pending, o.Status())
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("should cancel with stored reason", func(t *testing.T) {
		o := testOrder(t)

		require.NoError(t, o.Cancel("address unreachable"))

		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, "address unreachable", o.CancelReason())
	})

	t.Run("should require a reason before touching state", func(t *testing.T) {
		o := testOrder(t)

		err := o.Cancel("")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, order.Pending, o.Status())
		assert.Empty(t, o.CancelReason())
	})

	t.Run("should conflict on already cancelled order", func(t *testing.T) {
		o := testOrder(t)
		require.NoError(t, o.Cancel("first reason"))

		err := o.Cancel("second reason")

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, "first reason", o.CancelReason())
	})
}

func TestOrder_SetOrderNumber(t *testing.T) {
	t.Run("should accept a number once", func(t *testing.T) {
		o := testOrder(t)

		require.NoError(t, o.SetOrderNumber(17))
		assert.Equal(t, int64(17), o.OrderNumber())
	})

	t.Run("should reject a second number", func(t *testing.T) {
		o := testOrder(t)
		require.NoError(t, o.SetOrderNumber(17))

		require.ErrorIs(t, o.SetOrderNumber(18), errs.ErrConflict)
		assert.Equal(t, int64(17), o.OrderNumber())
	})

	t.Run("should reject non-positive numbers", func(t *testing.T) {
		o := testOrder(t)

		require.ErrorIs(t, o.SetOrderNumber(0), errs.ErrValueIsInvalid)
	})
}

func TestRestoreOrder(t *testing.T) {
	geo, geoErr := kernel.NewGeoPoint(41.3, 69.2)
	require.NoError(t, geoErr)

	t.Run("should restore assigned order with driver", func(t *testing.T) {
		driver := testDriver(t, "Bekzod")
		now := time.Now().UTC()

		o, err := order.RestoreOrder(
			kernel.NewUUID(), 5, kernel.NewUUID(), kernel.NewUUID(), "Aziz Karimov",
			"12 Amir Temur Avenue", geo, testItems(t), decimal.NewFromInt(47000),
			order.Assigned, &driver, "", now, now, now.Add(time.Hour))

		require.NoError(t, err)
		assert.Equal(t, order.Assigned, o.Status())
		assert.Equal(t, int64(5), o.OrderNumber())
		assert.True(t, decimal.NewFromInt(47000).Equal(o.Total()))
	})

	t.Run("should keep stored total without recomputing", func(t *testing.T) {
		driver := testDriver(t, "Bekzod")
		now := time.Now().UTC()

		// Stored total intentionally differs from the current item math;
		// the stored value wins because totals are never recomputed.
		o, err := order.RestoreOrder(
			kernel.NewUUID(), 5, kernel.NewUUID(), kernel.NewUUID(), "Aziz Karimov",
			"12 Amir Temur Avenue", geo, testItems(t), decimal.NewFromInt(45000),
			order.Assigned, &driver, "", now, now, now.Add(time.Hour))

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(45000).Equal(o.Total()))
	})

	t.Run("should reject driver on Pending order", func(t *testing.T) {
		driver := testDriver(t, "Bekzod")
		now := time.Now().UTC()

		_, err := order.RestoreOrder(
			kernel.NewUUID(), 5, kernel.NewUUID(), kernel.NewUUID(), "Aziz Karimov",
			"12 Amir Temur Avenue", geo, testItems(t), decimal.NewFromInt(47000),
			order.Pending, &driver, "", now, now, now.Add(time.Hour))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject Cancelled order without reason", func(t *testing.T) {
		now := time.Now().UTC()

		_, err := order.RestoreOrder(
			kernel.NewUUID(), 5, kernel.NewUUID(), kernel.NewUUID(), "Aziz Karimov",
			"12 Amir Temur Avenue", geo, testItems(t), decimal.NewFromInt(47000),
			order.Cancelled, nil, "", now, now, now.Add(time.Hour))

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestNewItem(t *testing.T) {
	t.Run("should reject non-positive quantity", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), "Water 19L", 0, decimal.NewFromInt(18500))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject negative price", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), "Water 19L", 1, decimal.NewFromInt(-1))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should compute subtotal", func(t *testing.T) {
		item, err := order.NewItem(kernel.NewUUID(), "Water 19L", 3, decimal.NewFromInt(18500))

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(55500).Equal(item.Subtotal()))
	})
}
