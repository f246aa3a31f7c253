package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/salescope-lab/salescope/internal/core/engine"
	"github.com/salescope-lab/salescope/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestLoadSnapshot_WithCustomerColumn(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	adapter := NewAdapterFromDB(db)

	mock.ExpectQuery(regexp.QuoteMeta(queryColumnExists)).
		WithArgs("customer_name").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	orderDate := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(querySelectRecordsWithCustomer)).
		WillReturnRows(sqlmock.NewRows([]string{
			"order_number", "line_number", "order_date", "quantity",
			"unit_price", "sales_amount", "status", "country", "product_line", "customer_name",
		}).
			AddRow("10100", 1, orderDate, 2, "50.25", "100.50", "SHIPPED", "usa", "classic cars", "mini gifts ltd.").
			AddRow("10101", 1, orderDate, 1, "75.00", "75.00", "Cancelled", "France", "Trains", "Euro Shopping"))

	snap, err := adapter.LoadSnapshot(context.Background())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Equal(t, 2, snap.Len())
	require.True(t, snap.HasCustomerName())

	rows := engine.SalesByCountry(snap)
	require.Len(t, rows, 1, "cancelled record excluded, labels normalized")
	require.Equal(t, "Usa", rows[0].Country)
	require.True(t, decimal.RequireFromString("100.50").Equal(rows[0].TotalSales))
}

func TestLoadSnapshot_WithoutCustomerColumn(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	adapter := NewAdapterFromDB(db)

	mock.ExpectQuery(regexp.QuoteMeta(queryColumnExists)).
		WithArgs("customer_name").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	orderDate := time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(querySelectRecords)).
		WillReturnRows(sqlmock.NewRows([]string{
			"order_number", "line_number", "order_date", "quantity",
			"unit_price", "sales_amount", "status", "country", "product_line",
		}).
			AddRow("10102", 1, orderDate, 1, "200.00", "200.00", "Shipped", "France", "Trains"))

	snap, err := adapter.LoadSnapshot(context.Background())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	require.False(t, snap.HasCustomerName())

	customers, count := engine.TopCustomers(snap, engine.DefaultTopCustomersLimit)
	require.Equal(t, 1, count)
	require.Equal(t, "France", customers[0].Customer)
}

func TestValidateSchema_MissingColumn(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	adapter := NewAdapterFromDB(db)

	mock.ExpectQuery(regexp.QuoteMeta(queryColumnExists)).
		WithArgs("order_number").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta(queryColumnExists)).
		WithArgs("order_date").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err = adapter.ValidateSchema()
	require.Error(t, err)
	require.ErrorIs(t, err, store.ErrSchemaMismatch)
	require.Contains(t, err.Error(), "order_date")
}

func TestLoadSnapshot_BadDecimalFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	adapter := NewAdapterFromDB(db)

	mock.ExpectQuery(regexp.QuoteMeta(queryColumnExists)).
		WithArgs("customer_name").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	mock.ExpectQuery(regexp.QuoteMeta(querySelectRecords)).
		WillReturnRows(sqlmock.NewRows([]string{
			"order_number", "line_number", "order_date", "quantity",
			"unit_price", "sales_amount", "status", "country", "product_line",
		}).
			AddRow("10103", 1, time.Now(), 1, "not-a-number", "10.00", "Shipped", "USA", "Planes"))

	_, err = adapter.LoadSnapshot(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid unit_price")
}
