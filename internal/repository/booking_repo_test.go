package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/ImArijitBasu/vehicle-rental-backend/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookingMock(t *testing.T) (pgxmock.PgxPoolIface, BookingRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewBookingRepository(mock)
}

func testDates() (time.Time, time.Time) {
	start, _ := time.Parse("2006-01-02", "2024-06-10")
	end, _ := time.Parse("2006-01-02", "2024-06-13")
	return start, end
}

func TestBookingRepository_Create(t *testing.T) {
	mock, repo := newBookingMock(t)
	start, end := testDates()
	b := &model.Booking{CustomerID: 5, VehicleID: 2, RentStartDate: start, RentEndDate: end}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM vehicles WHERE id = $1 FOR UPDATE")).
		WithArgs(2).
		WillReturnRows(pgxmock.NewRows([]string{"vehicle_name", "daily_rent_price", "availability_status"}).
			AddRow("Toyota Corolla", 100.0, model.StatusAvailable))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
		WithArgs(5, 2, start, end, 300.0, model.BookingActive).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE vehicles SET availability_status = 'booked'")).
		WithArgs(2).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	summary, err := repo.Create(context.Background(), b)

	require.NoError(t, err)
	assert.Equal(t, int64(11), b.ID)
	assert.Equal(t, 300.0, b.TotalPrice)
	assert.Equal(t, model.BookingActive, b.Status)
	assert.Equal(t, "Toyota Corolla", summary.VehicleName)
	assert.Equal(t, 100.0, summary.DailyRentPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_Create_VehicleBooked(t *testing.T) {
	mock, repo := newBookingMock(t)
	start, end := testDates()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM vehicles WHERE id = $1 FOR UPDATE")).
		WithArgs(2).
		WillReturnRows(pgxmock.NewRows([]string{"vehicle_name", "daily_rent_price", "availability_status"}).
			AddRow("Toyota Corolla", 100.0, model.StatusBooked))
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), &model.Booking{CustomerID: 5, VehicleID: 2, RentStartDate: start, RentEndDate: end})

	assert.ErrorIs(t, err, ErrVehicleUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_Create_VehicleMissing(t *testing.T) {
	mock, repo := newBookingMock(t)
	start, end := testDates()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM vehicles WHERE id = $1 FOR UPDATE")).
		WithArgs(99).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), &model.Booking{CustomerID: 5, VehicleID: 99, RentStartDate: start, RentEndDate: end})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_Create_GateClosedUnderneath(t *testing.T) {
	mock, repo := newBookingMock(t)
	start, end := testDates()

	// The conditional update matching zero rows means another writer won
	// the vehicle despite the earlier check. Everything rolls back.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM vehicles WHERE id = $1 FOR UPDATE")).
		WithArgs(2).
		WillReturnRows(pgxmock.NewRows([]string{"vehicle_name", "daily_rent_price", "availability_status"}).
			AddRow("Toyota Corolla", 100.0, model.StatusAvailable))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
		WithArgs(5, 2, start, end, 300.0, model.BookingActive).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE vehicles SET availability_status = 'booked'")).
		WithArgs(2).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), &model.Booking{CustomerID: 5, VehicleID: 2, RentStartDate: start, RentEndDate: end})

	assert.ErrorIs(t, err, ErrVehicleUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_UpdateStatus(t *testing.T) {
	mock, repo := newBookingMock(t)
	start, end := testDates()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(11)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "customer_id", "vehicle_id", "rent_start_date", "rent_end_date", "total_price", "status"}).
			AddRow(int64(11), 5, 2, start, end, 300.0, model.BookingActive))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $1 WHERE id = $2")).
		WithArgs(model.BookingCancelled, int64(11)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE vehicles SET availability_status = 'available' WHERE id = $1")).
		WithArgs(2).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	b, err := repo.UpdateStatus(context.Background(), 11, model.BookingCancelled)

	require.NoError(t, err)
	assert.Equal(t, model.BookingCancelled, b.Status)
	assert.Equal(t, 2, b.VehicleID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_UpdateStatus_AlreadyTerminal(t *testing.T) {
	mock, repo := newBookingMock(t)
	start, end := testDates()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(11)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "customer_id", "vehicle_id", "rent_start_date", "rent_end_date", "total_price", "status"}).
			AddRow(int64(11), 5, 2, start, end, 300.0, model.BookingCancelled))
	mock.ExpectRollback()

	_, err := repo.UpdateStatus(context.Background(), 11, model.BookingReturned)

	assert.ErrorIs(t, err, ErrBookingNotActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_SweepOverdue(t *testing.T) {
	mock, repo := newBookingMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = 'returned'")).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	swept, err := repo.SweepOverdue(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), swept)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_OwnerID(t *testing.T) {
	mock, repo := newBookingMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT customer_id FROM bookings WHERE id = $1")).
		WithArgs(int64(11)).
		WillReturnRows(pgxmock.NewRows([]string{"customer_id"}).AddRow(5))

	ownerID, found, err := repo.OwnerID(context.Background(), 11)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 5, ownerID)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT customer_id FROM bookings WHERE id = $1")).
		WithArgs(int64(404)).
		WillReturnError(pgx.ErrNoRows)

	_, found, err = repo.OwnerID(context.Background(), 404)
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_HasActiveByVehicle(t *testing.T) {
	mock, repo := newBookingMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM bookings WHERE vehicle_id = $1 AND status = 'active'")).
		WithArgs(2).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))

	active, err := repo.HasActiveByVehicle(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, active)
	assert.NoError(t, mock.ExpectationsWereMet())
}
