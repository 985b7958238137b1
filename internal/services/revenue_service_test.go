package services

import (
	"context"
	"testing"
	"time"

	"sponsorhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newRevenueFixture(t *testing.T) (*MockVehicleRepository, *MockVehicleRequestRepository, *MockBookingRepository, RevenueService) {
	t.Helper()
	vehicleRepo := new(MockVehicleRepository)
	requestRepo := new(MockVehicleRequestRepository)
	bookingRepo := new(MockBookingRepository)

	registry := NewRegistryService(vehicleRepo, requestRepo, testLogger())
	revenue := NewRevenueService(registry, bookingRepo, testLogger())

	return vehicleRepo, requestRepo, bookingRepo, revenue
}

func booking(vehicleID int64, vehicleType, status string, amount float64, createdAt time.Time) *models.Booking {
	return &models.Booking{
		ID:          primitive.NewObjectID(),
		VehicleID:   vehicleID,
		VehicleType: vehicleType,
		Status:      status,
		TotalAmount: amount,
		CreatedAt:   createdAt,
	}
}

func hoursPtr(h float64) *float64 { return &h }

func TestAggregateSponsor_CompositeKeyKeepsCategoriesApart(t *testing.T) {
	vehicleRepo, _, bookingRepo, revenue := newRevenueFixture(t)
	sponsorID := primitive.NewObjectID()
	now := time.Now()

	// The sponsor owns bike #7. Car #7 belongs to someone else and shares
	// only the numeric id.
	vehicleRepo.On("GetBySponsorID", mock.Anything, sponsorID).Return([]*models.Vehicle{
		{VehicleID: 7, Category: models.VehicleCategoryBike, SponsorID: sponsorID, Name: "Pulsar 150"},
	}, nil)

	carBooking := booking(7, "cars", "completed", 900, now)
	bikeBooking := booking(7, "bikes", "completed", 300, now)
	bikeBooking.Duration = hoursPtr(2)

	bookingRepo.On("GetByVehicleIDs", mock.Anything, []int64{7}).Return([]*models.Booking{
		carBooking, bikeBooking,
	}, nil)

	result, err := revenue.AggregateSponsor(context.Background(), sponsorID, models.TimeWindow{})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.BookingsCount)
	assert.Equal(t, 300.0, result.GrossRevenue)
	assert.Len(t, result.Transactions, 1)
	assert.Equal(t, bikeBooking.ID, result.Transactions[0].BookingID)
}

func TestAggregateSponsor_RevenueOnlyFromCompletedBookings(t *testing.T) {
	vehicleRepo, _, bookingRepo, revenue := newRevenueFixture(t)
	sponsorID := primitive.NewObjectID()
	now := time.Now()

	vehicleRepo.On("GetBySponsorID", mock.Anything, sponsorID).Return([]*models.Vehicle{
		{VehicleID: 1, Category: models.VehicleCategoryCar, SponsorID: sponsorID, Name: "Swift"},
	}, nil)

	completed := booking(1, "car", "ride_completed", 1200, now)
	completed.Duration = hoursPtr(3)
	active := booking(1, "car", "ongoing", 500, now)
	active.Duration = hoursPtr(1.5)
	cancelled := booking(1, "car", "cancelled", 800, now)
	cancelled.Duration = hoursPtr(2)
	pending := booking(1, "car", "pending", 400, now)

	bookingRepo.On("GetByVehicleIDs", mock.Anything, []int64{1}).Return([]*models.Booking{
		completed, active, cancelled, pending,
	}, nil)

	result, err := revenue.AggregateSponsor(context.Background(), sponsorID, models.TimeWindow{})

	assert.NoError(t, err)
	// All four bookings are attributed to the vehicle.
	assert.Equal(t, int64(4), result.BookingsCount)
	// Only the completed booking pays out.
	assert.Equal(t, 1200.0, result.GrossRevenue)
	assert.Len(t, result.Transactions, 1)
	// Completed and active accrue hours; cancelled and pending do not.
	assert.InDelta(t, 4.5, result.RideHours, 0.0001)
}

func TestAggregateSponsor_TypelessBookingFallback(t *testing.T) {
	vehicleRepo, _, bookingRepo, revenue := newRevenueFixture(t)
	sponsorID := primitive.NewObjectID()
	now := time.Now()

	// Vehicle id 3 exists only once, id 9 exists in two categories.
	vehicleRepo.On("GetBySponsorID", mock.Anything, sponsorID).Return([]*models.Vehicle{
		{VehicleID: 3, Category: models.VehicleCategoryScooty, SponsorID: sponsorID, Name: "Activa"},
		{VehicleID: 9, Category: models.VehicleCategoryBike, SponsorID: sponsorID, Name: "Splendor"},
		{VehicleID: 9, Category: models.VehicleCategoryCar, SponsorID: sponsorID, Name: "Baleno"},
	}, nil)

	unambiguous := booking(3, "", "completed", 150, now)
	ambiguous := booking(9, "", "completed", 999, now)

	bookingRepo.On("GetByVehicleIDs", mock.Anything, mock.Anything).Return([]*models.Booking{
		unambiguous, ambiguous,
	}, nil)

	result, err := revenue.AggregateSponsor(context.Background(), sponsorID, models.TimeWindow{})

	assert.NoError(t, err)
	// The unambiguous one lands on the scooty; the ambiguous one is dropped.
	assert.Equal(t, int64(1), result.BookingsCount)
	assert.Equal(t, 150.0, result.GrossRevenue)
}

func TestAggregateSponsor_WindowIsHalfOpen(t *testing.T) {
	vehicleRepo, _, bookingRepo, revenue := newRevenueFixture(t)
	sponsorID := primitive.NewObjectID()

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	vehicleRepo.On("GetBySponsorID", mock.Anything, sponsorID).Return([]*models.Vehicle{
		{VehicleID: 2, Category: models.VehicleCategoryBike, SponsorID: sponsorID, Name: "FZ"},
	}, nil)

	atStart := booking(2, "bike", "completed", 100, from)
	inside := booking(2, "bike", "completed", 200, from.Add(10*24*time.Hour))
	atEnd := booking(2, "bike", "completed", 400, to)
	before := booking(2, "bike", "completed", 800, from.Add(-time.Second))

	bookingRepo.On("GetByVehicleIDs", mock.Anything, []int64{2}).Return([]*models.Booking{
		atStart, inside, atEnd, before,
	}, nil)

	result, err := revenue.AggregateSponsor(context.Background(), sponsorID,
		models.TimeWindow{From: &from, To: &to})

	assert.NoError(t, err)
	assert.Equal(t, int64(2), result.BookingsCount)
	assert.Equal(t, 300.0, result.GrossRevenue)
}

func TestAggregateSponsor_TransactionsSortedNewestFirst(t *testing.T) {
	vehicleRepo, _, bookingRepo, revenue := newRevenueFixture(t)
	sponsorID := primitive.NewObjectID()
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	vehicleRepo.On("GetBySponsorID", mock.Anything, sponsorID).Return([]*models.Vehicle{
		{VehicleID: 4, Category: models.VehicleCategoryCar, SponsorID: sponsorID, Name: "i20"},
	}, nil)

	oldest := booking(4, "car", "completed", 100, base)
	middle := booking(4, "car", "completed", 200, base.Add(time.Hour))
	newest := booking(4, "car", "completed", 300, base.Add(2*time.Hour))

	bookingRepo.On("GetByVehicleIDs", mock.Anything, []int64{4}).Return([]*models.Booking{
		oldest, newest, middle,
	}, nil)

	result, err := revenue.AggregateSponsor(context.Background(), sponsorID, models.TimeWindow{})

	assert.NoError(t, err)
	assert.Len(t, result.Transactions, 3)
	assert.Equal(t, newest.ID, result.Transactions[0].BookingID)
	assert.Equal(t, middle.ID, result.Transactions[1].BookingID)
	assert.Equal(t, oldest.ID, result.Transactions[2].BookingID)
}

func TestAggregateSponsor_NoVehicles(t *testing.T) {
	vehicleRepo, _, bookingRepo, revenue := newRevenueFixture(t)
	sponsorID := primitive.NewObjectID()

	vehicleRepo.On("GetBySponsorID", mock.Anything, sponsorID).Return([]*models.Vehicle{}, nil)

	result, err := revenue.AggregateSponsor(context.Background(), sponsorID, models.TimeWindow{})

	assert.NoError(t, err)
	assert.Equal(t, int64(0), result.BookingsCount)
	assert.Equal(t, 0.0, result.GrossRevenue)
	assert.Empty(t, result.VehicleStats)
	bookingRepo.AssertNotCalled(t, "GetByVehicleIDs")
}

func TestAggregateSponsor_DerivedHoursBeatExplicitDuration(t *testing.T) {
	vehicleRepo, _, bookingRepo, revenue := newRevenueFixture(t)
	sponsorID := primitive.NewObjectID()
	now := time.Now()

	vehicleRepo.On("GetBySponsorID", mock.Anything, sponsorID).Return([]*models.Vehicle{
		{VehicleID: 6, Category: models.VehicleCategoryBike, SponsorID: sponsorID, Name: "R15"},
	}, nil)

	b := booking(6, "bike", "completed", 500, now)
	start := now.Add(-90 * time.Minute)
	b.RideStartTime = &start
	b.RideEndTime = &now
	b.Duration = hoursPtr(5) // stale, timestamps win

	bookingRepo.On("GetByVehicleIDs", mock.Anything, []int64{6}).Return([]*models.Booking{b}, nil)

	result, err := revenue.AggregateSponsor(context.Background(), sponsorID, models.TimeWindow{})

	assert.NoError(t, err)
	assert.InDelta(t, 1.5, result.RideHours, 0.0001)
}

func TestMatchedBookings_FiltersForeignCategories(t *testing.T) {
	vehicleRepo, _, bookingRepo, revenue := newRevenueFixture(t)
	sponsorID := primitive.NewObjectID()
	now := time.Now()

	vehicleRepo.On("GetBySponsorID", mock.Anything, sponsorID).Return([]*models.Vehicle{
		{VehicleID: 5, Category: models.VehicleCategoryScooty, SponsorID: sponsorID, Name: "Jupiter"},
	}, nil)

	mine := booking(5, "scooties", "pending", 120, now)
	foreign := booking(5, "bikes", "completed", 450, now)

	bookingRepo.On("GetByVehicleIDs", mock.Anything, []int64{5}).Return([]*models.Booking{
		mine, foreign,
	}, nil)

	matched, err := revenue.MatchedBookings(context.Background(), sponsorID)

	assert.NoError(t, err)
	assert.Len(t, matched, 1)
	assert.Equal(t, mine.ID, matched[0].ID)
}
