package coordinator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rentauto-client/internal/barcode"
	"rentauto-client/internal/coordinator"
	"rentauto-client/internal/domain"
	"rentauto-client/internal/gateway"
	"rentauto-client/internal/tracker"
)

func newCoordinator(api gateway.API, archive coordinator.BarcodeArchive) (*coordinator.Coordinator, *tracker.Tracker) {
	tr := tracker.New()
	return coordinator.New(api, tr, barcode.New(0, 0), archive), tr
}

func TestCreateRental(t *testing.T) {
	ctx := context.Background()

	vehicle := &domain.Vehicle{
		ID:                 7,
		Brand:              "Toyota",
		Model:              "Vios",
		Year:               2022,
		RentPrice:          1000,
		AvailabilityStatus: domain.StatusAvailable,
	}

	t.Run("Success", func(t *testing.T) {
		api := new(MockAPI)
		archive := new(MockArchive)
		coord, tr := newCoordinator(api, archive)

		api.On("GetVehicle", ctx, 7).Return(vehicle, nil)
		api.On("RentVehicle", ctx, mock.MatchedBy(func(req gateway.RentRequest) bool {
			return req.UserID == 3 && req.VehicleID == 7 && req.TotalCost == 1000
		})).Return(&gateway.RentResult{RentalID: 42, BarcodeToken: "RNT-7-ABC"}, nil)
		archive.On("SaveBarcode", 42, "RNT-7-ABC").Return(nil)

		ticket, err := coord.CreateRental(ctx, 3, 7, "2024-01-01", "2024-01-02", domain.PaymentMethodCash)
		assert.NoError(t, err)
		assert.Equal(t, 42, ticket.RentalID)
		assert.Equal(t, 1, ticket.TotalDays)
		assert.Equal(t, 1000.0, ticket.TotalCost)
		assert.NotEmpty(t, ticket.BarcodeToken)
		assert.NotNil(t, ticket.Barcode)

		tracked, ok := tr.Get(7)
		assert.True(t, ok)
		assert.Equal(t, domain.StatusRented, tracked.AvailabilityStatus)
		archive.AssertCalled(t, "SaveBarcode", 42, "RNT-7-ABC")
	})

	t.Run("Bad date range stays local", func(t *testing.T) {
		api := new(MockAPI)
		coord, _ := newCoordinator(api, nil)

		_, err := coord.CreateRental(ctx, 3, 7, "2024-01-01", "2024-01-05", domain.PaymentMethodCash)
		assert.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.FailureValidation))
		assert.Equal(t, coordinator.InvalidDateRangeMessage, domain.UserMessage(err))
		api.AssertNotCalled(t, "GetVehicle", mock.Anything, mock.Anything)
		api.AssertNotCalled(t, "RentVehicle", mock.Anything, mock.Anything)
	})

	t.Run("End before start rejected", func(t *testing.T) {
		api := new(MockAPI)
		coord, _ := newCoordinator(api, nil)

		_, err := coord.CreateRental(ctx, 3, 7, "2024-01-02", "2024-01-01", domain.PaymentMethodCash)
		assert.True(t, domain.IsKind(err, domain.FailureValidation))
		api.AssertNotCalled(t, "RentVehicle", mock.Anything, mock.Anything)
	})

	t.Run("Missing user rejected", func(t *testing.T) {
		api := new(MockAPI)
		coord, _ := newCoordinator(api, nil)

		_, err := coord.CreateRental(ctx, 0, 7, "2024-01-01", "2024-01-02", domain.PaymentMethodCash)
		assert.True(t, domain.IsKind(err, domain.FailureValidation))
		api.AssertNotCalled(t, "RentVehicle", mock.Anything, mock.Anything)
	})

	t.Run("Backend rejection keeps state", func(t *testing.T) {
		api := new(MockAPI)
		coord, tr := newCoordinator(api, nil)

		api.On("GetVehicle", ctx, 7).Return(vehicle, nil)
		api.On("RentVehicle", ctx, mock.Anything).
			Return(nil, domain.NewBusinessRejection("Vehicle is not available"))

		_, err := coord.CreateRental(ctx, 3, 7, "2024-01-01", "2024-01-02", domain.PaymentMethodCash)
		assert.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.FailureBusiness))
		assert.Equal(t, "Vehicle is not available", domain.UserMessage(err))

		// Failed transaction must not move the tracked state.
		tracked, ok := tr.Get(7)
		assert.True(t, ok)
		assert.Equal(t, domain.StatusAvailable, tracked.AvailabilityStatus)
	})

	t.Run("Encode failure keeps confirmed state", func(t *testing.T) {
		api := new(MockAPI)
		archive := new(MockArchive)
		coord, tr := newCoordinator(api, archive)

		// A token outside the CODE 128 character set cannot be rendered,
		// but the backend has already committed the rental.
		api.On("GetVehicle", ctx, 7).Return(vehicle, nil)
		api.On("RentVehicle", ctx, mock.Anything).
			Return(&gateway.RentResult{RentalID: 42, BarcodeToken: "RNT-7-токен"}, nil)
		archive.On("SaveBarcode", 42, "RNT-7-токен").Return(nil)

		ticket, err := coord.CreateRental(ctx, 3, 7, "2024-01-01", "2024-01-02", domain.PaymentMethodCash)
		assert.Error(t, err)
		assert.True(t, domain.IsKind(err, domain.FailureEncoding))

		// The confirmed ticket comes back with the token, without an image.
		assert.NotNil(t, ticket)
		assert.Equal(t, 42, ticket.RentalID)
		assert.Equal(t, "RNT-7-токен", ticket.BarcodeToken)
		assert.Nil(t, ticket.Barcode)

		tracked, _ := tr.Get(7)
		assert.Equal(t, domain.StatusRented, tracked.AvailabilityStatus)
		archive.AssertCalled(t, "SaveBarcode", 42, "RNT-7-токен")
	})

	t.Run("Empty token falls back to rental id", func(t *testing.T) {
		api := new(MockAPI)
		coord, _ := newCoordinator(api, nil)

		api.On("GetVehicle", ctx, 7).Return(vehicle, nil)
		api.On("RentVehicle", ctx, mock.Anything).
			Return(&gateway.RentResult{RentalID: 99, BarcodeToken: ""}, nil)

		ticket, err := coord.CreateRental(ctx, 3, 7, "2024-01-01", "2024-01-02", domain.PaymentMethodCash)
		assert.NoError(t, err)
		assert.Equal(t, "99", ticket.BarcodeToken)
	})
}

func TestReturnVehicle(t *testing.T) {
	ctx := context.Background()

	t.Run("Fee forwarded as decimal", func(t *testing.T) {
		api := new(MockAPI)
		coord, _ := newCoordinator(api, nil)

		api.On("ReturnVehicle", ctx, "RNT-7-ABC", 150.50).Return("Vehicle returned", nil)
		api.On("ListVehicles", ctx).Return([]domain.Vehicle{
			{ID: 7, AvailabilityStatus: domain.StatusAvailable},
		}, nil)

		msg, err := coord.ReturnVehicle(ctx, "RNT-7-ABC", "150.50")
		assert.NoError(t, err)
		assert.Equal(t, "Vehicle returned", msg)
		api.AssertCalled(t, "ReturnVehicle", ctx, "RNT-7-ABC", 150.50)
	})

	t.Run("Unparseable fee defaults to zero", func(t *testing.T) {
		api := new(MockAPI)
		coord, _ := newCoordinator(api, nil)

		api.On("ReturnVehicle", ctx, "RNT-7-ABC", 0.0).Return("Vehicle returned", nil)
		api.On("ListVehicles", ctx).Return([]domain.Vehicle{}, nil)

		_, err := coord.ReturnVehicle(ctx, "RNT-7-ABC", "not-a-number")
		assert.NoError(t, err)
		api.AssertCalled(t, "ReturnVehicle", ctx, "RNT-7-ABC", 0.0)
	})

	t.Run("Negative fee rejected locally", func(t *testing.T) {
		api := new(MockAPI)
		coord, _ := newCoordinator(api, nil)

		_, err := coord.ReturnVehicle(ctx, "RNT-7-ABC", "-25")
		assert.True(t, domain.IsKind(err, domain.FailureValidation))
		api.AssertNotCalled(t, "ReturnVehicle", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Empty barcode stays local", func(t *testing.T) {
		api := new(MockAPI)
		coord, _ := newCoordinator(api, nil)

		_, err := coord.ReturnVehicle(ctx, "  ", "0")
		assert.True(t, domain.IsKind(err, domain.FailureValidation))
		api.AssertNotCalled(t, "ReturnVehicle", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Success refreshes availability", func(t *testing.T) {
		api := new(MockAPI)
		coord, tr := newCoordinator(api, nil)
		tr.Load([]domain.Vehicle{{ID: 7, AvailabilityStatus: domain.StatusRented}})

		api.On("ReturnVehicle", ctx, "RNT-7-ABC", 0.0).Return("Vehicle returned", nil)
		api.On("ListVehicles", ctx).Return([]domain.Vehicle{
			{ID: 7, AvailabilityStatus: domain.StatusAvailable},
		}, nil)

		_, err := coord.ReturnVehicle(ctx, "RNT-7-ABC", "")
		assert.NoError(t, err)

		tracked, _ := tr.Get(7)
		assert.Equal(t, domain.StatusAvailable, tracked.AvailabilityStatus)
	})

	t.Run("Rejection keeps state", func(t *testing.T) {
		api := new(MockAPI)
		coord, tr := newCoordinator(api, nil)
		tr.Load([]domain.Vehicle{{ID: 7, AvailabilityStatus: domain.StatusRented}})

		api.On("ReturnVehicle", ctx, "RNT-7-XYZ", 0.0).
			Return("", domain.NewBusinessRejection("Barcode not found"))

		_, err := coord.ReturnVehicle(ctx, "RNT-7-XYZ", "")
		assert.True(t, domain.IsKind(err, domain.FailureBusiness))

		tracked, _ := tr.Get(7)
		assert.Equal(t, domain.StatusRented, tracked.AvailabilityStatus)
		api.AssertNotCalled(t, "ListVehicles", mock.Anything)
	})
}

func TestAdminFlows(t *testing.T) {
	ctx := context.Background()

	t.Run("Modify sets status directly", func(t *testing.T) {
		api := new(MockAPI)
		coord, tr := newCoordinator(api, nil)
		tr.Load([]domain.Vehicle{{ID: 5, AvailabilityStatus: domain.StatusAvailable}})

		update := domain.Vehicle{ID: 5, Brand: "Honda", Model: "Civic", AvailabilityStatus: domain.StatusUnderMaintenance}
		api.On("ModifyVehicle", ctx, update).Return("Vehicle updated", nil)

		msg, err := coord.ModifyVehicle(ctx, update)
		assert.NoError(t, err)
		assert.Equal(t, "Vehicle updated", msg)

		tracked, _ := tr.Get(5)
		assert.Equal(t, domain.StatusUnderMaintenance, tracked.AvailabilityStatus)
		assert.Equal(t, "Honda", tracked.Brand)
	})

	t.Run("Delete removes from snapshot", func(t *testing.T) {
		api := new(MockAPI)
		coord, tr := newCoordinator(api, nil)
		tr.Load([]domain.Vehicle{{ID: 5, AvailabilityStatus: domain.StatusAvailable}})

		api.On("DeleteVehicle", ctx, 5).Return("Vehicle deleted", nil)

		_, err := coord.DeleteVehicle(ctx, 5)
		assert.NoError(t, err)
		_, ok := tr.Get(5)
		assert.False(t, ok)
	})

	t.Run("Failed delete keeps snapshot", func(t *testing.T) {
		api := new(MockAPI)
		coord, tr := newCoordinator(api, nil)
		tr.Load([]domain.Vehicle{{ID: 5, AvailabilityStatus: domain.StatusAvailable}})

		api.On("DeleteVehicle", ctx, 5).Return("", domain.NewNetworkFailure("backend unreachable", nil))

		_, err := coord.DeleteVehicle(ctx, 5)
		assert.True(t, domain.IsKind(err, domain.FailureNetwork))
		_, ok := tr.Get(5)
		assert.True(t, ok)
	})
}
