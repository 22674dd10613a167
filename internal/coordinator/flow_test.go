package coordinator_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentauto-client/internal/backendtest"
	"rentauto-client/internal/barcode"
	"rentauto-client/internal/coordinator"
	"rentauto-client/internal/domain"
	"rentauto-client/internal/gateway"
	"rentauto-client/internal/session"
	"rentauto-client/internal/tracker"
)

// TestRentReturnFlow drives the full lifecycle against the fake backend:
// rent marks the vehicle rented and issues a scannable token, return with a
// late fee brings it back to available.
func TestRentReturnFlow(t *testing.T) {
	ctx := context.Background()

	backend := backendtest.New()
	srv := httptest.NewServer(backend)
	defer srv.Close()

	userID := backend.SeedUser("Ana", "ana@example.com", "secret")
	vehicleID := backend.SeedVehicle(domain.Vehicle{Brand: "Toyota", Model: "Vios", Year: 2022, RentPrice: 1000})

	store, err := session.Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	defer store.Close()

	api := gateway.NewClient(srv.URL, 5*time.Second)
	tr := tracker.New()
	coord := coordinator.New(api, tr, barcode.New(0, 0), store)

	_, err = coord.RefreshVehicles(ctx)
	require.NoError(t, err)

	ticket, err := coord.CreateRental(ctx, userID, vehicleID, "2024-01-01", "2024-01-02", domain.PaymentMethodCash)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, ticket.TotalCost)
	assert.NotEmpty(t, ticket.BarcodeToken)

	tracked, _ := tr.Get(vehicleID)
	assert.Equal(t, domain.StatusRented, tracked.AvailabilityStatus)

	// The issued token is archived locally for later re-display.
	archived, err := store.Barcode(ticket.RentalID)
	require.NoError(t, err)
	assert.Equal(t, ticket.BarcodeToken, archived)

	msg, err := coord.ReturnVehicle(ctx, ticket.BarcodeToken, "150.50")
	require.NoError(t, err)
	assert.NotEmpty(t, msg)

	fee, ok := backend.LastReturnFee(ticket.RentalID)
	require.True(t, ok)
	assert.Equal(t, 150.50, fee)

	tracked, _ = tr.Get(vehicleID)
	assert.Equal(t, domain.StatusAvailable, tracked.AvailabilityStatus)

	// A second return of the same barcode is a business rejection and the
	// snapshot stays put.
	_, err = coord.ReturnVehicle(ctx, ticket.BarcodeToken, "")
	assert.True(t, domain.IsKind(err, domain.FailureBusiness))
	tracked, _ = tr.Get(vehicleID)
	assert.Equal(t, domain.StatusAvailable, tracked.AvailabilityStatus)
}
