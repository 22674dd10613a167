// Package coordinator orchestrates the rental transactions: date
// validation and cost computation before a rent is submitted, barcode
// issuance afterwards, and the barcode-driven return flow. All state
// transitions go through the availability tracker only after the gateway
// confirms the transaction.
package coordinator

import (
	"context"
	"image"
	"strconv"
	"strings"
	"time"

	"rentauto-client/internal/barcode"
	"rentauto-client/internal/domain"
	"rentauto-client/internal/gateway"
	"rentauto-client/internal/logger"
	"rentauto-client/internal/tracker"
)

const dateLayout = "2006-01-02"

// InvalidDateRangeMessage is shown when the rental window is not exactly
// one day, the only window the backend accepts.
const InvalidDateRangeMessage = "End date must be exactly one day after the start date."

// BarcodeArchive stores issued tokens locally. Satisfied by *session.Store.
type BarcodeArchive interface {
	SaveBarcode(rentalID int, token string) error
}

// Ticket is the result of a confirmed rent transaction: the cost snapshot,
// the backend-assigned identifiers, and the rendered barcode.
type Ticket struct {
	domain.Confirmation
	Barcode image.Image
}

type Coordinator struct {
	api     gateway.API
	tracker *tracker.Tracker
	codec   *barcode.Codec
	archive BarcodeArchive
}

// New wires the coordinator. archive may be nil when no local persistence
// is configured.
func New(api gateway.API, tr *tracker.Tracker, codec *barcode.Codec, archive BarcodeArchive) *Coordinator {
	return &Coordinator{api: api, tracker: tr, codec: codec, archive: archive}
}

// RefreshVehicles replaces the availability snapshot with the backend's
// authoritative vehicle list.
func (c *Coordinator) RefreshVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	vehicles, err := c.api.ListVehicles(ctx)
	if err != nil {
		return nil, err
	}
	c.tracker.Load(vehicles)
	return vehicles, nil
}

// Vehicles returns the tracked snapshot without a network call.
func (c *Coordinator) Vehicles() []domain.Vehicle {
	return c.tracker.List()
}

// totalDays computes the billable days of a rental window. Minimum one day.
func totalDays(start, end time.Time) int {
	days := int(end.Sub(start).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

// CreateRental validates the request locally, submits it, and on success
// marks the vehicle rented, archives the issued token and renders the
// barcode. Validation failures are reported before any network call is
// made. If barcode rendering fails after the backend confirmed, the
// confirmed Ticket is returned alongside the error with a nil Barcode, so
// the caller still holds the token and can start a return.
func (c *Coordinator) CreateRental(ctx context.Context, userID, vehicleID int, startDate, endDate string, method domain.PaymentMethod) (*Ticket, error) {
	if userID <= 0 {
		return nil, domain.NewValidationFailure("Missing user. Please log in again.")
	}
	if vehicleID <= 0 {
		return nil, domain.NewValidationFailure("Missing vehicle.")
	}
	if !method.Valid() {
		return nil, domain.NewValidationFailure("Unknown payment method.")
	}

	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, domain.NewValidationFailure("Invalid start date.")
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil, domain.NewValidationFailure("Invalid end date.")
	}
	if !end.Equal(start.AddDate(0, 0, 1)) {
		return nil, domain.NewValidationFailure(InvalidDateRangeMessage)
	}

	vehicle, err := c.api.GetVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	c.tracker.Track(*vehicle)

	days := totalDays(start, end)
	cost := float64(days) * vehicle.RentPrice

	res, err := c.api.RentVehicle(ctx, gateway.RentRequest{
		UserID:        userID,
		VehicleID:     vehicleID,
		StartDate:     startDate,
		EndDate:       endDate,
		TotalCost:     cost,
		PaymentMethod: method,
	})
	if err != nil {
		// Nothing changed backend-side; the tracker keeps the prior state.
		return nil, err
	}

	token := res.BarcodeToken
	if token == "" {
		token = strconv.Itoa(res.RentalID)
	}

	// The backend has committed the rental; local state must follow
	// regardless of how rendering goes.
	if applyErr := c.tracker.Apply(vehicleID, domain.StatusRented); applyErr != nil {
		logger.Warn("tracker out of step after confirmed rent", "vehicle_id", vehicleID, "error", applyErr)
	}
	if c.archive != nil {
		if archErr := c.archive.SaveBarcode(res.RentalID, token); archErr != nil {
			logger.Warn("failed to archive barcode", "rental_id", res.RentalID, "error", archErr)
		}
	}

	ticket := &Ticket{
		Confirmation: domain.Confirmation{
			RentalID:      res.RentalID,
			BarcodeToken:  token,
			VehicleID:     vehicleID,
			StartDate:     startDate,
			EndDate:       endDate,
			TotalDays:     days,
			TotalCost:     cost,
			PaymentMethod: method,
		},
	}

	img, err := c.codec.Encode(token)
	if err != nil {
		return ticket, err
	}
	ticket.Barcode = img
	return ticket, nil
}

// parseFee converts the typed fee field to a decimal. Absent or
// unparseable input means no additional fee; a negative amount is a
// validation failure, not a rewrite to zero.
func parseFee(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	fee, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, nil
	}
	if fee < 0 {
		return 0, domain.NewValidationFailure("Additional fee cannot be negative.")
	}
	return fee, nil
}

// ReturnVehicle submits a return by barcode token. The backend is
// authoritative for the barcode's existence and ownership; locally only
// non-emptiness is checked. On success the availability snapshot is
// reloaded from the backend so the vehicle's state follows the confirmed
// transition.
func (c *Coordinator) ReturnVehicle(ctx context.Context, barcodeToken, additionalFee string) (string, error) {
	if strings.TrimSpace(barcodeToken) == "" {
		return "", domain.NewValidationFailure("Barcode is required.")
	}
	fee, err := parseFee(additionalFee)
	if err != nil {
		return "", err
	}

	msg, err := c.api.ReturnVehicle(ctx, barcodeToken, fee)
	if err != nil {
		return "", err
	}

	if _, refreshErr := c.RefreshVehicles(ctx); refreshErr != nil {
		logger.Warn("availability refresh after return failed", "error", refreshErr)
	}
	return msg, nil
}

// ModifyVehicle submits an administrative vehicle update. A confirmed
// update sets the tracked status directly, bypassing the rent/return
// triggers.
func (c *Coordinator) ModifyVehicle(ctx context.Context, v domain.Vehicle) (string, error) {
	if !v.AvailabilityStatus.Valid() {
		return "", domain.NewValidationFailure("Unknown availability status.")
	}
	msg, err := c.api.ModifyVehicle(ctx, v)
	if err != nil {
		return "", err
	}
	if setErr := c.tracker.Set(v); setErr != nil {
		logger.Warn("tracker rejected confirmed update", "vehicle_id", v.ID, "error", setErr)
	}
	return msg, nil
}

// DeleteVehicle removes a vehicle after backend confirmation.
func (c *Coordinator) DeleteVehicle(ctx context.Context, id int) (string, error) {
	msg, err := c.api.DeleteVehicle(ctx, id)
	if err != nil {
		return "", err
	}
	c.tracker.Remove(id)
	return msg, nil
}

// AddVehicle uploads a new vehicle with its image.
func (c *Coordinator) AddVehicle(ctx context.Context, req gateway.AddVehicleRequest) (string, error) {
	if req.Brand == "" || req.Model == "" {
		return "", domain.NewValidationFailure("Brand and model are required.")
	}
	if !req.AvailabilityStatus.Valid() {
		return "", domain.NewValidationFailure("Unknown availability status.")
	}
	return c.api.AddVehicle(ctx, req)
}

// RentalHistory returns the fleet-wide rental ledger.
func (c *Coordinator) RentalHistory(ctx context.Context) ([]domain.RentalRecord, error) {
	return c.api.ListRentalRecords(ctx)
}

// PaymentHistory returns the fleet-wide payment ledger.
func (c *Coordinator) PaymentHistory(ctx context.Context) ([]domain.PaymentRecord, error) {
	return c.api.ListPaymentRecords(ctx)
}

// UserStatement returns one user's combined payment+rental history.
func (c *Coordinator) UserStatement(ctx context.Context, userID int) ([]domain.StatementEntry, error) {
	if userID <= 0 {
		return nil, domain.NewValidationFailure("Missing user. Please log in again.")
	}
	return c.api.UserStatement(ctx, userID)
}
