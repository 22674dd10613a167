package gateway

import (
	"context"
	"net/url"
	"strconv"

	"rentauto-client/internal/domain"
)

// RentVehicle submits a rent transaction. The caller computes the cost
// snapshot; the backend assigns the rental id and barcode token.
func (c *Client) RentVehicle(ctx context.Context, req RentRequest) (*RentResult, error) {
	form := url.Values{}
	form.Set("user_id", strconv.Itoa(req.UserID))
	form.Set("vehicle_id", strconv.Itoa(req.VehicleID))
	form.Set("rental_start_date", req.StartDate)
	form.Set("rental_end_date", req.EndDate)
	form.Set("total_cost", strconv.FormatFloat(req.TotalCost, 'f', 2, 64))
	form.Set("payment_method", string(req.PaymentMethod))

	var env rentEnvelope
	if err := c.postForm(ctx, "rentCar.php", form, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, env.reject("Rental request rejected")
	}
	return &RentResult{RentalID: env.RentalID, BarcodeToken: string(env.Barcode)}, nil
}

// ReturnVehicle submits a return by barcode. The backend resolves the
// barcode to a rental record; the client makes no validity check beyond
// what the coordinator already enforced.
func (c *Client) ReturnVehicle(ctx context.Context, barcode string, additionalFee float64) (string, error) {
	form := url.Values{}
	form.Set("barcode", barcode)
	form.Set("additionalFee", strconv.FormatFloat(additionalFee, 'f', -1, 64))

	var env statusEnvelope
	if err := c.postForm(ctx, "returnCar.php", form, &env); err != nil {
		return "", err
	}
	if !env.Success {
		return "", env.reject("Return rejected")
	}
	return env.Message, nil
}

func (c *Client) ListRentalRecords(ctx context.Context) ([]domain.RentalRecord, error) {
	var env recordsEnvelope
	if err := c.getJSON(ctx, "getAllRecords.php", nil, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, env.reject("Failed to load rental records")
	}
	return env.Records, nil
}

func (c *Client) ListPaymentRecords(ctx context.Context) ([]domain.PaymentRecord, error) {
	var env paymentsEnvelope
	if err := c.getJSON(ctx, "getAllPayments.php", nil, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, env.reject("Failed to load payment records")
	}
	return env.Payments, nil
}

// UserStatement fetches the combined payment+rental history for one user.
func (c *Client) UserStatement(ctx context.Context, userID int) ([]domain.StatementEntry, error) {
	query := url.Values{}
	query.Set("user_id", strconv.Itoa(userID))

	var env statementEnvelope
	if err := c.getJSON(ctx, "getPaymentUser.php", query, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, env.reject("Failed to load history")
	}
	return env.Data, nil
}

// UserProfile fetches a user's profile with uploaded documents.
func (c *Client) UserProfile(ctx context.Context, userID int) (*domain.UserProfile, error) {
	query := url.Values{}
	query.Set("user_id", strconv.Itoa(userID))

	var env profileEnvelope
	if err := c.getJSON(ctx, "getUserWithDocument.php", query, &env); err != nil {
		return nil, err
	}
	if !env.Success || env.Data == nil {
		return nil, env.reject("Failed to load profile")
	}
	return env.Data, nil
}
