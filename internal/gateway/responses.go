package gateway

import (
	"encoding/json"
	"io"
	"strings"

	"rentauto-client/internal/domain"
)

// Token tolerates backends that emit the barcode as a bare number instead
// of a string; either way the client treats it as an opaque token.
type Token string

func (t *Token) UnmarshalJSON(b []byte) error {
	s := string(b)
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*t = Token(v)
		return nil
	}
	if s == "null" {
		*t = ""
		return nil
	}
	*t = Token(s)
	return nil
}

// LoginResult is the account identity the backend hands back on a
// successful user login or registration.
type LoginResult struct {
	UserID int
	Name   string
	Status string
}

type AdminLoginResult struct {
	AdminID  int
	Username string
	Status   string
}

// RentResult carries the identifiers assigned by a successful rent call.
type RentResult struct {
	RentalID     int
	BarcodeToken string
}

type RegisterUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Password string `json:"password"`
}

type RegisterAdminRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RentRequest struct {
	UserID        int
	VehicleID     int
	StartDate     string
	EndDate       string
	TotalCost     float64
	PaymentMethod domain.PaymentMethod
}

type AddVehicleRequest struct {
	Brand              string
	Model              string
	Year               int
	RentPrice          float64
	AvailabilityStatus domain.AvailabilityStatus
	ImageName          string
	Image              io.Reader
}

// Wire envelopes. Every backend payload carries at least success plus an
// optional message.

type statusEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (e statusEnvelope) reject(fallback string) error {
	msg := e.Message
	if msg == "" {
		msg = fallback
	}
	return domain.NewBusinessRejection(msg)
}

type loginEnvelope struct {
	statusEnvelope
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type adminLoginEnvelope struct {
	statusEnvelope
	AdminID  int    `json:"adminId"`
	Username string `json:"username"`
	Status   string `json:"status"`
}

type vehiclesEnvelope struct {
	statusEnvelope
	Vehicles []domain.Vehicle `json:"vehicles"`
}

type vehicleEnvelope struct {
	statusEnvelope
	Vehicle *domain.Vehicle `json:"vehicle"`
}

type rentEnvelope struct {
	statusEnvelope
	RentalID int   `json:"rentalId"`
	Barcode  Token `json:"barcode"`
}

type recordsEnvelope struct {
	statusEnvelope
	Records []domain.RentalRecord `json:"records"`
}

type paymentsEnvelope struct {
	statusEnvelope
	Payments []domain.PaymentRecord `json:"payments"`
}

type statementEnvelope struct {
	statusEnvelope
	Data []domain.StatementEntry `json:"data"`
}

type profileEnvelope struct {
	statusEnvelope
	Data *domain.UserProfile `json:"data"`
}
