package domain

type PaymentMethod string

const (
	PaymentMethodCash       PaymentMethod = "Cash"
	PaymentMethodOnline     PaymentMethod = "Online Payment"
	PaymentMethodCreditCard PaymentMethod = "Credit Card"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodOnline, PaymentMethodCreditCard:
		return true
	}
	return false
}

// RentalRecord is one row of the fleet-wide rental ledger as the backend
// reports it. Dates are calendar dates in YYYY-MM-DD form.
type RentalRecord struct {
	UserName      string `json:"user_name"`
	Brand         string `json:"brand"`
	Model         string `json:"model"`
	StartDate     string `json:"rental_start_date"`
	EndDate       string `json:"rental_end_date"`
	TotalCost     string `json:"total_cost"`
	PaymentStatus string `json:"payment_status"`
	CarStatus     string `json:"carstatus"`
}

type PaymentRecord struct {
	PaymentID     int     `json:"payment_id"`
	RentalID      int     `json:"rental_id"`
	AmountPaid    float64 `json:"amount_paid"`
	PaymentMethod string  `json:"payment_method"`
	PaymentDate   string  `json:"payment_date"`
	PayStatus     string  `json:"pay_status"`
	LateFee       float64 `json:"additionalOrLate_fee"`
	TotalCost     float64 `json:"total_cost"`
	UserName      string  `json:"user_name"`
	VehicleModel  string  `json:"vehicle_model"`
	VehicleBrand  string  `json:"vehicle_brand"`
}

// StatementEntry is one row of the combined payment+rental statement
// returned per user by the backend.
type StatementEntry struct {
	PaymentID           int     `json:"payment_id"`
	AmountPaid          float64 `json:"amount_paid"`
	PaymentMethod       string  `json:"payment_method"`
	PaymentDate         string  `json:"payment_date"`
	PayStatus           string  `json:"pay_status"`
	LateFee             float64 `json:"additionalOrLate_fee"`
	RentalID            int     `json:"rental_id"`
	StartDate           string  `json:"rental_start_date"`
	EndDate             string  `json:"rental_end_date"`
	TotalCost           float64 `json:"total_cost"`
	RentalPaymentStatus string  `json:"rental_payment_status"`
	RentalStatus        string  `json:"rental_status"`
	CarStatus           string  `json:"carstatus"`
	VehicleModel        string  `json:"vehicle_model"`
	VehicleBrand        string  `json:"vehicle_brand"`
}

// Confirmation captures the outcome of a successful rent transaction:
// the identifiers the backend assigned plus the locally computed cost
// snapshot the request was submitted with.
type Confirmation struct {
	RentalID      int
	BarcodeToken  string
	VehicleID     int
	StartDate     string
	EndDate       string
	TotalDays     int
	TotalCost     float64
	PaymentMethod PaymentMethod
}
