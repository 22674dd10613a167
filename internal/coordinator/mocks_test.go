package coordinator_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rentauto-client/internal/domain"
	"rentauto-client/internal/gateway"
)

// MockAPI
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) Login(ctx context.Context, email, password string) (*gateway.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.LoginResult), args.Error(1)
}
func (m *MockAPI) RegisterUser(ctx context.Context, req gateway.RegisterUserRequest) (*gateway.LoginResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.LoginResult), args.Error(1)
}
func (m *MockAPI) AdminLogin(ctx context.Context, username, password string) (*gateway.AdminLoginResult, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.AdminLoginResult), args.Error(1)
}
func (m *MockAPI) RegisterAdmin(ctx context.Context, req gateway.RegisterAdminRequest) (*gateway.AdminLoginResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.AdminLoginResult), args.Error(1)
}
func (m *MockAPI) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}
func (m *MockAPI) GetVehicle(ctx context.Context, id int) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockAPI) ModifyVehicle(ctx context.Context, v domain.Vehicle) (string, error) {
	args := m.Called(ctx, v)
	return args.String(0), args.Error(1)
}
func (m *MockAPI) DeleteVehicle(ctx context.Context, id int) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}
func (m *MockAPI) AddVehicle(ctx context.Context, req gateway.AddVehicleRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
func (m *MockAPI) RentVehicle(ctx context.Context, req gateway.RentRequest) (*gateway.RentResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.RentResult), args.Error(1)
}
func (m *MockAPI) ReturnVehicle(ctx context.Context, barcode string, additionalFee float64) (string, error) {
	args := m.Called(ctx, barcode, additionalFee)
	return args.String(0), args.Error(1)
}
func (m *MockAPI) ListRentalRecords(ctx context.Context) ([]domain.RentalRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RentalRecord), args.Error(1)
}
func (m *MockAPI) ListPaymentRecords(ctx context.Context) ([]domain.PaymentRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentRecord), args.Error(1)
}
func (m *MockAPI) UserStatement(ctx context.Context, userID int) ([]domain.StatementEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatementEntry), args.Error(1)
}
func (m *MockAPI) UserProfile(ctx context.Context, userID int) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

// MockArchive
type MockArchive struct {
	mock.Mock
}

func (m *MockArchive) SaveBarcode(rentalID int, token string) error {
	args := m.Called(rentalID, token)
	return args.Error(0)
}
