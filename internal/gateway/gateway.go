// Package gateway binds the client to the remote rental backend. Every
// operation is a single request/response call; transport and decode
// problems surface as network failures, a decoded `success:false` envelope
// surfaces as a business rejection carrying the backend message verbatim.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rentauto-client/internal/domain"
	"rentauto-client/internal/logger"
)

// API is the full set of backend operations the client core invokes.
type API interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	RegisterUser(ctx context.Context, req RegisterUserRequest) (*LoginResult, error)
	AdminLogin(ctx context.Context, username, password string) (*AdminLoginResult, error)
	RegisterAdmin(ctx context.Context, req RegisterAdminRequest) (*AdminLoginResult, error)

	ListVehicles(ctx context.Context) ([]domain.Vehicle, error)
	GetVehicle(ctx context.Context, id int) (*domain.Vehicle, error)
	ModifyVehicle(ctx context.Context, v domain.Vehicle) (string, error)
	DeleteVehicle(ctx context.Context, id int) (string, error)
	AddVehicle(ctx context.Context, req AddVehicleRequest) (string, error)

	RentVehicle(ctx context.Context, req RentRequest) (*RentResult, error)
	ReturnVehicle(ctx context.Context, barcode string, additionalFee float64) (string, error)

	ListRentalRecords(ctx context.Context) ([]domain.RentalRecord, error)
	ListPaymentRecords(ctx context.Context) ([]domain.PaymentRecord, error)
	UserStatement(ctx context.Context, userID int) ([]domain.StatementEntry, error)
	UserProfile(ctx context.Context, userID int) (*domain.UserProfile, error)
}

// Client is the HTTP implementation of API.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ API = (*Client)(nil)

// NewClient returns a Client talking to the backend at baseURL. A zero
// timeout leaves the transport default in place.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) endpoint(name string) string {
	return c.baseURL + "/" + name
}

// do executes req and decodes the JSON body into out. Non-2xx statuses,
// transport errors and undecodable bodies all classify as network failures.
func (c *Client) do(req *http.Request, out any) error {
	name := req.URL.Path[strings.LastIndex(req.URL.Path, "/")+1:]
	logger.GatewayCall(name, req.Method)

	resp, err := c.http.Do(req)
	if err != nil {
		logger.GatewayResult(name, err)
		return domain.NewNetworkFailure("backend unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("unexpected status %d", resp.StatusCode)
		logger.GatewayResult(name, err)
		return domain.NewNetworkFailure("backend returned an error status", err)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		logger.GatewayResult(name, err)
		return domain.NewNetworkFailure("backend response unreadable", err)
	}
	logger.GatewayResult(name, nil)
	return nil
}

func (c *Client) getJSON(ctx context.Context, name string, query url.Values, out any) error {
	u := c.endpoint(name)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.NewNetworkFailure("failed to build request", err)
	}
	return c.do(req, out)
}

func (c *Client) postForm(ctx context.Context, name string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint(name), strings.NewReader(form.Encode()))
	if err != nil {
		return domain.NewNetworkFailure("failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, name string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return domain.NewNetworkFailure("failed to encode request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint(name), bytes.NewReader(payload))
	if err != nil {
		return domain.NewNetworkFailure("failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) postMultipart(ctx context.Context, name string, fields map[string]string, fileField, fileName string, file io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return domain.NewNetworkFailure("failed to encode form field", err)
		}
	}
	if file != nil {
		part, err := mw.CreateFormFile(fileField, fileName)
		if err != nil {
			return domain.NewNetworkFailure("failed to encode image part", err)
		}
		if _, err := io.Copy(part, file); err != nil {
			return domain.NewNetworkFailure("failed to read image", err)
		}
	}
	if err := mw.Close(); err != nil {
		return domain.NewNetworkFailure("failed to finish multipart body", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(name), &buf)
	if err != nil {
		return domain.NewNetworkFailure("failed to build request", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req, out)
}
