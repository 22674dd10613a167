package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"rentauto-client/internal/domain"
)

// ListVehicles fetches the fleet snapshot.
func (c *Client) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	var env vehiclesEnvelope
	if err := c.getJSON(ctx, "viewCars.php", nil, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, env.reject("Failed to load vehicles")
	}
	return env.Vehicles, nil
}

func (c *Client) GetVehicle(ctx context.Context, id int) (*domain.Vehicle, error) {
	query := url.Values{}
	query.Set("id", strconv.Itoa(id))

	var env vehicleEnvelope
	if err := c.getJSON(ctx, "getCarById.php", query, &env); err != nil {
		return nil, err
	}
	if !env.Success || env.Vehicle == nil {
		return nil, env.reject("Failed to load vehicle")
	}
	return env.Vehicle, nil
}

// ModifyVehicle submits a full vehicle record, including a direct
// availability status set. Returns the backend message.
func (c *Client) ModifyVehicle(ctx context.Context, v domain.Vehicle) (string, error) {
	var env statusEnvelope
	if err := c.postJSON(ctx, "modifyCar.php", v, &env); err != nil {
		return "", err
	}
	if !env.Success {
		return "", env.reject("Failed to update vehicle")
	}
	return env.Message, nil
}

func (c *Client) DeleteVehicle(ctx context.Context, id int) (string, error) {
	var env statusEnvelope
	if err := c.postJSON(ctx, "deleteCar.php", map[string]int{"vehicle_id": id}, &env); err != nil {
		return "", err
	}
	if !env.Success {
		return "", env.reject("Failed to delete vehicle")
	}
	return env.Message, nil
}

// AddVehicle uploads a new vehicle record with its image as multipart form
// data, field names matching the backend's addCar contract.
func (c *Client) AddVehicle(ctx context.Context, req AddVehicleRequest) (string, error) {
	fields := map[string]string{
		"brand":               req.Brand,
		"model":               req.Model,
		"year":                strconv.Itoa(req.Year),
		"rent_price":          strconv.FormatFloat(req.RentPrice, 'f', -1, 64),
		"availability_status": string(req.AvailabilityStatus),
	}
	name := req.ImageName
	if name == "" {
		name = fmt.Sprintf("%s_%s.jpg", req.Brand, req.Model)
	}

	var env statusEnvelope
	if err := c.postMultipart(ctx, "addCar.php", fields, "image", name, req.Image, &env); err != nil {
		return "", err
	}
	if !env.Success {
		return "", env.reject("Failed to add vehicle")
	}
	return env.Message, nil
}
