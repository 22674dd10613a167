package gateway

import (
	"context"
	"net/url"
)

// Login authenticates a user with the email/password form endpoint.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)

	var env loginEnvelope
	if err := c.postForm(ctx, "login.php", form, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, env.reject("Login failed")
	}
	return &LoginResult{UserID: env.UserID, Name: env.Name, Status: env.Status}, nil
}

// RegisterUser creates a user account. The backend replies with the same
// envelope as login.
func (c *Client) RegisterUser(ctx context.Context, req RegisterUserRequest) (*LoginResult, error) {
	var env loginEnvelope
	if err := c.postJSON(ctx, "register.php", req, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, env.reject("Registration failed")
	}
	return &LoginResult{UserID: env.UserID, Name: env.Name, Status: env.Status}, nil
}

func (c *Client) AdminLogin(ctx context.Context, username, password string) (*AdminLoginResult, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var env adminLoginEnvelope
	if err := c.postForm(ctx, "adminLogin.php", form, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, env.reject("Login failed")
	}
	return &AdminLoginResult{AdminID: env.AdminID, Username: env.Username, Status: env.Status}, nil
}

func (c *Client) RegisterAdmin(ctx context.Context, req RegisterAdminRequest) (*AdminLoginResult, error) {
	var env adminLoginEnvelope
	if err := c.postJSON(ctx, "adminRegister.php", req, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, env.reject("Registration failed")
	}
	return &AdminLoginResult{AdminID: env.AdminID, Username: env.Username, Status: env.Status}, nil
}
