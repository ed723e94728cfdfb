package backendsvc

import (
	"context"

	"github.com/trezcool/registrar/core/auth"
)

const (
	loginPath          = "/api/authentication/login/"
	userPermissionPath = "/api/authentication/userPermissions/"
	forgetPasswordPath = "/api/authentication/forget/"
	checkTokenPath     = "api/authentication/checkToken/"
	savePasswordPath   = "api/authentication/savePassword/"
)

// Login submits the credentials. Storing the returned session is up to the caller.
func (c *Client) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	var resp auth.LoginResponse
	if err := c.check(req); err != nil {
		return resp, err
	}
	err := c.post(ctx, loginPath, req, &resp)
	return resp, err
}

func (c *Client) GetUserPermissions(ctx context.Context) (auth.PermissionsResponse, error) {
	var resp auth.PermissionsResponse
	err := c.get(ctx, userPermissionPath, nil, &resp)
	return resp, err
}

// ForgetPassword asks the backend to mail a password reset link in req.Lang.
func (c *Client) ForgetPassword(ctx context.Context, req auth.ForgetPasswordRequest) (auth.ForgetPasswordResponse, error) {
	var resp auth.ForgetPasswordResponse
	if err := c.check(req); err != nil {
		return resp, err
	}
	err := c.post(ctx, forgetPasswordPath, req, &resp)
	return resp, err
}

func (c *Client) CheckToken(ctx context.Context, emailToken string) (auth.CheckTokenResponse, error) {
	var resp auth.CheckTokenResponse
	req := auth.CheckTokenRequest{EmailToken: emailToken}
	if err := c.check(req); err != nil {
		return resp, err
	}
	err := c.post(ctx, checkTokenPath, req, &resp)
	return resp, err
}

func (c *Client) SaveNewPassword(ctx context.Context, req auth.PasswordResetRequest) (auth.GeneralResponse, error) {
	var resp auth.GeneralResponse
	if err := c.check(req); err != nil {
		return resp, err
	}
	err := c.post(ctx, savePasswordPath, req, &resp)
	return resp, err
}
