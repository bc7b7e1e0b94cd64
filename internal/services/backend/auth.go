package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"receiptweb/internal/models"
)

// LoginResult is the body of a successful POST /token
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserEmail   string `json:"user_email"`
	IsAdmin     bool   `json:"is_admin"`
}

// Login exchanges credentials for a session token
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	form := url.Values{
		"username": {email},
		"password": {password},
	}

	var res LoginResult
	err := c.do(ctx, request{
		method:      http.MethodPost,
		endpoint:    "/token",
		path:        "/token",
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	}, &res)
	if err != nil {
		return LoginResult{}, err
	}
	if res.UserEmail == "" {
		res.UserEmail = email
	}
	return res, nil
}

// Register creates an account
func (c *Client) Register(ctx context.Context, email, password string) (models.User, error) {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return models.User{}, err
	}

	var user models.User
	err = c.do(ctx, request{
		method:      http.MethodPost,
		endpoint:    "/users/",
		path:        "/users/",
		body:        bytes.NewReader(payload),
		contentType: "application/json",
	}, &user)
	return user, err
}
