package email

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Client talks to the Plunk transactional mail API.
type Client struct {
	BaseURL     string
	APIKey      string
	FrontendURL string
}

func NewClient(baseURL, apiKey, frontendURL string) *Client {
	return &Client{
		BaseURL:     baseURL,
		APIKey:      apiKey,
		FrontendURL: frontendURL,
	}
}

type sendRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *Client) send(to, subject, body string) error {
	requestBodyBytes, err := json.Marshal(sendRequest{
		To:      to,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/v1/send", c.BaseURL), bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	response, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return nil
	}
	var errResp errorResponse
	if err := json.Unmarshal(responseBodyBytes, &errResp); err != nil {
		return fmt.Errorf("mail api returned status %d", response.StatusCode)
	}
	return errors.New(errResp.Error)
}

func (c *Client) SendLoginCredentials(email, username, password string) error {
	body := fmt.Sprintf(`
		<h2>Welcome!</h2>
		<p>Your account has been created successfully.</p>
		<p><strong>Username:</strong> %s</p>
		<p><strong>Password:</strong> %s</p>
		<p>Please keep these credentials safe.</p>
	`, username, password)

	return c.send(email, "Your Login Credentials", body)
}

func (c *Client) SendPasswordResetEmail(email, resetToken string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", c.FrontendURL, resetToken)
	body := fmt.Sprintf(`
		<h2>Password Reset Request</h2>
		<p>You have requested to reset your password. Click the link below to reset your password:</p>
		<p><a href="%s">Reset Password</a></p>
		<p>If the button doesn't work, copy and paste this link into your browser:</p>
		<p>%s</p>
		<p>This link will expire in 1 hour.</p>
		<p>If you didn't request this password reset, please ignore this email.</p>
	`, resetURL, resetURL)

	return c.send(email, "Password Reset Request", body)
}
