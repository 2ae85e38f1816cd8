// Package api is the typed HTTP client for the train reservation
// service. Every response is classified into the domain error taxonomy
// in exactly one place (classify), so callers never inspect HTTP status
// codes themselves.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pari08yadav/train-ticket-booking/internal/domain"
	"github.com/pari08yadav/train-ticket-booking/internal/session"
)

// Client talks to the reservation service. Session is injected; the
// client reads the token through it and, on a 401, clears it through it.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Session    *session.Service
}

func NewClient(baseURL string, sess *session.Service) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Session:    sess,
	}
}

type loginResponse struct {
	Tokens struct {
		Access string `json:"access"`
	} `json:"tokens"`
}

// Login authenticates and stores the returned bearer token in the
// session service.
func (c *Client) Login(ctx context.Context, identifier, password string) error {
	payload := map[string]string{"identifier": identifier, "password": password}
	body, status, err := c.post(ctx, "/api/login/", payload, false)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return c.classify(status, body)
	}
	var out loginResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return domain.ServerError{Status: status, Err: err}
	}
	if out.Tokens.Access == "" {
		return domain.ServerError{Status: status, Msg: "login response carried no token"}
	}
	return c.Session.Set(out.Tokens.Access)
}

// SignupRequest mirrors the account creation payload. Validation rules
// live on the server.
type SignupRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) error {
	body, status, err := c.post(ctx, "/api/signup/", req, false)
	if err != nil {
		return err
	}
	if status != http.StatusCreated && status != http.StatusOK {
		return c.classify(status, body)
	}
	return nil
}

// Search queries schedules for a source/destination pair. Date is
// optional; when empty the server applies its own default range. The
// server-provided order is preserved verbatim.
//
// The service answers a criteria miss with 200 and a message object
// instead of an array; that case comes back as an empty slice plus a
// NotFoundError carrying the server message.
func (c *Client) Search(ctx context.Context, source, destination, date string) ([]domain.ScheduleOption, error) {
	if strings.TrimSpace(source) == "" || strings.TrimSpace(destination) == "" {
		return nil, domain.ValidationError{Msg: "Please fill in all required fields."}
	}
	if !c.Session.Present() {
		return nil, domain.ValidationError{Msg: "You must be logged in to search for trains."}
	}

	q := url.Values{}
	q.Set("source", source)
	q.Set("destination", destination)
	if strings.TrimSpace(date) != "" {
		q.Set("date", date)
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/api/search/tickets/?"+q.Encode(), nil, true)
	if err != nil {
		return nil, err
	}
	body, status, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, c.classify(status, body)
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(trimmed, &msg)
		return []domain.ScheduleOption{}, domain.NotFoundError{Msg: msg.Message}
	}

	var options []domain.ScheduleOption
	if err := json.Unmarshal(trimmed, &options); err != nil {
		return nil, domain.ServerError{Status: status, Err: err}
	}
	return options, nil
}

type bookingResponse struct {
	Message  string                 `json:"message"`
	Bookings []domain.BookingRecord `json:"bookings"`
}

// SubmitBooking posts the composed booking request. Roster entries go
// up as-is; field-level correctness is judged by the server.
func (c *Client) SubmitBooking(ctx context.Context, req domain.BookingRequest) ([]domain.BookingRecord, error) {
	body, status, err := c.post(ctx, "/api/book/ticket/", req, true)
	if err != nil {
		return nil, err
	}
	if status != http.StatusCreated && status != http.StatusOK {
		return nil, c.classify(status, body)
	}
	var out bookingResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, domain.ServerError{Status: status, Err: err}
	}
	return out.Bookings, nil
}

// decimal tolerates the service serializing money either as a JSON
// number or as a quoted decimal string.
type decimal float64

func (d *decimal) UnmarshalJSON(raw []byte) error {
	s := strings.Trim(string(raw), `"`)
	if s == "" || s == "null" {
		*d = 0
		return nil
	}
	var f float64
	if err := json.Unmarshal([]byte(s), &f); err != nil {
		return err
	}
	*d = decimal(f)
	return nil
}

// AddFunds credits the wallet and returns the new balance.
func (c *Client) AddFunds(ctx context.Context, amount float64) (float64, error) {
	payload := map[string]float64{"amount": amount}
	body, status, err := c.post(ctx, "/api/add/fund/", payload, true)
	if err != nil {
		return 0, err
	}
	if status != http.StatusOK {
		return 0, c.classify(status, body)
	}
	var out struct {
		Data struct {
			Balance decimal `json:"balance"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return 0, domain.ServerError{Status: status, Err: err}
	}
	return float64(out.Data.Balance), nil
}

// Balance fetches the current wallet balance.
func (c *Client) Balance(ctx context.Context) (float64, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/check/balance/", nil, true)
	if err != nil {
		return 0, err
	}
	body, status, err := c.do(req)
	if err != nil {
		return 0, err
	}
	if status != http.StatusOK {
		return 0, c.classify(status, body)
	}
	var out struct {
		Balance decimal `json:"balance"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return 0, domain.ServerError{Status: status, Err: err}
	}
	return float64(out.Balance), nil
}

func (c *Client) post(ctx context.Context, path string, payload any, authed bool) ([]byte, int, error) {
	req, err := c.newRequest(ctx, http.MethodPost, path, payload, authed)
	if err != nil {
		return nil, 0, err
	}
	return c.doWithStatus(req)
}

func (c *Client) newRequest(ctx context.Context, method, path string, payload any, authed bool) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, domain.RequestError{Err: err}
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, domain.RequestError{Err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		tok := c.Session.Token()
		if tok == "" {
			return nil, domain.ValidationError{Msg: domain.MsgNotLoggedIn}
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return req, nil
}

func (c *Client) do(req *http.Request) ([]byte, int, error) {
	return c.doWithStatus(req)
}

func (c *Client) doWithStatus(req *http.Request) ([]byte, int, error) {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, 0, domain.UnreachableError{Err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, domain.UnreachableError{Err: err}
	}
	return body, resp.StatusCode, nil
}

// classify maps an error-status response onto the domain taxonomy. The
// 401 branch is the one place outside login/logout that tears the
// session down: any authentication failure invalidates the whole
// session, not just the current request.
func (c *Client) classify(status int, body []byte) error {
	msg := serverMessage(body)
	switch {
	case status == http.StatusUnauthorized:
		_ = c.Session.Clear()
		return domain.AuthExpiredError{}
	case status == http.StatusBadRequest:
		return domain.ValidationError{Msg: msg}
	case status == http.StatusNotFound:
		return domain.NotFoundError{Msg: msg}
	default:
		return domain.ServerError{Status: status, Msg: msg}
	}
}

// serverMessage pulls the user-facing text out of an error payload.
// The service uses "error"; Django-style auth rejections use "detail".
func serverMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, m := range []string{payload.Error, payload.Detail, payload.Message} {
		if strings.TrimSpace(m) != "" {
			return m
		}
	}
	return ""
}
