package mojang

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dantte-lp/choadra/internal/choadraerr"
)

const (
	defaultAuthServer    = "https://authserver.mojang.com"
	defaultSessionServer = "https://sessionserver.mojang.com"
)

// Agent identifies the calling game client to the authentication
// server.
type Agent struct {
	Name    string `json:"name"`
	Version int    `json:"version"`
}

// Profile is a selected game profile (a player's id and name).
type Profile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AuthResult is the shape shared by Authenticate and Refresh.
type AuthResult struct {
	ClientToken     string  `json:"clientToken"`
	AccessToken     string  `json:"accessToken"`
	SelectedProfile Profile `json:"selectedProfile"`
}

// Client is the narrow HTTP collaborator surface the login flow
// consumes: authenticate/refresh/validate are called by the host
// program before a session exists, join_session is invoked by the
// session core itself during the encryption step of login.
type Client struct {
	httpClient    *http.Client
	authServer    string
	sessionServer string
}

// NewClient builds a Client against the production Mojang endpoints.
// A nil httpClient defaults to http.DefaultClient.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		httpClient:    httpClient,
		authServer:    defaultAuthServer,
		sessionServer: defaultSessionServer,
	}
}

type authenticateRequest struct {
	Agent       Agent  `json:"agent"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	ClientToken string `json:"clientToken,omitempty"`
}

// Authenticate exchanges a username and password for an access token
// and the account's selected profile.
func (c *Client) Authenticate(ctx context.Context, agent Agent, username, password, clientToken string) (AuthResult, error) {
	req := authenticateRequest{Agent: agent, Username: username, Password: password, ClientToken: clientToken}

	var result AuthResult
	if err := c.postJSON(ctx, c.authServer+"/authenticate", req, &result); err != nil {
		return AuthResult{}, choadraerr.NewHttp("authenticate", err)
	}

	return result, nil
}

type refreshRequest struct {
	AccessToken string `json:"accessToken"`
	ClientToken string `json:"clientToken"`
}

// Refresh exchanges a still-valid access token pair for a new one,
// without requiring the password again.
func (c *Client) Refresh(ctx context.Context, accessToken, clientToken string) (AuthResult, error) {
	req := refreshRequest{AccessToken: accessToken, ClientToken: clientToken}

	var result AuthResult
	if err := c.postJSON(ctx, c.authServer+"/refresh", req, &result); err != nil {
		return AuthResult{}, choadraerr.NewHttp("refresh", err)
	}

	return result, nil
}

type validateRequest struct {
	AccessToken string `json:"accessToken"`
	ClientToken string `json:"clientToken"`
}

// Validate reports whether an access/client token pair is still
// usable: a 204 response means valid, 403 means invalid; any other
// status is an HttpError.
func (c *Client) Validate(ctx context.Context, accessToken, clientToken string) (bool, error) {
	req := validateRequest{AccessToken: accessToken, ClientToken: clientToken}

	body, err := json.Marshal(req)
	if err != nil {
		return false, choadraerr.NewHttp("validate", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authServer+"/validate", bytes.NewReader(body))
	if err != nil {
		return false, choadraerr.NewHttp("validate", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return false, choadraerr.NewHttp("validate", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent:
		return true, nil
	case http.StatusForbidden:
		return false, nil
	default:
		return false, choadraerr.NewHttp("validate", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
}

type joinSessionRequest struct {
	AccessToken     string `json:"accessToken"`
	SelectedProfile string `json:"selectedProfile"`
	ServerID        string `json:"serverId"`
}

// JoinSession notifies the session server that a client holding
// accessToken is about to connect to the server identified by
// serverID, authorizing the server to verify the client's identity.
// This is the only collaborator the session core calls directly,
// during the encryption step of login.
func (c *Client) JoinSession(ctx context.Context, accessToken, selectedProfile, serverID string) error {
	req := joinSessionRequest{AccessToken: accessToken, SelectedProfile: selectedProfile, ServerID: serverID}

	body, err := json.Marshal(req)
	if err != nil {
		return choadraerr.NewHttp("join_session", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sessionServer+"/session/minecraft/join", bytes.NewReader(body))
	if err != nil {
		return choadraerr.NewHttp("join_session", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return choadraerr.NewHttp("join_session", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return choadraerr.NewHttp("join_session", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	return nil
}

func (c *Client) postJSON(ctx context.Context, url string, reqBody, respBody any) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(respBody)
}
