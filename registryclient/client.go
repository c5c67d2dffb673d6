// Package registryclient talks to the registry over HTTP and keeps a service instance
// registered with a heartbeat.
package registryclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"microreg/apierror"
	"microreg/helpers"
)

var (
	// ErrNotFound means the registry answered and no live instance matches. Retry later.
	ErrNotFound = errors.New("no live instance")
	// ErrRegistryUnavailable means the registry could not be reached or answered unexpectedly.
	ErrRegistryUnavailable = errors.New("registry unavailable")
	// ErrRejected means the registry refused the request as malformed.
	ErrRejected = errors.New("registry rejected request")
)

// Registration identifies one instance to the registry. An empty Address lets the
// registry use the caller address.
type Registration struct {
	Name    string
	Version string
	Address string
	Port    int
}

// Instance is one live instance returned by the registry.
type Instance struct {
	Name     string
	Version  string
	Address  string
	Port     int
	LastSeen time.Time
}

// HostPort returns the dialable address of i.
func (i Instance) HostPort() string {
	return net.JoinHostPort(i.Address, strconv.Itoa(i.Port))
}

// Registrar creates, refreshes and removes registrations.
type Registrar interface {
	// Register creates or refreshes r and returns the registry key.
	Register(ctx context.Context, r Registration) (string, error)
	// Unregister removes r and returns the registry key. Removing an unknown registration succeeds.
	Unregister(ctx context.Context, r Registration) (string, error)
}

// Resolver resolves a service name and version constraint into one live instance.
type Resolver interface {
	// Find returns one live instance, ErrNotFound when none matches, or an error wrapping
	// ErrRegistryUnavailable when the registry cannot answer.
	Find(ctx context.Context, name, constraint string) (Instance, error)
}

var (
	_ Registrar = (*Client)(nil)
	_ Resolver  = (*Client)(nil)
)

// Client is the HTTP client of the registry.
//
// Register performs PUT baseURL/v1/register/{name}/{version}/{port}, Unregister the matching DELETE,
// Find GET baseURL/v1/find/{name}/{constraint} and List GET baseURL/v1/instances.
// Path segments are escaped with url.PathEscape, so constraints such as "^1.0.0" or ">=1.0.0 <2.0.0"
// travel intact.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a Client. Panics on empty baseURL or nil client.
//
// Parameters: baseURL is the registry base URL (e.g. http://registry:3080); a trailing slash is trimmed;
// client should carry a timeout.
func New(baseURL string, client *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(helpers.StrPanic(baseURL, "registryclient.client.go: baseURL is required"), "/"),
		client:  helpers.NilPanic(client, "registryclient.client.go: http client is required"),
	}
}

type keyResponse struct {
	Key string `json:"key"`
}

type instanceInfo struct {
	Name     string    `json:"name"`
	Version  string    `json:"version"`
	Address  string    `json:"address"`
	Port     int       `json:"port"`
	LastSeen time.Time `json:"last_seen"`
}

type instancesResponse struct {
	Instances []instanceInfo `json:"instances"`
}

func (i instanceInfo) toInstance() Instance {
	return Instance{Name: i.Name, Version: i.Version, Address: i.Address, Port: i.Port, LastSeen: i.LastSeen}
}

func (c *Client) registrationURL(r Registration) string {
	u := c.baseURL + "/v1/register/" + url.PathEscape(r.Name) + "/" + url.PathEscape(r.Version) + "/" + strconv.Itoa(r.Port)
	if r.Address != "" {
		u += "?" + url.Values{"address": []string{r.Address}}.Encode()
	}
	return u
}

// Register returns the registry key on 200. Returns an error wrapping ErrRejected on 400 and
// ErrRegistryUnavailable on any other failure.
func (c *Client) Register(ctx context.Context, r Registration) (string, error) {
	var resp keyResponse
	if err := c.do(ctx, http.MethodPut, c.registrationURL(r), &resp); err != nil {
		return "", fmt.Errorf("register %s@%s port %d: %w", r.Name, r.Version, r.Port, err)
	}
	return resp.Key, nil
}

// Unregister returns the registry key on 200, whether or not the registration existed.
func (c *Client) Unregister(ctx context.Context, r Registration) (string, error) {
	var resp keyResponse
	if err := c.do(ctx, http.MethodDelete, c.registrationURL(r), &resp); err != nil {
		return "", fmt.Errorf("unregister %s@%s port %d: %w", r.Name, r.Version, r.Port, err)
	}
	return resp.Key, nil
}

// Find returns one live instance of name whose version satisfies constraint.
//
// Returns: (instance, nil) on 200; an error wrapping ErrNotFound on 404 entity_not_found; an error
// wrapping ErrRejected on 400; an error wrapping ErrRegistryUnavailable otherwise, including a 404
// that does not carry entity_not_found (e.g. a proxy in front of the registry).
func (c *Client) Find(ctx context.Context, name, constraint string) (Instance, error) {
	u := c.baseURL + "/v1/find/" + url.PathEscape(name) + "/" + url.PathEscape(constraint)
	var resp instanceInfo
	if err := c.do(ctx, http.MethodGet, u, &resp); err != nil {
		return Instance{}, fmt.Errorf("find %s %s: %w", name, constraint, err)
	}
	return resp.toInstance(), nil
}

// List returns every live instance known to the registry.
func (c *Client) List(ctx context.Context) ([]Instance, error) {
	var resp instancesResponse
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/v1/instances", &resp); err != nil {
		return nil, fmt.Errorf("list instances: %w", err)
	}
	if resp.Instances == nil {
		return nil, fmt.Errorf("list instances: %w: response missing instances field", ErrRegistryUnavailable)
	}
	out := make([]Instance, 0, len(resp.Instances))
	for _, i := range resp.Instances {
		out = append(out, i.toInstance())
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRegistryUnavailable, err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRegistryUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %w", ErrRegistryUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return statusError(resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrRegistryUnavailable, err)
	}
	return nil
}

// statusError classifies a non-200 registry answer by status and error code.
func statusError(status int, body []byte) error {
	var errResp apierror.ErrResponse
	_ = json.Unmarshal(body, &errResp)
	code, message := "", ""
	if errResp.Error != nil {
		code, message = errResp.Error.Code, errResp.Error.Message
	}

	switch {
	case status == http.StatusNotFound && code == apierror.ErrEntityNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, message)
	case status == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrRejected, message)
	default:
		return fmt.Errorf("%w: registry returned %d %s", ErrRegistryUnavailable, status, code)
	}
}
