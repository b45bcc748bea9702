// Package avatar downloads contestant avatars from Discord's user API
// so slide templates can show profile pictures next to results.
package avatar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ErrNoToken indicates avatar mode is on but no bot token is configured.
var ErrNoToken = errors.New("no bot token configured")

// InvalidTokenError indicates the bot token was rejected: invalid,
// reset, or deactivated.
type InvalidTokenError struct {
	Message string
}

func (e *InvalidTokenError) Error() string {
	return fmt.Sprintf("invalid bot token: %s", e.Message)
}

// UnknownUserError indicates a user ID the API does not recognize,
// usually a deleted or migrated account.
type UnknownUserError struct {
	UID string
}

func (e *UnknownUserError) Error() string {
	return fmt.Sprintf("unknown user %s", e.UID)
}

// Client fetches avatars by user ID.
type Client struct {
	Token      string
	Size       int // pixel size requested from the CDN
	BaseURL    string
	CDNBaseURL string
	HTTPClient *http.Client
}

// New returns a client with the public Discord endpoints and a 10s
// request timeout.
func New(token string, size int) *Client {
	return &Client{
		Token:      token,
		Size:       size,
		BaseURL:    "https://discord.com/api/v9",
		CDNBaseURL: "https://cdn.discordapp.com",
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type userResponse struct {
	Avatar     string  `json:"avatar"`
	Message    string  `json:"message"`
	RetryAfter float64 `json:"retry_after"`
}

// AvatarURL resolves the CDN URL for a user's avatar. User IDs come
// from the data sheet with a leading underscore (which keeps Excel from
// rounding them); the prefix is stripped here. A non-numeric ID returns
// an empty URL with no error so rows without a real ID are skipped.
func (c *Client) AvatarURL(ctx context.Context, uid string) (string, error) {
	uid = strings.TrimPrefix(uid, "_")
	if _, err := strconv.ParseUint(uid, 10, 64); err != nil {
		return "", nil
	}
	if c.Token == "" {
		return "", ErrNoToken
	}

	user, err := c.fetchUser(ctx, uid)
	if err != nil {
		return "", err
	}
	if user.RetryAfter > 0 {
		// Rate limited; honor retry_after once.
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Duration(user.RetryAfter * float64(time.Second))):
		}
		user, err = c.fetchUser(ctx, uid)
		if err != nil {
			return "", err
		}
	}
	if user.Avatar == "" {
		return "", nil
	}
	return fmt.Sprintf("%s/avatars/%s/%s.png?size=%d", c.CDNBaseURL, uid, user.Avatar, c.Size), nil
}

func (c *Client) fetchUser(ctx context.Context, uid string) (userResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/users/"+uid, nil)
	if err != nil {
		return userResponse{}, err
	}
	req.Header.Set("Authorization", "Bot "+c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return userResponse{}, err
	}
	defer resp.Body.Close()

	var user userResponse
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return userResponse{}, fmt.Errorf("decoding user %s: %w", uid, err)
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusTooManyRequests:
		return user, nil
	case http.StatusUnauthorized:
		return userResponse{}, &InvalidTokenError{Message: user.Message}
	case http.StatusNotFound:
		return userResponse{}, &UnknownUserError{UID: uid}
	default:
		return userResponse{}, fmt.Errorf("user %s: unexpected status %d: %s", uid, resp.StatusCode, user.Message)
	}
}

// Download fetches the user's avatar PNG into dir, named <uid>.png.
// Returns the file path, or "" when the user has no usable avatar.
func (c *Client) Download(ctx context.Context, uid, dir string) (string, error) {
	url, err := c.AvatarURL(ctx, uid)
	if err != nil || url == "" {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloading avatar for %s: status %d", uid, resp.StatusCode)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, strings.TrimPrefix(uid, "_")+".png")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", err
	}
	return path, nil
}
