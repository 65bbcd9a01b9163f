package titanclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MarcGrol/titanbridge/lib/myerrors"
	"github.com/MarcGrol/titanbridge/lib/myvault"
)

const (
	// tokens are refreshed when they expire within this window
	tokenExpiryMargin = 5 * time.Minute
)

type cachedToken struct {
	accessToken string
	expiresAt   time.Time
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

func (cl *client) getAccessToken(c context.Context, creds myvault.Credentials) (string, error) {
	cacheKey := fmt.Sprintf("%s:%s", creds.ClientID, creds.TenantID)
	now := cl.nower.Now()

	cl.tokenMutex.Lock()
	defer cl.tokenMutex.Unlock()

	token, found := cl.tokens[cacheKey]
	if found && token.expiresAt.After(now.Add(tokenExpiryMargin)) {
		return token.accessToken, nil
	}

	resp, err := cl.fetchToken(c, creds)
	if err != nil {
		return "", err
	}

	cl.tokens[cacheKey] = cachedToken{
		accessToken: resp.AccessToken,
		expiresAt:   now.Add(time.Duration(resp.ExpiresIn) * time.Second),
	}

	return resp.AccessToken, nil
}

func (cl *client) fetchToken(c context.Context, creds myvault.Credentials) (tokenResponse, error) {
	_, authHost := resolveHosts(creds)
	tokenURL := fmt.Sprintf("%s/connect/token", baseURL(authHost))

	requestBody := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {creds.ClientID},
		"client_secret": {creds.ClientSecret},
	}.Encode()

	httpReq, err := http.NewRequestWithContext(c, http.MethodPost, tokenURL, strings.NewReader(requestBody))
	if err != nil {
		return tokenResponse{}, myerrors.NewInternalError(fmt.Errorf("error creating token request: %s", err))
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := cl.httpClient.Do(httpReq)
	if err != nil {
		return tokenResponse{}, myerrors.NewAuthenticationError(fmt.Errorf("error calling token endpoint: %s", err))
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return tokenResponse{}, myerrors.NewAuthenticationError(fmt.Errorf("error reading token response: %s", err))
	}

	resp := tokenResponse{}
	err = json.Unmarshal(respBody, &resp)
	if err != nil {
		return tokenResponse{}, myerrors.NewAuthenticationError(fmt.Errorf("error parsing token response: %s", err))
	}

	if resp.AccessToken == "" {
		return tokenResponse{}, myerrors.NewAuthenticationError(fmt.Errorf("failed to obtain access token: credentials were rejected (status %d)", httpResp.StatusCode))
	}

	return resp, nil
}
