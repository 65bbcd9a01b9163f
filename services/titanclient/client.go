package titanclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MarcGrol/titanbridge/lib/myerrors"
	"github.com/MarcGrol/titanbridge/lib/mytime"
	"github.com/MarcGrol/titanbridge/lib/myvault"
)

const (
	httpClientTimeout = 30 * time.Second
	fetchAllPageSize  = 100
)

type client struct {
	httpClient *http.Client
	nower      mytime.Nower
	tokenMutex sync.Mutex
	tokens     map[string]cachedToken
}

func New(nower mytime.Nower) *client {
	return &client{
		httpClient: &http.Client{
			Timeout: httpClientTimeout,
		},
		nower:  nower,
		tokens: map[string]cachedToken{},
	}
}

func (cl *client) Invoke(c context.Context, creds myvault.Credentials, spec RequestSpec) (map[string]any, error) {
	accessToken, err := cl.getAccessToken(c, creds)
	if err != nil {
		return nil, err
	}

	apiHost, _ := resolveHosts(creds)
	endpoint := strings.ReplaceAll(spec.Endpoint, "{tenant}", creds.TenantID)
	fullURL := fmt.Sprintf("%s/%s", baseURL(apiHost), endpoint)

	var bodyReader io.Reader
	if len(spec.Body) > 0 {
		jsonBody, err := json.Marshal(spec.Body)
		if err != nil {
			return nil, myerrors.NewInternalError(fmt.Errorf("error marshalling request body: %s", err))
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	httpReq, err := http.NewRequestWithContext(c, spec.Method, fullURL, bodyReader)
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error creating request for %s %s: %s", spec.Method, endpoint, err))
	}

	if len(spec.Query) > 0 {
		queryValues := url.Values{}
		for name, value := range spec.Query {
			queryValues.Set(name, value)
		}
		httpReq.URL.RawQuery = queryValues.Encode()
	}

	httpReq.Header.Set("Authorization", "Bearer "+accessToken)
	httpReq.Header.Set("ST-App-Key", creds.ClientID)
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := cl.httpClient.Do(httpReq)
	if err != nil {
		return nil, myerrors.NewUpstreamError(fmt.Errorf("error calling %s %s: %s", spec.Method, endpoint, err))
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, myerrors.NewUpstreamError(fmt.Errorf("error reading response of %s %s: %s", spec.Method, endpoint, err))
	}

	if httpResp.StatusCode >= 300 {
		return nil, myerrors.NewUpstreamError(fmt.Errorf("%s %s returned status %d: %s", spec.Method, endpoint, httpResp.StatusCode, strings.TrimSpace(string(respBody))))
	}

	resp := map[string]any{}
	if len(respBody) > 0 {
		err = json.Unmarshal(respBody, &resp)
		if err != nil {
			return nil, myerrors.NewUpstreamError(fmt.Errorf("error parsing response of %s %s: %s", spec.Method, endpoint, err))
		}
	}

	return resp, nil
}

func (cl *client) FetchAll(c context.Context, creds myvault.Credentials, spec RequestSpec, propertyName string, limit int) ([]map[string]any, error) {
	if propertyName == "" {
		propertyName = "data"
	}

	items := []map[string]any{}
	for pageNum := 1; ; pageNum++ {
		pageSpec := spec
		pageSpec.Query = map[string]string{}
		for name, value := range spec.Query {
			pageSpec.Query[name] = value
		}
		pageSpec.Query["pageSize"] = strconv.Itoa(fetchAllPageSize)
		pageSpec.Query["page"] = strconv.Itoa(pageNum)

		resp, err := cl.Invoke(c, creds, pageSpec)
		if err != nil {
			return nil, err
		}

		page := parsePage(resp, propertyName)
		items = append(items, page.Data...)

		if limit > 0 && len(items) >= limit {
			return items[:limit], nil
		}

		// a short page ends the scan even when hasMore claims otherwise
		if !page.HasMore || len(page.Data) < fetchAllPageSize {
			break
		}
	}

	return items, nil
}

func parsePage(resp map[string]any, propertyName string) Page {
	page := Page{
		Data: []map[string]any{},
	}

	rawItems, _ := resp[propertyName].([]any)
	for _, rawItem := range rawItems {
		item, ok := rawItem.(map[string]any)
		if !ok {
			continue
		}
		page.Data = append(page.Data, item)
	}

	page.Page = intOrZero(resp["page"])
	page.PageSize = intOrZero(resp["pageSize"])
	page.TotalCount = intOrZero(resp["totalCount"])
	page.HasMore, _ = resp["hasMore"].(bool)

	return page
}

func intOrZero(value any) int {
	number, ok := value.(float64)
	if !ok {
		return 0
	}
	return int(number)
}
