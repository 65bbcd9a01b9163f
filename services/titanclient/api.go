package titanclient

import (
	"context"
	"strings"

	"github.com/MarcGrol/titanbridge/lib/myvault"
)

const (
	productionAPIHost  = "api.servicetitan.io"
	productionAuthHost = "auth.servicetitan.io"
	sandboxAPIHost     = "api-integration.servicetitan.io"
	sandboxAuthHost    = "auth-integration.servicetitan.io"
)

// RequestSpec describes one outbound ServiceTitan API call. The endpoint is
// a path template in which "{tenant}" is substituted with the tenant-id of
// the credentials used for the call.
type RequestSpec struct {
	Method   string
	Endpoint string
	Query    map[string]string
	Body     map[string]any
}

// Page is the decoded shape of one paginated ServiceTitan list response.
type Page struct {
	Data       []map[string]any
	Page       int
	PageSize   int
	TotalCount int
	HasMore    bool
}

//go:generate mockgen -source=api.go -package titanclient -destination client_mock.go Client
type Client interface {
	// Invoke performs a single authenticated API call and returns the decoded response body.
	Invoke(c context.Context, creds myvault.Credentials, spec RequestSpec) (map[string]any, error)
	// FetchAll pages through a list endpoint and accumulates the items found
	// under propertyName ("data" when empty). A limit > 0 caps the result at
	// exactly that many items.
	FetchAll(c context.Context, creds myvault.Credentials, spec RequestSpec, propertyName string, limit int) ([]map[string]any, error)
}

// baseURL prefixes a bare hostname with https. Hosts that already carry a
// scheme are used as-is.
func baseURL(host string) string {
	if strings.Contains(host, "://") {
		return host
	}
	return "https://" + host
}

func resolveHosts(creds myvault.Credentials) (string, string) {
	apiHost := creds.APIHost
	authHost := creds.AuthHost
	if apiHost == "" {
		if creds.Environment == "sandbox" {
			apiHost = sandboxAPIHost
		} else {
			apiHost = productionAPIHost
		}
	}
	if authHost == "" {
		if creds.Environment == "sandbox" {
			authHost = sandboxAuthHost
		} else {
			authHost = productionAuthHost
		}
	}
	return apiHost, authHost
}
