package titanops

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/MarcGrol/titanbridge/lib/myerrors"
	"github.com/MarcGrol/titanbridge/lib/myvault"
	"github.com/MarcGrol/titanbridge/services/titanapi"
	"github.com/MarcGrol/titanbridge/services/titanclient"
)

const defaultListLimit = 50

// requireParams validates that all named parameters carry a value.
func requireParams(params map[string]string) error {
	missing := []string{}
	for name, value := range params {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return myerrors.NewInvalidInputError(fmt.Errorf("missing required parameters: %s", strings.Join(missing, ", ")))
	}
	return nil
}

func single(resp map[string]any) []map[string]any {
	return []map[string]any{resp}
}

// itemsOf extracts the named result array from a response; responses without
// the array come back as a single item.
func itemsOf(resp map[string]any, property string) []map[string]any {
	rawItems, found := resp[property].([]any)
	if !found {
		return single(resp)
	}

	items := []map[string]any{}
	for _, rawItem := range rawItems {
		item, ok := rawItem.(map[string]any)
		if !ok {
			continue
		}
		items = append(items, item)
	}
	return items
}

func dataOf(resp map[string]any) []map[string]any {
	return itemsOf(resp, "data")
}

// listItems implements the shared list behavior: returnAll pages through the
// whole result set, otherwise a single page of at most limit items is fetched.
func listItems(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params, endpoint string, extraFilters map[string]any) ([]map[string]any, error) {
	filters := titanapi.FilterValues(p.Filters)
	for name, value := range extraFilters {
		filters[name] = value
	}
	qs := titanapi.BuildQuery(filters)

	if p.ReturnAll {
		return client.FetchAll(c, creds, titanclient.RequestSpec{
			Method:   http.MethodGet,
			Endpoint: endpoint,
			Query:    qs,
		}, "", 0)
	}

	limit := p.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	qs["pageSize"] = strconv.Itoa(limit)
	qs["page"] = "1"

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodGet,
		Endpoint: endpoint,
		Query:    qs,
	})
	if err != nil {
		return nil, err
	}
	return dataOf(resp), nil
}

// getData fetches a sub-collection endpoint and unwraps its data array.
func getData(c context.Context, client titanclient.Client, creds myvault.Credentials, endpoint string, qs map[string]string) ([]map[string]any, error) {
	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodGet,
		Endpoint: endpoint,
		Query:    qs,
	})
	if err != nil {
		return nil, err
	}
	return dataOf(resp), nil
}

// mergeFields overlays a cleaned string-field map onto a request body.
func mergeFields(body map[string]any, fields map[string]string) map[string]any {
	cleaned := titanapi.CleanMap(titanapi.FilterValues(fields))
	for name, value := range cleaned {
		body[name] = value
	}
	return body
}

func cleanedFields(fields map[string]string) map[string]any {
	return titanapi.CleanMap(titanapi.FilterValues(fields))
}
