package titanops

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MarcGrol/titanbridge/lib/myvault"
	"github.com/MarcGrol/titanbridge/services/titanapi"
	"github.com/MarcGrol/titanbridge/services/titanclient"
)

func registerLocationOps(r registry) {
	r[opKey{"location", "list"}] = listLocations
	r[opKey{"location", "get"}] = getLocation
	r[opKey{"location", "create"}] = createLocation
	r[opKey{"location", "update"}] = updateLocation
	r[opKey{"location", "getEquipment"}] = getLocationEquipment
	r[opKey{"location", "getHistory"}] = getLocationHistory
}

func listLocations(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	return listItems(c, client, creds, p, locationsPath, nil)
}

func getLocation(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"locationId": p.LocationID})
	if err != nil {
		return nil, err
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodGet,
		Endpoint: fmt.Sprintf("%s/%s", locationsPath, p.LocationID),
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func createLocation(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{
		"customerId": p.CustomerID,
		"street":     p.Street,
		"city":       p.City,
		"state":      p.State,
		"zip":        p.Zip,
	})
	if err != nil {
		return nil, err
	}

	customerID, err := titanapi.ParseID(p.CustomerID)
	if err != nil {
		return nil, err
	}

	country := p.AdditionalFields["country"]
	if country == "" {
		country = "US"
	}

	body := mergeFields(map[string]any{
		"customerId": customerID,
		"address": map[string]any{
			"street":  p.Street,
			"city":    p.City,
			"state":   p.State,
			"zip":     p.Zip,
			"country": country,
		},
	}, p.AdditionalFields)
	delete(body, "country")

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: locationsPath,
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func updateLocation(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"locationId": p.LocationID})
	if err != nil {
		return nil, err
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPatch,
		Endpoint: fmt.Sprintf("%s/%s", locationsPath, p.LocationID),
		Body:     cleanedFields(p.UpdateFields),
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func getLocationEquipment(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"locationId": p.LocationID})
	if err != nil {
		return nil, err
	}

	return getData(c, client, creds, fmt.Sprintf("%s/%s/equipment", locationsPath, p.LocationID), nil)
}

// getLocationHistory reports the jobs of a location as its service history.
func getLocationHistory(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"locationId": p.LocationID})
	if err != nil {
		return nil, err
	}

	filters := titanapi.FilterValues(p.Filters)
	filters["locationId"] = p.LocationID

	return getData(c, client, creds, jobsPath, titanapi.BuildQuery(filters))
}
