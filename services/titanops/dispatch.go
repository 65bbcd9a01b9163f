package titanops

import (
	"context"
	"net/http"

	"github.com/MarcGrol/titanbridge/lib/myvault"
	"github.com/MarcGrol/titanbridge/services/titanapi"
	"github.com/MarcGrol/titanbridge/services/titanclient"
)

func registerDispatchOps(r registry) {
	r[opKey{"dispatch", "getBoard"}] = getDispatchBoard
	r[opKey{"dispatch", "getZones"}] = getDispatchZones
	r[opKey{"dispatch", "getCapacity"}] = getDispatchCapacity
	r[opKey{"dispatch", "optimizeRoutes"}] = optimizeRoutes
}

func getDispatchBoard(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"date": p.Date})
	if err != nil {
		return nil, err
	}

	qs := map[string]string{"date": p.Date}
	for name, value := range p.AdditionalFields {
		if value != "" {
			qs[name] = value
		}
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodGet,
		Endpoint: dispatchPath + "/board",
		Query:    qs,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func getDispatchZones(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	return getData(c, client, creds, zonesPath, nil)
}

func getDispatchCapacity(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"date": p.Date})
	if err != nil {
		return nil, err
	}

	qs := map[string]string{"date": p.Date}
	for name, value := range p.AdditionalFields {
		if value != "" {
			qs[name] = value
		}
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodGet,
		Endpoint: dispatchPath + "/capacity",
		Query:    qs,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func optimizeRoutes(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"date": p.Date})
	if err != nil {
		return nil, err
	}

	body := mergeFields(map[string]any{
		"date": p.Date,
	}, p.AdditionalFields)

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: dispatchPath + "/optimize",
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}
