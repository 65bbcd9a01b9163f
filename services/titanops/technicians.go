package titanops

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MarcGrol/titanbridge/lib/myvault"
	"github.com/MarcGrol/titanbridge/services/titanapi"
	"github.com/MarcGrol/titanbridge/services/titanclient"
)

func registerTechnicianOps(r registry) {
	r[opKey{"technician", "list"}] = listTechnicians
	r[opKey{"technician", "get"}] = getTechnician
	r[opKey{"technician", "create"}] = createTechnician
	r[opKey{"technician", "update"}] = updateTechnician
	r[opKey{"technician", "getSchedule"}] = getTechnicianSchedule
	r[opKey{"technician", "getCapacity"}] = getTechnicianCapacity
	r[opKey{"technician", "getPerformance"}] = getTechnicianPerformance
}

func listTechnicians(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	return listItems(c, client, creds, p, techniciansPath, nil)
}

func getTechnician(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"technicianId": p.TechnicianID})
	if err != nil {
		return nil, err
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodGet,
		Endpoint: fmt.Sprintf("%s/%s", techniciansPath, p.TechnicianID),
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func createTechnician(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{
		"firstName": p.FirstName,
		"lastName":  p.LastName,
	})
	if err != nil {
		return nil, err
	}

	body := mergeFields(map[string]any{
		"name":      fmt.Sprintf("%s %s", p.FirstName, p.LastName),
		"firstName": p.FirstName,
		"lastName":  p.LastName,
	}, p.AdditionalFields)

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: techniciansPath,
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func updateTechnician(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"technicianId": p.TechnicianID})
	if err != nil {
		return nil, err
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPatch,
		Endpoint: fmt.Sprintf("%s/%s", techniciansPath, p.TechnicianID),
		Body:     cleanedFields(p.UpdateFields),
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func getTechnicianSchedule(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{
		"technicianId": p.TechnicianID,
		"startDate":    p.StartDate,
		"endDate":      p.EndDate,
	})
	if err != nil {
		return nil, err
	}

	return getData(c, client, creds, appointmentsPath, map[string]string{
		"technicianId":     p.TechnicianID,
		"startsOnOrAfter":  p.StartDate,
		"startsOnOrBefore": p.EndDate,
	})
}

func getTechnicianCapacity(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{
		"technicianId": p.TechnicianID,
		"date":         p.Date,
	})
	if err != nil {
		return nil, err
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodGet,
		Endpoint: dispatchPath + "/capacity",
		Query: map[string]string{
			"technicianId": p.TechnicianID,
			"date":         p.Date,
		},
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func getTechnicianPerformance(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{
		"technicianId": p.TechnicianID,
		"startDate":    p.StartDate,
		"endDate":      p.EndDate,
	})
	if err != nil {
		return nil, err
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodGet,
		Endpoint: reportsPath + "/technician-performance",
		Query: map[string]string{
			"technicianId": p.TechnicianID,
			"startDate":    p.StartDate,
			"endDate":      p.EndDate,
		},
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}
