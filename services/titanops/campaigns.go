package titanops

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MarcGrol/titanbridge/lib/myvault"
	"github.com/MarcGrol/titanbridge/services/titanapi"
	"github.com/MarcGrol/titanbridge/services/titanclient"
)

func registerCampaignOps(r registry) {
	r[opKey{"campaign", "list"}] = listCampaigns
	r[opKey{"campaign", "get"}] = getCampaign
	r[opKey{"campaign", "getMetrics"}] = getCampaignMetrics
}

func listCampaigns(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	return listItems(c, client, creds, p, campaignsPath, nil)
}

func getCampaign(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"campaignId": p.CampaignID})
	if err != nil {
		return nil, err
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodGet,
		Endpoint: fmt.Sprintf("%s/%s", campaignsPath, p.CampaignID),
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func getCampaignMetrics(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"campaignId": p.CampaignID})
	if err != nil {
		return nil, err
	}

	qs := map[string]string{}
	if p.StartDate != "" {
		qs["startDate"] = p.StartDate
	}
	if p.EndDate != "" {
		qs["endDate"] = p.EndDate
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodGet,
		Endpoint: fmt.Sprintf("%s/%s/metrics", campaignsPath, p.CampaignID),
		Query:    qs,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}
