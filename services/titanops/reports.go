package titanops

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MarcGrol/titanbridge/lib/myvault"
	"github.com/MarcGrol/titanbridge/services/titanapi"
	"github.com/MarcGrol/titanbridge/services/titanclient"
)

func registerReportOps(r registry) {
	r[opKey{"report", "revenue"}] = revenueReport
	r[opKey{"report", "technicianPerformance"}] = technicianPerformanceReport
	r[opKey{"report", "calls"}] = callsReport
	r[opKey{"report", "conversions"}] = conversionsReport
	r[opKey{"report", "custom"}] = customReport
}

func revenueReport(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	return rangedReport(c, client, creds, p, reportsPath+"/revenue")
}

func technicianPerformanceReport(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	return rangedReport(c, client, creds, p, reportsPath+"/technician-performance")
}

func callsReport(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	return rangedReport(c, client, creds, p, reportsPath+"/calls")
}

func conversionsReport(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	return rangedReport(c, client, creds, p, reportsPath+"/conversions")
}

func rangedReport(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params, endpoint string) ([]map[string]any, error) {
	err := requireParams(map[string]string{
		"startDate": p.StartDate,
		"endDate":   p.EndDate,
	})
	if err != nil {
		return nil, err
	}

	qs := map[string]string{
		"startDate": p.StartDate,
		"endDate":   p.EndDate,
	}
	for name, value := range p.AdditionalFields {
		if value != "" {
			qs[name] = value
		}
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodGet,
		Endpoint: endpoint,
		Query:    qs,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func customReport(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"reportId": p.ReportID})
	if err != nil {
		return nil, err
	}

	qs := map[string]string{}
	for name, value := range titanapi.CleanMap(titanapi.FilterValues(p.Parameters)) {
		qs[name] = fmt.Sprintf("%v", value)
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodGet,
		Endpoint: fmt.Sprintf("%s/%s", reportsPath, p.ReportID),
		Query:    qs,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}
