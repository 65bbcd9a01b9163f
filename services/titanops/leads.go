package titanops

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MarcGrol/titanbridge/lib/myvault"
	"github.com/MarcGrol/titanbridge/services/titanapi"
	"github.com/MarcGrol/titanbridge/services/titanclient"
)

func registerLeadOps(r registry) {
	r[opKey{"lead", "list"}] = listLeads
	r[opKey{"lead", "get"}] = getLead
	r[opKey{"lead", "create"}] = createLead
	r[opKey{"lead", "update"}] = updateLead
	r[opKey{"lead", "convertToJob"}] = convertLeadToJob
	r[opKey{"lead", "dismiss"}] = dismissLead
	r[opKey{"lead", "addFollowUp"}] = addLeadFollowUp
}

func listLeads(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	return listItems(c, client, creds, p, leadsPath, nil)
}

func getLead(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"leadId": p.LeadID})
	if err != nil {
		return nil, err
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodGet,
		Endpoint: fmt.Sprintf("%s/%s", leadsPath, p.LeadID),
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func createLead(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{
		"name":  p.Name,
		"phone": p.Phone,
	})
	if err != nil {
		return nil, err
	}

	body := mergeFields(map[string]any{
		"name": p.Name,
		"contacts": []any{
			map[string]any{
				"type":  "Phone",
				"value": titanapi.FormatPhoneNumber(p.Phone),
			},
		},
	}, p.AdditionalFields)

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: leadsPath,
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func updateLead(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"leadId": p.LeadID})
	if err != nil {
		return nil, err
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPatch,
		Endpoint: fmt.Sprintf("%s/%s", leadsPath, p.LeadID),
		Body:     cleanedFields(p.UpdateFields),
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func convertLeadToJob(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{
		"leadId":    p.LeadID,
		"jobTypeId": p.JobTypeID,
	})
	if err != nil {
		return nil, err
	}

	jobTypeID, err := titanapi.ParseID(p.JobTypeID)
	if err != nil {
		return nil, err
	}

	body := mergeFields(map[string]any{
		"jobTypeId": jobTypeID,
	}, p.AdditionalFields)

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: fmt.Sprintf("%s/%s/convert", leadsPath, p.LeadID),
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func dismissLead(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"leadId": p.LeadID})
	if err != nil {
		return nil, err
	}

	body := map[string]any{}
	if p.DismissReasonID != "" {
		dismissReasonID, err := titanapi.ParseID(p.DismissReasonID)
		if err != nil {
			return nil, err
		}
		body["dismissReasonId"] = dismissReasonID
	}
	if p.Memo != "" {
		body["memo"] = p.Memo
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: fmt.Sprintf("%s/%s/dismiss", leadsPath, p.LeadID),
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func addLeadFollowUp(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{
		"leadId":       p.LeadID,
		"followUpDate": p.FollowUpDate,
	})
	if err != nil {
		return nil, err
	}

	body := mergeFields(map[string]any{
		"followUpDate": p.FollowUpDate,
		"note":         p.NoteText,
	}, p.AdditionalFields)

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: fmt.Sprintf("%s/%s/follow-ups", leadsPath, p.LeadID),
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}
