package titanops

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MarcGrol/titanbridge/lib/myerrors"
	"github.com/MarcGrol/titanbridge/lib/myvault"
	"github.com/MarcGrol/titanbridge/services/titanapi"
	"github.com/MarcGrol/titanbridge/services/titanclient"
)

func registerEstimateOps(r registry) {
	r[opKey{"estimate", "list"}] = listEstimates
	r[opKey{"estimate", "get"}] = getEstimate
	r[opKey{"estimate", "create"}] = createEstimate
	r[opKey{"estimate", "update"}] = updateEstimate
	r[opKey{"estimate", "approve"}] = approveEstimate
	r[opKey{"estimate", "decline"}] = declineEstimate
	r[opKey{"estimate", "convertToInvoice"}] = convertEstimateToInvoice
	r[opKey{"estimate", "email"}] = emailEstimate
}

func listEstimates(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	return listItems(c, client, creds, p, estimatesPath, nil)
}

func getEstimate(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"estimateId": p.EstimateID})
	if err != nil {
		return nil, err
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodGet,
		Endpoint: fmt.Sprintf("%s/%s", estimatesPath, p.EstimateID),
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func createEstimate(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{
		"jobId": p.JobID,
		"name":  p.Name,
	})
	if err != nil {
		return nil, err
	}

	jobID, err := titanapi.ParseID(p.JobID)
	if err != nil {
		return nil, err
	}

	body := mergeFields(map[string]any{
		"jobId": jobID,
		"name":  p.Name,
	}, p.AdditionalFields)

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: estimatesPath,
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func updateEstimate(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"estimateId": p.EstimateID})
	if err != nil {
		return nil, err
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPatch,
		Endpoint: fmt.Sprintf("%s/%s", estimatesPath, p.EstimateID),
		Body:     cleanedFields(p.UpdateFields),
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func approveEstimate(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"estimateId": p.EstimateID})
	if err != nil {
		return nil, err
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: fmt.Sprintf("%s/%s/approve", estimatesPath, p.EstimateID),
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func declineEstimate(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"estimateId": p.EstimateID})
	if err != nil {
		return nil, err
	}

	body := map[string]any{}
	if p.Reason != "" {
		body["reason"] = p.Reason
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: fmt.Sprintf("%s/%s/decline", estimatesPath, p.EstimateID),
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func convertEstimateToInvoice(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"estimateId": p.EstimateID})
	if err != nil {
		return nil, err
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: fmt.Sprintf("%s/%s/convert-to-invoice", estimatesPath, p.EstimateID),
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func emailEstimate(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{
		"estimateId": p.EstimateID,
		"email":      p.Email,
	})
	if err != nil {
		return nil, err
	}
	if !titanapi.ValidateEmail(p.Email) {
		return nil, myerrors.NewInvalidInputError(fmt.Errorf("invalid email address: %s", p.Email))
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: fmt.Sprintf("%s/%s/email", estimatesPath, p.EstimateID),
		Body:     map[string]any{"email": p.Email},
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}
