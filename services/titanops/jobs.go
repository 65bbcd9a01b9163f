package titanops

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MarcGrol/titanbridge/lib/myvault"
	"github.com/MarcGrol/titanbridge/services/titanapi"
	"github.com/MarcGrol/titanbridge/services/titanclient"
)

func registerJobOps(r registry) {
	r[opKey{"job", "list"}] = listJobs
	r[opKey{"job", "get"}] = getJob
	r[opKey{"job", "create"}] = createJob
	r[opKey{"job", "update"}] = updateJob
	r[opKey{"job", "cancel"}] = cancelJob
	r[opKey{"job", "complete"}] = completeJob
	r[opKey{"job", "getAppointments"}] = getJobAppointments
	r[opKey{"job", "getInvoices"}] = getJobInvoices
	r[opKey{"job", "getHistory"}] = getJobHistory
	r[opKey{"job", "getNotes"}] = getJobNotes
	r[opKey{"job", "addNote"}] = addJobNote
}

func listJobs(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	return listItems(c, client, creds, p, jobsPath, nil)
}

func getJob(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"jobId": p.JobID})
	if err != nil {
		return nil, err
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodGet,
		Endpoint: fmt.Sprintf("%s/%s", jobsPath, p.JobID),
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func createJob(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{
		"customerId": p.CustomerID,
		"locationId": p.LocationID,
		"jobTypeId":  p.JobTypeID,
	})
	if err != nil {
		return nil, err
	}

	customerID, err := titanapi.ParseID(p.CustomerID)
	if err != nil {
		return nil, err
	}
	locationID, err := titanapi.ParseID(p.LocationID)
	if err != nil {
		return nil, err
	}
	jobTypeID, err := titanapi.ParseID(p.JobTypeID)
	if err != nil {
		return nil, err
	}

	body := mergeFields(map[string]any{
		"customerId": customerID,
		"locationId": locationID,
		"jobTypeId":  jobTypeID,
	}, p.AdditionalFields)

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: jobsPath,
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func updateJob(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"jobId": p.JobID})
	if err != nil {
		return nil, err
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPatch,
		Endpoint: fmt.Sprintf("%s/%s", jobsPath, p.JobID),
		Body:     cleanedFields(p.UpdateFields),
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func cancelJob(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"jobId": p.JobID})
	if err != nil {
		return nil, err
	}

	body := map[string]any{}
	if p.CancelReasonID != "" {
		cancelReasonID, err := titanapi.ParseID(p.CancelReasonID)
		if err != nil {
			return nil, err
		}
		body["cancelReasonId"] = cancelReasonID
	}
	if p.Memo != "" {
		body["memo"] = p.Memo
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: fmt.Sprintf("%s/%s/cancel", jobsPath, p.JobID),
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func completeJob(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"jobId": p.JobID})
	if err != nil {
		return nil, err
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: fmt.Sprintf("%s/%s/complete", jobsPath, p.JobID),
		Body:     cleanedFields(p.AdditionalFields),
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func getJobAppointments(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"jobId": p.JobID})
	if err != nil {
		return nil, err
	}

	return getData(c, client, creds, appointmentsPath, map[string]string{"jobId": p.JobID})
}

func getJobInvoices(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"jobId": p.JobID})
	if err != nil {
		return nil, err
	}

	return getData(c, client, creds, invoicesPath, map[string]string{"jobId": p.JobID})
}

func getJobHistory(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"jobId": p.JobID})
	if err != nil {
		return nil, err
	}

	return getData(c, client, creds, fmt.Sprintf("%s/%s/history", jobsPath, p.JobID), nil)
}

func getJobNotes(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"jobId": p.JobID})
	if err != nil {
		return nil, err
	}

	return getData(c, client, creds, fmt.Sprintf("%s/%s/notes", jobsPath, p.JobID), nil)
}

func addJobNote(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{
		"jobId":    p.JobID,
		"noteText": p.NoteText,
	})
	if err != nil {
		return nil, err
	}

	body := mergeFields(map[string]any{
		"text": p.NoteText,
	}, p.AdditionalFields)

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: fmt.Sprintf("%s/%s/notes", jobsPath, p.JobID),
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}
