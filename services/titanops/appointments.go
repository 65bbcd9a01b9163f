package titanops

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MarcGrol/titanbridge/lib/myvault"
	"github.com/MarcGrol/titanbridge/services/titanapi"
	"github.com/MarcGrol/titanbridge/services/titanclient"
)

func registerAppointmentOps(r registry) {
	r[opKey{"appointment", "list"}] = listAppointments
	r[opKey{"appointment", "get"}] = getAppointment
	r[opKey{"appointment", "create"}] = createAppointment
	r[opKey{"appointment", "update"}] = updateAppointment
	r[opKey{"appointment", "reschedule"}] = rescheduleAppointment
	r[opKey{"appointment", "cancel"}] = cancelAppointment
	r[opKey{"appointment", "assign"}] = assignTechnician
	r[opKey{"appointment", "unassign"}] = unassignTechnician
	r[opKey{"appointment", "complete"}] = completeAppointment
}

func listAppointments(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	return listItems(c, client, creds, p, appointmentsPath, nil)
}

func getAppointment(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"appointmentId": p.AppointmentID})
	if err != nil {
		return nil, err
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodGet,
		Endpoint: fmt.Sprintf("%s/%s", appointmentsPath, p.AppointmentID),
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func createAppointment(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{
		"jobId": p.JobID,
		"start": p.Start,
		"end":   p.End,
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
		"start": p.Start,
		"end":   p.End,
	}, p.AdditionalFields)

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: appointmentsPath,
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func updateAppointment(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"appointmentId": p.AppointmentID})
	if err != nil {
		return nil, err
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPatch,
		Endpoint: fmt.Sprintf("%s/%s", appointmentsPath, p.AppointmentID),
		Body:     cleanedFields(p.UpdateFields),
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func rescheduleAppointment(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{
		"appointmentId": p.AppointmentID,
		"start":         p.Start,
		"end":           p.End,
	})
	if err != nil {
		return nil, err
	}

	body := mergeFields(map[string]any{
		"start": p.Start,
		"end":   p.End,
	}, p.AdditionalFields)

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: fmt.Sprintf("%s/%s/reschedule", appointmentsPath, p.AppointmentID),
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func cancelAppointment(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"appointmentId": p.AppointmentID})
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
		Endpoint: fmt.Sprintf("%s/%s/cancel", appointmentsPath, p.AppointmentID),
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func assignTechnician(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{
		"appointmentId": p.AppointmentID,
		"technicianId":  p.TechnicianID,
	})
	if err != nil {
		return nil, err
	}

	technicianID, err := titanapi.ParseID(p.TechnicianID)
	if err != nil {
		return nil, err
	}

	body := mergeFields(map[string]any{
		"technicianId": technicianID,
	}, p.AdditionalFields)

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: fmt.Sprintf("%s/%s/assign", appointmentsPath, p.AppointmentID),
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func unassignTechnician(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{
		"appointmentId": p.AppointmentID,
		"technicianId":  p.TechnicianID,
	})
	if err != nil {
		return nil, err
	}

	technicianID, err := titanapi.ParseID(p.TechnicianID)
	if err != nil {
		return nil, err
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: fmt.Sprintf("%s/%s/unassign", appointmentsPath, p.AppointmentID),
		Body:     map[string]any{"technicianId": technicianID},
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func completeAppointment(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"appointmentId": p.AppointmentID})
	if err != nil {
		return nil, err
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: fmt.Sprintf("%s/%s/complete", appointmentsPath, p.AppointmentID),
		Body:     cleanedFields(p.AdditionalFields),
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}
