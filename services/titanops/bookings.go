package titanops

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MarcGrol/titanbridge/lib/myvault"
	"github.com/MarcGrol/titanbridge/services/titanapi"
	"github.com/MarcGrol/titanbridge/services/titanclient"
)

func registerBookingOps(r registry) {
	r[opKey{"booking", "list"}] = listBookings
	r[opKey{"booking", "get"}] = getBooking
	r[opKey{"booking", "create"}] = createBooking
	r[opKey{"booking", "update"}] = updateBooking
	r[opKey{"booking", "convertToJob"}] = convertBookingToJob
	r[opKey{"booking", "dismiss"}] = dismissBooking
}

func listBookings(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	return listItems(c, client, creds, p, bookingsPath, nil)
}

func getBooking(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"bookingId": p.BookingID})
	if err != nil {
		return nil, err
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodGet,
		Endpoint: fmt.Sprintf("%s/%s", bookingsPath, p.BookingID),
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func createBooking(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
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
		Endpoint: bookingsPath,
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func updateBooking(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"bookingId": p.BookingID})
	if err != nil {
		return nil, err
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPatch,
		Endpoint: fmt.Sprintf("%s/%s", bookingsPath, p.BookingID),
		Body:     cleanedFields(p.UpdateFields),
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func convertBookingToJob(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{
		"bookingId": p.BookingID,
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
		Endpoint: fmt.Sprintf("%s/%s/convert", bookingsPath, p.BookingID),
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func dismissBooking(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"bookingId": p.BookingID})
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
		Endpoint: fmt.Sprintf("%s/%s/dismiss", bookingsPath, p.BookingID),
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}
