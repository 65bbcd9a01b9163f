package titanops

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MarcGrol/titanbridge/lib/myvault"
	"github.com/MarcGrol/titanbridge/services/titanapi"
	"github.com/MarcGrol/titanbridge/services/titanclient"
)

func registerMembershipOps(r registry) {
	r[opKey{"membership", "list"}] = listMemberships
	r[opKey{"membership", "get"}] = getMembership
	r[opKey{"membership", "create"}] = createMembership
	r[opKey{"membership", "update"}] = updateMembership
	r[opKey{"membership", "cancel"}] = cancelMembership
	r[opKey{"membership", "getLocations"}] = getMembershipLocations
}

func listMemberships(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	return listItems(c, client, creds, p, membershipsPath, nil)
}

func getMembership(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"membershipId": p.MembershipID})
	if err != nil {
		return nil, err
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodGet,
		Endpoint: fmt.Sprintf("%s/%s", membershipsPath, p.MembershipID),
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func createMembership(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{
		"customerId":       p.CustomerID,
		"locationId":       p.LocationID,
		"membershipTypeId": p.MembershipTypeID,
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
	membershipTypeID, err := titanapi.ParseID(p.MembershipTypeID)
	if err != nil {
		return nil, err
	}

	body := mergeFields(map[string]any{
		"customerId":       customerID,
		"locationId":       locationID,
		"membershipTypeId": membershipTypeID,
	}, p.AdditionalFields)

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: membershipsPath,
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func updateMembership(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"membershipId": p.MembershipID})
	if err != nil {
		return nil, err
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPatch,
		Endpoint: fmt.Sprintf("%s/%s", membershipsPath, p.MembershipID),
		Body:     cleanedFields(p.UpdateFields),
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func cancelMembership(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"membershipId": p.MembershipID})
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
		Endpoint: fmt.Sprintf("%s/%s/cancel", membershipsPath, p.MembershipID),
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func getMembershipLocations(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"membershipId": p.MembershipID})
	if err != nil {
		return nil, err
	}

	return getData(c, client, creds, fmt.Sprintf("%s/%s/locations", membershipsPath, p.MembershipID), nil)
}
