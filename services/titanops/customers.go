package titanops

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MarcGrol/titanbridge/lib/myvault"
	"github.com/MarcGrol/titanbridge/services/titanapi"
	"github.com/MarcGrol/titanbridge/services/titanclient"
)

func registerCustomerOps(r registry) {
	r[opKey{"customer", "list"}] = listCustomers
	r[opKey{"customer", "get"}] = getCustomer
	r[opKey{"customer", "create"}] = createCustomer
	r[opKey{"customer", "update"}] = updateCustomer
	r[opKey{"customer", "getContacts"}] = getCustomerContacts
	r[opKey{"customer", "addContact"}] = addCustomerContact
	r[opKey{"customer", "getLocations"}] = getCustomerLocations
	r[opKey{"customer", "getNotes"}] = getCustomerNotes
	r[opKey{"customer", "addNote"}] = addCustomerNote
	r[opKey{"customer", "getEquipment"}] = getCustomerEquipment
}

func listCustomers(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	return listItems(c, client, creds, p, customersPath, nil)
}

func getCustomer(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"customerId": p.CustomerID})
	if err != nil {
		return nil, err
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodGet,
		Endpoint: fmt.Sprintf("%s/%s", customersPath, p.CustomerID),
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func createCustomer(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"name": p.Name})
	if err != nil {
		return nil, err
	}

	body := mergeFields(map[string]any{
		"name": p.Name,
	}, p.AdditionalFields)

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: customersPath,
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func updateCustomer(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"customerId": p.CustomerID})
	if err != nil {
		return nil, err
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPatch,
		Endpoint: fmt.Sprintf("%s/%s", customersPath, p.CustomerID),
		Body:     cleanedFields(p.UpdateFields),
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func getCustomerContacts(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"customerId": p.CustomerID})
	if err != nil {
		return nil, err
	}

	return getData(c, client, creds, fmt.Sprintf("%s/%s/contacts", customersPath, p.CustomerID), nil)
}

func addCustomerContact(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{
		"customerId":   p.CustomerID,
		"contactType":  p.ContactType,
		"contactValue": p.ContactValue,
	})
	if err != nil {
		return nil, err
	}

	body := mergeFields(map[string]any{
		"type":  p.ContactType,
		"value": p.ContactValue,
	}, p.AdditionalFields)

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: fmt.Sprintf("%s/%s/contacts", customersPath, p.CustomerID),
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func getCustomerLocations(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"customerId": p.CustomerID})
	if err != nil {
		return nil, err
	}

	return getData(c, client, creds, locationsPath, map[string]string{"customerId": p.CustomerID})
}

func getCustomerNotes(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"customerId": p.CustomerID})
	if err != nil {
		return nil, err
	}

	return getData(c, client, creds, fmt.Sprintf("%s/%s/notes", customersPath, p.CustomerID), nil)
}

func addCustomerNote(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{
		"customerId": p.CustomerID,
		"noteText":   p.NoteText,
	})
	if err != nil {
		return nil, err
	}

	body := mergeFields(map[string]any{
		"text": p.NoteText,
	}, p.AdditionalFields)

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: fmt.Sprintf("%s/%s/notes", customersPath, p.CustomerID),
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

// getCustomerEquipment collects the equipment of every location of the
// customer, one location at a time.
func getCustomerEquipment(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"customerId": p.CustomerID})
	if err != nil {
		return nil, err
	}

	locations, err := getData(c, client, creds, locationsPath, map[string]string{"customerId": p.CustomerID})
	if err != nil {
		return nil, err
	}

	allEquipment := []map[string]any{}
	for _, location := range locations {
		locationID := fmt.Sprintf("%v", location["id"])

		equipment, err := getData(c, client, creds, fmt.Sprintf("%s/%s/equipment", locationsPath, locationID), nil)
		if err != nil {
			return nil, err
		}
		for _, item := range equipment {
			item["locationId"] = locationID
			allEquipment = append(allEquipment, item)
		}
	}

	return allEquipment, nil
}
