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

func registerInvoiceOps(r registry) {
	r[opKey{"invoice", "list"}] = listInvoices
	r[opKey{"invoice", "get"}] = getInvoice
	r[opKey{"invoice", "create"}] = createInvoice
	r[opKey{"invoice", "update"}] = updateInvoice
	r[opKey{"invoice", "getItems"}] = getInvoiceItems
	r[opKey{"invoice", "addItem"}] = addInvoiceItem
	r[opKey{"invoice", "removeItem"}] = removeInvoiceItem
	r[opKey{"invoice", "email"}] = emailInvoice
	r[opKey{"invoice", "getPayments"}] = getInvoicePayments
}

func listInvoices(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	return listItems(c, client, creds, p, invoicesPath, nil)
}

func getInvoice(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"invoiceId": p.InvoiceID})
	if err != nil {
		return nil, err
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodGet,
		Endpoint: fmt.Sprintf("%s/%s", invoicesPath, p.InvoiceID),
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func createInvoice(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"jobId": p.JobID})
	if err != nil {
		return nil, err
	}

	jobID, err := titanapi.ParseID(p.JobID)
	if err != nil {
		return nil, err
	}

	body := mergeFields(map[string]any{
		"jobId": jobID,
	}, p.AdditionalFields)

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: invoicesPath,
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func updateInvoice(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"invoiceId": p.InvoiceID})
	if err != nil {
		return nil, err
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPatch,
		Endpoint: fmt.Sprintf("%s/%s", invoicesPath, p.InvoiceID),
		Body:     cleanedFields(p.UpdateFields),
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func getInvoiceItems(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"invoiceId": p.InvoiceID})
	if err != nil {
		return nil, err
	}

	return getData(c, client, creds, fmt.Sprintf("%s/%s/items", invoicesPath, p.InvoiceID), nil)
}

func addInvoiceItem(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{
		"invoiceId": p.InvoiceID,
		"skuId":     p.SkuID,
	})
	if err != nil {
		return nil, err
	}

	skuID, err := titanapi.ParseID(p.SkuID)
	if err != nil {
		return nil, err
	}

	body := mergeFields(map[string]any{
		"skuId":    skuID,
		"quantity": p.Quantity,
	}, p.AdditionalFields)

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: fmt.Sprintf("%s/%s/items", invoicesPath, p.InvoiceID),
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func removeInvoiceItem(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{
		"invoiceId": p.InvoiceID,
		"itemId":    p.ItemID,
	})
	if err != nil {
		return nil, err
	}

	_, err = client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodDelete,
		Endpoint: fmt.Sprintf("%s/%s/items/%s", invoicesPath, p.InvoiceID, p.ItemID),
	})
	if err != nil {
		return nil, err
	}

	return []map[string]any{
		{
			"success":   true,
			"invoiceId": p.InvoiceID,
			"itemId":    p.ItemID,
		},
	}, nil
}

func emailInvoice(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{
		"invoiceId": p.InvoiceID,
		"email":     p.Email,
	})
	if err != nil {
		return nil, err
	}
	if !titanapi.ValidateEmail(p.Email) {
		return nil, myerrors.NewInvalidInputError(fmt.Errorf("invalid email address: %s", p.Email))
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: fmt.Sprintf("%s/%s/email", invoicesPath, p.InvoiceID),
		Body:     map[string]any{"email": p.Email},
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func getInvoicePayments(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"invoiceId": p.InvoiceID})
	if err != nil {
		return nil, err
	}

	return getData(c, client, creds, paymentsPath, map[string]string{"invoiceId": p.InvoiceID})
}
