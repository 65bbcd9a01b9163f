package titanops

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MarcGrol/titanbridge/lib/myvault"
	"github.com/MarcGrol/titanbridge/services/titanapi"
	"github.com/MarcGrol/titanbridge/services/titanclient"
)

func registerPaymentOps(r registry) {
	r[opKey{"payment", "list"}] = listPayments
	r[opKey{"payment", "get"}] = getPayment
	r[opKey{"payment", "create"}] = createPayment
	r[opKey{"payment", "refund"}] = refundPayment
	r[opKey{"payment", "void"}] = voidPayment
}

func listPayments(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	return listItems(c, client, creds, p, paymentsPath, nil)
}

func getPayment(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"paymentId": p.PaymentID})
	if err != nil {
		return nil, err
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodGet,
		Endpoint: fmt.Sprintf("%s/%s", paymentsPath, p.PaymentID),
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func createPayment(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{
		"invoiceId":     p.InvoiceID,
		"paymentTypeId": p.PaymentTypeID,
	})
	if err != nil {
		return nil, err
	}

	invoiceID, err := titanapi.ParseID(p.InvoiceID)
	if err != nil {
		return nil, err
	}
	paymentTypeID, err := titanapi.ParseID(p.PaymentTypeID)
	if err != nil {
		return nil, err
	}

	body := mergeFields(map[string]any{
		"invoiceId":     invoiceID,
		"amount":        p.Amount,
		"paymentTypeId": paymentTypeID,
	}, p.AdditionalFields)

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: paymentsPath,
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func refundPayment(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"paymentId": p.PaymentID})
	if err != nil {
		return nil, err
	}

	body := map[string]any{
		"amount": p.Amount,
	}
	if p.Reason != "" {
		body["reason"] = p.Reason
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: fmt.Sprintf("%s/%s/refund", paymentsPath, p.PaymentID),
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func voidPayment(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"paymentId": p.PaymentID})
	if err != nil {
		return nil, err
	}

	body := map[string]any{}
	if p.Reason != "" {
		body["reason"] = p.Reason
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: fmt.Sprintf("%s/%s/void", paymentsPath, p.PaymentID),
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}
