package titanops

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/titanbridge/services/titanapi"
	"github.com/MarcGrol/titanbridge/services/titanclient"
)

func TestCreatePaymentConvertsIdentifiers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := context.TODO()
	client := titanclient.NewMockClient(ctrl)

	// given
	client.EXPECT().Invoke(c, testCreds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: paymentsPath,
		Body: map[string]any{
			"invoiceId":     123,
			"amount":        99.95,
			"paymentTypeId": 7,
		},
	}).Return(map[string]any{"id": float64(55)}, nil)

	// when
	items, err := createPayment(c, client, testCreds, titanapi.Params{
		InvoiceID:     "123",
		Amount:        99.95,
		PaymentTypeID: "7",
	})

	// then
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, float64(55), items[0]["id"])
}

func TestCreatePaymentRejectsNonNumericID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := context.TODO()
	client := titanclient.NewMockClient(ctrl)

	// when
	items, err := createPayment(c, client, testCreds, titanapi.Params{
		InvoiceID:     "not-a-number",
		PaymentTypeID: "7",
	})

	// then
	assert.Error(t, err)
	assert.Nil(t, items)
}

func TestRemoveInvoiceItemSynthesizesResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := context.TODO()
	client := titanclient.NewMockClient(ctrl)

	// given
	client.EXPECT().Invoke(c, testCreds, titanclient.RequestSpec{
		Method:   http.MethodDelete,
		Endpoint: invoicesPath + "/10/items/20",
	}).Return(map[string]any{}, nil)

	// when
	items, err := removeInvoiceItem(c, client, testCreds, titanapi.Params{
		InvoiceID: "10",
		ItemID:    "20",
	})

	// then
	assert.NoError(t, err)
	assert.Equal(t, []map[string]any{
		{
			"success":   true,
			"invoiceId": "10",
			"itemId":    "20",
		},
	}, items)
}

func TestCreatePurchaseOrderMapsLineItems(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := context.TODO()
	client := titanclient.NewMockClient(ctrl)

	// given
	client.EXPECT().Invoke(c, testCreds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: purchaseOrdersPath,
		Body: map[string]any{
			"vendorId":    4,
			"warehouseId": 2,
			"items": []any{
				map[string]any{"materialId": 11, "quantity": 3, "unitCost": 12.5},
				map[string]any{"materialId": 12, "quantity": 1, "unitCost": 7.0},
			},
		},
	}).Return(map[string]any{"id": float64(900)}, nil)

	// when
	items, err := createPurchaseOrder(c, client, testCreds, titanapi.Params{
		VendorID:    "4",
		WarehouseID: "2",
		Items: []titanapi.LineItem{
			{MaterialID: "11", Quantity: 3, UnitCost: 12.5},
			{MaterialID: "12", Quantity: 1, UnitCost: 7.0},
		},
	})

	// then
	assert.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCustomerEquipmentSpansLocations(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := context.TODO()
	client := titanclient.NewMockClient(ctrl)

	// given
	client.EXPECT().Invoke(c, testCreds, titanclient.RequestSpec{
		Method:   http.MethodGet,
		Endpoint: locationsPath,
		Query:    map[string]string{"customerId": "77"},
	}).Return(map[string]any{
		"data": []any{
			map[string]any{"id": float64(5)},
			map[string]any{"id": float64(6)},
		},
	}, nil)
	client.EXPECT().Invoke(c, testCreds, titanclient.RequestSpec{
		Method:   http.MethodGet,
		Endpoint: locationsPath + "/5/equipment",
	}).Return(map[string]any{
		"data": []any{map[string]any{"id": float64(100), "name": "Furnace"}},
	}, nil)
	client.EXPECT().Invoke(c, testCreds, titanclient.RequestSpec{
		Method:   http.MethodGet,
		Endpoint: locationsPath + "/6/equipment",
	}).Return(map[string]any{
		"data": []any{map[string]any{"id": float64(101), "name": "AC unit"}},
	}, nil)

	// when
	items, err := getCustomerEquipment(c, client, testCreds, titanapi.Params{CustomerID: "77"})

	// then
	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "5", items[0]["locationId"])
	assert.Equal(t, "6", items[1]["locationId"])
}

func TestEmailInvoiceValidatesAddress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := context.TODO()
	client := titanclient.NewMockClient(ctrl)

	// when
	items, err := emailInvoice(c, client, testCreds, titanapi.Params{
		InvoiceID: "10",
		Email:     "not-an-email",
	})

	// then
	assert.Error(t, err)
	assert.Nil(t, items)
}

func TestRegistryCoversEveryResource(t *testing.T) {
	r := newRegistry()

	resources := map[string]bool{}
	for key := range r {
		resources[key.Resource] = true
	}

	for _, resource := range []string{
		"customer", "location", "job", "appointment", "booking", "lead",
		"invoice", "payment", "estimate", "technician", "dispatch",
		"inventory", "pricebook", "membership", "campaign", "report", "user",
	} {
		assert.True(t, resources[resource], resource)
	}
}
