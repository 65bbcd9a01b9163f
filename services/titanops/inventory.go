package titanops

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MarcGrol/titanbridge/lib/myvault"
	"github.com/MarcGrol/titanbridge/services/titanapi"
	"github.com/MarcGrol/titanbridge/services/titanclient"
)

func registerInventoryOps(r registry) {
	r[opKey{"inventory", "list"}] = listInventoryItems
	r[opKey{"inventory", "getItem"}] = getInventoryItem
	r[opKey{"inventory", "adjustQuantity"}] = adjustInventoryQuantity
	r[opKey{"inventory", "listPurchaseOrders"}] = listPurchaseOrders
	r[opKey{"inventory", "createPurchaseOrder"}] = createPurchaseOrder
	r[opKey{"inventory", "listVendors"}] = listVendors
	r[opKey{"inventory", "getWarehouseQuantities"}] = getWarehouseQuantities
}

func listInventoryItems(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	return listItems(c, client, creds, p, materialsPath, nil)
}

func getInventoryItem(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"itemId": p.ItemID})
	if err != nil {
		return nil, err
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodGet,
		Endpoint: fmt.Sprintf("%s/%s", materialsPath, p.ItemID),
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func adjustInventoryQuantity(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{
		"itemId":         p.ItemID,
		"warehouseId":    p.WarehouseID,
		"adjustmentType": p.AdjustmentType,
	})
	if err != nil {
		return nil, err
	}

	materialID, err := titanapi.ParseID(p.ItemID)
	if err != nil {
		return nil, err
	}
	warehouseID, err := titanapi.ParseID(p.WarehouseID)
	if err != nil {
		return nil, err
	}

	body := map[string]any{
		"materialId":     materialID,
		"warehouseId":    warehouseID,
		"quantity":       p.Quantity,
		"adjustmentType": p.AdjustmentType,
	}
	if p.Reason != "" {
		body["reason"] = p.Reason
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: adjustmentsPath,
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func listPurchaseOrders(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	return listItems(c, client, creds, p, purchaseOrdersPath, nil)
}

func createPurchaseOrder(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{
		"vendorId":    p.VendorID,
		"warehouseId": p.WarehouseID,
	})
	if err != nil {
		return nil, err
	}

	vendorID, err := titanapi.ParseID(p.VendorID)
	if err != nil {
		return nil, err
	}
	warehouseID, err := titanapi.ParseID(p.WarehouseID)
	if err != nil {
		return nil, err
	}

	items := []any{}
	for _, item := range p.Items {
		materialID, err := titanapi.ParseID(item.MaterialID)
		if err != nil {
			return nil, err
		}
		items = append(items, map[string]any{
			"materialId": materialID,
			"quantity":   item.Quantity,
			"unitCost":   item.UnitCost,
		})
	}

	body := mergeFields(map[string]any{
		"vendorId":    vendorID,
		"warehouseId": warehouseID,
		"items":       items,
	}, p.AdditionalFields)

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodPost,
		Endpoint: purchaseOrdersPath,
		Body:     body,
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func listVendors(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	return listItems(c, client, creds, p, vendorsPath, nil)
}

func getWarehouseQuantities(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"warehouseId": p.WarehouseID})
	if err != nil {
		return nil, err
	}

	qs := map[string]string{"warehouseId": p.WarehouseID}
	for name, value := range p.Filters {
		if value != "" {
			qs[name] = value
		}
	}

	return getData(c, client, creds, fmt.Sprintf("%s/%s/quantities", warehousesPath, p.WarehouseID), qs)
}
