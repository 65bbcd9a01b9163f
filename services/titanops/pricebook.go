package titanops

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MarcGrol/titanbridge/lib/myvault"
	"github.com/MarcGrol/titanbridge/services/titanapi"
	"github.com/MarcGrol/titanbridge/services/titanclient"
)

func registerPricebookOps(r registry) {
	r[opKey{"pricebook", "listServices"}] = listPricebookServices
	r[opKey{"pricebook", "getService"}] = getPricebookService
	r[opKey{"pricebook", "listMaterials"}] = listPricebookMaterials
	r[opKey{"pricebook", "getMaterial"}] = getPricebookMaterial
	r[opKey{"pricebook", "listEquipment"}] = listPricebookEquipment
	r[opKey{"pricebook", "getEquipment"}] = getPricebookEquipment
}

func listPricebookServices(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	return listItems(c, client, creds, p, servicesPath, nil)
}

func getPricebookService(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	return getPricebookItem(c, client, creds, servicesPath, p.ItemID)
}

func listPricebookMaterials(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	return listItems(c, client, creds, p, materialsPath, nil)
}

func getPricebookMaterial(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	return getPricebookItem(c, client, creds, materialsPath, p.ItemID)
}

func listPricebookEquipment(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	return listItems(c, client, creds, p, equipmentPath, nil)
}

func getPricebookEquipment(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	return getPricebookItem(c, client, creds, equipmentPath, p.ItemID)
}

func getPricebookItem(c context.Context, client titanclient.Client, creds myvault.Credentials, endpoint string, itemID string) ([]map[string]any, error) {
	err := requireParams(map[string]string{"itemId": itemID})
	if err != nil {
		return nil, err
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodGet,
		Endpoint: fmt.Sprintf("%s/%s", endpoint, itemID),
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}
