package titanops

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MarcGrol/titanbridge/lib/myvault"
	"github.com/MarcGrol/titanbridge/services/titanapi"
	"github.com/MarcGrol/titanbridge/services/titanclient"
)

func registerUserOps(r registry) {
	r[opKey{"user", "list"}] = listUsers
	r[opKey{"user", "get"}] = getUser
	r[opKey{"user", "getRoles"}] = getUserRoles
	r[opKey{"user", "getPermissions"}] = getUserPermissions
}

func listUsers(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	return listItems(c, client, creds, p, usersPath, nil)
}

func getUser(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"userId": p.UserID})
	if err != nil {
		return nil, err
	}

	resp, err := client.Invoke(c, creds, titanclient.RequestSpec{
		Method:   http.MethodGet,
		Endpoint: fmt.Sprintf("%s/%s", usersPath, p.UserID),
	})
	if err != nil {
		return nil, err
	}
	return single(resp), nil
}

func getUserRoles(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"userId": p.UserID})
	if err != nil {
		return nil, err
	}

	return getData(c, client, creds, fmt.Sprintf("%s/%s/roles", usersPath, p.UserID), nil)
}

func getUserPermissions(c context.Context, client titanclient.Client, creds myvault.Credentials, p titanapi.Params) ([]map[string]any, error) {
	err := requireParams(map[string]string{"userId": p.UserID})
	if err != nil {
		return nil, err
	}

	return getData(c, client, creds, fmt.Sprintf("%s/%s/permissions", usersPath, p.UserID), nil)
}
