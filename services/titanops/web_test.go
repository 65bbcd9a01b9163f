package titanops

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/titanbridge/lib/myerrors"
	"github.com/MarcGrol/titanbridge/lib/mypublisher"
	"github.com/MarcGrol/titanbridge/lib/myvault"
	"github.com/MarcGrol/titanbridge/services/titanclient"
	"github.com/MarcGrol/titanbridge/services/titanevents"
)

var testCreds = myvault.Credentials{
	Environment:  "production",
	ClientID:     "myClientID",
	ClientSecret: "myClientSecret",
	TenantID:     "myTenant",
}

func TestExecuteList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// setup
	_, router, vault, client, publisher := setup(t, ctrl)

	// given
	vault.EXPECT().Get(gomock.Any(), "conn-1").Return(testCreds, true, nil)
	client.EXPECT().Invoke(gomock.Any(), testCreds, titanclient.RequestSpec{
		Method:   http.MethodGet,
		Endpoint: customersPath,
		Query: map[string]string{
			"pageSize": "25",
			"page":     "1",
		},
	}).Return(map[string]any{
		"data": []any{
			map[string]any{"id": float64(1), "name": "Jane"},
			map[string]any{"id": float64(2), "name": "John"},
		},
	}, nil)
	publisher.EXPECT().Publish(gomock.Any(), titanevents.TopicName, titanevents.OperationCompleted{
		ConnectionUID: "conn-1",
		Resource:      "customer",
		Operation:     "list",
		Success:       true,
		ItemCount:     2,
	}).Return(nil)

	// when
	request := httptest.NewRequest(http.MethodPost, "/api/conn-1/customer/list", strings.NewReader("limit=25"))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	// then
	assert.Equal(t, 200, response.Code)
	items := []map[string]any{}
	assert.NoError(t, json.Unmarshal(response.Body.Bytes(), &items))
	assert.Len(t, items, 2)
	assert.Equal(t, "Jane", items[0]["name"])
}

func TestExecuteReturnAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// setup
	_, router, vault, client, publisher := setup(t, ctrl)

	// given
	vault.EXPECT().Get(gomock.Any(), "conn-1").Return(testCreds, true, nil)
	client.EXPECT().FetchAll(gomock.Any(), testCreds, titanclient.RequestSpec{
		Method:   http.MethodGet,
		Endpoint: jobsPath,
		Query: map[string]string{
			"active": "true",
		},
	}, "", 0).Return([]map[string]any{
		{"id": float64(1)},
		{"id": float64(2)},
		{"id": float64(3)},
	}, nil)
	publisher.EXPECT().Publish(gomock.Any(), titanevents.TopicName, gomock.Any()).Return(nil)

	// when
	request := httptest.NewRequest(http.MethodPost, "/api/conn-1/job/list",
		strings.NewReader("returnAll=true&filters[active]=true"))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	// then
	assert.Equal(t, 200, response.Code)
	items := []map[string]any{}
	assert.NoError(t, json.Unmarshal(response.Body.Bytes(), &items))
	assert.Len(t, items, 3)
}

func TestExecuteUnknownConnection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// setup
	_, router, vault, _, _ := setup(t, ctrl)

	// given
	vault.EXPECT().Get(gomock.Any(), "unknown").Return(myvault.Credentials{}, false, nil)

	// when
	request := httptest.NewRequest(http.MethodPost, "/api/unknown/customer/list", nil)
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	// then
	assert.Equal(t, 404, response.Code)
}

func TestExecuteUnknownOperation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// setup
	_, router, vault, _, _ := setup(t, ctrl)

	// given
	vault.EXPECT().Get(gomock.Any(), "conn-1").Return(testCreds, true, nil)

	// when
	request := httptest.NewRequest(http.MethodPost, "/api/conn-1/customer/explode", nil)
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	// then
	assert.Equal(t, 404, response.Code)
	assert.Contains(t, response.Body.String(), "unknown operation explode on resource customer")
}

func TestExecuteMissingParams(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// setup
	_, router, vault, _, publisher := setup(t, ctrl)

	// given
	vault.EXPECT().Get(gomock.Any(), "conn-1").Return(testCreds, true, nil)
	publisher.EXPECT().Publish(gomock.Any(), titanevents.TopicName, gomock.Any()).Return(nil)

	// when
	request := httptest.NewRequest(http.MethodPost, "/api/conn-1/customer/get", nil)
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	// then
	assert.Equal(t, 400, response.Code)
	assert.Contains(t, response.Body.String(), "missing required parameters: customerId")
}

func TestBatchContinueOnFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// setup
	_, router, vault, client, publisher := setup(t, ctrl)

	// given
	vault.EXPECT().Get(gomock.Any(), "conn-1").Return(testCreds, true, nil).Times(2)
	client.EXPECT().Invoke(gomock.Any(), testCreds, gomock.Any()).
		Return(nil, myerrors.NewUpstreamError(fmt.Errorf("it broke")))
	client.EXPECT().Invoke(gomock.Any(), testCreds, gomock.Any()).
		Return(map[string]any{"id": float64(42)}, nil)
	publisher.EXPECT().Publish(gomock.Any(), titanevents.TopicName, gomock.Any()).Return(nil).Times(2)

	// when
	request := httptest.NewRequest(http.MethodPost, "/api/conn-1/batch?continueOnFail=true",
		strings.NewReader(`[
			{"resource": "customer", "operation": "get", "params": {"customerId": "1"}},
			{"resource": "customer", "operation": "get", "params": {"customerId": "2"}}
		]`))
	request.Header.Set("Content-Type", "application/json")
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	// then
	assert.Equal(t, 200, response.Code)
	results := []BatchResult{}
	assert.NoError(t, json.Unmarshal(response.Body.Bytes(), &results))
	assert.Len(t, results, 2)
	assert.Contains(t, results[0].Error, "it broke")
	assert.Empty(t, results[0].Items)
	assert.Empty(t, results[1].Error)
	assert.Len(t, results[1].Items, 1)
}

func TestBatchAbortsOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// setup
	_, router, vault, client, publisher := setup(t, ctrl)

	// given
	vault.EXPECT().Get(gomock.Any(), "conn-1").Return(testCreds, true, nil)
	client.EXPECT().Invoke(gomock.Any(), testCreds, gomock.Any()).
		Return(nil, myerrors.NewUpstreamError(fmt.Errorf("it broke")))
	publisher.EXPECT().Publish(gomock.Any(), titanevents.TopicName, gomock.Any()).Return(nil)

	// when
	request := httptest.NewRequest(http.MethodPost, "/api/conn-1/batch",
		strings.NewReader(`[
			{"resource": "customer", "operation": "get", "params": {"customerId": "1"}},
			{"resource": "customer", "operation": "get", "params": {"customerId": "2"}}
		]`))
	request.Header.Set("Content-Type", "application/json")
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	// then
	assert.Equal(t, 502, response.Code)
	assert.Contains(t, response.Body.String(), "it broke")
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, *myvault.MockVaultReader, *titanclient.MockClient, *mypublisher.MockPublisher) {
	c := context.TODO()
	vault := myvault.NewMockVaultReader(ctrl)
	client := titanclient.NewMockClient(ctrl)
	publisher := mypublisher.NewMockPublisher(ctrl)
	publisher.EXPECT().CreateTopic(gomock.Any(), titanevents.TopicName).Return(nil)

	sut := NewService(vault, client, publisher)
	router := mux.NewRouter()
	err := sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return c, router, vault, client, publisher
}
