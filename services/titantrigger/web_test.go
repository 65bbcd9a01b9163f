package titantrigger

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

	"github.com/MarcGrol/titanbridge/lib/mypublisher"
	"github.com/MarcGrol/titanbridge/lib/mystore"
	"github.com/MarcGrol/titanbridge/lib/mytime"
	"github.com/MarcGrol/titanbridge/lib/myuuid"
	"github.com/MarcGrol/titanbridge/services/titanevents"
)

func TestHookLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// setup
	c, router, storer, nower, uuider, _ := setup(t, ctrl)

	// given
	uuider.EXPECT().Create().Return("hook-123")
	nower.EXPECT().Now().Return(mytime.ExampleTime)

	// when
	request := httptest.NewRequest(http.MethodPost, "/hook", strings.NewReader("event=jobCreated&includeRawData=true"))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	// then
	assert.Equal(t, 200, response.Code)
	hook, exists, err := storer.Get(c, "hook-123")
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "jobCreated", hook.Event)
	assert.True(t, hook.IncludeRawData)
	assert.Equal(t, mytime.ExampleTime, hook.CreatedAt)

	// when
	request = httptest.NewRequest(http.MethodGet, "/hook/hook-123", nil)
	response = httptest.NewRecorder()
	router.ServeHTTP(response, request)

	// then
	assert.Equal(t, 200, response.Code)
	assert.Contains(t, response.Body.String(), "jobCreated")

	// when
	request = httptest.NewRequest(http.MethodDelete, "/hook/hook-123", nil)
	response = httptest.NewRecorder()
	router.ServeHTTP(response, request)

	// then
	assert.Equal(t, 200, response.Code)
	_, exists, err = storer.Get(c, "hook-123")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestHookNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// setup
	_, router, _, _, _, _ := setup(t, ctrl)

	// when
	request := httptest.NewRequest(http.MethodGet, "/hook/unknown", nil)
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	// then
	assert.Equal(t, 404, response.Code)
}

func TestWebhookReceived(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// setup
	c, router, storer, nower, _, publisher := setup(t, ctrl)

	// given
	err := storer.Put(c, "hook-123", HookConfig{
		UID:       "hook-123",
		Event:     "jobCreated",
		CreatedAt: mytime.ExampleTime,
	})
	assert.NoError(t, err)
	nower.EXPECT().Now().Return(mytime.ExampleTime)
	publisher.EXPECT().Publish(gomock.Any(), titanevents.TopicName, gomock.Any()).Return(nil)

	// when
	request := httptest.NewRequest(http.MethodPost, "/webhook/hook-123",
		strings.NewReader(`{"data": {"id": 7, "jobNumber": "J-1", "customerId": 3, "locationId": 5, "status": "Scheduled"}}`))
	request.Header.Set("Content-Type", "application/json")
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	// then
	assert.Equal(t, 200, response.Code)
	result := map[string]any{}
	assert.NoError(t, json.Unmarshal(response.Body.Bytes(), &result))
	assert.Equal(t, "jobCreated", result["event"])
	assert.Equal(t, float64(7), result["jobId"])
	assert.Equal(t, "J-1", result["jobNumber"])
	assert.Equal(t, "2023-02-27T23:58:59Z", result["timestamp"])
}

func TestWebhookUnknownHook(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// setup
	_, router, _, _, _, _ := setup(t, ctrl)

	// when
	request := httptest.NewRequest(http.MethodPost, "/webhook/unknown", strings.NewReader(`{}`))
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	// then
	assert.Equal(t, 404, response.Code)
}

func TestWebhookPublishFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// setup
	c, router, storer, nower, _, publisher := setup(t, ctrl)

	// given
	err := storer.Put(c, "hook-123", HookConfig{UID: "hook-123", Event: "jobCreated"})
	assert.NoError(t, err)
	nower.EXPECT().Now().Return(mytime.ExampleTime)
	publisher.EXPECT().Publish(gomock.Any(), titanevents.TopicName, gomock.Any()).Return(fmt.Errorf("publish failed"))

	// when
	request := httptest.NewRequest(http.MethodPost, "/webhook/hook-123", strings.NewReader(`{}`))
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	// then
	assert.Equal(t, 500, response.Code)
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, mystore.Store[HookConfig], *mytime.MockNower, *myuuid.MockUUIDer, *mypublisher.MockPublisher) {
	c := context.TODO()
	storer, _, _ := mystore.New[HookConfig](c)
	nower := mytime.NewMockNower(ctrl)
	uuider := myuuid.NewMockUUIDer(ctrl)
	publisher := mypublisher.NewMockPublisher(ctrl)

	sut := NewService(storer, publisher, nower, uuider)
	router := mux.NewRouter()

	// called by the following call to RegisterEndpoints
	publisher.EXPECT().CreateTopic(c, titanevents.TopicName).Return(nil)

	err := sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return c, router, storer, nower, uuider, publisher
}
