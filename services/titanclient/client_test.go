package titanclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/titanbridge/lib/myerrors"
	"github.com/MarcGrol/titanbridge/lib/mytime"
)

func TestInvoke(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.TODO()

	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

	tokenHits := 0
	server := newFakeServiceTitan(t, &tokenHits, 3600, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/jpm/v2/tenant/myTenant/jobs", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		assert.Equal(t, "myClientID", r.Header.Get("ST-App-Key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "42", r.URL.Query().Get("customerId"))

		requestBody, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		body := map[string]any{}
		assert.NoError(t, json.Unmarshal(requestBody, &body))
		assert.Equal(t, "Fix boiler", body["summary"])

		fmt.Fprint(w, `{"id": 123, "jobNumber": "J-123"}`)
	})
	defer server.Close()

	cl := New(nower)

	resp, err := cl.Invoke(ctx, testCredentials(server.URL), RequestSpec{
		Method:   http.MethodPost,
		Endpoint: "jpm/v2/tenant/{tenant}/jobs",
		Query:    map[string]string{"customerId": "42"},
		Body:     map[string]any{"summary": "Fix boiler"},
	})

	assert.NoError(t, err)
	assert.Equal(t, float64(123), resp["id"])
	assert.Equal(t, "J-123", resp["jobNumber"])
}

func TestInvokeNoBodyNoQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.TODO()

	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

	tokenHits := 0
	server := newFakeServiceTitan(t, &tokenHits, 3600, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		requestBody, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Empty(t, requestBody)
		fmt.Fprint(w, `{}`)
	})
	defer server.Close()

	cl := New(nower)

	_, err := cl.Invoke(ctx, testCredentials(server.URL), RequestSpec{
		Method:   http.MethodGet,
		Endpoint: "crm/v2/tenant/{tenant}/customers/1",
	})
	assert.NoError(t, err)
}

func TestInvokeUpstreamFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.TODO()

	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

	tokenHits := 0
	server := newFakeServiceTitan(t, &tokenHits, 3600, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"title": "Something broke"}`)
	})
	defer server.Close()

	cl := New(nower)

	_, err := cl.Invoke(ctx, testCredentials(server.URL), RequestSpec{
		Method:   http.MethodGet,
		Endpoint: "crm/v2/tenant/{tenant}/customers",
	})

	assert.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, myerrors.GetHTTPStatus(err))
	assert.Contains(t, err.Error(), "Something broke")
}

func TestFetchAllPagesUntilShortPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.TODO()

	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

	apiHits := 0
	tokenHits := 0
	server := newFakeServiceTitan(t, &tokenHits, 3600, servePaginated(t, &apiHits, 240))
	defer server.Close()

	cl := New(nower)

	items, err := cl.FetchAll(ctx, testCredentials(server.URL), RequestSpec{
		Method:   http.MethodGet,
		Endpoint: "crm/v2/tenant/{tenant}/customers",
	}, "", 0)

	assert.NoError(t, err)
	assert.Len(t, items, 240)
	assert.Equal(t, 3, apiHits)
	assert.Equal(t, float64(1), items[0]["id"])
	assert.Equal(t, float64(240), items[239]["id"])
}

func TestFetchAllHonorsLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.TODO()

	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

	apiHits := 0
	tokenHits := 0
	server := newFakeServiceTitan(t, &tokenHits, 3600, servePaginated(t, &apiHits, 1000))
	defer server.Close()

	cl := New(nower)

	items, err := cl.FetchAll(ctx, testCredentials(server.URL), RequestSpec{
		Method:   http.MethodGet,
		Endpoint: "crm/v2/tenant/{tenant}/customers",
	}, "", 150)

	assert.NoError(t, err)
	assert.Len(t, items, 150)
	assert.Equal(t, 2, apiHits)
}

func TestFetchAllStopsWhenHasMoreFalse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.TODO()

	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

	apiHits := 0
	tokenHits := 0
	server := newFakeServiceTitan(t, &tokenHits, 3600, func(w http.ResponseWriter, r *http.Request) {
		apiHits++
		// a full page, but the API says it is the last one
		fmt.Fprintf(w, `{"data": [%s], "hasMore": false}`, strings.Repeat(`{"id": 1},`, 99)+`{"id": 1}`)
	})
	defer server.Close()

	cl := New(nower)

	items, err := cl.FetchAll(ctx, testCredentials(server.URL), RequestSpec{
		Method:   http.MethodGet,
		Endpoint: "crm/v2/tenant/{tenant}/customers",
	}, "", 0)

	assert.NoError(t, err)
	assert.Len(t, items, 100)
	assert.Equal(t, 1, apiHits)
}

func TestFetchAllNamedProperty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.TODO()

	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

	tokenHits := 0
	server := newFakeServiceTitan(t, &tokenHits, 3600, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"exports": [{"id": 1}, {"id": 2}], "hasMore": false}`)
	})
	defer server.Close()

	cl := New(nower)

	items, err := cl.FetchAll(ctx, testCredentials(server.URL), RequestSpec{
		Method:   http.MethodGet,
		Endpoint: "reporting/v2/tenant/{tenant}/report-category/exports",
	}, "exports", 0)

	assert.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestFetchAllAbortsOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.TODO()

	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

	apiHits := 0
	tokenHits := 0
	server := newFakeServiceTitan(t, &tokenHits, 3600, func(w http.ResponseWriter, r *http.Request) {
		apiHits++
		if apiHits > 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		servePaginated(t, new(int), 1000)(w, r)
	})
	defer server.Close()

	cl := New(nower)

	items, err := cl.FetchAll(ctx, testCredentials(server.URL), RequestSpec{
		Method:   http.MethodGet,
		Endpoint: "crm/v2/tenant/{tenant}/customers",
	}, "", 0)

	assert.Error(t, err)
	assert.Nil(t, items)
	assert.Equal(t, http.StatusBadGateway, myerrors.GetHTTPStatus(err))
}

func servePaginated(t *testing.T, apiHits *int, totalCount int) http.HandlerFunc {
	t.Helper()

	return func(w http.ResponseWriter, r *http.Request) {
		*apiHits++

		pageNum, err := strconv.Atoi(r.URL.Query().Get("page"))
		assert.NoError(t, err)
		pageSize, err := strconv.Atoi(r.URL.Query().Get("pageSize"))
		assert.NoError(t, err)

		first := (pageNum-1)*pageSize + 1
		last := pageNum * pageSize
		if last > totalCount {
			last = totalCount
		}

		items := []string{}
		for id := first; id <= last; id++ {
			items = append(items, fmt.Sprintf(`{"id": %d}`, id))
		}

		fmt.Fprintf(w, `{"data": [%s], "page": %d, "pageSize": %d, "totalCount": %d, "hasMore": %t}`,
			strings.Join(items, ","), pageNum, pageSize, totalCount, last < totalCount)
	}
}
