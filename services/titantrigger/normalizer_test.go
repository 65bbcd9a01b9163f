package titantrigger

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/titanbridge/lib/mytime"
)

func TestNormalizeJobCreated(t *testing.T) {
	body := map[string]any{
		"data": map[string]any{
			"id":         float64(7),
			"jobNumber":  "J-1",
			"customerId": float64(3),
			"locationId": float64(5),
			"status":     "Scheduled",
		},
	}

	result := Normalize(body, http.Header{}, "jobCreated", false, mytime.ExampleTime)

	assert.Equal(t, "jobCreated", result["event"])
	assert.Equal(t, "2023-02-27T23:58:59Z", result["timestamp"])
	assert.Nil(t, result["webhookId"])
	assert.Equal(t, body["data"], result["data"])
	assert.Equal(t, float64(7), result["jobId"])
	assert.Equal(t, "J-1", result["jobNumber"])
	assert.Equal(t, float64(3), result["customerId"])
	assert.Equal(t, float64(5), result["locationId"])
	assert.Equal(t, "Scheduled", result["status"])
	assert.NotContains(t, result, "rawPayload")
	assert.NotContains(t, result, "headers")
}

func TestNormalizeHeaderEventWins(t *testing.T) {
	headers := http.Header{}
	headers.Set("X-ServiceTitan-Event", "paymentReceived")
	headers.Set("X-ServiceTitan-Webhook-Id", "wh-42")

	body := map[string]any{
		"eventType": "jobCreated",
		"data": map[string]any{
			"id":        float64(9),
			"invoiceId": float64(11),
			"amount":    float64(150),
			"type":      "cash",
		},
	}

	result := Normalize(body, headers, "customerCreated", false, mytime.ExampleTime)

	assert.Equal(t, "paymentReceived", result["event"])
	assert.Equal(t, "wh-42", result["webhookId"])
	assert.Equal(t, float64(9), result["paymentId"])
	assert.Equal(t, float64(11), result["invoiceId"])
	assert.Equal(t, float64(150), result["amount"])
	assert.Equal(t, "cash", result["paymentType"])
}

func TestNormalizeBodyEventTypeBeatsConfigured(t *testing.T) {
	body := map[string]any{
		"eventType": "customerCreated",
		"data": map[string]any{
			"customerId": float64(3),
			"name":       "Marc",
		},
	}

	result := Normalize(body, http.Header{}, "jobCreated", false, mytime.ExampleTime)

	assert.Equal(t, "customerCreated", result["event"])
	assert.Equal(t, float64(3), result["customerId"])
	assert.Equal(t, "Marc", result["customerName"])
}

func TestNormalizeUnknownEventBaseFieldsOnly(t *testing.T) {
	body := map[string]any{
		"data": map[string]any{
			"id": float64(7),
		},
	}

	result := Normalize(body, http.Header{}, "somethingElse", false, mytime.ExampleTime)

	assert.Equal(t, map[string]any{
		"event":     "somethingElse",
		"timestamp": "2023-02-27T23:58:59Z",
		"webhookId": nil,
		"data":      map[string]any{"id": float64(7)},
	}, result)
}

func TestNormalizeWithoutDataUsesWholeBody(t *testing.T) {
	body := map[string]any{
		"id":     float64(7),
		"status": "Done",
	}

	result := Normalize(body, http.Header{}, "jobCompleted", false, mytime.ExampleTime)

	assert.Equal(t, body, result["data"])
	// extraction needs a nested data object
	assert.NotContains(t, result, "jobId")
}

func TestNormalizeIncludeRawData(t *testing.T) {
	headers := http.Header{}
	headers.Set("X-ServiceTitan-Event", "jobCreated")

	body := map[string]any{
		"data": map[string]any{"id": float64(7)},
	}

	result := Normalize(body, headers, "jobCreated", true, mytime.ExampleTime)

	assert.Equal(t, body, result["rawPayload"])
	assert.Equal(t, map[string]string{"X-Servicetitan-Event": "jobCreated"}, result["headers"])
}

func TestNormalizeMissingFieldsAreOmitted(t *testing.T) {
	body := map[string]any{
		"data": map[string]any{
			"jobId": float64(12),
		},
	}

	result := Normalize(body, http.Header{}, "jobCreated", false, mytime.ExampleTime)

	assert.Equal(t, float64(12), result["jobId"])
	assert.NotContains(t, result, "jobNumber")
	assert.NotContains(t, result, "customerId")
}
