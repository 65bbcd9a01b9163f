package titantrigger

import (
	"net/http"
	"time"
)

const (
	eventHeader     = "X-ServiceTitan-Event"
	webhookIDHeader = "X-ServiceTitan-Webhook-Id"
)

type fieldMapping struct {
	outputName string
	sources    []string
}

// ServiceTitan payloads carry the record id under "id" or under a
// resource-specific name, depending on the event.
var extractionFields = map[string][]fieldMapping{
	"jobCreated": {
		{"jobId", []string{"id", "jobId"}},
		{"jobNumber", []string{"jobNumber"}},
		{"customerId", []string{"customerId"}},
		{"locationId", []string{"locationId"}},
		{"status", []string{"status"}},
	},
	"appointmentScheduled": {
		{"appointmentId", []string{"id", "appointmentId"}},
		{"jobId", []string{"jobId"}},
		{"technicianId", []string{"technicianId"}},
		{"scheduledStart", []string{"start"}},
		{"scheduledEnd", []string{"end"}},
	},
	"customerCreated": {
		{"customerId", []string{"id", "customerId"}},
		{"customerName", []string{"name"}},
		{"email", []string{"email"}},
		{"phone", []string{"phone"}},
	},
	"invoiceCreated": {
		{"invoiceId", []string{"id", "invoiceId"}},
		{"invoiceNumber", []string{"number"}},
		{"jobId", []string{"jobId"}},
		{"total", []string{"total"}},
		{"balance", []string{"balance"}},
	},
	"paymentReceived": {
		{"paymentId", []string{"id", "paymentId"}},
		{"invoiceId", []string{"invoiceId"}},
		{"amount", []string{"amount"}},
		{"paymentType", []string{"type"}},
	},
	"leadCreated": {
		{"leadId", []string{"id", "leadId"}},
		{"customerName", []string{"customerName"}},
		{"source", []string{"source"}},
		{"campaignId", []string{"campaignId"}},
	},
	"membershipCreated": {
		{"membershipId", []string{"id", "membershipId"}},
		{"membershipType", []string{"membershipTypeId"}},
		{"customerId", []string{"customerId"}},
		{"locationId", []string{"locationId"}},
	},
	"estimateApproved": {
		{"estimateId", []string{"id", "estimateId"}},
		{"jobId", []string{"jobId"}},
		{"total", []string{"total"}},
		{"approvedAt", []string{"approvedAt"}},
	},
}

func init() {
	extractionFields["jobCompleted"] = extractionFields["jobCreated"]
	extractionFields["appointmentCompleted"] = extractionFields["appointmentScheduled"]
}

// Normalize flattens an inbound webhook payload into a uniform record.
// The event used for field extraction is taken from the event header when
// present, else from the body's eventType, else from the configured event.
// Normalize cannot fail: fields absent from the payload are simply left out.
func Normalize(body map[string]any, headers http.Header, configuredEvent string, includeRawData bool, now time.Time) map[string]any {
	resolvedEvent := headers.Get(eventHeader)
	if resolvedEvent == "" {
		resolvedEvent, _ = body["eventType"].(string)
	}
	if resolvedEvent == "" {
		resolvedEvent = configuredEvent
	}

	var webhookID any
	if id := headers.Get(webhookIDHeader); id != "" {
		webhookID = id
	}

	var payload any = body
	if data, found := body["data"]; found && data != nil {
		payload = data
	}

	result := map[string]any{
		"event":     resolvedEvent,
		"timestamp": now.UTC().Format(time.RFC3339),
		"webhookId": webhookID,
		"data":      payload,
	}

	if includeRawData {
		result["rawPayload"] = body
		result["headers"] = flattenHeaders(headers)
	}

	data, isMap := body["data"].(map[string]any)
	if isMap {
		for _, mapping := range extractionFields[resolvedEvent] {
			for _, source := range mapping.sources {
				value, found := data[source]
				if found && value != nil {
					result[mapping.outputName] = value
					break
				}
			}
		}
	}

	return result
}

func flattenHeaders(headers http.Header) map[string]string {
	flattened := map[string]string{}
	for name := range headers {
		flattened[name] = headers.Get(name)
	}
	return flattened
}
