package titanapi

// ServiceTitan encodes workflow statuses as small integers per resource.
var statusMap = map[string]map[string]int{
	"job": {
		"pending":    1,
		"scheduled":  2,
		"inProgress": 3,
		"completed":  4,
		"canceled":   5,
	},
	"appointment": {
		"scheduled":  1,
		"dispatched": 2,
		"working":    3,
		"done":       4,
		"canceled":   5,
	},
	"invoice": {
		"draft":  1,
		"posted": 2,
		"paid":   3,
		"voided": 4,
	},
	"estimate": {
		"draft":    1,
		"sent":     2,
		"approved": 3,
		"declined": 4,
	},
}

// StatusCode looks up the numeric status code for a resource/status pair.
// Unknown resources and unknown statuses report false, never panic.
func StatusCode(resource string, statusName string) (int, bool) {
	statuses, found := statusMap[resource]
	if !found {
		return 0, false
	}
	code, found := statuses[statusName]
	return code, found
}
