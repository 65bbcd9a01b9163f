package titanapi

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamsFromValues(t *testing.T) {
	params, err := NewFromValues(url.Values{
		"customerId":           {"42"},
		"name":                 {"Kwik-Fix Plumbing"},
		"returnAll":            {"true"},
		"limit":                {"150"},
		"filters[active]":      {"true"},
		"filters[city]":        {"Springfield"},
		"additionalFields[do]": {"not-call"},
		"items[0].materialId":  {"7"},
		"items[0].quantity":    {"2"},
		"items[0].unitCost":    {"12.50"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "42", params.CustomerID)
	assert.Equal(t, "Kwik-Fix Plumbing", params.Name)
	assert.True(t, params.ReturnAll)
	assert.Equal(t, 150, params.Limit)
	assert.Equal(t, map[string]string{"active": "true", "city": "Springfield"}, params.Filters)
	assert.Equal(t, map[string]string{"do": "not-call"}, params.AdditionalFields)
	assert.Len(t, params.Items, 1)
	assert.Equal(t, "7", params.Items[0].MaterialID)
	assert.Equal(t, 2, params.Items[0].Quantity)
	assert.Equal(t, 12.50, params.Items[0].UnitCost)
}

func TestParamsFromValuesInvalid(t *testing.T) {
	_, err := NewFromValues(url.Values{
		"limit": {"not-a-number"},
	})
	assert.Error(t, err)
}

func TestParseID(t *testing.T) {
	id, err := ParseID(" 42 ")
	assert.NoError(t, err)
	assert.Equal(t, 42, id)

	_, err = ParseID("abc")
	assert.Error(t, err)
}
