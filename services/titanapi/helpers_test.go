package titanapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanMap(t *testing.T) {
	input := map[string]any{
		"name":  "Kwik-Fix Plumbing",
		"email": "",
		"phone": nil,
		"address": map[string]any{
			"street": "123 Main St",
			"unit":   "",
		},
		"tags":  []any{"a", "", "b"},
		"count": 0,
	}

	cleaned := CleanMap(input)

	assert.Equal(t, map[string]any{
		"name": "Kwik-Fix Plumbing",
		"address": map[string]any{
			"street": "123 Main St",
		},
		"tags":  []any{"a", "", "b"},
		"count": 0,
	}, cleaned)
}

func TestCleanMapDropsEmptiedNestedMap(t *testing.T) {
	cleaned := CleanMap(map[string]any{
		"name": "x",
		"address": map[string]any{
			"street": "",
			"unit":   nil,
		},
	})

	assert.Equal(t, map[string]any{"name": "x"}, cleaned)
}

func TestCleanMapIdempotent(t *testing.T) {
	input := map[string]any{
		"a": "value",
		"b": "",
		"c": map[string]any{"d": nil, "e": 42},
	}

	once := CleanMap(input)
	twice := CleanMap(once)

	assert.Equal(t, once, twice)
}

func TestBuildQuery(t *testing.T) {
	qs := BuildQuery(map[string]any{
		"ids":    []any{1, 2, 3},
		"page":   1,
		"filter": nil,
		"search": "",
		"names":  []string{"a", "b"},
	})

	assert.Equal(t, map[string]string{
		"ids":   "1,2,3",
		"page":  "1",
		"names": "a,b",
	}, qs)
}

func TestFormatPhoneNumber(t *testing.T) {
	assert.Equal(t, "+11234567890", FormatPhoneNumber("1234567890"))
	assert.Equal(t, "+11234567890", FormatPhoneNumber("11234567890"))
	assert.Equal(t, "+11234567890", FormatPhoneNumber("(123) 456-7890"))
	assert.Equal(t, "+311234567", FormatPhoneNumber("+31 123 4567"))
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("test@example.com"))
	assert.False(t, ValidateEmail("invalid-email"))
	assert.False(t, ValidateEmail(""))
	assert.False(t, ValidateEmail("a b@example.com"))
	assert.False(t, ValidateEmail("test@example"))
}

func TestStatusCode(t *testing.T) {
	code, found := StatusCode("job", "completed")
	assert.True(t, found)
	assert.Equal(t, 4, code)

	_, found = StatusCode("job", "unknown")
	assert.False(t, found)

	_, found = StatusCode("unknown-resource", "x")
	assert.False(t, found)

	code, found = StatusCode("invoice", "paid")
	assert.True(t, found)
	assert.Equal(t, 3, code)
}

func TestMoneyConversion(t *testing.T) {
	assert.Equal(t, 1050, DollarsToCents(10.5))
	assert.Equal(t, 10.5, CentsToDollars(1050))
	assert.Equal(t, 1056, DollarsToCents(10.555))
	assert.Equal(t, 10.5, CentsToDollars(DollarsToCents(10.5)))
}

func TestValidateRequired(t *testing.T) {
	missing := ValidateRequired(map[string]any{
		"name":  "x",
		"email": "",
		"phone": nil,
	}, []string{"name", "email", "phone", "street"})

	assert.Equal(t, []string{"email", "phone", "street"}, missing)
}

func TestParseDate(t *testing.T) {
	normalized, err := ParseDate("2023-02-27")
	assert.NoError(t, err)
	assert.Equal(t, "2023-02-27T00:00:00Z", normalized)

	normalized, err = ParseDate("2023-02-27T23:58:59Z")
	assert.NoError(t, err)
	assert.Equal(t, "2023-02-27T23:58:59Z", normalized)

	_, err = ParseDate("not-a-date")
	assert.Error(t, err)
}

func TestDateRangeFilter(t *testing.T) {
	filter, err := DateRangeFilter("2023-01-01", "2023-02-01", "")
	assert.NoError(t, err)
	assert.Equal(t, map[string]any{
		"createdOnFrom": "2023-01-01T00:00:00Z",
		"createdOnTo":   "2023-02-01T00:00:00Z",
	}, filter)

	filter, err = DateRangeFilter("2023-01-01", "", "modifiedOn")
	assert.NoError(t, err)
	assert.Equal(t, map[string]any{
		"modifiedOnFrom": "2023-01-01T00:00:00Z",
	}, filter)
}

func TestExtractPageInfo(t *testing.T) {
	info := ExtractPageInfo(map[string]any{
		"page":       float64(2),
		"pageSize":   float64(100),
		"totalCount": float64(240),
		"hasMore":    true,
	})

	assert.Equal(t, PageInfo{Page: 2, PageSize: 100, TotalCount: 240, HasMore: true}, info)

	assert.Equal(t, PageInfo{Page: 1}, ExtractPageInfo(map[string]any{}))
}

func TestFormatAddress(t *testing.T) {
	formatted := FormatAddress(map[string]any{
		"street": "123 Main St",
		"city":   "Springfield",
		"state":  "IL",
		"zip":    "62701",
	})

	assert.Equal(t, map[string]any{
		"street":  "123 Main St",
		"unit":    nil,
		"city":    "Springfield",
		"state":   "IL",
		"zip":     "62701",
		"country": "US",
	}, formatted)
}
