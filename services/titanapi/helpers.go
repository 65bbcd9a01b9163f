package titanapi

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// CleanMap returns a copy of obj without keys whose value is nil or the
// empty string. Nested maps are cleaned recursively and dropped entirely
// when nothing remains. Arrays and primitives pass through as-is.
func CleanMap(obj map[string]any) map[string]any {
	cleaned := map[string]any{}

	for key, value := range obj {
		if value == nil || value == "" {
			continue
		}
		nested, isMap := value.(map[string]any)
		if isMap {
			cleanedNested := CleanMap(nested)
			if len(cleanedNested) > 0 {
				cleaned[key] = cleanedNested
			}
			continue
		}
		cleaned[key] = value
	}

	return cleaned
}

// BuildQuery filters out empty values one level deep and joins array values
// with commas.
func BuildQuery(filters map[string]any) map[string]string {
	qs := map[string]string{}

	for key, value := range filters {
		if value == nil || value == "" {
			continue
		}
		switch typed := value.(type) {
		case []any:
			parts := make([]string, 0, len(typed))
			for _, element := range typed {
				parts = append(parts, fmt.Sprintf("%v", element))
			}
			qs[key] = strings.Join(parts, ",")
		case []string:
			qs[key] = strings.Join(typed, ",")
		default:
			qs[key] = fmt.Sprintf("%v", typed)
		}
	}

	return qs
}

var nonDigitRegexp = regexp.MustCompile(`\D`)

func FormatPhoneNumber(phone string) string {
	cleaned := nonDigitRegexp.ReplaceAllString(phone, "")

	if len(cleaned) == 10 {
		return "+1" + cleaned
	}

	if !strings.HasPrefix(cleaned, "1") && len(cleaned) == 10 {
		return "+1" + cleaned
	}

	return "+" + cleaned
}

func ValidateEmail(email string) bool {
	return emailRegexp.MatchString(email)
}

// ValidateRequired reports the names of required fields that are absent,
// nil or empty in data.
func ValidateRequired(data map[string]any, requiredFields []string) []string {
	missing := []string{}

	for _, field := range requiredFields {
		value, exists := data[field]
		if !exists || value == nil || value == "" {
			missing = append(missing, field)
		}
	}

	return missing
}

func CentsToDollars(cents int) float64 {
	return float64(cents) / 100
}

func DollarsToCents(dollars float64) int {
	return int(math.Round(dollars * 100))
}

func FormatAddress(address map[string]any) map[string]any {
	formatted := map[string]any{
		"street":  stringOrEmpty(address["street"]),
		"unit":    address["unit"],
		"city":    stringOrEmpty(address["city"]),
		"state":   stringOrEmpty(address["state"]),
		"zip":     stringOrEmpty(address["zip"]),
		"country": "US",
	}
	if country, ok := address["country"].(string); ok && country != "" {
		formatted["country"] = country
	}
	return formatted
}

func stringOrEmpty(value any) string {
	str, ok := value.(string)
	if !ok {
		return ""
	}
	return str
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate normalizes a date string to UTC RFC3339.
func ParseDate(dateString string) (string, error) {
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, dateString)
		if err == nil {
			return parsed.UTC().Format(time.RFC3339), nil
		}
	}
	return "", fmt.Errorf("invalid date: %s", dateString)
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// DateRangeFilter builds {prefix}From/{prefix}To query filters; empty bounds
// are omitted.
func DateRangeFilter(startDate string, endDate string, fieldPrefix string) (map[string]any, error) {
	if fieldPrefix == "" {
		fieldPrefix = "createdOn"
	}

	filter := map[string]any{}
	if startDate != "" {
		normalized, err := ParseDate(startDate)
		if err != nil {
			return nil, err
		}
		filter[fieldPrefix+"From"] = normalized
	}
	if endDate != "" {
		normalized, err := ParseDate(endDate)
		if err != nil {
			return nil, err
		}
		filter[fieldPrefix+"To"] = normalized
	}

	return filter, nil
}

// PageInfo describes the pagination fields of one list response.
type PageInfo struct {
	Page       int
	PageSize   int
	TotalCount int
	HasMore    bool
}

func ExtractPageInfo(response map[string]any) PageInfo {
	info := PageInfo{
		Page: 1,
	}
	if page, ok := response["page"].(float64); ok {
		info.Page = int(page)
	}
	if pageSize, ok := response["pageSize"].(float64); ok {
		info.PageSize = int(pageSize)
	}
	if totalCount, ok := response["totalCount"].(float64); ok {
		info.TotalCount = int(totalCount)
	}
	info.HasMore, _ = response["hasMore"].(bool)
	return info
}
