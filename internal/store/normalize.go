package store

import (
	"encoding/json"
	"strings"

	"gorm.io/datatypes"
)

// normalizeStringList trims entries, drops empties, and de-duplicates
// preserving first-seen order.
func normalizeStringList(values []string) []string {
	result := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}

// normalizeStreamerList trims entries, drops empties, and de-duplicates
// case-insensitively preserving first-seen order and casing. Twitch logins
// are case-insensitive identifiers.
func normalizeStreamerList(values []string) []string {
	result := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}

// appendIfMissing appends value to list unless it is empty or already present.
func appendIfMissing(list []string, value string) []string {
	if value == "" {
		return list
	}
	for _, item := range list {
		if item == value {
			return list
		}
	}
	return append(list, value)
}

// encodeStringList marshals a string list into a JSON column value. A nil
// list encodes as the empty array.
func encodeStringList(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(data)
}

// decodeStringList unmarshals a JSON column value into a string list,
// tolerating malformed or empty data.
func decodeStringList(data datatypes.JSON) []string {
	if len(data) == 0 {
		return []string{}
	}
	var values []string
	if errUnmarshal := json.Unmarshal(data, &values); errUnmarshal != nil {
		return []string{}
	}
	result := make([]string, 0, len(values))
	for _, value := range values {
		result = append(result, value)
	}
	return result
}
