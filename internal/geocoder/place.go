package geocoder

import (
	"regexp"
	"strings"
)

// PriorityFields - поля адреса от самого мелкого к крупному
var PriorityFields = []string{
	"neighbourhood",
	"hamlet",
	"suburb",
	"village",
	"town",
	"city_district",
	"city",
}

var (
	bareNumberRe     = regexp.MustCompile(`^\d+$`)
	numberPrefixRe   = regexp.MustCompile(`^\d+\s`)
	usPostalRe       = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	canadianPostalRe = regexp.MustCompile(`^[A-Z]\d[A-Z]\s?\d[A-Z]\d$`)
	numericPostalRe  = regexp.MustCompile(`^\d{4,6}$`)
)

// SelectPlace выбирает самое мелкое место из адреса, иначе извлекает его из display_name.
// Возвращает место и имя поля, из которого оно взято.
func SelectPlace(address map[string]string, displayName string) (string, string, error) {
	for _, field := range PriorityFields {
		if v := strings.TrimSpace(address[field]); v != "" {
			return v, field, nil
		}
	}

	place, ok := ExtractFromDisplayName(displayName)
	if !ok {
		return "", "", ErrNoResult
	}
	return place, "display_name", nil
}

// ExtractFromDisplayName ищет правдоподобный сегмент в "12, Main Street, Springfield, 90210".
func ExtractFromDisplayName(displayName string) (string, bool) {
	if strings.TrimSpace(displayName) == "" {
		return "", false
	}

	raw := strings.Split(displayName, ",")
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		parts = append(parts, strings.TrimSpace(p))
	}

	for _, part := range parts {
		if looksLikePlace(part) {
			return part, true
		}
	}

	// Второй проход: любой непустой сегмент, кроме голого числа
	for _, part := range parts {
		if part != "" && !bareNumberRe.MatchString(part) {
			return part, true
		}
	}
	return "", false
}

func looksLikePlace(part string) bool {
	if bareNumberRe.MatchString(part) ||
		numberPrefixRe.MatchString(part) ||
		usPostalRe.MatchString(part) ||
		canadianPostalRe.MatchString(part) ||
		numericPostalRe.MatchString(part) {
		return false
	}
	n := len([]rune(part))
	return n > 2 && n < 50
}
