package utils

import "strconv"

func CalculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

func CalculateOffset(page, perPage int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * perPage
}

// ParseQueryInt converts a query value, falling back to defaultValue when it
// is empty. ok is false for anything that is not an integer.
func ParseQueryInt(value string, defaultValue int) (n int, ok bool) {
	if value == "" {
		return defaultValue, true
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return result, true
}
