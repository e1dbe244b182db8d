package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/moelabs/instalytics/internal/dataset"
)

func parseDateFlag(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dataset.DateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %s (use YYYY-MM-DD)", name, value)
	}
	return &t, nil
}

func validBucket(s string) bool {
	for _, b := range dataset.Buckets {
		if string(b) == s {
			return true
		}
	}
	return false
}

func joinComma(items []string) string {
	return strings.Join(items, ", ")
}
