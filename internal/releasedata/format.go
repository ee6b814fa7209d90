package releasedata

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"golang.org/x/text/language"
)

var byteUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatBytes renders a size in 1024-based units with at most two decimals
// and no trailing zeros, e.g. 1536 -> "1.5 KB". GB is the largest unit.
func FormatBytes(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}

	sign := ""
	if bytes < 0 {
		sign = "-"
	}

	value := math.Abs(float64(bytes))
	unit := 0
	for value >= 1024 && unit < len(byteUnits)-1 {
		value /= 1024
		unit++
	}

	rounded := math.Round(value*100) / 100
	return sign + strconv.FormatFloat(rounded, 'f', -1, 64) + " " + byteUnits[unit]
}

const dateLayoutUS = "January 2, 2006"

// dateLocales lists the supported locales and their long date layouts.
// The first entry is the default.
var dateLocales = []struct {
	tag    language.Tag
	layout string
}{
	{language.AmericanEnglish, dateLayoutUS},
	{language.BritishEnglish, "2 January 2006"},
}

var dateMatcher = func() language.Matcher {
	tags := make([]language.Tag, 0, len(dateLocales))
	for _, l := range dateLocales {
		tags = append(tags, l.tag)
	}
	return language.NewMatcher(tags)
}()

// FormatDate renders an RFC 3339 timestamp as a long US English date in UTC.
// Values that do not parse are returned unchanged.
func FormatDate(timestamp string) string {
	t, err := parseTimestamp(timestamp)
	if err != nil {
		return timestamp
	}
	return t.Format(dateLayoutUS)
}

// FormatDateLocale is FormatDate for the closest supported locale to accept,
// an Accept-Language style list. Locales with no close match get ISO dates.
func FormatDateLocale(timestamp, accept string) string {
	t, err := parseTimestamp(timestamp)
	if err != nil {
		return timestamp
	}

	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return t.Format(dateLayoutUS)
	}

	_, index, confidence := dateMatcher.Match(tags...)
	if confidence == language.No {
		return t.Format(time.DateOnly)
	}
	return t.Format(dateLocales[index].layout)
}

func parseTimestamp(timestamp string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", timestamp, err)
	}
	return t.UTC(), nil
}

// NotAvailableMessage is shown in place of a download table for a component
// with no releases.
func NotAvailableMessage(displayName string) string {
	return fmt.Sprintf("No releases available for %s.", displayName)
}

// FetchHint tells readers how to populate an empty release document.
const FetchHint = "Run `fetch-releases` to fetch the latest releases."
