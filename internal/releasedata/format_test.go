package releasedata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 Bytes"},
		{1, "1 Bytes"},
		{512, "512 Bytes"},
		{1023, "1023 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1500, "1.46 KB"},
		{1048576, "1 MB"},
		{5 * 1024 * 1024, "5 MB"},
		{15728640 + 524288, "15.5 MB"},
		{1073741824, "1 GB"},
		{3 * 1024 * 1073741824, "3072 GB"},
		{-2048, "-2 KB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBytes(tt.bytes))
		})
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"utc", "2024-01-10T12:00:00Z", "January 10, 2024"},
		{"offset converted to utc", "2024-01-10T23:30:00-05:00", "January 11, 2024"},
		{"fractional seconds", "2024-03-04T05:06:07.890Z", "March 4, 2024"},
		{"unparseable", "yesterday", "yesterday"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(tt.input))
		})
	}
}

func TestFormatDateLocale(t *testing.T) {
	const ts = "2024-01-10T12:00:00Z"

	tests := []struct {
		name   string
		accept string
		want   string
	}{
		{"no preference", "", "January 10, 2024"},
		{"american", "en-US", "January 10, 2024"},
		{"british", "en-GB,en;q=0.8", "10 January 2024"},
		{"unsupported language", "ja-JP", "2024-01-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDateLocale(ts, tt.accept))
		})
	}

	assert.Equal(t, "soon", FormatDateLocale("soon", "en-GB"))
}

func TestNotAvailableMessage(t *testing.T) {
	assert.Equal(t, "No releases available for Deploy Engine.", NotAvailableMessage("Deploy Engine"))
}
