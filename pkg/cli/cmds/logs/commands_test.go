package logs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robotalks/imurecv/pkg/csvlog"
)

func TestFormatSummary(t *testing.T) {
	testCases := []struct {
		name    string
		summary csvlog.Summary
		text    string
	}{
		{
			name:    "empty",
			summary: csvlog.Summary{Path: "a.csv", Motion: map[string]int{}},
			text:    "a.csv: 0 rows\n",
		},
		{
			name: "rows",
			summary: csvlog.Summary{
				Path:   "b.csv",
				Rows:   5,
				First:  "10:00:00.000",
				Last:   "10:00:00.400",
				Motion: map[string]int{"STILL": 3, "MOTION": 2},
			},
			text: "b.csv: 5 rows from 10:00:00.000 to 10:00:00.400\n" +
				"  MOTION   2\n" +
				"  STILL    3\n",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.text, FormatSummary(&tc.summary))
		})
	}
}
