package storage_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/getblogd/blogd-services/pkg/api/adapters/storage"
	"github.com/getblogd/blogd-services/pkg/api/business/blogs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDateTime(t *testing.T) {
	t.Parallel()

	// non-UTC input is normalized to UTC in the DATETIME(6) wire format
	loc := time.FixedZone("UTC+3", 3*60*60)
	input := time.Date(2024, 8, 1, 13, 30, 45, 123456000, loc)

	assert.Equal(t, "2024-08-01 10:30:45.123456", storage.FormatDateTime(input))
}

func TestBuildRowsJSON(t *testing.T) {
	t.Parallel()

	rows := []*blogs.BlogRow{
		{
			ClientMsgID: "11111111-1111-1111-1111-111111111111",
			Author:      "alice",
			CreatedAt:   time.Date(2024, 8, 1, 10, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, 8, 1, 10, 0, 1, 500000000, time.UTC),
			Genre:       "tech",
			Location:    "berlin",
			Content:     "hello",
		},
		{
			ClientMsgID: "",
			Author:      "bob",
			CreatedAt:   time.Date(2024, 8, 1, 11, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, 8, 1, 11, 0, 0, 0, time.UTC),
			Genre:       "tech",
			Location:    "berlin",
			Content:     "unicode: çğü",
		},
	}

	encoded, err := storage.BuildRowsJSON(rows)
	require.NoError(t, err)

	var decoded []map[string]string

	require.NoError(t, json.Unmarshal([]byte(encoded), &decoded))
	require.Len(t, decoded, 2)

	assert.Equal(t, "11111111-1111-1111-1111-111111111111", decoded[0]["client_msg_id"])
	assert.Equal(t, "2024-08-01 10:00:00.000000", decoded[0]["created_at"])
	assert.Equal(t, "2024-08-01 10:00:01.500000", decoded[0]["updated_at"])
	assert.Equal(t, "tech", decoded[0]["genre"])

	// the store maps empty client message ids to NULL; the payload keeps them
	// as empty strings
	assert.Equal(t, "", decoded[1]["client_msg_id"])
	assert.Equal(t, "unicode: çğü", decoded[1]["content"])
}
