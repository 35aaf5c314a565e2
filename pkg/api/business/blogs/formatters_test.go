package blogs_test

import (
	"testing"
	"time"

	"github.com/getblogd/blogd-services/pkg/api/business/blogs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeISO(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{
			name:  "rfc3339",
			input: "2024-08-01T10:00:00Z",
			want:  time.Date(2024, 8, 1, 10, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "rfc3339_with_offset",
			input: "2024-08-01T13:00:00+03:00",
			want:  time.Date(2024, 8, 1, 10, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "naive_is_utc",
			input: "2024-08-01T10:00:00",
			want:  time.Date(2024, 8, 1, 10, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "space_separated",
			input: "2024-08-01 10:00:00.250000",
			want:  time.Date(2024, 8, 1, 10, 0, 0, 250000000, time.UTC),
			ok:    true,
		},
		{
			name:  "empty",
			input: "",
			ok:    false,
		},
		{
			name:  "garbage",
			input: "yesterday",
			ok:    false,
		},
	}

	for _, tt := range tests { //nolint:varnamelen
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := blogs.ParseTimeISO(tt.input)

			require.Equal(t, tt.ok, ok)

			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFormatBlog(t *testing.T) {
	t.Parallel()

	clientMsgID := "11111111-1111-1111-1111-111111111111"

	out := blogs.FormatBlog(&blogs.Blog{
		ID:          7,
		ClientMsgID: &clientMsgID,
		Author:      "alice",
		CreatedAt:   time.Date(2024, 8, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2024, 8, 1, 10, 0, 1, 0, time.UTC),
		Genre:       "tech",
		Location:    "berlin",
		Content:     "hello",
	})

	assert.Equal(t, uint64(7), out.ID)
	assert.Equal(t, "2024-08-01T10:00:00Z", out.CreatedAtISO)
	assert.Equal(t, "2024-08-01T10:00:01Z", out.UpdatedAtISO)
	require.NotNil(t, out.ClientMsgID)
	assert.Equal(t, clientMsgID, *out.ClientMsgID)
}
