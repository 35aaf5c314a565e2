package blogs

import (
	"time"
)

// BlogOut is the outbound representation with ISO-8601 timestamps.
type BlogOut struct {
	ID           uint64  `json:"id"`
	ClientMsgID  *string `json:"client_msg_id"`
	Author       string  `json:"author"`
	CreatedAtISO string  `json:"created_at_iso"`
	UpdatedAtISO string  `json:"updated_at_iso"`
	Genre        string  `json:"genre"`
	Location     string  `json:"location"`
	Content      string  `json:"content"`
}

func FormatBlog(record *Blog) *BlogOut {
	return &BlogOut{
		ID:           record.ID,
		ClientMsgID:  record.ClientMsgID,
		Author:       record.Author,
		CreatedAtISO: FormatTimeISO(record.CreatedAt),
		UpdatedAtISO: FormatTimeISO(record.UpdatedAt),
		Genre:        record.Genre,
		Location:     record.Location,
		Content:      record.Content,
	}
}

func FormatBlogs(records []*Blog) []*BlogOut {
	out := make([]*BlogOut, len(records))
	for i, record := range records {
		out[i] = FormatBlog(record)
	}

	return out
}

func FormatTimeISO(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTimeISO accepts RFC 3339 timestamps as well as the naive
// "YYYY-MM-DDTHH:MM:SS" form, which is interpreted as UTC.
func ParseTimeISO(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), true
	}

	for _, layout := range []string{"2006-01-02T15:04:05.999999999", "2006-01-02 15:04:05.999999999"} {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
