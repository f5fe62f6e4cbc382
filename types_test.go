package recall

import (
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.March, 9)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2024-03-09"` {
		t.Fatalf("unexpected encoding %s", data)
	}
	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip mismatch: %v != %v", back, d)
	}
}

func TestDateRejectsTimestamps(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2024-03-09T10:00:00Z"`), &d); err == nil {
		t.Fatal("expected error for timestamp in date field")
	}
}

func TestSetOptionalTriState(t *testing.T) {
	params := url.Values{}
	setOptional(params, "absent", Absent[string]())
	setOptional(params, "null", Null[string]())
	setOptional(params, "present", Some("value"))
	if _, ok := params["absent"]; ok {
		t.Fatal("absent parameter must be dropped entirely")
	}
	if got := params.Get("null"); got != "null" {
		t.Fatalf("null parameter encoded as %q", got)
	}
	if got := params.Get("present"); got != "value" {
		t.Fatalf("present parameter encoded as %q", got)
	}
}

func TestQueryValueTypes(t *testing.T) {
	id := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	ts := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	cases := []struct {
		in   any
		want string
	}{
		{true, "true"},
		{42, "42"},
		{int64(9000000000), "9000000000"},
		{id, "11111111-1111-1111-1111-111111111111"},
		{NewDate(2024, time.June, 1), "2024-06-01"},
		{ts, "2024-06-01T12:30:00Z"},
		{RoleAdmin, "admin"},
	}
	for _, tc := range cases {
		if got := queryValue(tc.in); got != tc.want {
			t.Errorf("queryValue(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
