package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type testPriority int

func (p testPriority) String() string {
	if p == 1 {
		return "URGENT"
	}
	return "NORMAL"
}

func TestParams_Encode(t *testing.T) {
	tests := []struct {
		name   string
		params *Params
		want   string
	}{
		{
			name:   "empty",
			params: NewParams(),
			want:   "",
		},
		{
			name:   "nil values are dropped entirely",
			params: NewParams().Set("a", 1).Set("b", nil).Set("c", 2),
			want:   "a=1&c=2",
		},
		{
			name:   "insertion order is preserved",
			params: NewParams().Set("zebra", 1).Set("alpha", 2).Set("mid", 3),
			want:   "zebra=1&alpha=2&mid=3",
		},
		{
			name:   "booleans encode as 1 and 0",
			params: NewParams().Set("done", true).Set("open", false),
			want:   "done=1&open=0",
		},
		{
			name:   "values are percent-escaped",
			params: NewParams().Set("q", "a b&c"),
			want:   "q=a+b%26c",
		},
		{
			name:   "raw values are not escaped",
			params: NewParams().SetRaw("keys", "a,b,c"),
			want:   "keys=a,b,c",
		},
		{
			name:   "timestamps use RFC 3339 UTC",
			params: NewParams().Set("since", time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)),
			want:   "since=2024-05-01T10%3A30%3A00Z",
		},
		{
			name:   "enumerations use the lower-cased name",
			params: NewParams().Set("priority", testPriority(1)),
			want:   "priority=urgent",
		},
		{
			name:   "int64 values",
			params: NewParams().Set("id", int64(9007199254740993)),
			want:   "id=9007199254740993",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.params.Encode())
		})
	}
}

func TestParams_EncodeNilReceiver(t *testing.T) {
	var params *Params
	assert.Equal(t, "", params.Encode())
}
