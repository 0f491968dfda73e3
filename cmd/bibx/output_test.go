package main

import "testing"

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		maxLen int
		want   string
	}{
		{
			name:   "shorter than max",
			s:      "short",
			maxLen: 10,
			want:   "short",
		},
		{
			name:   "exactly max",
			s:      "exactly10!",
			maxLen: 10,
			want:   "exactly10!",
		},
		{
			name:   "truncated with ellipsis",
			s:      "a much longer title than fits",
			maxLen: 10,
			want:   "a much ...",
		},
		{
			name:   "empty string",
			s:      "",
			maxLen: 5,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateString(tt.s, tt.maxLen)
			if got != tt.want {
				t.Errorf("truncateString(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
			}
			if len(got) > tt.maxLen {
				t.Errorf("result length %d exceeds max %d", len(got), tt.maxLen)
			}
		})
	}
}
