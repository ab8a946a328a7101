package supervisor

import (
	"testing"
	"time"
)

func TestFormatUptime(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{5 * time.Second, "5s"},
		{65 * time.Second, "1m 5s"},
		{90 * time.Minute, "1h 30m 0s"},
		{25 * time.Hour, "1d 1h 0m 0s"},
		{0, "0s"},
	}

	for _, c := range cases {
		if got := FormatUptime(c.d); got != c.want {
			t.Errorf("FormatUptime(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}
