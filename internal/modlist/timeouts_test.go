package modlist

import (
	"testing"
	"time"
)

func TestTimeoutDetail(t *testing.T) {
	tests := []struct {
		remaining time.Duration
		modID     string
		want      string
	}{
		{5 * time.Minute, "m1", "expires in **5 minutes** (timed out by <@m1>)"},
		{61 * time.Second, "m1", "expires in **1 minute** (timed out by <@m1>)"},
		{45 * time.Second, "", "expires in **45 seconds** (timed out manually)"},
		{time.Second, "", "expires in **1 second** (timed out manually)"},
	}
	for _, tt := range tests {
		if got := timeoutDetail(tt.remaining, tt.modID); got != tt.want {
			t.Errorf("timeoutDetail(%v, %q) = %q, want %q", tt.remaining, tt.modID, got, tt.want)
		}
	}
}
