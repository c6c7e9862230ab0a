package s3

import "testing"

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "backups/2025-06-01.json", want: "backups/2025-06-01.json"},
		{name: "simple prefix", prefix: "tracker", key: "snapshot.json", want: "tracker/snapshot.json"},
		{name: "prefix trailing slash", prefix: "tracker/", key: "snapshot.json", want: "tracker/snapshot.json"},
		{name: "prefix and key slashes", prefix: "/tracker/", key: "/snapshot.json", want: "tracker/snapshot.json"},
		{name: "list whole prefix", prefix: "tracker", key: "", want: "tracker/"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

func TestStripPrefix(t *testing.T) {
	if got := stripPrefix("tracker", "tracker/backups/a.json"); got != "backups/a.json" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := stripPrefix("", "backups/a.json"); got != "backups/a.json" {
		t.Fatalf("unexpected key %q", got)
	}
}
