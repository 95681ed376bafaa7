package server

import "testing"

func TestListenAddr(t *testing.T) {
	t.Setenv(allowRemoteEnvKey, "")

	cases := []struct {
		name    string
		apiURL  string
		want    string
		wantErr bool
	}{
		{"http url", "http://127.0.0.1:8888", "127.0.0.1:8888", false},
		{"localhost url", "http://localhost:9999", "localhost:9999", false},
		{"bare host port", "127.0.0.1:8888", "127.0.0.1:8888", false},
		{"ipv6 loopback", "http://[::1]:8888", "[::1]:8888", false},
		{"empty", "", "", true},
		{"remote url", "http://0.0.0.0:8888", "", true},
		{"remote host port", "10.1.2.3:8888", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ListenAddr(tc.apiURL)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ListenAddr(%q): expected error, got %q", tc.apiURL, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ListenAddr(%q): %v", tc.apiURL, err)
			}
			if got != tc.want {
				t.Errorf("ListenAddr(%q) = %q, want %q", tc.apiURL, got, tc.want)
			}
		})
	}
}

func TestListenAddrAllowRemote(t *testing.T) {
	t.Setenv(allowRemoteEnvKey, "true")

	got, err := ListenAddr("http://0.0.0.0:8888")
	if err != nil {
		t.Fatalf("ListenAddr: %v", err)
	}
	if got != "0.0.0.0:8888" {
		t.Errorf("ListenAddr = %q", got)
	}
}
