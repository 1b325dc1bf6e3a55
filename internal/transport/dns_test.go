package transport

import "testing"

func TestWithDefaultPortAddsPort(t *testing.T) {
	cases := map[string]string{
		"1.1.1.1":       "1.1.1.1:53",
		"1.1.1.1:5353":  "1.1.1.1:5353",
		"2001:db8::1": "[2001:db8::1]:53",
		"dns.google":  "dns.google:53",
	}
	for in, want := range cases {
		got := withDefaultPort(in, "53")
		if got != want {
			t.Errorf("withDefaultPort(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewDNSClientDefaultsState(t *testing.T) {
	c := NewDNSClient("1.1.1.1", false, 0)
	if c.State() != StateConnecting {
		t.Errorf("initial state = %v, want StateConnecting", c.State())
	}
}
