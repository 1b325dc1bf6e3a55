package netutil

import "testing"

func TestValidateServerAddress(t *testing.T) {
	valid := []string{"1.1.1.1", "1.1.1.1:53", "2001:db8::1", "[2001:db8::1]:853"}
	for _, addr := range valid {
		if err := ValidateServerAddress(addr); err != nil {
			t.Errorf("ValidateServerAddress(%q) = %v, want nil", addr, err)
		}
	}

	invalid := []string{"", "not-an-address", "dns.google"}
	for _, addr := range invalid {
		if err := ValidateServerAddress(addr); err == nil {
			t.Errorf("ValidateServerAddress(%q) = nil, want error", addr)
		}
	}
}

func TestValidateHTTPSURL(t *testing.T) {
	if err := ValidateHTTPSURL("https://dns.google/dns-query"); err != nil {
		t.Errorf("ValidateHTTPSURL() = %v, want nil", err)
	}
	if err := ValidateHTTPSURL("http://dns.google/dns-query"); err == nil {
		t.Error("expected error for non-https scheme")
	}
	if err := ValidateHTTPSURL("https://dns.google/dns-query?dns=abc"); err == nil {
		t.Error("expected error for URL carrying a query string")
	}
}
