package dnskit

import (
	"testing"
)

func TestNewRejectsNoServerAddresses(t *testing.T) {
	_, err := New(TransportDNS, DefaultTransportOptions(), nil, RecordTypeA, "example.com.", QueryOptions{})
	if !IsKind(err, KindInvalidData) {
		t.Fatalf("New() error = %v, want KindInvalidData", err)
	}
}

func TestNewRejectsTooManyServerAddresses(t *testing.T) {
	addrs := make([]string, 11)
	for i := range addrs {
		addrs[i] = "198.51.100.1"
	}
	_, err := New(TransportDNS, DefaultTransportOptions(), addrs, RecordTypeA, "example.com.", QueryOptions{})
	if !IsKind(err, KindInvalidData) {
		t.Fatalf("New() error = %v, want KindInvalidData", err)
	}
}

func TestNewRejectsZeroTimeout(t *testing.T) {
	opts := DefaultTransportOptions()
	opts.TimeoutSeconds = 0
	_, err := New(TransportDNS, opts, []string{"198.51.100.1"}, RecordTypeA, "example.com.", QueryOptions{})
	if !IsKind(err, KindInvalidData) {
		t.Fatalf("New() error = %v, want KindInvalidData", err)
	}
}

func TestNewRejectsMalformedServerAddress(t *testing.T) {
	_, err := New(TransportDNS, DefaultTransportOptions(), []string{"not-an-ip"}, RecordTypeA, "example.com.", QueryOptions{})
	if !IsKind(err, KindInvalidData) {
		t.Fatalf("New() error = %v, want KindInvalidData", err)
	}
}

func TestNewAcceptsBareIPv6ServerAddress(t *testing.T) {
	q, err := New(TransportDNS, DefaultTransportOptions(), []string{"2001:db8::1"}, RecordTypeA, "example.com.", QueryOptions{})
	if err != nil {
		t.Fatalf("New() error = %v, want nil", err)
	}
	if q.name != "example.com." {
		t.Errorf("name = %q, want %q", q.name, "example.com.")
	}
}

func TestNewRewritesPTRQuestionToReverseAddrName(t *testing.T) {
	q, err := New(TransportDNS, DefaultTransportOptions(), []string{"198.51.100.1"}, RecordTypePTR, "192.0.2.1", QueryOptions{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	want := "1.2.0.192.in-addr.arpa."
	if q.name != want {
		t.Errorf("name = %q, want %q", q.name, want)
	}
}

func TestNewLeavesNonPTRNameUntouched(t *testing.T) {
	q, err := New(TransportDNS, DefaultTransportOptions(), []string{"198.51.100.1"}, RecordTypeA, "www.example.com.", QueryOptions{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if q.name != "www.example.com." {
		t.Errorf("name = %q, want %q", q.name, "www.example.com.")
	}
}

func TestValidateConfigurationHTTPSRequiresURL(t *testing.T) {
	if err := validateConfiguration(TransportHTTPS, "198.51.100.1"); !IsKind(err, KindInvalidURL) {
		t.Fatalf("validateConfiguration() error = %v, want KindInvalidURL", err)
	}
	if err := validateConfiguration(TransportHTTPS, "https://dns.example.com/dns-query"); err != nil {
		t.Fatalf("validateConfiguration() error = %v, want nil", err)
	}
}

func TestValidateConfigurationSystemTransportSkipsAddressCheck(t *testing.T) {
	if err := validateConfiguration(TransportSystem, "anything goes here"); err != nil {
		t.Fatalf("validateConfiguration() error = %v, want nil", err)
	}
}

func TestAuthenticateBeforeExecuteFails(t *testing.T) {
	q, err := New(TransportDNS, DefaultTransportOptions(), []string{"198.51.100.1"}, RecordTypeA, "example.com.", QueryOptions{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	_, err = q.Authenticate(nil, nil)
	if !IsKind(err, KindInternalError) {
		t.Fatalf("Authenticate() error = %v, want KindInternalError", err)
	}
}

func TestTransportStringUnknown(t *testing.T) {
	var unknown Transport = 99
	if unknown.String() != "unknown" {
		t.Errorf("String() = %q, want %q", unknown.String(), "unknown")
	}
}

func TestTLSServerNameStripsPort(t *testing.T) {
	if got := tlsServerName("dns.example.com:853"); got != "dns.example.com" {
		t.Errorf("tlsServerName() = %q, want %q", got, "dns.example.com")
	}
	if got := tlsServerName("dns.example.com"); got != "dns.example.com" {
		t.Errorf("tlsServerName() = %q, want %q", got, "dns.example.com")
	}
}
