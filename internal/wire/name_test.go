package wire

import "testing"

func TestReverseAddrNameIPv4(t *testing.T) {
	got, err := ReverseAddrName("192.0.2.1")
	if err != nil {
		t.Fatalf("ReverseAddrName() error: %v", err)
	}
	want := "1.2.0.192.in-addr.arpa."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReverseAddrNameIPv6(t *testing.T) {
	got, err := ReverseAddrName("2001:db8::1")
	if err != nil {
		t.Fatalf("ReverseAddrName() error: %v", err)
	}
	want := "1.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.8.b.d.0.1.0.0.2.ip6.arpa."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReverseAddrNameInvalid(t *testing.T) {
	if _, err := ReverseAddrName("not-an-ip"); err == nil {
		t.Fatal("expected error for non-IP literal")
	}
}

func TestEncodeDecodeNameRoundTrip(t *testing.T) {
	encoded, err := EncodeName("www.example.com.")
	if err != nil {
		t.Fatalf("EncodeName() error: %v", err)
	}
	decoded, _, err := DecodeName(encoded, 0)
	if err != nil {
		t.Fatalf("DecodeName() error: %v", err)
	}
	if decoded != "www.example.com." {
		t.Errorf("got %q, want %q", decoded, "www.example.com.")
	}
}

func TestEncodeNameRejectsOversizedLabel(t *testing.T) {
	label := make([]byte, 64)
	for i := range label {
		label[i] = 'a'
	}
	_, err := EncodeName(string(label) + ".com.")
	if err == nil {
		t.Fatal("expected error for oversized label")
	}
}

func TestEqualNamesCaseInsensitive(t *testing.T) {
	if !EqualNames("Example.COM.", "example.com.") {
		t.Error("EqualNames should be case-insensitive")
	}
}
