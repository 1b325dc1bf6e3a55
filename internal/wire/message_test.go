package wire

import (
	"bytes"
	"testing"

	"github.com/dnsscience/dnskit/internal/dnserr"
)

func TestDecodeSimpleQuery(t *testing.T) {
	msg := []byte{
		0x12, 0x34, // ID
		0x01, 0x00, // Flags: RD=1
		0x00, 0x01, // QDCOUNT
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00,

		0x07, 'e', 'x', 'a', 'm', 'p', 'l', 'e',
		0x03, 'c', 'o', 'm',
		0x00,
		0x00, 0x01, // Type A
		0x00, 0x01, // Class IN
	}

	m, err := Decode(msg)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if m.ID != 0x1234 {
		t.Errorf("ID = %x, want 0x1234", m.ID)
	}
	if !m.RecursionDesired {
		t.Error("RecursionDesired should be true")
	}
	if len(m.Questions) != 1 {
		t.Fatalf("got %d questions, want 1", len(m.Questions))
	}
	if m.Questions[0].Name != "example.com." {
		t.Errorf("Name = %q, want %q", m.Questions[0].Name, "example.com.")
	}
	if m.Questions[0].Type != TypeA {
		t.Errorf("Type = %d, want TypeA", m.Questions[0].Type)
	}
}

func TestDecodeCompressedAnswer(t *testing.T) {
	msg := []byte{
		0x12, 0x34,
		0x81, 0x80,
		0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00,

		0x07, 'e', 'x', 'a', 'm', 'p', 'l', 'e',
		0x03, 'c', 'o', 'm',
		0x00,
		0x00, 0x01,
		0x00, 0x01,

		0xC0, 0x0C, // pointer to offset 12
		0x00, 0x01,
		0x00, 0x01,
		0x00, 0x00, 0x00, 0x3C,
		0x00, 0x04,
		192, 0, 2, 1,
	}

	m, err := Decode(msg)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if len(m.Answers) != 1 {
		t.Fatalf("got %d answers, want 1", len(m.Answers))
	}
	if m.Answers[0].Name != "example.com." {
		t.Errorf("Answer name = %q, want %q", m.Answers[0].Name, "example.com.")
	}
	a, ok := m.Answers[0].RData.(*ARecord)
	if !ok {
		t.Fatalf("RData type = %T, want *ARecord", m.Answers[0].RData)
	}
	if a.Address.String() != "192.0.2.1" {
		t.Errorf("Address = %s, want 192.0.2.1", a.Address.String())
	}
}

// TestPointerSelfLoop matches the c0 00 c0 00 scenario: a pointer at offset
// 0 pointing at itself must be rejected rather than looping forever.
func TestPointerSelfLoop(t *testing.T) {
	msg := []byte{0xC0, 0x00, 0xC0, 0x00}
	_, _, err := DecodeName(msg, 0)
	if err == nil {
		t.Fatal("expected error for self-referencing pointer")
	}
	if !dnserr.Is(err, dnserr.KindInvalidData) {
		t.Errorf("error kind = %v, want KindInvalidData", err)
	}
}

func TestPointerForwardReferenceRejected(t *testing.T) {
	msg := []byte{0xC0, 0x02, 0x00, 0x00}
	_, _, err := DecodeName(msg, 0)
	if err == nil {
		t.Fatal("expected error for forward-referencing pointer")
	}
}

func TestDecodeTooShort(t *testing.T) {
	msg := make([]byte, 11)
	_, err := Decode(msg)
	if err == nil {
		t.Fatal("expected error for short message")
	}
	if !dnserr.Is(err, dnserr.KindInvalidData) {
		t.Errorf("error kind = %v, want KindInvalidData", err)
	}
}

func TestEncodeQueryHasOPTRecord(t *testing.T) {
	m, err := NewQuery("example.com.", TypeA)
	if err != nil {
		t.Fatalf("NewQuery() error: %v", err)
	}
	encoded, err := m.Encode(EncodeOptions{DNSSECRequested: true})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("re-decoding our own encoded query failed: %v", err)
	}
	if len(decoded.Questions) != 1 || decoded.Questions[0].Name != "example.com." {
		t.Fatalf("round-tripped question mismatch: %+v", decoded.Questions)
	}
	if !decoded.RecursionDesired {
		t.Error("RecursionDesired should round-trip as true")
	}

	if arCount := uint16(encoded[10])<<8 | uint16(encoded[11]); arCount != 1 {
		t.Errorf("ARCOUNT = %d, want 1", arCount)
	}
	// root name, type OPT (41), class 4096, TTL with DNSSEC OK (1<<15), rdlength 0
	wantOPT := []byte{0x00, 0x00, 0x29, 0x10, 0x00, 0x00, 0x00, 0x80, 0x00, 0x00, 0x00}
	if !bytes.HasSuffix(encoded, wantOPT) {
		t.Errorf("encoded query does not end with OPT record % x", wantOPT)
	}
}

// TestDecodeUnknownAnswerTypeFails: an unrecognized type in the answer
// section aborts the whole decode rather than being demoted to an
// ErrorRecord, since a client cannot trust a reply it does not fully
// understand.
func TestDecodeUnknownAnswerTypeFails(t *testing.T) {
	msg := []byte{
		0x12, 0x34,
		0x81, 0x80,
		0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00,

		0x07, 'e', 'x', 'a', 'm', 'p', 'l', 'e',
		0x03, 'c', 'o', 'm',
		0x00,
		0x00, 0x01,
		0x00, 0x01,

		0xC0, 0x0C,
		0xFF, 0xFF, // Type 65535: not implemented by this codec
		0x00, 0x01,
		0x00, 0x00, 0x00, 0x3C,
		0x00, 0x02,
		0xAA, 0xBB,
	}

	_, err := Decode(msg)
	if err == nil {
		t.Fatal("expected error for unknown type in answer section")
	}
	if !dnserr.Is(err, dnserr.KindIncorrectType) {
		t.Errorf("error kind = %v, want KindIncorrectType", err)
	}
}

// TestDecodeUnknownAdditionalTypeTolerated mirrors the OPT pseudo-record
// the additional section always carries: an unrecognized type there falls
// back to ErrorRecord instead of failing the decode.
func TestDecodeUnknownAdditionalTypeTolerated(t *testing.T) {
	msg := []byte{
		0x12, 0x34,
		0x81, 0x80,
		0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01,

		0x07, 'e', 'x', 'a', 'm', 'p', 'l', 'e',
		0x03, 'c', 'o', 'm',
		0x00,
		0x00, 0x01,
		0x00, 0x01,

		0x00,       // root name
		0x00, 0x29, // Type OPT (41)
		0x10, 0x00, // class: UDP payload size 4096
		0x00, 0x00, 0x00, 0x00, // extended-rcode/version/flags
		0x00, 0x00, // rdlength
	}

	m, err := Decode(msg)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if len(m.Answers) != 0 {
		t.Errorf("got %d answers, want 0", len(m.Answers))
	}
}

func FuzzDecode(f *testing.F) {
	f.Add([]byte{
		0x12, 0x34, 0x01, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x07, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 0x03, 'c', 'o', 'm', 0x00,
		0x00, 0x01, 0x00, 0x01,
	})
	f.Add([]byte{0xC0, 0x00, 0xC0, 0x00})
	f.Fuzz(func(t *testing.T, data []byte) {
		_, _ = Decode(data) // must never panic
	})
}
