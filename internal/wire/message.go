package wire

import (
	"encoding/binary"

	"github.com/dnsscience/dnskit/internal/dnserr"
	"github.com/dnsscience/dnskit/internal/random"
)

const headerSize = 12

// Message is an immutable decoded (or about-to-be-encoded) DNS message.
// Authority and additional sections are parsed for structural validity
// during Decode but are not retained: callers only see Questions and
// Answers.
type Message struct {
	ID uint16

	Response           bool
	Opcode             Opcode
	Authoritative      bool
	Truncated          bool
	RecursionDesired   bool
	RecursionAvailable bool
	AuthenticatedData  bool
	CheckingDisabled   bool
	Rcode              Rcode

	Questions []Question
	Answers   []Answer
}

// NewQuery builds an outbound query message: a single question, recursion
// desired, and a cryptographically random transaction ID.
func NewQuery(name string, qtype Type) (*Message, error) {
	return &Message{
		ID:               random.TransactionID(),
		Opcode:           OpcodeQuery,
		RecursionDesired: true,
		Questions:        []Question{{Name: name, Type: qtype, Class: ClassIN}},
	}, nil
}

// Decode parses a complete DNS message, enforcing that question/answer
// counts match the decoded list lengths and that the message is at least
// large enough to hold a header.
func Decode(msg []byte) (*Message, error) {
	if len(msg) < headerSize {
		return nil, dnserr.New(dnserr.KindInvalidData, "too short")
	}

	m := &Message{ID: binary.BigEndian.Uint16(msg[0:2])}
	flags := binary.BigEndian.Uint16(msg[2:4])
	m.Response = flags&0x8000 != 0
	m.Opcode = Opcode((flags >> 11) & 0x0F)
	m.Authoritative = flags&0x0400 != 0
	m.Truncated = flags&0x0200 != 0
	m.RecursionDesired = flags&0x0100 != 0
	m.RecursionAvailable = flags&0x0080 != 0
	m.AuthenticatedData = flags&0x0020 != 0
	m.CheckingDisabled = flags&0x0010 != 0
	m.Rcode = Rcode(flags & 0x000F)

	qdCount := binary.BigEndian.Uint16(msg[4:6])
	anCount := binary.BigEndian.Uint16(msg[6:8])
	nsCount := binary.BigEndian.Uint16(msg[8:10])
	arCount := binary.BigEndian.Uint16(msg[10:12])

	pos := headerSize

	m.Questions = make([]Question, 0, qdCount)
	for i := 0; i < int(qdCount); i++ {
		q, next, err := decodeQuestion(msg, pos)
		if err != nil {
			return nil, err
		}
		m.Questions = append(m.Questions, q)
		pos = next
	}
	if len(m.Questions) != int(qdCount) {
		return nil, dnserr.New(dnserr.KindInvalidData, "question count mismatch")
	}

	m.Answers = make([]Answer, 0, anCount)
	for i := 0; i < int(anCount); i++ {
		a, next, err := decodeAnswer(msg, pos, true)
		if err != nil {
			return nil, err
		}
		m.Answers = append(m.Answers, a)
		pos = next
	}
	if len(m.Answers) != int(anCount) {
		return nil, dnserr.New(dnserr.KindInvalidData, "answer count mismatch")
	}

	// Authority and additional sections are parsed for structural
	// validity only; the OPT pseudo-record lives here, and it is never a
	// recognized RData type, so unknown types fall back to ErrorRecord
	// instead of aborting the decode.
	for i := 0; i < int(nsCount); i++ {
		_, next, err := decodeAnswer(msg, pos, false)
		if err != nil {
			return nil, err
		}
		pos = next
	}
	for i := 0; i < int(arCount); i++ {
		_, next, err := decodeAnswer(msg, pos, false)
		if err != nil {
			return nil, err
		}
		pos = next
	}

	return m, nil
}

// EncodeOptions controls outbound-only framing decisions that are not part
// of the decoded Message model.
type EncodeOptions struct {
	// DNSSECRequested sets the EDNS "DNSSEC OK" bit.
	DNSSECRequested bool
	// ForHTTPSGet forces the message id to zero per RFC 8484 §4.1.
	ForHTTPSGet bool
}

// Encode serializes an outbound message: response=0, opcode QUERY (0;
// m.Opcode is not encoded), recursion-desired as set, exactly one
// question, and an OPT
// record in the additional section advertising a 4096-byte UDP payload
// size and, when requested, the DNSSEC OK bit.
func (m *Message) Encode(opts EncodeOptions) ([]byte, error) {
	if len(m.Questions) != 1 {
		return nil, dnserr.New(dnserr.KindInvalidData, "outbound message must have exactly one question")
	}

	id := m.ID
	if opts.ForHTTPSGet {
		id = 0
	}

	var flags uint16
	if m.RecursionDesired {
		flags |= 0x0100
	}

	out := make([]byte, headerSize)
	binary.BigEndian.PutUint16(out[0:2], id)
	binary.BigEndian.PutUint16(out[2:4], flags)
	binary.BigEndian.PutUint16(out[4:6], 1)    // QDCOUNT
	binary.BigEndian.PutUint16(out[6:8], 0)    // ANCOUNT
	binary.BigEndian.PutUint16(out[8:10], 0)   // NSCOUNT
	binary.BigEndian.PutUint16(out[10:12], 1)  // ARCOUNT: one OPT record

	qbytes, err := m.Questions[0].Encode()
	if err != nil {
		return nil, err
	}
	out = append(out, qbytes...)
	out = append(out, encodeOPT(opts.DNSSECRequested)...)
	return out, nil
}

// encodeOPT builds the additional-section OPT pseudo-record: name=".",
// type=41, class=4096 (UDP payload size), extended-RCODE=0, version=0, and
// the DNSSEC OK bit (1<<15) in the Z field when requested.
func encodeOPT(dnssecOK bool) []byte {
	out := []byte{0} // root name
	out = binary.BigEndian.AppendUint16(out, uint16(TypeOPT))
	out = binary.BigEndian.AppendUint16(out, 4096) // UDP payload size in the class field

	var ttl uint32 // extended-rcode(8) | version(8) | flags(16)
	if dnssecOK {
		ttl |= 1 << 15
	}
	out = binary.BigEndian.AppendUint32(out, ttl)
	out = binary.BigEndian.AppendUint16(out, 0) // rdlength
	return out
}
