package wire

import (
	"encoding/binary"

	"github.com/dnsscience/dnskit/internal/dnserr"
)

// Question is a DNS question section entry.
type Question struct {
	Name  string
	Type  Type
	Class Class
}

// Encode writes the wire form: name || type(16) || class(16).
func (q Question) Encode() ([]byte, error) {
	name, err := EncodeName(q.Name)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(name)+4)
	out = append(out, name...)
	out = binary.BigEndian.AppendUint16(out, uint16(q.Type))
	out = binary.BigEndian.AppendUint16(out, uint16(q.Class))
	return out, nil
}

// decodeQuestion decodes one question starting at offset.
func decodeQuestion(msg []byte, offset int) (Question, int, error) {
	name, pos, err := DecodeName(msg, offset)
	if err != nil {
		return Question{}, 0, err
	}
	if pos+4 > len(msg) {
		return Question{}, 0, dnserr.New(dnserr.KindInvalidData, "truncated question")
	}
	q := Question{
		Name:  name,
		Type:  Type(binary.BigEndian.Uint16(msg[pos : pos+2])),
		Class: Class(binary.BigEndian.Uint16(msg[pos+2 : pos+4])),
	}
	return q, pos + 4, nil
}
