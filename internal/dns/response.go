package dns

import "encoding/binary"

// Disposition describes how a decoded query was answered.
type Disposition int

const (
	// Answered means the first question was class IN type A and got the
	// configured address back with RCODE 0.
	Answered Disposition = iota
	// NotImplemented means the query decoded fine but asked for something
	// the sinkhole does not serve (non-A type, non-IN class, or a
	// non-standard opcode). The response carries RCODE 4 and no answers.
	NotImplemented
)

// aRecordFixedSize is TYPE(2) + CLASS(2) + TTL(4) + RDLENGTH(2) + RDATA(4).
const aRecordFixedSize = 14

// BuildResponse constructs the wire-format response for a decoded query.
// It never fails: every Query that ParseQuery produced gets a well-formed
// response.
//
// Header: the transaction ID is copied from the query, QR is set, Opcode and
// RD are copied through, AA and TC are clear, RA is set (stub resolvers
// expect a resolving server to advertise recursion), and Z is zero.
//
// When the first question is class IN type A with the standard query opcode,
// the response answers it: RCODE 0, QDCOUNT 1, ANCOUNT 1, and one A record
// whose NAME is a verbatim copy of the question name bytes, CLASS IN, the
// given TTL, RDLENGTH 4, and RDATA set to addr. Any other type, class, or
// opcode yields RCODE 4 (not implemented) with zero answers.
//
// The question section is echoed byte-for-byte. Queries carrying more than
// one question get only their first question echoed and answered; the
// response QDCOUNT is always 1.
func BuildResponse(q Query, addr [4]byte, ttl uint32) ([]byte, Disposition) {
	question := q.Question()
	supported := question.Type == uint16(TypeA) &&
		question.Class == uint16(ClassIN) &&
		OpcodeFromFlags(q.Header.Flags) == 0

	flags := QRFlag | RAFlag
	flags |= q.Header.Flags & (OpcodeMask | RDFlag)

	h := Header{ID: q.Header.ID, Flags: flags, QDCount: 1}
	if supported {
		h.ANCount = 1
	} else {
		h.Flags |= uint16(RCodeNotImp)
	}

	qWire := q.QuestionWire()
	out := make([]byte, 0, HeaderSize+2*len(qWire)+aRecordFixedSize)
	out = append(out, h.Marshal()...)
	out = append(out, qWire...)
	if !supported {
		return out, NotImplemented
	}

	// Answer NAME: verbatim copy of the question name. A compression
	// pointer back to offset 12 would also be wire-valid, but the copy is
	// simpler and keeps our own responses parseable by this codec.
	nameWire := qWire[:len(qWire)-4]
	out = append(out, nameWire...)
	fixed := make([]byte, 10)
	binary.BigEndian.PutUint16(fixed[0:2], uint16(TypeA))
	binary.BigEndian.PutUint16(fixed[2:4], uint16(ClassIN))
	binary.BigEndian.PutUint32(fixed[4:8], ttl)
	binary.BigEndian.PutUint16(fixed[8:10], 4) // RDLENGTH is always 4 for an A record
	out = append(out, fixed...)
	out = append(out, addr[:]...)
	return out, Answered
}
