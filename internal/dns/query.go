package dns

import "fmt"

// MaxIncomingMessageSize caps inbound datagrams. Anything larger than a
// plain UDP DNS message has no business here and is treated as malformed.
const MaxIncomingMessageSize = 4096

// Query is the decoded view of an inbound DNS query datagram: the header and
// the ordered question section. It is produced by ParseQuery, owned by the
// handling of a single datagram, and never shared across datagrams.
//
// Only the first question is acted on; the wire bytes of that question are
// retained so the response can echo it back verbatim.
type Query struct {
	Header    Header
	Questions []Question

	questionWire []byte // wire bytes of the first question (name + type + class)
}

// Question returns the first question. ParseQuery guarantees at least one.
func (q Query) Question() Question {
	return q.Questions[0]
}

// QuestionWire returns the raw wire bytes of the first question section
// entry, exactly as received. Echoing these bytes back satisfies clients
// that validate the question in the response against what they sent.
func (q Query) QuestionWire() []byte {
	return q.questionWire
}

// ParseQuery decodes a raw datagram into a Query.
//
// It fails with ErrMalformed when:
//   - the input is shorter than the fixed 12-byte header,
//   - the message exceeds MaxIncomingMessageSize,
//   - the QR flag is set (a response, not a query; answering one would
//     let two sinkholes ping-pong forever),
//   - QDCOUNT is zero (nothing to answer),
//   - any question's name encoding is truncated, overruns the buffer, or
//     uses a compression pointer.
//
// QTYPE/QCLASS are not validated here: a non-A query decodes fine and the
// responder answers it with "not implemented" instead of dropping it.
func ParseQuery(msg []byte) (Query, error) {
	if len(msg) > MaxIncomingMessageSize {
		return Query{}, fmt.Errorf("%w: message exceeds %d bytes", ErrMalformed, MaxIncomingMessageSize)
	}

	off := 0
	h, err := ParseHeader(msg, &off)
	if err != nil {
		return Query{}, err
	}
	if h.IsResponse() {
		return Query{}, fmt.Errorf("%w: QR flag set on inbound message", ErrMalformed)
	}
	if h.QDCount == 0 {
		return Query{}, fmt.Errorf("%w: query carries no question", ErrMalformed)
	}

	q := Query{Header: h}
	q.Questions = make([]Question, 0, min(int(h.QDCount), 8))
	for i := 0; i < int(h.QDCount); i++ {
		start := off
		question, err := ParseQuestion(msg, &off)
		if err != nil {
			return Query{}, err
		}
		if i == 0 {
			q.questionWire = append([]byte(nil), msg[start:off]...)
		}
		q.Questions = append(q.Questions, question)
	}
	return q, nil
}
