package dns_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sinkdns/internal/dns"
)

var testAddr = [4]byte{6, 6, 6, 6}

func TestBuildResponse_AnswersAQuery(t *testing.T) {
	raw := buildQueryBytes(t, 0x6AEB, dns.RDFlag, "foo.com", uint16(dns.TypeA), uint16(dns.ClassIN))
	q, err := dns.ParseQuery(raw)
	require.NoError(t, err)

	resp, disposition := dns.BuildResponse(q, testAddr, 0)
	assert.Equal(t, dns.Answered, disposition)

	m, err := dns.ParseMessage(resp)
	require.NoError(t, err)

	// Header invariants.
	assert.Equal(t, uint16(0x6AEB), m.Header.ID, "transaction ID must be echoed")
	assert.True(t, m.Header.IsResponse())
	assert.True(t, m.Header.RecursionDesired(), "RD copied from the query")
	assert.True(t, m.Header.RecursionAvailable(), "RA advertised")
	assert.Zero(t, m.Header.Flags&dns.AAFlag)
	assert.Zero(t, m.Header.Flags&dns.TCFlag)
	assert.Equal(t, dns.RCodeNoError, dns.RCodeFromFlags(m.Header.Flags))
	assert.Equal(t, uint16(1), m.Header.QDCount)
	assert.Equal(t, uint16(1), m.Header.ANCount)
	assert.Equal(t, uint16(0), m.Header.NSCount)
	assert.Equal(t, uint16(0), m.Header.ARCount)

	// Question echoed byte-for-byte.
	qLen := len(q.QuestionWire())
	assert.Equal(t, raw[dns.HeaderSize:dns.HeaderSize+qLen], resp[dns.HeaderSize:dns.HeaderSize+qLen])

	// Answer record.
	require.Len(t, m.Answers, 1)
	rr := m.Answers[0]
	assert.Equal(t, "foo.com", rr.Name)
	assert.Equal(t, uint16(dns.TypeA), rr.Type)
	assert.Equal(t, uint16(dns.ClassIN), rr.Class)
	assert.Equal(t, uint32(0), rr.TTL)
	assert.Equal(t, []byte{6, 6, 6, 6}, rr.Data, "RDATA is exactly the configured address")
}

func TestBuildResponse_AnswerAddressAndTTLFollowConfig(t *testing.T) {
	raw := buildQueryBytes(t, 42, dns.RDFlag, "example.org", uint16(dns.TypeA), uint16(dns.ClassIN))
	q, err := dns.ParseQuery(raw)
	require.NoError(t, err)

	resp, disposition := dns.BuildResponse(q, [4]byte{192, 0, 2, 1}, 300)
	require.Equal(t, dns.Answered, disposition)

	m, err := dns.ParseMessage(resp)
	require.NoError(t, err)
	require.Len(t, m.Answers, 1)
	assert.Equal(t, []byte{192, 0, 2, 1}, m.Answers[0].Data)
	assert.Equal(t, uint32(300), m.Answers[0].TTL)
}

func TestBuildResponse_PreservesNameCase(t *testing.T) {
	raw := buildQueryBytes(t, 1, 0, "FoO.CoM", uint16(dns.TypeA), uint16(dns.ClassIN))
	q, err := dns.ParseQuery(raw)
	require.NoError(t, err)

	resp, _ := dns.BuildResponse(q, testAddr, 0)
	m, err := dns.ParseMessage(resp)
	require.NoError(t, err)
	assert.Equal(t, "FoO.CoM", m.Questions[0].Name)
	assert.Equal(t, "FoO.CoM", m.Answers[0].Name)
}

func TestBuildResponse_NotImplemented(t *testing.T) {
	tests := []struct {
		name   string
		flags  uint16
		qtype  uint16
		qclass uint16
	}{
		{
			name:   "AAAA query",
			flags:  dns.RDFlag,
			qtype:  uint16(dns.TypeAAAA),
			qclass: uint16(dns.ClassIN),
		},
		{
			name:   "TXT query",
			flags:  dns.RDFlag,
			qtype:  uint16(dns.TypeTXT),
			qclass: uint16(dns.ClassIN),
		},
		{
			name:   "non-IN class",
			flags:  dns.RDFlag,
			qtype:  uint16(dns.TypeA),
			qclass: 3, // CHAOS
		},
		{
			name:   "inverse query opcode",
			flags:  1 << 11,
			qtype:  uint16(dns.TypeA),
			qclass: uint16(dns.ClassIN),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := buildQueryBytes(t, 0xBEEF, tt.flags, "foo.com", tt.qtype, tt.qclass)
			q, err := dns.ParseQuery(raw)
			require.NoError(t, err)

			resp, disposition := dns.BuildResponse(q, testAddr, 0)
			assert.Equal(t, dns.NotImplemented, disposition)

			m, err := dns.ParseMessage(resp)
			require.NoError(t, err)
			assert.Equal(t, uint16(0xBEEF), m.Header.ID)
			assert.True(t, m.Header.IsResponse())
			assert.Equal(t, dns.RCodeNotImp, dns.RCodeFromFlags(m.Header.Flags))
			assert.Equal(t, uint16(1), m.Header.QDCount)
			assert.Equal(t, uint16(0), m.Header.ANCount)
			assert.Empty(t, m.Answers)

			// Question still echoed verbatim.
			require.Len(t, m.Questions, 1)
			assert.Equal(t, "foo.com", m.Questions[0].Name)
			assert.Equal(t, tt.qtype, m.Questions[0].Type)
			assert.Equal(t, tt.qclass, m.Questions[0].Class)
		})
	}
}

func TestBuildResponse_MultiQuestionAnswersFirstOnly(t *testing.T) {
	m := dns.Message{
		Header: dns.Header{ID: 5, Flags: dns.RDFlag},
		Questions: []dns.Question{
			{Name: "first.example", Type: uint16(dns.TypeA), Class: uint16(dns.ClassIN)},
			{Name: "second.example", Type: uint16(dns.TypeA), Class: uint16(dns.ClassIN)},
		},
	}
	raw, err := m.Marshal()
	require.NoError(t, err)
	q, err := dns.ParseQuery(raw)
	require.NoError(t, err)

	resp, disposition := dns.BuildResponse(q, testAddr, 0)
	require.Equal(t, dns.Answered, disposition)

	parsed, err := dns.ParseMessage(resp)
	require.NoError(t, err)
	assert.Equal(t, uint16(1), parsed.Header.QDCount)
	require.Len(t, parsed.Questions, 1)
	assert.Equal(t, "first.example", parsed.Questions[0].Name)
	require.Len(t, parsed.Answers, 1)
	assert.Equal(t, "first.example", parsed.Answers[0].Name)
}
