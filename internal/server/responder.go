// Package server implements the UDP responder loop and process lifecycle
// for the sinkhole.
package server

import (
	"context"
	"log/slog"
	"time"

	"sinkdns/internal/dns"
)

// Outcome is how a single datagram was disposed of. Exactly one of these
// three things happens to every received datagram.
type Outcome int

const (
	// OutcomeAnswered: decodable A/IN query, answered with the fixed address.
	OutcomeAnswered Outcome = iota
	// OutcomeNotImplemented: decodable query for something else, answered
	// with RCODE 4 and no records.
	OutcomeNotImplemented
	// OutcomeDropped: malformed datagram, no response sent.
	OutcomeDropped
)

// String returns the outcome name for logging.
func (o Outcome) String() string {
	switch o {
	case OutcomeAnswered:
		return "answered"
	case OutcomeNotImplemented:
		return "not-implemented"
	case OutcomeDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// Responder owns the per-datagram control flow: decode the payload, decide
// whether and how to respond, and produce the bytes to send back. It holds
// no per-query state; every datagram is handled independently.
type Responder struct {
	Logger *slog.Logger // Optional logger for per-datagram debug output
	Addr   [4]byte      // The fixed IPv4 address answered for every A query
	TTL    uint32       // TTL stamped on every answer
	Stats  *Stats       // Optional outcome counters
}

// Result contains the outcome of handling one datagram.
type Result struct {
	ResponseBytes []byte    // Serialized response; nil when dropped
	Outcome       Outcome   // How the datagram was disposed of
	Query         dns.Query // Decoded query (valid when ParsedOK)
	ParsedOK      bool      // Whether the payload decoded successfully
}

// Handle processes one received datagram payload.
//
// Malformed input is dropped silently: no response bytes, no error to the
// caller. Replying to garbage invites reflection abuse, and DNS clients
// retry on timeout anyway. Everything that decodes gets a response, either
// the fixed answer or a not-implemented error.
func (r *Responder) Handle(ctx context.Context, transport, src string, payload []byte) Result {
	start := time.Now()

	query, err := dns.ParseQuery(payload)
	if err != nil {
		r.record(OutcomeDropped, start)
		r.logDropped(ctx, transport, src, len(payload), err)
		return Result{Outcome: OutcomeDropped}
	}

	resp, disposition := dns.BuildResponse(query, r.Addr, r.TTL)
	outcome := OutcomeAnswered
	if disposition == dns.NotImplemented {
		outcome = OutcomeNotImplemented
	}
	r.record(outcome, start)
	r.logHandled(ctx, transport, src, query, len(payload), outcome)

	return Result{
		ResponseBytes: resp,
		Outcome:       outcome,
		Query:         query,
		ParsedOK:      true,
	}
}

func (r *Responder) record(o Outcome, start time.Time) {
	if r.Stats == nil {
		return
	}
	r.Stats.RecordOutcome(o)
	r.Stats.RecordLatency(time.Since(start).Nanoseconds())
}

func (r *Responder) logDropped(ctx context.Context, transport, src string, reqLen int, err error) {
	if r.Logger == nil || !r.Logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	r.Logger.Debug(
		"datagram dropped",
		"transport", transport,
		"src", src,
		"bytes", reqLen,
		"err", err,
	)
}

func (r *Responder) logHandled(ctx context.Context, transport, src string, query dns.Query, reqLen int, outcome Outcome) {
	if r.Logger == nil || !r.Logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	q := query.Question()
	r.Logger.Debug(
		"dns request",
		"transport", transport,
		"src", src,
		"id", int(query.Header.ID),
		"qname", q.Name,
		"qtype", int(q.Type),
		"bytes", reqLen,
		"outcome", outcome.String(),
	)
}
