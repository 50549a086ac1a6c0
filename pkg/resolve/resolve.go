// Package resolve implements the DNS resolution stage of the
// pipeline: a timeout-bounded address lookup followed by a
// best-effort ASN enrichment.
package resolve

import (
	"context"
	"errors"
	"time"

	"github.com/zeroday/hostrecon/pkg/asn"
	"github.com/zeroday/hostrecon/pkg/model"
)

// timeoutError is the canonical error text for lookups that exceed
// the stage timeout.
const timeoutError = "Timeout"

// AddrLookup resolves a hostname to its addresses.
type AddrLookup interface {
	LookupA(ctx context.Context, hostname string) ([]string, error)
}

// ASNLookup enriches an IP address with AS metadata.
type ASNLookup interface {
	Lookup(ctx context.Context, ip string) (asn.Info, error)
}

// Stage resolves hostnames. The lookup and enrichment handles are
// shared read-only across all concurrent operations of a run.
type Stage struct {
	lookup  AddrLookup
	asn     ASNLookup
	timeout time.Duration
}

// NewStage creates a resolution stage. enricher may be nil to skip
// ASN enrichment entirely.
func NewStage(lookup AddrLookup, enricher ASNLookup, timeout time.Duration) *Stage {
	return &Stage{
		lookup:  lookup,
		asn:     enricher,
		timeout: timeout,
	}
}

type lookupOutcome struct {
	ips []string
	err error
}

// Do resolves a single hostname. Every failure mode is absorbed into
// the returned record: a lookup that outlives the timeout is
// abandoned and reported as "Timeout", a resolver error is reported
// verbatim, and an enrichment failure leaves the ASN fields empty
// without affecting Success.
func (s *Stage) Do(ctx context.Context, hostname string) model.DNSResult {
	result := model.DNSResult{
		Hostname:  hostname,
		Timestamp: time.Now().UTC(),
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	outcome := make(chan lookupOutcome, 1)
	go func() {
		ips, err := s.lookup.LookupA(lookupCtx, hostname)
		outcome <- lookupOutcome{ips: ips, err: err}
	}()

	select {
	case out := <-outcome:
		switch {
		case errors.Is(out.err, context.DeadlineExceeded):
			result.Error = timeoutError
		case out.err != nil:
			result.Error = out.err.Error()
		case len(out.ips) == 0:
			result.Error = "no addresses found"
		default:
			result.Success = true
			result.IPAddress = out.ips[0]
			s.enrich(ctx, &result)
		}
	case <-lookupCtx.Done():
		result.Error = timeoutError
	}

	return result
}

// enrich fills in the ASN fields, best effort. The parent context is
// used on purpose: enrichment is not covered by the lookup timeout.
func (s *Stage) enrich(ctx context.Context, result *model.DNSResult) {
	if s.asn == nil {
		return
	}
	info, err := s.asn.Lookup(ctx, result.IPAddress)
	if err != nil {
		return
	}
	result.ASN = info.ASN
	result.ASName = info.ASName
}
