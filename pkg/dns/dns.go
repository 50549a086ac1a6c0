// Package dns performs A-record lookups against the system resolvers,
// with public resolvers as fallback.
package dns

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/miekg/dns"
)

// ErrNoAddresses is returned when every queried server answered but
// none produced an A record.
var ErrNoAddresses = errors.New("no addresses found")

// Resolver resolves hostnames to IPv4 addresses.
type Resolver struct {
	servers []string
	client  *dns.Client
}

// NewResolver creates a resolver. The servers from /etc/resolv.conf
// are tried first, then a set of public DNS servers.
func NewResolver(timeout time.Duration) *Resolver {
	servers := []string{
		"8.8.8.8:53", // Google
		"8.8.4.4:53",
		"1.1.1.1:53", // Cloudflare
		"1.0.0.1:53",
	}

	if config, err := dns.ClientConfigFromFile("/etc/resolv.conf"); err == nil && len(config.Servers) > 0 {
		port := config.Port
		if port == "" {
			port = "53"
		}
		var system []string
		for _, s := range config.Servers {
			system = append(system, net.JoinHostPort(s, port))
		}
		servers = append(system, servers...)
	}

	return &Resolver{
		servers: servers,
		client: &dns.Client{
			Timeout: timeout,
		},
	}
}

// LookupA queries the A records of hostname and returns the addresses
// in answer order. Servers are tried in order until one responds; the
// last error is returned when none do. The context bounds each
// individual exchange.
func (r *Resolver) LookupA(ctx context.Context, hostname string) ([]string, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(hostname), dns.TypeA)
	msg.RecursionDesired = true

	var lastErr error
	for _, server := range r.servers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, _, err := r.client.ExchangeContext(ctx, msg, server)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.Rcode != dns.RcodeSuccess {
			lastErr = errors.New(dns.RcodeToString[resp.Rcode])
			continue
		}

		var ips []string
		for _, ans := range resp.Answer {
			if a, ok := ans.(*dns.A); ok {
				ips = append(ips, a.A.String())
			}
		}
		if len(ips) == 0 {
			return nil, ErrNoAddresses
		}
		return ips, nil
	}

	if lastErr == nil {
		lastErr = errors.New("no response from any DNS server")
	}
	return nil, lastErr
}
