package model

import (
	"time"

	"github.com/jessevdk/go-flags"
)

// Options is the options for the program
type Options struct {
	InputFile       string `short:"i" long:"input" description:"Path to the input file containing hostnames"`
	Database        string `short:"d" long:"database" description:"Path to the SQLite database file" default:"dns_results.db"`
	Timeout         int    `short:"t" long:"timeout" description:"Timeout of each DNS lookup (in seconds)" default:"5"`
	Concurrency     int    `short:"c" long:"concurrency" description:"Number of concurrent DNS lookups" default:"10"`
	Pattern         string `short:"p" long:"pattern" description:"Pattern to generate hostnames (e.g. \"a[a-z]{2}.com\")"`
	Shuffle         bool   `short:"s" long:"shuffle" description:"Shuffle the order of hostnames before processing"`
	HTTPConcurrency int    `short:"H" long:"http-concurrency" description:"Number of concurrent HTTP requests" default:"100"`
	Metrics         bool   `short:"m" long:"metrics" description:"Expose Prometheus metrics on :2112"`
	Version         bool   `short:"v" long:"version" description:"Version"`
}

// ParseOptions parses command line flags into an Options struct.
func ParseOptions() (*Options, error) {
	opts := &Options{}
	if _, err := flags.Parse(opts); err != nil {
		return nil, err
	}
	return opts, nil
}

// DNSTimeout returns the DNS lookup timeout as a duration.
func (o *Options) DNSTimeout() time.Duration {
	return time.Duration(o.Timeout) * time.Second
}
