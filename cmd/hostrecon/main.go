package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/zeroday/hostrecon/pkg/asn"
	"github.com/zeroday/hostrecon/pkg/common"
	"github.com/zeroday/hostrecon/pkg/dns"
	"github.com/zeroday/hostrecon/pkg/metrics"
	"github.com/zeroday/hostrecon/pkg/model"
	"github.com/zeroday/hostrecon/pkg/probe"
	"github.com/zeroday/hostrecon/pkg/resolve"
	"github.com/zeroday/hostrecon/pkg/runner"
	"github.com/zeroday/hostrecon/pkg/storage"
)

func main() {
	opts, err := model.ParseOptions()
	if err != nil {
		os.Exit(1)
	}

	if opts.Version {
		fmt.Println(common.PV.String())
		os.Exit(0)
	}

	if opts.Metrics {
		go metrics.Serve()
	}

	hostnames, err := runner.Gather(opts.Pattern, opts.InputFile, opts.Shuffle)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(hostnames) == 0 {
		fmt.Println("No hostnames provided. Please provide either an input file or a pattern.")
		return
	}

	store, err := storage.Open(opts.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()
	fmt.Printf("Database initialized at: %s\n", opts.Database)

	resolver := resolve.NewStage(
		dns.NewResolver(opts.DNSTimeout()),
		asn.NewClient(),
		opts.DNSTimeout(),
	)
	prober := probe.NewProber(probe.DefaultPath, probe.DefaultTimeout)

	r := runner.New(runner.Config{
		Resolver:  resolver,
		Prober:    prober,
		Sink:      store,
		DNSWidth:  opts.Concurrency,
		HTTPWidth: opts.HTTPConcurrency,
	})

	summary := r.Run(context.Background(), hostnames)

	fmt.Printf("\nProcessing completed in %s\n", summary.Elapsed.Round(10*time.Millisecond))
	fmt.Printf("Total hostnames processed: %d\n", summary.Total)
	fmt.Printf("Successfully resolved: %d\n", summary.Resolved)
	fmt.Printf("HTTP requests completed: %d\n", summary.ProbesCompleted)
}
