// Package runner wires the pipeline together: hostname gathering, the
// two scheduled stages, persistence, and console reporting.
package runner

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/zeroday/hostrecon/pkg/batch"
	"github.com/zeroday/hostrecon/pkg/expand"
	"github.com/zeroday/hostrecon/pkg/input"
	"github.com/zeroday/hostrecon/pkg/metrics"
	"github.com/zeroday/hostrecon/pkg/model"
)

// ResolveStage resolves one hostname into a record.
type ResolveStage interface {
	Do(ctx context.Context, hostname string) model.DNSResult
}

// ProbeStage probes one hostname into a record.
type ProbeStage interface {
	Do(ctx context.Context, hostname string) model.HTTPResult
}

// Sink persists records. Persistence failures never fail the
// pipeline; the runner logs and moves on.
type Sink interface {
	SaveDNSResult(model.DNSResult) error
	SaveHTTPResult(model.HTTPResult) error
}

// Config assembles a Runner.
type Config struct {
	Resolver  ResolveStage
	Prober    ProbeStage
	Sink      Sink
	DNSWidth  int
	HTTPWidth int
	Out       io.Writer // console status lines, defaults to os.Stdout
	Progress  io.Writer // progress bars, defaults to os.Stderr
}

// Summary reports the totals of a finished run.
type Summary struct {
	Total           int
	Resolved        int
	ProbesCompleted int
	Elapsed         time.Duration
}

// Runner executes the two-stage pipeline.
type Runner struct {
	resolver  ResolveStage
	prober    ProbeStage
	sink      Sink
	dnsWidth  int
	httpWidth int
	out       io.Writer
	progress  io.Writer
}

// New creates a Runner.
func New(cfg Config) *Runner {
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Progress == nil {
		cfg.Progress = os.Stderr
	}
	return &Runner{
		resolver:  cfg.Resolver,
		prober:    cfg.Prober,
		sink:      cfg.Sink,
		dnsWidth:  cfg.DNSWidth,
		httpWidth: cfg.HTTPWidth,
		out:       cfg.Out,
		progress:  cfg.Progress,
	}
}

// Gather merges pattern-generated hostnames with the input file lines
// (pattern output first) and optionally shuffles the result.
func Gather(pattern, inputFile string, shuffle bool) ([]string, error) {
	var hostnames []string
	if pattern != "" {
		hostnames = expand.Hostnames(pattern)
	}
	if inputFile != "" {
		fromFile, err := input.Load(inputFile)
		if err != nil {
			return nil, err
		}
		hostnames = append(hostnames, fromFile...)
	}
	if shuffle {
		rand.Shuffle(len(hostnames), func(i, j int) {
			hostnames[i], hostnames[j] = hostnames[j], hostnames[i]
		})
	}
	return hostnames, nil
}

// Run resolves every hostname, probes the ones that resolved, and
// persists the outcomes. Per-item failures are absorbed into their
// records; Run itself only observes.
func (r *Runner) Run(ctx context.Context, hostnames []string) Summary {
	start := time.Now()
	summary := Summary{Total: len(hostnames)}

	resolved := r.resolveAll(ctx, hostnames)
	summary.Resolved = len(resolved)

	targets := make([]string, 0, len(resolved))
	for _, res := range resolved {
		targets = append(targets, res.Hostname)
	}

	summary.ProbesCompleted = r.probeAll(ctx, targets)
	summary.Elapsed = time.Since(start)
	return summary
}

// resolveAll runs the resolution stage and returns the successful
// records. Only successes are persisted; failed resolutions live on
// solely in the console output.
func (r *Runner) resolveAll(ctx context.Context, hostnames []string) []model.DNSResult {
	total := len(hostnames)
	fmt.Fprintf(r.out, "Resolving %d hostnames...\n", total)
	if total == 0 {
		return nil
	}

	p := mpb.New(mpb.WithOutput(r.progress))
	bar := r.newBar(p, "dns", total)

	completed := 0
	var resolved []model.DNSResult
	batch.Run(ctx, hostnames, r.dnsWidth, r.resolver.Do, func(result model.DNSResult) {
		completed++
		bar.Increment()

		if !result.Success || result.IPAddress == "" {
			metrics.ResolutionFailures.Inc()
			fmt.Fprintf(r.out, "[%d/%d] %s - No IP addresses found\n", completed, total, result.Hostname)
			return
		}

		metrics.HostnamesResolved.Inc()
		fmt.Fprintf(r.out, "[%d/%d] %s - Found IP: %s\n", completed, total, result.Hostname, result.IPAddress)
		if result.ASN != "" {
			fmt.Fprintf(r.out, "    ASN: %s\n", result.ASN)
			if result.ASName != "" {
				fmt.Fprintf(r.out, "    AS Name: %s\n", result.ASName)
			}
		}

		resolved = append(resolved, result)
		if err := r.sink.SaveDNSResult(result); err != nil {
			fmt.Fprintf(r.out, "Error logging to database: %s\n", err)
		}
	})

	p.Wait()
	return resolved
}

// probeAll runs the probe stage over the resolved hostnames and
// persists every record, transport failures included.
func (r *Runner) probeAll(ctx context.Context, hostnames []string) int {
	total := len(hostnames)
	fmt.Fprintf(r.out, "\nStarting HTTP checks for %d hosts...\n", total)
	if total == 0 {
		return 0
	}

	p := mpb.New(mpb.WithOutput(r.progress))
	bar := r.newBar(p, "http", total)

	completed := 0
	batch.Run(ctx, hostnames, r.httpWidth, r.prober.Do, func(result model.HTTPResult) {
		completed++
		bar.Increment()

		if result.StatusCode == 0 {
			metrics.ProbeFailures.Inc()
		} else {
			metrics.ProbesCompleted.Inc()
		}

		if result.StatusCode == 200 {
			fmt.Fprintf(r.out, "[%d/%d] %s - %s: HTTP 200\n", completed, total, result.Hostname, result.Path)
			if result.Response != "" {
				fmt.Fprintf(r.out, "    Response: %s\n", result.Response)
			}
		}

		if err := r.sink.SaveHTTPResult(result); err != nil {
			fmt.Fprintf(r.out, "Error logging HTTP result to database: %s\n", err)
		}
	})

	p.Wait()
	return completed
}

func (r *Runner) newBar(p *mpb.Progress, name string, total int) *mpb.Bar {
	return p.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(name, decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("[%d / %d]", decor.WCSyncWidth),
			decor.Percentage(decor.WCSyncSpace),
			decor.OnComplete(decor.AverageETA(decor.ET_STYLE_GO, decor.WCSyncSpace), "done"),
		),
	)
}
