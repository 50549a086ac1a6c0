// Package input loads hostnames from a line-oriented text file.
package input

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Load reads hostnames from filePath, one per line. Lines are
// trimmed; blank lines and "#" comments are skipped. Order is
// preserved and no deduplication is performed.
func Load(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", filePath, err)
	}
	defer file.Close()

	var hostnames []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		hostnames = append(hostnames, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", filePath, err)
	}

	return hostnames, nil
}
