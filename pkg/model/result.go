package model

import "time"

// DNSResult represents the outcome of resolving a single hostname.
// Exactly one DNSResult is produced per hostname that enters the
// resolution stage. Optional fields use "" for absent.
type DNSResult struct {
	Hostname  string
	IPAddress string
	ASN       string
	ASName    string
	Timestamp time.Time
	Success   bool
	Error     string
}

// HTTPResult represents the outcome of probing a single hostname.
// StatusCode 0 means the request never produced an HTTP response
// (transport failure or timeout).
type HTTPResult struct {
	Hostname   string
	Path       string
	StatusCode int
	Response   string
	Timestamp  time.Time
	Error      string
}
