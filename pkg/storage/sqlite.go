// Package storage persists resolution and probe records to a SQLite
// database. Both tables are append-only.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/zeroday/hostrecon/pkg/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS dns_results (
	id INTEGER PRIMARY KEY,
	hostname TEXT NOT NULL,
	ip_address TEXT,
	asn TEXT,
	as_name TEXT,
	timestamp TEXT NOT NULL,
	success INTEGER NOT NULL,
	error TEXT
);
CREATE TABLE IF NOT EXISTS status (
	id INTEGER PRIMARY KEY,
	hostname TEXT NOT NULL,
	status_code INTEGER,
	path TEXT,
	timestamp TEXT NOT NULL,
	response TEXT
);`

// Store wraps the SQLite database holding scan results.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at path and ensures
// the result tables exist.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveDNSResult appends one resolution record.
func (s *Store) SaveDNSResult(r model.DNSResult) error {
	_, err := s.db.Exec(
		`INSERT INTO dns_results (hostname, ip_address, asn, as_name, timestamp, success, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Hostname,
		nullable(r.IPAddress),
		nullable(r.ASN),
		nullable(r.ASName),
		r.Timestamp.Format(time.RFC3339),
		r.Success,
		nullable(r.Error),
	)
	return err
}

// SaveHTTPResult appends one probe record.
func (s *Store) SaveHTTPResult(r model.HTTPResult) error {
	_, err := s.db.Exec(
		`INSERT INTO status (hostname, status_code, path, timestamp, response)
		 VALUES (?, ?, ?, ?, ?)`,
		r.Hostname,
		r.StatusCode,
		r.Path,
		r.Timestamp.Format(time.RFC3339),
		nullable(r.Response),
	)
	return err
}

// DNSResults reads back every resolution record in insertion order.
func (s *Store) DNSResults() ([]model.DNSResult, error) {
	rows, err := s.db.Query(
		`SELECT hostname, ip_address, asn, as_name, timestamp, success, error
		 FROM dns_results ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.DNSResult
	for rows.Next() {
		var r model.DNSResult
		var ip, asn, asName, errText sql.NullString
		var ts string
		if err := rows.Scan(&r.Hostname, &ip, &asn, &asName, &ts, &r.Success, &errText); err != nil {
			return nil, err
		}
		r.IPAddress = ip.String
		r.ASN = asn.String
		r.ASName = asName.String
		r.Error = errText.String
		if r.Timestamp, err = time.Parse(time.RFC3339, ts); err != nil {
			return nil, fmt.Errorf("bad timestamp %q in dns_results: %w", ts, err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// HTTPResults reads back every probe record in insertion order.
func (s *Store) HTTPResults() ([]model.HTTPResult, error) {
	rows, err := s.db.Query(
		`SELECT hostname, status_code, path, timestamp, response
		 FROM status ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.HTTPResult
	for rows.Next() {
		var r model.HTTPResult
		var response sql.NullString
		var ts string
		if err := rows.Scan(&r.Hostname, &r.StatusCode, &r.Path, &ts, &response); err != nil {
			return nil, err
		}
		r.Response = response.String
		if r.Timestamp, err = time.Parse(time.RFC3339, ts); err != nil {
			return nil, fmt.Errorf("bad timestamp %q in status: %w", ts, err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// nullable maps "" to NULL so absent optionals stay distinguishable
// in the database.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
