package lob

import (
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

// serverSupports64 reports whether the connection's server understands the
// 64-bit large object call family (lo_lseek64, lo_tell64, lo_truncate64),
// available since PostgreSQL 9.3.
//
// The check reads the server_version parameter status of the live connection
// and therefore runs once per open, not once per process: capability is a
// property of the connection, not of the binary.
func serverSupports64(tx pgx.Tx) (bool, error) {
	version := tx.Conn().PgConn().ParameterStatus("server_version")
	if version == "" {
		return false, &Error{
			Code:    ErrProtocol,
			Op:      "open",
			Message: "connection reports no server_version parameter",
		}
	}

	major, minor, err := parseServerVersion(version)
	if err != nil {
		return false, &Error{
			Code:    ErrProtocol,
			Op:      "open",
			Message: "cannot parse server_version " + strconv.Quote(version),
			Err:     err,
		}
	}

	return supports64(major, minor), nil
}

// supports64 reports whether a server of the given version has the 64-bit
// call family. The cutoff is 9.3.
func supports64(major, minor int) bool {
	return major > 9 || (major == 9 && minor >= 3)
}

// parseServerVersion extracts major and minor from a server_version string.
//
// The parameter has the form "<major>.<minor>[.<patch>]", possibly followed
// by vendor decoration, e.g. "9.3.25", "16.4 (Debian 16.4-1.pgdg120+1)" or
// "18beta1". Only the leading digits of each segment matter.
func parseServerVersion(s string) (major, minor int, err error) {
	if fields := strings.Fields(s); len(fields) > 0 {
		s = fields[0]
	}

	parts := strings.SplitN(s, ".", 3)

	major, err = leadingInt(parts[0])
	if err != nil {
		return 0, 0, err
	}

	// Pre-release strings such as "18beta1" carry no minor segment.
	if len(parts) > 1 {
		minor, err = leadingInt(parts[1])
		if err != nil {
			return 0, 0, err
		}
	}

	return major, minor, nil
}

// leadingInt parses the leading decimal digits of s, e.g. "3rc1" -> 3.
func leadingInt(s string) (int, error) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return strconv.Atoi(s[:end])
}
