package envconfig

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
)

const (
	defaultHost    = "127.0.0.1"
	defaultPort    = "7788"
	defaultMaxBody = 1 << 20
)

var ErrInvalidHostPort = errors.New("invalid port specified in BNFPLAY_HOST")

var (
	// Set via BNFPLAY_DEBUG in the environment
	Debug bool
	// Set via BNFPLAY_LOG_FORMAT in the environment, text or json
	LogFormat string
	// Set via BNFPLAY_PARALLEL in the environment
	Parallel int
	// Set via BNFPLAY_MAX_BODY in the environment
	MaxBody int64
)

type EnvVar struct {
	Name        string
	Value       any
	Description string
}

func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"BNFPLAY_DEBUG":      {"BNFPLAY_DEBUG", Debug, "Show additional debug information (e.g. BNFPLAY_DEBUG=1)"},
		"BNFPLAY_HOST":       {"BNFPLAY_HOST", clean("BNFPLAY_HOST"), "Address for the playground server (default 127.0.0.1:7788)"},
		"BNFPLAY_LOG_FORMAT": {"BNFPLAY_LOG_FORMAT", LogFormat, "Log output format, text or json (default text)"},
		"BNFPLAY_PARALLEL":   {"BNFPLAY_PARALLEL", Parallel, "Maximum number of suite cases run at once (default 4)"},
		"BNFPLAY_MAX_BODY":   {"BNFPLAY_MAX_BODY", MaxBody, "Maximum request body size in bytes (default 1048576)"},
	}
}

func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}

// Clean quotes and spaces from the value
func clean(key string) string {
	return strings.Trim(os.Getenv(key), "\"' ")
}

func init() {
	LoadConfig()
}

func LoadConfig() {
	Debug = false
	if debug := clean("BNFPLAY_DEBUG"); debug != "" {
		d, err := strconv.ParseBool(debug)
		if err == nil {
			Debug = d
		} else {
			Debug = true
		}
	}

	LogFormat = "text"
	if format := clean("BNFPLAY_LOG_FORMAT"); format != "" {
		switch strings.ToLower(format) {
		case "text", "json":
			LogFormat = strings.ToLower(format)
		default:
			slog.Warn("invalid setting, ignoring", "BNFPLAY_LOG_FORMAT", format)
		}
	}

	Parallel = 4
	if p := clean("BNFPLAY_PARALLEL"); p != "" {
		val, err := strconv.Atoi(p)
		if err != nil || val <= 0 {
			slog.Warn("invalid setting must be greater than zero", "BNFPLAY_PARALLEL", p, "error", err)
		} else {
			Parallel = val
		}
	}

	MaxBody = defaultMaxBody
	if mb := clean("BNFPLAY_MAX_BODY"); mb != "" {
		val, err := strconv.ParseInt(mb, 10, 64)
		if err != nil || val <= 0 {
			slog.Warn("invalid setting must be greater than zero", "BNFPLAY_MAX_BODY", mb, "error", err)
		} else {
			MaxBody = val
		}
	}
}

// Host returns the listen address from BNFPLAY_HOST, filling in the default
// host or port when either is missing.
func Host() (string, error) {
	return parseHost(clean("BNFPLAY_HOST"))
}

func parseHost(s string) (string, error) {
	if s == "" {
		return net.JoinHostPort(defaultHost, defaultPort), nil
	}

	host, port, err := net.SplitHostPort(s)
	if err != nil {
		host, port = s, defaultPort
		if ip := net.ParseIP(strings.Trim(s, "[]")); ip != nil {
			host = ip.String()
		}
	}
	host = strings.Trim(host, "[]")

	if n, err := strconv.ParseInt(port, 10, 32); err != nil || n > 65535 || n < 0 {
		return "", ErrInvalidHostPort
	}
	return net.JoinHostPort(host, port), nil
}
