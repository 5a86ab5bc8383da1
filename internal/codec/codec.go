// Package codec converts metric logs and user records to and from the
// compact text format they are persisted in.
//
// A log entry is encoded as "date:value" or "date:value:extra", and a log
// is its entries joined with ";". Free text inside a token is percent
// escaped so neither separator can appear raw.
package codec

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/yourname/healthcoach/internal"
)

const (
	EntrySep = ";"
	FieldSep = ":"
)

// EncodeEntry renders e as a single token.
func EncodeEntry(e internal.LogEntry) string {
	var b strings.Builder
	b.WriteString(e.Date.Format(internal.DateLayout))
	b.WriteString(FieldSep)
	if e.Text != "" {
		b.WriteString(escapeField(e.Text))
	} else {
		b.WriteString(strconv.FormatFloat(e.Amount, 'f', -1, 64))
	}
	if e.Extra != "" {
		b.WriteString(FieldSep)
		b.WriteString(escapeField(e.Extra))
	}
	return b.String()
}

// DecodeEntry parses a token written for metric m. Numeric metrics need a
// finite number in the value segment; workout takes free text.
func DecodeEntry(m internal.Metric, token string) (internal.LogEntry, error) {
	parts := strings.SplitN(token, FieldSep, 3)
	if len(parts) < 2 {
		return internal.LogEntry{}, fmt.Errorf("%w: %q has no value segment", internal.ErrMalformedEntry, token)
	}
	date, err := time.Parse(internal.DateLayout, parts[0])
	if err != nil {
		return internal.LogEntry{}, fmt.Errorf("%w: bad date in %q", internal.ErrMalformedEntry, token)
	}
	e := internal.LogEntry{Date: date}
	if parts[1] == "" {
		return internal.LogEntry{}, fmt.Errorf("%w: empty value in %q", internal.ErrMalformedEntry, token)
	}
	if m.Numeric() {
		v, err := strconv.ParseFloat(parts[1], 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return internal.LogEntry{}, fmt.Errorf("%w: bad %s value in %q", internal.ErrMalformedEntry, m, token)
		}
		e.Amount = v
	} else {
		e.Text = unescape(parts[1])
	}
	if len(parts) == 3 {
		e.Extra = unescape(parts[2])
	}
	return e, nil
}

// EncodeLog joins every entry of log. An empty log encodes to "".
func EncodeLog(log internal.MetricLog) string {
	tokens := make([]string, len(log))
	for i, e := range log {
		tokens[i] = EncodeEntry(e)
	}
	return strings.Join(tokens, EntrySep)
}

// DecodeLog parses an encoded log, dropping empty tokens. Malformed tokens
// are skipped and counted rather than failing the whole log.
func DecodeLog(m internal.Metric, s string) (internal.MetricLog, int) {
	if s == "" {
		return internal.MetricLog{}, 0
	}
	var (
		log     = internal.MetricLog{}
		skipped int
	)
	for _, tok := range strings.Split(s, EntrySep) {
		if tok == "" {
			continue
		}
		e, err := DecodeEntry(m, tok)
		if err != nil {
			skipped++
			continue
		}
		log = append(log, e)
	}
	return log, skipped
}

// Append returns a new log with e after every existing entry. The input
// slice is never written to, so callers holding it keep their view.
func Append(log internal.MetricLog, e internal.LogEntry) internal.MetricLog {
	out := make(internal.MetricLog, len(log), len(log)+1)
	copy(out, log)
	return append(out, e)
}

// EncodeList joins free-text items (reminders, feedback) with ";".
func EncodeList(items []string) string {
	escaped := make([]string, 0, len(items))
	for _, it := range items {
		if it == "" {
			continue
		}
		escaped = append(escaped, escapeItem(it))
	}
	return strings.Join(escaped, EntrySep)
}

// DecodeList is the inverse of EncodeList.
func DecodeList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, it := range strings.Split(s, EntrySep) {
		if it == "" {
			continue
		}
		out = append(out, unescape(it))
	}
	return out
}
