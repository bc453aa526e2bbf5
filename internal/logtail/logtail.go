// Package logtail reads the tail of the flightsearch log file and renders
// its JSON records as plain lines.
package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap/zapcore"
)

// MaxLines caps how many lines Read keeps.
const MaxLines = 10000

// Read returns at most maxLines from the end of the file at path, capped at
// MaxLines. A missing file has no lines.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	if maxLines > MaxLines {
		maxLines = MaxLines
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	// The ring grows with the file until it holds maxLines.
	var ring []string
	next := 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if len(ring) < maxLines {
			ring = append(ring, scanner.Text())
			continue
		}
		ring[next] = scanner.Text()
		next = (next + 1) % maxLines
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, 0, len(ring))
	lines = append(lines, ring[next:]...)
	return append(lines, ring[:next]...), nil
}

// Entry is one decoded log record.
type Entry struct {
	Time    string
	Level   zapcore.Level
	Message string
	Fields  map[string]any
}

// Parse decodes a JSON log line. Lines that are not log records are
// returned as a message at info level.
func Parse(line string) Entry {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Entry{Level: zapcore.InfoLevel, Message: line}
	}

	e := Entry{Level: zapcore.InfoLevel, Fields: map[string]any{}}
	for k, v := range raw {
		switch k {
		case "ts":
			e.Time = fmt.Sprint(v)
		case "level":
			if lvl, err := zapcore.ParseLevel(fmt.Sprint(v)); err == nil {
				e.Level = lvl
			}
		case "msg":
			e.Message = fmt.Sprint(v)
		case "caller":
		default:
			e.Fields[k] = v
		}
	}
	return e
}

// Format renders e as "time LEVEL message key=value ..." with keys sorted.
func (e Entry) Format() string {
	var b strings.Builder
	if e.Time != "" {
		b.WriteString(e.Time)
		b.WriteByte(' ')
	}
	b.WriteString(e.Level.CapitalString())
	b.WriteByte(' ')
	b.WriteString(e.Message)

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Fields[k])
	}
	return b.String()
}

// Filter keeps the entries at or above minLevel.
func Filter(entries []Entry, minLevel zapcore.Level) []Entry {
	out := entries[:0:0]
	for _, e := range entries {
		if e.Level >= minLevel {
			out = append(out, e)
		}
	}
	return out
}
