package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one parsed log line.
type Entry struct {
	Time    string
	Level   string
	Message string
	Fields  string
	Raw     string
}

var levelRank = map[string]int{"DEBUG": 0, "INFO": 1, "WARN": 2, "ERROR": 3, "DPANIC": 4, "PANIC": 4, "FATAL": 5}

// Parse splits a console-encoded line ("time<TAB>LEVEL<TAB>message<TAB>{fields}").
// Lines that do not carry a known level are returned with ok=false and
// the whole text in Message.
func Parse(line string) (Entry, bool) {
	entry := Entry{Raw: line, Message: line}
	parts := strings.SplitN(line, "\t", 4)
	if len(parts) < 3 {
		return entry, false
	}
	level := strings.ToUpper(strings.TrimSpace(parts[1]))
	if _, ok := levelRank[level]; !ok {
		return entry, false
	}
	entry.Time = strings.TrimSpace(parts[0])
	entry.Level = level
	entry.Message = parts[2]
	if len(parts) == 4 {
		entry.Fields = strings.TrimSpace(parts[3])
	}
	return entry, true
}

// Filter parses lines and keeps those at or above minLevel. Unparsed lines
// (stack traces, partial writes) follow whatever entry precedes them.
func Filter(lines []string, minLevel string) []Entry {
	floor, ok := levelRank[strings.ToUpper(strings.TrimSpace(minLevel))]
	if !ok {
		floor = 0
	}
	out := make([]Entry, 0, len(lines))
	keep := floor == 0
	for _, line := range lines {
		entry, parsed := Parse(line)
		if parsed {
			keep = levelRank[entry.Level] >= floor
		}
		if keep {
			out = append(out, entry)
		}
	}
	return out
}
