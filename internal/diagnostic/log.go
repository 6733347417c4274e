package diagnostic

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Entry is a single leveled message recorded on a Log node.
type Entry struct {
	Level   slog.Level
	Message string
}

// Log is a node of the hierarchical conversion log. Every node mirrors its
// entries to a slog.Logger, tagged with the path of titles leading to it.
type Log struct {
	title    string
	parent   *Log
	logger   *slog.Logger
	entries  []Entry
	children []*Log
}

// NewLog creates a root log node. A nil logger falls back to slog.Default().
func NewLog(title string, logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}

	return &Log{title: title, logger: logger}
}

// Branch creates and returns a child node.
func (l *Log) Branch(title string) *Log {
	child := &Log{title: title, parent: l, logger: l.logger}
	l.children = append(l.children, child)

	return child
}

// Log records a message on this node.
func (l *Log) Log(level slog.Level, msg string) {
	l.entries = append(l.entries, Entry{Level: level, Message: msg})
	l.logger.Log(context.Background(), level, msg, "scope", l.Path())
}

// Logf records a formatted message on this node.
func (l *Log) Logf(level slog.Level, format string, args ...any) {
	l.Log(level, fmt.Sprintf(format, args...))
}

// Title returns the node title.
func (l *Log) Title() string {
	return l.title
}

// Entries returns the messages recorded directly on this node.
func (l *Log) Entries() []Entry {
	return l.entries
}

// Children returns the child nodes in creation order.
func (l *Log) Children() []*Log {
	return l.children
}

// Path returns the titles from the root to this node joined by " > ".
func (l *Log) Path() string {
	var titles []string
	for n := l; n != nil; n = n.parent {
		titles = append(titles, n.title)
	}

	for i, j := 0, len(titles)-1; i < j; i, j = i+1, j-1 {
		titles[i], titles[j] = titles[j], titles[i]
	}

	return strings.Join(titles, " > ")
}

// Level returns the most severe level recorded in the subtree rooted at this
// node, or slog.LevelDebug if nothing was recorded.
func (l *Log) Level() slog.Level {
	worst := slog.LevelDebug

	for _, e := range l.entries {
		worst = max(worst, e.Level)
	}

	for _, c := range l.children {
		worst = max(worst, c.Level())
	}

	return worst
}

// Print writes the subtree as an indented tree. Nodes whose subtree holds
// nothing at or above minLevel are skipped.
func (l *Log) Print(w io.Writer, minLevel slog.Level) {
	l.print(w, minLevel, 0)
}

func (l *Log) print(w io.Writer, minLevel slog.Level, depth int) {
	if l.Level() < minLevel {
		return
	}

	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s\n", indent, l.title)

	for _, e := range l.entries {
		if e.Level < minLevel {
			continue
		}

		fmt.Fprintf(w, "%s  %s: %s\n", indent, e.Level, e.Message)
	}

	for _, c := range l.children {
		c.print(w, minLevel, depth+1)
	}
}
