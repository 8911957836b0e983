package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/peterh/liner"
)

const maxHistorySize = 1000

// History keeps the shell's command history and mirrors it into the line
// editor so arrow keys recall earlier sessions.
type History struct {
	commands []string
	file     string
}

func newHistory(file string) (*History, error) {
	h := &History{
		commands: make([]string, 0, maxHistorySize),
		file:     file,
	}
	if file == "" {
		return h, nil
	}

	if err := h.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return h, nil
}

func (h *History) load() error {
	f, err := os.Open(h.file)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			h.commands = append(h.commands, line)
		}
	}
	h.trim()
	return scanner.Err()
}

// attach replays the loaded history into the editor.
func (h *History) attach(line *liner.State) {
	for _, cmd := range h.commands {
		line.AppendHistory(cmd)
	}
}

func (h *History) add(cmd string) bool {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return false
	}

	// Don't add duplicates of the last command
	if len(h.commands) > 0 && h.commands[len(h.commands)-1] == cmd {
		return false
	}

	h.commands = append(h.commands, cmd)
	h.trim()
	return true
}

func (h *History) trim() {
	if len(h.commands) > maxHistorySize {
		h.commands = h.commands[len(h.commands)-maxHistorySize:]
	}
}

func (h *History) save() error {
	if h.file == "" {
		return nil
	}
	f, err := os.Create(h.file)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, cmd := range h.commands {
		if _, err := fmt.Fprintln(w, cmd); err != nil {
			return err
		}
	}
	return w.Flush()
}

func (h *History) list(n int) []string {
	if n <= 0 || n > len(h.commands) {
		n = len(h.commands)
	}

	start := len(h.commands) - n
	return h.commands[start:]
}
