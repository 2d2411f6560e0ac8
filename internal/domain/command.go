package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// CommandKind tags the parsed command shape.
type CommandKind int

const (
	CommandAdd CommandKind = iota
	CommandNext
	CommandToday
	CommandList
	CommandDone
	CommandSnooze
	CommandDelete
)

// Command is the validated form of an incoming text command. Only the
// fields relevant to the kind are set.
type Command struct {
	Text  string      // Add: free text handed to the extractor
	Kind  CommandKind //
	ID    int         // Done, Snooze, Delete
	Hours int         // Snooze
}

// ErrBadCommand marks a recognized verb with malformed arguments.
var ErrBadCommand = errors.New("malformed command")

// ParseCommand turns one line of incoming text into a Command. Text that
// does not start with a known verb is treated as an add, so plain
// "pay rent tomorrow" works the same as "add pay rent tomorrow".
func ParseCommand(input string) (Command, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Command{}, fmt.Errorf("%w: empty input", ErrBadCommand)
	}

	fields := strings.Fields(trimmed)
	verb := strings.ToLower(fields[0])
	args := fields[1:]

	switch verb {
	case "add":
		rest := strings.TrimSpace(trimmed[len(fields[0]):])
		if rest == "" {
			return Command{}, fmt.Errorf("%w: add needs text", ErrBadCommand)
		}
		return Command{Kind: CommandAdd, Text: rest}, nil
	case "next":
		return Command{Kind: CommandNext}, nil
	case "today":
		return Command{Kind: CommandToday}, nil
	case "list":
		return Command{Kind: CommandList}, nil
	case "done":
		id, err := singleID(args)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandDone, ID: id}, nil
	case "delete":
		id, err := singleID(args)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CommandDelete, ID: id}, nil
	case "snooze":
		if len(args) != 2 {
			return Command{}, fmt.Errorf("%w: snooze needs <id> <hours>", ErrBadCommand)
		}
		id, err := strconv.Atoi(args[0])
		if err != nil || id <= 0 {
			return Command{}, fmt.Errorf("%w: bad task id %q", ErrBadCommand, args[0])
		}
		hours, err := strconv.Atoi(args[1])
		if err != nil || hours == 0 {
			return Command{}, fmt.Errorf("%w: bad hours %q", ErrBadCommand, args[1])
		}
		return Command{Kind: CommandSnooze, ID: id, Hours: hours}, nil
	default:
		// Unrecognized verb: the whole line is task text.
		return Command{Kind: CommandAdd, Text: trimmed}, nil
	}
}

func singleID(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: expected exactly one task id", ErrBadCommand)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: bad task id %q", ErrBadCommand, args[0])
	}
	return id, nil
}
