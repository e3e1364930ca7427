package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/Natatashkin/todo/internal/service"
	"github.com/Natatashkin/todo/internal/view"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Num int    // 1-based number in the unfiltered display order, 0 if ID is set
	ID  string // task id given as @<id>
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses the task reference in the first argument.
//
// Parsing rules:
//  1. All digits → task number as printed by `todo list`
//  2. @<id> → task id
//  3. Otherwise → error: invalid task reference: <ref>
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}

	arg := args[0]

	if isAllDigits(arg) {
		num, err := strconv.Atoi(arg)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
		}
		return TaskRef{Num: num}, nil
	}

	if id, ok := strings.CutPrefix(arg, "@"); ok {
		if strings.TrimSpace(id) == "" {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
		}
		return TaskRef{ID: id}, nil
	}

	return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
}

// Resolve finds the referenced task in the collection.
func (r TaskRef) Resolve(tasks []service.Task) (service.Task, error) {
	if r.ID != "" {
		for _, t := range tasks {
			if t.ID == r.ID {
				return t, nil
			}
		}
		return service.Task{}, fmt.Errorf("task not found: @%s", r.ID)
	}

	ordered := view.ComposeDisplayOrder(tasks)
	if r.Num < 1 || r.Num > len(ordered) {
		return service.Task{}, fmt.Errorf("task number out of range: %d", r.Num)
	}
	return ordered[r.Num-1], nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// resolveTask parses and resolves the reference in args against the
// session's collection.
func resolveTask(sess *session, args []string) (service.Task, error) {
	ref, err := ParseTaskRef(args)
	if err != nil {
		return service.Task{}, err
	}
	return ref.Resolve(sess.store.Tasks())
}
