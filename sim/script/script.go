// Package script parses operation scripts (meta-data files) into a sim.OperationCatalog.
//
// A script is framed by the lines "Start Program Meta-Data Code:" and
// "End Program Meta-Data Code.". Between them, entries of the form L(action)N are
// separated by ';' and the last entry ends with '.'. Any malformed entry aborts the
// whole parse; no partial catalog is produced.
package script

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/parsly"

	"github.com/procsim/procsim/sim"
)

const (
	startMarker = "Start Program Meta-Data Code:"
	endMarker   = "End Program Meta-Data Code."
)

var (
	// ErrMalformedEntry reports an entry that is not L(action)N with allowed tokens.
	ErrMalformedEntry = errors.New("malformed script entry")
	// ErrUnbalancedBoundary reports A(start)/A(end) markers that do not pair up.
	ErrUnbalancedBoundary = errors.New("unbalanced application boundary")
	// ErrMissingMarker reports a script without its start or end framing line.
	ErrMissingMarker = errors.New("missing script marker")
)

// validActions is the action allow-list. Letters are checked via sim.KindFromLetter.
var validActions = map[string]bool{
	"access": true, "allocate": true, "end": true,
	"hard drive": true, "keyboard": true, "printer": true,
	"monitor": true, "run": true, "start": true,
}

// IsValidAction reports whether action is in the allow-list.
func IsValidAction(action string) bool {
	return validActions[action]
}

// Load reads and parses a script from an afs URL.
func Load(ctx context.Context, fs afs.Service, url string) (*sim.OperationCatalog, error) {
	if fs == nil {
		fs = afs.New()
	}
	data, err := fs.DownloadWithURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("reading script %s: %w", url, err)
	}
	catalog, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing script %s: %w", url, err)
	}
	return catalog, nil
}

// Parse converts script text into a catalog.
func Parse(data []byte) (*sim.OperationCatalog, error) {
	body, err := extractBody(data)
	if err != nil {
		return nil, err
	}

	var ops []sim.Operation
	for _, raw := range strings.Split(body, ";") {
		entry := strings.TrimSpace(raw)
		entry = strings.TrimSpace(strings.TrimSuffix(entry, "."))
		if entry == "" {
			continue
		}
		op, err := ParseEntry(entry)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}

	if err := checkBoundaries(ops); err != nil {
		return nil, err
	}
	return sim.NewOperationCatalog(ops), nil
}

// ParseEntry parses a single L(action)N token.
func ParseEntry(entry string) (sim.Operation, error) {
	cursor := parsly.NewCursor("", []byte(entry), 0)
	malformed := func(reason string) error {
		return fmt.Errorf("%q: %s: %w", entry, reason, ErrMalformedEntry)
	}

	matched := cursor.MatchOne(letterToken)
	if matched.Code != letterCode {
		return sim.Operation{}, malformed("expected component letter")
	}
	letter := matched.Text(cursor)
	kind, ok := sim.KindFromLetter(letter[0])
	if !ok {
		return sim.Operation{}, malformed(fmt.Sprintf("unknown component letter %q", letter))
	}

	if cursor.MatchOne(openParenToken).Code != openParenCode {
		return sim.Operation{}, malformed("expected '('")
	}
	action := ""
	if matched = cursor.MatchOne(actionToken); matched.Code == actionCode {
		action = matched.Text(cursor)
	}
	if cursor.MatchOne(closeParenToken).Code != closeParenCode {
		return sim.Operation{}, malformed("expected ')'")
	}
	if !validActions[action] {
		return sim.Operation{}, malformed(fmt.Sprintf("unknown action %q", action))
	}

	matched = cursor.MatchAfterOptional(whitespaceToken, cyclesToken)
	if matched.Code != cyclesCode {
		return sim.Operation{}, malformed("expected cycle count")
	}
	cycles, err := strconv.Atoi(matched.Text(cursor))
	if err != nil {
		return sim.Operation{}, malformed(err.Error())
	}
	if cycles > sim.MaxCycles {
		return sim.Operation{}, malformed(fmt.Sprintf("cycle count exceeds %d", sim.MaxCycles))
	}
	if cursor.Pos < cursor.InputSize {
		return sim.Operation{}, malformed(fmt.Sprintf("trailing %q", cursor.Input[cursor.Pos:]))
	}
	return sim.Operation{Kind: kind, Action: action, Cycles: cycles}, nil
}

func extractBody(data []byte) (string, error) {
	var body strings.Builder
	started, ended := false, false
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !started {
			started = line == startMarker
			continue
		}
		if line == endMarker {
			ended = true
			break
		}
		body.WriteString(line)
		body.WriteString(" ")
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	if !started {
		return "", fmt.Errorf("%q not found: %w", startMarker, ErrMissingMarker)
	}
	if !ended {
		return "", fmt.Errorf("%q not found: %w", endMarker, ErrMissingMarker)
	}
	return body.String(), nil
}

// checkBoundaries requires every A(start) to be closed by an A(end) before the next
// A(start), with no A(end) outside an application.
func checkBoundaries(ops []sim.Operation) error {
	open := -1
	for i, op := range ops {
		if op.Kind != sim.KindAppBoundary {
			continue
		}
		switch op.Action {
		case sim.ActionStart:
			if open >= 0 {
				return fmt.Errorf("entry %d: A(start) inside application opened at entry %d: %w", i, open, ErrUnbalancedBoundary)
			}
			open = i
		case sim.ActionEnd:
			if open < 0 {
				return fmt.Errorf("entry %d: A(end) without A(start): %w", i, ErrUnbalancedBoundary)
			}
			open = -1
		default:
			return fmt.Errorf("entry %d: A(%s): %w", i, op.Action, ErrMalformedEntry)
		}
	}
	if open >= 0 {
		return fmt.Errorf("application opened at entry %d never ends: %w", open, ErrUnbalancedBoundary)
	}
	return nil
}
