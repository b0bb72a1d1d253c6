package grammar

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ActionKind distinguishes the three parse actions the driver can take,
// plus the implicit "no entry" error case. zlang has no Accept action of
// its own, since ReduceTerminate both reduces and ends the parse in one
// step.
type ActionKind int

const (
	ActionError ActionKind = iota
	ActionShift
	ActionReduce
	ActionReduceTerminate
)

func (k ActionKind) String() string {
	switch k {
	case ActionShift:
		return "shift"
	case ActionReduce:
		return "reduce"
	case ActionReduceTerminate:
		return "reduce-terminate"
	default:
		return "error"
	}
}

// Action is a single ACTION-table cell.
type Action struct {
	Kind ActionKind

	// State is the destination state for ActionShift. GOTO-table
	// destinations are not Actions; Table.Goto returns them as a plain int.
	State int

	// Rule is the 1-indexed production index for ActionReduce and
	// ActionReduceTerminate.
	Rule int
}

// Table is the parsed ACTION/GOTO table: a grid indexed by (state, symbol).
// Shift/Reduce/ReduceTerminate live in the same grid as GOTO entries — the
// table file does not distinguish terminal columns from nonterminal
// columns, it only distinguishes them by what each cell contains (a
// shift/reduce action only ever appears under a terminal column; a bare
// state number only ever appears under a nonterminal column).
type Table struct {
	symbols  []string
	symIndex map[string]int
	rows     [][]cell
}

type cellKind int

const (
	cellEmpty cellKind = iota
	cellAction
	cellGoto
)

type cell struct {
	kind cellKind
	act  Action
	goTo int
}

// LoadTable parses the zlang.lr format: a comma-separated header
// ",sym1,sym2,..." followed by one row per state, "state,cell1,cell2,...".
func LoadTable(r io.Reader) (*Table, error) {
	sc := bufio.NewScanner(r)

	if !sc.Scan() {
		return nil, fmt.Errorf("table file: missing header line")
	}
	header := strings.Split(sc.Text(), ",")
	if len(header) < 2 || header[0] != "" {
		return nil, fmt.Errorf("table file: header must start with an empty column: %q", sc.Text())
	}
	symbols := header[1:]

	t := &Table{
		symbols:  symbols,
		symIndex: make(map[string]int, len(symbols)),
	}
	for i, s := range symbols {
		t.symIndex[s] = i
	}

	lineNo := 1
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != len(symbols)+1 {
			return nil, fmt.Errorf("table file line %d: expected %d columns, got %d", lineNo, len(symbols)+1, len(fields))
		}
		stateNum, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, fmt.Errorf("table file line %d: bad state number %q: %w", lineNo, fields[0], err)
		}

		for len(t.rows) <= stateNum {
			t.rows = append(t.rows, make([]cell, len(symbols)))
		}

		for i, raw := range fields[1:] {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			c, err := parseCell(raw)
			if err != nil {
				return nil, fmt.Errorf("table file line %d, column %q: %w", lineNo, symbols[i], err)
			}
			t.rows[stateNum][i] = c
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading table file: %w", err)
	}

	return t, nil
}

func parseCell(raw string) (cell, error) {
	// A bare integer is a GOTO-table entry (next state on a nonterminal).
	if n, err := strconv.Atoi(raw); err == nil {
		return cell{kind: cellGoto, goTo: n}, nil
	}

	dash := strings.Index(raw, "-")
	if dash < 0 {
		return cell{}, fmt.Errorf("unrecognized cell %q", raw)
	}
	tag, numStr := raw[:dash], raw[dash+1:]
	n, err := strconv.Atoi(numStr)
	if err != nil {
		return cell{}, fmt.Errorf("unrecognized cell %q: %w", raw, err)
	}

	switch tag {
	case "sh":
		return cell{kind: cellAction, act: Action{Kind: ActionShift, State: n}}, nil
	case "r":
		return cell{kind: cellAction, act: Action{Kind: ActionReduce, Rule: n}}, nil
	case "R":
		return cell{kind: cellAction, act: Action{Kind: ActionReduceTerminate, Rule: n}}, nil
	default:
		return cell{}, fmt.Errorf("unrecognized cell tag %q in %q", tag, raw)
	}
}

// Action returns the ACTION-table entry for (state, symbol). A missing
// entry (including a symbol or state outside the table's range) is reported
// as ActionError, which the driver treats as a fatal syntax error.
func (t *Table) Action(state int, symbol string) Action {
	c, ok := t.lookup(state, symbol)
	if !ok || c.kind != cellAction {
		return Action{Kind: ActionError}
	}
	return c.act
}

// Goto returns the GOTO-table destination state for (state, nonterminal).
// ok is false if there is no such transition.
func (t *Table) Goto(state int, symbol string) (int, bool) {
	c, ok := t.lookup(state, symbol)
	if !ok || c.kind != cellGoto {
		return 0, false
	}
	return c.goTo, true
}

func (t *Table) lookup(state int, symbol string) (cell, bool) {
	idx, ok := t.symIndex[symbol]
	if !ok || state < 0 || state >= len(t.rows) {
		return cell{}, false
	}
	return t.rows[state][idx], true
}

// ExpectedTerminals returns every terminal symbol for which state has a
// non-error ACTION entry, used to build a "missing x, expected a or b"
// fatal syntax message.
func (t *Table) ExpectedTerminals(state int) []string {
	var expected []string
	if state < 0 || state >= len(t.rows) {
		return expected
	}
	for i, sym := range t.symbols {
		if !IsTerminal(sym) {
			continue
		}
		c := t.rows[state][i]
		if c.kind == cellAction {
			expected = append(expected, sym)
		}
	}
	return expected
}
