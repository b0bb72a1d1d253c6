package grammar

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// LoadProductions parses the zlang-rules.lis format: one production per
// non-empty line, "(n) N -> sym1 sym2 ...", one-indexed. The returned slice
// is zero-indexed internally (LoadProductions[i] is rule i+1 from the file);
// ParseTable rule references are translated accordingly wherever they are
// used.
func LoadProductions(r io.Reader) ([]Production, error) {
	var rules []Production
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		closeParen := strings.Index(line, ")")
		if !strings.HasPrefix(line, "(") || closeParen < 0 {
			return nil, fmt.Errorf("rules file line %d: expected \"(n) ...\": %q", lineNo, line)
		}
		idxStr := line[1:closeParen]
		idx, err := strconv.Atoi(strings.TrimSpace(idxStr))
		if err != nil {
			return nil, fmt.Errorf("rules file line %d: bad rule index %q: %w", lineNo, idxStr, err)
		}

		rest := strings.TrimSpace(line[closeParen+1:])
		arrow := strings.Index(rest, "->")
		if arrow < 0 {
			return nil, fmt.Errorf("rules file line %d: missing '->': %q", lineNo, line)
		}
		nonTerm := strings.TrimSpace(rest[:arrow])
		if nonTerm == "" {
			return nil, fmt.Errorf("rules file line %d: empty nonterminal", lineNo)
		}

		rhs := strings.Fields(rest[arrow+2:])
		if len(rhs) == 0 {
			return nil, fmt.Errorf("rules file line %d: empty right-hand side (use %q for an empty production)", lineNo, Lambda)
		}

		for idx > len(rules)+1 {
			rules = append(rules, Production{})
		}
		if idx != len(rules)+1 {
			return nil, fmt.Errorf("rules file line %d: out-of-order or duplicate rule index %d", lineNo, idx)
		}
		rules = append(rules, Production{NonTerminal: nonTerm, Symbols: rhs})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	return rules, nil
}
