// Package discord adapts the report lifecycle to Discord interactions via
// discordgo.
package discord

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MatchKind selects how a rule matches a component custom id
type MatchKind int

const (
	// MatchExact matches the whole custom id
	MatchExact MatchKind = iota
	// MatchPrefix matches a leading fragment; the remainder is the capture
	MatchPrefix
	// MatchPattern matches a regular expression; submatches are the captures
	MatchPattern
)

// Rule is one entry of the dispatch table
type Rule struct {
	kind  MatchKind
	value string
	re    *regexp.Regexp
}

// Exact builds a rule matching the custom id verbatim
func Exact(id string) Rule {
	return Rule{kind: MatchExact, value: id}
}

// Prefix builds a rule matching custom ids starting with p; the part after
// the prefix becomes the single capture
func Prefix(p string) Rule {
	return Rule{kind: MatchPrefix, value: p}
}

// Pattern builds a rule from an anchored regular expression; capture groups
// become the captures. Panics on an invalid expression, which is a
// programming error in the dispatch table.
func Pattern(expr string) Rule {
	return Rule{kind: MatchPattern, value: expr, re: regexp.MustCompile(expr)}
}

// Match tests the rule against a custom id and returns its captures
func (r Rule) Match(customID string) ([]string, bool) {
	switch r.kind {
	case MatchExact:
		if customID == r.value {
			return nil, true
		}
	case MatchPrefix:
		if strings.HasPrefix(customID, r.value) {
			return []string{customID[len(r.value):]}, true
		}
	case MatchPattern:
		if m := r.re.FindStringSubmatch(customID); m != nil {
			return m[1:], true
		}
	}
	return nil, false
}

// String describes the rule for logs
func (r Rule) String() string {
	switch r.kind {
	case MatchPrefix:
		return fmt.Sprintf("prefix:%s", r.value)
	case MatchPattern:
		return fmt.Sprintf("pattern:%s", r.value)
	default:
		return fmt.Sprintf("exact:%s", r.value)
	}
}

// HandlerFunc processes a matched interaction. Captures come from the rule:
// the remainder for prefixes, submatches for patterns.
type HandlerFunc func(ctx context.Context, ic *Interaction, captures []string) error

type route struct {
	name    string
	rule    Rule
	handler HandlerFunc
}

// Dispatcher routes component and modal interactions by custom id through
// an ordered rule table; the first matching rule wins.
type Dispatcher struct {
	mu     sync.RWMutex
	routes []route
	logger *zap.Logger
}

// NewDispatcher creates an empty dispatcher
func NewDispatcher(logger *zap.Logger) *Dispatcher {
	return &Dispatcher{logger: logger}
}

// Register appends a named route to the dispatch table
func (d *Dispatcher) Register(name string, rule Rule, handler HandlerFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.routes = append(d.routes, route{name: name, rule: rule, handler: handler})
	d.logger.Info("Interaction route registered",
		zap.String("route", name),
		zap.String("rule", rule.String()))
}

// Dispatch routes the custom id to the first matching handler. It reports
// whether any route matched; handler errors are returned to the caller for
// user-facing acknowledgment.
func (d *Dispatcher) Dispatch(ctx context.Context, customID string, ic *Interaction) (bool, error) {
	d.mu.RLock()
	routes := d.routes
	d.mu.RUnlock()

	for _, rt := range routes {
		captures, ok := rt.rule.Match(customID)
		if !ok {
			continue
		}

		correlationID := uuid.NewString()
		d.logger.Debug("Dispatching interaction",
			zap.String("route", rt.name),
			zap.String("custom_id", customID),
			zap.String("correlation_id", correlationID))

		err := d.safeExecute(ctx, ic, rt, captures)
		if err != nil {
			d.logger.Error("Interaction handler failed",
				zap.String("route", rt.name),
				zap.String("custom_id", customID),
				zap.String("correlation_id", correlationID),
				zap.Error(err))
		}
		return true, err
	}

	return false, nil
}

// safeExecute runs a handler with panic recovery
func (d *Dispatcher) safeExecute(ctx context.Context, ic *Interaction, rt route, captures []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler %s panic: %v", rt.name, r)
		}
	}()

	return rt.handler(ctx, ic, captures)
}
