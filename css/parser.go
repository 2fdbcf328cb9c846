// Package css parses stylesheets and inline style declarations just enough
// to answer visibility questions about snapshot elements.
package css

import (
	"bytes"
	"maps"
	"strconv"
	"strings"
	"unicode"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets into structured rules.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)
	p.parseRules(parser, sheet, "", false)
	return sheet
}

// ParseInline parses content of the style attribute.
func (p *Parser) ParseInline(style string) Declarations {
	decls := make(Declarations)
	if strings.TrimSpace(style) == "" {
		return decls
	}

	parser := css.NewParser(parse.NewInput(strings.NewReader(style)), true)
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && err.Error() != "EOF" {
				p.log.Debug("Inline style parse error", zap.String("style", style), zap.Error(err))
			}
			return decls
		case css.DeclarationGrammar:
			if values := parser.Values(); len(values) > 0 {
				decls[strings.ToLower(string(data))] = parsePropertyValue(values)
			}
		}
	}
}

// parseRules consumes rulesets until the end of input or, when nested, the
// end of the enclosing at-rule block.
func (p *Parser) parseRules(parser *css.Parser, sheet *Stylesheet, media string, nested bool) {
	var pending []string
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && err.Error() != "EOF" {
				p.log.Debug("CSS parse error", zap.Error(err))
			}
			return

		case css.EndAtRuleGrammar:
			if nested {
				return
			}

		case css.BeginAtRuleGrammar:
			atRule := strings.ToLower(string(data))
			switch atRule {
			case "@media", "@supports", "@document", "@layer":
				query := joinTokens(parser.Values())
				if media != "" {
					query = media + " and " + query
				}
				p.parseRules(parser, sheet, query, true)
			default:
				// @font-face, @keyframes, @page and friends do not describe elements
				p.skipAtRuleBlock(parser)
				p.log.Debug("Skipping @-rule", zap.String("rule", atRule))
			}

		case css.AtRuleGrammar:
			p.log.Debug("Skipping @-rule", zap.String("rule", string(data)))

		case css.QualifiedRuleGrammar:
			// selector followed by comma, the rest of the group comes with ruleset
			pending = append(pending, p.parseSelectors(data, parser.Values())...)

		case css.BeginRulesetGrammar:
			selectors := append(pending, p.parseSelectors(data, parser.Values())...)
			pending = nil
			props := p.parseDeclarations(parser)
			for _, selStr := range selectors {
				sel := p.parseSelector(selStr, sheet)
				sheet.Rules = append(sheet.Rules, Rule{
					Selector:   sel,
					Properties: maps.Clone(props),
					Media:      media,
				})
			}
		}
	}
}

// parseSelectors extracts selector strings from token data.
func (p *Parser) parseSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	// Split by comma for grouped selectors
	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// parseDeclarations parses property declarations until EndRulesetGrammar.
func (p *Parser) parseDeclarations(parser *css.Parser) map[string]Value {
	props := make(map[string]Value)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return props

		case css.DeclarationGrammar:
			if values := parser.Values(); len(values) > 0 {
				props[strings.ToLower(string(data))] = parsePropertyValue(values)
			}

		case css.CustomPropertyGrammar:
			continue
		}
	}
}

// parsePropertyValue converts CSS tokens to a Value.
func parsePropertyValue(tokens []css.Token) Value {
	tokens, important := stripImportant(tokens)
	if len(tokens) == 0 {
		return Value{Important: important}
	}

	val := Value{Raw: joinTokens(tokens), Important: important}

	if len(tokens) == 1 {
		t := tokens[0]
		switch t.TokenType {
		case css.DimensionToken:
			val.Value, val.Unit = parseDimension(string(t.Data))
		case css.PercentageToken:
			val.Value, _ = strconv.ParseFloat(strings.TrimSuffix(string(t.Data), "%"), 64)
			val.Unit = "%"
		case css.NumberToken:
			val.Value, _ = strconv.ParseFloat(string(t.Data), 64)
		case css.IdentToken:
			val.Keyword = strings.ToLower(string(t.Data))
		case css.StringToken:
			val.Keyword = unquote(string(t.Data))
		case css.HashToken:
			val.Keyword = string(t.Data)
		default:
			val.Keyword = val.Raw
		}
		return val
	}

	// Multi-value properties and functions - store as keyword with raw value
	val.Keyword = val.Raw
	return val
}

// stripImportant drops surrounding whitespace and trailing "!important".
func stripImportant(tokens []css.Token) ([]css.Token, bool) {
	tokens = trimWhitespace(tokens)
	n := len(tokens)
	if n < 2 {
		return tokens, false
	}
	last := tokens[n-1]
	if last.TokenType != css.IdentToken || !strings.EqualFold(string(last.Data), "important") {
		return tokens, false
	}
	rest := trimWhitespace(tokens[:n-1])
	if len(rest) == 0 || rest[len(rest)-1].TokenType != css.DelimToken || string(rest[len(rest)-1].Data) != "!" {
		return tokens, false
	}
	return trimWhitespace(rest[:len(rest)-1]), true
}

func trimWhitespace(tokens []css.Token) []css.Token {
	for len(tokens) > 0 && tokens[0].TokenType == css.WhitespaceToken {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && tokens[len(tokens)-1].TokenType == css.WhitespaceToken {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}

// joinTokens builds value text collapsing whitespace runs into single space.
func joinTokens(tokens []css.Token) string {
	var parts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			parts = append(parts, string(t.Data))
		} else if len(parts) > 0 {
			parts = append(parts, " ")
		}
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}

// parseDimension extracts numeric value and unit from dimension token.
func parseDimension(s string) (float64, string) {
	numEnd := 0
	for i, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' {
			numEnd = i + 1
		} else {
			break
		}
	}

	if numEnd == 0 {
		return 0, ""
	}

	num, _ := strconv.ParseFloat(s[:numEnd], 64)
	unit := strings.ToLower(s[numEnd:])
	return num, unit
}

// parseSelector parses a single compound selector like "div.panel.open[aria-expanded]".
func (p *Parser) parseSelector(selStr string, sheet *Stylesheet) Selector {
	selStr = strings.TrimSpace(selStr)
	sel := Selector{Raw: selStr}

	unsupported := func(what string) Selector {
		sheet.Warnings = append(sheet.Warnings, "unsupported "+what+" selector: "+selStr)
		p.log.Debug("Skipping selector", zap.String("kind", what), zap.String("selector", selStr))
		sel.Complex = true
		return sel
	}

	switch {
	case strings.ContainsAny(selStr, " \t\n+~>"):
		return unsupported("combinator")
	case strings.Contains(selStr, ":"):
		return unsupported("pseudo")
	case strings.Contains(selStr, "#"):
		return unsupported("id")
	case strings.Count(selStr, "[") > 1:
		return unsupported("attribute")
	}

	remaining := selStr
	if before, attr, found := strings.Cut(selStr, "["); found {
		remaining = before
		attr, _, _ = strings.Cut(attr, "]")
		if i := strings.IndexAny(attr, "=~|^$*"); i >= 0 {
			attr = attr[:i]
		}
		sel.Attr = strings.ToLower(strings.TrimSpace(attr))
	}

	element, classes, _ := strings.Cut(remaining, ".")
	sel.Element = strings.ToLower(element)
	if sel.Element == "*" {
		sel.Element = ""
	}
	if classes != "" {
		for c := range strings.SplitSeq(classes, ".") {
			if c != "" {
				sel.Classes = append(sel.Classes, c)
			}
		}
	}
	return sel
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
