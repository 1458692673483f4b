// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"regexp"
	"sort"
	"strings"

	"github.com/kelvinreed/codeimpact/pkg/sigparse"
)

var (
	namespaceRe = regexp.MustCompile(`\bnamespace\s+([A-Za-z_][\w.]*)\s*([{;])`)
	typeDeclRe  = regexp.MustCompile(`\b(class|interface|struct|enum)\s+([A-Za-z_]\w*)(?:\s*:\s*([^\n{]+?))?\s*(?:where\b[^{]*)?\{`)

	modifierWord = `(?:public|private|protected|internal|static|virtual|override|abstract|sealed|async|partial|extern|unsafe|readonly|new)`

	methodRe = regexp.MustCompile(`(?m)^[ \t]*((?:\[[^\]]*\]\s*)*)((?:` + modifierWord + `\s+)+)[\w<>\[\]\.,\? ]+?\s+([A-Za-z_]\w*)\s*(?:<[^>(){}]*>)?\s*\(([^()]*)\)`)
	ctorRe    = regexp.MustCompile(`(?m)^[ \t]*(?:\[[^\]]*\]\s*)*((?:` + modifierWord + `\s+)+)([A-Za-z_]\w*)\s*\(([^()]*)\)\s*(?::\s*(?:this|base)\s*\([^()]*\)\s*)?\{`)
	propRe    = regexp.MustCompile(`(?m)^[ \t]*(?:\[[^\]]*\]\s*)*((?:` + modifierWord + `\s+)+)[\w<>\[\]\.,\? ]+?\s+([A-Za-z_]\w*)\s*\{`)
	operatorRe = regexp.MustCompile(`(?:public|internal)\s+static\s+[\w<>\[\]\.,\? ]+?\s+operator\s*([+\-*/%=!<>&|^~]+|true|false)\s*\(([^()]*)\)`)

	// interfaceMemberRe matches the modifier-less member declarations used
	// inside interface bodies: "ReturnType Name(params);".
	interfaceMemberRe = regexp.MustCompile(`(?m)^[ \t]*[\w<>\[\]\.,\? ]+?\s+([A-Za-z_]\w*)\s*(?:<[^>(){}]*>)?\s*\(([^()]*)\)\s*;`)

	excludedMethodNames = map[string]bool{
		"if": true, "for": true, "foreach": true, "while": true, "switch": true,
		"catch": true, "using": true, "lock": true, "fixed": true, "return": true,
		"new": true, "typeof": true, "sizeof": true, "nameof": true, "when": true,
	}
)

// scanTypes extracts every type declaration and its member table from a
// single file's masked (comments/strings stripped) source text.
func scanTypes(filePath string, masked string, lineOf func(offset int) int) []*TypeSymbol {
	fileScopedNamespace := ""
	for _, m := range namespaceRe.FindAllStringSubmatchIndex(masked, -1) {
		if masked[m[4]:m[5]] == ";" {
			fileScopedNamespace = masked[m[2]:m[3]]
		}
	}

	var types []*TypeSymbol
	for _, m := range typeDeclRe.FindAllStringSubmatchIndex(masked, -1) {
		kind := masked[m[2]:m[3]]
		name := masked[m[4]:m[5]]
		var bases []string
		if m[6] >= 0 {
			for _, b := range strings.Split(masked[m[6]:m[7]], ",") {
				b = strings.TrimSpace(b)
				if b != "" {
					bases = append(bases, b)
				}
			}
		}
		bodyStart := m[1] - 1
		bodyEnd := matchBrace(masked, bodyStart)
		ns := namespaceAt(masked, m[0], fileScopedNamespace)

		ts := &TypeSymbol{
			Name:      name,
			Namespace: ns,
			Kind:      kind,
			BaseTypes: bases,
			File:      filePath,
			Line:      lineOf(m[0]),
		}
		if bodyEnd > bodyStart {
			body := masked[bodyStart+1 : bodyEnd]
			offset := bodyStart + 1
			ts.Members = scanMembers(filePath, name, ns, kind == "interface", body, offset, lineOf)
		}
		types = append(types, ts)
	}

	sort.Slice(types, func(i, j int) bool { return types[i].Line < types[j].Line })
	return types
}

// scanMembers extracts methods, constructors, properties, and operators
// from a type's body text. body is the text strictly between the type's
// braces; offset is body's starting byte position in the original masked
// text (for line lookups).
func scanMembers(filePath, typeName, namespace string, isInterface bool, body string, offset int, lineOf func(offset int) int) []*Symbol {
	var members []*Symbol
	claimed := make(map[int]bool) // byte offsets already attributed to a member

	for _, m := range operatorRe.FindAllStringSubmatchIndex(body, -1) {
		if claimed[m[0]] {
			continue
		}
		claimed[m[0]] = true
		params := sigparse.ParseParamList("(" + body[m[4]:m[5]] + ")")
		members = append(members, &Symbol{
			Name:           "operator" + body[m[2]:m[3]],
			ContainingType: typeName,
			Namespace:      namespace,
			Kind:           MemberOperator,
			Parameters:     params,
			IsStatic:       true,
			File:           filePath,
			Line:           lineOf(offset + m[0]),
			Body:           captureBody(body, m[1]),
		})
	}

	for _, m := range ctorRe.FindAllStringSubmatchIndex(body, -1) {
		if claimed[m[0]] {
			continue
		}
		name := body[m[4]:m[5]]
		if name != typeName {
			continue
		}
		claimed[m[0]] = true
		mods := body[m[2]:m[3]]
		params := sigparse.ParseParamList("(" + body[m[6]:m[7]] + ")")
		bodyEndCtor := matchBrace(body, m[1]-1)
		ctorBody := ""
		if bodyEndCtor > m[1]-1 {
			ctorBody = body[m[1]:bodyEndCtor]
		}
		members = append(members, &Symbol{
			Name:           typeName,
			ContainingType: typeName,
			Namespace:      namespace,
			Kind:           MemberConstructor,
			Body:           ctorBody,
			Parameters:     params,
			IsStatic:       strings.Contains(mods, "static"),
			File:           filePath,
			Line:           lineOf(offset + m[0]),
		})
	}

	for _, m := range methodRe.FindAllStringSubmatchIndex(body, -1) {
		if claimed[m[0]] {
			continue
		}
		name := body[m[6]:m[7]]
		if excludedMethodNames[name] || name == typeName {
			continue
		}
		claimed[m[0]] = true
		attrs := body[m[2]:m[3]]
		mods := body[m[4]:m[5]]
		rawParams := body[m[8]:m[9]]
		members = append(members, &Symbol{
			Name:              name,
			ContainingType:    typeName,
			Namespace:         namespace,
			Kind:              MemberMethod,
			Attributes:        attrs,
			Body:              captureBody(body, m[1]),
			Parameters:        sigparse.ParseParamList("(" + rawParams + ")"),
			IsPublic:          strings.Contains(mods, "public"),
			IsStatic:          strings.Contains(mods, "static"),
			IsVirtual:         strings.Contains(mods, "virtual"),
			IsAbstract:        strings.Contains(mods, "abstract"),
			IsOverride:        strings.Contains(mods, "override"),
			IsExtension:       strings.Contains(mods, "static") && strings.HasPrefix(strings.TrimSpace(rawParams), "this "),
			IsInterfaceMember: isInterface,
			File:              filePath,
			Line:              lineOf(offset + m[0]),
		})
	}

	if isInterface {
		for _, m := range interfaceMemberRe.FindAllStringSubmatchIndex(body, -1) {
			if claimed[m[0]] {
				continue
			}
			name := body[m[2]:m[3]]
			if excludedMethodNames[name] || name == typeName {
				continue
			}
			claimed[m[0]] = true
			members = append(members, &Symbol{
				Name:              name,
				ContainingType:    typeName,
				Namespace:         namespace,
				Kind:              MemberMethod,
				Parameters:        sigparse.ParseParamList("(" + body[m[4]:m[5]] + ")"),
				IsAbstract:        true,
				IsPublic:          true,
				IsInterfaceMember: true,
				File:              filePath,
				Line:              lineOf(offset + m[0]),
			})
		}
	}

	for _, m := range propRe.FindAllStringSubmatchIndex(body, -1) {
		if claimed[m[0]] {
			continue
		}
		name := body[m[4]:m[5]]
		if excludedMethodNames[name] {
			continue
		}
		braceStart := m[1] - 1
		braceEnd := matchBrace(body, braceStart)
		if braceEnd <= braceStart {
			continue
		}
		claimed[m[0]] = true
		accessorBody := body[braceStart+1 : braceEnd]
		mods := body[m[2]:m[3]]
		isStatic := strings.Contains(mods, "static")

		if hasWord(accessorBody, "get") {
			members = append(members, &Symbol{
				Name:           "get_" + name,
				ContainingType: typeName,
				Namespace:      namespace,
				Kind:           MemberPropertyGetter,
				IsStatic:       isStatic,
				IsVirtual:      strings.Contains(mods, "virtual"),
				IsOverride:     strings.Contains(mods, "override"),
				IsAbstract:        strings.Contains(mods, "abstract"),
				IsInterfaceMember: isInterface,
				File:              filePath,
				Line:              lineOf(offset + m[0]),
			})
		}
		if hasWord(accessorBody, "set") {
			members = append(members, &Symbol{
				Name:              "set_" + name,
				ContainingType:    typeName,
				Namespace:         namespace,
				Kind:              MemberPropertySetter,
				Parameters:        []sigparse.Param{{Name: "value", Type: "object"}},
				IsStatic:          isStatic,
				IsVirtual:         strings.Contains(mods, "virtual"),
				IsOverride:        strings.Contains(mods, "override"),
				IsAbstract:        strings.Contains(mods, "abstract"),
				IsInterfaceMember: isInterface,
				File:              filePath,
				Line:              lineOf(offset + m[0]),
			})
		}
	}

	sort.Slice(members, func(i, j int) bool { return members[i].Line < members[j].Line })
	return members
}

func hasWord(text, word string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], word)
		if i < 0 {
			return false
		}
		pos := idx + i
		before := byte(' ')
		if pos > 0 {
			before = text[pos-1]
		}
		after := byte(' ')
		if pos+len(word) < len(text) {
			after = text[pos+len(word)]
		}
		if !isIdentByte(before) && !isIdentByte(after) {
			return true
		}
		idx = pos + len(word)
		if idx >= len(text) {
			return false
		}
	}
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// captureBody finds the method body starting at or after pos: the next
// top-level '{' before any top-level ';' (which would mean an
// abstract/partial/expression-bodied member with no block body to walk).
func captureBody(text string, pos int) string {
	brace := nextTopLevelBrace(text, pos)
	if brace < 0 {
		return ""
	}
	end := matchBrace(text, brace)
	if end <= brace {
		return ""
	}
	return text[brace+1 : end]
}

// nextTopLevelBrace finds the next '{' at bracket depth 0, returning -1 if
// a top-level ';' is hit first (no block body) or neither appears.
func nextTopLevelBrace(text string, pos int) int {
	depth := 0
	for i := pos; i < len(text); i++ {
		switch text[i] {
		case '(', '[', '<':
			depth++
		case ')', ']', '>':
			if depth > 0 {
				depth--
			}
		case ';':
			if depth == 0 {
				return -1
			}
		case '{':
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// matchBrace returns the offset of the '}' matching the '{' at openPos, or
// -1 if unbalanced.
func matchBrace(text string, openPos int) int {
	if openPos < 0 || openPos >= len(text) || text[openPos] != '{' {
		return -1
	}
	depth := 0
	for i := openPos; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// namespaceAt returns the innermost namespace block containing pos, or the
// file-scoped namespace if none wraps it.
func namespaceAt(text string, pos int, fileScoped string) string {
	best := ""
	bestSpan := -1
	for _, m := range namespaceRe.FindAllStringSubmatchIndex(text, -1) {
		if masked := text[m[4]:m[5]]; masked != "{" {
			continue
		}
		start := m[4]
		end := matchBrace(text, start)
		if end < 0 {
			continue
		}
		if start < pos && pos < end {
			span := end - start
			if bestSpan == -1 || span < bestSpan {
				best, bestSpan = text[m[2]:m[3]], span
			}
		}
	}
	if best == "" {
		return fileScoped
	}
	return best
}
