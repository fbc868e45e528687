package structure

import (
	"github.com/dennwc/webidlstruct/ast"
	"github.com/dennwc/webidlstruct/parser"
)

// candidate is a name a scope may tag, in priority order.
type candidate struct {
	role Role
	id   *ast.Identifier
	used bool
}

// roles classifies the name tokens of one scope. A candidate tags the token
// its identifier was built from, so words inside extended attributes or
// repeated elsewhere in the scope are never tagged, and each candidate tags
// at most one token.
type roles []candidate

func (r roles) match(t parser.Token) (Role, *ast.Identifier) {
	for i := range r {
		if !r[i].used && r[i].id.Range.StartOffset == t.Start && r[i].id.Value == t.Text {
			r[i].used = true
			return r[i].role, r[i].id
		}
	}
	return RoleNone, nil
}

func definitionRoles(def ast.Definition) roles {
	name := func(id ast.Identifier) *ast.Identifier { return &id }
	switch d := def.(type) {
	case *ast.Interface:
		r := roles{{role: RoleOwnName, id: name(d.Identifier)}}
		if d.Inheritance != nil {
			r = append(r, candidate{role: RoleInheritance, id: d.Inheritance})
		}
		return r
	case *ast.Dictionary:
		r := roles{{role: RoleOwnName, id: name(d.Identifier)}}
		if d.Inheritance != nil {
			r = append(r, candidate{role: RoleInheritance, id: d.Inheritance})
		}
		return r
	case *ast.PartialInterface, *ast.PartialMixin, *ast.PartialDictionary, *ast.PartialNamespace:
		return roles{{role: RolePartialTarget, id: name(d.(ast.NamedDefinition).Name())}}
	case *ast.Includes:
		return roles{
			{role: RoleIncludesInterface, id: name(d.InterfaceName)},
			{role: RoleIncludesMixin, id: name(d.MixinName)},
		}
	case *ast.BrokenDefinition:
		return nil
	case ast.NamedDefinition:
		return roles{{role: RoleOwnName, id: name(d.Name())}}
	}
	return nil
}

// hasBody reports whether def is written with a braced body.
func hasBody(def ast.Definition) bool {
	switch def.(type) {
	case *ast.Typedef, *ast.Includes, *ast.CallbackFunction, *ast.BrokenDefinition:
		return false
	}
	return true
}

// memberScope is a member together with the name it may tag.
type memberScope struct {
	node ast.Node
	name *ast.Identifier
}

func memberScopes(def ast.Definition) []memberScope {
	var out []memberScope
	switch d := def.(type) {
	case ast.MemberHolder:
		for _, m := range d.MemberList() {
			s := memberScope{node: m}
			if named, ok := m.(ast.NamedMember); ok {
				s.name = named.MemberName()
			}
			out = append(out, s)
		}
	case *ast.Dictionary:
		out = dictionaryScopes(d.Members)
	case *ast.PartialDictionary:
		out = dictionaryScopes(d.Members)
	}
	return out
}

func dictionaryScopes(members []*ast.DictionaryMember) []memberScope {
	out := make([]memberScope, 0, len(members))
	for _, m := range members {
		out = append(out, memberScope{node: m, name: &m.Name})
	}
	return out
}

// definition builds the node of one top-level definition. Tokens before the
// definition's start stay at the current level.
func (b *builder) definition(def ast.Definition) {
	rng := def.Span()
	for !b.eof() && b.offset() < rng.StartOffset {
		b.drainErrors()
		if !b.eof() && b.offset() < rng.StartOffset {
			b.advance()
		}
	}

	n := b.open(KindDefinition)
	n.Definition = def

	var (
		candidates = definitionRoles(def)
		members    = memberScopes(def)
		withBody   = hasBody(def)
		body       *Node
		closed     bool
		braces     int // nesting inside the body
	)
	for !b.eof() && b.offset() < rng.EndOffset {
		b.drainErrors()
		if b.eof() || b.offset() >= rng.EndOffset {
			break
		}
		t := b.tokens[b.pos]

		if body != nil && braces == 0 {
			for len(members) > 0 && members[0].node.Span().EndOffset <= t.Start {
				members = members[1:]
			}
			if len(members) > 0 && members[0].node.Span().Contains(t.Start) && !t.IsTrivia() {
				b.member(members[0])
				members = members[1:]
				continue
			}
		}

		switch {
		case t.IsTrivia():
		case t.IsWord():
			if role, id := candidates.match(t); role != RoleNone {
				b.name(role, id, def, nil)
				continue
			}
		case t.Kind == parser.TokenLeftBrace:
			if withBody && body == nil && !closed {
				body = b.open(KindBody)
				body.Definition = def
				b.advance()
				continue
			}
			braces++
		case t.Kind == parser.TokenRightBrace:
			if braces > 0 {
				braces--
				break
			}
			if body != nil {
				b.advance()
				b.close()
				body, closed = nil, true
				continue
			}
		}
		b.advance()
	}

	if body != nil {
		b.log.Debug().Int("offset", body.Children[0].Range.StartOffset).Msg("closing unterminated body")
		b.close()
	}
	b.close()
}

// member builds the node of one body member, tagging its name.
func (b *builder) member(m memberScope) {
	n := b.open(KindMember)
	n.Member = m.node

	var candidates roles
	if m.name != nil {
		candidates = roles{{role: RoleMemberName, id: m.name}}
	}

	end := m.node.Span().EndOffset
	for !b.eof() && b.offset() < end {
		b.drainErrors()
		if b.eof() || b.offset() >= end {
			break
		}
		if t := b.tokens[b.pos]; t.IsWord() {
			if role, id := candidates.match(t); role != RoleNone {
				b.name(role, id, nil, m.node)
				continue
			}
		}
		b.advance()
	}
	b.close()
}

// name wraps the current token in a name node.
func (b *builder) name(role Role, id *ast.Identifier, def ast.Definition, member ast.Node) {
	n := b.open(KindName)
	n.Role = role
	n.Identifier = id
	n.Definition = def
	n.Member = member
	b.advance()
	b.close()
}
