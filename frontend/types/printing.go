package types

import (
	"strconv"
	"strings"

	"github.com/benbjohnson/immutable"
)

// TypeString renders a type for diagnostics. Function types are
// parenthesized when they appear as another function's argument, so
// `(Int -> Int) -> Int` and `Int -> Int -> Int` stay distinct.
func TypeString(t Type) string {
	p := &typePrinter{}
	p.writeType(t, false)
	return p.sb.String()
}

// String renders the scheme as `forall t0, r0. body`, with the
// quantified variables renamed in order of first appearance so that
// equivalent schemes render identically. Free variables keep their ids.
func (s *Scheme) String() string {
	if s.IsMono() {
		return TypeString(s.Body)
	}
	p := &typePrinter{
		varNames: make(map[VarID]string, len(s.TypeVars)),
		rowNames: make(map[RowID]string, len(s.RowVars)),
	}
	quantified := p.nameQuantified(s)
	p.sb.WriteString("forall ")
	p.sb.WriteString(strings.Join(quantified, ", "))
	p.sb.WriteString(". ")
	p.writeType(s.Body, false)
	return p.sb.String()
}

type typePrinter struct {
	sb strings.Builder
	// renaming tables for quantified variables; nil outside scheme rendering
	varNames map[VarID]string
	rowNames map[RowID]string
}

// nameQuantified assigns t0, t1, ... and r0, r1, ... to the scheme's
// quantified variables in order of first appearance in the body, and
// returns the assigned names in that order.
func (p *typePrinter) nameQuantified(s *Scheme) []string {
	var names []string
	var walk func(t Type)
	walk = func(t Type) {
		switch t := t.(type) {
		case *Var:
			if containsVarID(s.TypeVars, t.ID) {
				if _, named := p.varNames[t.ID]; !named {
					name := "t" + strconv.Itoa(len(p.varNames))
					p.varNames[t.ID] = name
					names = append(names, name)
				}
			}
		case *RowVar:
			if containsRowID(s.RowVars, t.ID) {
				if _, named := p.rowNames[t.ID]; !named {
					name := "r" + strconv.Itoa(len(p.rowNames))
					p.rowNames[t.ID] = name
					names = append(names, name)
				}
			}
		case *Arrow:
			walk(t.Arg)
			walk(t.Return)
		case *Record:
			itr := t.Fields.Iterator()
			for !itr.Done() {
				_, fieldType, _ := itr.Next()
				walk(fieldType)
			}
		case *RecordRow:
			itr := t.Fields.Iterator()
			for !itr.Done() {
				_, fieldType, _ := itr.Next()
				walk(fieldType)
			}
			walk(&RowVar{ID: t.Rest})
		case *Generic:
			for _, arg := range t.Args {
				walk(arg)
			}
		case *Array:
			walk(t.Elem)
		case *Ref:
			walk(t.Elem)
		}
	}
	walk(s.Body)
	return names
}

func (p *typePrinter) varName(id VarID) string {
	if name, ok := p.varNames[id]; ok {
		return name
	}
	return "t" + strconv.FormatUint(uint64(id), 10)
}

func (p *typePrinter) rowName(id RowID) string {
	if name, ok := p.rowNames[id]; ok {
		return name
	}
	return "r" + strconv.FormatUint(uint64(id), 10)
}

// writeType renders t. argPos is true when t appears as the argument of
// an Arrow, which is the one position needing parentheses around arrows.
func (p *typePrinter) writeType(t Type, argPos bool) {
	switch t := t.(type) {
	case *Const:
		p.sb.WriteString(t.Name)
	case *Var:
		p.sb.WriteString(p.varName(t.ID))
	case *RowVar:
		p.sb.WriteString(p.rowName(t.ID))
	case *Arrow:
		if argPos {
			p.sb.WriteString("(")
		}
		p.writeType(t.Arg, true)
		p.sb.WriteString(" -> ")
		p.writeType(t.Return, false)
		if argPos {
			p.sb.WriteString(")")
		}
	case *Record:
		p.sb.WriteString("{")
		p.writeFields(t.Fields)
		p.sb.WriteString("}")
	case *RecordRow:
		p.sb.WriteString("{")
		p.writeFields(t.Fields)
		p.sb.WriteString(" | ")
		p.sb.WriteString(p.rowName(t.Rest))
		p.sb.WriteString("}")
	case *Generic:
		p.sb.WriteString(t.Name)
		for _, arg := range t.Args {
			p.sb.WriteString(" ")
			p.writeTypeArg(arg)
		}
	case *Array:
		p.sb.WriteString("[")
		p.writeType(t.Elem, false)
		p.sb.WriteString("; ")
		p.sb.WriteString(strconv.Itoa(t.Size))
		p.sb.WriteString("]")
	case *Ref:
		p.sb.WriteString("Ref ")
		p.writeTypeArg(t.Elem)
	}
}

func (p *typePrinter) writeFields(fields *immutable.SortedMap[string, Type]) {
	first := true
	itr := fields.Iterator()
	for !itr.Done() {
		name, fieldType, _ := itr.Next()
		if !first {
			p.sb.WriteString(", ")
		}
		first = false
		p.sb.WriteString(name)
		p.sb.WriteString(": ")
		p.writeType(fieldType, false)
	}
}

// writeTypeArg renders an argument of a Generic or Ref, parenthesizing
// anything that does not read as a single token, e.g. `Option (List Int)`.
func (p *typePrinter) writeTypeArg(t Type) {
	needsParens := false
	switch t := t.(type) {
	case *Arrow, *Ref:
		needsParens = true
	case *Generic:
		needsParens = len(t.Args) > 0
	}
	if needsParens {
		p.sb.WriteString("(")
		p.writeType(t, false)
		p.sb.WriteString(")")
		return
	}
	p.writeType(t, false)
}

func (t *Const) String() string     { return TypeString(t) }
func (t *Arrow) String() string     { return TypeString(t) }
func (t *Var) String() string       { return TypeString(t) }
func (t *RowVar) String() string    { return TypeString(t) }
func (t *Record) String() string    { return TypeString(t) }
func (t *RecordRow) String() string { return TypeString(t) }
func (t *Generic) String() string   { return TypeString(t) }
func (t *Array) String() string     { return TypeString(t) }
func (t *Ref) String() string       { return TypeString(t) }
