// matcher.go - array-aware predicate evaluation against stored documents (component C)

package doclite

// Matches evaluates a compiled predicate against doc. It never returns an
// error: every atom the compiler can produce has a total evaluation over
// (Value, Missing) per §4.3, so a well-formed predicate cannot fail at
// match time.
func Matches(doc *Document, p Predicate) bool {
	switch pp := p.(type) {
	case And:
		for _, c := range pp.Children {
			if !Matches(doc, c) {
				return false
			}
		}
		return true
	case Or:
		if len(pp.Children) == 0 {
			return true
		}
		for _, c := range pp.Children {
			if Matches(doc, c) {
				return true
			}
		}
		return false
	case Not:
		return !Matches(doc, pp.Child)
	case FieldPredicate:
		x, found := Resolve(doc, pp.Path)
		if !found {
			x = Missing
		}
		return matchAtom(x, found, pp.Atom)
	default:
		return false
	}
}

func matchAtom(x Value, found bool, atom Atom) bool {
	switch a := atom.(type) {
	case EqualOrContains:
		return equalOrContains(x, found, a.V)
	case ArrayEqualExact:
		if !found || !x.IsArray() {
			return false
		}
		return Equals(x, Array(a.Arr))
	case In:
		for _, w := range a.Values {
			if equalOrContains(x, found, w) {
				return true
			}
		}
		return false
	case All:
		if !found || !x.IsArray() {
			return false
		}
		for _, w := range a.Values {
			if !arrayContains(x, w) {
				return false
			}
		}
		return true
	case Exists:
		return found == a.Want
	case CompareAtom:
		return matchCompare(x, found, a)
	case Regex:
		// Regex matching is out of scope (§1); recognized but never
		// matches so a query using it degrades to "no results" instead
		// of a compile error.
		return false
	case notWrapper:
		return !matchAtom(x, found, a.Inner)
	default:
		return false
	}
}

// equalOrContains implements the single rule shared by EqualOrContains
// and In: direct equality, or - if x is an Array and w is not - element
// containment (§4.3). Missing only satisfies a Null comparand (§4.3,
// §9's open question on EqualOrContains(Null) against a missing field).
func equalOrContains(x Value, found bool, w Value) bool {
	if !found {
		return w.IsNull()
	}
	if Equals(x, w) {
		return true
	}
	if w.IsArray() {
		return false
	}
	return arrayContains(x, w)
}

func arrayContains(x Value, w Value) bool {
	if !x.IsArray() {
		return false
	}
	for _, e := range x.AsArray() {
		if Equals(e, w) {
			return true
		}
	}
	return false
}

func matchCompare(x Value, found bool, a CompareAtom) bool {
	if !found {
		return false
	}
	test := func(v Value) bool {
		switch a.Op {
		case OpGT:
			return Compare(v, a.V) == Greater
		case OpGTE:
			o := Compare(v, a.V)
			return o == Greater || o == Equal
		case OpLT:
			return Compare(v, a.V) == Less
		case OpLTE:
			o := Compare(v, a.V)
			return o == Less || o == Equal
		default:
			return false
		}
	}
	if x.IsArray() {
		for _, e := range x.AsArray() {
			if test(e) {
				return true
			}
		}
		return false
	}
	return test(x)
}
