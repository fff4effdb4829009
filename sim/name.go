package sim

import (
	"strconv"
	"strings"
)

// A Name is a hierarchical name made of dot-separated tokens. Each token
// carries an element name and, optionally, integer indices in square
// brackets, as in "distribution.unloader[2]".
type Name struct {
	Tokens []NameToken
}

// NameToken is one dot-separated token of a Name.
type NameToken struct {
	ElemName string
	Index    []int
}

// ParseName parses a name string into a Name.
func ParseName(sname string) Name {
	tokens := strings.Split(sname, ".")
	name := Name{Tokens: make([]NameToken, len(tokens))}
	for i, token := range tokens {
		name.Tokens[i] = parseNameToken(token)
	}
	return name
}

func parseNameToken(token string) NameToken {
	bracketsMustMatch(token)

	ts := strings.Split(token, "[")
	elemName := ts[0]

	indices := make([]int, len(ts)-1)
	for i := 1; i < len(ts); i++ {
		index, err := strconv.Atoi(ts[i][0 : len(ts[i])-1])
		if err != nil {
			panic("name index must be an integer")
		}

		indices[i-1] = index
	}

	return NameToken{ElemName: elemName, Index: indices}
}

func bracketsMustMatch(token string) {
	open := 0
	for _, c := range token {
		switch c {
		case '[':
			open++
		case ']':
			open--
			if open < 0 {
				panic("name brackets must match")
			}
		}
	}

	if open != 0 {
		panic("name brackets must match")
	}
}

// NameMustBeValid panics if the name does not follow the naming convention.
// A valid name is a series of dot-separated tokens, such as
// "clinic.patient_3" or "distribution.unloader[2]". Each token is a
// snake_case element name that starts with a lowercase letter, optionally
// followed by integer indices in square brackets.
func NameMustBeValid(name string) {
	defer func() {
		if r := recover(); r != nil {
			panic("name " + strconv.Quote(name) + " is not valid: " +
				r.(string))
		}
	}()

	n := ParseName(name)
	for _, token := range n.Tokens {
		tokenMustBeValid(token)
	}
}

func tokenMustBeValid(token NameToken) {
	if token.ElemName == "" {
		panic("name element must not be empty")
	}

	for i, c := range token.ElemName {
		switch {
		case c >= 'a' && c <= 'z':
		case i > 0 && (c == '_' || c >= '0' && c <= '9'):
		default:
			panic("name element must be snake_case " +
				"starting with a lowercase letter")
		}
	}
}

// BuildName joins a parent name and an element name with a dot.
func BuildName(parentName, elemName string) string {
	if parentName == "" {
		return elemName
	}

	return parentName + "." + elemName
}

// BuildNameWithIndex builds a name for the index-th element of a series,
// such as "distribution.unloader[2]".
func BuildNameWithIndex(parentName, elemName string, index int) string {
	return BuildName(parentName, elemName+"["+strconv.Itoa(index)+"]")
}
