package lexer

// Each literal form has its own recognizer: a closed set of states and a
// transition function that returns the next state or the reject state.

type stringState int

const (
	strStart stringState = iota
	strInString
	strEnd
	strReject
)

func stepString(s stringState, ch rune) stringState {
	switch s {
	case strStart:
		if ch == '"' {
			return strInString
		}
	case strInString:
		if ch == '"' {
			return strEnd
		}
		return strInString
	}
	return strReject
}

type boolState int

const (
	boolStart boolState = iota
	boolT
	boolR
	boolU
	boolF
	boolA
	boolL
	boolS
	boolE // accepting: "true" or "false"
	boolReject
)

func stepBool(s boolState, ch rune) boolState {
	switch {
	case s == boolStart && ch == 't':
		return boolT
	case s == boolT && ch == 'r':
		return boolR
	case s == boolR && ch == 'u':
		return boolU
	case s == boolU && ch == 'e':
		return boolE
	case s == boolStart && ch == 'f':
		return boolF
	case s == boolF && ch == 'a':
		return boolA
	case s == boolA && ch == 'l':
		return boolL
	case s == boolL && ch == 's':
		return boolS
	case s == boolS && ch == 'e':
		return boolE
	}
	return boolReject
}

type nullState int

const (
	nullStart nullState = iota
	nullN
	nullU
	nullL1
	nullL2 // accepting
	nullReject
)

func stepNull(s nullState, ch rune) nullState {
	switch {
	case s == nullStart && ch == 'n':
		return nullN
	case s == nullN && ch == 'u':
		return nullU
	case s == nullU && ch == 'l':
		return nullL1
	case s == nullL1 && ch == 'l':
		return nullL2
	}
	return nullReject
}

// A keyword describes the recognizer for one family of bare literals.
// The recognizer runs while the input stays within alphabet.
type keyword[S comparable] struct {
	start, accept, reject S
	step                  func(S, rune) S
	alphabet              string
}

var (
	boolKeyword = keyword[boolState]{
		start:    boolStart,
		accept:   boolE,
		reject:   boolReject,
		step:     stepBool,
		alphabet: "truefals",
	}
	nullKeyword = keyword[nullState]{
		start:    nullStart,
		accept:   nullL2,
		reject:   nullReject,
		step:     stepNull,
		alphabet: "nul",
	}
)
