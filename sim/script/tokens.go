package script

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	whitespaceCode = iota + 1
	letterCode
	openParenCode
	actionCode
	closeParenCode
	cyclesCode
)

var (
	whitespaceToken = parsly.NewToken(whitespaceCode, "Whitespace", matcher.NewWhiteSpace())
	letterToken     = parsly.NewToken(letterCode, "Letter", &letterMatcher{})
	openParenToken  = parsly.NewToken(openParenCode, "(", matcher.NewByte('('))
	actionToken     = parsly.NewToken(actionCode, "Action", &actionMatcher{})
	closeParenToken = parsly.NewToken(closeParenCode, ")", matcher.NewByte(')'))
	cyclesToken     = parsly.NewToken(cyclesCode, "Cycles", &digitsMatcher{})
)

// letterMatcher matches one upper-case component letter.
type letterMatcher struct{}

func (m *letterMatcher) Match(cursor *parsly.Cursor) int {
	if cursor.Pos >= cursor.InputSize {
		return 0
	}
	if c := cursor.Input[cursor.Pos]; c >= 'A' && c <= 'Z' {
		return 1
	}
	return 0
}

// actionMatcher matches everything up to the closing parenthesis.
type actionMatcher struct{}

func (m *actionMatcher) Match(cursor *parsly.Cursor) int {
	matched := 0
	for i := cursor.Pos; i < cursor.InputSize; i++ {
		if cursor.Input[i] == ')' || cursor.Input[i] == '(' {
			break
		}
		matched++
	}
	return matched
}

// digitsMatcher matches a run of decimal digits.
type digitsMatcher struct{}

func (m *digitsMatcher) Match(cursor *parsly.Cursor) int {
	matched := 0
	for i := cursor.Pos; i < cursor.InputSize; i++ {
		if cursor.Input[i] < '0' || cursor.Input[i] > '9' {
			break
		}
		matched++
	}
	return matched
}
