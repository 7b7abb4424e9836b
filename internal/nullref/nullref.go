// Package nullref holds the uppercase operations used by the nullreference
// and safecall commands.
package nullref

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/FredrikPedersen/nullref/optional"
)

// OpUppercase names the uppercase conversion in absent-value errors.
const OpUppercase = "uppercase conversion"

// upper builds a fresh Caser per call; a Caser is not safe for concurrent use.
func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// Uppercase requires s to hold a value. On None it panics with an
// *optional.AbsentValueError for OpUppercase.
func Uppercase(s optional.Option[string]) string {
	return upper(s.MustGet(OpUppercase))
}

// SafeUppercase converts the held value, leaving None untouched.
func SafeUppercase(s optional.Option[string]) optional.Option[string] {
	return optional.Map(s, upper)
}

// Run binds an absent string and converts it to upper case. It never
// returns normally.
func Run() {
	str := optional.None[string]()
	Uppercase(str)
}
