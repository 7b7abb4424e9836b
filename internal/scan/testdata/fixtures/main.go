package main

import (
	"strings"

	"fixtures/optional"
)

func uppercase(s optional.Option[string]) string {
	return strings.ToUpper(s.MustGet("uppercase conversion"))
}

func main() {
	str := optional.None[string]()
	println(uppercase(str)) // NIL001
}
