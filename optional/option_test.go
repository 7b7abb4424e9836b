package optional

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroValueIsNone(t *testing.T) {
	var o Option[string]
	assert.True(t, o.IsNone())
	assert.False(t, o.IsSome())
	assert.Equal(t, None[string](), o)
}

func TestSomeGet(t *testing.T) {
	o := Some("This is not null")
	v, ok := o.Get()
	require.True(t, ok)
	assert.Equal(t, "This is not null", v)
	assert.Equal(t, "This is not null", o.MustGet("read"))
}

func TestNoneGet(t *testing.T) {
	v, ok := None[int]().Get()
	assert.False(t, ok)
	assert.Zero(t, v)
}

func TestMustGetOnNonePanics(t *testing.T) {
	assert.PanicsWithError(t,
		"absent value dereference: uppercase conversion on an absent string",
		func() { None[string]().MustGet("uppercase conversion") },
	)
}

func TestMustGetPanicValue(t *testing.T) {
	var recovered any
	func() {
		defer func() { recovered = recover() }()
		None[error]().MustGet("")
	}()

	err, ok := recovered.(error)
	require.True(t, ok, "panic value should be an error, got %T", recovered)
	assert.True(t, errors.Is(err, ErrAbsentValue))

	var absent *AbsentValueError
	require.True(t, errors.As(err, &absent))
	assert.Equal(t, "error", absent.Type)
	assert.Equal(t, "absent value dereference: absent error", err.Error())
}

func TestFromPtr(t *testing.T) {
	assert.True(t, FromPtr[string](nil).IsNone())

	s := "hello"
	o := FromPtr(&s)
	assert.Equal(t, "hello", o.OrElse(""))

	// FromPtr copies; later writes through the pointer are not observed.
	s = "changed"
	assert.Equal(t, "hello", o.OrElse(""))
}

func TestPtr(t *testing.T) {
	assert.Nil(t, None[int]().Ptr())

	p := Some(7).Ptr()
	require.NotNil(t, p)
	assert.Equal(t, 7, *p)
}

func TestOrElse(t *testing.T) {
	assert.Equal(t, "fallback", None[string]().OrElse("fallback"))
	assert.Equal(t, "value", Some("value").OrElse("fallback"))
}

func TestMap(t *testing.T) {
	called := false
	upper := func(s string) string {
		called = true
		return strings.ToUpper(s)
	}

	assert.Equal(t, None[string](), Map(None[string](), upper))
	assert.False(t, called, "Map must not call f on None")

	assert.Equal(t, Some("ABC"), Map(Some("abc"), upper))
	assert.True(t, called)

	assert.Equal(t, Some(3), Map(Some("abc"), func(s string) int { return len(s) }))
}

func TestString(t *testing.T) {
	assert.Equal(t, "null", None[string]().String())
	assert.Equal(t, "THIS IS NOT NULL", Some("THIS IS NOT NULL").String())
	assert.Equal(t, "42", Some(42).String())
}

func TestJSON(t *testing.T) {
	type payload struct {
		Name Option[string] `json:"name"`
		Age  Option[int]    `json:"age"`
	}

	out, err := json.Marshal(payload{Name: Some("ada")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"ada","age":null}`, string(out))

	var in payload
	require.NoError(t, json.Unmarshal([]byte(`{"name":null,"age":36}`), &in))
	assert.True(t, in.Name.IsNone())
	assert.Equal(t, Some(36), in.Age)

	var missing payload
	require.NoError(t, json.Unmarshal([]byte(`{}`), &missing))
	assert.True(t, missing.Name.IsNone())

	var bad payload
	assert.Error(t, json.Unmarshal([]byte(`{"age":"x"}`), &bad))
}
