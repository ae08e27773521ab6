package reporter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/obbidlgo/obbidl/lexer"
	"github.com/obbidlgo/obbidl/reporter"
)

type fakeError struct {
	msg  string
	span lexer.Span
}

func (e *fakeError) Error() string    { return e.msg }
func (e *fakeError) Span() lexer.Span { return e.span }

func TestHandlerAccumulatesWithoutAborting(t *testing.T) {
	t.Parallel()
	h := reporter.NewHandler()
	assert.True(t, h.OK())

	h.Report(&fakeError{msg: "first"})
	h.Report(&fakeError{msg: "second"})

	assert.False(t, h.OK())
	require := assert.New(t)
	require.Len(h.Errors(), 2)
	require.Equal("first", h.Errors()[0].Error())
	require.Equal("second", h.Errors()[1].Error())
}
