package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newQueryContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	return c
}

func TestParseQueryInt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 7, ParseQueryInt(newQueryContext("months=7"), "months", 12))
	assert.Equal(t, 12, ParseQueryInt(newQueryContext(""), "months", 12))
	assert.Equal(t, 12, ParseQueryInt(newQueryContext("months=abc"), "months", 12))
}

func TestParsePagination_Defaults(t *testing.T) {
	t.Parallel()

	page, pageSize := ParsePagination(newQueryContext(""))
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, pageSize)
}

func TestParsePagination_Bounds(t *testing.T) {
	t.Parallel()

	page, pageSize := ParsePagination(newQueryContext("page=-3&page_size=0"))
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, pageSize)

	page, pageSize = ParsePagination(newQueryContext("page=3&page_size=500"))
	assert.Equal(t, 3, page)
	assert.Equal(t, 100, pageSize)
}
