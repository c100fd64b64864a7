package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestSonicSerializer_RoundTrip(t *testing.T) {
	e := echo.New()
	s := newSonicSerializer()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"x","completed":true}`))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var in struct {
		Title     string `json:"title"`
		Completed bool   `json:"completed"`
	}
	require.NoError(t, s.Deserialize(c, &in))
	require.Equal(t, "x", in.Title)
	require.True(t, in.Completed)

	require.NoError(t, s.Serialize(c, map[string]string{"b": "2", "a": "1"}, ""))
	require.Equal(t, `{"a":"1","b":"2"}`+"\n", rec.Body.String())
}

func TestSonicSerializer_InvalidBody(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":`))
	c := e.NewContext(req, httptest.NewRecorder())

	var in map[string]any
	err := newSonicSerializer().Deserialize(c, &in)

	var he *echo.HTTPError
	require.True(t, errors.As(err, &he))
	require.Equal(t, http.StatusBadRequest, he.Code)
}
