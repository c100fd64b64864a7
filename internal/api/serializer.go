package api

import (
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
)

// sonicSerializer implements echo.JSONSerializer on top of bytedance/sonic.
// The std-compatible config keeps encoding/json output and error semantics.
type sonicSerializer struct {
	api sonic.API
}

func newSonicSerializer() *sonicSerializer {
	return &sonicSerializer{api: sonic.ConfigStd}
}

func (s *sonicSerializer) Serialize(c echo.Context, i any, indent string) error {
	enc := s.api.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (s *sonicSerializer) Deserialize(c echo.Context, i any) error {
	if err := s.api.NewDecoder(c.Request().Body).Decode(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid JSON body: %v", err)).SetInternal(err)
	}
	return nil
}
