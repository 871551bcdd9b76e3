package backend

import (
	"encoding/json"
	"strconv"
	"strings"
)

// envelope is the backend's response wrapper. Older deployments emit the
// status as a string and some endpoints omit it entirely, so the field
// tolerates every variant and isSuccess normalizes the answer once, here,
// instead of every call site re-deriving it.
type envelope struct {
	Status  statusCode      `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// statusCode decodes from a JSON number or a numeric string. Zero means
// the field was absent.
type statusCode int

func (s *statusCode) UnmarshalJSON(b []byte) error {
	str := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if str == "" || str == "null" {
		*s = 0
		return nil
	}
	n, err := strconv.Atoi(str)
	if err != nil {
		// Unrecognized status shapes never fail decoding, they just read
		// as "not ok"
		*s = -1
		return nil
	}
	*s = statusCode(n)
	return nil
}

// isSuccess is the single place that decides whether a backend response
// means "ok": the HTTP status must be 2xx and the envelope status, when
// present, must agree.
func isSuccess(httpStatus int, env *envelope) bool {
	if httpStatus < 200 || httpStatus > 299 {
		return false
	}
	if env == nil || env.Status == 0 {
		return true
	}
	return env.Status >= 200 && env.Status <= 299
}
