package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/azyrnyx/internal/common"
)

type errorResponse struct {
	Error             string      `json:"error"`
	Kind              common.Kind `json:"kind"`
	RetryAfterSeconds int64       `json:"retryAfterSeconds,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func statusOf(kind common.Kind) int {
	switch kind {
	case common.KindMissingFields, common.KindInvalidInput:
		return http.StatusBadRequest
	case common.KindUsernameTaken, common.KindAlreadyRedeemed:
		return http.StatusConflict
	case common.KindInvalidCredentials, common.KindUnauthorizedAccount:
		return http.StatusUnauthorized
	case common.KindUnknownOrExpiredCode:
		return http.StatusNotFound
	case common.KindCooldownActive:
		return http.StatusTooManyRequests
	case common.KindForbidden:
		return http.StatusForbidden
	case common.KindPersistenceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := common.KindOf(err)
	resp := errorResponse{Error: common.PublicMessage(err), Kind: kind}

	var cd *common.CooldownError
	if errors.As(err, &cd) {
		resp.RetryAfterSeconds = int64(math.Ceil(cd.Remaining.Seconds()))
		w.Header().Set("Retry-After", strconv.FormatInt(resp.RetryAfterSeconds, 10))
	}

	if kind == common.KindInternal || kind == common.KindPersistenceUnavailable {
		s.logger.Error(r.Context(), "Request failed",
			"request_id", RequestIDFromContext(r.Context()),
			"path", r.URL.Path,
			"error", err.Error(),
		)
	}

	writeJSON(w, statusOf(kind), resp)
}

// decodeBody reads a single JSON object into dst.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: body larger than %d bytes", common.ErrInvalidInput, tooLarge.Limit)
		}
		return fmt.Errorf("%w: malformed JSON body", common.ErrInvalidInput)
	}
	return nil
}

// bearerToken extracts the token of an "Authorization: Bearer" header.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}

// wholeNumber parses a JSON number that must be a non-negative integer.
func wholeNumber(n json.Number) (int64, error) {
	if n == "" {
		return 0, fmt.Errorf("%w: reward is required", common.ErrInvalidInput)
	}
	v, err := n.Int64()
	if err != nil {
		// integral values may still be written as 100.0 or 1e2
		f, ferr := n.Float64()
		if ferr != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
			return 0, fmt.Errorf("%w: reward must be a whole number", common.ErrInvalidInput)
		}
		if f >= math.MaxInt64 {
			return 0, fmt.Errorf("%w: reward is too large", common.ErrInvalidInput)
		}
		v = int64(f)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: reward must not be negative", common.ErrInvalidInput)
	}
	return v, nil
}
