package respond

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/labstack/echo/v5"
)

type mediaRange struct {
	typ     string
	subtype string
	q       float64
}

// parseAccept splits an Accept header into media ranges (RFC 9110 12.5.1).
// Invalid q values fall back to 1.
func parseAccept(header string) []mediaRange {
	var ranges []mediaRange
	for part := range strings.SplitSeq(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		mr := mediaRange{q: 1}
		mediaType, params, _ := strings.Cut(part, ";")
		for param := range strings.SplitSeq(params, ";") {
			param = strings.TrimSpace(param)
			if len(param) > 2 && strings.EqualFold(param[:2], "q=") {
				if q, err := strconv.ParseFloat(param[2:], 64); err == nil && q >= 0 && q <= 1 {
					mr.q = q
				}
			}
		}

		typ, subtype, ok := strings.Cut(strings.TrimSpace(mediaType), "/")
		if !ok {
			subtype = "*"
		}
		mr.typ = strings.ToLower(strings.TrimSpace(typ))
		mr.subtype = strings.ToLower(strings.TrimSpace(subtype))
		ranges = append(ranges, mr)
	}
	return ranges
}

// specificity ranks how precisely a range names JSON or CBOR. Zero means
// the range matches neither.
func specificity(mr mediaRange) (json, cbor int) {
	switch {
	case mr.typ == "*" && mr.subtype == "*":
		return 1, 1
	case mr.typ != "application":
		return 0, 0
	case mr.subtype == "*":
		return 2, 2
	case mr.subtype == "problem+json":
		return 4, 0
	case mr.subtype == "problem+cbor":
		return 0, 4
	case mr.subtype == "json", strings.HasSuffix(mr.subtype, "+json"):
		return 3, 0
	case mr.subtype == "cbor", strings.HasSuffix(mr.subtype, "+cbor"):
		return 0, 3
	}
	return 0, 0
}

// wantsCBOR reports whether the Accept header prefers CBOR over JSON. The
// most specific matching range decides each format's q value; ties go to
// the more specific range and then to JSON.
func wantsCBOR(header string) bool {
	jsonQ, cborQ := -1.0, -1.0
	jsonSpec, cborSpec := 0, 0

	for _, mr := range parseAccept(header) {
		if mr.q == 0 {
			continue
		}
		js, cs := specificity(mr)
		if js > 0 && (js > jsonSpec || (js == jsonSpec && mr.q > jsonQ)) {
			jsonQ, jsonSpec = mr.q, js
		}
		if cs > 0 && (cs > cborSpec || (cs == cborSpec && mr.q > cborQ)) {
			cborQ, cborSpec = mr.q, cs
		}
	}

	switch {
	case cborQ <= 0:
		return false
	case cborQ != jsonQ:
		return cborQ > jsonQ
	default:
		return cborSpec > jsonSpec
	}
}

func ensureVary(h http.Header, values ...string) {
	existing := map[string]struct{}{}
	for _, v := range h.Values("Vary") {
		for part := range strings.SplitSeq(v, ",") {
			existing[strings.TrimSpace(part)] = struct{}{}
		}
	}
	for _, v := range values {
		if _, ok := existing[v]; !ok {
			h.Add("Vary", v)
			existing[v] = struct{}{}
		}
	}
}

func writeProblem(w http.ResponseWriter, r *http.Request, problem ProblemDetails) {
	ensureVary(w.Header(), "Origin", "Accept")

	if wantsCBOR(r.Header.Get("Accept")) {
		w.Header().Set("Content-Type", "application/problem+cbor")
		w.WriteHeader(problem.Status)
		_ = cbor.NewEncoder(w).Encode(problem)
		return
	}
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(problem.Status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(problem)
}

// Negotiate writes data as CBOR when the client prefers it, JSON otherwise.
func Negotiate(c *echo.Context, status int, data any) error {
	if wantsCBOR(c.Request().Header.Get("Accept")) {
		b, err := cbor.Marshal(data)
		if err != nil {
			return err
		}
		return c.Blob(status, "application/cbor", b)
	}
	return c.JSON(status, data)
}
