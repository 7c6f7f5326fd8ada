// Package httpapi exposes the search service as a small JSON API.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/pdrpinto/gridsearch"
	"github.com/pdrpinto/gridsearch/internal/ctxlog"
	"github.com/pdrpinto/gridsearch/internal/scenario"
	"github.com/pdrpinto/gridsearch/internal/service"
)

// maxCells caps the grid size accepted by any endpoint.
const maxCells = 1_000_000

// maxTraceCells caps the grid size accepted by /api/trace. Steps carry only
// the positions they opened and closed, and a position is opened and closed
// at most once, so the response is linear in the cell count.
const maxTraceCells = 10_000

const maxBodyBytes = 1 << 20

type Handler struct {
	svc    *service.Service
	logger *slog.Logger
}

func New(svc *service.Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/search", h.handleSearch)
	mux.HandleFunc("POST /api/compare", h.handleCompare)
	mux.HandleFunc("POST /api/trace", h.handleTrace)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

// point is a [row, col] pair on the wire.
type point [2]int

func (p point) position() gridsearch.Position { return gridsearch.Position{Row: p[0], Col: p[1]} }

func toPoints(ps []gridsearch.Position) []point {
	if ps == nil {
		return nil
	}
	out := make([]point, len(ps))
	for i, p := range ps {
		out[i] = point{p.Row, p.Col}
	}
	return out
}

type searchReq struct {
	Name     string  `json:"name,omitempty"`
	Rows     int     `json:"rows"`
	Cols     int     `json:"cols"`
	Blocked  []point `json:"blocked,omitempty"`
	Start    point   `json:"start"`
	Goal     point   `json:"goal"`
	Strategy string  `json:"strategy,omitempty"`
}

func (req searchReq) toRequest() (service.Request, error) {
	var strategy gridsearch.Strategy
	if req.Strategy != "" {
		var err error
		if strategy, err = gridsearch.ParseStrategy(req.Strategy); err != nil {
			return service.Request{}, err
		}
	}
	blocked := make([]gridsearch.Position, len(req.Blocked))
	for i, p := range req.Blocked {
		blocked[i] = p.position()
	}
	return service.Request{
		Scenario: scenario.Scenario{
			Name:    req.Name,
			Rows:    req.Rows,
			Cols:    req.Cols,
			Blocked: blocked,
			Start:   req.Start.position(),
			Goal:    req.Goal.position(),
		},
		Strategy: strategy,
	}, nil
}

type searchResp struct {
	RequestID     string  `json:"requestId,omitempty"`
	Strategy      string  `json:"strategy,omitempty"`
	Found         bool    `json:"found"`
	Path          []point `json:"path,omitempty"`
	ExploredCount int     `json:"exploredCount"`
	PathCost      int     `json:"pathCost"`
	DurationMs    float64 `json:"durationMs"`
}

func newSearchResp(resp service.Response) searchResp {
	return searchResp{
		RequestID:     resp.RequestID,
		Strategy:      string(resp.Strategy),
		Found:         resp.Result.Found,
		Path:          toPoints(resp.Result.Path),
		ExploredCount: resp.Result.ExploredCount,
		PathCost:      resp.PathCost,
		DurationMs:    float64(resp.Duration) / float64(time.Millisecond),
	}
}

type errorResp struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResp{Error: err.Error()})
}

// decode reads the request body and converts it to a service request.
// It writes the error response itself and reports whether decoding succeeded.
func decode(w http.ResponseWriter, r *http.Request) (service.Request, bool) {
	var body searchReq
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty request body")
		}
		writeError(w, http.StatusBadRequest, errors.New("invalid JSON: "+err.Error()))
		return service.Request{}, false
	}
	if body.Rows > 0 && body.Cols > 0 && body.Rows > maxCells/body.Cols {
		writeError(w, http.StatusBadRequest, errors.New("grid too large"))
		return service.Request{}, false
	}
	req, err := body.toRequest()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return service.Request{}, false
	}
	return req, true
}

func (h *Handler) statusFor(err error) int {
	if errors.Is(err, service.ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	h.logger.Error("search failed", "err", err)
	return http.StatusInternalServerError
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	req, ok := decode(w, r)
	if !ok {
		return
	}
	resp, err := h.svc.Solve(ctxlog.WithLogger(r.Context(), h.logger), req)
	if err != nil {
		writeError(w, h.statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, newSearchResp(resp))
}

type compareResp struct {
	Results []searchResp `json:"results"`
}

func (h *Handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	req, ok := decode(w, r)
	if !ok {
		return
	}
	responses, err := h.svc.Compare(ctxlog.WithLogger(r.Context(), h.logger), req)
	if err != nil {
		writeError(w, h.statusFor(err), err)
		return
	}
	out := compareResp{Results: make([]searchResp, 0, len(responses))}
	for _, resp := range responses {
		out = append(out, newSearchResp(resp))
	}
	writeJSON(w, http.StatusOK, out)
}

type stepResp struct {
	Step          int     `json:"step"`
	Current       point   `json:"current"`
	Opened        []point `json:"opened,omitempty"`
	Closed        []point `json:"closed,omitempty"`
	Done          bool    `json:"done,omitempty"`
	Found         bool    `json:"found,omitempty"`
	Path          []point `json:"path,omitempty"`
	ExploredCount int     `json:"exploredCount"`
}

type traceResp struct {
	searchResp
	Steps []stepResp `json:"steps"`
}

func (h *Handler) handleTrace(w http.ResponseWriter, r *http.Request) {
	req, ok := decode(w, r)
	if !ok {
		return
	}
	if req.Scenario.Rows*req.Scenario.Cols > maxTraceCells {
		writeError(w, http.StatusBadRequest, errors.New("grid too large to trace"))
		return
	}
	resp, err := h.svc.Trace(ctxlog.WithLogger(r.Context(), h.logger), req)
	if err != nil {
		writeError(w, h.statusFor(err), err)
		return
	}

	out := traceResp{
		searchResp: newSearchResp(resp.Response),
		Steps:      make([]stepResp, 0, len(resp.Steps)),
	}
	for _, d := range resp.Steps {
		out.Steps = append(out.Steps, stepResp{
			Step:          d.StepIndex,
			Current:       point{d.Current.Row, d.Current.Col},
			Opened:        toPoints(d.Opened),
			Closed:        toPoints(d.Closed),
			Done:          d.Done,
			Found:         d.Found,
			Path:          toPoints(d.Path),
			ExploredCount: d.ExploredCount,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
