package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/matzehuels/wiregraph/pkg/buildinfo"
	"github.com/matzehuels/wiregraph/pkg/engine"
	"github.com/matzehuels/wiregraph/pkg/errors"
	"github.com/matzehuels/wiregraph/pkg/geom"
	"github.com/matzehuels/wiregraph/pkg/io"
	"github.com/matzehuels/wiregraph/pkg/netlist"
	"github.com/matzehuels/wiregraph/pkg/render/dot"
	"github.com/matzehuels/wiregraph/pkg/script"
)

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

type hitResponse struct {
	Kind        string  `json:"kind"`
	Vertex      uint64  `json:"vertex,omitempty"`
	Role        string  `json:"role,omitempty"`
	Edge        uint64  `json:"edge,omitempty"`
	Orientation string  `json:"orientation,omitempty"`
	Distance    float64 `json:"distance"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, code.HTTPStatus(), errorResponse{Code: code, Message: errors.UserMessage(err)})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Revision", s.eng.Revision().String())
	if err := io.WriteJSON(s.eng.State(), w); err != nil {
		s.logger.Error("write graph", "err", err)
	}
}

func (s *Server) handleNets(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, netlist.Build(s.eng.State()))
}

func (s *Server) handleHit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, errX := strconv.ParseFloat(q.Get("x"), 64)
	y, errY := strconv.ParseFloat(q.Get("y"), 64)
	if errX != nil || errY != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "x and y must be numbers"))
		return
	}
	var tol float64
	if raw := q.Get("tol"); raw != "" {
		var err error
		if tol, err = strconv.ParseFloat(raw, 64); err != nil || tol < 0 {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "tol must be a non-negative number"))
			return
		}
	}

	s.mu.Lock()
	h := s.eng.HitTest(geom.Pt(x, y), tol)
	s.mu.Unlock()

	resp := hitResponse{Kind: h.Kind.String(), Distance: h.Distance}
	switch h.Kind {
	case engine.HitVertex:
		resp.Vertex = uint64(h.Vertex)
		resp.Role = h.Role.String()
	case engine.HitEdge:
		resp.Edge = uint64(h.Edge)
		resp.Orientation = h.Orientation.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	st, err := script.DecodeStep(r.Body)
	if err != nil {
		writeError(w, err)
		return
	}

	s.mu.Lock()
	d, err := st.Run(s.eng)
	rev := s.eng.Revision()
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}

	s.logger.Info("step applied", "op", st.Op, "delta", d.String())
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Revision", rev.String())
	if err := io.WriteDelta(d, w); err != nil {
		s.logger.Error("write delta", "err", err)
	}
}

func (s *Server) handleDOT(w http.ResponseWriter, r *http.Request) {
	opts, err := dotOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	s.mu.Lock()
	src := dot.ToDOT(s.eng.State(), opts)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/vnd.graphviz")
	w.Write([]byte(src))
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	opts, err := dotOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	s.mu.Lock()
	svg, err := s.renderer.SVG(r.Context(), s.eng.State(), opts)
	s.mu.Unlock()
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "render SVG"))
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(svg)
}

func dotOptions(r *http.Request) (dot.Options, error) {
	opts := dot.Options{Scale: 1, ShowIDs: r.URL.Query().Get("ids") == "true"}
	if raw := r.URL.Query().Get("scale"); raw != "" {
		scale, err := strconv.ParseFloat(raw, 64)
		if err != nil || scale <= 0 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "scale must be a positive number")
		}
		opts.Scale = scale
	}
	return opts, nil
}
