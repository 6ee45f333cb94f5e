package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"math"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/flighttree/pkg/buildinfo"
	"github.com/matzehuels/flighttree/pkg/dataset"
	"github.com/matzehuels/flighttree/pkg/errors"
	"github.com/matzehuels/flighttree/pkg/pipeline"
)

// Response headers set on non-JSON render responses.
const (
	HeaderFound   = "X-Flighttree-Found"
	HeaderHeight  = "X-Flighttree-Height"
	HeaderMessage = "X-Flighttree-Message"
	HeaderPath    = "X-Flighttree-Path"
)

const uploadField = "file"

// treeResponse is the JSON body of a render route.
type treeResponse struct {
	*pipeline.Result
	Scene json.RawMessage `json:"scene"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	data, err := dataset.ReadSample(s.opts.SamplePath)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": dataset.SampleName}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)

	name, raw, err := readUpload(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	info, _, err := s.store.Put(r.Context(), name, raw)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("stored schedule", "id", info.ID, "name", info.Name, "codes", info.Codes)
	writeJSON(w, http.StatusCreated, info)
}

// readUpload returns the schedule name and bytes from either a multipart
// form with a "file" field or a raw request body named by ?name.
func readUpload(r *http.Request) (string, []byte, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		f, header, err := r.FormFile(uploadField)
		if err != nil {
			if tooLarge := uploadTooLarge(err); tooLarge != nil {
				return "", nil, tooLarge
			}
			return "", nil, errors.Wrap(errors.ErrCodeNoInput, err, "multipart upload needs a %q field", uploadField)
		}
		defer f.Close()
		raw, err := io.ReadAll(f)
		if err != nil {
			return "", nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read upload")
		}
		return header.Filename, raw, nil
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		if tooLarge := uploadTooLarge(err); tooLarge != nil {
			return "", nil, tooLarge
		}
		return "", nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read upload")
	}
	if len(raw) == 0 {
		return "", nil, errors.New(errors.ErrCodeNoInput, "upload a flight schedule to build a tree")
	}
	return r.URL.Query().Get("name"), raw, nil
}

// uploadTooLarge returns a TOO_LARGE error when err comes from the
// request body limit, nil otherwise.
func uploadTooLarge(err error) error {
	var mbe *http.MaxBytesError
	if !stderrors.As(err, &mbe) {
		return nil
	}
	return errors.Wrap(errors.ErrCodeTooLarge, err, "schedule exceeds the %d byte upload limit", mbe.Limit)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	infos, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if infos == nil {
		infos = []dataset.Info{}
	}
	writeJSON(w, http.StatusOK, infos)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCodes(w http.ResponseWriter, r *http.Request) {
	ds, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	limits := s.runner.Limits
	count, ok, err := parseCount(r.URL.Query().Get("count"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !ok {
		count = ds.Len()
	} else if err := errors.ValidateCount(count, limits.MinCount, limits.MaxCount); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total": ds.Len(),
		"codes": ds.Prefix(count),
	})
}

// handleRender returns a handler running action against the dataset named
// in the URL.
func (s *Server) handleRender(action string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := parseRequest(action, r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		ds, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		result, err := s.runner.Execute(r.Context(), ds, req)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		format := req.Formats[0]
		if format == pipeline.FormatJSON {
			writeJSON(w, http.StatusOK, treeResponse{
				Result: result,
				Scene:  json.RawMessage(result.Artifacts[pipeline.FormatJSON]),
			})
			return
		}

		h := w.Header()
		h.Set("Content-Type", pipeline.ContentTypes[format])
		h.Set(HeaderFound, strconv.FormatBool(result.Found))
		h.Set(HeaderHeight, strconv.Itoa(result.Height))
		h.Set(HeaderMessage, result.Message)
		if len(result.Path) > 0 {
			h.Set(HeaderPath, strings.Join(result.Path, ","))
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Artifacts[format])
	}
}

// parseRequest builds a pipeline request from the query string. Exactly one
// format is rendered per HTTP request; json is the default.
func parseRequest(action string, r *http.Request) (pipeline.Request, error) {
	q := r.URL.Query()
	req := pipeline.Request{
		Action:   action,
		Query:    q.Get("code"),
		Title:    q.Get("title"),
		Graphviz: q.Get("graphviz") == "true",
	}

	count, _, err := parseCount(q.Get("count"))
	if err != nil {
		return req, err
	}
	req.Count = count

	if v := q.Get("spread"); v != "" {
		spread, err := strconv.ParseFloat(v, 64)
		if err != nil || spread <= 0 || math.IsNaN(spread) || math.IsInf(spread, 0) {
			return req, errors.New(errors.ErrCodeInvalidInput, "spread must be a positive finite number, got %q", v)
		}
		req.Spread = spread
	}

	format := strings.ToLower(strings.TrimSpace(q.Get("format")))
	if format == "" {
		format = pipeline.FormatJSON
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return req, err
	}
	req.Formats = []string{format}
	return req, nil
}

// parseCount parses the count parameter. ok is false when it is absent.
// A count that is given must be a positive integer.
func parseCount(v string) (n int, ok bool, err error) {
	if v == "" {
		return 0, false, nil
	}
	n, err = strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false, errors.New(errors.ErrCodeInvalidCount, "count must be a positive integer, got %q", v)
	}
	return n, true, nil
}
