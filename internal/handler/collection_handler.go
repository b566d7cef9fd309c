package handler

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/MadinaDev2107/Group-Manager/internal/model"
	"github.com/MadinaDev2107/Group-Manager/internal/response"
	"github.com/MadinaDev2107/Group-Manager/internal/service"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

var errInvalidOperator = errors.New("only eq filters are supported, use column=eq.value")

type CollectionHandler struct {
	collections map[string]service.Collection
}

func NewCollectionHandler(collections ...service.Collection) *CollectionHandler {
	h := &CollectionHandler{collections: make(map[string]service.Collection, len(collections))}
	for _, c := range collections {
		h.collections[c.Name()] = c
	}
	return h
}

// DeleteResult is the data payload of a successful delete.
type DeleteResult struct {
	Deleted int64 `json:"deleted"`
}

// List returns the rows of a collection
// @Summary      Select rows
// @Description  Returns every row of the collection, or the rows matching all column=eq.value filters, in id order
// @Tags         collections
// @Produce      json
// @Param        collection  path   string  true   "groups or students"
// @Param        filter      query  string  false  "column=eq.value, repeatable"
// @Security     ApiKeyAuth
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /{collection} [get]
func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}

	filters, err := parseFilters(c.Columns(), r)
	if err != nil {
		response.BadRequest(w, "Invalid filter", err.Error())
		return
	}

	rows, err := c.List(r.Context(), filters)
	if err != nil {
		h.fail(w, c, "select", err)
		return
	}

	response.Success(w, fmt.Sprintf("Rows of %s fetched", c.Name()), rows)
}

// Insert creates rows
// @Summary      Insert rows
// @Description  Inserts one record or an array of records; ids are assigned by the server
// @Tags         collections
// @Accept       json
// @Produce      json
// @Param        collection  path  string  true  "groups or students"
// @Param        request     body  object  true  "record or [records]"
// @Security     ApiKeyAuth
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /{collection} [post]
func (h *CollectionHandler) Insert(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}

	body, err := readBody(w, r)
	if err != nil {
		response.BadRequest(w, "Invalid request body", err.Error())
		return
	}

	rows, err := c.Insert(r.Context(), body)
	if err != nil {
		h.fail(w, c, "insert", err)
		return
	}

	response.Created(w, fmt.Sprintf("Rows inserted into %s", c.Name()), rows)
}

// Update overwrites the matching rows
// @Summary      Update rows
// @Description  Writes the full field set of the body to every row matching the filters
// @Tags         collections
// @Accept       json
// @Produce      json
// @Param        collection  path   string  true  "groups or students"
// @Param        filter      query  string  true  "column=eq.value"
// @Param        request     body   object  true  "record"
// @Security     ApiKeyAuth
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /{collection} [patch]
func (h *CollectionHandler) Update(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}

	filters, err := parseFilters(c.Columns(), r)
	if err != nil {
		response.BadRequest(w, "Invalid filter", err.Error())
		return
	}

	body, err := readBody(w, r)
	if err != nil {
		response.BadRequest(w, "Invalid request body", err.Error())
		return
	}

	rows, err := c.Update(r.Context(), body, filters)
	if err != nil {
		h.fail(w, c, "update", err)
		return
	}

	response.Success(w, fmt.Sprintf("Rows of %s updated", c.Name()), rows)
}

// Delete removes the matching rows
// @Summary      Delete rows
// @Description  Deletes every row matching the filters
// @Tags         collections
// @Produce      json
// @Param        collection  path   string  true  "groups or students"
// @Param        filter      query  string  true  "column=eq.value"
// @Security     ApiKeyAuth
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /{collection} [delete]
func (h *CollectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}

	filters, err := parseFilters(c.Columns(), r)
	if err != nil {
		response.BadRequest(w, "Invalid filter", err.Error())
		return
	}

	n, err := c.Delete(r.Context(), filters)
	if err != nil {
		h.fail(w, c, "delete", err)
		return
	}

	response.Success(w, fmt.Sprintf("Rows of %s deleted", c.Name()), DeleteResult{Deleted: n})
}

func (h *CollectionHandler) collection(w http.ResponseWriter, r *http.Request) (service.Collection, bool) {
	name := chi.URLParam(r, "collection")
	c, ok := h.collections[name]
	if !ok {
		response.NotFound(w, fmt.Sprintf("Collection %q does not exist", name))
		return nil, false
	}
	return c, true
}

func (h *CollectionHandler) fail(w http.ResponseWriter, c service.Collection, op string, err error) {
	switch {
	case errors.Is(err, model.ErrUnknownColumn),
		errors.Is(err, service.ErrFilterRequired),
		errors.Is(err, service.ErrInvalidRecord),
		errors.Is(err, service.ErrGroupNotFound):
		response.BadRequest(w, err.Error(), nil)
	default:
		log.Printf("%s %s failed: %v", op, c.Name(), err)
		response.InternalError(w, fmt.Sprintf("Failed to %s %s", op, c.Name()))
	}
}

// parseFilters membaca query column=eq.value; urutan kolom dibuat stabil
func parseFilters(columns model.Columns, r *http.Request) ([]model.Filter, error) {
	q := r.URL.Query()

	keys := make([]string, 0, len(q))
	for k := range q {
		if k == "select" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var filters []model.Filter
	for _, k := range keys {
		for _, v := range q[k] {
			raw, ok := strings.CutPrefix(v, "eq.")
			if !ok {
				return nil, fmt.Errorf("%w: %s=%s", errInvalidOperator, k, v)
			}
			f, err := columns.ParseFilter(k, raw)
			if err != nil {
				return nil, err
			}
			filters = append(filters, f)
		}
	}
	return filters, nil
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()
	return io.ReadAll(r.Body)
}
