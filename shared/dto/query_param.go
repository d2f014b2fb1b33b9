package dto

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"frontdesk/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

var sortColumnPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

type QueryParams struct {
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
	SortBy  string `json:"sort_by"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest reads paging and sorting from the query string, ignoring malformed values.
// With withDefaults set, a missing page or limit falls back to the package defaults.
func (q *QueryParams) FromRequest(r *http.Request, withDefaults bool) {
	values := r.URL.Query()

	if page, ok := positive(values.Get(constant.RequestParamPage)); ok {
		q.Page = page
	}

	if limit, ok := positive(values.Get(constant.RequestParamLimit)); ok {
		q.Limit = limit
	}

	if sortBy := values.Get(constant.RequestParamSortBy); sortColumnPattern.MatchString(sortBy) {
		q.SortBy = sortBy
	}

	switch dir := strings.ToUpper(values.Get(constant.RequestParamSortDir)); dir {
	case SortDirAsc, SortDirDesc:
		q.SortDir = dir
	}

	if !withDefaults {
		return
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}
}

// Offset is the row offset of the current page.
func (q *QueryParams) Offset() int {
	if q.Page < 1 {
		return 0
	}

	return (q.Page - 1) * q.Limit
}

func positive(raw string) (int, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}

	return n, true
}
