package params

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"legalease-api/core/constants"
)

// QueryParams carries common list-endpoint query parameters
type QueryParams struct {
	PageNumber int
	PageSize   int
	Search     string
}

// NewQueryParams extracts pagination and search parameters from the request
func NewQueryParams(c echo.Context) *QueryParams {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = constants.DefaultPageNumber
	}

	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit < 1 {
		limit = constants.DefaultPageSize
	}
	if limit > constants.MaxPageSize {
		limit = constants.MaxPageSize
	}

	return &QueryParams{
		PageNumber: page,
		PageSize:   limit,
		Search:     c.QueryParam("search"),
	}
}
