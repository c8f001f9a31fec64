package controller

import (
	"net/http"
	"strconv"
)

// Page sizes for the inventory and supplier listings.
const (
	defaultPageRows = 50
	maxPageRows     = 100
)

// keyOrder is the traversal direction over the (store_id, item_id) key.
type keyOrder string

const (
	keyOrderAsc  keyOrder = "asc"
	keyOrderDesc keyOrder = "desc"
)

// pageWindow is one requested slice of a gold table listing. Cursor is the
// packed (store_id, item_id) pair of the last row the client has seen, zero
// for the first page.
type pageWindow struct {
	Rows   int
	Cursor uint64
	Order  keyOrder
}

func parsePageWindow(r *http.Request) (pageWindow, error) {
	qs := r.URL.Query()

	rows := defaultPageRows
	if v := qs.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return pageWindow{}, errInvalidLimit
		}
		if n > maxPageRows {
			n = maxPageRows
		}
		rows = n
	}

	var cursor uint64
	if v := qs.Get("cursor"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return pageWindow{}, errInvalidCursor
		}
		cursor = n
	}

	// Key order defaults to ascending so pages walk the materialization key.
	order := keyOrderAsc
	if v := qs.Get("sort"); v != "" {
		switch v {
		case "asc":
			order = keyOrderAsc
		case "desc":
			order = keyOrderDesc
		default:
			return pageWindow{}, errInvalidSort
		}
	}

	return pageWindow{Rows: rows, Cursor: cursor, Order: order}, nil
}

var (
	errInvalidLimit  = &badRequestError{msg: "invalid limit"}
	errInvalidCursor = &badRequestError{msg: "invalid cursor"}
	errInvalidSort   = &badRequestError{msg: "invalid sort, must be 'asc' or 'desc'"}
)

type badRequestError struct{ msg string }

func (e *badRequestError) Error() string { return e.msg }
