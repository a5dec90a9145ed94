package server

import (
	"fmt"
	"net/http"
	"strconv"

	"git.appkode.ru/pub/go/failure"

	"p2p_market/pkg/errcodes"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 500
)

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, failure.NewInvalidArgumentError(
			fmt.Sprintf("invalid %s path parameter", name),
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription(fmt.Sprintf("Invalid %s", name)),
		)
	}

	return id, nil
}

func paging(r *http.Request) (limit, offset int, err error) {
	limit = defaultPageLimit

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 || limit > maxPageLimit {
			return 0, 0, invalidPaging("limit")
		}
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return 0, 0, invalidPaging("offset")
		}
	}

	return limit, offset, nil
}

func invalidPaging(param string) error {
	return failure.NewInvalidArgumentError(
		fmt.Sprintf("invalid %s query parameter", param),
		failure.WithCode(errcodes.InvalidPaging),
		failure.WithDescription(fmt.Sprintf("Invalid %s", param)),
	)
}
