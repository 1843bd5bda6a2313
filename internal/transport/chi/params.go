package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// bindQuery binds an optional form-style query parameter into a plain
// (non-pointer) destination. dest is left untouched when the parameter is
// absent, so callers preload it with the default.
func bindQuery(r *http.Request, name string, dest any) error {
	query := r.URL.Query()
	if _, ok := query[name]; !ok {
		return nil
	}
	if err := runtime.BindQueryParameter("form", true, true, name, query, dest); err != nil {
		return fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	return nil
}

// bindID binds the required {id} path parameter.
func bindID(r *http.Request) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, fmt.Errorf("invalid format for parameter id: %w", err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("id must be positive, got %d", id)
	}
	return id, nil
}

// queryParams binds several optional query parameters, stopping at the first
// failure and answering 400.
func queryParams(w http.ResponseWriter, r *http.Request, binds map[string]any) bool {
	for name, dest := range binds {
		if err := bindQuery(r, name, dest); err != nil {
			writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
			return false
		}
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := bindID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return 0, false
	}
	return id, true
}
