package rest

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/pkg/ctxutil"
)

// orgFromCtx returns the organization set by the org-scope middleware.
// Requests without one get an ORG_REQUIRED response.
func orgFromCtx(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	orgID, ok := ctxutil.OrgIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, CodeOrgRequired, "X-Org-ID header is required")
		return uuid.Nil, false
	}
	return orgID, true
}

// pathUUID parses the named path segment as a UUID.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidation, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// pagination reads limit/offset query parameters, zero when absent.
func pagination(r *http.Request) (limit, offset int) {
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		offset, _ = strconv.Atoi(v)
	}
	return limit, offset
}
