package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/pkg/ctxutil"
)

// OrgHeader carries the organization the request operates on.
const OrgHeader = "X-Org-ID"

// OrgScope parses the X-Org-ID header into the request context. A missing
// header passes through untouched; handlers that need an organization
// reject the request themselves. A malformed header is a client error.
func OrgScope() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(OrgHeader)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}
			orgID, err := uuid.Parse(raw)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"success":false,"error":{"code":"VALIDATION_ERROR","message":"invalid X-Org-ID header"}}`)) //nolint:errcheck
				return
			}
			ctx := ctxutil.WithOrgID(r.Context(), orgID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
