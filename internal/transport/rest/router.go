package rest

import "net/http"

// Handlers groups everything the router mounts.
type Handlers struct {
	Health     *HealthHandler
	Org        *OrgHandler
	Client     *ClientHandler
	Matter     *MatterHandler
	Comment    *CommentHandler
	Invitation *InvitationHandler
	Invoice    *InvoiceHandler
	Document   *DocumentHandler
	Admin      *AdminHandler
}

// NewRouter mounts all REST routes on a ServeMux. Authentication and the
// org scope come from middleware wrapped around the returned handler.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("POST /orgs", h.Org.Create)
	mux.HandleFunc("GET /org", h.Org.Get)
	mux.HandleFunc("PATCH /org/settings", h.Org.UpdateSettings)
	mux.HandleFunc("GET /org/members", h.Org.ListMembers)
	mux.HandleFunc("DELETE /org/members/{userID}", h.Org.RemoveMember)
	mux.HandleFunc("GET /org/stats", h.Admin.Stats)
	mux.HandleFunc("GET /org/audit", h.Admin.AuditTrail)
	mux.HandleFunc("GET /org/export", h.Admin.Export)

	mux.HandleFunc("POST /invitations", h.Invitation.Create)
	mux.HandleFunc("GET /invitations", h.Invitation.List)
	mux.HandleFunc("POST /invitations/accept", h.Invitation.Accept)
	mux.HandleFunc("POST /invitations/{invitationID}/revoke", h.Invitation.Revoke)

	mux.HandleFunc("POST /clients", h.Client.Create)
	mux.HandleFunc("GET /clients", h.Client.List)
	mux.HandleFunc("GET /clients/{clientID}", h.Client.Get)
	mux.HandleFunc("PATCH /clients/{clientID}", h.Client.Update)
	mux.HandleFunc("DELETE /clients/{clientID}", h.Client.Delete)
	mux.HandleFunc("GET /clients/{clientID}/invoices", h.Invoice.ListByClient)

	mux.HandleFunc("POST /matters", h.Matter.Create)
	mux.HandleFunc("GET /matters", h.Matter.List)
	mux.HandleFunc("GET /matters/{matterID}", h.Matter.Get)
	mux.HandleFunc("POST /matters/{matterID}/status", h.Matter.UpdateStatus)
	mux.HandleFunc("POST /matters/{matterID}/assignee", h.Matter.Assign)
	mux.HandleFunc("POST /matters/{matterID}/comments", h.Comment.Add)
	mux.HandleFunc("GET /matters/{matterID}/comments", h.Comment.List)
	mux.HandleFunc("DELETE /comments/{commentID}", h.Comment.Delete)
	mux.HandleFunc("POST /matters/{matterID}/time-entries", h.Invoice.LogTime)
	mux.HandleFunc("GET /matters/{matterID}/documents", h.Document.ListByMatter)

	mux.HandleFunc("POST /invoices", h.Invoice.Create)
	mux.HandleFunc("GET /invoices/{invoiceID}", h.Invoice.Get)
	mux.HandleFunc("POST /invoices/{invoiceID}/send", h.Invoice.Send)
	mux.HandleFunc("POST /invoices/{invoiceID}/payments", h.Invoice.RecordPayment)

	mux.HandleFunc("POST /documents", h.Document.RequestUpload)
	mux.HandleFunc("GET /documents/{documentID}/download", h.Document.GetDownload)
	mux.HandleFunc("POST /documents/{documentID}/extract", h.Document.RequestExtraction)
	mux.HandleFunc("POST /documents/{documentID}/extraction-result", h.Document.CompleteExtraction)

	return mux
}
