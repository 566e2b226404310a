package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/entitlement"
)

// bulk export page size per scan
const exportPageSize = 500

// Export is a full dump of an organization's practice data.
type Export struct {
	OrganizationID uuid.UUID      `json:"organization_id"`
	GeneratedAt    time.Time      `json:"generated_at"`
	Clients        []ClientExport `json:"clients"`
}

// ClientExport is one client with its matters and invoices.
type ClientExport struct {
	Client   domain.Client    `json:"client"`
	Matters  []domain.Matter  `json:"matters"`
	Invoices []domain.Invoice `json:"invoices"`
}

// BuildExport assembles the organization's clients, matters and invoices.
// Results page through the repositories so a large tenant does not need
// one unbounded query.
func (s *Service) BuildExport(ctx context.Context, orgID uuid.UUID) (Export, error) {
	if _, err := s.authorize(ctx, orgID, entitlement.Requirement{
		Feature:    entitlement.FeatureExports,
		Permission: entitlement.PermExportRun,
	}); err != nil {
		return Export{}, err
	}

	exp := Export{
		OrganizationID: orgID,
		GeneratedAt:    s.now().UTC(),
		Clients:        []ClientExport{},
	}

	for offset := 0; ; offset += exportPageSize {
		clients, err := s.clients.List(ctx, orgID, domain.ClientFilter{Limit: exportPageSize, Offset: offset})
		if err != nil {
			return Export{}, fmt.Errorf("list clients: %w", err)
		}
		for _, c := range clients {
			ce := ClientExport{Client: c}

			ce.Matters, err = s.collectMatters(ctx, orgID, c.ID)
			if err != nil {
				return Export{}, err
			}
			ce.Invoices, err = s.collectInvoices(ctx, orgID, c.ID)
			if err != nil {
				return Export{}, err
			}

			exp.Clients = append(exp.Clients, ce)
		}
		if len(clients) < exportPageSize {
			break
		}
	}

	return exp, nil
}

func (s *Service) collectMatters(ctx context.Context, orgID, clientID uuid.UUID) ([]domain.Matter, error) {
	all := []domain.Matter{}
	for offset := 0; ; offset += exportPageSize {
		page, err := s.matters.ListByClient(ctx, orgID, clientID, exportPageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("list matters: %w", err)
		}
		all = append(all, page...)
		if len(page) < exportPageSize {
			return all, nil
		}
	}
}

func (s *Service) collectInvoices(ctx context.Context, orgID, clientID uuid.UUID) ([]domain.Invoice, error) {
	all := []domain.Invoice{}
	for offset := 0; ; offset += exportPageSize {
		page, err := s.invoices.ListByClient(ctx, orgID, clientID, exportPageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("list invoices: %w", err)
		}
		all = append(all, page...)
		if len(page) < exportPageSize {
			return all, nil
		}
	}
}
