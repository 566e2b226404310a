package document

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/praxisworks/lawdesk-backend/internal/domain"
	"github.com/praxisworks/lawdesk-backend/internal/entitlement"
	"github.com/praxisworks/lawdesk-backend/pkg/ctxutil"
)

const testMaxUpload = 10 << 20

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func authedCtx(userID uuid.UUID) context.Context {
	return ctxutil.WithUserID(context.Background(), userID)
}

func matterFor(orgID uuid.UUID) *matterRepoMock {
	return &matterRepoMock{
		GetByIDFunc: func(_ context.Context, gotOrg, matterID uuid.UUID) (domain.Matter, error) {
			if gotOrg != orgID {
				return domain.Matter{}, domain.ErrNotFound
			}
			return domain.Matter{ID: matterID, OrganizationID: orgID}, nil
		},
	}
}

func newTestService(docs *documentRepoMock, matters *matterRepoMock, store *storeMock, emitter *emitterMock) *Service {
	return NewService(discardLogger(), docs, matters, store, allowAll(), emitter, &auditMock{}, testMaxUpload)
}

func TestRequestUpload_OK(t *testing.T) {
	t.Parallel()

	orgID := uuid.New()
	callerID := uuid.New()
	matterID := uuid.New()

	docs := &documentRepoMock{CreateFunc: func(context.Context, domain.Document) error { return nil }}
	store := &storeMock{}
	emitter := &emitterMock{}
	svc := newTestService(docs, matterFor(orgID), store, emitter)

	grant, err := svc.RequestUpload(authedCtx(callerID), orgID, RequestUploadInput{
		MatterID:    matterID,
		FileName:    "engagement-letter.pdf",
		ContentType: "application/pdf",
		SizeBytes:   120_000,
	})
	if err != nil {
		t.Fatalf("RequestUpload() error = %v", err)
	}

	if grant.UploadURL == "" {
		t.Error("expected a presigned upload URL")
	}
	if grant.Document.Extraction != domain.ExtractionStatusNone {
		t.Errorf("extraction = %s, want none", grant.Document.Extraction)
	}
	wantPrefix := "documents/" + orgID.String() + "/" + matterID.String() + "/"
	if !strings.HasPrefix(grant.Document.StorageKey, wantPrefix) {
		t.Errorf("storage key = %q, want prefix %q", grant.Document.StorageKey, wantPrefix)
	}

	keys := store.UploadKeys()
	if len(keys) != 1 || keys[0] != grant.Document.StorageKey {
		t.Errorf("presigned keys = %v, want the document's storage key", keys)
	}

	events := emitter.Calls()
	if len(events) != 1 || events[0].EventType != "document.uploaded" {
		t.Fatalf("events = %+v, want one document.uploaded", events)
	}
	if events[0].MatterID == nil || *events[0].MatterID != matterID {
		t.Error("expected the event to carry the matter id")
	}
}

func TestRequestUpload_TooLarge(t *testing.T) {
	t.Parallel()

	docs := &documentRepoMock{}
	svc := newTestService(docs, matterFor(uuid.New()), &storeMock{}, &emitterMock{})

	_, err := svc.RequestUpload(authedCtx(uuid.New()), uuid.New(), RequestUploadInput{
		MatterID:    uuid.New(),
		FileName:    "scan.tiff",
		ContentType: "image/tiff",
		SizeBytes:   testMaxUpload + 1,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("RequestUpload() error = %v, want ErrValidation", err)
	}
	if got := len(docs.CreateCalls()); got != 0 {
		t.Errorf("document creates = %d, want 0", got)
	}
}

func TestRequestUpload_FeatureDenied(t *testing.T) {
	t.Parallel()

	denied := &evaluatorMock{
		EvaluateFunc: func(_ context.Context, _, _ uuid.UUID, _ entitlement.Requirement) (entitlement.Decision, error) {
			return entitlement.Decision{Allowed: false, Reason: entitlement.ReasonPlanLimit}, nil
		},
	}
	svc := NewService(discardLogger(), &documentRepoMock{}, matterFor(uuid.New()), &storeMock{}, denied, &emitterMock{}, &auditMock{}, testMaxUpload)

	_, err := svc.RequestUpload(authedCtx(uuid.New()), uuid.New(), RequestUploadInput{
		MatterID:    uuid.New(),
		FileName:    "brief.docx",
		ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		SizeBytes:   1024,
	})
	if !errors.Is(err, domain.ErrPlanLimit) {
		t.Fatalf("RequestUpload() error = %v, want ErrPlanLimit", err)
	}
}

func TestGetDownload_OK(t *testing.T) {
	t.Parallel()

	orgID := uuid.New()
	doc := domain.Document{
		ID:             uuid.New(),
		OrganizationID: orgID,
		StorageKey:     "documents/x/y/z",
	}
	docs := &documentRepoMock{
		GetByIDFunc: func(context.Context, uuid.UUID, uuid.UUID) (domain.Document, error) { return doc, nil },
	}
	store := &storeMock{}
	svc := newTestService(docs, &matterRepoMock{}, store, &emitterMock{})

	grant, err := svc.GetDownload(authedCtx(uuid.New()), orgID, doc.ID)
	if err != nil {
		t.Fatalf("GetDownload() error = %v", err)
	}
	if grant.DownloadURL == "" {
		t.Error("expected a presigned download URL")
	}
	if keys := store.DownloadKeys(); len(keys) != 1 || keys[0] != doc.StorageKey {
		t.Errorf("presigned keys = %v, want %q", keys, doc.StorageKey)
	}
}

func TestRequestExtraction_Transitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from      domain.ExtractionStatus
		wantWrite bool
		wantErr   error
	}{
		{from: domain.ExtractionStatusNone, wantWrite: true},
		{from: domain.ExtractionStatusFailed, wantWrite: true},
		{from: domain.ExtractionStatusPending, wantWrite: false},
		{from: domain.ExtractionStatusExtracted, wantWrite: false, wantErr: domain.ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			t.Parallel()

			orgID := uuid.New()
			docs := &documentRepoMock{
				GetByIDFunc: func(context.Context, uuid.UUID, uuid.UUID) (domain.Document, error) {
					return domain.Document{ID: uuid.New(), OrganizationID: orgID, Extraction: tt.from}, nil
				},
				UpdateExtractionFunc: func(context.Context, domain.Document) error { return nil },
			}
			svc := newTestService(docs, &matterRepoMock{}, &storeMock{}, &emitterMock{})

			_, err := svc.RequestExtraction(authedCtx(uuid.New()), orgID, uuid.New())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("RequestExtraction() from %s error = %v, want %v", tt.from, err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("RequestExtraction() from %s error = %v", tt.from, err)
			}

			writes := len(docs.ExtractionCalls())
			if tt.wantWrite && writes != 1 {
				t.Errorf("extraction writes = %d, want 1", writes)
			}
			if !tt.wantWrite && writes != 0 {
				t.Errorf("extraction writes = %d, want 0", writes)
			}
		})
	}
}

func TestCompleteExtraction_EmitsSystemEvent(t *testing.T) {
	t.Parallel()

	orgID := uuid.New()
	docs := &documentRepoMock{
		GetByIDFunc: func(context.Context, uuid.UUID, uuid.UUID) (domain.Document, error) {
			return domain.Document{ID: uuid.New(), OrganizationID: orgID, MatterID: uuid.New(), Extraction: domain.ExtractionStatusPending}, nil
		},
		UpdateExtractionFunc: func(context.Context, domain.Document) error { return nil },
	}
	emitter := &emitterMock{}
	svc := newTestService(docs, &matterRepoMock{}, &storeMock{}, emitter)

	text := "WHEREAS the parties agree..."
	doc, err := svc.CompleteExtraction(authedCtx(uuid.New()), orgID, uuid.New(), &text, false)
	if err != nil {
		t.Fatalf("CompleteExtraction() error = %v", err)
	}

	if doc.Extraction != domain.ExtractionStatusExtracted {
		t.Errorf("extraction = %s, want extracted", doc.Extraction)
	}
	if doc.ExtractedText == nil || *doc.ExtractedText != text {
		t.Error("expected extracted text to be stored")
	}

	events := emitter.Calls()
	if len(events) != 1 || events[0].EventType != "document.extracted" {
		t.Fatalf("events = %+v, want one document.extracted", events)
	}
	if events[0].Actor.Type != domain.ActorTypeSystem {
		t.Errorf("actor = %s, want system", events[0].Actor.Type)
	}
}

func TestCompleteExtraction_FailureKeepsQuiet(t *testing.T) {
	t.Parallel()

	orgID := uuid.New()
	docs := &documentRepoMock{
		GetByIDFunc: func(context.Context, uuid.UUID, uuid.UUID) (domain.Document, error) {
			return domain.Document{ID: uuid.New(), OrganizationID: orgID, Extraction: domain.ExtractionStatusPending}, nil
		},
		UpdateExtractionFunc: func(context.Context, domain.Document) error { return nil },
	}
	emitter := &emitterMock{}
	svc := newTestService(docs, &matterRepoMock{}, &storeMock{}, emitter)

	doc, err := svc.CompleteExtraction(authedCtx(uuid.New()), orgID, uuid.New(), nil, true)
	if err != nil {
		t.Fatalf("CompleteExtraction() error = %v", err)
	}
	if doc.Extraction != domain.ExtractionStatusFailed {
		t.Errorf("extraction = %s, want failed", doc.Extraction)
	}
	if got := len(emitter.Calls()); got != 0 {
		t.Errorf("events = %d, want 0 on failure", got)
	}
}

func TestCompleteExtraction_DeniedCallerWritesNothing(t *testing.T) {
	t.Parallel()

	denied := &evaluatorMock{
		EvaluateFunc: func(_ context.Context, _, _ uuid.UUID, _ entitlement.Requirement) (entitlement.Decision, error) {
			return entitlement.Decision{Allowed: false, Reason: entitlement.ReasonOrgMember}, nil
		},
	}
	docs := &documentRepoMock{
		GetByIDFunc: func(context.Context, uuid.UUID, uuid.UUID) (domain.Document, error) {
			return domain.Document{Extraction: domain.ExtractionStatusPending}, nil
		},
		UpdateExtractionFunc: func(context.Context, domain.Document) error { return nil },
	}
	emitter := &emitterMock{}
	svc := NewService(discardLogger(), docs, &matterRepoMock{}, &storeMock{}, denied, emitter, &auditMock{}, testMaxUpload)

	text := "not yours"
	_, err := svc.CompleteExtraction(authedCtx(uuid.New()), uuid.New(), uuid.New(), &text, false)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("CompleteExtraction() error = %v, want ErrForbidden", err)
	}
	if got := len(docs.ExtractionCalls()); got != 0 {
		t.Errorf("extraction writes = %d, want 0", got)
	}
	if got := len(emitter.Calls()); got != 0 {
		t.Errorf("events = %d, want 0", got)
	}

	_, err = svc.CompleteExtraction(context.Background(), uuid.New(), uuid.New(), &text, false)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("unauthenticated CompleteExtraction() error = %v, want ErrUnauthorized", err)
	}
}
