package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/bibbank/origination/internal/application/dto"
	"github.com/bibbank/origination/internal/application/session"
	"github.com/bibbank/origination/internal/domain/event"
	"github.com/bibbank/origination/internal/domain/model"
	"github.com/bibbank/origination/internal/domain/port"
	"github.com/bibbank/origination/internal/domain/service"
	"github.com/bibbank/origination/internal/domain/valueobject"
)

const operationUploadDocuments = "upload_documents"

// RequiredDocumentsUseCase returns the applicant's document checklist.
type RequiredDocumentsUseCase struct {
	resolver *service.DocumentRequirementResolver
	deps     Deps
}

// NewRequiredDocumentsUseCase wires dependencies.
func NewRequiredDocumentsUseCase(resolver *service.DocumentRequirementResolver, deps Deps) *RequiredDocumentsUseCase {
	return &RequiredDocumentsUseCase{resolver: resolver, deps: deps}
}

// Execute resolves the checklist for the stored employment answer. Without
// an application record only the identity document is required.
func (uc *RequiredDocumentsUseCase) Execute(ctx context.Context, sess *session.Session) (dto.RequiredDocumentsResponse, error) {
	ctx, done, err := begin(ctx, sess)
	if err != nil {
		return dto.RequiredDocumentsResponse{}, err
	}
	defer done()

	app, err := sess.Application(ctx)
	uc.deps.fallback(ctx, sess, err)
	tier := app.Profile().Tier()

	// A missing status record just means nothing was uploaded yet.
	statuses, _ := sess.DocumentStatuses(ctx)

	reqs := uc.resolver.RequiredDocuments(tier)
	docs := make([]dto.DocumentRequirementResponse, 0, len(reqs))
	for _, r := range reqs {
		status := valueobject.DocumentStatusPending.String()
		if entry, ok := statuses[r.Key]; ok {
			status = entry.Status
		}
		docs = append(docs, dto.DocumentRequirementResponse{
			Key:    r.Key,
			Label:  r.Label,
			Accept: r.Accept,
			Status: status,
		})
	}

	return dto.RequiredDocumentsResponse{Tier: tier.String(), Documents: docs}, nil
}

// UploadDocumentsUseCase uploads the checklist and runs KYC processing.
type UploadDocumentsUseCase struct {
	resolver *service.DocumentRequirementResolver
	uploader port.DocumentUploader
	deps     Deps
}

// NewUploadDocumentsUseCase wires dependencies.
func NewUploadDocumentsUseCase(
	resolver *service.DocumentRequirementResolver,
	uploader port.DocumentUploader,
	deps Deps,
) *UploadDocumentsUseCase {
	return &UploadDocumentsUseCase{resolver: resolver, uploader: uploader, deps: deps}
}

// Execute uploads every supplied file concurrently. When all required
// documents were supplied, KYC processing runs and the session moves from
// documents to approval. A partial batch records no_file for the missing
// keys and leaves the stage unchanged. Cancellation writes nothing.
func (uc *UploadDocumentsUseCase) Execute(
	ctx context.Context,
	sess *session.Session,
	req dto.UploadDocumentsRequest,
) (dto.UploadDocumentsResponse, error) {
	ctx, done, err := begin(ctx, sess)
	if err != nil {
		return dto.UploadDocumentsResponse{}, err
	}
	defer done()

	// 1. Gate on stage.
	if err := expect(sess, valueobject.EventDocumentsUploaded); err != nil {
		return dto.UploadDocumentsResponse{}, err
	}

	// 2. Match files to the checklist.
	app, err := sess.Application(ctx)
	uc.deps.fallback(ctx, sess, err)
	reqs := uc.resolver.RequiredDocuments(app.Profile().Tier())

	supplied, err := matchFiles(reqs, req.Files)
	if err != nil {
		return dto.UploadDocumentsResponse{}, uc.deps.rejected(ctx, operationUploadDocuments, fmt.Errorf("match documents: %w", err))
	}

	// 3. Upload concurrently.
	batch := make([]model.UploadedDocument, 0, len(supplied))
	for _, r := range reqs {
		if doc, ok := supplied[r.Key]; ok {
			batch = append(batch, doc)
		}
	}
	if err := uc.uploadAll(ctx, batch); err != nil {
		return dto.UploadDocumentsResponse{}, fmt.Errorf("upload documents: %w", err)
	}

	// 4. KYC processing gates the transition.
	complete := len(batch) == len(reqs)
	if complete {
		if err := uc.uploader.Verify(ctx, batch); err != nil {
			return dto.UploadDocumentsResponse{}, fmt.Errorf("verify documents: %w", err)
		}
	}

	// 5. Record outcomes.
	if err := ctx.Err(); err != nil {
		return dto.UploadDocumentsResponse{}, fmt.Errorf("upload documents: %w", err)
	}
	results := make([]model.DocumentUploadResult, 0, len(reqs))
	record := make(session.DocumentStatusesRecord, len(reqs))
	statuses := make(map[string]string, len(reqs))
	for _, r := range reqs {
		res := model.DocumentUploadResult{Key: r.Key, Status: valueobject.DocumentStatusNoFile}
		if doc, ok := supplied[r.Key]; ok {
			res.FileName = doc.FileName
			res.Status = valueobject.DocumentStatusUploaded
		}
		results = append(results, res)
		record[r.Key] = session.DocumentStatusEntry{Status: res.Status.String(), FileName: res.FileName}
		statuses[r.Key] = res.Status.String()
	}
	uc.deps.save(ctx, sess, session.KeyDocumentStatuses, record)

	stage := sess.Stage()
	if complete {
		stage, err = uc.deps.advance(ctx, sess, valueobject.EventDocumentsUploaded,
			event.NewDocumentsUploaded(sess.ID(), statuses, uc.deps.now()))
		if err != nil {
			return dto.UploadDocumentsResponse{}, err
		}
	}

	uc.deps.Logger.InfoContext(ctx, "documents uploaded",
		slog.String("session_id", sess.ID()),
		slog.Int("uploaded", len(batch)),
		slog.Int("required", len(reqs)),
		slog.Bool("complete", complete),
	)

	return dto.UploadDocumentsResponse{
		Stage:     stage.String(),
		Documents: toDocumentStatusResponses(results),
		Complete:  complete,
	}, nil
}

func (uc *UploadDocumentsUseCase) uploadAll(ctx context.Context, docs []model.UploadedDocument) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, doc := range docs {
		doc := doc
		g.Go(func() error {
			if err := uc.uploader.Upload(gctx, doc); err != nil {
				return fmt.Errorf("%s: %w", doc.Key, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	// Upload may return nil for a file that finished just as ctx ended.
	return ctx.Err()
}

// matchFiles indexes supplied files by checklist key. Keys outside the
// checklist and duplicate keys are rejected.
func matchFiles(reqs []model.DocumentRequirement, files []dto.FileDescriptor) (map[string]model.UploadedDocument, error) {
	known := make(map[string]bool, len(reqs))
	for _, r := range reqs {
		known[r.Key] = true
	}

	var fields []model.FieldError
	out := make(map[string]model.UploadedDocument, len(files))
	for _, f := range files {
		key := strings.TrimSpace(f.Key)
		switch {
		case !known[key]:
			fields = append(fields, model.FieldError{Field: key, Message: "Document is not on the checklist."})
			continue
		case strings.TrimSpace(f.FileName) == "":
			fields = append(fields, model.FieldError{Field: key, Message: "File name is required."})
			continue
		}
		if _, dup := out[key]; dup {
			fields = append(fields, model.FieldError{Field: key, Message: "Only one file per document."})
			continue
		}
		out[key] = model.UploadedDocument{
			Key:         key,
			FileName:    f.FileName,
			ContentType: f.ContentType,
			Size:        f.Size,
		}
	}

	if err := model.NewFieldValidationError(fields...); err != nil {
		return nil, err
	}
	return out, nil
}

func toDocumentStatusResponses(results []model.DocumentUploadResult) []dto.DocumentStatusResponse {
	out := make([]dto.DocumentStatusResponse, 0, len(results))
	for _, r := range results {
		out = append(out, dto.DocumentStatusResponse{
			Key:      r.Key,
			FileName: r.FileName,
			Status:   r.Status.String(),
		})
	}
	return out
}
