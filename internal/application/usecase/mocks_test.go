package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bibbank/origination/internal/application/dto"
	"github.com/bibbank/origination/internal/application/session"
	"github.com/bibbank/origination/internal/application/usecase"
	"github.com/bibbank/origination/internal/domain/event"
	"github.com/bibbank/origination/internal/domain/model"
	"github.com/bibbank/origination/internal/domain/port"
	"github.com/bibbank/origination/internal/domain/service"
	"github.com/bibbank/origination/pkg/events"
	"github.com/bibbank/origination/pkg/observability"
	"github.com/bibbank/origination/pkg/testutil"
)

// --- Mock implementations ---

type mockStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	writes []string
	setErr error
}

func newMockStore() *mockStore { return &mockStore{data: make(map[string][]byte)} }

func (m *mockStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mockStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.writes = append(m.writes, key)
	return nil
}

func (m *mockStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string][]byte)
	return nil
}

func (m *mockStore) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

func (m *mockStore) writeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.writes)
}

type mockStoreFactory struct {
	store *mockStore
}

func (m *mockStoreFactory) Open(context.Context, string) (port.SessionStore, error) {
	return m.store, nil
}

type mockPublisher struct {
	publishFunc func(ctx context.Context, evts ...event.DomainEvent) error
	collected   events.EventCollector
}

func (m *mockPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	for _, e := range evts {
		m.collected.Record(e)
	}
	return nil
}

func (m *mockPublisher) types() []string {
	published := m.collected.Events()
	out := make([]string, 0, len(published))
	for _, e := range published {
		out = append(out, e.EventType())
	}
	return out
}

type mockUploader struct {
	uploadFunc func(ctx context.Context, doc model.UploadedDocument) error
	verifyFunc func(ctx context.Context, docs []model.UploadedDocument) error
	mu         sync.Mutex
	uploaded   []string
}

func (m *mockUploader) Upload(ctx context.Context, doc model.UploadedDocument) error {
	if m.uploadFunc != nil {
		if err := m.uploadFunc(ctx, doc); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploaded = append(m.uploaded, doc.Key)
	return nil
}

func (m *mockUploader) Verify(ctx context.Context, docs []model.UploadedDocument) error {
	if m.verifyFunc != nil {
		return m.verifyFunc(ctx, docs)
	}
	return nil
}

type mockClassifier struct {
	classifyFunc func(ctx context.Context, text string) (model.Intent, error)
}

func (m *mockClassifier) Classify(ctx context.Context, text string) (model.Intent, error) {
	return m.classifyFunc(ctx, text)
}

type mockTokens struct {
	mu        sync.Mutex
	tokenFunc func(now time.Time) (string, error)
	seq       int
}

func (m *mockTokens) AgreementToken(now time.Time) (string, error) {
	if m.tokenFunc != nil {
		return m.tokenFunc(now)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	return fmt.Sprintf("%s-%04X", now.Format("20060102-150405"), m.seq), nil
}

func (m *mockTokens) ConversationID(now time.Time) (string, error) {
	return "conv_" + now.Format(time.RFC3339) + "_beef", nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// --- Harness ---

var testNow = time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)

type harness struct {
	store     *mockStore
	publisher *mockPublisher
	uploader  *mockUploader
	tokens    *mockTokens
	registry  *session.Registry
	deps      usecase.Deps

	engine   *service.EligibilityEngine
	resolver *service.DocumentRequirementResolver
}

func newHarness() *harness {
	h := &harness{
		store:     newMockStore(),
		publisher: &mockPublisher{},
		uploader:  &mockUploader{},
		tokens:    &mockTokens{},
		engine:    service.NewEligibilityEngine(),
		resolver:  service.NewDocumentRequirementResolver(),
	}
	clock := fixedClock{t: testNow}
	h.deps = usecase.Deps{
		Publisher: h.publisher,
		Clock:     clock,
		Metrics:   observability.NopFunnelMetrics(),
		Logger:    observability.DiscardLogger(),
	}
	h.registry = session.NewRegistry(&mockStoreFactory{store: h.store}, clock, h.deps.Logger)
	return h
}

func (h *harness) start(t *testing.T) *session.Session {
	t.Helper()
	sess, err := h.registry.Start(context.Background())
	require.NoError(t, err)
	return sess
}

func validIntake() dto.SubmitIntakeRequest {
	return dto.SubmitIntakeRequest{
		Name:            testutil.ApplicantName,
		Mobile:          testutil.ApplicantMobile,
		Age:             testutil.ApplicantAge,
		Address:         testutil.ApplicantAddress,
		PAN:             testutil.ApplicantPAN,
		Aadhaar:         testutil.ApplicantAadhaar,
		Employment:      testutil.ApplicantSalaried,
		Salary:          testutil.ApplicantSalary,
		RequestedAmount: testutil.ApplicantRequest,
		Purpose:         testutil.ApplicantPurpose,
	}
}

func salariedFiles() []dto.FileDescriptor {
	return []dto.FileDescriptor{
		{Key: "ID_PROOF", FileName: "pan.jpg", ContentType: "image/jpeg", Size: 1024},
		{Key: "EMPLOYMENT_PROOF", FileName: "offer.pdf", ContentType: "application/pdf", Size: 2048},
		{Key: "SALARY_SLIP_3M", FileName: "slips.pdf", ContentType: "application/pdf", Size: 4096},
		{Key: "BANK_STATEMENT_3M", FileName: "bank.pdf", ContentType: "application/pdf", Size: 8192},
	}
}

// advanceTo drives sess through the funnel up to and including the step
// that lands on stage.
func (h *harness) advanceTo(t *testing.T, sess *session.Session, stage string) {
	t.Helper()
	ctx := context.Background()

	steps := []struct {
		lands string
		run   func() error
	}{
		{"needs", func() error {
			_, err := usecase.NewStartApplicationUseCase(h.deps).Execute(ctx, sess)
			return err
		}},
		{"prequalification", func() error {
			_, err := usecase.NewSubmitIntakeUseCase(h.tokens, h.deps).Execute(ctx, sess, validIntake())
			return err
		}},
		{"eligibility", func() error {
			_, err := usecase.NewVerifyIdentityUseCase(service.NewCreditScoreSimulator(), h.deps).Execute(ctx, sess)
			return err
		}},
		{"offer", func() error {
			_, err := usecase.NewAssessEligibilityUseCase(h.engine, h.deps).Execute(ctx, sess)
			return err
		}},
		{"documents", func() error {
			_, err := usecase.NewSelectPlanUseCase(h.engine, h.deps).Execute(ctx, sess, dto.SelectPlanRequest{Months: 12})
			return err
		}},
		{"approval", func() error {
			_, err := usecase.NewUploadDocumentsUseCase(h.resolver, h.uploader, h.deps).
				Execute(ctx, sess, dto.UploadDocumentsRequest{Files: salariedFiles()})
			return err
		}},
		{"sanction", func() error {
			_, err := usecase.NewAcknowledgeTermsUseCase(h.uploader, h.tokens, h.deps).
				Execute(ctx, sess, dto.AcknowledgeTermsRequest{Acknowledged: true})
			return err
		}},
	}

	for _, step := range steps {
		require.NoError(t, step.run(), "advancing to %s", step.lands)
		if step.lands == stage {
			return
		}
	}
	t.Fatalf("unknown stage %q", stage)
}
