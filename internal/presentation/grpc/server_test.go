package grpc_test

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/bibbank/origination/internal/application/dto"
	"github.com/bibbank/origination/internal/application/session"
	"github.com/bibbank/origination/internal/application/usecase"
	"github.com/bibbank/origination/internal/domain/service"
	"github.com/bibbank/origination/internal/infrastructure/adapter"
	"github.com/bibbank/origination/internal/infrastructure/messaging"
	"github.com/bibbank/origination/internal/infrastructure/store"
	grpcpres "github.com/bibbank/origination/internal/presentation/grpc"
	"github.com/bibbank/origination/pkg/auth"
	"github.com/bibbank/origination/pkg/observability"
	"github.com/bibbank/origination/pkg/testutil"
)

type client struct {
	conn  *grpclib.ClientConn
	token string
}

func (c *client) invoke(t *testing.T, method string, req, resp any) error {
	t.Helper()
	ctx := context.Background()
	if c.token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+c.token)
	}
	return c.conn.Invoke(ctx, grpcpres.FullMethod(method), req, resp)
}

func startServer(t *testing.T) *client {
	t.Helper()
	logger := observability.DiscardLogger()

	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{Secret: testutil.TestSecret, Issuer: "test"})
	require.NoError(t, err)

	clock := adapter.SystemClock{}
	registry := session.NewRegistry(store.NewMemoryFactory(), clock, logger)
	deps := usecase.Deps{
		Publisher: messaging.NewLogEventPublisher(logger),
		Clock:     clock,
		Metrics:   observability.NopFunnelMetrics(),
		Logger:    logger,
	}
	tokens := adapter.NewTokenGenerator()
	uploader := adapter.NewSimulatedUploader(adapter.UploaderConfig{}, logger)
	engine := service.NewEligibilityEngine()

	handler := grpcpres.NewOriginationHandler(grpcpres.UseCases{
		StartSession:      usecase.NewStartSessionUseCase(registry, jwtSvc, deps),
		EndSession:        usecase.NewEndSessionUseCase(registry, deps),
		GetStage:          usecase.NewGetStageUseCase(),
		StartApplication:  usecase.NewStartApplicationUseCase(deps),
		GoBack:            usecase.NewGoBackUseCase(deps),
		SubmitIntake:      usecase.NewSubmitIntakeUseCase(tokens, deps),
		VerifyIdentity:    usecase.NewVerifyIdentityUseCase(service.NewCreditScoreSimulator(), deps),
		AssessEligibility: usecase.NewAssessEligibilityUseCase(engine, deps),
		SelectPlan:        usecase.NewSelectPlanUseCase(engine, deps),
		RequiredDocuments: usecase.NewRequiredDocumentsUseCase(service.NewDocumentRequirementResolver(), deps),
		UploadDocuments:   usecase.NewUploadDocumentsUseCase(service.NewDocumentRequirementResolver(), uploader, deps),
		AcknowledgeTerms:  usecase.NewAcknowledgeTermsUseCase(uploader, tokens, deps),
		GetAgreement:      usecase.NewGetAgreementUseCase(deps),
		Assist:            usecase.NewAssistUseCase(adapter.NewKeywordClassifier(), deps),
	}, registry, logger)

	srv, err := grpcpres.NewServer(handler, grpcpres.ServerConfig{ServiceName: "origination-service"}, jwtSvc, logger)
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.ServeListener(lis) }() //nolint:errcheck
	t.Cleanup(srv.GracefulStop)

	conn, err := grpclib.NewClient("passthrough:///bufnet",
		grpclib.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpclib.WithTransportCredentials(insecure.NewCredentials()),
		grpclib.WithDefaultCallOptions(grpclib.CallContentSubtype("json")),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() }) //nolint:errcheck

	return &client{conn: conn}
}

func requireCode(t *testing.T, err error, code codes.Code) {
	t.Helper()
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok, "not a status error: %v", err)
	assert.Equal(t, code, st.Code(), st.Message())
}

func TestServer_Funnel(t *testing.T) {
	c := startServer(t)

	var started dto.StartSessionResponse
	require.NoError(t, c.invoke(t, "StartSession", &grpcpres.Empty{}, &started))
	require.NotEmpty(t, started.SessionToken)
	assert.Equal(t, "entry", started.Stage)
	c.token = started.SessionToken

	var stage dto.StageResponse
	require.NoError(t, c.invoke(t, "GetStage", &grpcpres.Empty{}, &stage))
	assert.Equal(t, "entry", stage.Current)
	assert.Len(t, stage.Stages, 8)

	t.Run("out of order call", func(t *testing.T) {
		var resp dto.SubmitIntakeResponse
		requireCode(t, c.invoke(t, "SubmitIntake", &dto.SubmitIntakeRequest{}, &resp), codes.FailedPrecondition)
	})

	t.Run("no previous stage", func(t *testing.T) {
		var resp dto.StageTransitionResponse
		requireCode(t, c.invoke(t, "GoBack", &grpcpres.Empty{}, &resp), codes.FailedPrecondition)
	})

	var transition dto.StageTransitionResponse
	require.NoError(t, c.invoke(t, "StartApplication", &grpcpres.Empty{}, &transition))
	assert.Equal(t, "needs", transition.To)

	t.Run("invalid intake", func(t *testing.T) {
		var resp dto.SubmitIntakeResponse
		err := c.invoke(t, "SubmitIntake", &dto.SubmitIntakeRequest{Name: "A"}, &resp)
		requireCode(t, err, codes.InvalidArgument)
	})

	var intake dto.SubmitIntakeResponse
	require.NoError(t, c.invoke(t, "SubmitIntake", &dto.SubmitIntakeRequest{
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
	}, &intake))
	assert.Equal(t, "prequalification", intake.Stage)
	assert.Regexp(t, `^conv_`, intake.ConversationID)

	var credit dto.CreditAssessmentResponse
	require.NoError(t, c.invoke(t, "VerifyIdentity", &grpcpres.Empty{}, &credit))
	assert.Equal(t, 786, credit.Score)

	var elig dto.EligibilityResponse
	require.NoError(t, c.invoke(t, "AssessEligibility", &grpcpres.Empty{}, &elig))
	assert.Equal(t, "250000", elig.Sanctioned.String())
	assert.True(t, elig.LimitExceeded)

	var plan dto.SelectPlanResponse
	require.NoError(t, c.invoke(t, "SelectPlan", &dto.SelectPlanRequest{Months: 12}, &plan))
	assert.Equal(t, "documents", plan.Stage)
	assert.Equal(t, "22349.81", plan.Plan.EMI.StringFixed(2))

	var docs dto.RequiredDocumentsResponse
	require.NoError(t, c.invoke(t, "RequiredDocuments", &grpcpres.Empty{}, &docs))
	files := make([]dto.FileDescriptor, 0, len(docs.Documents))
	for _, d := range docs.Documents {
		files = append(files, dto.FileDescriptor{Key: d.Key, FileName: d.Key + ".pdf", ContentType: "application/pdf", Size: 512})
	}

	var uploaded dto.UploadDocumentsResponse
	require.NoError(t, c.invoke(t, "UploadDocuments", &dto.UploadDocumentsRequest{Files: files}, &uploaded))
	assert.True(t, uploaded.Complete)
	assert.Equal(t, "approval", uploaded.Stage)

	t.Run("terms not acknowledged", func(t *testing.T) {
		var resp dto.AgreementResponse
		requireCode(t, c.invoke(t, "AcknowledgeTerms", &dto.AcknowledgeTermsRequest{}, &resp), codes.InvalidArgument)
	})

	var agreement dto.AgreementResponse
	require.NoError(t, c.invoke(t, "AcknowledgeTerms", &dto.AcknowledgeTermsRequest{Acknowledged: true}, &agreement))
	assert.Regexp(t, `^\d{8}-\d{6}-[0-9A-F]{4}$`, agreement.Token)
	assert.Equal(t, "sanction", agreement.Stage)

	var fetched dto.AgreementResponse
	require.NoError(t, c.invoke(t, "GetAgreement", &grpcpres.Empty{}, &fetched))
	assert.True(t, fetched.Found)
	assert.Equal(t, agreement.Token, fetched.Token)

	var reply dto.AssistResponse
	require.NoError(t, c.invoke(t, "Assist", &dto.AssistRequest{Text: "hello"}, &reply))
	assert.Equal(t, "unknown", reply.Intent)

	var ended dto.EndSessionResponse
	require.NoError(t, c.invoke(t, "EndSession", &grpcpres.Empty{}, &ended))
	assert.Equal(t, "sanction", ended.LastStage)

	requireCode(t, c.invoke(t, "GetStage", &grpcpres.Empty{}, &stage), codes.NotFound)
}

func TestServer_RequiresToken(t *testing.T) {
	c := startServer(t)

	var stage dto.StageResponse
	requireCode(t, c.invoke(t, "GetStage", &grpcpres.Empty{}, &stage), codes.Unauthenticated)

	c.token = "not-a-jwt"
	requireCode(t, c.invoke(t, "GetStage", &grpcpres.Empty{}, &stage), codes.Unauthenticated)
}

func TestServer_Health(t *testing.T) {
	c := startServer(t)

	resp, err := healthpb.NewHealthClient(c.conn).Check(context.Background(),
		&healthpb.HealthCheckRequest{Service: "origination-service"},
		grpclib.CallContentSubtype("proto"))
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}
