package grpc

// proto.go hand-writes the service descriptor for
// origination.v1.OriginationService. Messages are the application DTOs,
// carried by the JSON codec.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/origination/internal/application/dto"
)

const serviceName = "origination.v1.OriginationService"

// Empty is the request for calls that take no input beyond the session.
type Empty struct{}

// OriginationServiceServer is the server API for OriginationService.
type OriginationServiceServer interface {
	StartSession(context.Context, *Empty) (*dto.StartSessionResponse, error)
	EndSession(context.Context, *Empty) (*dto.EndSessionResponse, error)
	GetStage(context.Context, *Empty) (*dto.StageResponse, error)
	StartApplication(context.Context, *Empty) (*dto.StageTransitionResponse, error)
	GoBack(context.Context, *Empty) (*dto.StageTransitionResponse, error)
	SubmitIntake(context.Context, *dto.SubmitIntakeRequest) (*dto.SubmitIntakeResponse, error)
	VerifyIdentity(context.Context, *Empty) (*dto.CreditAssessmentResponse, error)
	AssessEligibility(context.Context, *Empty) (*dto.EligibilityResponse, error)
	SelectPlan(context.Context, *dto.SelectPlanRequest) (*dto.SelectPlanResponse, error)
	RequiredDocuments(context.Context, *Empty) (*dto.RequiredDocumentsResponse, error)
	UploadDocuments(context.Context, *dto.UploadDocumentsRequest) (*dto.UploadDocumentsResponse, error)
	AcknowledgeTerms(context.Context, *dto.AcknowledgeTermsRequest) (*dto.AgreementResponse, error)
	GetAgreement(context.Context, *Empty) (*dto.AgreementResponse, error)
	Assist(context.Context, *dto.AssistRequest) (*dto.AssistResponse, error)
	mustEmbedUnimplementedOriginationServiceServer()
}

// UnimplementedOriginationServiceServer answers Unimplemented for every
// method. Embed it for forward compatibility.
type UnimplementedOriginationServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedOriginationServiceServer) StartSession(context.Context, *Empty) (*dto.StartSessionResponse, error) {
	return nil, unimplemented("StartSession")
}
func (UnimplementedOriginationServiceServer) EndSession(context.Context, *Empty) (*dto.EndSessionResponse, error) {
	return nil, unimplemented("EndSession")
}
func (UnimplementedOriginationServiceServer) GetStage(context.Context, *Empty) (*dto.StageResponse, error) {
	return nil, unimplemented("GetStage")
}
func (UnimplementedOriginationServiceServer) StartApplication(context.Context, *Empty) (*dto.StageTransitionResponse, error) {
	return nil, unimplemented("StartApplication")
}
func (UnimplementedOriginationServiceServer) GoBack(context.Context, *Empty) (*dto.StageTransitionResponse, error) {
	return nil, unimplemented("GoBack")
}
func (UnimplementedOriginationServiceServer) SubmitIntake(context.Context, *dto.SubmitIntakeRequest) (*dto.SubmitIntakeResponse, error) {
	return nil, unimplemented("SubmitIntake")
}
func (UnimplementedOriginationServiceServer) VerifyIdentity(context.Context, *Empty) (*dto.CreditAssessmentResponse, error) {
	return nil, unimplemented("VerifyIdentity")
}
func (UnimplementedOriginationServiceServer) AssessEligibility(context.Context, *Empty) (*dto.EligibilityResponse, error) {
	return nil, unimplemented("AssessEligibility")
}
func (UnimplementedOriginationServiceServer) SelectPlan(context.Context, *dto.SelectPlanRequest) (*dto.SelectPlanResponse, error) {
	return nil, unimplemented("SelectPlan")
}
func (UnimplementedOriginationServiceServer) RequiredDocuments(context.Context, *Empty) (*dto.RequiredDocumentsResponse, error) {
	return nil, unimplemented("RequiredDocuments")
}
func (UnimplementedOriginationServiceServer) UploadDocuments(context.Context, *dto.UploadDocumentsRequest) (*dto.UploadDocumentsResponse, error) {
	return nil, unimplemented("UploadDocuments")
}
func (UnimplementedOriginationServiceServer) AcknowledgeTerms(context.Context, *dto.AcknowledgeTermsRequest) (*dto.AgreementResponse, error) {
	return nil, unimplemented("AcknowledgeTerms")
}
func (UnimplementedOriginationServiceServer) GetAgreement(context.Context, *Empty) (*dto.AgreementResponse, error) {
	return nil, unimplemented("GetAgreement")
}
func (UnimplementedOriginationServiceServer) Assist(context.Context, *dto.AssistRequest) (*dto.AssistResponse, error) {
	return nil, unimplemented("Assist")
}
func (UnimplementedOriginationServiceServer) mustEmbedUnimplementedOriginationServiceServer() {}

// RegisterOriginationServiceServer registers srv with the gRPC server.
func RegisterOriginationServiceServer(s grpclib.ServiceRegistrar, srv OriginationServiceServer) {
	s.RegisterService(&originationServiceDesc, srv)
}

// FullMethod returns the fully qualified name of method.
func FullMethod(method string) string {
	return "/" + serviceName + "/" + method
}

// unaryHandler adapts one typed server method to a grpc.MethodDesc handler.
func unaryHandler[Req, Resp any](
	method string,
	call func(OriginationServiceServer, context.Context, *Req) (*Resp, error),
) grpclib.MethodDesc {
	return grpclib.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(OriginationServiceServer), ctx, in)
			}
			info := &grpclib.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(method),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(OriginationServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var originationServiceDesc = grpclib.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*OriginationServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		unaryHandler("StartSession", OriginationServiceServer.StartSession),
		unaryHandler("EndSession", OriginationServiceServer.EndSession),
		unaryHandler("GetStage", OriginationServiceServer.GetStage),
		unaryHandler("StartApplication", OriginationServiceServer.StartApplication),
		unaryHandler("GoBack", OriginationServiceServer.GoBack),
		unaryHandler("SubmitIntake", OriginationServiceServer.SubmitIntake),
		unaryHandler("VerifyIdentity", OriginationServiceServer.VerifyIdentity),
		unaryHandler("AssessEligibility", OriginationServiceServer.AssessEligibility),
		unaryHandler("SelectPlan", OriginationServiceServer.SelectPlan),
		unaryHandler("RequiredDocuments", OriginationServiceServer.RequiredDocuments),
		unaryHandler("UploadDocuments", OriginationServiceServer.UploadDocuments),
		unaryHandler("AcknowledgeTerms", OriginationServiceServer.AcknowledgeTerms),
		unaryHandler("GetAgreement", OriginationServiceServer.GetAgreement),
		unaryHandler("Assist", OriginationServiceServer.Assist),
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "origination/v1/origination.proto",
}
