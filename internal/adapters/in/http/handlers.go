package http

import (
	"context"

	"shopsecure/internal/core/application/usecases/commands"
	"shopsecure/internal/core/application/usecases/queries"
	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/core/domain/model/user"
)

// The server depends on these narrow views of the use-case handlers.

type SignUpHandler interface {
	Handle(ctx context.Context, cmd commands.SignUpCommand) (kernel.UUID, error)
}

type LoginHandler interface {
	Handle(ctx context.Context, cmd commands.LoginCommand) (commands.LoginResult, error)
}

type PlaceOrderHandler interface {
	Handle(ctx context.Context, cmd commands.PlaceOrderCommand) (commands.PlaceOrderResult, error)
}

type RegisterReferenceImageHandler interface {
	Handle(ctx context.Context, cmd commands.RegisterReferenceImageCommand) (string, error)
}

type IssuePasscodeHandler interface {
	Handle(ctx context.Context, cmd commands.IssuePasscodeCommand) (commands.IssuePasscodeResult, error)
}

type VerifyPasscodeHandler interface {
	Handle(ctx context.Context, cmd commands.VerifyPasscodeCommand) (commands.VerifyPasscodeResult, error)
}

type SubmitReturnHandler interface {
	Handle(ctx context.Context, cmd commands.SubmitReturnCommand) (commands.SubmitReturnResult, error)
}

type SubmitFeedbackHandler interface {
	Handle(ctx context.Context, cmd commands.SubmitFeedbackCommand) (kernel.UUID, error)
}

type DashboardStatsHandler interface {
	Handle(ctx context.Context, query queries.GetDashboardStatsQuery) (queries.GetDashboardStatsQueryResponse, error)
}

// TokenParser turns a bearer token into the caller's principal.
type TokenParser interface {
	Parse(token string) (user.Principal, error)
}

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	SignUp                 SignUpHandler
	Login                  LoginHandler
	PlaceOrder             PlaceOrderHandler
	RegisterReferenceImage RegisterReferenceImageHandler
	IssuePasscode          IssuePasscodeHandler
	VerifyPasscode         VerifyPasscodeHandler
	SubmitReturn           SubmitReturnHandler
	SubmitFeedback         SubmitFeedbackHandler
	DashboardStats         DashboardStatsHandler
}
