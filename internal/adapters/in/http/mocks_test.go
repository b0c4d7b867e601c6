package http_test

import (
	"context"
	"errors"

	"shopsecure/internal/core/application/usecases/commands"
	"shopsecure/internal/core/application/usecases/queries"
	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/core/domain/model/user"

	"github.com/stretchr/testify/mock"
)

type MockSignUp struct{ mock.Mock }

func (m *MockSignUp) Handle(ctx context.Context, cmd commands.SignUpCommand) (kernel.UUID, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

type MockLogin struct{ mock.Mock }

func (m *MockLogin) Handle(ctx context.Context, cmd commands.LoginCommand) (commands.LoginResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.LoginResult), args.Error(1)
}

type MockPlaceOrder struct{ mock.Mock }

func (m *MockPlaceOrder) Handle(ctx context.Context, cmd commands.PlaceOrderCommand) (commands.PlaceOrderResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.PlaceOrderResult), args.Error(1)
}

type MockRegisterReferenceImage struct{ mock.Mock }

func (m *MockRegisterReferenceImage) Handle(
	ctx context.Context,
	cmd commands.RegisterReferenceImageCommand,
) (string, error) {
	args := m.Called(ctx, cmd)
	return args.String(0), args.Error(1)
}

type MockIssuePasscode struct{ mock.Mock }

func (m *MockIssuePasscode) Handle(
	ctx context.Context,
	cmd commands.IssuePasscodeCommand,
) (commands.IssuePasscodeResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.IssuePasscodeResult), args.Error(1)
}

type MockVerifyPasscode struct{ mock.Mock }

func (m *MockVerifyPasscode) Handle(
	ctx context.Context,
	cmd commands.VerifyPasscodeCommand,
) (commands.VerifyPasscodeResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.VerifyPasscodeResult), args.Error(1)
}

type MockSubmitReturn struct{ mock.Mock }

func (m *MockSubmitReturn) Handle(
	ctx context.Context,
	cmd commands.SubmitReturnCommand,
) (commands.SubmitReturnResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.SubmitReturnResult), args.Error(1)
}

type MockSubmitFeedback struct{ mock.Mock }

func (m *MockSubmitFeedback) Handle(ctx context.Context, cmd commands.SubmitFeedbackCommand) (kernel.UUID, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

type MockDashboardStats struct{ mock.Mock }

func (m *MockDashboardStats) Handle(
	ctx context.Context,
	query queries.GetDashboardStatsQuery,
) (queries.GetDashboardStatsQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetDashboardStatsQueryResponse), args.Error(1)
}

// staticTokens accepts only the tokens it was given.
type staticTokens map[string]user.Principal

func (t staticTokens) Parse(token string) (user.Principal, error) {
	p, ok := t[token]
	if !ok {
		return user.Principal{}, errors.New("unknown token")
	}
	return p, nil
}
