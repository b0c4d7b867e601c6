package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	httpin "shopsecure/internal/adapters/in/http"
	"shopsecure/internal/adapters/out/auth"
	"shopsecure/internal/adapters/out/clock"
	"shopsecure/internal/adapters/out/filestore"
	"shopsecure/internal/adapters/out/mail"
	"shopsecure/internal/adapters/out/postgres"
	"shopsecure/internal/core/application/usecases/commands"
	"shopsecure/internal/core/application/usecases/queries"
	"shopsecure/internal/core/domain/model/order"
	"shopsecure/internal/core/domain/model/user"
	"shopsecure/internal/core/domain/services"
	"shopsecure/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot builds every handler from one Config and one database.
type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	clock          ports.Clock
	images         *filestore.LocalImageStore
	notifier       ports.Notifier
	hasher         *auth.BcryptHasher
	tokens         *auth.JWTIssuer
	passcodePolicy order.PasscodePolicy
	loginPolicy    user.LoginPolicy
	riskPolicy     services.RiskPolicy
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	sysClock := clock.System{}

	images, err := filestore.NewLocalImageStore(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("image store: %w", err)
	}

	tokens, err := auth.NewJWTIssuer(cfg.JWTSecret, cfg.JWTTTL, sysClock.Now)
	if err != nil {
		return nil, fmt.Errorf("token issuer: %w", err)
	}

	passcodePolicy, err := order.NewPasscodePolicy(cfg.PasscodeExpiry, cfg.PasscodeMaxAttempts)
	if err != nil {
		return nil, fmt.Errorf("passcode policy: %w", err)
	}

	loginPolicy, err := user.NewLoginPolicy(cfg.LoginMaxFailures)
	if err != nil {
		return nil, fmt.Errorf("login policy: %w", err)
	}

	riskPolicy, err := services.NewRiskPolicy(cfg.RiskAcceptBelow, cfg.RiskRejectAbove)
	if err != nil {
		return nil, fmt.Errorf("risk policy: %w", err)
	}

	notifier, err := newNotifier(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		cfg:            cfg,
		gormDB:         gormDB,
		uowFactory:     postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:         logger,
		clock:          sysClock,
		images:         images,
		notifier:       notifier,
		hasher:         auth.NewBcryptHasher(0),
		tokens:         tokens,
		passcodePolicy: passcodePolicy,
		loginPolicy:    loginPolicy,
		riskPolicy:     riskPolicy,
	}, nil
}

// newNotifier falls back to logging messages when no SMTP server is set.
func newNotifier(cfg Config, logger *slog.Logger) (ports.Notifier, error) {
	smtpNotifier, err := mail.NewSMTPNotifier(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Sender:   cfg.SMTPSender,
		Password: cfg.SMTPPassword,
	})
	if errors.Is(err, mail.ErrNotConfigured) {
		logger.Warn("SMTP is not configured, passcodes will only be logged")
		return mail.NewLogNotifier(logger), nil
	}
	if err != nil {
		return nil, fmt.Errorf("smtp notifier: %w", err)
	}
	return smtpNotifier, nil
}

func (c *CompositionRoot) UploadDir() string {
	return c.images.Root()
}

func (c *CompositionRoot) Tokens() *auth.JWTIssuer {
	return c.tokens
}

func (c *CompositionRoot) CreateSignUpCommandHandler() *commands.SignUpCommandHandler {
	h := commands.NewSignUpCommandHandler(c.userUoWFactory(), c.hasher, c.clock, c.logger)
	return &h
}

func (c *CompositionRoot) CreateLoginCommandHandler() *commands.LoginCommandHandler {
	h := commands.NewLoginCommandHandler(c.userUoWFactory(), c.hasher, c.tokens, c.loginPolicy, c.logger)
	return &h
}

func (c *CompositionRoot) CreateEnsureAdminCommandHandler() *commands.EnsureAdminCommandHandler {
	h := commands.NewEnsureAdminCommandHandler(c.userUoWFactory(), c.hasher, c.clock, c.logger)
	return &h
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() *commands.PlaceOrderCommandHandler {
	h := commands.NewPlaceOrderCommandHandler(c.orderUoWFactory(), c.images, c.clock, c.logger)
	return &h
}

func (c *CompositionRoot) CreateRegisterReferenceImageCommandHandler() *commands.RegisterReferenceImageCommandHandler {
	h := commands.NewRegisterReferenceImageCommandHandler(c.orderUoWFactory(), c.images, c.logger)
	return &h
}

func (c *CompositionRoot) CreateIssuePasscodeCommandHandler() *commands.IssuePasscodeCommandHandler {
	h := commands.NewIssuePasscodeCommandHandler(
		c.passcodeUoWFactory(),
		ports.PasscodeGeneratorFunc(order.GeneratePasscode),
		c.notifier,
		c.clock,
		c.passcodePolicy,
		c.logger,
	)
	return &h
}

func (c *CompositionRoot) CreateVerifyPasscodeCommandHandler() *commands.VerifyPasscodeCommandHandler {
	h := commands.NewVerifyPasscodeCommandHandler(c.passcodeUoWFactory(), c.clock, c.passcodePolicy, c.logger)
	return &h
}

func (c *CompositionRoot) CreateSubmitReturnCommandHandler() *commands.SubmitReturnCommandHandler {
	opts := services.DefaultSimilarityOptions()
	opts.MaxFeatures = c.cfg.MaxFeatures

	h := commands.NewSubmitReturnCommandHandler(
		c.returnUoWFactory(),
		c.images,
		services.NewSimilarityScorer(opts),
		services.NewRiskClassifier(c.riskPolicy),
		c.clock,
		c.logger,
	)
	return &h
}

func (c *CompositionRoot) CreateSubmitFeedbackCommandHandler() *commands.SubmitFeedbackCommandHandler {
	h := commands.NewSubmitFeedbackCommandHandler(c.feedbackUoWFactory(), c.clock, c.logger)
	return &h
}

func (c *CompositionRoot) CreateRetryNotificationsCommandHandler() *commands.RetryNotificationsCommandHandler {
	h := commands.NewRetryNotificationsCommandHandler(c.notificationUoWFactory(), c.notifier, c.clock, c.logger)
	return &h
}

func (c *CompositionRoot) CreateGetDashboardStatsQueryHandler() queries.GetDashboardStatsQueryHandler {
	return queries.NewGetDashboardStatsQueryHandler(c.gormDB)
}

// CreateHTTPHandlers groups the handlers the HTTP server dispatches to.
func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		SignUp:                 c.CreateSignUpCommandHandler(),
		Login:                  c.CreateLoginCommandHandler(),
		PlaceOrder:             c.CreatePlaceOrderCommandHandler(),
		RegisterReferenceImage: c.CreateRegisterReferenceImageCommandHandler(),
		IssuePasscode:          c.CreateIssuePasscodeCommandHandler(),
		VerifyPasscode:         c.CreateVerifyPasscodeCommandHandler(),
		SubmitReturn:           c.CreateSubmitReturnCommandHandler(),
		SubmitFeedback:         c.CreateSubmitFeedbackCommandHandler(),
		DashboardStats:         c.CreateGetDashboardStatsQueryHandler(),
	}
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) passcodeUoWFactory() commands.PasscodeUoWFactory {
	return FuncPasscodeUoWFactory(func() commands.PasscodeUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) returnUoWFactory() commands.ReturnUoWFactory {
	return FuncReturnUoWFactory(func() commands.ReturnUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) feedbackUoWFactory() commands.FeedbackUoWFactory {
	return FuncFeedbackUoWFactory(func() commands.FeedbackUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) notificationUoWFactory() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW { return c.uowFactory.Create() })
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPasscodeUoWFactory func() commands.PasscodeUoW

func (f FuncPasscodeUoWFactory) Create() commands.PasscodeUoW {
	return f()
}

type FuncReturnUoWFactory func() commands.ReturnUoW

func (f FuncReturnUoWFactory) Create() commands.ReturnUoW {
	return f()
}

type FuncFeedbackUoWFactory func() commands.FeedbackUoW

func (f FuncFeedbackUoWFactory) Create() commands.FeedbackUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}
