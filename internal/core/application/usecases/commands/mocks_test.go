package commands_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"shopsecure/internal/core/application/usecases/commands"
	"shopsecure/internal/core/domain/model/feedback"
	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/core/domain/model/notification"
	"shopsecure/internal/core/domain/model/order"
	"shopsecure/internal/core/domain/model/returns"
	"shopsecure/internal/core/domain/model/securitylog"
	"shopsecure/internal/core/domain/model/user"
	"shopsecure/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	return orderOrNil(args.Get(0)), args.Error(1)
}

func (m *MockOrderRepository) GetByCode(ctx context.Context, code kernel.OrderCode) (*order.Order, error) {
	args := m.Called(ctx, code)
	return orderOrNil(args.Get(0)), args.Error(1)
}

func (m *MockOrderRepository) GetByCodeForUpdate(ctx context.Context, code kernel.OrderCode) (*order.Order, error) {
	args := m.Called(ctx, code)
	return orderOrNil(args.Get(0)), args.Error(1)
}

func (m *MockOrderRepository) GetLatestPendingForUserForUpdate(
	ctx context.Context,
	userID kernel.UUID,
) (*order.Order, error) {
	args := m.Called(ctx, userID)
	return orderOrNil(args.Get(0)), args.Error(1)
}

func (m *MockOrderRepository) GetFirstDeliveredForUser(ctx context.Context, userID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, userID)
	return orderOrNil(args.Get(0)), args.Error(1)
}

func orderOrNil(v any) *order.Order {
	if v == nil {
		return nil
	}
	return v.(*order.Order)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	args := m.Called(ctx, email)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserRepository) GetByEmailForUpdate(ctx context.Context, email kernel.Email) (*user.User, error) {
	args := m.Called(ctx, email)
	return userOrNil(args.Get(0)), args.Error(1)
}

func userOrNil(v any) *user.User {
	if v == nil {
		return nil
	}
	return v.(*user.User)
}

type MockReturnRequestRepository struct{ mock.Mock }

func (m *MockReturnRequestRepository) Add(ctx context.Context, r *returns.ReturnRequest) error {
	return m.Called(ctx, r).Error(0)
}

type MockSecurityLogRepository struct{ mock.Mock }

func (m *MockSecurityLogRepository) Add(ctx context.Context, entry *securitylog.TransactionLog) error {
	return m.Called(ctx, entry).Error(0)
}

type MockFeedbackRepository struct{ mock.Mock }

func (m *MockFeedbackRepository) Add(ctx context.Context, f *feedback.Feedback) error {
	return m.Called(ctx, f).Error(0)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepository) GetClaimableForUpdate(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]*notification.Notification, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) GetForUpdate(
	ctx context.Context,
	id kernel.UUID,
) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) GetPendingForOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*notification.Notification, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Notification), args.Error(1)
}

type MockReferenceImageRepository struct{ mock.Mock }

func (m *MockReferenceImageRepository) Save(ctx context.Context, orderID kernel.UUID, imageRef string) error {
	return m.Called(ctx, orderID, imageRef).Error(0)
}

func (m *MockReferenceImageRepository) Get(ctx context.Context, orderID kernel.UUID) (string, error) {
	args := m.Called(ctx, orderID)
	return args.String(0), args.Error(1)
}

// MockUoW satisfies every unit of work composite used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	return m.Called().Get(0).(ports.UserRepository)
}

func (m *MockUoW) ReturnRequestRepository() ports.ReturnRequestRepository {
	return m.Called().Get(0).(ports.ReturnRequestRepository)
}

func (m *MockUoW) SecurityLogRepository() ports.SecurityLogRepository {
	return m.Called().Get(0).(ports.SecurityLogRepository)
}

func (m *MockUoW) FeedbackRepository() ports.FeedbackRepository {
	return m.Called().Get(0).(ports.FeedbackRepository)
}

func (m *MockUoW) NotificationRepository() ports.NotificationRepository {
	return m.Called().Get(0).(ports.NotificationRepository)
}

func (m *MockUoW) ReferenceImageRepository() ports.ReferenceImageRepository {
	return m.Called().Get(0).(ports.ReferenceImageRepository)
}

// uowQueue hands out the given units of work in order, one per Create call.
type uowQueue struct {
	t    *testing.T
	uows []*MockUoW
}

func newUoWQueue(t *testing.T, uows ...*MockUoW) *uowQueue {
	t.Helper()
	return &uowQueue{t: t, uows: uows}
}

func (q *uowQueue) next() *MockUoW {
	require.NotEmpty(q.t, q.uows, "unexpected unit of work creation")
	u := q.uows[0]
	q.uows = q.uows[1:]
	return u
}

type orderUoWFactory struct{ *uowQueue }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.next() }

type passcodeUoWFactory struct{ *uowQueue }

func (f passcodeUoWFactory) Create() commands.PasscodeUoW { return f.next() }

type returnUoWFactory struct{ *uowQueue }

func (f returnUoWFactory) Create() commands.ReturnUoW { return f.next() }

type userUoWFactory struct{ *uowQueue }

func (f userUoWFactory) Create() commands.UserUoW { return f.next() }

type feedbackUoWFactory struct{ *uowQueue }

func (f feedbackUoWFactory) Create() commands.FeedbackUoW { return f.next() }

type notificationUoWFactory struct{ *uowQueue }

func (f notificationUoWFactory) Create() commands.NotificationUoW { return f.next() }

type MockImageStore struct{ mock.Mock }

func (m *MockImageStore) Save(ctx context.Context, scope string, data []byte) (string, error) {
	args := m.Called(ctx, scope, data)
	return args.String(0), args.Error(1)
}

func (m *MockImageStore) Load(ctx context.Context, ref string) ([]byte, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockImageStore) Delete(ctx context.Context, ref string) error {
	return m.Called(ctx, ref).Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Send(ctx context.Context, to kernel.Email, subject, body string) error {
	return m.Called(ctx, to, subject, body).Error(0)
}

type MockPasswordHasher struct{ mock.Mock }

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Compare(hash, password string) bool {
	return m.Called(hash, password).Bool(0)
}

type MockTokenIssuer struct{ mock.Mock }

func (m *MockTokenIssuer) Issue(principal user.Principal) (string, time.Time, error) {
	args := m.Called(principal)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenIssuer) Parse(token string) (user.Principal, error) {
	args := m.Called(token)
	return args.Get(0).(user.Principal), args.Error(1)
}

func mustEmail(t *testing.T, s string) kernel.Email {
	t.Helper()
	e, err := kernel.NewEmail(s)
	require.NoError(t, err)
	return e
}

func newPendingOrder(t *testing.T, userID kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewOrderCode(), userID,
		"Desk lamp", 39.90, "12 Harbour Road", "", fixedNow.Add(-time.Hour))
	require.NoError(t, err)
	return o
}

func newDeliveredOrder(t *testing.T, userID kernel.UUID) *order.Order {
	t.Helper()
	o := newPendingOrder(t, userID)
	require.NoError(t, o.IssuePasscode("123456", fixedNow.Add(-time.Minute)))
	require.NoError(t, o.VerifyPasscode("123456", fixedNow.Add(-time.Minute), order.DefaultPasscodePolicy()))
	return o
}

func newCustomer(t *testing.T, email string) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), "Jane", mustEmail(t, email), "hash", user.RoleCustomer, fixedNow)
	require.NoError(t, err)
	return u
}

// pngImage returns a small valid PNG.
func pngImage(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 4)
	}
	img.Set(0, 0, color.Gray{Y: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// pngHeader returns a PNG that declares width x height pixels but carries no
// image data. DecodeConfig accepts it; a full decode would allocate the bitmap.
func pngHeader(width, height uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], width)
	binary.BigEndian.PutUint32(ihdr[4:8], height)
	ihdr[8] = 8 // bit depth; colour type 0 is grayscale

	chunk := append([]byte("IHDR"), ihdr...)
	out := []byte("\x89PNG\r\n\x1a\n")
	out = binary.BigEndian.AppendUint32(out, uint32(len(ihdr)))
	out = append(out, chunk...)
	return binary.BigEndian.AppendUint32(out, crc32.ChecksumIEEE(chunk))
}
