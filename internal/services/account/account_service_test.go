package account

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/contadores/internal/apperr"
	"github.com/Windi-Fikriyansyah/contadores/internal/models"
	"github.com/Windi-Fikriyansyah/contadores/internal/repository/mocks"
	"github.com/Windi-Fikriyansyah/contadores/internal/storage"
	"github.com/Windi-Fikriyansyah/contadores/internal/utils"
)

type fakeUploader struct {
	url string
	err error
}

func (f fakeUploader) Save(*multipart.FileHeader) (string, error) { return f.url, f.err }

type fixture struct {
	users *mocks.UserRepository
	accs  *mocks.AccountantRepository
}

func newFixture() *fixture {
	return &fixture{
		users: new(mocks.UserRepository),
		accs:  new(mocks.AccountantRepository),
	}
}

func (f *fixture) service(up Uploader) Service {
	return NewService(f.users, f.accs, up, nil, nil)
}

func strp(s string) *string { return &s }

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture()
	f.users.On("FindByEmail", mock.Anything, "ana@x.com").Return(&models.User{Email: "ana@x.com"}, nil)

	_, err := f.service(nil).Register(context.Background(), RegisterInput{
		Name: "Ana", Email: " ANA@x.com ", Password: "senha123", Role: "cliente",
	})
	assert.ErrorIs(t, err, apperr.ErrDuplicateEmail)
	f.users.AssertNotCalled(t, "CreateWithAccountant", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister_AccountantGetsPlaceholderProfile(t *testing.T) {
	f := newFixture()
	f.users.On("FindByEmail", mock.Anything, "joao@x.com").Return(nil, gorm.ErrRecordNotFound)
	f.users.On("Count", mock.Anything).Return(int64(3), nil)
	f.users.On("CreateWithAccountant", mock.Anything,
		mock.MatchedBy(func(u *models.User) bool {
			return u.Role == models.RoleAccountant &&
				u.Photo == "https://i.pravatar.cc/150?img=4" &&
				utils.CheckPassword(u.Password, "senha123")
		}),
		mock.MatchedBy(func(a *models.Accountant) bool {
			return a != nil &&
				a.Specialty == models.DefaultSpecialty &&
				a.Location == models.DefaultLocation &&
				a.Description == models.DefaultDescription &&
				a.ResponseTime == models.DefaultResponseTime &&
				len(a.Tags) == 0 && a.Active && !a.Verified
		}),
	).Return(nil)

	u, err := f.service(nil).Register(context.Background(), RegisterInput{
		Name: "João", Email: "joao@x.com", Password: "senha123", Role: "contador",
	})
	require.NoError(t, err)
	assert.Equal(t, "joao@x.com", u.Email)
	f.users.AssertExpectations(t)
}

func TestRegister_UniqueIndexViolationIsDuplicateEmail(t *testing.T) {
	f := newFixture()
	f.users.On("FindByEmail", mock.Anything, "ana@x.com").Return(nil, gorm.ErrRecordNotFound)
	f.users.On("Count", mock.Anything).Return(int64(1), nil)
	f.users.On("CreateWithAccountant", mock.Anything, mock.Anything, (*models.Accountant)(nil)).
		Return(gorm.ErrDuplicatedKey)

	_, err := f.service(nil).Register(context.Background(), RegisterInput{
		Name: "Ana", Email: "ana@x.com", Password: "senha123", Role: "cliente",
	})
	assert.ErrorIs(t, err, apperr.ErrDuplicateEmail)
	assert.Equal(t, 409, apperr.HTTPStatus(err))
}

func TestRegister_RejectsAdminRole(t *testing.T) {
	f := newFixture()
	_, err := f.service(nil).Register(context.Background(), RegisterInput{
		Name: "Eve", Email: "eve@x.com", Password: "senha123", Role: "admin",
	})
	assert.Equal(t, apperr.TypeValidation, apperr.TypeOf(err))
}

func TestLogin(t *testing.T) {
	hash, err := utils.HashPassword("senha123")
	require.NoError(t, err)
	stored := &models.User{ID: uuid.New(), Email: "ana@x.com", Password: hash}

	f := newFixture()
	f.users.On("FindByEmail", mock.Anything, "ana@x.com").Return(stored, nil)
	f.users.On("FindByEmail", mock.Anything, "ghost@x.com").Return(nil, gorm.ErrRecordNotFound)
	svc := f.service(nil)

	u, err := svc.Login(context.Background(), "Ana@x.com", "senha123")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, u.ID)

	_, errWrong := svc.Login(context.Background(), "ana@x.com", "nope")
	_, errGhost := svc.Login(context.Background(), "ghost@x.com", "senha123")
	assert.ErrorIs(t, errWrong, apperr.ErrInvalidCredentials)
	assert.ErrorIs(t, errGhost, apperr.ErrInvalidCredentials)
	assert.Equal(t, errWrong.Error(), errGhost.Error())
}

func TestUpsertAccountantProfile_ForbiddenForClients(t *testing.T) {
	f := newFixture()
	uid := uuid.New()
	f.users.On("FindByID", mock.Anything, uid).Return(&models.User{ID: uid, Role: models.RoleClient}, nil)

	_, err := f.service(nil).UpsertAccountantProfile(context.Background(), uid, ProfileInput{})
	assert.ErrorIs(t, err, apperr.ErrProfileOnly)
	f.accs.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpsertAccountantProfile_CreatesWithDefaults(t *testing.T) {
	f := newFixture()
	uid := uuid.New()
	f.users.On("FindByID", mock.Anything, uid).
		Return(&models.User{ID: uid, Name: "Carlos", Photo: "c.png", Role: models.RoleAccountant}, nil)
	f.accs.On("FindByUserID", mock.Anything, uid).Return(nil, gorm.ErrRecordNotFound)
	f.accs.On("Save", mock.Anything, mock.Anything).Return(nil)

	acc, err := f.service(nil).UpsertAccountantProfile(context.Background(), uid, ProfileInput{
		Specialty: strp("Auditoria"),
		Tags:      []string{"Auditoria", " ", "Compliance"},
	})
	require.NoError(t, err)
	assert.Equal(t, uid, acc.UserID)
	assert.Equal(t, "Carlos", acc.Name)
	assert.Equal(t, "c.png", acc.Photo)
	assert.Equal(t, "Auditoria", acc.Specialty)
	assert.Equal(t, models.DefaultResponseTime, acc.ResponseTime)
	assert.Equal(t, "", acc.Location)
	assert.Equal(t, []string{"Auditoria", "Compliance"}, acc.TagList())
}

func TestEditUserProfile_MirrorsIntoAccountant(t *testing.T) {
	f := newFixture()
	uid := uuid.New()
	u := &models.User{ID: uid, Name: "Maria", Email: "maria@x.com", Photo: "old.png", Role: models.RoleAccountant}
	acc := &models.Accountant{ID: uuid.New(), UserID: uid, Name: "Maria", Specialty: "Fiscal", Tags: []string{"A"}}
	f.users.On("FindByID", mock.Anything, uid).Return(u, nil)
	f.accs.On("FindByUserID", mock.Anything, uid).Return(acc, nil)
	f.users.On("UpdateWithAccountant", mock.Anything, u, acc).Return(nil)

	photo := &multipart.FileHeader{Filename: "nova.png"}
	gotU, gotA, err := f.service(fakeUploader{url: "/uploads/x_nova.png"}).EditUserProfile(
		context.Background(), uid,
		EditInput{Name: strp("Maria Santos"), Experience: strp("10 anos"), Tags: []string{"B", "C"}},
		photo,
	)
	require.NoError(t, err)
	assert.Equal(t, "Maria Santos", gotU.Name)
	assert.Equal(t, "/uploads/x_nova.png", gotU.Photo)
	assert.Equal(t, "Maria Santos", gotA.Name)
	assert.Equal(t, "/uploads/x_nova.png", gotA.Photo)
	assert.Equal(t, "Fiscal", gotA.Specialty)
	assert.Equal(t, "10 anos", gotA.Experience)
	assert.Equal(t, []string{"B", "C"}, gotA.TagList())
}

func TestEditUserProfile_DisallowedPhotoKeepsPrevious(t *testing.T) {
	f := newFixture()
	uid := uuid.New()
	u := &models.User{ID: uid, Photo: "old.png", Role: models.RoleClient}
	f.users.On("FindByID", mock.Anything, uid).Return(u, nil)
	f.users.On("UpdateWithAccountant", mock.Anything, u, (*models.Accountant)(nil)).Return(nil)

	got, _, err := f.service(fakeUploader{err: storage.ErrFileNotAllowed}).EditUserProfile(
		context.Background(), uid, EditInput{}, &multipart.FileHeader{Filename: "virus.exe"})
	require.NoError(t, err)
	assert.Equal(t, "old.png", got.Photo)
}

func TestEditUserProfile_EmailTaken(t *testing.T) {
	f := newFixture()
	uid := uuid.New()
	f.users.On("FindByID", mock.Anything, uid).Return(&models.User{ID: uid, Email: "a@x.com", Role: models.RoleClient}, nil)
	f.users.On("FindByEmail", mock.Anything, "b@x.com").Return(&models.User{Email: "b@x.com"}, nil)

	_, _, err := f.service(nil).EditUserProfile(context.Background(), uid, EditInput{Email: strp("B@x.com")}, nil)
	assert.ErrorIs(t, err, apperr.ErrDuplicateEmail)
	f.users.AssertNotCalled(t, "UpdateWithAccountant", mock.Anything, mock.Anything, mock.Anything)
}

func TestEditUserProfile_EmailTakenConcurrently(t *testing.T) {
	f := newFixture()
	uid := uuid.New()
	f.users.On("FindByID", mock.Anything, uid).Return(&models.User{ID: uid, Email: "a@x.com", Role: models.RoleClient}, nil)
	f.users.On("FindByEmail", mock.Anything, "b@x.com").Return(nil, gorm.ErrRecordNotFound)
	f.users.On("UpdateWithAccountant", mock.Anything, mock.Anything, (*models.Accountant)(nil)).
		Return(gorm.ErrDuplicatedKey)

	_, _, err := f.service(nil).EditUserProfile(context.Background(), uid, EditInput{Email: strp("b@x.com")}, nil)
	assert.ErrorIs(t, err, apperr.ErrDuplicateEmail)
	assert.Equal(t, 409, apperr.HTTPStatus(err))
}

func TestEditUserProfile_UploadFailure(t *testing.T) {
	f := newFixture()
	uid := uuid.New()
	f.users.On("FindByID", mock.Anything, uid).Return(&models.User{ID: uid, Role: models.RoleClient}, nil)

	_, _, err := f.service(fakeUploader{err: errors.New("disk full")}).EditUserProfile(
		context.Background(), uid, EditInput{}, &multipart.FileHeader{Filename: "a.png"})
	assert.Error(t, err)
}

func TestFindOrCreateGoogleUser_CreatesClient(t *testing.T) {
	f := newFixture()
	f.users.On("FindByEmail", mock.Anything, "g@x.com").Return(nil, gorm.ErrRecordNotFound)
	f.users.On("CreateWithAccountant", mock.Anything,
		mock.MatchedBy(func(u *models.User) bool {
			return u.Role == models.RoleClient && u.Name == "g" && u.Photo == "pic.png"
		}),
		(*models.Accountant)(nil),
	).Return(nil)

	u, err := f.service(nil).FindOrCreateGoogleUser(context.Background(), "G@x.com", "", "pic.png")
	require.NoError(t, err)
	assert.Equal(t, "g@x.com", u.Email)
}

func TestDefaultPhoto(t *testing.T) {
	assert.Equal(t, "https://i.pravatar.cc/150?img=1", DefaultPhoto(1))
}
