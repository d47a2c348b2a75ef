package account

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/contadores/internal/apperr"
	"github.com/Windi-Fikriyansyah/contadores/internal/cache"
	"github.com/Windi-Fikriyansyah/contadores/internal/models"
	"github.com/Windi-Fikriyansyah/contadores/internal/repository"
	"github.com/Windi-Fikriyansyah/contadores/internal/services/admin"
	"github.com/Windi-Fikriyansyah/contadores/internal/storage"
	"github.com/Windi-Fikriyansyah/contadores/internal/utils"
)

// Uploader stores a profile photo and returns its public URL.
type Uploader interface {
	Save(fh *multipart.FileHeader) (string, error)
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// ProfileInput is the accountant self-registration payload. Nil means "not sent".
type ProfileInput struct {
	Name         *string
	Specialty    *string
	Photo        *string
	Tags         []string
	Location     *string
	ResponseTime *string
	Description  *string
}

// EditInput is the user profile form. Nil fields keep the stored value.
type EditInput struct {
	Name         *string
	Email        *string
	Phone        *string
	Bio          *string
	Specialty    *string
	Location     *string
	Description  *string
	ResponseTime *string
	Experience   *string
	Education    *string
	Tags         []string
}

// Service covers registration, login and profile management.
type Service interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpsertAccountantProfile(ctx context.Context, userID uuid.UUID, in ProfileInput) (*models.Accountant, error)
	GetEditProfile(ctx context.Context, userID uuid.UUID) (*models.User, *models.Accountant, error)
	EditUserProfile(ctx context.Context, userID uuid.UUID, in EditInput, photo *multipart.FileHeader) (*models.User, *models.Accountant, error)
	FindOrCreateGoogleUser(ctx context.Context, email, name, picture string) (*models.User, error)
}

type service struct {
	users       repository.UserRepository
	accountants repository.AccountantRepository
	uploads     Uploader
	cache       *cache.Client
	audit       admin.Service
}

func NewService(
	users repository.UserRepository,
	accountants repository.AccountantRepository,
	uploads Uploader,
	c *cache.Client,
	audit admin.Service,
) Service {
	if audit == nil {
		audit = admin.NewService(nil)
	}
	return &service{
		users:       users,
		accountants: accountants,
		uploads:     uploads,
		cache:       c,
		audit:       audit,
	}
}

// NormalizeEmail lower-cases and trims an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DefaultPhoto is the avatar given to the n-th registered user.
func DefaultPhoto(n int64) string {
	return fmt.Sprintf("https://i.pravatar.cc/150?img=%d", n)
}

func (s *service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	role, ok := models.ParseRole(in.Role)
	if !ok {
		return nil, apperr.Validation("Tipo de conta inválido!")
	}
	email := NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if name == "" || email == "" || in.Password == "" {
		return nil, apperr.Validation("Preencha todos os campos!")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, apperr.ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	n, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	u := &models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     role,
		Photo:    DefaultPhoto(n + 1),
	}

	var acc *models.Accountant
	if role == models.RoleAccountant {
		acc = models.NewPlaceholderAccountant(u)
	}

	if err := s.users.CreateWithAccountant(ctx, u, acc); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if acc != nil {
		s.invalidateListing(ctx)
	}
	s.audit.Record(ctx, admin.ActionRegister, u.ID)
	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !utils.CheckPassword(u.Password, password) {
		return nil, apperr.ErrInvalidCredentials
	}

	s.audit.Record(ctx, admin.ActionLogin, u.ID)
	return u, nil
}

func (s *service) CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (s *service) UpsertAccountantProfile(ctx context.Context, userID uuid.UUID, in ProfileInput) (*models.Accountant, error) {
	u, err := s.CurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !u.IsAccountant() {
		return nil, apperr.ErrProfileOnly
	}

	acc, err := s.accountants.FindByUserID(ctx, u.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find profile: %w", err)
		}
		acc = &models.Accountant{UserID: u.ID, Active: true}
	}

	acc.Name = orDefault(in.Name, u.Name)
	acc.Specialty = orDefault(in.Specialty, "")
	acc.Photo = orDefault(in.Photo, u.Photo)
	acc.Location = orDefault(in.Location, "")
	acc.ResponseTime = orDefault(in.ResponseTime, models.DefaultResponseTime)
	acc.Description = orDefault(in.Description, "")
	acc.Tags = cleanTags(in.Tags)

	if err := s.accountants.Save(ctx, acc); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	s.invalidateListing(ctx)
	s.audit.Record(ctx, admin.ActionProfileUpdate, u.ID)
	return acc, nil
}

func (s *service) GetEditProfile(ctx context.Context, userID uuid.UUID) (*models.User, *models.Accountant, error) {
	u, err := s.CurrentUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if !u.IsAccountant() {
		return u, nil, nil
	}
	acc, err := s.accountants.FindByUserID(ctx, u.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return u, nil, nil
		}
		return nil, nil, fmt.Errorf("find profile: %w", err)
	}
	return u, acc, nil
}

func (s *service) EditUserProfile(ctx context.Context, userID uuid.UUID, in EditInput, photo *multipart.FileHeader) (*models.User, *models.Accountant, error) {
	u, acc, err := s.GetEditProfile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	if photo != nil && photo.Filename != "" && s.uploads != nil {
		url, err := s.uploads.Save(photo)
		switch {
		case err == nil:
			u.Photo = url
		case errors.Is(err, storage.ErrFileNotAllowed):
			log.Debug().Str("file", photo.Filename).Msg("photo ignored")
		default:
			return nil, nil, fmt.Errorf("save photo: %w", err)
		}
	}

	if in.Email != nil {
		email := NormalizeEmail(*in.Email)
		if email != "" && email != u.Email {
			if _, err := s.users.FindByEmail(ctx, email); err == nil {
				return nil, nil, apperr.ErrDuplicateEmail
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, fmt.Errorf("check email: %w", err)
			}
			u.Email = email
		}
	}
	u.Name = keep(in.Name, u.Name)
	u.Phone = keep(in.Phone, u.Phone)
	u.Bio = keep(in.Bio, u.Bio)

	if acc != nil {
		acc.Name = u.Name
		acc.Photo = u.Photo
		acc.Specialty = keep(in.Specialty, acc.Specialty)
		acc.Location = keep(in.Location, acc.Location)
		acc.Description = keep(in.Description, acc.Description)
		acc.ResponseTime = keep(in.ResponseTime, acc.ResponseTime)
		acc.Experience = keep(in.Experience, acc.Experience)
		acc.Education = keep(in.Education, acc.Education)
		acc.Tags = cleanTags(in.Tags)
	}

	if err := s.users.UpdateWithAccountant(ctx, u, acc); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, apperr.ErrDuplicateEmail
		}
		return nil, nil, fmt.Errorf("update profile: %w", err)
	}

	if acc != nil {
		s.invalidateListing(ctx)
	}
	s.audit.Record(ctx, admin.ActionProfileUpdate, u.ID)
	return u, acc, nil
}

// FindOrCreateGoogleUser logs in an existing account by email or creates a client.
func (s *service) FindOrCreateGoogleUser(ctx context.Context, email, name, picture string) (*models.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, apperr.Validation("Email não informado pelo Google!")
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		s.audit.Record(ctx, admin.ActionGoogleLogin, u.ID)
		return u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	hash, err := utils.HashPassword(randomSecret(24))
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	photo := strings.TrimSpace(picture)
	if photo == "" {
		n, err := s.users.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("count users: %w", err)
		}
		photo = DefaultPhoto(n + 1)
	}
	if name = strings.TrimSpace(name); name == "" {
		name = strings.Split(email, "@")[0]
	}

	u = &models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     models.RoleClient,
		Photo:    photo,
	}
	if err := s.users.CreateWithAccountant(ctx, u, nil); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.audit.Record(ctx, admin.ActionRegister, u.ID)
	return u, nil
}

func (s *service) invalidateListing(ctx context.Context) {
	_ = s.cache.Delete(ctx, cache.KeyActiveAccountants)
}

func orDefault(p *string, def string) string {
	if p == nil {
		return def
	}
	return strings.TrimSpace(*p)
}

func keep(p *string, current string) string {
	if p == nil {
		return current
	}
	return strings.TrimSpace(*p)
}

func cleanTags(tags []string) datatypes.JSONSlice[string] {
	out := make(datatypes.JSONSlice[string], 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func randomSecret(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
