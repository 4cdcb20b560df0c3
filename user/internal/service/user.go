package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	inErrors "github.com/Alturino/shopping/internal/errors"
	"github.com/Alturino/shopping/internal/log"
	"github.com/Alturino/shopping/internal/otel"
	"github.com/Alturino/shopping/internal/repository"
	"github.com/Alturino/shopping/user/pkg/request"
)

type TokenSigner interface {
	Sign(c context.Context, userID uuid.UUID) (string, error)
}

type UserService struct {
	queries *repository.Queries
	tokens  TokenSigner
}

// dummyHash is compared against when the email is unknown so both login failures cost
// one bcrypt comparison.
var dummyHash = mustHashPassword("dummy-password")

func mustHashPassword(password string) []byte {
	hashed, err := hashPassword(password)
	if err != nil {
		panic(err)
	}
	return hashed
}

// hashPassword rejects passwords longer than bcrypt's 72 byte input limit as an invalid
// request instead of a server failure.
func hashPassword(password string) ([]byte, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, errors.Join(inErrors.ErrInvalidRequest, err)
	}
	if err != nil {
		return nil, errors.Join(inErrors.ErrFailedHashPassword, err)
	}
	return hashed, nil
}

func NewUserService(queries *repository.Queries, tokens TokenSigner) *UserService {
	return &UserService{queries: queries, tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *UserService) Register(
	c context.Context,
	param request.Register,
) (repository.User, string, error) {
	c, span := otel.Tracer.Start(c, "UserService Register")
	defer span.End()

	email := normalizeEmail(param.Email)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Register").
		Str(log.KeyEmail, email).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "hashing password").Logger()
	logger.Info().Msg("hashing password")
	hashed, err := hashPassword(param.Password)
	if err != nil {
		err = fmt.Errorf("failed hashing password with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.User{}, "", err
	}
	logger.Info().Msg("hashed password")

	logger = logger.With().Str(log.KeyProcess, "inserting user").Logger()
	logger.Info().Msg("inserting user")
	user, err := u.queries.InsertUser(c, repository.InsertUserParams{
		ID:             uuid.Must(uuid.NewV7()),
		Email:          email,
		HashedPassword: string(hashed),
		FullName:       pgtype.Text{String: param.FullName, Valid: param.FullName != ""},
	})
	if err != nil {
		err = repository.MapError(err)
		if errors.Is(err, inErrors.ErrConflict) {
			err = errors.Join(inErrors.ErrEmailRegistered, err)
		}
		err = fmt.Errorf("failed inserting user with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.User{}, "", err
	}
	logger = logger.With().Str(log.KeyUserID, user.ID.String()).Logger()
	logger.Info().Msg("inserted user")

	logger = logger.With().Str(log.KeyProcess, "signing token").Logger()
	logger.Info().Msg("signing token")
	c = logger.WithContext(c)
	signed, err := u.tokens.Sign(c, user.ID)
	if err != nil {
		err = fmt.Errorf("failed signing token with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.User{}, "", err
	}
	logger.Info().Msg("signed token")

	return user, signed, nil
}

func (u *UserService) Login(
	c context.Context,
	param request.Login,
) (repository.User, string, error) {
	c, span := otel.Tracer.Start(c, "UserService Login")
	defer span.End()

	email := normalizeEmail(param.Email)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Login").
		Str(log.KeyEmail, email).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding user").Logger()
	logger.Info().Msg("finding user by email")
	user, err := u.queries.FindUserByEmail(c, email)
	if err != nil {
		err = repository.MapError(err)
		if !errors.Is(err, inErrors.ErrNotFound) {
			err = fmt.Errorf("failed finding user by email with error=%w", err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return repository.User{}, "", err
		}
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(param.Password))
		err = fmt.Errorf("failed finding user by email with error=%w", inErrors.ErrInvalidCredentials)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.User{}, "", err
	}
	logger = logger.With().Str(log.KeyUserID, user.ID.String()).Logger()
	logger.Info().Msg("found user by email")

	logger = logger.With().Str(log.KeyProcess, "verifying password").Logger()
	logger.Info().Msg("verifying password")
	err = bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(param.Password))
	if err != nil {
		err = fmt.Errorf("failed verifying password with error=%w", inErrors.ErrInvalidCredentials)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.User{}, "", err
	}
	logger.Info().Msg("verified password")

	logger = logger.With().Str(log.KeyProcess, "signing token").Logger()
	logger.Info().Msg("signing token")
	c = logger.WithContext(c)
	signed, err := u.tokens.Sign(c, user.ID)
	if err != nil {
		err = fmt.Errorf("failed signing token with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.User{}, "", err
	}
	logger.Info().Msg("signed token")

	return user, signed, nil
}
