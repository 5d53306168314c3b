package application

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/receipegram/backend/internal/domain/entity"
	"github.com/receipegram/backend/internal/domain/repository"
	"github.com/receipegram/backend/pkg/helpers"
	"github.com/receipegram/backend/pkg/mailer"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username or email already exists")
)

// UserService covers registration, login, profiles, and user search.
// RabbitMQ publisher and Elasticsearch client are optional; when nil the
// welcome email is skipped and search falls back to SQL.
type UserService struct {
	Repo         repository.UserRepository
	JWT          *helpers.JWTManager
	Logger       *logrus.Logger
	Pub          *helpers.RabbitPublisher
	MailEnabled  bool
	ES           *elasticsearch.Client
	ESUsersIndex string
}

func NewUserService(repo repository.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger,
	pub *helpers.RabbitPublisher, mailEnabled bool, es *elasticsearch.Client, esUsersIndex string) *UserService {
	return &UserService{
		Repo:         repo,
		JWT:          jwt,
		Logger:       logger,
		Pub:          pub,
		MailEnabled:  mailEnabled,
		ES:           es,
		ESUsersIndex: esUsersIndex,
	}
}

// AuthResult is a user plus a freshly issued bearer token.
type AuthResult struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	exists, err := s.Repo.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
		FullName: in.FullName,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}

	token, exp, err := s.JWT.Generate(u.ID, u.Username, u.Email)
	if err != nil {
		return nil, err
	}

	_ = s.indexUser(ctx, u)
	s.enqueueWelcome(ctx, u)

	return &AuthResult{User: u, Token: token, ExpiresAt: exp}, nil
}

func (s *UserService) Login(ctx context.Context, login, password string) (*AuthResult, error) {
	u, err := s.Repo.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	token, exp, err := s.JWT.Generate(u.ID, u.Username, u.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u, Token: token, ExpiresAt: exp}, nil
}

func (s *UserService) Profile(ctx context.Context, userID int64) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// UpdateProfile overwrites fullName and bio unconditionally, matching the
// existing API contract (omitted fields blank the column).
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, fullName, bio string) (*entity.User, error) {
	if err := s.Repo.UpdateProfile(ctx, userID, fullName, bio); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	_ = s.indexUser(ctx, u)
	return u, nil
}

// PublicProfile resolves a profile by username together with its derived
// counters.
func (s *UserService) PublicProfile(ctx context.Context, username string) (*entity.User, *entity.UserStats, error) {
	u, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}
	stats, err := s.Repo.Stats(ctx, u.ID)
	if err != nil {
		return nil, nil, err
	}
	return u, stats, nil
}

// Search uses Elasticsearch when configured, otherwise a SQL substring match.
func (s *UserService) Search(ctx context.Context, query string, limit int) ([]entity.UserSummary, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	if s.ES == nil || s.ESUsersIndex == "" {
		return s.Repo.Search(ctx, query, limit)
	}
	return s.searchES(ctx, query, limit)
}

func (s *UserService) searchES(ctx context.Context, query string, limit int) ([]entity.UserSummary, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{"username^2", "fullName"},
			},
		},
		"size": limit,
	}
	b, _ := json.Marshal(body)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESUsersIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source entity.UserSummary `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.UserSummary, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *UserService) indexUser(ctx context.Context, u *entity.User) error {
	if s.ES == nil || s.ESUsersIndex == "" {
		return nil
	}
	doc := entity.UserSummary{
		ID:           u.ID,
		Username:     u.Username,
		FullName:     u.FullName,
		ProfileImage: u.ProfileImage,
		Bio:          u.Bio,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESUsersIndex,
		DocumentID: strconv.FormatInt(u.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
	return nil
}

func (s *UserService) enqueueWelcome(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.WelcomeJob(u.Email, u.Username)
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email enqueue failed")
	}
}
