package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/amnotwallas/estudiantes-frontend/internal/models"
	appErrors "github.com/amnotwallas/estudiantes-frontend/pkg/errors"
)

// Store is the single source of truth for the authenticated session. All
// mutations write through to the persisted file before returning; reads are
// synchronous and never hit the network.
type Store struct {
	baseURL  string
	filePath string

	client    *http.Client
	validator *validator.Validate
	logger    *zap.Logger

	mu          sync.RWMutex
	session     *models.Session
	subscribers []func(*models.Session)
}

// Open constructs a Store and re-hydrates any session persisted at filePath.
// A corrupt or partial record is discarded.
func Open(baseURL, filePath string, client *http.Client, validate *validator.Validate, logger *zap.Logger) (*Store, error) {
	if client == nil {
		client = http.DefaultClient
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Store{
		baseURL:   baseURL,
		filePath:  filePath,
		client:    client,
		validator: validate,
		logger:    logger,
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Current returns the in-memory session, or nil when nobody is logged in.
func (s *Store) Current() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	copied := *s.session
	if s.session.Identity != nil {
		identity := *s.session.Identity
		copied.Identity = &identity
	}
	return &copied
}

// Credential returns the bearer token, or "" when no session exists.
func (s *Store) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return ""
	}
	return s.session.Credential
}

// Subscribe registers a callback invoked after every session change. The
// callback receives the new session (nil on logout).
func (s *Store) Subscribe(fn func(*models.Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Login authenticates against the backend and persists the resulting
// session. The backend error message is surfaced verbatim on failure.
func (s *Store) Login(ctx context.Context, username, password string) (*models.Session, error) {
	req := models.LoginRequest{Username: username, Password: password}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "usuario y contraseña son requeridos")
	}

	resp, err := s.postAuth(ctx, "/login", req, "error en el inicio de sesión")
	if err != nil {
		return nil, err
	}
	return s.adopt(resp)
}

// Register creates an account and logs it in. The password confirmation is
// checked client-side; no request is issued when validation fails.
func (s *Store) Register(ctx context.Context, req models.RegisterRequest) (*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "datos de registro inválidos")
	}

	resp, err := s.postAuth(ctx, "/register", req, "error en el registro")
	if err != nil {
		return nil, err
	}
	return s.adopt(resp)
}

// Logout clears the session unconditionally. It never fails; a file removal
// error is logged and otherwise ignored.
func (s *Store) Logout() {
	s.clear("logout")
}

// Invalidate drops the session after the gateway detected an
// unauthenticated request failure.
func (s *Store) Invalidate() {
	s.clear("credential rejected by backend")
}

// TokenClaims decodes the credential's JWT claims without verifying the
// signature. The result is a display hint only, never an authentication
// decision.
func (s *Store) TokenClaims() (jwt.MapClaims, error) {
	token := s.Credential()
	if token == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthenticated, "")
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "credential is not a decodable token")
	}
	return claims, nil
}

func (s *Store) postAuth(ctx context.Context, path string, payload interface{}, fallbackMsg string) (*models.AuthResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode payload")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNetwork.Code, appErrors.ErrNetwork.Status, fallbackMsg)
	}
	defer httpResp.Body.Close() //nolint:errcheck

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		var errBody struct {
			Message string `json:"message"`
		}
		msg := fallbackMsg
		if decodeErr := json.NewDecoder(httpResp.Body).Decode(&errBody); decodeErr == nil && errBody.Message != "" {
			msg = errBody.Message
		}
		return nil, appErrors.Request(httpResp.StatusCode, msg)
	}

	resp := &models.AuthResponse{}
	if err := json.NewDecoder(httpResp.Body).Decode(resp); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrRequest.Code, httpResp.StatusCode, "respuesta inválida del servidor")
	}
	if resp.Token == "" {
		return nil, appErrors.Request(httpResp.StatusCode, "el servidor no devolvió un token")
	}
	return resp, nil
}

func (s *Store) adopt(resp *models.AuthResponse) (*models.Session, error) {
	sess := &models.Session{
		Identity: &models.Identity{
			ID:       resp.User.ID,
			Username: resp.User.Username,
			Role:     resp.User.Role,
		},
		Credential: resp.Token,
	}

	s.mu.Lock()
	s.session = sess
	err := s.persistLocked()
	subs := append([]func(*models.Session){}, s.subscribers...)
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	s.notify(subs, s.Current())
	return s.Current(), nil
}

func (s *Store) clear(reason string) {
	s.mu.Lock()
	s.session = nil
	if err := os.Remove(s.filePath); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to remove session file", zap.Error(err))
	}
	subs := append([]func(*models.Session){}, s.subscribers...)
	s.mu.Unlock()

	s.logger.Debug("session cleared", zap.String("reason", reason))
	s.notify(subs, nil)
}

func (s *Store) notify(subs []func(*models.Session), sess *models.Session) {
	for _, fn := range subs {
		fn(sess)
	}
}

func (s *Store) persistLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0o700); err != nil {
		return fmt.Errorf("prepare session directory: %w", err)
	}
	data, err := json.MarshalIndent(s.session, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read session file: %w", err)
	}

	sess := &models.Session{}
	if err := json.Unmarshal(data, sess); err != nil {
		s.logger.Warn("discarding corrupt session file", zap.Error(err))
		return nil
	}
	if !sess.Valid() {
		s.logger.Warn("discarding partial session record")
		return nil
	}

	s.session = sess
	return nil
}
